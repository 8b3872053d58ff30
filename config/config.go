/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package config carries every recognized runtime option (SPEC_FULL.md §6),
// built with the functional-options idiom goakt uses throughout
// (ActorSystem, WorkerPool, Supervisor option constructors).
package config

import "time"

// DispatcherKind mirrors actor.DispatcherKind without importing the actor
// package, which would create an import cycle (actor imports config for
// defaults).
type DispatcherKind int

const (
	ThreadBased DispatcherKind = iota
	ExecutorEventDriven
	CooperativeSingleThread
	CooperativePool
	Pinned
)

// MailboxKind mirrors actor.MailboxKind; see DispatcherKind for why it is
// redeclared here rather than imported.
type MailboxKind int

const (
	UnboundedMailbox MailboxKind = iota
	BoundedMailboxKind
	SynchronousMailboxKind
)

// RejectionPolicy mirrors actor.RejectionPolicy.
type RejectionPolicy int

const (
	RejectAbort RejectionPolicy = iota
	RejectDropNewest
	RejectDropOldest
)

// Lifecycle governs whether a failing actor may be restarted while its
// restart budget lasts (Permanent) or is stopped and removed without a
// restart (Temporary).
type Lifecycle int

const (
	Permanent Lifecycle = iota
	Temporary
)

// OrphanPolicy resolves spec.md §9's first Open Question: what happens to
// the subordinates a handle still supervises when that handle is stopped
// because of a failure. A plain Handle.Stop always stops them.
type OrphanPolicy int

const (
	// StopOrphans stops every remaining subordinate of the already-
	// stopped supervisor. This is the default: an actor tree with no
	// live supervisor has no one left to make recovery decisions for it,
	// so leaving it running would silently orphan it.
	StopOrphans OrphanPolicy = iota
	// LeaveRunning leaves orphaned subordinates running, unsupervised.
	LeaveRunning
)

// Config holds every option enumerated in SPEC_FULL.md §6.
type Config struct {
	DefaultReplyTimeout time.Duration
	DefaultDispatcher   DispatcherKind
	Throughput          int
	Mailbox             MailboxKind
	MailboxCapacity     int
	RejectionPolicy     RejectionPolicy
	SerializeMessages   bool
	DefaultLifecycle    Lifecycle
	OrphanPolicy        OrphanPolicy
	PinnedWorkers       int
	CooperativeWorkers  int
}

// Option configures a Config.
type Option func(*Config)

// WithDefaultReplyTimeout sets the timeout Ask uses when the caller passes
// <= 0.
func WithDefaultReplyTimeout(d time.Duration) Option {
	return func(c *Config) { c.DefaultReplyTimeout = d }
}

// WithDefaultDispatcher sets which Dispatcher variant new handles are
// given absent an explicit per-Spawn override.
func WithDefaultDispatcher(kind DispatcherKind) Option {
	return func(c *Config) { c.DefaultDispatcher = kind }
}

// WithThroughput sets how many envelopes a Cooperative dispatcher
// (CooperativeSingleThread, CooperativePool) drains per handle per turn
// before yielding. ExecutorEventDriven, Pinned and ThreadBased do not read
// it: they drain a handle until its mailbox is empty.
func WithThroughput(n int) Option {
	return func(c *Config) { c.Throughput = n }
}

// WithMailbox selects the mailbox kind and, for BoundedMailboxKind, its
// capacity.
func WithMailbox(kind MailboxKind, capacity int) Option {
	return func(c *Config) {
		c.Mailbox = kind
		c.MailboxCapacity = capacity
	}
}

// WithRejectionPolicy sets the policy a bounded mailbox applies when full.
func WithRejectionPolicy(policy RejectionPolicy) Option {
	return func(c *Config) { c.RejectionPolicy = policy }
}

// WithSerializeMessages sets Config.SerializeMessages. No part of the
// runtime reads the flag: payloads are enqueued as passed, and no copy is
// made either way.
func WithSerializeMessages(on bool) Option {
	return func(c *Config) { c.SerializeMessages = on }
}

// WithDefaultLifecycle sets whether newly spawned actors are Permanent or
// Temporary absent an explicit override.
func WithDefaultLifecycle(lifecycle Lifecycle) Option {
	return func(c *Config) { c.DefaultLifecycle = lifecycle }
}

// WithOrphanPolicy resolves spec.md §9's supervisor-stopped-at-failure-
// time Open Question.
func WithOrphanPolicy(policy OrphanPolicy) Option {
	return func(c *Config) { c.OrphanPolicy = policy }
}

// WithPinnedWorkers sets the fixed worker count for a Pinned dispatcher.
func WithPinnedWorkers(n int) Option {
	return func(c *Config) { c.PinnedWorkers = n }
}

// WithCooperativeWorkers sets the worker count for a CooperativePool
// dispatcher (ignored for CooperativeSingleThread, which is always 1).
func WithCooperativeWorkers(n int) Option {
	return func(c *Config) { c.CooperativeWorkers = n }
}

// New builds a Config from defaults plus opts, in the teacher's
// functional-options idiom.
func New(opts ...Option) *Config {
	c := &Config{
		DefaultReplyTimeout: 5 * time.Second,
		DefaultDispatcher:   ExecutorEventDriven,
		Throughput:          5,
		Mailbox:             UnboundedMailbox,
		RejectionPolicy:     RejectAbort,
		DefaultLifecycle:    Permanent,
		OrphanPolicy:        StopOrphans,
		PinnedWorkers:       4,
		CooperativeWorkers:  4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
