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

// Package actor implements the core of an actor-model runtime: the actor
// handle and lifecycle state machine, the mailbox and dispatcher family, and
// the supervision hierarchy that recovers a failing actor under a bounded,
// policy-driven restart.
package actor

import "context"

// Actor is the user-supplied message-handling object. The runtime owns its
// lifecycle; the actor owns only its Receive behavior and its reaction to
// the four lifecycle callbacks.
type Actor interface {
	// Init runs once, before the actor processes its first message.
	// Returning an error prevents the actor from starting.
	Init(ctx context.Context) error

	// PreRestart runs on the failing instance just before it is discarded
	// and replaced during a Permanent restart. cause is the failure that
	// triggered the restart.
	PreRestart(ctx context.Context, cause error) error

	// PostRestart runs on the freshly constructed instance, after Init,
	// during a Permanent restart.
	PostRestart(ctx context.Context, cause error) error

	// Shutdown runs once, when the actor is stopped (normal Stop, or a
	// Temporary actor's failure, or a restart budget exhaustion).
	Shutdown(ctx context.Context) error

	// Receive handles one message. It must not block beyond the time it
	// takes to process that single message: the next envelope in the
	// mailbox is not drained until Receive returns.
	Receive(rctx *ReceiveContext)
}

// Factory constructs a fresh Actor instance. The handle saves the Factory
// that produced its first instance and replays it verbatim on every
// Permanent restart, per spec.md §9 ("Factory for restart"): the runtime
// never attempts to re-read or clone the prior instance's object graph.
type Factory func() Actor
