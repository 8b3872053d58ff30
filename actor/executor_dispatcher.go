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

package actor

import (
	"context"

	"github.com/cchandler/akka/internal/workerpool"
)

// ExecutorDispatcher drains registered handles on a shared
// internal/workerpool.WorkerPool: one submission per idle-to-busy
// transition, via runToIdle. This is the default dispatcher — it amortizes
// goroutine cost across many actors while still draining each one to
// completion once scheduled, exactly mirroring goakt's pid.process() idle/
// busy CAS loop, only running the drain closure through pool.SubmitWork
// instead of a bare `go func()`.
type ExecutorDispatcher struct {
	pool *workerpool.WorkerPool
}

var _ Dispatcher = (*ExecutorDispatcher)(nil)

// NewExecutorDispatcher returns an ExecutorDispatcher backed by a started
// worker pool with the given shard count.
func NewExecutorDispatcher(numShards int) *ExecutorDispatcher {
	pool := workerpool.New(workerpool.WithNumShards(numShards))
	pool.Start()
	return &ExecutorDispatcher{pool: pool}
}

// Kind implements Dispatcher.
func (d *ExecutorDispatcher) Kind() DispatcherKind { return ExecutorEventDriven }

// Register is a no-op: the pool is shared across every handle, there is
// nothing per-handle to allocate up front.
func (d *ExecutorDispatcher) Register(*localHandle) {}

// Unregister is a no-op for the same reason.
func (d *ExecutorDispatcher) Unregister(*localHandle) {}

// Schedule submits h's drain to the worker pool if it is not already
// in flight.
func (d *ExecutorDispatcher) Schedule(h *localHandle) {
	runToIdle(h, 0, d.pool.SubmitWork)
}

// MailboxSize implements Dispatcher.
func (d *ExecutorDispatcher) MailboxSize(h *localHandle) int64 {
	return h.mailbox.Len()
}

// Shutdown stops accepting new submissions. In-flight drains already
// running on a worker goroutine finish on their own; Shutdown does not
// wait for them since the pool exposes no such hook.
func (d *ExecutorDispatcher) Shutdown(_ context.Context) error {
	d.pool.Stop()
	return nil
}
