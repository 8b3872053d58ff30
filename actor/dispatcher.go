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

import "context"

// DispatcherKind selects which Dispatcher implementation a handle is bound
// to at Spawn time.
type DispatcherKind int

const (
	// ThreadBased gives every handle a dedicated, long-lived goroutine.
	// Highest isolation, highest per-handle memory cost.
	ThreadBased DispatcherKind = iota
	// ExecutorEventDriven drains a handle's mailbox on a shared
	// internal/workerpool.WorkerPool, one submission per idle-to-busy
	// transition.
	ExecutorEventDriven
	// CooperativeSingleThread drains every handle registered to it from a
	// single worker goroutine, throughput-bounded per turn.
	CooperativeSingleThread
	// CooperativePool is CooperativeSingleThread with a small fixed set
	// of worker goroutines sharing one ready queue.
	CooperativePool
	// Pinned binds each handle to one pre-selected worker, chosen by
	// hashing its ActorID, for the lifetime of the handle.
	Pinned
)

// Dispatcher owns the execution substrate a registered handle's mailbox is
// drained on. Handles never run their own goroutine directly; they always
// go through a Dispatcher so the runtime can bound total concurrency
// independently of actor count.
type Dispatcher interface {
	// Kind reports which variant this is, for diagnostics/logging.
	Kind() DispatcherKind

	// Register prepares h to be scheduled by this dispatcher. Must be
	// called once, before the first Schedule.
	Register(h *localHandle)

	// Unregister releases any dispatcher-held resources for h. Safe to
	// call even if h has pending work; that work is simply dropped from
	// the dispatcher's bookkeeping, not drained.
	Unregister(h *localHandle)

	// Schedule ensures h's mailbox will be drained, starting a new drain
	// if one is not already in flight for h. Called after every
	// successful Enqueue. Idempotent: calling it while h is already being
	// drained is a no-op (the in-flight drain will notice the new
	// message via the re-check-after-release pattern).
	Schedule(h *localHandle)

	// Shutdown stops accepting new work and waits for in-flight drains to
	// finish or ctx to be canceled.
	Shutdown(ctx context.Context) error

	// MailboxSize reports h's current queue depth. Purely observational:
	// it never blocks Schedule/Register/Unregister and is safe to call
	// concurrently with them.
	MailboxSize(h *localHandle) int64
}

// runToIdle implements the wake-me-if-more handshake ExecutorDispatcher
// uses: exec is invoked to actually run the drain (a worker-pool
// submission), and the idle/busy bookkeeping with its "did more arrive
// while I was about to go idle" re-check lives here (ground: goakt
// pid.process()). ThreadDispatcher, CooperativeDispatcher and
// PinnedDispatcher run their own drain loops.
func runToIdle(h *localHandle, throughput int, exec func(task func())) {
	if !h.scheduled.CompareAndSwap(false, true) {
		return
	}
	exec(func() {
		for {
			h.drainOnce(throughput)
			h.scheduled.Store(false)
			if !h.mailbox.IsEmpty() && h.scheduled.CompareAndSwap(false, true) {
				continue
			}
			return
		}
	})
}
