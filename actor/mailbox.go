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

// Mailbox defines the contract for an actor's message queue.
//
// Concurrency and ordering
//   - Implementations MUST be safe for multiple concurrent producers calling
//     Enqueue.
//   - The dispatcher consumes from a single logical reader at a time (the
//     processing token of spec.md §3), so implementations SHOULD optimize
//     Dequeue for a single consumer (MPSC). FairMailbox-style variants that
//     relax this must document it explicitly; this core ships none.
//   - Ordering is FIFO.
//
// Non-blocking behavior
//   - Enqueue MUST NOT block, with one exception: SynchronousMailbox, whose
//     Enqueue blocks until a Dequeue takes the envelope. A bounded mailbox
//     applies its configured RejectionPolicy inside Enqueue and returns
//     actorerrors.ErrMailboxFull when the policy rejects; an unbounded one
//     always returns nil barring Dispose.
//   - Dequeue MUST NOT block; it returns nil when the mailbox is empty.
//
// Resource management
//   - Dispose releases resources and unblocks internal waiters. After Dispose,
//     Enqueue returns actorerrors.ErrMailboxDisposed. Whether Dequeue still
//     returns envelopes queued before Dispose depends on the implementation
//     (DefaultMailbox does).
type Mailbox interface {
	// Enqueue pushes an envelope into the mailbox.
	Enqueue(env *Envelope) error

	// Dequeue pops the next envelope, or nil if the mailbox is empty.
	Dequeue() *Envelope

	// IsEmpty reports whether the mailbox currently holds no envelopes.
	// Best-effort under concurrency.
	IsEmpty() bool

	// Len returns a snapshot count of queued envelopes. May be
	// approximate under concurrency.
	Len() int64

	// Dispose releases resources and unblocks internal waiters. The
	// mailbox must not be used after Dispose returns.
	Dispose()
}

// MailboxKind selects which concrete Mailbox a handle is given at Spawn
// time.
type MailboxKind int

const (
	// UnboundedMailbox selects DefaultMailbox.
	UnboundedMailbox MailboxKind = iota
	// BoundedMailboxKind selects BoundedMailbox.
	BoundedMailboxKind
	// SynchronousMailboxKind selects SynchronousMailbox.
	SynchronousMailboxKind
)

// RejectionPolicy governs what BoundedMailbox.Enqueue does when the
// mailbox is saturated.
type RejectionPolicy int

const (
	// RejectAbort returns actorerrors.ErrMailboxFull to the caller.
	RejectAbort RejectionPolicy = iota
	// RejectDropNewest silently discards the incoming envelope.
	RejectDropNewest
	// RejectDropOldest evicts the head of the queue to make room for the
	// incoming envelope.
	RejectDropOldest
)
