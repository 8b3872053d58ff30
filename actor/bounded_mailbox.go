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
	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/cchandler/akka/actorerrors"
)

// BoundedMailbox is a fixed-capacity mailbox backed by a ring buffer. Unlike
// the teacher's blocking variant, Enqueue here never blocks: what happens
// when the buffer is full is governed by a RejectionPolicy, applied
// entirely within Enqueue so callers never need their own saturation
// check.
//
// Concurrency: safe for multiple producers (MPSC); Dequeue is meant for a
// single consumer holding the processing token.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
	policy     RejectionPolicy
}

var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a bounded mailbox of the given capacity,
// applying policy whenever Enqueue finds the buffer full. capacity must be
// positive.
func NewBoundedMailbox(capacity int, policy RejectionPolicy) *BoundedMailbox {
	return &BoundedMailbox{
		underlying: gods.NewRingBuffer(uint64(capacity)),
		policy:     policy,
	}
}

// Enqueue attempts to place env in the buffer. When full, behavior follows
// the configured RejectionPolicy:
//   - RejectAbort returns actorerrors.ErrMailboxFull.
//   - RejectDropNewest discards env and returns nil.
//   - RejectDropOldest evicts the current head to make room, then retries
//     once.
//
// Returns actorerrors.ErrMailboxDisposed after Dispose.
func (mailbox *BoundedMailbox) Enqueue(env *Envelope) error {
	ok, err := mailbox.underlying.Offer(env)
	if err != nil {
		return actorerrors.ErrMailboxDisposed
	}
	if ok {
		return nil
	}

	switch mailbox.policy {
	case RejectDropNewest:
		return nil
	case RejectDropOldest:
		_, _ = mailbox.underlying.Get()
		if ok, err := mailbox.underlying.Offer(env); err == nil && ok {
			return nil
		}
		return actorerrors.ErrMailboxFull
	default:
		return actorerrors.ErrMailboxFull
	}
}

// Dequeue removes and returns the next envelope, or nil if the mailbox is
// empty.
func (mailbox *BoundedMailbox) Dequeue() *Envelope {
	if mailbox.underlying.Len() == 0 {
		return nil
	}
	item, err := mailbox.underlying.Get()
	if err != nil {
		return nil
	}
	if v, ok := item.(*Envelope); ok {
		return v
	}
	return nil
}

// IsEmpty reports whether the mailbox currently has no envelopes. A
// best-effort snapshot under concurrency.
func (mailbox *BoundedMailbox) IsEmpty() bool {
	return mailbox.underlying.Len() == 0
}

// Len returns a snapshot count of queued envelopes.
func (mailbox *BoundedMailbox) Len() int64 {
	return int64(mailbox.underlying.Len())
}

// Dispose releases the ring buffer and unblocks any internal waiters. The
// mailbox must not be used after Dispose returns.
func (mailbox *BoundedMailbox) Dispose() {
	mailbox.underlying.Dispose()
}
