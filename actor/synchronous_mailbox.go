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
	"sync/atomic"

	"github.com/cchandler/akka/actorerrors"
)

// SynchronousMailbox is the capacity-0 rendezvous mailbox selected by
// `mailbox: synchronous` (SPEC_FULL.md §4.2). It has no buffering of its
// own: Enqueue hands the envelope through an unbuffered channel, so a
// producer blocks until the dispatcher's drain loop is actively waiting to
// receive. This gives the strongest possible backpressure — a slow actor
// stalls every sender directly, rather than letting a queue build up in
// front of it.
//
// Because Enqueue blocks, SynchronousMailbox is not appropriate behind a
// dispatcher that serializes delivery from a single goroutine shared by
// many handles (it would stall the whole pool); it is meant for
// ThreadDispatcher or PinnedDispatcher, which give each handle a goroutine
// of its own.
type SynchronousMailbox struct {
	ch       chan *Envelope
	disposed atomic.Bool
	done     chan struct{}
}

var _ Mailbox = (*SynchronousMailbox)(nil)

// NewSynchronousMailbox returns a ready-to-use rendezvous mailbox.
func NewSynchronousMailbox() *SynchronousMailbox {
	return &SynchronousMailbox{
		ch:   make(chan *Envelope),
		done: make(chan struct{}),
	}
}

// Enqueue blocks until a Dequeue call is ready to receive env, or until
// Dispose runs, whichever happens first.
func (m *SynchronousMailbox) Enqueue(env *Envelope) error {
	if m.disposed.Load() {
		return actorerrors.ErrMailboxDisposed
	}
	select {
	case m.ch <- env:
		return nil
	case <-m.done:
		return actorerrors.ErrMailboxDisposed
	}
}

// Dequeue returns immediately: a producer currently blocked in Enqueue, if
// any, or nil otherwise. It never blocks, in keeping with the Mailbox
// contract — a dispatcher polls it the same way it polls the other
// mailbox kinds.
func (m *SynchronousMailbox) Dequeue() *Envelope {
	select {
	case env := <-m.ch:
		return env
	default:
		return nil
	}
}

// IsEmpty always reports true between rendezvous points: there is never a
// buffered envelope to observe, only a producer waiting to hand one off.
func (m *SynchronousMailbox) IsEmpty() bool {
	return len(m.ch) == 0
}

// Len always returns 0: the channel has no buffer, so a producer parked in
// Enqueue is not counted.
func (m *SynchronousMailbox) Len() int64 {
	return int64(len(m.ch))
}

// Dispose unblocks any producer parked in Enqueue and marks the mailbox
// closed.
func (m *SynchronousMailbox) Dispose() {
	if m.disposed.CompareAndSwap(false, true) {
		close(m.done)
	}
}
