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
	"sync"
	"sync/atomic"

	"github.com/cchandler/akka/actorerrors"
)

// mpscNode is a node of the MPSC queue specialized for *Envelope.
type mpscNode struct {
	next atomic.Pointer[mpscNode]
	data *Envelope
}

// mpscNodePool avoids a per-message allocation by recycling nodes.
var mpscNodePool = sync.Pool{New: func() any { return new(mpscNode) }}

// DefaultMailbox is the runtime's default unbounded mailbox.
//
// Concurrency model: Multi-Producer, Single-Consumer. Many goroutines may
// call Enqueue concurrently; exactly one goroutine (the dispatcher holding
// the processing token) may call Dequeue at a time.
//
// FIFO across all producers, lock-free via atomic pointer swaps, zero
// allocations per message once the node pool has warmed up. IsEmpty is
// O(1); Len is an O(n) snapshot traversal meant for diagnostics only.
type DefaultMailbox struct {
	head     atomic.Pointer[mpscNode] // consumer-owned
	_pad1    [64]byte
	tail     atomic.Pointer[mpscNode] // producer-owned
	_pad2    [64]byte
	disposed atomic.Bool
}

var _ Mailbox = (*DefaultMailbox)(nil)

// NewDefaultMailbox returns a ready-to-use DefaultMailbox. It starts with a
// dummy sentinel node so producers can always append by swapping tail and
// linking through the previous node, even on the very first Enqueue.
func NewDefaultMailbox() *DefaultMailbox {
	dummy := mpscNodePool.Get().(*mpscNode)
	dummy.next.Store(nil)
	dummy.data = nil
	m := &DefaultMailbox{}
	m.head.Store(dummy)
	m.tail.Store(dummy)
	return m
}

// Enqueue places env at the tail. Never blocks; returns
// actorerrors.ErrMailboxDisposed after Dispose, nil otherwise.
func (m *DefaultMailbox) Enqueue(env *Envelope) error {
	if m.disposed.Load() {
		return actorerrors.ErrMailboxDisposed
	}
	n := mpscNodePool.Get().(*mpscNode)
	n.data = env
	prev := m.tail.Swap(n)
	prev.next.Store(n)
	return nil
}

// Dequeue removes and returns the envelope at the head, or nil if the
// mailbox is empty. Must be called by a single consumer goroutine at a
// time.
func (m *DefaultMailbox) Dequeue() *Envelope {
	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}
	m.head.Store(next)
	value := next.data
	next.data = nil
	head.next.Store(nil)
	mpscNodePool.Put(head)
	return value
}

// Len returns a best-effort O(n) snapshot traversal from head to tail.
func (m *DefaultMailbox) Len() int64 {
	h := m.head.Load()
	n := h.next.Load()
	var count int64
	for n != nil {
		count++
		n = n.next.Load()
	}
	return count
}

// IsEmpty reports whether the mailbox is empty. O(1), safe under
// concurrent producers.
func (m *DefaultMailbox) IsEmpty() bool {
	head := m.head.Load()
	return head.next.Load() == nil
}

// Dispose marks the mailbox closed. Subsequent Enqueue calls fail with
// actorerrors.ErrMailboxDisposed; Dequeue continues to drain whatever was
// already queued, then returns nil.
func (m *DefaultMailbox) Dispose() {
	m.disposed.Store(true)
}
