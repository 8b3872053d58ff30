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
	"sync"
)

// CooperativeDispatcher drains every handle registered to it from a small,
// fixed set of worker goroutines sharing one ready queue, each turn bounded
// by throughput messages. Unlike ThreadDispatcher/ExecutorDispatcher, a
// handle with a long backlog does not hold a worker until its mailbox is
// empty: after throughput messages it is pushed to the back of the ready
// queue so other handles waiting behind it get a turn. Set workers to 1 for
// CooperativeSingleThread, or more for CooperativePool.
type CooperativeDispatcher struct {
	throughput int
	ready      chan *localHandle
	done       chan struct{}
	wg         sync.WaitGroup
	kind       DispatcherKind
}

var _ Dispatcher = (*CooperativeDispatcher)(nil)

// NewCooperativeDispatcher starts workers goroutines sharing one ready
// queue, each draining at most throughput messages per handle per turn.
// workers == 1 reports Kind() == CooperativeSingleThread; workers > 1
// reports CooperativePool.
func NewCooperativeDispatcher(workers, throughput int) *CooperativeDispatcher {
	if workers < 1 {
		workers = 1
	}
	if throughput < 1 {
		throughput = 1
	}
	kind := CooperativePool
	if workers == 1 {
		kind = CooperativeSingleThread
	}

	d := &CooperativeDispatcher{
		throughput: throughput,
		ready:      make(chan *localHandle, 1024),
		done:       make(chan struct{}),
		kind:       kind,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.runWorker()
	}
	return d
}

func (d *CooperativeDispatcher) runWorker() {
	defer d.wg.Done()
	for {
		select {
		case h := <-d.ready:
			h.drainOnce(d.throughput)
			h.scheduled.Store(false)
			if !h.mailbox.IsEmpty() && h.scheduled.CompareAndSwap(false, true) {
				d.enqueue(h)
			}
		case <-d.done:
			return
		}
	}
}

func (d *CooperativeDispatcher) enqueue(h *localHandle) {
	select {
	case d.ready <- h:
	case <-d.done:
	}
}

// Kind implements Dispatcher.
func (d *CooperativeDispatcher) Kind() DispatcherKind { return d.kind }

// Register is a no-op: handles share the dispatcher's common ready queue.
func (d *CooperativeDispatcher) Register(*localHandle) {}

// Unregister is a no-op for the same reason.
func (d *CooperativeDispatcher) Unregister(*localHandle) {}

// Schedule pushes h onto the ready queue if it is not already pending.
func (d *CooperativeDispatcher) Schedule(h *localHandle) {
	if h.scheduled.CompareAndSwap(false, true) {
		d.enqueue(h)
	}
}

// MailboxSize implements Dispatcher.
func (d *CooperativeDispatcher) MailboxSize(h *localHandle) int64 {
	return h.mailbox.Len()
}

// Shutdown stops every worker goroutine. Handles still sitting in the
// ready queue are left undrained.
func (d *CooperativeDispatcher) Shutdown(ctx context.Context) error {
	close(d.done)
	waitDone := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
