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

// ThreadDispatcher gives every registered handle its own long-lived
// goroutine, parked on a sync.Cond until Schedule wakes it. This is the
// highest-isolation, highest-memory-cost variant: one handle can never
// starve another's goroutine, but a system with many thousands of actors
// pays for that many parked goroutines.
type ThreadDispatcher struct {
	mu       sync.Mutex
	handles  map[*localHandle]*threadWorker
	shutdown bool
}

type threadWorker struct {
	cond    *sync.Cond
	woken   bool
	stopped bool
}

var _ Dispatcher = (*ThreadDispatcher)(nil)

// NewThreadDispatcher returns a ready-to-use ThreadDispatcher.
func NewThreadDispatcher() *ThreadDispatcher {
	return &ThreadDispatcher{handles: make(map[*localHandle]*threadWorker)}
}

// Kind implements Dispatcher.
func (d *ThreadDispatcher) Kind() DispatcherKind { return ThreadBased }

// Register starts h's dedicated goroutine.
func (d *ThreadDispatcher) Register(h *localHandle) {
	w := &threadWorker{cond: sync.NewCond(&sync.Mutex{})}

	d.mu.Lock()
	d.handles[h] = w
	d.mu.Unlock()

	go func() {
		for {
			w.cond.L.Lock()
			for !w.woken && !w.stopped {
				w.cond.Wait()
			}
			if w.stopped {
				w.cond.L.Unlock()
				return
			}
			w.woken = false
			w.cond.L.Unlock()

			for {
				h.drainOnce(0)
				if h.mailbox.IsEmpty() {
					break
				}
			}
		}
	}()
}

// Unregister stops h's dedicated goroutine.
func (d *ThreadDispatcher) Unregister(h *localHandle) {
	d.mu.Lock()
	w, ok := d.handles[h]
	delete(d.handles, h)
	d.mu.Unlock()
	if !ok {
		return
	}
	w.cond.L.Lock()
	w.stopped = true
	w.cond.L.Unlock()
	w.cond.Broadcast()
}

// Schedule wakes h's dedicated goroutine.
func (d *ThreadDispatcher) Schedule(h *localHandle) {
	d.mu.Lock()
	w, ok := d.handles[h]
	d.mu.Unlock()
	if !ok {
		return
	}
	w.cond.L.Lock()
	w.woken = true
	w.cond.L.Unlock()
	w.cond.Signal()
}

// MailboxSize implements Dispatcher.
func (d *ThreadDispatcher) MailboxSize(h *localHandle) int64 {
	return h.mailbox.Len()
}

// Shutdown stops every registered handle's goroutine.
func (d *ThreadDispatcher) Shutdown(_ context.Context) error {
	d.mu.Lock()
	d.shutdown = true
	handles := make([]*localHandle, 0, len(d.handles))
	for h := range d.handles {
		handles = append(handles, h)
	}
	d.mu.Unlock()

	for _, h := range handles {
		d.Unregister(h)
	}
	return nil
}
