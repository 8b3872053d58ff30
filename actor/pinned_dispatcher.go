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
	"hash/fnv"
	"sync"
)

// PinnedDispatcher binds each handle to one fixed worker for the handle's
// entire lifetime: the worker is picked by hashing the handle's ActorID on
// each Schedule, and the same ID always hashes to the same worker.
// Producers only ever post through that worker's own channel, so the
// processing token is the worker goroutine's own single-threaded access;
// Schedule's CompareAndSwap on the handle's scheduled flag only keeps a
// handle from being queued twice.
type PinnedDispatcher struct {
	workers []*pinnedWorker
}

type pinnedWorker struct {
	queue chan *localHandle
	done  chan struct{}
	wg    sync.WaitGroup
}

var _ Dispatcher = (*PinnedDispatcher)(nil)

// NewPinnedDispatcher starts n fixed worker goroutines, each owning its own
// ready queue.
func NewPinnedDispatcher(n int) *PinnedDispatcher {
	if n < 1 {
		n = 1
	}
	d := &PinnedDispatcher{workers: make([]*pinnedWorker, n)}
	for i := range d.workers {
		w := &pinnedWorker{
			queue: make(chan *localHandle, 1024),
			done:  make(chan struct{}),
		}
		d.workers[i] = w
		w.wg.Add(1)
		go w.run()
	}
	return d
}

func (w *pinnedWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case h := <-w.queue:
			for {
				h.drainOnce(0)
				if h.mailbox.IsEmpty() {
					break
				}
			}
			h.scheduled.Store(false)
			if !h.mailbox.IsEmpty() && h.scheduled.CompareAndSwap(false, true) {
				select {
				case w.queue <- h:
				case <-w.done:
					return
				}
			}
		case <-w.done:
			return
		}
	}
}

func (d *PinnedDispatcher) workerFor(h *localHandle) *pinnedWorker {
	hs := fnv.New32a()
	_, _ = hs.Write(h.id[:])
	return d.workers[hs.Sum32()%uint32(len(d.workers))]
}

// Kind implements Dispatcher.
func (d *PinnedDispatcher) Kind() DispatcherKind { return Pinned }

// Register assigns h to its fixed worker. No bookkeeping is needed beyond
// the hash itself, which workerFor recomputes on every call — cheap and
// stateless, so there is nothing to leak if Unregister is skipped.
func (d *PinnedDispatcher) Register(*localHandle) {}

// Unregister is a no-op: PinnedDispatcher holds no per-handle state.
func (d *PinnedDispatcher) Unregister(*localHandle) {}

// Schedule posts h to its assigned worker's queue if it is not already
// pending there.
func (d *PinnedDispatcher) Schedule(h *localHandle) {
	if !h.scheduled.CompareAndSwap(false, true) {
		return
	}
	w := d.workerFor(h)
	select {
	case w.queue <- h:
	case <-w.done:
	}
}

// MailboxSize implements Dispatcher.
func (d *PinnedDispatcher) MailboxSize(h *localHandle) int64 {
	return h.mailbox.Len()
}

// Shutdown stops every fixed worker.
func (d *PinnedDispatcher) Shutdown(ctx context.Context) error {
	waitDone := make(chan struct{})
	go func() {
		for _, w := range d.workers {
			close(w.done)
			w.wg.Wait()
		}
		close(waitDone)
	}()
	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
