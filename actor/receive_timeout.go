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
	"time"
)

// SetReceiveTimeout arms d as the duration of inactivity (no envelope
// processed) after which this handle receives a ReceiveTimeout message.
// Passing d <= 0 disables it. Receiving any message — including
// ReceiveTimeout itself — cancels and reschedules the timer (spec.md
// §4.7), so a busy actor never sees it fire.
func (h *localHandle) SetReceiveTimeout(d time.Duration) error {
	if h.asRemote != nil {
		return h.asRemote.SetReceiveTimeout(d)
	}
	h.timeoutMu.Lock()
	h.receiveTimeout = d
	h.timeoutMu.Unlock()
	h.scheduleReceiveTimeout()
	return nil
}

// cancelReceiveTimeout stops any pending timer without rearming it. Called
// at the top of invoke, before the envelope just dequeued is processed.
func (h *localHandle) cancelReceiveTimeout() {
	h.timeoutMu.Lock()
	defer h.timeoutMu.Unlock()
	if h.timeoutTimer != nil {
		h.timeoutTimer.Stop()
		h.timeoutTimer = nil
	}
}

// scheduleReceiveTimeout arms a fresh one-shot timer if a non-zero
// receiveTimeout is configured. Called after invoke successfully processes
// an envelope, so the window always measures time since the last message,
// never wall-clock since Start.
func (h *localHandle) scheduleReceiveTimeout() {
	h.timeoutMu.Lock()
	defer h.timeoutMu.Unlock()

	if h.timeoutTimer != nil {
		h.timeoutTimer.Stop()
		h.timeoutTimer = nil
	}
	if h.receiveTimeout <= 0 {
		return
	}
	h.timeoutTimer = time.AfterFunc(h.receiveTimeout, func() {
		_ = h.Tell(context.Background(), &ReceiveTimeout{}, nil)
	})
}
