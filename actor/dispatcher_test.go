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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cchandler/akka/config"
)

// newIdleHandle builds a localHandle wired to dispatcher but never started,
// so envelopes enqueued directly onto its mailbox sit there undrained —
// enough to observe MailboxSize without racing a worker goroutine.
func newIdleHandle(dispatcher Dispatcher) *localHandle {
	mailbox := NewDefaultMailbox()
	return newLocalHandle("", Factory(func() Actor { return newNoopActor() }), mailbox, dispatcher, config.New(), nil, config.Permanent, nil, nil, nil, nil)
}

func TestThreadDispatcherMailboxSizeReflectsQueueDepth(t *testing.T) {
	d := NewThreadDispatcher()
	h := newIdleHandle(d)

	require.EqualValues(t, 0, d.MailboxSize(h))

	require.NoError(t, h.mailbox.Enqueue(newEnvelope(struct{}{}, nil, nil, nil)))
	require.NoError(t, h.mailbox.Enqueue(newEnvelope(struct{}{}, nil, nil, nil)))

	require.EqualValues(t, 2, d.MailboxSize(h))
}

func TestCooperativeDispatcherMailboxSizeReflectsQueueDepth(t *testing.T) {
	d := NewCooperativeDispatcher(1, 1)
	defer d.Shutdown(context.Background())
	h := newIdleHandle(d)

	require.EqualValues(t, 0, d.MailboxSize(h))

	require.NoError(t, h.mailbox.Enqueue(newEnvelope(struct{}{}, nil, nil, nil)))

	require.EqualValues(t, 1, d.MailboxSize(h))
}
