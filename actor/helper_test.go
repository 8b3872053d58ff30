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
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// echoActor replies to every Ask with the message it received and counts
// how many times Receive ran.
type echoActor struct {
	mu    sync.Mutex
	count int
}

var _ Actor = (*echoActor)(nil)

func newEchoActor() *echoActor { return &echoActor{} }

func (a *echoActor) Init(context.Context) error { return nil }
func (a *echoActor) PreRestart(context.Context, error) error { return nil }
func (a *echoActor) PostRestart(context.Context, error) error { return nil }
func (a *echoActor) Shutdown(context.Context) error { return nil }

func (a *echoActor) Receive(rctx *ReceiveContext) {
	a.mu.Lock()
	a.count++
	a.mu.Unlock()

	switch msg := rctx.Message().(type) {
	case *pingMessage:
		rctx.Reply(&pongMessage{Echo: msg.Text})
	}
}

func (a *echoActor) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

type pingMessage struct{ Text string }
type pongMessage struct{ Echo string }

// forwarderActor relays whatever it receives to target instead of
// answering it itself, preserving the original sender's reply future.
type forwarderActor struct {
	target Handle
}

var _ Actor = (*forwarderActor)(nil)

func (a *forwarderActor) Init(context.Context) error              { return nil }
func (a *forwarderActor) PreRestart(context.Context, error) error  { return nil }
func (a *forwarderActor) PostRestart(context.Context, error) error { return nil }
func (a *forwarderActor) Shutdown(context.Context) error           { return nil }

func (a *forwarderActor) Receive(rctx *ReceiveContext) {
	_ = rctx.Forward(a.target)
}

// panicActor panics on every message, to drive supervision paths.
type panicActor struct {
	mu       sync.Mutex
	inits    int
	restarts int
}

var _ Actor = (*panicActor)(nil)

func newPanicActor() *panicActor { return &panicActor{} }

func (a *panicActor) Init(context.Context) error {
	a.mu.Lock()
	a.inits++
	a.mu.Unlock()
	return nil
}
func (a *panicActor) PreRestart(context.Context, error) error { return nil }
func (a *panicActor) PostRestart(context.Context, error) error {
	a.mu.Lock()
	a.restarts++
	a.mu.Unlock()
	return nil
}
func (a *panicActor) Shutdown(context.Context) error { return nil }

func (a *panicActor) Receive(rctx *ReceiveContext) {
	panic("boom")
}

// noopActor does nothing: a plain, well-behaved actor for lifecycle and
// registry tests that don't care about message handling.
type noopActor struct{}

var _ Actor = (*noopActor)(nil)

func newNoopActor() *noopActor { return &noopActor{} }

func (noopActor) Init(context.Context) error              { return nil }
func (noopActor) PreRestart(context.Context, error) error  { return nil }
func (noopActor) PostRestart(context.Context, error) error { return nil }
func (noopActor) Shutdown(context.Context) error           { return nil }
func (noopActor) Receive(*ReceiveContext)                  {}
