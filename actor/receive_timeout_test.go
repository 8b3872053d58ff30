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
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cchandler/akka/config"
)

type timeoutCountingActor struct {
	mu    sync.Mutex
	fired int
}

var _ Actor = (*timeoutCountingActor)(nil)

func (a *timeoutCountingActor) Init(context.Context) error              { return nil }
func (a *timeoutCountingActor) PreRestart(context.Context, error) error  { return nil }
func (a *timeoutCountingActor) PostRestart(context.Context, error) error { return nil }
func (a *timeoutCountingActor) Shutdown(context.Context) error          { return nil }

func (a *timeoutCountingActor) Receive(rctx *ReceiveContext) {
	if _, ok := rctx.Message().(*ReceiveTimeout); ok {
		a.mu.Lock()
		a.fired++
		a.mu.Unlock()
	}
}

func (a *timeoutCountingActor) Fired() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fired
}

func TestReceiveTimeoutFiresAfterIdleGap(t *testing.T) {
	ctx := context.Background()
	act := &timeoutCountingActor{}
	h, err := Spawn(ctx, func() *timeoutCountingActor { return act }, config.New(),
		WithRegistry(NewRegistry()), WithReceiveTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer h.Stop(ctx)

	require.Eventually(t, func() bool { return act.Fired() >= 1 }, time.Second, time.Millisecond)
}

func TestReceiveTimeoutResetsOnActivity(t *testing.T) {
	ctx := context.Background()
	act := &timeoutCountingActor{}
	h, err := Spawn(ctx, func() *timeoutCountingActor { return act }, config.New(),
		WithRegistry(NewRegistry()), WithReceiveTimeout(40*time.Millisecond))
	require.NoError(t, err)
	defer h.Stop(ctx)

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		require.NoError(t, h.Tell(ctx, struct{}{}, nil))
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 0, act.Fired(), "a busy actor never sees its receive-timeout fire")
}

func TestSetReceiveTimeoutDisablesOnNonPositive(t *testing.T) {
	ctx := context.Background()
	act := &timeoutCountingActor{}
	h, err := Spawn(ctx, func() *timeoutCountingActor { return act }, config.New(),
		WithRegistry(NewRegistry()), WithReceiveTimeout(20*time.Millisecond))
	require.NoError(t, err)
	defer h.Stop(ctx)

	require.NoError(t, h.SetReceiveTimeout(0))
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 0, act.Fired())
}
