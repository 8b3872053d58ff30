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

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cchandler/akka/actor"
	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/config"
)

type countingActor struct {
	mu    sync.Mutex
	count int
}

var _ actor.Actor = (*countingActor)(nil)

func (a *countingActor) Init(context.Context) error              { return nil }
func (a *countingActor) PreRestart(context.Context, error) error  { return nil }
func (a *countingActor) PostRestart(context.Context, error) error { return nil }
func (a *countingActor) Shutdown(context.Context) error           { return nil }
func (a *countingActor) Receive(*actor.ReceiveContext) {
	a.mu.Lock()
	a.count++
	a.mu.Unlock()
}

func (a *countingActor) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

func TestScheduleOnceBeforeStartFails(t *testing.T) {
	ctx := context.Background()
	target, err := actor.Spawn(ctx, func() *countingActor { return &countingActor{} }, config.New(), actor.WithRegistry(actor.NewRegistry()))
	require.NoError(t, err)
	defer target.Stop(ctx)

	s := New()
	err = s.ScheduleOnce(target, struct{}{}, time.Millisecond)
	require.ErrorIs(t, err, actorerrors.ErrSchedulerNotStarted)
}

func TestScheduleOnceDeliversAfterDelay(t *testing.T) {
	ctx := context.Background()
	act := &countingActor{}
	target, err := actor.Spawn(ctx, func() *countingActor { return act }, config.New(), actor.WithRegistry(actor.NewRegistry()))
	require.NoError(t, err)
	defer target.Stop(ctx)

	s := New()
	s.Start(ctx)
	defer s.Stop(ctx)

	require.NoError(t, s.ScheduleOnce(target, struct{}{}, 10*time.Millisecond))
	require.Eventually(t, func() bool { return act.Count() == 1 }, time.Second, time.Millisecond)
}

func TestScheduleAtFixedRateDeliversRepeatedly(t *testing.T) {
	ctx := context.Background()
	act := &countingActor{}
	target, err := actor.Spawn(ctx, func() *countingActor { return act }, config.New(), actor.WithRegistry(actor.NewRegistry()))
	require.NoError(t, err)
	defer target.Stop(ctx)

	s := New()
	s.Start(ctx)
	defer s.Stop(ctx)

	require.NoError(t, s.ScheduleAtFixedRate(target, struct{}{}, 10*time.Millisecond))
	require.Eventually(t, func() bool { return act.Count() >= 3 }, time.Second, time.Millisecond)
}
