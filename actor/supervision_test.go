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
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cchandler/akka/config"
	"github.com/cchandler/akka/supervisor"
)

func TestOneForOneRestartReplaysFactory(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	sup := supervisor.NewSupervisor(
		supervisor.WithStrategy(supervisor.OneForOneStrategy),
		supervisor.WithAnyErrorDirective(supervisor.RestartDirective),
		supervisor.WithRetry(5, time.Minute),
	)

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	act := newPanicActor()
	child, err := SpawnLink(ctx, parent, func() *panicActor { return act }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)

	require.NoError(t, child.Tell(ctx, struct{}{}, nil))

	require.Eventually(t, func() bool {
		act.mu.Lock()
		defer act.mu.Unlock()
		return act.restarts == 1
	}, time.Second, time.Millisecond)

	lh, ok := child.(*localHandle)
	require.True(t, ok)
	require.Eventually(t, func() bool { return lh.loadState() == stateRunning }, time.Second, time.Millisecond)
}

func TestOneForAllRestartsSiblings(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	sup := supervisor.NewSupervisor(
		supervisor.WithStrategy(supervisor.OneForAllStrategy),
		supervisor.WithAnyErrorDirective(supervisor.RestartDirective),
		supervisor.WithRetry(5, time.Minute),
	)

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	failing := newPanicActor()
	failingChild, err := SpawnLink(ctx, parent, func() *panicActor { return failing }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)

	sibling := newPanicActor()
	siblingChild, err := SpawnLink(ctx, parent, func() *panicActor { return sibling }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)
	_ = siblingChild

	require.NoError(t, failingChild.Tell(ctx, struct{}{}, nil))

	require.Eventually(t, func() bool {
		sibling.mu.Lock()
		defer sibling.mu.Unlock()
		return sibling.restarts == 1
	}, time.Second, time.Millisecond)
}

func TestOneForAllSharesRestartBudgetAcrossSiblings(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	sup := supervisor.NewSupervisor(
		supervisor.WithStrategy(supervisor.OneForAllStrategy),
		supervisor.WithAnyErrorDirective(supervisor.RestartDirective),
		supervisor.WithRetry(1, time.Minute),
	)

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	a := newPanicActor()
	childA, err := SpawnLink(ctx, parent, func() *panicActor { return a }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)

	b := newPanicActor()
	childB, err := SpawnLink(ctx, parent, func() *panicActor { return b }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)

	// First failure, on childA, consumes the one shared restart slot: both
	// siblings restart since the strategy is OneForAll.
	require.NoError(t, childA.Tell(ctx, struct{}{}, nil))
	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.restarts == 1
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.restarts == 1
	}, time.Second, time.Millisecond)

	// A second failure, on childB this time, draws from the SAME shared
	// counter rather than childB's own independent budget: with
	// maxRetries == 1, this second failure anywhere in the sibling group
	// exceeds the budget, so childB stops instead of restarting again.
	require.NoError(t, childB.Tell(ctx, struct{}{}, nil))
	lhB := childB.(*localHandle)
	require.Eventually(t, func() bool { return lhB.loadState() == stateStopped }, time.Second, time.Millisecond)

	b.mu.Lock()
	require.Equal(t, 1, b.restarts)
	b.mu.Unlock()
}

func TestTemporaryLifecycleNeverRestarts(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	sup := supervisor.NewSupervisor(
		supervisor.WithAnyErrorDirective(supervisor.RestartDirective),
		supervisor.WithRetry(5, time.Minute),
	)

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	act := newPanicActor()
	child, err := SpawnLink(ctx, parent, func() *panicActor { return act }, config.New(),
		WithRegistry(reg), WithSupervisor(sup), WithLifecycle(config.Temporary))
	require.NoError(t, err)

	require.NoError(t, child.Tell(ctx, struct{}{}, nil))

	lh := child.(*localHandle)
	require.Eventually(t, func() bool { return lh.loadState() == stateStopped }, time.Second, time.Millisecond)

	act.mu.Lock()
	defer act.mu.Unlock()
	require.Equal(t, 0, act.restarts)
}

func TestMaxRestartsExceededStopsActor(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	sup := supervisor.NewSupervisor(
		supervisor.WithAnyErrorDirective(supervisor.RestartDirective),
		supervisor.WithRetry(1, time.Minute),
	)

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	act := newPanicActor()
	child, err := SpawnLink(ctx, parent, func() *panicActor { return act }, config.New(),
		WithRegistry(reg), WithSupervisor(sup))
	require.NoError(t, err)

	require.NoError(t, child.Tell(ctx, struct{}{}, nil))
	require.Eventually(t, func() bool {
		act.mu.Lock()
		defer act.mu.Unlock()
		return act.restarts == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, child.Tell(ctx, struct{}{}, nil))

	lh := child.(*localHandle)
	require.Eventually(t, func() bool { return lh.loadState() == stateStopped }, time.Second, time.Millisecond)
}
