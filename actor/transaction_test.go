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
	"github.com/cchandler/akka/transaction"
)

// fakeSet is the simplest possible transaction.Set: an opaque string ID.
type fakeSet string

func (s fakeSet) ID() string { return string(s) }

// fakeCoordinator is a single-goroutine-at-a-time transaction.Coordinator
// test double: it only ever tracks one ambient Set, enough to exercise the
// Join/Current/Commit/Abort call shape a real STM collaborator would see.
type fakeCoordinator struct {
	mu      sync.Mutex
	current transaction.Set
	dead    map[string]bool
	seq     int
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{dead: make(map[string]bool)}
}

var _ transaction.Coordinator = (*fakeCoordinator)(nil)

func (c *fakeCoordinator) Current(context.Context) (transaction.Set, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, false
	}
	return c.current, true
}

func (c *fakeCoordinator) NewSet(context.Context) transaction.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	set := fakeSet(time.Now().Format("150405") + "-" + string(rune('a'+c.seq)))
	c.current = set
	return set
}

func (c *fakeCoordinator) Clear(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

func (c *fakeCoordinator) Abort(_ context.Context, s transaction.Set) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead[s.ID()] {
		return transaction.ErrDeadTransaction
	}
	c.dead[s.ID()] = true
	return nil
}

func (c *fakeCoordinator) Commit(_ context.Context, s transaction.Set) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead[s.ID()] {
		return transaction.ErrDeadTransaction
	}
	c.dead[s.ID()] = true
	return nil
}

func (c *fakeCoordinator) Join(_ context.Context, s transaction.Set, _ transaction.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead[s.ID()] {
		return transaction.ErrDeadTransaction
	}
	c.current = s
	return nil
}

// txCapturingActor records the transaction.Set seen on the ReceiveContext of
// the last message it handled, letting a test assert the enlisted Set rode
// along with the envelope from sender to receiver.
type txCapturingActor struct {
	mu     sync.Mutex
	lastTx transaction.Set
}

var _ Actor = (*txCapturingActor)(nil)

func (a *txCapturingActor) Init(context.Context) error              { return nil }
func (a *txCapturingActor) PreRestart(context.Context, error) error  { return nil }
func (a *txCapturingActor) PostRestart(context.Context, error) error { return nil }
func (a *txCapturingActor) Shutdown(context.Context) error           { return nil }
func (a *txCapturingActor) Receive(rctx *ReceiveContext) {
	a.mu.Lock()
	a.lastTx = rctx.TxSet()
	a.mu.Unlock()
}

func (a *txCapturingActor) lastSet() transaction.Set {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTx
}

func TestEnvelopeCarriesSenderEnlistedTxSet(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	coord := newFakeCoordinator()

	act := &txCapturingActor{}
	target, err := Spawn(ctx, func() *txCapturingActor { return act }, config.New(),
		WithRegistry(reg), WithTransactionCoordinator(coord))
	require.NoError(t, err)
	defer target.Stop(ctx)

	sender, err := Spawn(ctx, newNoopActor, config.New(),
		WithRegistry(reg), WithTransactionCoordinator(coord))
	require.NoError(t, err)
	defer sender.Stop(ctx)

	set := coord.NewSet(ctx)
	require.NoError(t, target.Tell(ctx, "hi", sender))

	require.Eventually(t, func() bool { return act.lastSet() != nil }, time.Second, time.Millisecond)
	require.Equal(t, set.ID(), act.lastSet().ID())
}

func TestNoCoordinatorLeavesTxSetNil(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	act := &txCapturingActor{}
	target, err := Spawn(ctx, func() *txCapturingActor { return act }, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer target.Stop(ctx)

	require.NoError(t, target.Tell(ctx, "hi", nil))
	require.Eventually(t, func() bool {
		act.mu.Lock()
		defer act.mu.Unlock()
		return true
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.Nil(t, act.lastSet())
}
