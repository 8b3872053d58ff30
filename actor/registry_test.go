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

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/config"
)

func TestRegistryFindByIDAndTag(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	h, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg), WithTag("workers"))
	require.NoError(t, err)
	defer h.Stop(ctx)

	found, ok := reg.FindByID(h.ID())
	require.True(t, ok)
	require.Equal(t, h.ID(), found.ID())

	byTag := reg.FindByTag("workers")
	require.Len(t, byTag, 1)
	require.Equal(t, h.ID(), byTag[0].ID())
}

func TestRegistryFindByImplementation(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	h1, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer h1.Stop(ctx)

	h2, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer h2.Stop(ctx)

	matches := reg.FindByImplementation(newNoopActor())
	ids := map[ActorID]bool{}
	for _, m := range matches {
		ids[m.ID()] = true
	}
	require.True(t, ids[h1.ID()])
	require.True(t, ids[h2.ID()])
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	reg := NewRegistry()
	mailbox := NewDefaultMailbox()
	dispatcher := NewThreadDispatcher()
	h := newLocalHandle("", Factory(func() Actor { return newNoopActor() }), mailbox, dispatcher, config.New(), nil, config.Permanent, nil, nil, nil, reg)

	require.NoError(t, reg.Register(h, newNoopActor()))
	err := reg.Register(h, newNoopActor())
	require.ErrorIs(t, err, actorerrors.ErrActorAlreadyExists)
}

// TestStopRemovesFromRegistry verifies that Stop itself - not a manual
// Unregister call at the test site - removes a handle from every index of
// the Registry it was spawned into.
func TestStopRemovesFromRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	h, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg), WithTag("temp"))
	require.NoError(t, err)

	_, ok := reg.FindByID(h.ID())
	require.True(t, ok)

	require.NoError(t, h.Stop(ctx))

	_, ok = reg.FindByID(h.ID())
	require.False(t, ok)
	require.Empty(t, reg.FindByTag("temp"))
}
