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
)

func TestSpawnLinkInstallsSupervisor(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)
	defer parent.Stop(ctx)

	child, err := SpawnLink(ctx, parent, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)

	parentHandle := parent.(*localHandle)
	childHandle := child.(*localHandle)
	_, linked := parentHandle.subordinates.Get(childHandle.id)
	require.True(t, linked)
}

func TestSpawnWithDispatcherKinds(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	kinds := []config.DispatcherKind{
		config.ThreadBased,
		config.ExecutorEventDriven,
		config.CooperativeSingleThread,
		config.CooperativePool,
		config.Pinned,
	}

	for _, kind := range kinds {
		act := newEchoActor()
		h, err := Spawn(ctx, func() *echoActor { return act }, config.New(),
			WithRegistry(reg), WithDispatcher(kind))
		require.NoError(t, err)

		reply, err := h.Ask(ctx, &pingMessage{Text: "x"}, nil, time.Second)
		require.NoError(t, err)
		pong, ok := reply.(*pongMessage)
		require.True(t, ok)
		require.Equal(t, "x", pong.Echo)

		require.NoError(t, h.Stop(ctx))
	}
}

func TestSpawnWithMailboxKinds(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	// SynchronousMailbox pairs with ThreadBased/Pinned only (see
	// synchronous_mailbox.go): its Enqueue blocks until a dispatcher is
	// actively draining, which would stall every other handle sharing an
	// ExecutorEventDriven pool's goroutines.
	cases := []struct {
		mailbox    config.MailboxKind
		dispatcher config.DispatcherKind
	}{
		{config.UnboundedMailbox, config.ExecutorEventDriven},
		{config.BoundedMailboxKind, config.ExecutorEventDriven},
		{config.SynchronousMailboxKind, config.ThreadBased},
	}

	for _, tc := range cases {
		act := newEchoActor()
		h, err := Spawn(ctx, func() *echoActor { return act },
			config.New(config.WithMailbox(tc.mailbox, 16)),
			WithRegistry(reg), WithDispatcher(tc.dispatcher))
		require.NoError(t, err)

		reply, err := h.Ask(ctx, &pingMessage{Text: "x"}, nil, time.Second)
		require.NoError(t, err)
		pong, ok := reply.(*pongMessage)
		require.True(t, ok)
		require.Equal(t, "x", pong.Echo)

		require.NoError(t, h.Stop(ctx))
	}
}

func TestStopCascadesToSubordinates(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	parent, err := Spawn(ctx, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)

	child, err := SpawnLink(ctx, parent, newNoopActor, config.New(), WithRegistry(reg))
	require.NoError(t, err)

	require.NoError(t, parent.Stop(ctx))

	childHandle := child.(*localHandle)
	require.Equal(t, stateStopped, childHandle.loadState())
}
