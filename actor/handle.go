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

	"github.com/cchandler/akka/future"
)

// Handle is the only externally visible reference to an actor — local or
// remote. Holders never see the distinction directly; a local-only
// operation invoked on a Remote handle fails with
// actorerrors.ErrRemoteOperationUnsupported at the call site rather than
// through a nil-implementation panic.
type Handle interface {
	// ID returns the actor's stable identity.
	ID() ActorID

	// Tag returns the actor's current user-facing label.
	Tag() ActorTag

	// Tell enqueues a fire-and-forget envelope. sender may be nil.
	// Fails with actorerrors.ErrNotStarted before Start, or
	// actorerrors.ErrStopped after Stop.
	Tell(ctx context.Context, msg any, sender Handle) error

	// Ask enqueues an envelope carrying a fresh reply future and blocks
	// the caller up to timeout for the answer. timeout <= 0 uses the
	// handle's configured default reply timeout.
	Ask(ctx context.Context, msg any, sender Handle, timeout time.Duration) (any, error)

	// AskFuture is Ask without blocking: it returns the future
	// immediately for the caller to Await on its own schedule.
	AskFuture(ctx context.Context, msg any, sender Handle) (future.Future, error)

	// Link installs this handle as other's supervisor. Fails with
	// actorerrors.ErrLinkageError if other already has a supervisor.
	Link(other Handle) error

	// Unlink removes other from this handle's subordinate map. Fails
	// with actorerrors.ErrLinkageError if other is not currently linked
	// to this handle.
	Unlink(other Handle) error

	// StartLink starts other (if not already) and then Links it to this
	// handle, atomically from the caller's point of view.
	StartLink(ctx context.Context, other Handle) error

	// Start transitions NotStarted -> Running, running Actor.Init.
	Start(ctx context.Context) error

	// Stop drains no further envelopes: it stops and unlinks every
	// subordinate first, then transitions this handle to Stopped,
	// running Actor.Shutdown.
	Stop(ctx context.Context) error

	// MakeRemote converts this handle into a proxy for the actor living
	// at addr. Only legal before Start or while BeingRestarted; any other
	// state fails with actorerrors.ErrLinkageError.
	MakeRemote(addr Address) error

	// SetReceiveTimeout arms the duration of mailbox inactivity after
	// which this handle receives a ReceiveTimeout message (§4.7). d <= 0
	// disables it. Unsupported on a Remote handle.
	SetReceiveTimeout(d time.Duration) error

	// forward re-sends env to this handle, preserving env's original
	// sender and reply future. Package-private: only reachable through
	// ReceiveContext.Forward.
	forward(ctx context.Context, env *Envelope) error
}

// Address identifies the remote node (host, port) an actor's home or a
// RemoteHandle's target lives at.
type Address struct {
	Host string
	Port int
}
