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

	"github.com/flowchartsman/retry"

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/future"
	"github.com/cchandler/akka/serialization"
	"github.com/cchandler/akka/transport"
)

// remoteHandle is the proxy for an actor living on another node. It is
// reached two ways: a localHandle delegates Tell/Ask/AskFuture to one once
// MakeRemote has run, and SpawnRemote registers one directly. Either way
// it only sends; every other Handle operation fails with
// actorerrors.ErrRemoteOperationUnsupported.
type remoteHandle struct {
	id        ActorID
	tag       ActorTag
	home      transport.Address
	transport transport.Transport
	codec     serialization.PayloadCodec
	retrier   *retry.Retrier
}

// tellRetryAttempts/tellRetryMinBackoff/tellRetryMaxBackoff bound the retry
// applied to a one-way remote Tell: a send that fails against a transport
// blip gets a few quick attempts before the error reaches the caller.
const (
	tellRetryAttempts   = 3
	tellRetryMinBackoff = 25 * time.Millisecond
	tellRetryMaxBackoff = 400 * time.Millisecond
)

func newRemoteHandle(id ActorID, tag ActorTag, addr Address, trans transport.Transport, codec serialization.PayloadCodec) *remoteHandle {
	return &remoteHandle{
		id:        id,
		tag:       tag,
		home:      transport.Address{Host: addr.Host, Port: addr.Port},
		transport: trans,
		codec:     codec,
		retrier:   retry.NewRetrier(tellRetryAttempts, tellRetryMinBackoff, tellRetryMaxBackoff),
	}
}

// Tell encodes msg with the configured codec and delivers it one-way,
// retrying a failed send a bounded number of times. sender is not carried
// over the wire: a remote reply, if any, answers through the transport's
// own correlation mechanism, not this core's Envelope.sender field.
func (r *remoteHandle) Tell(ctx context.Context, msg any, _ Handle) error {
	wire, err := r.codec.Encode(msg)
	if err != nil {
		return err
	}
	return r.retrier.RunContext(ctx, func(ctx context.Context) error {
		return r.transport.SendOneWay(ctx, r.home, transport.ActorID(r.id), wire)
	})
}

// Ask encodes msg, sends it expecting a reply, and blocks up to timeout
// for the reply. Ask does not decode the reply itself: the
// raw bytes a Transport resolves its future to are returned verbatim,
// since PayloadCodec has no way to know the expected response type.
func (r *remoteHandle) Ask(ctx context.Context, msg any, sender Handle, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		timeout = defaultRemoteAskTimeout
	}
	fut, err := r.AskFuture(ctx, msg, sender)
	if err != nil {
		return nil, err
	}
	askCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fut.Await(askCtx)
}

// defaultRemoteAskTimeout bounds a remote Ask when the caller passes
// timeout <= 0 and no local config.Config is available to supply one (a
// remoteHandle never holds a *config.Config; localHandle.Ask applies its
// own default before ever delegating here).
const defaultRemoteAskTimeout = 30 * time.Second

// AskFuture implements the non-blocking half of Ask.
func (r *remoteHandle) AskFuture(ctx context.Context, msg any, _ Handle) (future.Future, error) {
	wire, err := r.codec.Encode(msg)
	if err != nil {
		return nil, err
	}
	return r.transport.SendExpectingReply(ctx, r.home, transport.ActorID(r.id), wire)
}

// ID implements Handle.
func (r *remoteHandle) ID() ActorID { return r.id }

// Tag implements Handle.
func (r *remoteHandle) Tag() ActorTag { return r.tag }

// Link implements Handle: unsupported on a remote proxy.
func (r *remoteHandle) Link(Handle) error { return actorerrors.ErrRemoteOperationUnsupported }

// Unlink implements Handle: unsupported on a remote proxy.
func (r *remoteHandle) Unlink(Handle) error { return actorerrors.ErrRemoteOperationUnsupported }

// StartLink implements Handle: unsupported on a remote proxy.
func (r *remoteHandle) StartLink(context.Context, Handle) error {
	return actorerrors.ErrRemoteOperationUnsupported
}

// Start implements Handle: unsupported on a remote proxy; the remote node
// owns that actor's lifecycle.
func (r *remoteHandle) Start(context.Context) error { return actorerrors.ErrRemoteOperationUnsupported }

// Stop implements Handle: unsupported on a remote proxy.
func (r *remoteHandle) Stop(context.Context) error { return actorerrors.ErrRemoteOperationUnsupported }

// MakeRemote implements Handle: a remote proxy cannot be re-targeted.
func (r *remoteHandle) MakeRemote(Address) error { return actorerrors.ErrRemoteOperationUnsupported }

// SetReceiveTimeout implements Handle: the remote node owns that actor's
// receive-timeout configuration, not this proxy.
func (r *remoteHandle) SetReceiveTimeout(time.Duration) error {
	return actorerrors.ErrRemoteOperationUnsupported
}

// forward implements Handle: unsupported on a remote proxy.
// localHandle.forward also refuses once MakeRemote has run, so Forward to
// a remote target fails with actorerrors.ErrRemoteOperationUnsupported.
func (r *remoteHandle) forward(context.Context, *Envelope) error {
	return actorerrors.ErrRemoteOperationUnsupported
}

var _ Handle = (*remoteHandle)(nil)
