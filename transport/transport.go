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

// Package transport declares the remote-wire collaborator a remoteHandle
// forwards envelopes through. The core never dials a socket itself; it
// only calls whichever Transport a Config was built with.
package transport

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/cchandler/akka/future"
)

// ErrAddressNotFound indicates the target node is not reachable or not
// recognized by the transport.
var ErrAddressNotFound = errors.New("address not found")

// ErrRemoteSendFailure wraps any lower-level transport error encountered
// while sending.
var ErrRemoteSendFailure = errors.New("remote send failed")

// NewErrAddressNotFound formats ErrAddressNotFound with the offending
// address, wrapped in a connect.CodeNotFound so a connect-rpc-based
// Transport implementation can return it directly from an RPC handler.
func NewErrAddressNotFound(addr string) error {
	return connect.NewError(connect.CodeNotFound, fmt.Errorf("(address=%s) %w", addr, ErrAddressNotFound))
}

// NewErrRemoteSendFailure wraps cause in ErrRemoteSendFailure, coded
// connect.CodeInternal.
func NewErrRemoteSendFailure(cause error) error {
	return connect.NewError(connect.CodeInternal, errors.Join(ErrRemoteSendFailure, cause))
}

// Address identifies a remote node.
type Address struct {
	Host string
	Port int
}

// String returns "host:port".
func (a Address) String() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ActorID is the wire-visible form of actor.ActorID. Declared locally
// (rather than imported) to avoid a transport -> actor import cycle,
// since actor imports transport to reach a remoteHandle's Transport.
type ActorID [16]byte

// Transport is the external remote-wire collaborator (SPEC_FULL.md §6).
type Transport interface {
	// SendOneWay delivers wire to the actor id reachable at addr, without
	// expecting a reply.
	SendOneWay(ctx context.Context, addr Address, id ActorID, wire []byte) error

	// SendExpectingReply delivers wire to the actor id reachable at addr
	// and returns a Future that resolves to the reply's wire bytes.
	SendExpectingReply(ctx context.Context, addr Address, id ActorID, wire []byte) (future.Future, error)

	// RegisterHandle announces that id is reachable at addr on this
	// node, for inbound resolution by a remote peer's registry lookup.
	RegisterHandle(addr Address, id ActorID) error

	// UnregisterHandle reverses RegisterHandle.
	UnregisterHandle(addr Address, id ActorID) error

	// SelfAddress returns the address this node is reachable at.
	SelfAddress() Address
}
