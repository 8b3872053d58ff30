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

package transport

import (
	"context"
	"sync"

	"github.com/cchandler/akka/future"
)

// Handler is what an InMemoryTransport delivers a received wire message
// to: the process-local node listening at some Address.
type Handler func(ctx context.Context, sender Address, id ActorID, wire []byte) ([]byte, error)

// InMemoryTransport is a loopback Transport for tests and single-process
// deployments: nodes are distinguished by Address but all live in the same
// process, so "sending" is a direct function call instead of a socket
// round-trip. It exists so the core's remote-proxy path (remoteHandle,
// Handle.MakeRemote) can be exercised without a real network stack.
type InMemoryTransport struct {
	self Address

	mu       sync.RWMutex
	nodes    map[Address]*InMemoryTransport
	handlers map[ActorID]Handler
}

var _ Transport = (*InMemoryTransport)(nil)

// newInMemoryTransport returns a node bound to self, sharing the registry
// of other nodes passed by reference from NewInMemoryNetwork.
func newInMemoryTransport(self Address, nodes map[Address]*InMemoryTransport) *InMemoryTransport {
	return &InMemoryTransport{self: self, nodes: nodes, handlers: make(map[ActorID]Handler)}
}

// NewInMemoryNetwork builds a set of InMemoryTransport nodes, one per
// address given, all able to reach each other.
func NewInMemoryNetwork(addrs ...Address) map[Address]*InMemoryTransport {
	nodes := make(map[Address]*InMemoryTransport, len(addrs))
	shared := make(map[Address]*InMemoryTransport, len(addrs))
	for _, a := range addrs {
		t := newInMemoryTransport(a, shared)
		nodes[a] = t
		shared[a] = t
	}
	return nodes
}

// Bind associates id with handler on this node, so inbound sends resolve
// to something. Nothing in the actor package calls Bind: Spawn does not,
// and remote handles never do; whoever hosts the receiving side binds its
// own handler.
func (t *InMemoryTransport) Bind(id ActorID, handler Handler) {
	t.mu.Lock()
	t.handlers[id] = handler
	t.mu.Unlock()
}

// SendOneWay implements Transport.
func (t *InMemoryTransport) SendOneWay(ctx context.Context, addr Address, id ActorID, wire []byte) error {
	handler, err := t.resolve(addr, id)
	if err != nil {
		return err
	}
	_, err = handler(ctx, t.self, id, wire)
	return err
}

// SendExpectingReply implements Transport.
func (t *InMemoryTransport) SendExpectingReply(ctx context.Context, addr Address, id ActorID, wire []byte) (future.Future, error) {
	handler, err := t.resolve(addr, id)
	if err != nil {
		return nil, err
	}
	return future.New(func() (any, error) {
		reply, err := handler(ctx, t.self, id, wire)
		if err != nil {
			return nil, NewErrRemoteSendFailure(err)
		}
		return reply, nil
	}), nil
}

// resolve looks up the peer node at addr and the handler id was bound to
// there via Bind. A peer reachable via RegisterHandle but never Bind'd
// (no process-local Handler registered for id yet) resolves the same as
// an unknown address: NewErrAddressNotFound, not a nil-handler panic.
func (t *InMemoryTransport) resolve(addr Address, id ActorID) (Handler, error) {
	t.mu.RLock()
	peer, ok := t.nodes[addr]
	t.mu.RUnlock()
	if !ok {
		return nil, NewErrAddressNotFound(addr.String())
	}
	peer.mu.RLock()
	defer peer.mu.RUnlock()
	handler, ok := peer.handlers[id]
	if !ok || handler == nil {
		return nil, NewErrAddressNotFound(addr.String())
	}
	return handler, nil
}

// RegisterHandle implements Transport. It reserves id's slot at addr with
// no Handler; until Bind runs, resolve reports id with the same
// NewErrAddressNotFound error as an unknown actor.
func (t *InMemoryTransport) RegisterHandle(addr Address, id ActorID) error {
	peer, ok := t.nodes[addr]
	if !ok {
		return NewErrAddressNotFound(addr.String())
	}
	peer.mu.Lock()
	if _, exists := peer.handlers[id]; !exists {
		peer.handlers[id] = nil
	}
	peer.mu.Unlock()
	return nil
}

// UnregisterHandle implements Transport.
func (t *InMemoryTransport) UnregisterHandle(addr Address, id ActorID) error {
	peer, ok := t.nodes[addr]
	if !ok {
		return NewErrAddressNotFound(addr.String())
	}
	peer.mu.Lock()
	delete(peer.handlers, id)
	peer.mu.Unlock()
	return nil
}

// SelfAddress implements Transport.
func (t *InMemoryTransport) SelfAddress() Address {
	return t.self
}
