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
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/cchandler/akka/config"
	"github.com/cchandler/akka/internal/validation"
	"github.com/cchandler/akka/serialization"
	"github.com/cchandler/akka/supervisor"
	"github.com/cchandler/akka/transaction"
	"github.com/cchandler/akka/transport"
)

// Spawn/SpawnLink are package-level generic functions rather than Handle
// methods: Go interface methods cannot carry their own type parameters, so
// there is no way to express "give me back a Handle for a T" through the
// Handle interface itself.

// defaultRegistry is the process-wide Registry used by Spawn when no
// WithRegistry option overrides it.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide Registry Spawn uses by default.
func DefaultRegistry() *Registry { return defaultRegistry }

type spawnConfig struct {
	tag            ActorTag
	dispatcherKind config.DispatcherKind
	mailboxKind    config.MailboxKind
	lifecycle      config.Lifecycle
	supervisorCfg  *supervisor.Supervisor
	parent         Handle
	txCoordinator  transaction.Coordinator
	transport      transport.Transport
	codec          serialization.PayloadCodec
	receiveTimeout time.Duration
	registry       *Registry
}

// SpawnOption configures a single Spawn/SpawnLink call, overriding
// whatever a *config.Config otherwise supplies.
type SpawnOption func(*spawnConfig)

// WithTag sets the spawned handle's ActorTag. Defaults to the handle's
// ActorID.String().
func WithTag(tag ActorTag) SpawnOption {
	return func(sc *spawnConfig) { sc.tag = tag }
}

// WithDispatcher overrides the config.Config's default dispatcher kind for
// this one Spawn call.
func WithDispatcher(kind config.DispatcherKind) SpawnOption {
	return func(sc *spawnConfig) { sc.dispatcherKind = kind }
}

// WithMailboxKind overrides the config.Config's default mailbox kind for
// this one Spawn call.
func WithMailboxKind(kind config.MailboxKind) SpawnOption {
	return func(sc *spawnConfig) { sc.mailboxKind = kind }
}

// WithSupervisor attaches sup as this handle's own supervision policy:
// the directives applied when this handle itself fails. A nil sup (the
// default) falls back to supervisor.NewSupervisor()'s defaults.
func WithSupervisor(sup *supervisor.Supervisor) SpawnOption {
	return func(sc *spawnConfig) { sc.supervisorCfg = sup }
}

// WithLifecycle overrides the config.Config's default lifecycle
// (Permanent/Temporary) for this one Spawn call.
func WithLifecycle(lifecycle config.Lifecycle) SpawnOption {
	return func(sc *spawnConfig) { sc.lifecycle = lifecycle }
}

// WithParent links the spawned handle to parent as its supervisor,
// equivalent to calling parent.Link(h) right after Spawn succeeds. Used
// internally by SpawnLink.
func WithParent(parent Handle) SpawnOption {
	return func(sc *spawnConfig) { sc.parent = parent }
}

// WithTransactionCoordinator attaches an STM Coordinator whose Current set
// is recorded as Envelope.TxSet on every message sent to this handle.
func WithTransactionCoordinator(coord transaction.Coordinator) SpawnOption {
	return func(sc *spawnConfig) { sc.txCoordinator = coord }
}

// WithRemoting supplies the Transport and PayloadCodec a later
// Handle.MakeRemote call on this handle will use.
func WithRemoting(trans transport.Transport, codec serialization.PayloadCodec) SpawnOption {
	return func(sc *spawnConfig) {
		sc.transport = trans
		sc.codec = codec
	}
}

// WithReceiveTimeout arms the handle's receive-timeout as soon as it
// starts, equivalent to calling SetReceiveTimeout right after Spawn.
func WithReceiveTimeout(d time.Duration) SpawnOption {
	return func(sc *spawnConfig) { sc.receiveTimeout = d }
}

// WithRegistry registers the spawned handle into reg instead of the
// process-wide DefaultRegistry.
func WithRegistry(reg *Registry) SpawnOption {
	return func(sc *spawnConfig) { sc.registry = reg }
}

// Spawn constructs, registers, and starts a new local actor of type T.
// factory is saved verbatim and replayed on every Permanent restart.
func Spawn[T Actor](ctx context.Context, factory func() T, cfg *config.Config, opts ...SpawnOption) (Handle, error) {
	if cfg == nil {
		cfg = config.New()
	}
	sc := &spawnConfig{
		dispatcherKind: cfg.DefaultDispatcher,
		mailboxKind:    cfg.Mailbox,
		lifecycle:      cfg.DefaultLifecycle,
		registry:       defaultRegistry,
	}
	for _, opt := range opts {
		opt(sc)
	}

	if sc.tag != "" {
		if err := validation.NewIDValidator(string(sc.tag)).Validate(); err != nil {
			return nil, err
		}
	}

	fac := Factory(func() Actor { return factory() })
	mailbox := resolveMailbox(cfg, sc.mailboxKind)
	dispatcher := resolveDispatcher(cfg, sc.dispatcherKind)

	h := newLocalHandle(sc.tag, fac, mailbox, dispatcher, cfg, sc.supervisorCfg, sc.lifecycle, sc.txCoordinator, sc.transport, sc.codec, sc.registry)

	if err := sc.registry.Register(h, factory()); err != nil {
		return nil, err
	}

	if sc.parent != nil {
		if err := sc.parent.Link(h); err != nil {
			sc.registry.Unregister(h)
			return nil, err
		}
	}

	if sc.receiveTimeout > 0 {
		_ = h.SetReceiveTimeout(sc.receiveTimeout)
	}

	if err := h.Start(ctx); err != nil {
		sc.registry.Unregister(h)
		return nil, err
	}
	return h, nil
}

// SpawnLink is Spawn followed by parent.Link(h), performed before Start so
// the new handle is supervised from its very first message.
func SpawnLink[T Actor](ctx context.Context, parent Handle, factory func() T, cfg *config.Config, opts ...SpawnOption) (Handle, error) {
	opts = append(opts, WithParent(parent))
	return Spawn[T](ctx, factory, cfg, opts...)
}

// SpawnRemote registers a Handle proxying an actor already running at addr
// on another node. It runs no Factory and calls no lifecycle callback
// locally: the remote node owns that actor's actual lifecycle.
func SpawnRemote(reg *Registry, id ActorID, tag ActorTag, addr Address, trans transport.Transport, codec serialization.PayloadCodec) (Handle, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	if err := validation.NewTCPAddressValidator(fmt.Sprintf("%s:%d", addr.Host, addr.Port)).Validate(); err != nil {
		return nil, err
	}
	h := newRemoteHandle(id, tag, addr, trans, codec)
	if err := reg.RegisterExternal(h); err != nil {
		return nil, err
	}
	return h, nil
}

// SpawnLinkRemote is SpawnRemote followed by parent.Link(h). Note that
// Link only accepts local handles as its subordinate (spec.md's
// supervision tree is not distributed across nodes in this core), so this
// returns actorerrors.ErrLinkageError from the Link step — it exists for
// symmetry with SpawnLink and to make that limitation explicit at the call
// site rather than leaving SpawnRemote's caller to discover it obliquely.
func SpawnLinkRemote(parent Handle, reg *Registry, id ActorID, tag ActorTag, addr Address, trans transport.Transport, codec serialization.PayloadCodec) (Handle, error) {
	h, err := SpawnRemote(reg, id, tag, addr, trans, codec)
	if err != nil {
		return nil, err
	}
	if err := parent.Link(h); err != nil {
		return nil, err
	}
	return h, nil
}

func resolveMailbox(cfg *config.Config, kind config.MailboxKind) Mailbox {
	switch kind {
	case config.BoundedMailboxKind:
		return NewBoundedMailbox(cfg.MailboxCapacity, RejectionPolicy(cfg.RejectionPolicy))
	case config.SynchronousMailboxKind:
		return NewSynchronousMailbox()
	default:
		return NewDefaultMailbox()
	}
}

var (
	dispatcherMu     sync.Mutex
	sharedExecutor   *ExecutorDispatcher
	sharedCoopSingle *CooperativeDispatcher
	sharedCoopPool   *CooperativeDispatcher
	sharedPinned     *PinnedDispatcher
)

// resolveDispatcher returns the shared Dispatcher instance for kind,
// lazily building it on first use. ThreadBased is the one kind never
// shared: each call builds a fresh ThreadDispatcher, since each handle
// gets its own goroutine by design.
func resolveDispatcher(cfg *config.Config, kind config.DispatcherKind) Dispatcher {
	dispatcherMu.Lock()
	defer dispatcherMu.Unlock()

	switch kind {
	case config.ThreadBased:
		return NewThreadDispatcher()
	case config.CooperativeSingleThread:
		if sharedCoopSingle == nil {
			sharedCoopSingle = NewCooperativeDispatcher(1, cfg.Throughput)
		}
		return sharedCoopSingle
	case config.CooperativePool:
		if sharedCoopPool == nil {
			sharedCoopPool = NewCooperativeDispatcher(cfg.CooperativeWorkers, cfg.Throughput)
		}
		return sharedCoopPool
	case config.Pinned:
		if sharedPinned == nil {
			sharedPinned = NewPinnedDispatcher(cfg.PinnedWorkers)
		}
		return sharedPinned
	default:
		if sharedExecutor == nil {
			sharedExecutor = NewExecutorDispatcher(runtime.NumCPU())
		}
		return sharedExecutor
	}
}
