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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/config"
	"github.com/cchandler/akka/future"
	"github.com/cchandler/akka/internal/telemetry"
	"github.com/cchandler/akka/internal/validation"
	"github.com/cchandler/akka/internal/xsync"
	"github.com/cchandler/akka/serialization"
	"github.com/cchandler/akka/supervisor"
	"github.com/cchandler/akka/transaction"
	"github.com/cchandler/akka/transport"
)

// defaultMetricProvider is the process-wide otel Meter source every
// localHandle registers its observable instruments against, mirroring
// goakt's per-PID metricProvider except shared process-wide rather than
// threaded through as a Spawn option: this core has no ActorSystem to hang
// per-system configuration off.
var defaultMetricProvider = telemetry.NewProvider()

// handleState is the lifecycle state machine of spec.md §3: NotStarted ->
// Running -> (BeingRestarted -> Running)* -> Stopped. Stopped is terminal.
type handleState int32

const (
	stateNotStarted handleState = iota
	stateRunning
	stateBeingRestarted
	stateStopped
)

func (s handleState) String() string {
	switch s {
	case stateNotStarted:
		return "NotStarted"
	case stateRunning:
		return "Running"
	case stateBeingRestarted:
		return "BeingRestarted"
	case stateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// localHandle is the concrete Handle for an actor living in this process.
// It owns the mailbox, is registered with exactly one Dispatcher for its
// whole lifetime, and tracks its own restart-window bookkeeping even
// though the restart budget itself is read from its supervisor's
// supervisor.Supervisor.
type localHandle struct {
	id  ActorID
	tag ActorTag

	mu       sync.Mutex
	instance Actor
	state    atomic.Int32

	factory    Factory
	mailbox    Mailbox
	dispatcher Dispatcher
	scheduled  atomic.Bool

	cfg *config.Config

	supervisorHandle Handle
	supervisorCfg    *supervisor.Supervisor
	lifecycle        config.Lifecycle

	subordinates *xsync.Map[ActorID, Handle]

	restartMu          sync.Mutex
	restartWindowStart time.Time
	restartCount       uint32

	receiveTimeout time.Duration
	timeoutMu      sync.Mutex
	timeoutTimer   *time.Timer

	txCoordinator transaction.Coordinator
	transport     transport.Transport
	codec         serialization.PayloadCodec

	// registry is the Registry this handle was registered into at Spawn
	// time, if any. Stop and stopDueToFailure remove h from it so that a
	// stopped handle is no longer findable.
	registry *Registry

	metrics    *telemetry.HandleMetric
	metricsReg otelmetric.Registration

	asRemote *remoteHandle
}

var _ Handle = (*localHandle)(nil)

// newLocalHandle builds a NotStarted handle. Spawn resolves a config.Config
// into a concrete Mailbox and Dispatcher and passes them in here; this
// constructor itself makes no policy decisions.
func newLocalHandle(
	tag ActorTag,
	factory Factory,
	mailbox Mailbox,
	dispatcher Dispatcher,
	cfg *config.Config,
	supervisorCfg *supervisor.Supervisor,
	lifecycle config.Lifecycle,
	txCoordinator transaction.Coordinator,
	trans transport.Transport,
	codec serialization.PayloadCodec,
	reg *Registry,
) *localHandle {
	if supervisorCfg == nil {
		supervisorCfg = supervisor.NewSupervisor()
	}
	h := &localHandle{
		id:            NewActorID(),
		tag:           tag,
		factory:       factory,
		mailbox:       mailbox,
		dispatcher:    dispatcher,
		cfg:           cfg,
		supervisorCfg: supervisorCfg,
		lifecycle:     lifecycle,
		subordinates:  xsync.NewMap[ActorID, Handle](),
		txCoordinator: txCoordinator,
		transport:     trans,
		codec:         codec,
		registry:      reg,
	}
	if h.tag == "" {
		h.tag = ActorTag(h.id.String())
	}
	h.state.Store(int32(stateNotStarted))
	return h
}

func (h *localHandle) loadState() handleState {
	return handleState(h.state.Load())
}

func (h *localHandle) storeState(s handleState) {
	h.state.Store(int32(s))
}

// ID implements Handle.
func (h *localHandle) ID() ActorID { return h.id }

// Tag implements Handle.
func (h *localHandle) Tag() ActorTag {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tag
}

// Start implements Handle.
func (h *localHandle) Start(ctx context.Context) error {
	if h.asRemote != nil {
		return actorerrors.ErrRemoteOperationUnsupported
	}
	if !h.state.CompareAndSwap(int32(stateNotStarted), int32(stateRunning)) {
		if h.loadState() == stateStopped {
			return actorerrors.ErrStopped
		}
		return nil // already started: idempotent
	}

	instance := h.factory()
	if err := instance.Init(ctx); err != nil {
		h.storeState(stateNotStarted)
		return actorerrors.NewErrInitializationFailed(err)
	}

	h.mu.Lock()
	h.instance = instance
	h.mu.Unlock()

	h.dispatcher.Register(h)
	h.registerMetrics()
	return nil
}

// registerMetrics wires h's mailbox size into defaultMetricProvider as an
// observable gauge, the way goakt's PID.registerMetrics reports its own
// gauges per actor (actor/pid.go). Best-effort: a failure to obtain
// instruments from the Meter leaves h.metrics nil and invoke simply skips
// recording the receive-duration histogram.
func (h *localHandle) registerMetrics() {
	meter := defaultMetricProvider.Meter()
	metrics, err := telemetry.NewHandleMetric(meter)
	if err != nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("actor.id", h.id.String()))

	reg, err := meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		observer.ObserveInt64(metrics.MailboxSize(), h.mailbox.Len(), attrs)
		return nil
	}, metrics.MailboxSize())
	if err != nil {
		return
	}

	h.mu.Lock()
	h.metrics = metrics
	h.metricsReg = reg
	h.mu.Unlock()
}

// Stop implements Handle.
func (h *localHandle) Stop(ctx context.Context) error {
	if h.asRemote != nil {
		return actorerrors.ErrRemoteOperationUnsupported
	}
	if h.loadState() == stateNotStarted {
		return actorerrors.ErrNotStarted
	}

	h.subordinates.Range(func(_ ActorID, child Handle) {
		_ = child.Stop(ctx)
	})
	h.subordinates.Reset()

	if !h.transitionToStopped() {
		return nil // already stopped concurrently: idempotent
	}

	h.cancelReceiveTimeout()

	h.mu.Lock()
	inst := h.instance
	h.mu.Unlock()
	if inst != nil {
		_ = inst.Shutdown(ctx)
	}

	h.mailbox.Dispose()
	if h.dispatcher != nil {
		h.dispatcher.Unregister(h)
	}
	h.unregisterMetrics()
	if h.registry != nil {
		h.registry.Unregister(h)
	}
	h.detachFromSupervisor(ctx)
	return nil
}

// unregisterMetrics releases h's observable-gauge callback registration, if
// one was installed. Safe to call more than once.
func (h *localHandle) unregisterMetrics() {
	h.mu.Lock()
	reg := h.metricsReg
	h.metricsReg = nil
	h.mu.Unlock()
	if reg != nil {
		_ = reg.Unregister()
	}
}

// Tell implements Handle.
func (h *localHandle) Tell(ctx context.Context, msg any, sender Handle) error {
	if h.asRemote != nil {
		return h.asRemote.Tell(ctx, msg, sender)
	}
	if err := h.checkLive(); err != nil {
		return err
	}
	env := newEnvelope(msg, sender, nil, h.currentTxSet(ctx))
	if err := h.mailbox.Enqueue(env); err != nil {
		return err
	}
	h.dispatcher.Schedule(h)
	return nil
}

// Ask implements Handle.
func (h *localHandle) Ask(ctx context.Context, msg any, sender Handle, timeout time.Duration) (any, error) {
	if h.asRemote != nil {
		return h.asRemote.Ask(ctx, msg, sender, timeout)
	}
	if timeout <= 0 {
		timeout = h.cfg.DefaultReplyTimeout
	}

	fut, err := h.AskFuture(ctx, msg, sender)
	if err != nil {
		return nil, err
	}

	askCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	value, err := fut.Await(askCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, actorerrors.ErrAskTimeout
	}
	return value, err
}

// AskFuture implements Handle.
func (h *localHandle) AskFuture(ctx context.Context, msg any, sender Handle) (future.Future, error) {
	if h.asRemote != nil {
		return h.asRemote.AskFuture(ctx, msg, sender)
	}
	if err := h.checkLive(); err != nil {
		return nil, err
	}
	comp := future.NewCompletable()
	env := newEnvelope(msg, sender, comp, h.currentTxSet(ctx))
	if err := h.mailbox.Enqueue(env); err != nil {
		return nil, err
	}
	h.dispatcher.Schedule(h)
	return comp.Future(), nil
}

// forward implements Handle. Unlike Tell/Ask it reuses env verbatim instead
// of building a new one, so the original sender's reply future (if any)
// still resolves whoever answers it.
func (h *localHandle) forward(ctx context.Context, env *Envelope) error {
	if h.asRemote != nil {
		return actorerrors.ErrRemoteOperationUnsupported
	}
	_ = ctx
	if err := h.checkLive(); err != nil {
		return err
	}
	if err := h.mailbox.Enqueue(env); err != nil {
		return err
	}
	h.dispatcher.Schedule(h)
	return nil
}

func (h *localHandle) checkLive() error {
	switch h.loadState() {
	case stateNotStarted:
		return actorerrors.ErrNotStarted
	case stateStopped:
		return actorerrors.ErrStopped
	default:
		return nil
	}
}

// Link implements Handle: h becomes other's supervisor.
func (h *localHandle) Link(other Handle) error {
	oh, ok := other.(*localHandle)
	if !ok {
		return actorerrors.NewErrLinkageError("cannot link a non-local handle")
	}
	oh.mu.Lock()
	if oh.supervisorHandle != nil {
		oh.mu.Unlock()
		return actorerrors.NewErrLinkageError("handle already has a supervisor")
	}
	oh.supervisorHandle = h
	oh.mu.Unlock()

	h.subordinates.Set(oh.id, oh)
	return nil
}

// Unlink implements Handle.
func (h *localHandle) Unlink(other Handle) error {
	oh, ok := other.(*localHandle)
	if !ok {
		return actorerrors.NewErrLinkageError("cannot unlink a non-local handle")
	}
	if _, ok := h.subordinates.Get(oh.id); !ok {
		return actorerrors.NewErrLinkageError("handle is not linked to this supervisor")
	}
	h.subordinates.Delete(oh.id)

	oh.mu.Lock()
	oh.supervisorHandle = nil
	oh.mu.Unlock()
	return nil
}

// StartLink implements Handle.
func (h *localHandle) StartLink(ctx context.Context, other Handle) error {
	if err := other.Start(ctx); err != nil {
		return err
	}
	return h.Link(other)
}

// MakeRemote implements Handle.
func (h *localHandle) MakeRemote(addr Address) error {
	switch h.loadState() {
	case stateNotStarted, stateBeingRestarted:
	default:
		return actorerrors.NewErrLinkageError("MakeRemote is only legal before Start or while BeingRestarted")
	}
	if h.transport == nil || h.codec == nil {
		return actorerrors.NewErrLinkageError("no transport/codec configured for this handle")
	}
	if err := validation.NewTCPAddressValidator(fmt.Sprintf("%s:%d", addr.Host, addr.Port)).Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	h.asRemote = newRemoteHandle(h.id, h.tag, addr, h.transport, h.codec)
	h.mu.Unlock()
	return nil
}

func (h *localHandle) currentTxSet(ctx context.Context) transaction.Set {
	if h.txCoordinator == nil {
		return nil
	}
	set, ok := h.txCoordinator.Current(ctx)
	if !ok {
		return nil
	}
	return set
}

// drainOnce processes up to throughput envelopes (or until the mailbox is
// empty when throughput <= 0) and reports whether envelopes remain for the
// caller to reschedule.
func (h *localHandle) drainOnce(throughput int) (more bool) {
	processed := 0
	for {
		if throughput > 0 && processed >= throughput {
			return !h.mailbox.IsEmpty()
		}
		env := h.mailbox.Dequeue()
		if env == nil {
			return false
		}
		h.invoke(context.Background(), env)
		processed++
	}
}

// invoke runs spec.md §4.4's per-message procedure: cancel the pending
// receive-timeout, build a ReceiveContext, run Actor.Receive under panic
// recovery, and route any failure (panic or Err-reported) into
// supervision; otherwise reschedule the receive-timeout. An envelope
// dequeued after h has stopped is discarded instead, and its reply, if
// any, fails with actorerrors.ErrStopped.
func (h *localHandle) invoke(ctx context.Context, env *Envelope) {
	if h.loadState() == stateStopped {
		env.completeReply(nil, actorerrors.ErrStopped)
		return
	}
	h.cancelReceiveTimeout()

	start := time.Now()
	rctx := newReceiveContext(ctx, h, env)
	failure := h.safeReceive(rctx)
	if failure == nil && rctx.err != nil {
		failure = actorerrors.NewUserHandlerError(rctx.err)
	}
	h.recordReceiveDuration(ctx, time.Since(start))

	if failure != nil {
		env.completeReply(nil, failure)
		h.handleFailure(ctx, failure)
		return
	}
	h.scheduleReceiveTimeout()
}

// recordReceiveDuration reports how long this one Receive call took on the
// histogram registerMetrics installed, mirroring goakt's
// recordLatestReceiveDurationMetric (actor/api.go). A handle with no
// metrics registered (registerMetrics failed, or Start has not completed
// yet) simply skips recording.
func (h *localHandle) recordReceiveDuration(ctx context.Context, d time.Duration) {
	h.mu.Lock()
	metrics := h.metrics
	h.mu.Unlock()
	if metrics == nil {
		return
	}
	metrics.ReceiveDuration().Record(ctx, d.Milliseconds(),
		otelmetric.WithAttributes(attribute.String("actor.id", h.id.String())))
}

func (h *localHandle) safeReceive(rctx *ReceiveContext) (failure error) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			failure = actorerrors.NewPanicError(err)
		}
	}()

	h.mu.Lock()
	inst := h.instance
	h.mu.Unlock()
	if inst == nil {
		return actorerrors.ErrNotStarted
	}
	inst.Receive(rctx)
	return nil
}
