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

	"golang.org/x/sync/errgroup"

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/config"
	"github.com/cchandler/akka/supervisor"
)

// handleFailure is the single entry point supervision runs through: invoke
// calls it with whatever cause it recovered (a *actorerrors.PanicError) or
// read back from a ReceiveContext.Err call (wrapped in
// *actorerrors.UserHandlerError). It resolves a directive from h's own
// supervisor.Supervisor and applies it.
func (h *localHandle) handleFailure(ctx context.Context, cause error) {
	sup := h.supervisorCfg

	directive, trapped := sup.Directive(cause)
	if !trapped {
		directive, trapped = sup.AnyErrorDirective()
	}
	if !trapped {
		h.escalate(ctx, cause)
		return
	}

	switch directive {
	case supervisor.ResumeDirective:
		// Leave state and mailbox untouched; the next envelope drains
		// normally.
	case supervisor.StopDirective:
		h.stopDueToFailure(ctx, cause)
	case supervisor.EscalateDirective:
		h.escalate(ctx, cause)
	case supervisor.RestartDirective:
		h.attemptRestart(ctx, cause, sup)
	}
}

// escalate delivers a Failed system message to h's supervisor. An actor
// with no supervisor has nowhere to escalate to, so it stops itself:
// spec.md §9 only defines escalation in terms of a parent that can act on
// it.
func (h *localHandle) escalate(ctx context.Context, cause error) {
	if h.supervisorHandle == nil {
		h.stopDueToFailure(ctx, cause)
		return
	}
	h.notifySupervisor(ctx, &Failed{Subordinate: h.id, Cause: cause})
}

// attemptRestart applies the RestartDirective, honoring lifecycle and the
// restart budget before touching any state.
func (h *localHandle) attemptRestart(ctx context.Context, cause error, sup *supervisor.Supervisor) {
	if h.lifecycle == config.Temporary {
		// Temporary actors are never restarted regardless of directive:
		// a failure removes them.
		h.stopDueToFailure(ctx, cause)
		return
	}

	// The restart budget is per-subordinate for OneForOneStrategy but
	// per-supervisor for OneForAllStrategy (spec.md §9): under OneForAll
	// every sibling draws from the same counter, so two siblings each
	// failing a few times trip MaxRestartsExceeded together instead of
	// each independently exhausting their own private budget.
	var exceeded bool
	if sup.Strategy() == supervisor.OneForAllStrategy {
		exceeded, _ = sup.BumpRestartCount()
	} else {
		exceeded, _ = h.bumpRestartCount(sup)
	}
	if exceeded {
		h.notifySupervisor(ctx, &MaxRestartsExceeded{
			Subordinate: h.id,
			MaxRetries:  sup.MaxRetries(),
			Window:      int64(sup.Timeout() / time.Millisecond),
			Cause:       cause,
		})
		h.stopDueToFailure(ctx, actorerrors.NewErrMaxRestartsExceeded(h.id, sup.MaxRetries(), cause))
		return
	}

	if sup.Strategy() == supervisor.OneForAllStrategy {
		var grp errgroup.Group
		for _, sibling := range h.siblingsIncludingSelf() {
			sibling := sibling
			grp.Go(func() error {
				sibling.doRestart(ctx, cause)
				return nil
			})
		}
		_ = grp.Wait()
		return
	}
	h.doRestart(ctx, cause)
}

// bumpRestartCount stamps h's own restart window (spec.md §4.5) for
// OneForOneStrategy, where each subordinate's restart budget is tracked
// independently: a failure outside the configured window starts a fresh
// count; sup.Timeout() <= 0 means no window, so every restart draws from
// the same lifetime budget.
func (h *localHandle) bumpRestartCount(sup *supervisor.Supervisor) (exceeded bool, count uint32) {
	h.restartMu.Lock()
	defer h.restartMu.Unlock()

	now := time.Now()
	window := sup.Timeout()
	if h.restartWindowStart.IsZero() || (window > 0 && now.Sub(h.restartWindowStart) > window) {
		h.restartWindowStart = now
		h.restartCount = 0
	}
	h.restartCount++
	return h.restartCount > sup.MaxRetries(), h.restartCount
}

// doRestart runs the Permanent restart sequence: restart every linked
// subordinate first (a supervisor's own identity survives a restart, so
// its children are given the chance to settle before it swaps instances),
// then PreRestart on the failing instance, a fresh instance from the
// saved Factory, Init, and PostRestart.
func (h *localHandle) doRestart(ctx context.Context, cause error) {
	h.storeState(stateBeingRestarted)

	h.subordinates.Range(func(_ ActorID, child Handle) {
		if lh, ok := child.(*localHandle); ok {
			lh.doRestart(ctx, cause)
		}
	})

	h.mu.Lock()
	failing := h.instance
	h.mu.Unlock()

	if failing != nil {
		if err := failing.PreRestart(ctx, cause); err != nil {
			h.notifySupervisor(ctx, &Failed{Subordinate: h.id, Cause: err})
		}
	}

	fresh := h.factory()
	if err := fresh.Init(ctx); err != nil {
		h.notifySupervisor(ctx, &Failed{Subordinate: h.id, Cause: actorerrors.NewErrInitializationFailed(err)})
		h.stopDueToFailure(ctx, err)
		return
	}

	h.mu.Lock()
	h.instance = fresh
	h.mu.Unlock()

	if err := fresh.PostRestart(ctx, cause); err != nil {
		h.notifySupervisor(ctx, &Failed{Subordinate: h.id, Cause: err})
	}

	h.storeState(stateRunning)
}

// stopDueToFailure runs the Shutdown callback, tears down the mailbox and
// dispatcher registration, and detaches h from its supervisor's
// subordinate map. If that leaves the supervisor with no subordinates
// left, it is told via UnlinkAndStop so it can decide what, if anything,
// to do about it.
func (h *localHandle) stopDueToFailure(ctx context.Context, cause error) {
	if !h.transitionToStopped() {
		return
	}

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
	h.orphanSubordinates(ctx, cause)
}

// transitionToStopped moves h to stateStopped exactly once, reporting
// whether this call performed the transition.
func (h *localHandle) transitionToStopped() bool {
	for {
		cur := h.loadState()
		if cur == stateStopped {
			return false
		}
		if h.state.CompareAndSwap(int32(cur), int32(stateStopped)) {
			return true
		}
	}
}

// detachFromSupervisor removes h from its supervisor's subordinate map and
// notifies the supervisor when that empties it.
func (h *localHandle) detachFromSupervisor(ctx context.Context) {
	if h.supervisorHandle == nil {
		return
	}
	parent, ok := h.supervisorHandle.(*localHandle)
	if !ok {
		return
	}
	parent.subordinates.Delete(h.id)
	if parent.subordinates.Len() == 0 {
		h.notifySupervisor(ctx, &UnlinkAndStop{Subordinate: h.id})
	}
}

// orphanSubordinates applies h.cfg.OrphanPolicy to whatever subordinates h
// itself still supervised at the moment it stopped (spec.md §9's first
// Open Question).
func (h *localHandle) orphanSubordinates(ctx context.Context, cause error) {
	if h.cfg != nil && h.cfg.OrphanPolicy == config.LeaveRunning {
		h.subordinates.Range(func(_ ActorID, child Handle) {
			if lh, ok := child.(*localHandle); ok {
				lh.mu.Lock()
				lh.supervisorHandle = nil
				lh.mu.Unlock()
			}
		})
		return
	}
	h.subordinates.Range(func(_ ActorID, child Handle) {
		if lh, ok := child.(*localHandle); ok {
			lh.stopDueToFailure(ctx, cause)
		}
	})
}

// notifySupervisor delivers msg to h's supervisor as an ordinary Tell. If
// the supervisor has already stopped, the send fails silently: there is
// nothing further to escalate to.
func (h *localHandle) notifySupervisor(ctx context.Context, msg any) {
	if h.supervisorHandle == nil {
		return
	}
	_ = h.supervisorHandle.Tell(ctx, msg, nil)
}

// siblingsIncludingSelf returns every subordinate of h's supervisor,
// including h, for OneForAllStrategy. An h with no supervisor has no
// siblings by definition.
func (h *localHandle) siblingsIncludingSelf() []*localHandle {
	if h.supervisorHandle == nil {
		return []*localHandle{h}
	}
	parent, ok := h.supervisorHandle.(*localHandle)
	if !ok {
		return []*localHandle{h}
	}
	siblings := make([]*localHandle, 0, parent.subordinates.Len())
	parent.subordinates.Range(func(_ ActorID, child Handle) {
		if lh, ok := child.(*localHandle); ok {
			siblings = append(siblings, lh)
		}
	})
	return siblings
}
