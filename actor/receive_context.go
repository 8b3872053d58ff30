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

	"github.com/cchandler/akka/actorerrors"
	"github.com/cchandler/akka/transaction"
)

// ReceiveContext is the per-message handle passed to Actor.Receive. It is
// built fresh for every envelope the dispatcher drains and must not be
// retained past the Receive call that received it: the runtime does not
// pool or protect it against use-after-return.
//
// It is the one and only place the "ambient current message" of spec.md §9
// lives — never process-global state, so that concurrent handles never
// contend on it and a handle's own state is trivially race-free.
type ReceiveContext struct {
	ctx     context.Context
	self    Handle
	message any
	sender  Handle
	envelope *Envelope
	txSet   transaction.Set
	err     error
}

func newReceiveContext(ctx context.Context, self Handle, env *Envelope) *ReceiveContext {
	return &ReceiveContext{
		ctx:      ctx,
		self:     self,
		message:  env.Payload(),
		sender:   env.Sender(),
		envelope: env,
		txSet:    env.TxSet(),
	}
}

// Context returns the message-scoped context. It carries no cancellation
// tied to the caller: a completed Ask's context is not propagated past the
// point the reply future was created, since the invoking goroutine may
// already be gone by the time Receive runs.
func (rctx *ReceiveContext) Context() context.Context {
	return rctx.ctx
}

// Self returns the Handle of the actor currently processing this message.
func (rctx *ReceiveContext) Self() Handle {
	return rctx.self
}

// Message returns the payload delivered with this envelope.
func (rctx *ReceiveContext) Message() any {
	return rctx.message
}

// Sender returns the Handle that sent this message, or nil for an
// anonymous Tell.
func (rctx *ReceiveContext) Sender() Handle {
	return rctx.sender
}

// TxSet returns the transaction set the sender was enlisted in when this
// message was sent, or nil.
func (rctx *ReceiveContext) TxSet() transaction.Set {
	return rctx.txSet
}

// Err records an error observed while handling this message. Receive runs
// to completion; afterwards invoke treats a recorded error as a handler
// failure: it wraps it in actorerrors.UserHandlerError, fails the
// envelope's reply with it, and hands it to supervision, exactly as it
// does for a panic.
func (rctx *ReceiveContext) Err(err error) {
	rctx.err = err
}

// Reply answers the sender of the current message with value. If the
// message was sent via Ask/AskFuture, this completes the waiting Future. If
// there is no reply future attached but the envelope carries a sender (an
// ordinary Tell), value is delivered to that sender via Tell instead. If
// neither a future nor a sender is in scope, Reply records
// actorerrors.ErrNoSenderInScope through Err rather than silently dropping
// value (spec.md §4.4).
func (rctx *ReceiveContext) Reply(value any) {
	rctx.reply(value, nil)
}

// ReplyError fails the sender's waiting Future with err instead of
// completing it with a value. With no future attached, err itself is
// delivered to the sender via Tell; with neither a future nor a sender,
// ErrNoSenderInScope is recorded through Err.
func (rctx *ReceiveContext) ReplyError(err error) {
	rctx.reply(nil, err)
}

// reply implements the three-way fallback Reply/ReplyError share: complete
// the attached future, else Tell whoever sent the current message, else
// report that there was no one to answer.
func (rctx *ReceiveContext) reply(value any, failure error) {
	if rctx.envelope != nil && rctx.envelope.HasReply() {
		rctx.envelope.completeReply(value, failure)
		return
	}
	if rctx.sender != nil {
		msg := value
		if failure != nil {
			msg = failure
		}
		if err := rctx.sender.Tell(rctx.ctx, msg, rctx.self); err != nil {
			rctx.Err(err)
		}
		return
	}
	rctx.Err(actorerrors.ErrNoSenderInScope)
}

// Forward re-sends the current message to target, preserving the original
// sender and reply future so that target's eventual Reply resolves the
// original caller's Ask, not this actor's. Returns
// actorerrors.ErrNoSenderInScope if there is no current envelope (should
// not happen from inside Receive) and whatever error target.Tell/Ask
// internals would produce on a dead or stopped target.
func (rctx *ReceiveContext) Forward(target Handle) error {
	if rctx.envelope == nil {
		return actorerrors.ErrNoSenderInScope
	}
	return target.forward(rctx.ctx, rctx.envelope)
}
