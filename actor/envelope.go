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
	"github.com/cchandler/akka/future"
	"github.com/cchandler/akka/transaction"
)

// Envelope is the unit a mailbox stores and a dispatcher drains. It pairs a
// payload with everything needed to answer it: the sender (for Forward and
// for logging), a completable reply future for Ask-style delivery, and the
// transaction set the sender was enlisted in, if any.
type Envelope struct {
	payload any
	sender  Handle
	reply   future.Completable
	txSet   transaction.Set
}

// newEnvelope builds an Envelope for a fire-and-forget Tell. sender may be
// nil (anonymous send) and reply may be nil (no one is waiting on a
// result).
func newEnvelope(payload any, sender Handle, reply future.Completable, txSet transaction.Set) *Envelope {
	return &Envelope{payload: payload, sender: sender, reply: reply, txSet: txSet}
}

// Payload returns the message carried by this envelope.
func (e *Envelope) Payload() any {
	return e.payload
}

// Sender returns the Handle that sent this envelope, or nil for an
// anonymous Tell.
func (e *Envelope) Sender() Handle {
	return e.sender
}

// HasReply reports whether this envelope was sent via Ask/AskFuture and
// therefore carries a Completable to resolve.
func (e *Envelope) HasReply() bool {
	return e.reply != nil
}

// completeReply resolves the attached Completable, if any. Safe to call on
// an envelope with no reply future: it is then a no-op.
func (e *Envelope) completeReply(value any, err error) {
	if e.reply == nil {
		return
	}
	if err != nil {
		e.reply.Failure(err)
		return
	}
	e.reply.Success(value)
}

// TxSet returns the transaction set the sender was enlisted in at send
// time, or nil if the sender was not inside a transaction.
func (e *Envelope) TxSet() transaction.Set {
	return e.txSet
}
