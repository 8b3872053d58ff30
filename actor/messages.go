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

// ReceiveTimeout is delivered when a handle's configured receive-timeout
// duration elapses with no other message processed in between. Receiving
// any other message cancels and reschedules the pending timer (§4.7).
type ReceiveTimeout struct{}

// Failed is the escalation system message: sent to a supervisor when one
// of its subordinates raised a failure kind not present in the
// supervisor's directive rules.
type Failed struct {
	Subordinate ActorID
	Cause       error
}

// MaxRestartsExceeded is sent to a supervisor when a Permanent subordinate
// has failed strictly more than its restart budget within the configured
// window and has, as a result, been stopped.
type MaxRestartsExceeded struct {
	Subordinate ActorID
	MaxRetries  uint32
	Window      int64 // milliseconds
	Cause       error
}

// UnlinkAndStop is sent to a supervisor when a Temporary subordinate's
// removal has emptied that supervisor's subordinate map.
type UnlinkAndStop struct {
	Subordinate ActorID
}

// PoisonPill is a conventional fire-and-forget request for an actor to
// stop itself once it reaches the front of its own mailbox, letting it
// drain everything ahead of the PoisonPill first.
type PoisonPill struct{}

// isSystemMessage reports whether msg is one of the runtime's own control
// messages, as opposed to a user payload. System messages are
// delivered to Actor.Receive like any other message — this core has no
// hidden message-handling layer — and neither Stop nor invoke consults
// this classification.
func isSystemMessage(msg any) bool {
	switch msg.(type) {
	case *ReceiveTimeout, *Failed, *MaxRestartsExceeded, *UnlinkAndStop, *PoisonPill:
		return true
	default:
		return false
	}
}
