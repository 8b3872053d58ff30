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
	"github.com/google/uuid"
)

// ActorID is a 128-bit identifier assigned once at handle creation.
//
// It is preserved across restarts (the BeingRestarted -> Running transition
// never changes it) and across serialization to a remote node, so a holder
// that migrated continues to reach the same logical actor. A Stopped
// handle's ActorID is never reused.
type ActorID uuid.UUID

// NewActorID generates a fresh, globally unique ActorID.
func NewActorID() ActorID {
	return ActorID(uuid.New())
}

// String returns the canonical textual form of the identifier.
func (id ActorID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero-value ActorID (never assigned by
// NewActorID; used as a sentinel for "no identity").
func (id ActorID) IsZero() bool {
	return id == ActorID{}
}

// ActorTag is a mutable, user-visible label used for registry lookup and
// logging. Unlike ActorID, a tag is not required to be unique.
type ActorTag string

// String implements fmt.Stringer.
func (t ActorTag) String() string {
	return string(t)
}
