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

// Package transaction declares the shape of the external software
// transactional memory collaborator that a handle's invoke loop may enlist
// in. The core never implements a Coordinator itself; it only calls one
// that was configured in.
package transaction

import (
	"context"
	"errors"
)

// ErrDeadTransaction is the sentinel a Coordinator returns (wrapped or
// bare) when a Join/Commit/Abort call targets a Set that has already been
// aborted or committed by a concurrent participant. invoke does not
// translate it into actorerrors.ErrTransactionSetAborted; a handler
// failure carrying it reaches supervision unchanged in kind.
var ErrDeadTransaction = errors.New("transaction set is dead")

// Mode governs how Join behaves when the calling handle may or may not
// already be enlisted in a Set.
type Mode int

const (
	// RequiresExisting fails Join unless the handle is already enlisted in
	// a Set.
	RequiresExisting Mode = iota
	// Requires enlists in the current ambient Set if one is present,
	// otherwise starts a new one.
	Requires
	// RequiresNew always starts a fresh Set, suspending any ambient one
	// for the duration.
	RequiresNew
)

// Set is an opaque handle to one transactional attempt. Coordinator
// implementations may embed arbitrary bookkeeping behind it; the core only
// ever compares Sets by ID.
type Set interface {
	// ID returns the Set's unique identifier.
	ID() string
}

// Coordinator is the external STM collaborator. A Spawn call may supply
// one (actor.WithTransactionCoordinator); the runtime only calls Current,
// to fill Envelope.TxSet, which stays nil when no Coordinator is present.
type Coordinator interface {
	// Current returns the Set the calling goroutine is currently enlisted
	// in, if any.
	Current(ctx context.Context) (Set, bool)

	// NewSet starts and returns a fresh Set.
	NewSet(ctx context.Context) Set

	// Clear detaches the calling goroutine from whatever Set it is
	// enlisted in, without aborting or committing it.
	Clear(ctx context.Context)

	// Abort rolls back s. Returns ErrDeadTransaction if s was already
	// resolved.
	Abort(ctx context.Context, s Set) error

	// Commit finalizes s. Returns ErrDeadTransaction if s was already
	// resolved.
	Commit(ctx context.Context, s Set) error

	// Join enlists the calling goroutine in s under the given Mode.
	Join(ctx context.Context, s Set, mode Mode) error
}
