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

// Package actorerrors defines the failure-kind taxonomy consumed by the
// actor handle, dispatcher, and supervision engine.
package actorerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned by Handle operations invoked before Start.
	ErrNotStarted = errors.New("actor has not started")

	// ErrStopped is returned by Handle operations invoked after Stop.
	ErrStopped = errors.New("actor is stopped")

	// ErrMailboxFull is returned by a bounded mailbox's Enqueue when the
	// configured rejection policy is RejectAbort and the mailbox is saturated.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrMailboxDisposed is returned by a mailbox once Dispose has run.
	ErrMailboxDisposed = errors.New("mailbox has been disposed")

	// ErrAskTimeout indicates an Ask call's timeout elapsed before a reply arrived.
	ErrAskTimeout = errors.New("ask timed out")

	// ErrNoSenderInScope is returned by Forward/Reply when there is no
	// ambient current-message, or that message carries neither a sender nor
	// a reply future.
	ErrNoSenderInScope = errors.New("no sender in scope")

	// ErrLinkageError is returned by Link/Unlink on a graph-shape violation.
	ErrLinkageError = errors.New("linkage error")

	// ErrRemoteOperationUnsupported is returned when a local-only operation
	// is invoked on a Remote handle.
	ErrRemoteOperationUnsupported = errors.New("operation unsupported on a remote handle")

	// ErrTransactionSetAborted is the fault kind for an aborted transaction
	// set. The runtime does not produce it: invoke does not map
	// transaction.ErrDeadTransaction onto it, so a handler failure carrying
	// that sentinel reaches supervision like any other failure.
	ErrTransactionSetAborted = errors.New("transaction set aborted")

	// ErrMaxRestartsExceeded is delivered to a supervisor, never raised at a
	// call site: the subordinate exceeded its restart budget within the
	// configured window and has been stopped.
	ErrMaxRestartsExceeded = errors.New("max restarts exceeded")

	// ErrInitializationFailed wraps a failure from Actor.Init.
	ErrInitializationFailed = errors.New("actor initialization failed")

	// ErrUnhandled is returned when an actor receives a message its
	// behavior does not recognize and no default case applies.
	ErrUnhandled = errors.New("unhandled message")

	// ErrDead indicates the target actor is no longer registered or alive.
	ErrDead = errors.New("actor is not alive")

	// ErrActorAlreadyExists is returned by the registry when registering a
	// second handle under an identity already present.
	ErrActorAlreadyExists = errors.New("actor already exists")

	// ErrInvalidTimeout is returned when a requested timeout is <= 0.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrSchedulerNotStarted is returned when scheduling a job before the
	// scheduler.Scheduler has been started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrScheduledReferenceNotFound is returned when canceling a job id the
	// scheduler does not recognize.
	ErrScheduledReferenceNotFound = errors.New("scheduled reference not found")
)

// NewErrActorAlreadyExists formats ErrActorAlreadyExists with the colliding identity.
func NewErrActorAlreadyExists(id fmt.Stringer) error {
	return fmt.Errorf("actor=(%s) %w", id, ErrActorAlreadyExists)
}

// NewErrInitializationFailed wraps a cause with ErrInitializationFailed.
func NewErrInitializationFailed(cause error) error {
	return errors.Join(ErrInitializationFailed, cause)
}

// NewErrMaxRestartsExceeded formats ErrMaxRestartsExceeded with restart budget context.
func NewErrMaxRestartsExceeded(id fmt.Stringer, maxRetries uint32, cause error) error {
	return fmt.Errorf("actor=(%s) exceeded %d restarts: %w: %w", id, maxRetries, cause, ErrMaxRestartsExceeded)
}

// NewErrLinkageError formats ErrLinkageError with a human-readable reason.
func NewErrLinkageError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrLinkageError)
}

// PanicError wraps a value recovered from a panic during Actor.Receive.
type PanicError struct {
	err error
}

var _ error = (*PanicError)(nil)

// NewPanicError creates a PanicError wrapping the given cause.
func NewPanicError(err error) *PanicError {
	return &PanicError{err: err}
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *PanicError) Unwrap() error {
	return e.err
}

// UserHandlerError is spec.md's UserHandlerRaised(cause): the normal-return
// error path out of Actor.Receive, as opposed to a recovered panic.
type UserHandlerError struct {
	err error
}

var _ error = (*UserHandlerError)(nil)

// NewUserHandlerError wraps a cause returned from a handler's error path.
func NewUserHandlerError(err error) *UserHandlerError {
	return &UserHandlerError{err: err}
}

// Error implements the error interface.
func (e *UserHandlerError) Error() string {
	return fmt.Sprintf("user handler raised: %v", e.err)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *UserHandlerError) Unwrap() error {
	return e.err
}

// AnyError is the sentinel key used to register a supervisor directive that
// applies to any failure kind, overriding per-type rules.
type AnyError struct{}

var _ error = (*AnyError)(nil)

// Error implements the error interface.
func (*AnyError) Error() string {
	return "*"
}
