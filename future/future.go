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

// Package future provides a single-assignment, wait-for-completion value:
// the building block behind Ask-style request/reply messaging.
package future

import (
	"context"
	"sync"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that
// value could not be made available.
//
// Unlike a channel, a Future may be awaited by more than one caller: the
// outcome the first Await observes is kept, and every later Await returns
// it. If the first Await's ctx ends before completion, that context error
// is the kept outcome, and a later completion is not seen.
type Future interface {
	// Await blocks until the Future is completed or ctx is canceled and
	// returns either a result or an error.
	Await(ctx context.Context) (any, error)

	// complete completes the Future with either a value or an error. Only
	// a Completable created alongside this Future may call it.
	complete(value any, err error)
}

// New creates a Future that runs task in its own goroutine and completes
// with whatever task returns.
func New(task func() (any, error)) Future {
	comp := NewCompletable()
	go func() {
		result, err := task()
		if err == nil {
			comp.Success(result)
		} else {
			comp.Failure(err)
		}
	}()
	return comp.Future()
}

// future implements the Future interface.
type future struct {
	acceptOnce   sync.Once
	completeOnce sync.Once
	done         chan any
	value        any
	err          error
}

var _ Future = (*future)(nil)

// newFuture returns a new, unresolved Future.
func newFuture() Future {
	return &future{
		done: make(chan any, 1),
	}
}

// wait blocks once, until the Future result is available or until the
// context is canceled.
func (x *future) wait(ctx context.Context) {
	x.acceptOnce.Do(func() {
		select {
		case result := <-x.done:
			x.setResult(result)
		case <-ctx.Done():
			x.setResult(ctx.Err())
		}
	})
}

// setResult assigns a value to the Future instance.
func (x *future) setResult(result any) {
	if err, ok := result.(error); ok {
		x.err = err
		return
	}
	x.value = result
}

// Await blocks until the Future is completed or context is canceled and
// returns either a result or an error.
func (x *future) Await(ctx context.Context) (any, error) {
	x.wait(ctx)
	return x.value, x.err
}

// complete completes the Future with either a value or an error.
func (x *future) complete(value any, err error) {
	x.completeOnce.Do(func() {
		if err != nil {
			x.done <- err
			return
		}
		x.done <- value
	})
}

// Completable is a writable, single-assignment container which completes
// exactly one Future. The Ask side of a request holds the Future; the
// handle that eventually answers holds the Completable.
type Completable interface {
	// Success completes the underlying Future with a value.
	Success(any)

	// Failure fails the underlying Future with an error.
	Failure(error)

	// Future returns the underlying Future.
	Future() Future
}

// completer implements the Completable interface.
type completer struct {
	once   sync.Once
	future Future
}

var _ Completable = (*completer)(nil)

// NewCompletable returns a new Completable paired with a fresh, unresolved
// Future.
func NewCompletable() Completable {
	return &completer{
		future: newFuture(),
	}
}

// Success completes the underlying Future with a given value.
func (p *completer) Success(value any) {
	p.once.Do(func() {
		p.future.complete(value, nil)
	})
}

// Failure fails the underlying Future with a given error.
func (p *completer) Failure(err error) {
	p.once.Do(func() {
		p.future.complete(nil, err)
	})
}

// Future returns the underlying Future.
func (p *completer) Future() Future {
	return p.future
}
