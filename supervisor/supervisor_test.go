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

package supervisor

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cchandler/akka/actorerrors"
)

func TestNewSupervisorDefaults(t *testing.T) {
	s := NewSupervisor()
	require.Equal(t, OneForOneStrategy, s.Strategy())
	require.Zero(t, s.MaxRetries())
	require.Equal(t, time.Duration(-1), s.Timeout())

	directive, ok := s.Directive(actorerrors.NewPanicError(errors.New("boom")))
	require.True(t, ok)
	require.Equal(t, StopDirective, directive)

	directive, ok = s.Directive(&runtime.PanicNilError{})
	require.True(t, ok)
	require.Equal(t, RestartDirective, directive)

	_, ok = s.AnyErrorDirective()
	require.False(t, ok)
}

func TestWithDirectiveRegistersPerTypeRule(t *testing.T) {
	sentinel := errors.New("sentinel")
	s := NewSupervisor(WithDirective(sentinel, ResumeDirective))

	directive, ok := s.Directive(sentinel)
	require.True(t, ok)
	require.Equal(t, ResumeDirective, directive)

	// Rules are keyed by concrete type, so the unregistered error must be
	// of a different type than the sentinel (*errors.errorString).
	_, ok = s.Directive(fmt.Errorf("unregistered: %w", sentinel))
	require.False(t, ok)
}

func TestWithAnyErrorDirectiveOverridesPerTypeRules(t *testing.T) {
	sentinel := errors.New("sentinel")
	s := NewSupervisor(
		WithDirective(sentinel, ResumeDirective),
		WithAnyErrorDirective(EscalateDirective),
	)

	// The catch-all directive clears every per-type rule registered
	// before it, so even the type that had an explicit rule now only
	// resolves through AnyErrorDirective.
	_, ok := s.Directive(sentinel)
	require.False(t, ok)

	directive, ok := s.AnyErrorDirective()
	require.True(t, ok)
	require.Equal(t, EscalateDirective, directive)

	require.Len(t, s.Rules(), 1)
}

func TestWithRetryConfiguresBudgetAndWindow(t *testing.T) {
	s := NewSupervisor(WithRetry(5, time.Minute))
	require.Equal(t, uint32(5), s.MaxRetries())
	require.Equal(t, time.Minute, s.Timeout())
}

func TestWithStrategySetsOneForAll(t *testing.T) {
	s := NewSupervisor(WithStrategy(OneForAllStrategy))
	require.Equal(t, OneForAllStrategy, s.Strategy())
}

func TestResetClearsDirectivesAndSwitchesToOneForAll(t *testing.T) {
	s := NewSupervisor()
	s.Reset()
	require.Equal(t, OneForAllStrategy, s.Strategy())
	require.Empty(t, s.Rules())

	_, ok := s.Directive(actorerrors.NewPanicError(errors.New("boom")))
	require.False(t, ok)
}

func TestSetDirectiveByTypeAddsWithoutClearing(t *testing.T) {
	s := NewSupervisor()
	before := len(s.Rules())

	s.SetDirectiveByType("example.CustomError", ResumeDirective)
	require.Len(t, s.Rules(), before+1)

	s.SetDirectiveByType("", StopDirective)
	require.Len(t, s.Rules(), before+1)
}

func TestBumpRestartCountSharesOneWindow(t *testing.T) {
	s := NewSupervisor(WithRetry(2, time.Minute))

	exceeded, count := s.BumpRestartCount()
	require.False(t, exceeded)
	require.Equal(t, uint32(1), count)

	exceeded, count = s.BumpRestartCount()
	require.False(t, exceeded)
	require.Equal(t, uint32(2), count)

	exceeded, count = s.BumpRestartCount()
	require.True(t, exceeded)
	require.Equal(t, uint32(3), count)
}

func TestBumpRestartCountResetsAfterWindow(t *testing.T) {
	s := NewSupervisor(WithRetry(1, time.Millisecond))

	exceeded, count := s.BumpRestartCount()
	require.False(t, exceeded)
	require.Equal(t, uint32(1), count)

	time.Sleep(5 * time.Millisecond)

	exceeded, count = s.BumpRestartCount()
	require.False(t, exceeded)
	require.Equal(t, uint32(1), count)
}

func TestStrategyStringAndDirectiveString(t *testing.T) {
	require.Equal(t, "OneForOne", OneForOneStrategy.String())
	require.Equal(t, "OneForAll", OneForAllStrategy.String())
	require.Equal(t, "", Strategy(99).String())

	require.Equal(t, "Stop", StopDirective.String())
	require.Equal(t, "Resume", ResumeDirective.String())
	require.Equal(t, "Restart", RestartDirective.String())
	require.Equal(t, "Escalate", EscalateDirective.String())
	require.Equal(t, "", Directive(99).String())
}
