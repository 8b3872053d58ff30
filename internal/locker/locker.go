// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package locker holds small embeddable helpers shared by the internal
// concurrency primitives.
package locker

// NoCopy may be embedded into a struct to make `go vet`'s copylocks analysis
// flag accidental copies of types that wrap a mutex or other non-copyable
// state.
//
// It has no behavior of its own; embedding it is the entire contract.
type NoCopy struct{}

// Lock is a no-op. It exists only so that NoCopy satisfies the
// sync.Locker-shaped interface that `go vet` looks for.
func (*NoCopy) Lock() {}

// Unlock is a no-op, see Lock.
func (*NoCopy) Unlock() {}
