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

// Package serialization declares the two wire codecs the core treats as
// external collaborators (SPEC_FULL.md §6): the runtime never interprets
// bytes itself, it only calls whichever codec a handle was given
// (actor.WithRemoting or actor.SpawnRemote).
package serialization

// PayloadCodec encodes and decodes message payloads for transport.
type PayloadCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// StateCodec encodes and decodes actor state, used when a handle migrates
// to another node.
type StateCodec interface {
	EncodeState(v any) ([]byte, error)
	DecodeState(data []byte, v any) error
}
