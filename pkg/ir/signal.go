// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import "strings"

// SignalBit is either a constant bit state, or a reference to one bit of a
// wire.  A nil Wire marks a constant bit.
type SignalBit struct {
	Wire  *Wire
	Index uint
	Const BitState
}

// ConstBit constructs a constant signal bit.
func ConstBit(s BitState) SignalBit {
	return SignalBit{Const: s}
}

// WireBit constructs a signal bit referencing the given bit index of a wire.
func WireBit(w *Wire, index uint) SignalBit {
	return SignalBit{Wire: w, Index: index}
}

// IsConst identifies a constant signal bit.
func (b SignalBit) IsConst() bool {
	return b.Wire == nil
}

// Signal is an ordered sequence of signal bits, least-significant first.
type Signal []SignalBit

// NewConstSignal builds a signal of all-identical constant bits.
func NewConstSignal(s BitState, width uint) Signal {
	sig := make(Signal, width)
	for i := range sig {
		sig[i] = ConstBit(s)
	}

	return sig
}

// WireSignal builds a signal referencing every bit of the given wire, in
// order.
func WireSignal(w *Wire) Signal {
	sig := make(Signal, w.Width)
	for i := range sig {
		sig[i] = WireBit(w, uint(i))
	}

	return sig
}

// Width returns the number of bits in this signal.
func (s Signal) Width() uint {
	return uint(len(s))
}

// Concat appends the bits of other after the bits of this signal (other
// becomes the more-significant part).
func (s Signal) Concat(other Signal) Signal {
	r := make(Signal, 0, len(s)+len(other))
	r = append(r, s...)
	r = append(r, other...)

	return r
}

// Slice extracts the half-open bit range [lo,hi).
func (s Signal) Slice(lo, hi uint) Signal {
	return s[lo:hi]
}

// Repeat concatenates n copies of this signal.
func (s Signal) Repeat(n uint) Signal {
	r := make(Signal, 0, uint(len(s))*n)
	for i := uint(0); i < n; i++ {
		r = append(r, s...)
	}

	return r
}

// Extract returns a single-bit signal extracting the given bit.
func (s Signal) Extract(i uint) Signal {
	return Signal{s[i]}
}

// Replicate returns a signal where a single-bit signal is repeated to the
// given width.  Panics if s is not exactly one bit wide.
func (s Signal) Replicate(width uint) Signal {
	if len(s) != 1 {
		panic("Replicate requires a single-bit signal")
	}

	return NewConstSignal(Zero, 0).Concat(s).Repeat(width)[:width]
}

// Equals returns whether two signals reference exactly the same sequence of
// bits.
func (s Signal) Equals(o Signal) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// String renders a signal for debugging purposes, most-significant bit
// first.
func (s Signal) String() string {
	var sb strings.Builder

	for i := len(s) - 1; i >= 0; i-- {
		b := s[i]
		if b.IsConst() {
			sb.WriteString(b.Const.String())
		} else {
			sb.WriteString(b.Wire.Name)
			sb.WriteByte('[')
			sb.WriteString(itoa(b.Index))
			sb.WriteByte(']')
		}

		if i > 0 {
			sb.WriteByte(',')
		}
	}

	return sb.String()
}

func itoa(n uint) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte

	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[i:])
}
