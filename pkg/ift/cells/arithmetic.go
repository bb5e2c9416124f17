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
package cells

import (
	"github.com/comsec-group/go-cellift/pkg/ift"
	"github.com/comsec-group/go-cellift/pkg/ift/gadgets"
	"github.com/comsec-group/go-cellift/pkg/ir"
)

func init() {
	ift.Register(ir.CellAdd, handleAdd)
	ift.Register(ir.CellSub, handleSub)
	ift.Register(ir.CellNeg, handleNeg)
}

// prefixOr returns, for each bit position k, the OR of sig's bits at
// positions [0,k]: a cheap, carry-could-have-propagated-this-far
// approximation used by the RTLIFT-style adder taint rule.
func prefixOr(m *ir.Module, sig ir.Signal) ir.Signal {
	out := make(ir.Signal, sig.Width())
	acc := sig.Slice(0, 1)
	out[0] = acc[0]

	for i := uint(1); i < sig.Width(); i++ {
		acc = gadgets.Or(m, acc, sig.Slice(i, i+1))
		out[i] = acc[0]
	}

	return out
}

// suffixOrFromDiff returns, for each bit position k, whether diff has any
// set bit at position >= k: the corner-technique's "this bit might differ
// between the all-0 and all-1 taint assignment" test.
func suffixOrFromDiff(m *ir.Module, diff ir.Signal) ir.Signal {
	width := diff.Width()
	out := make(ir.Signal, width)
	acc := diff.Slice(width-1, width)
	out[width-1] = acc[0]

	for i := int(width) - 2; i >= 0; i-- {
		acc = gadgets.Or(m, acc, diff.Slice(uint(i), uint(i)+1))
		out[i] = acc[0]
	}

	return out
}

// rtliftAdderTaint implements the cheap -rtlift-adders rule: a carry could
// in principle propagate from any tainted input bit all the way to the most
// significant output bit, so every output bit at or above the lowest
// tainted input bit is conservatively marked tainted.
func rtliftAdderTaint(m *ir.Module, at, bt ir.Signal) ir.Signal {
	return prefixOr(m, gadgets.Or(m, at, bt))
}

// preciseAdderTaint implements the bit-exact corner technique: since
// unsigned addition is monotonic in every input bit, the reachable sum for a
// fixed set of tainted bits ranges exactly over [min,max], where min forces
// every tainted bit to 0 and max forces every tainted bit to 1. Output bit k
// is tainted iff min and max disagree at or above position k (a lower
// disagreement could still carry into bit k).
func preciseAdderTaint(m *ir.Module, a, b, at, bt ir.Signal, subtract bool) ir.Signal {
	notAt := gadgets.Not(m, at)
	notBt := gadgets.Not(m, bt)

	aLow := gadgets.And(m, a, notAt)
	aHigh := gadgets.Or(m, a, at)
	bLow := gadgets.And(m, b, notBt)
	bHigh := gadgets.Or(m, b, bt)

	var minV, maxV ir.Signal
	if subtract {
		// Subtraction is monotonic increasing in A and decreasing in B, so
		// the minimum difference forces A low and B high, the maximum forces
		// A high and B low.
		minV = gadgets.Sub(m, aLow, bHigh)
		maxV = gadgets.Sub(m, aHigh, bLow)
	} else {
		minV = gadgets.Add(m, aLow, bLow)
		maxV = gadgets.Add(m, aHigh, bHigh)
	}

	diff := gadgets.Xor(m, minV, maxV)

	return suffixOrFromDiff(m, diff)
}

func handleAdd(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)
	a := gadgets.Extend(c.Port("A"), aSigned, yw)
	b := gadgets.Extend(c.Port("B"), bSigned, yw)

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		at = gadgets.ExtendTaint(at, aSigned, yw)
		bt = gadgets.ExtendTaint(bt, bSigned, yw)

		if in.Config().RtliftAdders {
			return rtliftAdderTaint(m, at, bt)
		}

		return preciseAdderTaint(m, a, b, at, bt, false)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

func handleSub(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)
	a := gadgets.Extend(c.Port("A"), aSigned, yw)
	b := gadgets.Extend(c.Port("B"), bSigned, yw)

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		at = gadgets.ExtendTaint(at, aSigned, yw)
		bt = gadgets.ExtendTaint(bt, bSigned, yw)

		if in.Config().RtliftAdders {
			return rtliftAdderTaint(m, at, bt)
		}

		return preciseAdderTaint(m, a, b, at, bt, true)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleNeg is implemented as the original pass chooses to: as a subtraction
// from zero (original_source's neg handler shares its body with sub rather
// than carrying a bespoke implementation), so it reuses preciseAdderTaint
// with A forced to the constant zero.
func handleNeg(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, _ := widths(c) // $neg only has an A operand.
	b := gadgets.Extend(c.Port("A"), aSigned, yw)
	zero := gadgets.NewLiteral(0, yw)
	zeroTaint := gadgets.NewLiteral(0, yw)

	taint := perLabelUnary(in, m, c, func(lbl uint, bt ir.Signal) ir.Signal {
		bt = gadgets.ExtendTaint(bt, aSigned, yw)

		if in.Config().RtliftAdders {
			return rtliftAdderTaint(m, zeroTaint, bt)
		}

		return preciseAdderTaint(m, zero, b, zeroTaint, bt, true)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}
