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
	ift.Register(ir.CellEq, handleEq)
	ift.Register(ir.CellNe, handleEq) // $ne shares $eq's taint rule exactly.
	ift.Register(ir.CellGe, orderedComparer(ir.CellGe))
	ift.Register(ir.CellLt, orderedComparer(ir.CellGe)) // $lt is $ge's negation; same taint rule.
	ift.Register(ir.CellGt, orderedComparer(ir.CellGt))
	ift.Register(ir.CellLe, orderedComparer(ir.CellGt)) // $le is $gt's negation; same taint rule.
}

// handleEq implements the precise $eq/$ne taint rule
// (original_source/passes/cellift/cells/eq_ne.cc): a bit-pair that disagrees
// while both sides are untainted forces the comparison's result regardless
// of any other bit, so the comparison is untainted whenever such a pair
// exists. Otherwise, the comparison is tainted iff at least one bit-pair is
// uncertain (either side tainted), since an uncertain pair can always be
// resolved either to "equal" or "not equal" without contradicting any
// forced-unequal pair.
func handleEq(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)
	width := gadgets.WorkingWidth(c.Port("A").Width(), c.Port("B").Width())

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		a, at := gadgets.HarmonizedPair(c.Port("A"), at, aSigned, width)
		b, bt := gadgets.HarmonizedPair(c.Port("B"), bt, bSigned, width)

		uncertain := gadgets.Or(m, at, bt)
		mismatch := gadgets.Xor(m, a, b)
		forcedDiff := gadgets.ReduceOr(m, gadgets.And(m, mismatch, gadgets.Not(m, uncertain)))
		anyUncertain := gadgets.ReduceOr(m, uncertain)

		bit := gadgets.And(m, gadgets.Not(m, forcedDiff), anyUncertain)

		return padTaint(bit, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// orderedComparer returns a handler implementing the precise taint rule
// shared by $ge/$lt (and, with base=$gt, by $gt/$le): since the comparison
// is monotonic in each operand (increasing in A, decreasing in B), its value
// is constant across every combination of the tainted bits iff it agrees at
// the two extreme corners - all tainted A bits forced low paired with all
// tainted B bits forced high (the "most false" corner), versus all tainted A
// bits forced high paired with all tainted B bits forced low (the "most
// true" corner). When both operands are signed, the sign bit weighs
// negatively, so each corner takes the opposite value of that one bit.
func orderedComparer(base ir.CellType) ift.Handler {
	return func(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
		_, _, yw, aSigned, bSigned := widths(c)
		width := gadgets.WorkingWidth(c.Port("A").Width(), c.Port("B").Width())

		taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
			a, at := gadgets.HarmonizedPair(c.Port("A"), at, aSigned, width)
			b, bt := gadgets.HarmonizedPair(c.Port("B"), bt, bSigned, width)

			aLow := gadgets.And(m, a, gadgets.Not(m, at))
			aHigh := gadgets.Or(m, a, at)
			bLow := gadgets.And(m, b, gadgets.Not(m, bt))
			bHigh := gadgets.Or(m, b, bt)

			if aSigned && bSigned && width > 0 {
				top := width - 1
				aLow, aHigh = aLow.Slice(0, top).Concat(aHigh.Slice(top, width)), aHigh.Slice(0, top).Concat(aLow.Slice(top, width))
				bLow, bHigh = bLow.Slice(0, top).Concat(bHigh.Slice(top, width)), bHigh.Slice(0, top).Concat(bLow.Slice(top, width))
			}

			var lo, hi ir.Signal
			if base == ir.CellGt {
				lo = gadgets.Gt(m, aLow, bHigh, aSigned, bSigned)
				hi = gadgets.Gt(m, aHigh, bLow, aSigned, bSigned)
			} else {
				lo = gadgets.Ge(m, aLow, bHigh, aSigned, bSigned)
				hi = gadgets.Ge(m, aHigh, bLow, aSigned, bSigned)
			}

			bit := gadgets.Xor(m, lo, hi)

			return padTaint(bit, yw)
		})

		return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
	}
}
