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
	ift.Register(ir.CellShl, handleShl)
	ift.Register(ir.CellSshl, handleSshl)
	ift.Register(ir.CellShr, handleShr)
	ift.Register(ir.CellSshr, handleSshr)
	ift.Register(ir.CellShift, handleShift)
	ift.Register(ir.CellShiftx, handleShiftx)
}

// shiftDirection is "left" or "right", independent of whether the shift is
// logical or arithmetic.
type shiftDirection uint8

const (
	shiftLeft shiftDirection = iota
	shiftRight
)

// preciseShift implements the two-phase bit-exact shift taint construction
// of original_source/passes/cellift/cells/shl_sshl_precise.cc: phase one
// shifts A (and A's taint) by the portion of the shift amount B that is
// already known for certain (every tainted bit of B forced to zero, the
// smallest shift reachable); phase two walks every additional shift amount k
// reachable by setting some subset of B's tainted bits and, for each
// reachable k, compares the phase-one result's bit N against the bit that
// would land at N if shifted by k more - any disagreement between two
// reachable shift amounts means bit N's value depends on B, so it is
// tainted. Reachability of k is itself computed as a gate
// ((k & Bt) == k), since at instrumentation time the actual taint value of B
// is unknown.
func preciseShift(m *ir.Module, dir shiftDirection, arithmetic bool, a, at, b, bt ir.Signal, width uint) ir.Signal {
	floorAmount := gadgets.And(m, b, gadgets.Not(m, bt))

	var shiftedData, shiftedTaint ir.Signal
	if dir == shiftLeft {
		shiftedData = gadgets.Shl(m, a, floorAmount, width, arithmetic, false)
		shiftedTaint = gadgets.Shl(m, at, floorAmount, width, arithmetic, false)
	} else if arithmetic {
		shiftedData = gadgets.Sshr(m, a, floorAmount, width, arithmetic, false)
		shiftedTaint = gadgets.Sshr(m, at, floorAmount, width, arithmetic, false)
	} else {
		shiftedData = gadgets.Shr(m, a, floorAmount, width, arithmetic, false)
		shiftedTaint = gadgets.Shr(m, at, floorAmount, width, arithmetic, false)
	}

	maxK := uint(1) << b.Width()

	out := make(ir.Signal, width)

	for n := uint(0); n < width; n++ {
		terms := []ir.Signal{shiftedTaint.Slice(n, n + 1)}

		for k := uint(1); k < maxK; k++ {
			var srcIdx int
			if dir == shiftLeft {
				srcIdx = int(n) - int(k)
			} else {
				srcIdx = int(n) + int(k)
			}

			var otherBit, otherTaint ir.Signal
			if srcIdx < 0 || uint(srcIdx) >= width {
				if arithmetic && dir == shiftRight {
					otherBit = shiftedData.Slice(width-1, width)
					otherTaint = shiftedTaint.Slice(width-1, width)
				} else {
					otherBit = gadgets.NewLiteral(0, 1)
					otherTaint = gadgets.NewLiteral(0, 1)
				}
			} else {
				otherBit = shiftedData.Slice(uint(srcIdx), uint(srcIdx)+1)
				otherTaint = shiftedTaint.Slice(uint(srcIdx), uint(srcIdx)+1)
			}

			// Bit N can change under shift k if the two bits differ or the
			// bit that would land at N is itself tainted.
			thisBit := shiftedData.Slice(n, n+1)
			diff := gadgets.Or(m, gadgets.Xor(m, thisBit, otherBit), otherTaint)

			reachable := gadgets.Eq(m,
				gadgets.And(m, bt, gadgets.NewLiteral(k, b.Width())),
				gadgets.NewLiteral(k, b.Width()),
				false, false)

			terms = append(terms, gadgets.And(m, broadcast(m, reachable, 1), diff))
		}

		out[n] = gadgets.OrReduceN(m, terms...)[0]
	}

	return out
}

func shiftHandler(dir shiftDirection, arithmetic bool, impreciseFlag func(ift.Config) bool) ift.Handler {
	return func(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
		_, _, yw, aSigned, bSigned := widths(c)
		a := gadgets.Extend(c.Port("A"), aSigned, yw)
		b := c.Port("B")

		taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
			at = gadgets.ExtendTaint(at, aSigned, yw)

			if impreciseFlag != nil && impreciseFlag(in.Config()) {
				any := gadgets.ReduceOr(m, gadgets.Or(m, at, gadgets.ExtendTaint(bt, bSigned, b.Width())))
				return broadcast(m, any, yw)
			}

			return preciseShift(m, dir, arithmetic, a, at, b, bt, yw)
		})

		return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
	}
}

func handleShl(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return shiftHandler(shiftLeft, false, func(cfg ift.Config) bool { return cfg.ImpreciseShlSshl })(in, m, c)
}

func handleSshl(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return shiftHandler(shiftLeft, true, func(cfg ift.Config) bool { return cfg.ImpreciseShlSshl })(in, m, c)
}

func handleShr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return shiftHandler(shiftRight, false, func(cfg ift.Config) bool { return cfg.ImpreciseShrSshr })(in, m, c)
}

func handleSshr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return shiftHandler(shiftRight, true, func(cfg ift.Config) bool { return cfg.ImpreciseShrSshr })(in, m, c)
}

// handleShift implements $shift: a signed B shifts left on negative values
// and right otherwise. Lacking a dedicated bidirectional precise
// construction, the shadow logic conjoins the two unidirectional precise
// results under the sign of B, which stays sound because at most one
// direction is reachable for any concrete B.
func handleShift(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)
	a := gadgets.Extend(c.Port("A"), aSigned, yw)
	b := c.Port("B")

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		at = gadgets.ExtendTaint(at, aSigned, yw)

		left := preciseShift(m, shiftLeft, false, a, at, b, bt, yw)
		right := preciseShift(m, shiftRight, false, a, at, b, bt, yw)

		if !bSigned || b.Width() == 0 {
			return right
		}

		signBit := b.Slice(b.Width()-1, b.Width())
		signTaint := bt.Slice(b.Width()-1, b.Width())

		chosen := gadgets.Mux(m, right, left, signBit)

		return gadgets.Or(m, chosen, broadcast(m, signTaint, yw))
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleShiftx implements $shiftx: behaviourally like $shift but out-of-range
// bits are don't-care rather than zero. Config.PreciseShiftx selects between
// the bit-exact construction (treating don't-care positions as the
// zero-fill case, a sound over-approximation since don't-care can never be
// less tainted than a concrete fill value) and the cheaper conjunctive
// fallback.
func handleShiftx(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	if !in.Config().PreciseShiftx {
		_, _, yw, _, _ := widths(c)
		return conjunctiveBinary(in, m, c, yw)
	}

	return handleShift(in, m, c)
}
