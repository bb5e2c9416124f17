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
	ift.Register(ir.CellReduceOr, handleReduceOr)
	ift.Register(ir.CellReduceBool, handleReduceOr) // $reduce_bool and $reduce_or share a definition.
	ift.Register(ir.CellReduceAnd, handleReduceAnd)
	ift.Register(ir.CellReduceXor, handleReduceXor)
	ift.Register(ir.CellLogicNot, handleLogicNot)
	ift.Register(ir.CellLogicAnd, handleLogicAnd)
	ift.Register(ir.CellLogicOr, handleLogicOr)
}

// foldOr folds the precise bitwise-OR taint rule across every bit of a
// multi-bit operand down to one bit, by chaining ORTaint the same way a
// multi-input OR reduction tree would: each step's "concrete" operand is the
// actual cumulative OR of every prior bit, so the formula's precision
// carries through the whole fold.
func foldOr(m *ir.Module, data, taint ir.Signal) (ir.Signal, ir.Signal) {
	accVal := data.Slice(0, 1)
	accTaint := taint.Slice(0, 1)

	for i := uint(1); i < data.Width(); i++ {
		bitVal := data.Slice(i, i+1)
		bitTaint := taint.Slice(i, i+1)

		newTaint := gadgets.ORTaint(m, accVal, bitVal, accTaint, bitTaint)
		accVal = gadgets.Or(m, accVal, bitVal)
		accTaint = newTaint
	}

	return accVal, accTaint
}

// foldAnd is foldOr's AND-reduction counterpart.
func foldAnd(m *ir.Module, data, taint ir.Signal) (ir.Signal, ir.Signal) {
	accVal := data.Slice(0, 1)
	accTaint := taint.Slice(0, 1)

	for i := uint(1); i < data.Width(); i++ {
		bitVal := data.Slice(i, i+1)
		bitTaint := taint.Slice(i, i+1)

		newTaint := gadgets.ANDTaint(m, accVal, bitVal, accTaint, bitTaint)
		accVal = gadgets.And(m, accVal, bitVal)
		accTaint = newTaint
	}

	return accVal, accTaint
}

func handleReduceOr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	a := c.Port("A")

	taint := perLabelUnary(in, m, c, func(lbl uint, at ir.Signal) ir.Signal {
		bit := at.Slice(0, 1)
		if a.Width() > 1 {
			_, bit = foldOr(m, a, at)
		}

		return padTaint(bit, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

func handleReduceAnd(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	a := c.Port("A")

	taint := perLabelUnary(in, m, c, func(lbl uint, at ir.Signal) ir.Signal {
		bit := at.Slice(0, 1)
		if a.Width() > 1 {
			_, bit = foldAnd(m, a, at)
		}

		return padTaint(bit, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleReduceXor implements the exact $reduce_xor (parity) taint rule:
// tainting any input bit makes the parity result depend on that bit,
// regardless of every other bit's concrete value, so the output taint is
// simply the OR of all input taint bits.
func handleReduceXor(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)

	taint := perLabelUnary(in, m, c, func(lbl uint, at ir.Signal) ir.Signal {
		return padTaint(gadgets.ReduceOr(m, at), yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleLogicNot is a NOT gate wrapped around a reduce_or: its taint is
// exactly that of the reduce_or it wraps, since NOT never masks taint.
func handleLogicNot(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	a := c.Port("A")

	taint := perLabelUnary(in, m, c, func(lbl uint, at ir.Signal) ir.Signal {
		bit := at.Slice(0, 1)
		if a.Width() > 1 {
			_, bit = foldOr(m, a, at)
		}

		return padTaint(bit, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

func handleLogicAnd(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	a, b := c.Port("A"), c.Port("B")

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		aVal, aTaint := a, at
		if a.Width() > 1 {
			aVal, aTaint = foldOr(m, a, at)
		}

		bVal, bTaint := b, bt
		if b.Width() > 1 {
			bVal, bTaint = foldOr(m, b, bt)
		}

		return padTaint(gadgets.ANDTaint(m, aVal, bVal, aTaint, bTaint), yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

func handleLogicOr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	a, b := c.Port("A"), c.Port("B")

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		aVal, aTaint := a, at
		if a.Width() > 1 {
			aVal, aTaint = foldOr(m, a, at)
		}

		bVal, bTaint := b, bt
		if b.Width() > 1 {
			bVal, bTaint = foldOr(m, b, bt)
		}

		return padTaint(gadgets.ORTaint(m, aVal, bVal, aTaint, bTaint), yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}
