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
	ift.Register(ir.CellMux, handleMux)
	ift.Register(ir.CellPmux, handlePmux)
}

// handleMux implements the precise $mux taint rule
// (original_source/passes/cellift/cells/mux.cc): the output mirrors
// whichever input the real selector actually picks, so its taint is the
// real select's own 2-to-1 mux over the two inputs' taints; on top of that,
// a tainted selector could itself have picked the other input, so its taint
// is broadcast across the whole result unconditionally.
func handleMux(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)
	s := c.Port("S")

	if in.Config().ConjunctiveMuxes {
		return conjunctiveMux(in, m, c, s, yw)
	}

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		at = gadgets.ExtendTaint(at, aSigned, yw)
		bt = gadgets.ExtendTaint(bt, bSigned, yw)

		sTaint := in.TaintSignal(m, s, lbl)
		selected := gadgets.Mux(m, at, bt, s)

		return gadgets.Or(m, selected, broadcast(m, sTaint, yw))
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handlePmux dispatches among the three one-hot-multiplexer strategies
// configured via Config.Pmux (spec.md §6): SmallCells chains one 2-to-1 mux
// per case and trusts the one-hot invariant, LargeCells builds a single wide
// shadow $pmux and also trusts the invariant, and Precise drops the
// invariant and conjoins every case whose selector bit could possibly be
// set.
func handlePmux(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, _ := widths(c)
	a := gadgets.Extend(c.Port("A"), aSigned, yw)
	b := c.Port("B")
	s := c.Port("S")
	numCases := s.Width()

	if in.Config().ConjunctiveMuxes {
		return conjunctiveMux(in, m, c, s, yw)
	}

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		at = gadgets.ExtendTaint(at, aSigned, yw)
		sTaint := in.TaintSignal(m, s, lbl)

		switch in.Config().Pmux {
		case ift.PmuxLargeCells:
			return pmuxLargeCells(m, a, at, b, bt, s, sTaint, yw, numCases)
		case ift.PmuxPrecise:
			return pmuxPrecise(m, a, at, b, bt, s, sTaint, yw, numCases)
		default:
			return pmuxSmallCells(m, a, at, b, bt, s, sTaint, yw, numCases)
		}
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// conjunctiveMux is the -conjunctive-muxes fallback shared by $mux and
// $pmux: unlike conjunctiveBinary, it must also fold in the selector's own
// taint, since an uncertain selector can route any operand's taint to the
// output regardless of the data operands' own taint state.
func conjunctiveMux(in *ift.Instrumenter, m *ir.Module, c *ir.Cell, s ir.Signal, yw uint) error {
	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		sTaint := in.TaintSignal(m, s, lbl)
		any := gadgets.OrReduceN(m, gadgets.ReduceOr(m, at), gadgets.ReduceOr(m, bt), gadgets.ReduceOr(m, sTaint))

		return broadcast(m, any, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

func pmuxSmallCells(m *ir.Module, a, at, b, bt, s, sTaint ir.Signal, yw, numCases uint) ir.Signal {
	acc := at

	for i := uint(0); i < numCases; i++ {
		caseTaint := bt.Slice(i*yw, (i+1)*yw)
		sBit := s.Slice(i, i+1)
		sBitTaint := sTaint.Slice(i, i+1)

		contribution := gadgets.Or(m, caseTaint, broadcast(m, sBitTaint, yw))
		acc = gadgets.Mux(m, acc, contribution, sBit)
	}

	return acc
}

func pmuxLargeCells(m *ir.Module, a, at, b, bt, s, sTaint ir.Signal, yw, numCases uint) ir.Signal {
	selected := gadgets.Pmux(m, at, bt, s, yw)
	anyS := gadgets.ReduceOr(m, sTaint)

	return gadgets.Or(m, selected, broadcast(m, anyS, yw))
}

func pmuxPrecise(m *ir.Module, a, at, b, bt, s, sTaint ir.Signal, yw, numCases uint) ir.Signal {
	acc := at

	for i := uint(0); i < numCases; i++ {
		caseTaint := bt.Slice(i*yw, (i+1)*yw)
		sVal := s.Slice(i, i+1)
		sBitTaint := sTaint.Slice(i, i+1)

		mayBeActive := gadgets.Or(m, sVal, sBitTaint)
		contribution := gadgets.And(m,
			broadcast(m, mayBeActive, yw),
			gadgets.Or(m, caseTaint, broadcast(m, sBitTaint, yw)))

		acc = gadgets.Or(m, acc, contribution)
	}

	return acc
}
