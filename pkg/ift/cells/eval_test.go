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
	"fmt"

	"github.com/comsec-group/go-cellift/pkg/ir"
)

// This file is test-only infrastructure: a bit-exact evaluator for the
// handful of combinational primitive cell types the gadget library emits.
// It exists purely so the soundness-property tests (spec.md §8) can check
// "does tainting these input bits ever change this output bit" against the
// taint formulas actually built by the handlers under test, the ordinary
// nested-loop enumeration style the teacher uses for exhaustive tests (see
// pkg/schema/type_test.go). It is not a netlist simulator in the sense
// excluded by spec.md's Non-goals - it never ships outside _test.go and
// covers only the cell vocabulary this package itself constructs.

type bitKey struct {
	w *ir.Wire
	i uint
}

// evalState holds concrete 0/1 values for every wire bit touched so far.
type evalState struct {
	bits map[bitKey]uint8
}

func newEvalState() *evalState {
	return &evalState{bits: make(map[bitKey]uint8)}
}

func (e *evalState) setSignal(sig ir.Signal, val uint64) {
	for i, b := range sig {
		if b.IsConst() {
			continue
		}

		e.bits[bitKey{b.Wire, b.Index}] = uint8((val >> uint(i)) & 1)
	}
}

func (e *evalState) getSignal(sig ir.Signal) uint64 {
	var val uint64

	for i, b := range sig {
		var bit uint8

		if b.IsConst() {
			if b.Const == ir.One {
				bit = 1
			}
		} else {
			bit = e.bits[bitKey{b.Wire, b.Index}]
		}

		val |= uint64(bit) << uint(i)
	}

	return val
}

func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << width) - 1
}

func signExtend(v uint64, width uint) int64 {
	if width == 0 || width >= 64 {
		return int64(v)
	}

	signBit := uint64(1) << (width - 1)
	if v&signBit != 0 {
		return int64(v | ^mask(width))
	}

	return int64(v)
}

// evalModule runs every non-submodule cell of m, in insertion order, against
// the given primary-input assignment (wire name -> concrete value), and
// returns the resulting bit state. Insertion order doubles as a valid
// topological order here because every gadget constructor wires a newly
// created output wire only into cells built afterwards - it never forward
// references a not-yet-computed value.
func evalModule(m *ir.Module, inputs map[string]uint64) *evalState {
	st := newEvalState()

	for name, val := range inputs {
		w, ok := m.Wire(name)
		if !ok {
			panic(fmt.Sprintf("evalModule: unknown input wire %q", name))
		}

		st.setSignal(w.Signal(), val)
	}

	for _, c := range m.Cells() {
		if c.IsSubmodule() {
			continue
		}

		evalCell(st, c)
	}

	// Connections (as opposed to cells) are how a handler wires its finished
	// taint expression into a materialized taint wire (connectOutputTaint);
	// they carry no cell-type dispatch of their own, just a plain bit-for-bit
	// copy from RHS to LHS, evaluated once every cell has settled.
	for _, conn := range m.Connections() {
		st.setSignal(conn.LHS, st.getSignal(conn.RHS))
	}

	return st
}

func evalCell(st *evalState, c *ir.Cell) {
	yw := c.Params.Uint(ir.ParamYWidth)
	aSigned := c.Params.Bool(ir.ParamASigned)
	bSigned := c.Params.Bool(ir.ParamBSigned)

	a := func() uint64 { return st.getSignal(c.Port("A")) }
	b := func() uint64 { return st.getSignal(c.Port("B")) }
	s := func() uint64 { return st.getSignal(c.Port("S")) }
	aw := func() uint { return c.Port("A").Width() }
	bw := func() uint { return c.Port("B").Width() }

	var y uint64

	switch c.Type {
	case ir.CellNot:
		y = ^a() & mask(yw)
	case ir.CellBuf:
		y = a() & mask(yw)
	case ir.CellAnd:
		y = (a() & b()) & mask(yw)
	case ir.CellOr:
		y = (a() | b()) & mask(yw)
	case ir.CellXor, ir.CellXnor:
		v := a() ^ b()
		if c.Type == ir.CellXnor {
			v = ^v
		}

		y = v & mask(yw)
	case ir.CellAdd:
		y = (a() + b()) & mask(yw)
	case ir.CellSub:
		y = (a() - b()) & mask(yw)
	case ir.CellNeg:
		y = (^a() + 1) & mask(yw)
	case ir.CellMul:
		y = (a() * b()) & mask(yw)
	case ir.CellMod:
		if b() == 0 {
			y = 0
		} else {
			y = (a() % b()) & mask(yw)
		}
	case ir.CellReduceOr:
		if a() != 0 {
			y = 1
		}
	case ir.CellReduceAnd:
		if a()&mask(aw()) == mask(aw()) {
			y = 1
		}
	case ir.CellReduceXor:
		v := a()
		parity := uint64(0)
		for v != 0 {
			parity ^= v & 1
			v >>= 1
		}

		y = parity
	case ir.CellLogicNot:
		if a() == 0 {
			y = 1
		}
	case ir.CellLogicAnd:
		if a() != 0 && b() != 0 {
			y = 1
		}
	case ir.CellLogicOr:
		if a() != 0 || b() != 0 {
			y = 1
		}
	case ir.CellEq:
		if a() == b() {
			y = 1
		}
	case ir.CellNe:
		if a() != b() {
			y = 1
		}
	case ir.CellGe, ir.CellGt, ir.CellLe, ir.CellLt:
		var cmp int
		if aSigned || bSigned {
			av, bv := signExtend(a(), aw()), signExtend(b(), bw())
			cmp = compareInt(av, bv)
		} else {
			cmp = compareUint(a(), b())
		}

		y = cellCompareResult(c.Type, cmp)
	case ir.CellMux:
		if s() != 0 {
			y = b() & mask(yw)
		} else {
			y = a() & mask(yw)
		}
	case ir.CellPmux:
		width := c.Params.Uint(ir.ParamWidth)
		sv := s()
		y = a() & mask(width)

		for i := uint(0); (uint64(1) << i) <= sv || i < c.Port("S").Width(); i++ {
			if i >= c.Port("S").Width() {
				break
			}

			if sv&(uint64(1)<<i) != 0 {
				caseVal := (st.getSignal(c.Port("B")) >> (i * width)) & mask(width)
				y = caseVal
			}
		}
	case ir.CellBmux:
		width := c.Params.Uint(ir.ParamWidth)
		idx := s()
		y = (st.getSignal(c.Port("A")) >> (idx * width)) & mask(width)
	case ir.CellDemux:
		width := c.Params.Uint(ir.ParamWidth)
		idx := s()
		numCases := uint64(1) << c.Port("S").Width()
		av := a() & mask(width)

		for i := uint64(0); i < numCases; i++ {
			if i == idx {
				y |= av << (i * width)
			}
		}
	case ir.CellShl:
		y = (a() << b()) & mask(yw)
	case ir.CellShr:
		y = (a() >> b()) & mask(yw)
	case ir.CellSshl:
		y = (a() << b()) & mask(yw)
	case ir.CellSshr:
		av := signExtend(a(), aw())
		y = uint64(av>>b()) & mask(yw)
	case ir.CellShift, ir.CellShiftx:
		bv := signExtend(b(), bw())
		if bv < 0 {
			y = (a() << uint(-bv)) & mask(yw)
		} else {
			y = (a() >> uint(bv)) & mask(yw)
		}
	default:
		panic(fmt.Sprintf("evalCell: unsupported cell type %s for test evaluation", c.Type))
	}

	st.setSignal(c.Port("Y"), y)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cellCompareResult(typ ir.CellType, cmp int) uint64 {
	switch typ {
	case ir.CellGe:
		if cmp >= 0 {
			return 1
		}
	case ir.CellGt:
		if cmp > 0 {
			return 1
		}
	case ir.CellLe:
		if cmp <= 0 {
			return 1
		}
	case ir.CellLt:
		if cmp < 0 {
			return 1
		}
	}

	return 0
}
