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
package gadgets

import "github.com/comsec-group/go-cellift/pkg/ir"

// builder is satisfied by *ir.Module; it is the minimal surface the gadget
// constructors need, kept as an unexported interface so a gadget's call site
// reads the same whether it is building shadow logic in the module being
// instrumented or (in tests) a bare scratch module.
type builder interface {
	FreshWireName(prefix string) string
	FreshCellName(prefix string) string
	AddWire(name string, width uint) *ir.Wire
	AddCell(name string, typ ir.CellType, params ir.Params, ports map[string]ir.Signal) *ir.Cell
}

// newOutput allocates a fresh output wire of the given width and returns both
// the wire and the signal referencing it.
func newOutput(m builder, prefix string, width uint) (*ir.Wire, ir.Signal) {
	w := m.AddWire(m.FreshWireName(prefix), width)
	return w, w.Signal()
}

func binaryParams(aw, bw, yw uint, aSigned, bSigned bool) ir.Params {
	p := ir.NewParams()
	p.SetUint(ir.ParamAWidth, aw)
	p.SetUint(ir.ParamBWidth, bw)
	p.SetUint(ir.ParamYWidth, yw)
	p.SetBool(ir.ParamASigned, aSigned)
	p.SetBool(ir.ParamBSigned, bSigned)

	return p
}

func unaryParams(aw, yw uint, aSigned bool) ir.Params {
	p := ir.NewParams()
	p.SetUint(ir.ParamAWidth, aw)
	p.SetUint(ir.ParamYWidth, yw)
	p.SetBool(ir.ParamASigned, aSigned)

	return p
}

// unary emits a single-input, single-output bitwise cell (Not/Buf/ReduceOr/
// etc.) of the given type and width.
func unary(m builder, typ ir.CellType, a ir.Signal, prefix string) ir.Signal {
	_, y := newOutput(m, prefix, a.Width())
	m.AddCell(m.FreshCellName(prefix), typ, unaryParams(a.Width(), a.Width(), false), map[string]ir.Signal{
		"A": a, "Y": y,
	})

	return y
}

// binary emits a two-input, single-output bitwise cell (And/Or/Xor/Xnor) of
// width max(len(a),len(b)); a and b are expected to already be harmonized by
// the caller via Extend where the two operands must match width exactly.
func binary(m builder, typ ir.CellType, a, b ir.Signal, prefix string) ir.Signal {
	width := WorkingWidth(a.Width(), b.Width())
	_, y := newOutput(m, prefix, width)
	m.AddCell(m.FreshCellName(prefix), typ, binaryParams(a.Width(), b.Width(), width, false, false), map[string]ir.Signal{
		"A": a, "B": b, "Y": y,
	})

	return y
}

// Not emits a bitwise NOT of a.
func Not(m builder, a ir.Signal) ir.Signal { return unary(m, ir.CellNot, a, "not") }

// Buf emits a pass-through buffer of a, used where the handler library wants
// a fresh wire to hang a src attribute or name off of without altering value.
func Buf(m builder, a ir.Signal) ir.Signal { return unary(m, ir.CellBuf, a, "buf") }

// And emits a bitwise AND of a and b.
func And(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellAnd, a, b, "and") }

// Or emits a bitwise OR of a and b.
func Or(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellOr, a, b, "or") }

// Xor emits a bitwise XOR of a and b.
func Xor(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellXor, a, b, "xor") }

// Xnor emits a bitwise XNOR of a and b.
func Xnor(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellXnor, a, b, "xnor") }

// OrReduceN ORs together an arbitrary number of equal-width signals, used by
// handlers that need to fold more than two taint terms together (e.g. the
// precise shift handler's per-shift-amount contributions). Every term must
// already share terms[0].Width().
func OrReduceN(m builder, terms ...ir.Signal) ir.Signal {
	if len(terms) == 0 {
		panic("OrReduceN requires at least one term")
	}

	acc := terms[0]
	for _, t := range terms[1:] {
		acc = Or(m, acc, t)
	}

	return acc
}

// ReduceOr emits an OR-reduction of every bit in a down to one bit. Because
// Signal already supports arbitrary bit composition, this works whether a's
// bits originate from one wire or many (e.g. a pool of scattered taint bits).
func ReduceOr(m builder, a ir.Signal) ir.Signal {
	if a.Width() == 1 {
		return a
	}

	_, y := newOutput(m, "reduce_or", 1)
	m.AddCell(m.FreshCellName("reduce_or"), ir.CellReduceOr, unaryParams(a.Width(), 1, false), map[string]ir.Signal{
		"A": a, "Y": y,
	})

	return y
}

// ReduceAnd emits an AND-reduction of every bit in a down to one bit.
func ReduceAnd(m builder, a ir.Signal) ir.Signal {
	if a.Width() == 1 {
		return a
	}

	_, y := newOutput(m, "reduce_and", 1)
	m.AddCell(m.FreshCellName("reduce_and"), ir.CellReduceAnd, unaryParams(a.Width(), 1, false), map[string]ir.Signal{
		"A": a, "Y": y,
	})

	return y
}

// ReduceXor emits an XOR-reduction (parity) of every bit in a down to one
// bit.
func ReduceXor(m builder, a ir.Signal) ir.Signal {
	if a.Width() == 1 {
		return a
	}

	_, y := newOutput(m, "reduce_xor", 1)
	m.AddCell(m.FreshCellName("reduce_xor"), ir.CellReduceXor, unaryParams(a.Width(), 1, false), map[string]ir.Signal{
		"A": a, "Y": y,
	})

	return y
}

// Add emits an N-bit modular adder, N = max(len(a),len(b)). Any carry beyond
// N bits is dropped, matching how the host format truncates an over-wide sum
// cell's output down to the width of whatever it is wired into.
func Add(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellAdd, a, b, "add") }

// Sub emits an N-bit modular subtractor.
func Sub(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellSub, a, b, "sub") }

// Neg emits an N-bit modular negation (two's complement) of a.
func Neg(m builder, a ir.Signal) ir.Signal { return unary(m, ir.CellNeg, a, "neg") }

// Mul emits an N-bit modular multiplier, N = max(len(a),len(b)).
func Mul(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellMul, a, b, "mul") }

// Mod emits an N-bit modulo operator.
func Mod(m builder, a, b ir.Signal) ir.Signal { return binary(m, ir.CellMod, a, b, "mod") }

// compareParams builds the parameter set for a comparison cell, preserving
// the caller-supplied signedness exactly as the original CellIFT comparison
// handler "rebuilds the comparison gate with the cell's original parameters"
// rather than decomposing it bit by bit (original_source/cells/eq_ne.cc).
func compareParams(aw, bw uint, aSigned, bSigned bool) ir.Params {
	return binaryParams(aw, bw, 1, aSigned, bSigned)
}

func compare(m builder, typ ir.CellType, a, b ir.Signal, aSigned, bSigned bool, prefix string) ir.Signal {
	_, y := newOutput(m, prefix, 1)
	m.AddCell(m.FreshCellName(prefix), typ, compareParams(a.Width(), b.Width(), aSigned, bSigned), map[string]ir.Signal{
		"A": a, "B": b, "Y": y,
	})

	return y
}

// Eq emits an equality-comparison cell.
func Eq(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellEq, a, b, aSigned, bSigned, "eq")
}

// Ne emits an inequality-comparison cell.
func Ne(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellNe, a, b, aSigned, bSigned, "ne")
}

// Ge emits a >=-comparison cell.
func Ge(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellGe, a, b, aSigned, bSigned, "ge")
}

// Gt emits a >-comparison cell.
func Gt(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellGt, a, b, aSigned, bSigned, "gt")
}

// Le emits a <=-comparison cell.
func Le(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellLe, a, b, aSigned, bSigned, "le")
}

// Lt emits a <-comparison cell.
func Lt(m builder, a, b ir.Signal, aSigned, bSigned bool) ir.Signal {
	return compare(m, ir.CellLt, a, b, aSigned, bSigned, "lt")
}

// NewLiteral builds a constant signal of the given width from an unsigned
// integer, least-significant bit first.
func NewLiteral(v uint, width uint) ir.Signal {
	sig := make(ir.Signal, width)
	for i := uint(0); i < width; i++ {
		if (v>>i)&1 == 1 {
			sig[i] = ir.ConstBit(ir.One)
		} else {
			sig[i] = ir.ConstBit(ir.Zero)
		}
	}

	return sig
}

// LogicAnd emits the host format's "truthy AND" cell: both operands are
// first reduced to a single bit (any nonzero bit makes the operand true),
// then ANDed, yielding a 1-bit result.
func LogicAnd(m builder, a, b ir.Signal) ir.Signal {
	_, y := newOutput(m, "logic_and", 1)
	m.AddCell(m.FreshCellName("logic_and"), ir.CellLogicAnd, binaryParams(a.Width(), b.Width(), 1, false, false), map[string]ir.Signal{
		"A": a, "B": b, "Y": y,
	})

	return y
}

// LogicOr emits the host format's "truthy OR" cell.
func LogicOr(m builder, a, b ir.Signal) ir.Signal {
	_, y := newOutput(m, "logic_or", 1)
	m.AddCell(m.FreshCellName("logic_or"), ir.CellLogicOr, binaryParams(a.Width(), b.Width(), 1, false, false), map[string]ir.Signal{
		"A": a, "B": b, "Y": y,
	})

	return y
}

// LogicNot emits the host format's "truthy NOT" cell: a single bit, high iff
// every bit of a is zero.
func LogicNot(m builder, a ir.Signal) ir.Signal {
	_, y := newOutput(m, "logic_not", 1)
	m.AddCell(m.FreshCellName("logic_not"), ir.CellLogicNot, unaryParams(a.Width(), 1, false), map[string]ir.Signal{
		"A": a, "Y": y,
	})

	return y
}

// Mux emits a 2-to-1 multiplexer: Y = s ? b : a, with s a single bit.
func Mux(m builder, a, b, s ir.Signal) ir.Signal {
	width := WorkingWidth(a.Width(), b.Width())
	_, y := newOutput(m, "mux", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	m.AddCell(m.FreshCellName("mux"), ir.CellMux, p, map[string]ir.Signal{
		"A": a, "B": b, "S": s, "Y": y,
	})

	return y
}

// Pmux emits a one-hot-selected multiplexer: b is width*numCases bits packed
// case-major, s is numCases bits wide, exactly one of which is expected to
// be set.
func Pmux(m builder, a, b, s ir.Signal, width uint) ir.Signal {
	_, y := newOutput(m, "pmux", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetUint(ir.ParamSWidth, s.Width())
	m.AddCell(m.FreshCellName("pmux"), ir.CellPmux, p, map[string]ir.Signal{
		"A": a, "B": b, "S": s, "Y": y,
	})

	return y
}

// Bmux emits a binary-selected multiplexer: a is width*2^len(s) bits packed
// case-major, s is a binary (not one-hot) case index.
func Bmux(m builder, a, s ir.Signal, width uint) ir.Signal {
	_, y := newOutput(m, "bmux", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetUint(ir.ParamSWidth, s.Width())
	m.AddCell(m.FreshCellName("bmux"), ir.CellBmux, p, map[string]ir.Signal{
		"A": a, "S": s, "Y": y,
	})

	return y
}

// Demux emits the inverse of Bmux: a is distributed into one of 2^len(s)
// width-wide output slots selected by s, all other slots zero.
func Demux(m builder, a, s ir.Signal, width uint) ir.Signal {
	numCases := uint(1) << s.Width()
	_, y := newOutput(m, "demux", width*numCases)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetUint(ir.ParamSWidth, s.Width())
	m.AddCell(m.FreshCellName("demux"), ir.CellDemux, p, map[string]ir.Signal{
		"A": a, "S": s, "Y": y,
	})

	return y
}

// shiftParams builds the parameter set for the four fixed-direction shift
// cell types ($shl/$sshl/$shr/$sshr).
func shiftParams(aw, bw, yw uint, aSigned, bSigned bool) ir.Params {
	return binaryParams(aw, bw, yw, aSigned, bSigned)
}

func shiftCell(m builder, typ ir.CellType, a, b ir.Signal, width uint, aSigned, bSigned bool, prefix string) ir.Signal {
	_, y := newOutput(m, prefix, width)
	m.AddCell(m.FreshCellName(prefix), typ, shiftParams(a.Width(), b.Width(), width, aSigned, bSigned), map[string]ir.Signal{
		"A": a, "B": b, "Y": y,
	})

	return y
}

// Shl emits a logical left-shift cell.
func Shl(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellShl, a, b, width, aSigned, bSigned, "shl")
}

// Sshl emits an arithmetic (sign-preserving) left-shift cell.
func Sshl(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellSshl, a, b, width, aSigned, bSigned, "sshl")
}

// Shr emits a logical right-shift cell.
func Shr(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellShr, a, b, width, aSigned, bSigned, "shr")
}

// Sshr emits an arithmetic (sign-preserving) right-shift cell.
func Sshr(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellSshr, a, b, width, aSigned, bSigned, "sshr")
}

// Shift emits a bidirectional shift cell: negative (signed) B shifts left,
// non-negative shifts right.
func Shift(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellShift, a, b, width, aSigned, bSigned, "shift")
}

// Shiftx emits a bidirectional shift cell whose out-of-range result bits are
// don't-care (x) rather than zero.
func Shiftx(m builder, a, b ir.Signal, width uint, aSigned, bSigned bool) ir.Signal {
	return shiftCell(m, ir.CellShiftx, a, b, width, aSigned, bSigned, "shiftx")
}
