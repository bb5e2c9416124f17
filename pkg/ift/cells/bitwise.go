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
	ift.Register(ir.CellNot, handleNot)
	ift.Register(ir.CellBuf, handleBuf)
	ift.Register(ir.CellAnd, handleAnd)
	ift.Register(ir.CellOr, handleOr)
	ift.Register(ir.CellXor, handleXor)
	ift.Register(ir.CellXnor, handleXor) // XNOR's taint rule is identical to XOR's.
}

// handleNot and handleBuf propagate taint unchanged, bit for bit: neither
// operation can ever make an untainted output bit depend on a different
// input bit than the one it already mirrors.
func handleNot(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return passthroughUnary(in, m, c)
}

func handleBuf(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	return passthroughUnary(in, m, c)
}

func passthroughUnary(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, _ := widths(c)
	taint := perLabelUnary(in, m, c, func(lbl uint, at ir.Signal) ir.Signal {
		return gadgets.ExtendTaint(at, aSigned, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleAnd implements the precise bitwise-AND taint rule
// (original_source/passes/cellift/cellift_util.cc style "and" gadget,
// generalized to yosys' GLIFT-style precise AND formula): a bit of Y is
// tainted when both operand bits are tainted, or when one operand bit is
// tainted and the other's concrete value is 1 (only a 1 concretely "passes
// through" an AND, so tainting either side while the other side holds at 1
// is the only way a single tainted operand can flip Y).
func handleAnd(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	if in.Config().ConjunctiveGates {
		_, _, yw, _, _ := widths(c)
		return conjunctiveBinary(in, m, c, yw)
	}

	_, _, yw, aSigned, bSigned := widths(c)

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		a, at := gadgets.HarmonizedPair(c.Port("A"), at, aSigned, yw)
		b, bt := gadgets.HarmonizedPair(c.Port("B"), bt, bSigned, yw)

		return gadgets.ANDTaint(m, a, b, at, bt)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleOr implements the precise bitwise-OR taint rule: symmetric to AND,
// but the "passes through" concrete value is 0 rather than 1 (a concrete 0
// on one side lets the other side's taint flip the OR's result).
func handleOr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	if in.Config().ConjunctiveGates {
		_, _, yw, _, _ := widths(c)
		return conjunctiveBinary(in, m, c, yw)
	}

	_, _, yw, aSigned, bSigned := widths(c)

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		a, at := gadgets.HarmonizedPair(c.Port("A"), at, aSigned, yw)
		b, bt := gadgets.HarmonizedPair(c.Port("B"), bt, bSigned, yw)

		return gadgets.ORTaint(m, a, b, at, bt)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleXor implements the exact bitwise-XOR (and XNOR) taint rule: XOR
// flips its output for any change to either input regardless of the other
// input's concrete value, so taint propagates unconditionally from either
// side.
func handleXor(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, aSigned, bSigned := widths(c)

	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		_, at = gadgets.HarmonizedPair(c.Port("A"), at, aSigned, yw)
		_, bt = gadgets.HarmonizedPair(c.Port("B"), bt, bSigned, yw)

		return gadgets.XORTaint(m, at, bt)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}
