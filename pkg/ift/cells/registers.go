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
	ift.Register(ir.CellDff, registerHandler(dffShadow))
	ift.Register(ir.CellDffe, registerHandler(dffeShadow))
	ift.Register(ir.CellAdff, registerHandler(adffShadow))
	ift.Register(ir.CellAdffe, registerHandler(adffeShadow))
	ift.Register(ir.CellSdff, registerHandler(sdffShadow))
	ift.Register(ir.CellSdffe, registerHandler(sdffeShadow))
	ift.Register(ir.CellSdffce, registerHandler(sdffceShadow))
	ift.Register(ir.CellAldff, registerHandler(aldffShadow))
	ift.Register(ir.CellDlatch, registerHandler(dlatchShadow))
	ift.Register(ir.CellAdlatch, registerHandler(adlatchShadow))
	ift.Register(ir.CellDlatchsr, registerHandler(dlatchsrShadow))
	ift.Register(ir.CellSr, handleSr)
	ift.Register(ir.CellDffsr, registerHandler(dffsrShadow))
}

// handleSr is registered directly rather than through registerHandler: $sr
// has two independent data-like inputs (SET, CLR) rather than one D, so it
// needs its own per-label taint wiring for each.
func handleSr(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	set := c.Port("SET")
	width := set.Width()

	taint := perLabelUnary(in, m, c, func(lbl uint, _ ir.Signal) ir.Signal {
		setTaint := in.TaintSignal(m, set, lbl)
		clrTaint := in.TaintSignal(m, c.Port("CLR"), lbl)

		if in.Config().ConjunctiveRegisters {
			any := gadgets.ReduceOr(m, gadgets.Or(m, setTaint, clrTaint))
			setTaint = broadcast(m, any, width)
			clrTaint = broadcast(m, any, width)
		}

		return gadgets.Sr(m, setTaint, clrTaint, polarity(c, "SET_POLARITY"), polarity(c, "CLR_POLARITY"))
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Q"))
}

// stateShadow builds one stateful shadow cell for one taint label, reusing
// the original cell's real control signals (clock, enable, resets) verbatim
// - only the data path is replaced by taint - and returns the shadow
// register's Q output.
type stateShadow func(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal

// registerHandler wraps a stateShadow constructor into a full Handler: it
// reads D's width off the cell, computes D's taint per label, invokes the
// shadow constructor, and - if Config.ConjunctiveRegisters is set - first
// collapses D's taint down to a single bit broadcast across D's width before
// handing it to the shadow (cheaper, less precise, matching the
// -conjunctive-registers flag).
func registerHandler(shadow stateShadow) ift.Handler {
	return func(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
		d := c.Port("D")
		if d == nil {
			d = c.Port("SET") // $sr has no D; SET/CLR play its role.
		}
		width := d.Width()

		taint := perLabelUnary(in, m, c, func(lbl uint, _ ir.Signal) ir.Signal {
			dTaint := in.TaintSignal(m, d, lbl)

			if in.Config().ConjunctiveRegisters {
				any := gadgets.ReduceOr(m, dTaint)
				q := shadow(m, c, broadcast(m, any, width))
				return q
			}

			return shadow(m, c, dTaint)
		})

		return connectOutputTaint(m, taint, outputSink(in, m, c, "Q"))
	}
}

func polarity(c *ir.Cell, name string) bool {
	return c.Params.Bool(name)
}

func dffShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Dff(m, c.Port("CLK"), dTaint, polarity(c, ir.ParamClkPolarity))
}

func dffeShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Dffe(m, c.Port("CLK"), dTaint, c.Port("EN"),
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamEnPolarity))
}

func adffShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Adff(m, c.Port("CLK"), c.Port("ARST"), dTaint,
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamArstPolarity))
}

func adffeShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Adffe(m, c.Port("CLK"), c.Port("ARST"), dTaint, c.Port("EN"),
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamArstPolarity), polarity(c, ir.ParamEnPolarity))
}

func sdffShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Sdff(m, c.Port("CLK"), c.Port("SRST"), dTaint,
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamSrstPolarity))
}

func sdffeShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Sdffe(m, c.Port("CLK"), c.Port("SRST"), dTaint, c.Port("EN"),
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamSrstPolarity), polarity(c, ir.ParamEnPolarity))
}

func sdffceShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Sdffce(m, c.Port("CLK"), c.Port("SRST"), dTaint, c.Port("EN"),
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamSrstPolarity), polarity(c, ir.ParamEnPolarity))
}

func aldffShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	adTaint := dTaint // AD plays D's role while ALOAD is asserted; both mirror the same taint path.
	return gadgets.Aldff(m, c.Port("CLK"), c.Port("ALOAD"), dTaint, adTaint,
		polarity(c, ir.ParamClkPolarity), polarity(c, ir.ParamAloadPolarity))
}

func dlatchShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Dlatch(m, c.Port("EN"), dTaint, polarity(c, ir.ParamEnPolarity))
}

func adlatchShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Adlatch(m, c.Port("EN"), c.Port("ARST"), dTaint,
		polarity(c, ir.ParamEnPolarity), polarity(c, ir.ParamArstPolarity))
}

func dlatchsrShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Dlatchsr(m, c.Port("EN"), c.Port("SET"), c.Port("CLR"), dTaint,
		polarity(c, ir.ParamEnPolarity), polarity(c, "SET_POLARITY"), polarity(c, "CLR_POLARITY"))
}

func dffsrShadow(m *ir.Module, c *ir.Cell, dTaint ir.Signal) ir.Signal {
	return gadgets.Dffsr(m, c.Port("CLK"), c.Port("SET"), c.Port("CLR"), dTaint,
		polarity(c, ir.ParamClkPolarity), polarity(c, "SET_POLARITY"), polarity(c, "CLR_POLARITY"))
}
