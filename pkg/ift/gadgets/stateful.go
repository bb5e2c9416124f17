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

// Every shadow register mirrors the polarity of the register it instruments
// exactly (a shadow flip-flop that samples on the wrong clock edge would
// desynchronize from the data it is meant to track), so each constructor
// below takes the original cell's polarity parameters verbatim rather than
// hardcoding a convention. The shadow register's own reset value is always
// zero: an untainted register resets to "not tainted", regardless of what
// data value the original register resets to (spec.md §4.3, "Stateful
// handlers").

// Dff emits a plain D flip-flop: Q follows D on the given clock edge.
func Dff(m builder, clk, d ir.Signal, clkPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "dff", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	m.AddCell(m.FreshCellName("dff"), ir.CellDff, p, map[string]ir.Signal{
		"CLK": clk, "D": d, "Q": q,
	})

	return q
}

// Dffe emits a clock-enabled D flip-flop.
func Dffe(m builder, clk, d, en ir.Signal, clkPolarity, enPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "dffe", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	m.AddCell(m.FreshCellName("dffe"), ir.CellDffe, p, map[string]ir.Signal{
		"CLK": clk, "D": d, "EN": en, "Q": q,
	})

	return q
}

// Adff emits an asynchronously-resettable D flip-flop. The shadow copy's
// reset value is always all-zero, independent of the instrumented register's
// own ARST_VALUE.
func Adff(m builder, clk, arst, d ir.Signal, clkPolarity, arstPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "adff", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamArstPolarity, arstPolarity)
	p.SetUint(ir.ParamArstValue, 0)
	m.AddCell(m.FreshCellName("adff"), ir.CellAdff, p, map[string]ir.Signal{
		"CLK": clk, "ARST": arst, "D": d, "Q": q,
	})

	return q
}

// Adffe emits an asynchronously-resettable, clock-enabled D flip-flop.
func Adffe(m builder, clk, arst, d, en ir.Signal, clkPolarity, arstPolarity, enPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "adffe", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamArstPolarity, arstPolarity)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	p.SetUint(ir.ParamArstValue, 0)
	m.AddCell(m.FreshCellName("adffe"), ir.CellAdffe, p, map[string]ir.Signal{
		"CLK": clk, "ARST": arst, "D": d, "EN": en, "Q": q,
	})

	return q
}

// Sdff emits a synchronously-resettable D flip-flop.
func Sdff(m builder, clk, srst, d ir.Signal, clkPolarity, srstPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "sdff", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamSrstPolarity, srstPolarity)
	p.SetUint(ir.ParamSrstValue, 0)
	m.AddCell(m.FreshCellName("sdff"), ir.CellSdff, p, map[string]ir.Signal{
		"CLK": clk, "SRST": srst, "D": d, "Q": q,
	})

	return q
}

// Sdffe emits a synchronously-resettable, clock-enabled D flip-flop, with
// reset given priority over enable.
func Sdffe(m builder, clk, srst, d, en ir.Signal, clkPolarity, srstPolarity, enPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "sdffe", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamSrstPolarity, srstPolarity)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	p.SetUint(ir.ParamSrstValue, 0)
	m.AddCell(m.FreshCellName("sdffe"), ir.CellSdffe, p, map[string]ir.Signal{
		"CLK": clk, "SRST": srst, "D": d, "EN": en, "Q": q,
	})

	return q
}

// Sdffce emits a synchronously-resettable, clock-enabled D flip-flop, with
// enable given priority over reset (reset only takes effect while enabled).
func Sdffce(m builder, clk, srst, d, en ir.Signal, clkPolarity, srstPolarity, enPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "sdffce", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamSrstPolarity, srstPolarity)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	p.SetUint(ir.ParamSrstValue, 0)
	m.AddCell(m.FreshCellName("sdffce"), ir.CellSdffce, p, map[string]ir.Signal{
		"CLK": clk, "SRST": srst, "D": d, "EN": en, "Q": q,
	})

	return q
}

// Aldff emits an asynchronously-loadable D flip-flop (load value taken from
// AD rather than a fixed reset constant).
func Aldff(m builder, clk, aload, d, ad ir.Signal, clkPolarity, aloadPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "aldff", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool(ir.ParamAloadPolarity, aloadPolarity)
	m.AddCell(m.FreshCellName("aldff"), ir.CellAldff, p, map[string]ir.Signal{
		"CLK": clk, "ALOAD": aload, "D": d, "AD": ad, "Q": q,
	})

	return q
}

// Dlatch emits a level-sensitive D latch.
func Dlatch(m builder, en, d ir.Signal, enPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "dlatch", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	m.AddCell(m.FreshCellName("dlatch"), ir.CellDlatch, p, map[string]ir.Signal{
		"EN": en, "D": d, "Q": q,
	})

	return q
}

// Adlatch emits an asynchronously-resettable level-sensitive D latch.
func Adlatch(m builder, en, arst, d ir.Signal, enPolarity, arstPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "adlatch", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	p.SetBool(ir.ParamArstPolarity, arstPolarity)
	p.SetUint(ir.ParamArstValue, 0)
	m.AddCell(m.FreshCellName("adlatch"), ir.CellAdlatch, p, map[string]ir.Signal{
		"EN": en, "ARST": arst, "D": d, "Q": q,
	})

	return q
}

// Sr emits a set/reset latch with no data input: SET and CLR are taint
// signals just as D would be for a data register, each combined by the
// caller with its own polarity-matched priority rule.
func Sr(m builder, set, clr ir.Signal, setPolarity, clrPolarity bool) ir.Signal {
	width := set.Width()
	_, q := newOutput(m, "sr", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool("SET_POLARITY", setPolarity)
	p.SetBool("CLR_POLARITY", clrPolarity)
	m.AddCell(m.FreshCellName("sr"), ir.CellSr, p, map[string]ir.Signal{
		"SET": set, "CLR": clr, "Q": q,
	})

	return q
}

// Dlatchsr emits a level-sensitive D latch with independent set/clear.
func Dlatchsr(m builder, en, set, clr, d ir.Signal, enPolarity, setPolarity, clrPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "dlatchsr", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamEnPolarity, enPolarity)
	p.SetBool("SET_POLARITY", setPolarity)
	p.SetBool("CLR_POLARITY", clrPolarity)
	m.AddCell(m.FreshCellName("dlatchsr"), ir.CellDlatchsr, p, map[string]ir.Signal{
		"EN": en, "SET": set, "CLR": clr, "D": d, "Q": q,
	})

	return q
}

// Dffsr emits an edge-clocked D flip-flop with independent async set/clear.
func Dffsr(m builder, clk, set, clr, d ir.Signal, clkPolarity, setPolarity, clrPolarity bool) ir.Signal {
	width := d.Width()
	_, q := newOutput(m, "dffsr", width)
	p := ir.NewParams()
	p.SetUint(ir.ParamWidth, width)
	p.SetBool(ir.ParamClkPolarity, clkPolarity)
	p.SetBool("SET_POLARITY", setPolarity)
	p.SetBool("CLR_POLARITY", clrPolarity)
	m.AddCell(m.FreshCellName("dffsr"), ir.CellDffsr, p, map[string]ir.Signal{
		"CLK": clk, "SET": set, "CLR": clr, "D": d, "Q": q,
	})

	return q
}
