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
package ir

// CellType is a tag drawn from a closed set of primitive cell families, plus
// the CellSubmodule sentinel for cells instantiating a user-defined module.
// Using a dedicated string type (rather than chained string comparisons, as
// the original CellIFT pass does against raw RTLIL identifiers) lets the
// dispatch table in pkg/ift key directly off this tag; see spec.md §9,
// "Cell-type dispatch".
type CellType string

// The closed set of primitive cell types understood by the instrumenter.
// Names follow the originating netlist format's convention of a leading
// '$' for parametric cells.
const (
	CellNot      CellType = "$not"
	CellBuf      CellType = "$pos"
	CellAnd      CellType = "$and"
	CellOr       CellType = "$or"
	CellXor      CellType = "$xor"
	CellXnor     CellType = "$xnor"
	CellAdd      CellType = "$add"
	CellSub      CellType = "$sub"
	CellNeg      CellType = "$neg"
	CellMul      CellType = "$mul"
	CellMod      CellType = "$mod"
	CellEq       CellType = "$eq"
	CellNe       CellType = "$ne"
	CellGe       CellType = "$ge"
	CellGt       CellType = "$gt"
	CellLe       CellType = "$le"
	CellLt       CellType = "$lt"
	CellLogicAnd CellType = "$logic_and"
	CellLogicOr  CellType = "$logic_or"
	CellLogicNot CellType = "$logic_not"
	CellReduceOr CellType = "$reduce_or"
	CellReduceBool CellType = "$reduce_bool"
	CellReduceAnd CellType = "$reduce_and"
	CellReduceXor CellType = "$reduce_xor"
	CellShl      CellType = "$shl"
	CellSshl     CellType = "$sshl"
	CellShr      CellType = "$shr"
	CellSshr     CellType = "$sshr"
	CellShift    CellType = "$shift"
	CellShiftx   CellType = "$shiftx"
	CellMux      CellType = "$mux"
	CellPmux     CellType = "$pmux"
	CellBmux     CellType = "$bmux"
	CellDemux    CellType = "$demux"

	CellDff      CellType = "$dff"
	CellDffe     CellType = "$dffe"
	CellAdff     CellType = "$adff"
	CellAdffe    CellType = "$adffe"
	CellSdff     CellType = "$sdff"
	CellSdffe    CellType = "$sdffe"
	CellSdffce   CellType = "$sdffce"
	CellAldff    CellType = "$aldff"
	CellDlatch   CellType = "$dlatch"
	CellAdlatch  CellType = "$adlatch"
	CellDlatchsr CellType = "$dlatchsr"
	CellSr       CellType = "$sr"
	CellDffsr    CellType = "$dffsr"

	// CellSubmodule marks a cell whose Type names a user-defined,
	// already-instrumented module rather than a primitive.
	CellSubmodule CellType = "$submodule"
)

// Cell is an identifier, a type tag, a port-name -> signal mapping and a
// parameter map.  Cells referencing a user-defined module additionally carry
// the referenced module's name in Submodule.
type Cell struct {
	Name      string
	Type      CellType
	Submodule string
	Ports     map[string]Signal
	Params    Params
	// SrcAttr records the originating design-source location, inherited from
	// the cell this shadow logic instruments (spec.md original comment: "For
	// all new cells, add src=cell->get_src_attribute()").
	SrcAttr string

	module        *Module
	markedDeleted bool
}

// Module returns the module which owns this cell.
func (c *Cell) Module() *Module {
	return c.module
}

// Port returns the signal connected to the named port, or a nil signal if
// the port is not connected.
func (c *Cell) Port(name string) Signal {
	return c.Ports[name]
}

// SetPort connects the named port to the given signal.
func (c *Cell) SetPort(name string, sig Signal) {
	if c.Ports == nil {
		c.Ports = make(map[string]Signal)
	}

	c.Ports[name] = sig
}

// IsSubmodule identifies a cell instantiating a user-defined module.
func (c *Cell) IsSubmodule() bool {
	return c.Type == CellSubmodule
}
