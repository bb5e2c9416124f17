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

import "fmt"

// Connection is a pair of equal-length signals wired together outside of any
// cell (e.g. a port forwarded straight through, or two internal wires tied
// together).
type Connection struct {
	LHS, RHS Signal
}

// Module is an identifier, an ordered wire list, an ordered cell list, an
// ordered connection list, an attribute map and a back-reference to its
// owning design.  Wires and cells are owned by the module and allocated from
// a per-module arena indexed by WireID so that freshly-emitted intermediate
// wires never collide with existing names (spec.md §9, "Cell emission").
type Module struct {
	Name   string
	Attrs  map[string]string
	design *Design

	wires       []*Wire
	wireByName  map[string]*Wire
	cells       []*Cell
	cellByName  map[string]*Cell
	connections []Connection
	ports       []*Wire

	instrumented bool
	anonCounter  uint64
	pendingSrc   string
}

// NewModule constructs an empty module owned by the given design.
func NewModule(d *Design, name string) *Module {
	return &Module{
		Name:       name,
		Attrs:      make(map[string]string),
		design:     d,
		wireByName: make(map[string]*Wire),
		cellByName: make(map[string]*Cell),
	}
}

// Design returns the design which owns this module.
func (m *Module) Design() *Design {
	return m.design
}

// Instrumented reports whether this module has already been instrumented.
// A second instrumentation attempt on the same module must be a no-op
// (spec.md §3 invariants).
func (m *Module) Instrumented() bool {
	return m.instrumented
}

// SetInstrumented marks this module as instrumented.
func (m *Module) SetInstrumented() {
	m.instrumented = true
}

// AddWire creates a new internal wire of the given name and width.  It is an
// error (panic) to add a wire whose name already exists, since callers are
// expected to check Wire(name) first where idempotence is required (see
// GetOrCreateWire for the idempotent variant used by taint materialization).
func (m *Module) AddWire(name string, width uint) *Wire {
	if _, exists := m.wireByName[name]; exists {
		panic(fmt.Sprintf("wire %q already exists in module %q", name, m.Name))
	}

	w := &Wire{
		ID:    WireID(len(m.wires)),
		Name:  name,
		Width: width,
		Role:  RoleInternal,
		Attrs: make(map[string]string),
		module: m,
	}
	m.wires = append(m.wires, w)
	m.wireByName[name] = w

	return w
}

// GetOrCreateWire returns the existing wire of the given name if present,
// otherwise creates a new internal wire of the given width.  This is the
// idempotent constructor relied upon by taint-wire materialization (spec.md
// §4.1): two calls for the same name return the same wire.
func (m *Module) GetOrCreateWire(name string, width uint) *Wire {
	if w, ok := m.wireByName[name]; ok {
		return w
	}

	return m.AddWire(name, width)
}

// AddInputWire creates a new input port wire.
func (m *Module) AddInputWire(name string, width uint) *Wire {
	w := m.AddWire(name, width)
	w.Role = RoleInput
	m.ports = nil

	return w
}

// AddOutputWire creates a new output port wire.
func (m *Module) AddOutputWire(name string, width uint) *Wire {
	w := m.AddWire(name, width)
	w.Role = RoleOutput
	m.ports = nil

	return w
}

// Wire looks up a wire by name.
func (m *Module) Wire(name string) (*Wire, bool) {
	w, ok := m.wireByName[name]
	return w, ok
}

// Wires returns every wire owned by this module, in creation order.
func (m *Module) Wires() []*Wire {
	return m.wires
}

// Ports returns the ordered list of input/output port wires, recomputing it
// if it has been invalidated since the last call (see FixupPorts).
func (m *Module) Ports() []*Wire {
	if m.ports == nil {
		m.FixupPorts()
	}

	return m.ports
}

// FixupPorts refreshes the module's port list from its current wire set.
// Must be called after any batch of port-wire additions; the instrumenter's
// port augmentation invokes it once after adding a module's taint ports.
func (m *Module) FixupPorts() {
	ports := make([]*Wire, 0, len(m.wires))

	for _, w := range m.wires {
		if w.IsPort() {
			ports = append(ports, w)
		}
	}

	m.ports = ports
}

// AddCell appends a new cell to the module's cell list.  name must be
// unique within the module; the instrumenter generates fresh names via
// FreshCellName for emitted shadow logic. The new cell inherits whichever
// source attribute was last set via WithSrc, so shadow logic emitted while
// instrumenting a given original cell carries that cell's provenance
// (original comment: "For all new cells, add src=cell->get_src_attribute()").
func (m *Module) AddCell(name string, typ CellType, params Params, ports map[string]Signal) *Cell {
	if _, exists := m.cellByName[name]; exists {
		panic(fmt.Sprintf("cell %q already exists in module %q", name, m.Name))
	}

	c := &Cell{
		Name:    name,
		Type:    typ,
		Ports:   ports,
		Params:  params,
		SrcAttr: m.pendingSrc,
		module:  m,
	}
	m.cells = append(m.cells, c)
	m.cellByName[name] = c

	return c
}

// WithSrc sets the source attribute that subsequently added cells inherit,
// returning the module for chaining. The instrumenter calls this once per
// original cell before dispatching its handler.
func (m *Module) WithSrc(src string) *Module {
	m.pendingSrc = src
	return m
}

// AddSubmoduleCell appends a cell instantiating a user-defined submodule.
func (m *Module) AddSubmoduleCell(name, submodule string, ports map[string]Signal) *Cell {
	c := m.AddCell(name, CellSubmodule, NewParams(), ports)
	c.Submodule = submodule

	return c
}

// RemoveCell deletes a cell from the module immediately.  The instrumenter
// itself never removes cells: every original cell is kept.
func (m *Module) RemoveCell(c *Cell) {
	delete(m.cellByName, c.Name)

	for i, ith := range m.cells {
		if ith == c {
			m.cells = append(m.cells[:i], m.cells[i+1:]...)
			break
		}
	}
}

// Cells returns every cell currently in the module, in order.
func (m *Module) Cells() []*Cell {
	return m.cells
}

// Cell looks up a cell by name.
func (m *Module) Cell(name string) (*Cell, bool) {
	c, ok := m.cellByName[name]
	return c, ok
}

// Connect appends a connection between two equal-length signals.  Returns an
// error if the signals differ in length (spec.md §3 invariant: "In every
// connection, both sides have equal bit length").
func (m *Module) Connect(lhs, rhs Signal) error {
	if lhs.Width() != rhs.Width() {
		return fmt.Errorf("connection width mismatch in module %q: %d vs %d", m.Name, lhs.Width(), rhs.Width())
	}

	m.connections = append(m.connections, Connection{LHS: lhs, RHS: rhs})

	return nil
}

// Connections returns every wire-to-wire connection in the module.
func (m *Module) Connections() []Connection {
	return m.connections
}

// SnapshotConnections returns an independent copy of the current connection
// list, for use by callers (such as the module instrumenter) that must
// iterate over the connections present before a transformation while new
// ones are being appended concurrently by that same transformation.
func (m *Module) SnapshotConnections() []Connection {
	snap := make([]Connection, len(m.connections))
	copy(snap, m.connections)

	return snap
}

// SnapshotCells returns an independent copy of the current cell list.
func (m *Module) SnapshotCells() []*Cell {
	snap := make([]*Cell, len(m.cells))
	copy(snap, m.cells)

	return snap
}

// FreshWireName returns a module-unique wire name built from prefix, using a
// monotonic counter scoped to the module so that freshly allocated names
// never collide (spec.md §9, "Cell emission").
func (m *Module) FreshWireName(prefix string) string {
	for {
		m.anonCounter++
		name := fmt.Sprintf("$%s$%d", prefix, m.anonCounter)

		if _, exists := m.wireByName[name]; !exists {
			return name
		}
	}
}

// FreshCellName returns a module-unique cell name built from prefix.
func (m *Module) FreshCellName(prefix string) string {
	for {
		m.anonCounter++
		name := fmt.Sprintf("$%s$%d", prefix, m.anonCounter)

		if _, exists := m.cellByName[name]; !exists {
			return name
		}
	}
}

// HasProcesses reports whether this module still contains unlowered
// behavioural processes.  The IR modeled here never represents processes
// directly (the reader is out of scope); this always returns false and
// exists so the instrumenter's "unlowered process" check (spec.md §4.4 step
// 6) has a single, overridable hook for IR implementations that do retain
// process state.
func (m *Module) HasProcesses() bool {
	return false
}
