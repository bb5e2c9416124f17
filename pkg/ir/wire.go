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

// PortRole classifies a wire as an external port or an internal signal.
type PortRole uint8

const (
	// RoleInternal marks a wire with no external visibility.
	RoleInternal PortRole = iota
	// RoleInput marks a wire as a module input port.
	RoleInput
	// RoleOutput marks a wire as a module output port.
	RoleOutput
)

// WireID is a stable, module-scoped index assigned at creation time.  It
// exists purely for deterministic display and debugging; wires are
// otherwise referenced by pointer.
type WireID uint32

// Wire is an identifier, a bit width, a port role and an attribute map.  It
// is owned by exactly one module.
type Wire struct {
	ID     WireID
	Name   string
	Width  uint
	Role   PortRole
	Attrs  map[string]string
	module *Module
}

// Module returns the module which owns this wire.
func (w *Wire) Module() *Module {
	return w.module
}

// IsPort returns whether this wire is an input or output port.
func (w *Wire) IsPort() bool {
	return w.Role == RoleInput || w.Role == RoleOutput
}

// Signal returns a signal referencing every bit of this wire.
func (w *Wire) Signal() Signal {
	return WireSignal(w)
}
