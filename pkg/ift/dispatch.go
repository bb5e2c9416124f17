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
package ift

import "github.com/comsec-group/go-cellift/pkg/ir"

// Handler builds the shadow logic for one cell and returns only an error.
// It has no way to ask for the original cell's removal: the *data* cell
// always survives instrumentation unchanged, and only submodule-reference
// cells are ever rewritten in place. Handlers are registered by the pkg/ift/cells
// package via Register, mirroring the database/sql driver-registration
// pattern so pkg/ift never needs to import pkg/ift/cells directly (spec.md
// §9, "Cell-type dispatch").
type Handler func(in *Instrumenter, m *ir.Module, c *ir.Cell) error

var handlers = make(map[ir.CellType]Handler)

// Register associates a handler with a primitive cell type. Called from
// package-level init() functions in pkg/ift/cells; registering the same type
// twice is a programming error and panics immediately, the same way
// database/sql panics on a duplicate driver name.
func Register(t ir.CellType, h Handler) {
	if _, exists := handlers[t]; exists {
		panic("ift: Register called twice for cell type " + string(t))
	}

	handlers[t] = h
}

// lookup returns the handler registered for t, if any.
func lookup(t ir.CellType) (Handler, bool) {
	h, ok := handlers[t]
	return h, ok
}
