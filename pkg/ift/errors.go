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

import (
	"errors"
	"fmt"

	"github.com/comsec-group/go-cellift/pkg/ir"
)

// Sentinel errors for the five fatal conditions enumerated in spec.md §7.
// Callers identify them with errors.Is; each is wrapped with the offending
// module/cell name via fmt.Errorf's %w before being returned.
var (
	// ErrUnsupportedCell is returned when a module contains a cell of a type
	// the dispatch table has no handler for.
	ErrUnsupportedCell = errors.New("unsupported cell type")

	// ErrRecursiveHierarchy is returned when the submodule-reference graph
	// contains a cycle, making leaves-first ordering impossible.
	ErrRecursiveHierarchy = errors.New("recursive module hierarchy")

	// ErrUnloweredProcess is returned when a module still contains
	// behavioural process state the instrumenter cannot translate.
	ErrUnloweredProcess = errors.New("unlowered process")

	// ErrPortParamMismatch is returned when a submodule-instantiating cell's
	// port signals disagree in width with the submodule's declared ports.
	ErrPortParamMismatch = errors.New("port parameter mismatch")

	// ErrEmptySelection is returned when the instrumenter is asked to run
	// over a design with no modules selected for instrumentation.
	ErrEmptySelection = errors.New("empty module selection")
)

// alreadyInstrumentedNotice is not an error: Instrument logs and skips a
// module that is already marked instrumented rather than failing (spec.md
// §7, "already-instrumented" is informational only).
type alreadyInstrumentedNotice struct {
	Module string
}

func (n alreadyInstrumentedNotice) String() string {
	return fmt.Sprintf("module %q already instrumented, skipping", n.Module)
}

func unsupportedCellError(m *ir.Module, c *ir.Cell) error {
	return fmt.Errorf("module %q, cell %q: %w: %s", m.Name, c.Name, ErrUnsupportedCell, c.Type)
}

func recursiveHierarchyError(cycle []string) error {
	return fmt.Errorf("%w: %v", ErrRecursiveHierarchy, cycle)
}

func unloweredProcessError(m *ir.Module) error {
	return fmt.Errorf("module %q: %w", m.Name, ErrUnloweredProcess)
}

func portParamMismatchError(m *ir.Module, c *ir.Cell, port string, gotWidth, wantWidth uint) error {
	return fmt.Errorf("module %q, cell %q, port %q: %w: got width %d, want %d",
		m.Name, c.Name, port, ErrPortParamMismatch, gotWidth, wantWidth)
}
