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
	log "github.com/sirupsen/logrus"

	"github.com/comsec-group/go-cellift/pkg/ir"
)

// Instrumenter drives the hierarchical, leaves-first pass described in
// spec.md §4: a Config and a log sink are its only state, so that one value
// can be reused across an entire design's worth of modules without
// cross-module contamination.
type Instrumenter struct {
	cfg       Config
	log       log.FieldLogger
	exclusion *ExclusionSet
}

// Config returns the instrumenter's tuning, for handlers in pkg/ift/cells
// that need to branch on a flag (e.g. RtliftAdders, the Pmux variant).
func (in *Instrumenter) Config() Config {
	return in.cfg
}

// Log returns the instrumenter's log sink, for handlers that want to emit
// their own diagnostics (e.g. a precise handler falling back to imprecise
// because a required invariant did not hold).
func (in *Instrumenter) Log() log.FieldLogger {
	return in.log
}

// New constructs an Instrumenter. A nil logger falls back to logrus's
// package-level standard logger, matching the teacher stack's convention of
// logging through the bare "log" import unless a caller supplies its own
// *logrus.Entry.
func New(cfg Config, logger log.FieldLogger) *Instrumenter {
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &Instrumenter{cfg: cfg, log: logger, exclusion: NewExclusionSet(cfg.ExcludeSignals)}
}

// Run instruments every module of design (not only those reachable from
// design.Top), in reverse-topological (leaves-first) order, so that by the
// time a module's
// own cells are rewritten, every submodule it instantiates already exposes
// augmented taint ports (spec.md §4.5).
func (in *Instrumenter) Run(design *ir.Design) error {
	order, err := topoSort(design)
	if err != nil {
		return err
	}

	if len(order) == 0 {
		return ErrEmptySelection
	}

	for _, name := range order {
		m, ok := design.Module(name)
		if !ok {
			continue
		}

		if err := in.instrumentModule(m); err != nil {
			return err
		}
	}

	return nil
}

// instrumentModule performs the single-module procedure of spec.md §4.4.
// Original cells are always kept, so there is no cell-deletion step.
func (in *Instrumenter) instrumentModule(m *ir.Module) error {
	// Step 1: an already-instrumented module is an informational no-op, not
	// an error - re-running the pass over a partially instrumented design
	// must be idempotent.
	if m.Instrumented() {
		in.log.WithField("module", m.Name).Info(alreadyInstrumentedNotice{Module: m.Name}.String())
		return nil
	}

	// Step 2: a module still carrying unlowered behavioural process state
	// cannot be instrumented at the gate level.
	if m.HasProcesses() {
		return unloweredProcessError(m)
	}

	in.log.WithField("module", m.Name).Debug("instrumenting module")

	// Snapshot the module's own connections before port augmentation and the
	// handlers append taint connections of their own.
	conns := m.SnapshotConnections()

	// Step 3: augment the module's own port list with taint ports before
	// touching any cell, so a cell that is itself a submodule instantiation
	// referencing this module (from a caller further up the hierarchy) will
	// see the final port set.
	if err := in.augmentPorts(m); err != nil {
		return err
	}

	// Step 4: snapshot the cell list; handlers are free to append new shadow
	// cells to the module without those new cells being revisited in this
	// same scan (spec.md §4.4 step 2, "mutation during iteration not
	// permitted").
	original := m.SnapshotCells()

	for _, c := range original {
		m.WithSrc(c.SrcAttr)

		if c.IsSubmodule() {
			if err := in.rewriteSubmoduleCell(m, c); err != nil {
				return err
			}

			continue
		}

		handler, ok := lookup(c.Type)
		if !ok {
			return unsupportedCellError(m, c)
		}

		if err := handler(in, m, c); err != nil {
			return err
		}
	}

	m.WithSrc("")

	// Step 5: replicate every original wire-to-wire connection onto the
	// taint signals of both sides, once per label.
	for _, conn := range conns {
		for lbl := uint(0); lbl < in.cfg.NumLabels; lbl++ {
			if err := m.Connect(in.TaintSignal(m, conn.LHS, lbl), in.TaintSignal(m, conn.RHS, lbl)); err != nil {
				return err
			}
		}
	}

	// Step 8: mark instrumented last, so a failure partway through leaves the
	// module visibly unfinished rather than falsely marked done.
	m.SetInstrumented()

	return nil
}

// rewriteSubmoduleCell extends a submodule-instantiating cell with one
// taint-port connection per original data port, wiring each to the caller
// module's already-materialized taint signal for whatever signal that data
// port is connected to (spec.md §4.2, "submodule instantiation").
func (in *Instrumenter) rewriteSubmoduleCell(m *ir.Module, c *ir.Cell) error {
	sub, ok := m.Design().Module(c.Submodule)
	if !ok {
		return unsupportedCellError(m, c)
	}

	if !sub.Instrumented() {
		return unloweredProcessError(sub)
	}

	dataPorts := make([]string, 0, len(c.Ports))
	for name := range c.Ports {
		dataPorts = append(dataPorts, name)
	}

	for _, name := range dataPorts {
		sig := c.Port(name)

		wantWidth, ok := submodulePortWidth(sub, name)
		if !ok {
			continue
		}

		if sig.Width() != wantWidth {
			return portParamMismatchError(m, c, name, sig.Width(), wantWidth)
		}

		c.SetPort(taintPortName(name), in.AllLabelsTaintSignal(m, sig))
	}

	return nil
}
