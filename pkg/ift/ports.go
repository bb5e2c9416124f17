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
	"fmt"

	"github.com/comsec-group/go-cellift/pkg/ir"
)

// taintPortName derives the name of a module's externally visible taint
// port for data port name: one port per data port, aggregating every label's
// slice into width W*NumLabels (see augmentPorts), rather than one port per
// (name, label) pair the way the internal wire naming in materialize.go does.
// "_taint" is deliberately distinct from the internal "_t<k>" suffix, which
// spec.md §4.1/§6/§8 fixes as contractual for a single-label wire: a port
// here has no single k to suffix with, so reusing "_t<k>" would misstate
// what the port actually carries.
func taintPortName(dataName string) string {
	return fmt.Sprintf("%s_taint", dataName)
}

// augmentPorts adds one taint port per existing port of m, width
// w.Width*cfg.NumLabels, with the same direction as the port it shadows, and
// wires it to the per-label internal taint wires materialized by TaintOf
// (spec.md §4.2, "Port augmentation"). It must run before the cell-rewrite
// pass of instrumentModule so that submodule cells instantiated later in the
// same leaves-first walk see the augmented port set.
func (in *Instrumenter) augmentPorts(m *ir.Module) error {
	original := append([]*ir.Wire(nil), m.Ports()...)

	for _, w := range original {
		width := w.Width * in.cfg.NumLabels
		name := taintPortName(w.Name)

		switch w.Role {
		case ir.RoleInput:
			tp := m.AddInputWire(name, width)
			// Split the aggregate input taint port into per-label slices and
			// tie each slice to that label's internal taint wire for w, so
			// every later reference to TaintOf(w, lbl) observes taint that
			// actually arrived from the caller.
			for lbl := uint(0); lbl < in.cfg.NumLabels; lbl++ {
				slice := tp.Signal().Slice(lbl*w.Width, (lbl+1)*w.Width)
				internal := in.TaintOf(m, w, lbl)

				if err := m.Connect(internal, slice); err != nil {
					return err
				}
			}
		case ir.RoleOutput:
			tp := m.AddOutputWire(name, width)
			agg := in.AllLabelsTaintSignal(m, w.Signal())

			if err := m.Connect(tp.Signal(), agg); err != nil {
				return err
			}
		}
	}

	m.FixupPorts()

	return nil
}

// submodulePortWidth returns the declared bit width of submodule's data port
// named dataPort (not of its taint port), used by
// the submodule-cell rewrite to validate width agreement (spec.md §7,
// "Port/parameter mismatch").
func submodulePortWidth(sub *ir.Module, dataPort string) (uint, bool) {
	w, ok := sub.Wire(dataPort)
	if !ok {
		return 0, false
	}

	return w.Width, true
}
