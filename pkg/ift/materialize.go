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

// taintWireName derives the deterministic name of the taint-shadow wire for
// data wire name, label lbl out of cfg.NumLabels: "X_t<k>", the suffix
// spec.md §4.1/§6/§8 calls contractual, since downstream tooling identifies a
// taint wire by this suffix rather than by any internal bookkeeping
// (original_source/passes/cellift/cellift_util.cc:21-22,
// get_wire_taint_idstring). Determinism here is what lets GetOrCreateWire's
// memoization actually converge on one wire per (wire, label) pair no matter
// how many cells reference that wire (spec.md §4.1, "Materialization is
// idempotent").
func taintWireName(dataName string, lbl uint) string {
	return fmt.Sprintf("%s_t%d", dataName, lbl)
}

// TaintOf returns the materialized taint wire for w under label lbl,
// creating it on first reference. Excluded wires receive a constant-zero
// taint signal instead of a real wire: the exclusion list marks a signal as
// permanently untainted rather than removing it from the shadow circuit
// entirely, so every downstream handler can treat TaintOf's result uniformly
// as a Signal regardless of exclusion (spec.md §4.1, "Exclusion list").
func (in *Instrumenter) TaintOf(m *ir.Module, w *ir.Wire, lbl uint) ir.Signal {
	if in.exclusion.Contains(w.Name) {
		return ir.NewConstSignal(ir.Zero, w.Width)
	}

	tw := m.GetOrCreateWire(taintWireName(w.Name, lbl), w.Width)

	return tw.Signal()
}

// TaintSignal returns sig's per-bit taint under the single label lbl, of the
// same width as sig (AllLabelsTaintSignal covers every label). Constant bits of sig
// contribute a zero taint slice directly (a literal is never tainted)
// without needing a materialized wire.
func (in *Instrumenter) TaintSignal(m *ir.Module, sig ir.Signal, lbl uint) ir.Signal {
	out := make(ir.Signal, 0, sig.Width())

	for _, bit := range sig {
		if bit.IsConst() {
			out = append(out, ir.ConstBit(ir.Zero))
			continue
		}

		t := in.TaintOf(m, bit.Wire, lbl)
		out = append(out, t[bit.Index])
	}

	return out
}

// AllLabelsTaintSignal concatenates TaintSignal across every configured
// label, label 0 least significant, matching the per-wire taint-wire width
// of w.Width*cfg.NumLabels used when augmenting ports (spec.md §4.2).
func (in *Instrumenter) AllLabelsTaintSignal(m *ir.Module, sig ir.Signal) ir.Signal {
	out := make(ir.Signal, 0, sig.Width()*in.cfg.NumLabels)

	for lbl := uint(0); lbl < in.cfg.NumLabels; lbl++ {
		out = out.Concat(in.TaintSignal(m, sig, lbl))
	}

	return out
}
