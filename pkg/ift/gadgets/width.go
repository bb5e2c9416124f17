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

// Package gadgets provides the primitive-cell emission helpers used by the
// cell-handler library: one constructor per primitive cell type (mirroring
// the host IR's convenience constructors, spec.md §6), plus the single
// width-harmonization helper every handler is required to route through
// (spec.md §9, "Width extension policy") so that data and taint extension
// never drift apart.
package gadgets

import "github.com/comsec-group/go-cellift/pkg/ir"

// Extend harmonizes a signal to a target width: sign-extends if signed is
// true and the signal is shorter, zero-extends if signed is false and the
// signal is shorter, and truncates if the signal is longer. Centralizing
// this rule in one place (rather than inlining it per-handler) is what
// spec.md's design notes call out explicitly: every handler must call this
// helper for both the data signal and its taint, using the *same* rule for
// both, so a sign-extended data bit and its corresponding extended taint bit
// always come from the same source bit.
func Extend(sig ir.Signal, signed bool, width uint) ir.Signal {
	n := sig.Width()

	if n == width {
		return sig
	}

	if n > width {
		return sig.Slice(0, width)
	}

	pad := width - n

	if signed && n > 0 {
		sign := sig.Extract(n - 1)
		return sig.Concat(sign.Replicate(pad))
	}

	return sig.Concat(ir.NewConstSignal(ir.Zero, pad))
}

// ExtendTaint applies the identical extension rule to a taint signal that
// Extend applies to its corresponding data signal: "sign-extending a taint
// bit means the extension bits carry whatever taint the sign bit carries"
// (spec.md §4.3). It is kept as a distinct, equally-named entry point (rather
// than callers re-using Extend directly on taints) so the grounding ledger
// and any future divergence between the two rules stays a one-line diff.
func ExtendTaint(taint ir.Signal, signed bool, width uint) ir.Signal {
	return Extend(taint, signed, width)
}

// HarmonizedPair extends both a data signal and its taint to width, using
// the same signedness for both, as every stateless handler is required to
// do before emitting gate logic.
func HarmonizedPair(data, taint ir.Signal, signed bool, width uint) (ir.Signal, ir.Signal) {
	return Extend(data, signed, width), ExtendTaint(taint, signed, width)
}

// WorkingWidth picks the handler's working width: usually the cell's
// declared output width, but for a handful of handlers ($eq/$ne and the
// two-corner comparisons) it is the max of the input widths.
func WorkingWidth(widths ...uint) uint {
	w := uint(0)
	for _, x := range widths {
		if x > w {
			w = x
		}
	}

	return w
}
