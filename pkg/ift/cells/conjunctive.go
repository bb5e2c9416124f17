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
package cells

import (
	"github.com/comsec-group/go-cellift/pkg/ift"
	"github.com/comsec-group/go-cellift/pkg/ift/gadgets"
	"github.com/comsec-group/go-cellift/pkg/ir"
)

func init() {
	ift.Register(ir.CellMul, handleMul)
	ift.Register(ir.CellMod, handleMod)
}

// conjunctiveBinary implements the generic, always-sound fallback rule used
// whenever a cell family has no cheaper precise handler (or -conjunctive-*
// asks for it explicitly): reduce every input bit's taint to one "something
// is tainted" bit and broadcast it across the entire output width. This is
// a gross over-approximation - it cannot tell which output bits a taint
// actually reaches - but it never under-approximates, which is the only
// hard correctness requirement (spec.md §8).
func conjunctiveBinary(in *ift.Instrumenter, m *ir.Module, c *ir.Cell, yw uint) error {
	taint := perLabel(in, m, c, func(lbl uint, at, bt ir.Signal) ir.Signal {
		any := gadgets.ReduceOr(m, gadgets.Or(m, at, bt))
		return broadcast(m, any, yw)
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleMul is the conjunctive fallback: a precise bit-exact multiplier
// taint would need to track partial-product carries the same way the
// adder's corner technique does, but across every shifted partial product,
// which the source pass does not attempt either - it treats $mul
// conjunctively.
func handleMul(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	return conjunctiveBinary(in, m, c, yw)
}

// handleMod is the conjunctive fallback, for the same reason as handleMul.
func handleMod(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	_, _, yw, _, _ := widths(c)
	return conjunctiveBinary(in, m, c, yw)
}
