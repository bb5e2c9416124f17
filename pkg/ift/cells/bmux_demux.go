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
	ift.Register(ir.CellBmux, handleBmux)
	ift.Register(ir.CellDemux, handleDemux)
}

// handleBmux implements $bmux, a binary- (rather than one-hot-) selected
// multiplexer: since the selector decodes to exactly one case
// unconditionally (there is no analogue of the one-hot assumption to
// question here), the shadow circuit can reuse a real $bmux cell directly
// over the taint data; a tainted selector is then handled the same way
// handleMux treats a tainted S, by broadcasting it across the whole result.
func handleBmux(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	a := c.Port("A")
	s := c.Port("S")
	numCases := uint(1) << s.Width()
	width := a.Width() / numCases

	taint := perLabel(in, m, c, func(lbl uint, at, _ ir.Signal) ir.Signal {
		sTaint := in.TaintSignal(m, s, lbl)

		selected := gadgets.Bmux(m, at, s, width)
		anyS := gadgets.ReduceOr(m, sTaint)

		return gadgets.Or(m, selected, broadcast(m, anyS, width))
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}

// handleDemux implements $demux: A is routed into exactly one of 2^len(S)
// output slots, every other slot forced to zero. Slot i's taint is the
// taint A would carry there if the real selector happens to pick slot i,
// plus - exactly as in handleMux - a blanket taint across every slot
// whenever the selector itself is tainted, since an uncertain selector could
// route A's taint into any slot.
func handleDemux(in *ift.Instrumenter, m *ir.Module, c *ir.Cell) error {
	a := c.Port("A")
	s := c.Port("S")
	width := a.Width()
	numCases := uint(1) << s.Width()

	taint := perLabel(in, m, c, func(lbl uint, at, _ ir.Signal) ir.Signal {
		sTaint := in.TaintSignal(m, s, lbl)
		anyS := gadgets.ReduceOr(m, sTaint)
		blanket := broadcast(m, anyS, width)

		out := make(ir.Signal, 0, width*numCases)

		for i := uint(0); i < numCases; i++ {
			selMatch := gadgets.Eq(m, s, gadgets.NewLiteral(i, s.Width()), false, false)
			slot := gadgets.Or(m, gadgets.And(m, broadcast(m, selMatch, width), at), blanket)
			out = out.Concat(slot)
		}

		return out
	})

	return connectOutputTaint(m, taint, outputSink(in, m, c, "Y"))
}
