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

// Package cells is the library of per-cell-type shadow-logic handlers that
// registers itself into pkg/ift's dispatch table. Each file groups the
// handlers for one cell family, mirroring the one-file-per-cell layout of
// the pass this instrumenter reimplements. Importing this package for its
// side effect (blank import) is what makes an *ift.Instrumenter actually
// able to instrument anything; pkg/ift itself has no built-in handlers.
package cells

import (
	"github.com/comsec-group/go-cellift/pkg/ift"
	"github.com/comsec-group/go-cellift/pkg/ir"
)

// widths reads the standard A_WIDTH/B_WIDTH/Y_WIDTH and A_SIGNED/B_SIGNED
// parameters most binary cells carry.
func widths(c *ir.Cell) (aw, bw, yw uint, aSigned, bSigned bool) {
	p := c.Params
	return p.Uint(ir.ParamAWidth), p.Uint(ir.ParamBWidth), p.Uint(ir.ParamYWidth),
		p.Bool(ir.ParamASigned), p.Bool(ir.ParamBSigned)
}

// perLabel runs f once per configured taint label, OR-ing together every
// label's independent taint computation is not required here: each label is
// entirely independent, so f is simply invoked NumLabels times and its
// per-label results concatenated to produce the full taint signal for the
// output port. f receives the already per-bit materialized taint of A and B
// for that one label.
func perLabel(in *ift.Instrumenter, m *ir.Module, c *ir.Cell, f func(lbl uint, at, bt ir.Signal) ir.Signal) ir.Signal {
	a := c.Port("A")
	b := c.Port("B")

	out := make(ir.Signal, 0)

	for lbl := uint(0); lbl < in.Config().NumLabels; lbl++ {
		var at, bt ir.Signal
		if a != nil {
			at = in.TaintSignal(m, a, lbl)
		}
		if b != nil {
			bt = in.TaintSignal(m, b, lbl)
		}

		out = out.Concat(f(lbl, at, bt))
	}

	return out
}

// perLabelUnary is perLabel's single-operand counterpart, used by cell types
// with only an A input (Not, reductions, Neg, ...).
func perLabelUnary(in *ift.Instrumenter, m *ir.Module, c *ir.Cell, f func(lbl uint, at ir.Signal) ir.Signal) ir.Signal {
	a := c.Port("A")

	out := make(ir.Signal, 0)

	for lbl := uint(0); lbl < in.Config().NumLabels; lbl++ {
		at := in.TaintSignal(m, a, lbl)
		out = out.Concat(f(lbl, at))
	}

	return out
}

// connectOutputTaint connects the newly built all-labels taint signal to
// sink, the output port's materialized taint wires as returned by
// outputSink. Handlers call this exactly once, after building their output
// taint signal across every label.
func connectOutputTaint(m *ir.Module, taint ir.Signal, sink ir.Signal) error {
	return m.Connect(sink, taint)
}

// outputSink returns the aggregate (all-labels) taint signal backing a
// cell's named output port, the same materialized wires in.AllLabelsTaintSignal
// would derive for that port's connected signal - i.e. the destination every
// handler must Connect its freshly built taint expression into.
func outputSink(in *ift.Instrumenter, m *ir.Module, c *ir.Cell, port string) ir.Signal {
	return in.AllLabelsTaintSignal(m, c.Port(port))
}

// broadcast replicates a single aggregate taint bit across width bits, used
// by every handler whose soundness argument is "if anything relevant is
// tainted, treat the whole output as tainted" (conjunctive fallbacks, a
// tainted mux/bmux/demux selector, the imprecise shift rule).
func broadcast(m *ir.Module, bit ir.Signal, width uint) ir.Signal {
	return bit.Replicate(width)
}

// padTaint extends a single computed taint bit up to a cell's full output
// width by filling every upper bit with constant 0, the "upper output bits
// are constant 0" convention spec.md states for every single-bit-result
// family (EQ/NE, the ordered comparisons, the reductions, the logic gates):
// unlike broadcast, the upper bits are not a copy of bit, since only bit 0 of
// Y ever carries the comparison or reduction's actual result.
func padTaint(bit ir.Signal, width uint) ir.Signal {
	if width <= bit.Width() {
		return bit
	}

	return bit.Concat(ir.NewConstSignal(ir.Zero, width-bit.Width()))
}
