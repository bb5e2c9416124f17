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
	"testing"

	"github.com/comsec-group/go-cellift/pkg/ift"
	"github.com/comsec-group/go-cellift/pkg/ir"
)

// Soundness here is the GLIFT property spec.md §8 asks every handler to
// satisfy: whenever an output bit's computed taint is 0, that bit's concrete
// value must be invariant under every possible re-assignment of the input
// bits marked tainted, holding the untainted input bits fixed. These tests
// enumerate every base input, every taint mask, and every alternate value
// agreeing with the base outside the mask - the "ordinary nested loop"
// exhaustive style the teacher's own small-width tests use, kept to 1-3 bit
// widths so the loop stays small.

// binaryFixture builds a two-input, one-output module with a single cell of
// typ, wired up for handler to instrument directly.
type binaryFixture struct {
	in    *ift.Instrumenter
	m     *ir.Module
	a, b  *ir.Wire
	y     *ir.Wire
	at    ir.Signal
	bt    ir.Signal
	yt    ir.Signal
}

func newBinaryFixture(t *testing.T, cfg ift.Config, typ ir.CellType, width uint, aSigned, bSigned bool, register func(*ift.Instrumenter, *ir.Module, *ir.Cell) error) *binaryFixture {
	t.Helper()

	instrumenter := ift.New(cfg, nil)

	design := ir.NewDesign()
	m := design.AddModule("top")

	a := m.AddInputWire("a", width)
	b := m.AddInputWire("b", width)
	y := m.AddOutputWire("y", width)

	params := ir.NewParams()
	params.SetUint(ir.ParamAWidth, width)
	params.SetUint(ir.ParamBWidth, width)
	params.SetUint(ir.ParamYWidth, width)
	params.SetBool(ir.ParamASigned, aSigned)
	params.SetBool(ir.ParamBSigned, bSigned)

	c := m.AddCell("uut", typ, params, map[string]ir.Signal{
		"A": a.Signal(),
		"B": b.Signal(),
		"Y": y.Signal(),
	})

	if err := register(instrumenter, m, c); err != nil {
		t.Fatalf("instrumenting %s: %v", typ, err)
	}

	return &binaryFixture{
		in: instrumenter,
		m:  m,
		a:  a,
		b:  b,
		y:  y,
		at: instrumenter.TaintOf(m, a, 0),
		bt: instrumenter.TaintOf(m, b, 0),
		yt: instrumenter.TaintOf(m, y, 0),
	}
}

// checkSoundness enumerates every (aVal, bVal, taint masks, alternate values)
// combination for width bits and asserts that every bit of y the handler left
// untainted stays equal between the base and the perturbed run.
func checkSoundness(t *testing.T, f *binaryFixture, width uint) {
	t.Helper()

	n := uint64(1) << width
	taintWireName := func(sig ir.Signal) string {
		for _, bit := range sig {
			if !bit.IsConst() {
				return bit.Wire.Name
			}
		}

		return ""
	}

	atName, btName := taintWireName(f.at), taintWireName(f.bt)

	for aVal := uint64(0); aVal < n; aVal++ {
		for bVal := uint64(0); bVal < n; bVal++ {
			for maskA := uint64(0); maskA < n; maskA++ {
				for maskB := uint64(0); maskB < n; maskB++ {
					inputs := map[string]uint64{f.a.Name: aVal, f.b.Name: bVal}
					if atName != "" {
						inputs[atName] = maskA
					}

					if btName != "" {
						inputs[btName] = maskB
					}

					base := evalModule(f.m, inputs)
					yTaint := base.getSignal(f.yt)
					baseY := base.getSignal(f.y.Signal())

					// Perturb every subset of the tainted bits; any output
					// bit whose taint is 0 must not move.
					for flipA := uint64(0); flipA < n; flipA++ {
						for flipB := uint64(0); flipB < n; flipB++ {
							if flipA&^maskA != 0 || flipB&^maskB != 0 {
								continue
							}

							altA := aVal ^ flipA
							altB := bVal ^ flipB

							altInputs := map[string]uint64{f.a.Name: altA, f.b.Name: altB}
							if atName != "" {
								altInputs[atName] = maskA
							}

							if btName != "" {
								altInputs[btName] = maskB
							}

							alt := evalModule(f.m, altInputs)
							altY := alt.getSignal(f.y.Signal())

							for i := uint(0); i < width; i++ {
								tainted := (yTaint>>i)&1 == 1
								if tainted {
									continue
								}

								if (baseY>>i)&1 != (altY>>i)&1 {
									t.Fatalf("unsound taint: a=%d b=%d maskA=%d maskB=%d, bit %d untainted but moved %d->%d",
										aVal, bVal, maskA, maskB, i, baseY, altY)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestSoundnessAnd(t *testing.T) {
	cfg := ift.Config{NumLabels: 1}

	for _, width := range []uint{1, 2, 3} {
		f := newBinaryFixture(t, cfg, ir.CellAnd, width, false, false, handleAnd)
		checkSoundness(t, f, width)
	}
}

func TestSoundnessOr(t *testing.T) {
	cfg := ift.Config{NumLabels: 1}

	for _, width := range []uint{1, 2, 3} {
		f := newBinaryFixture(t, cfg, ir.CellOr, width, false, false, handleOr)
		checkSoundness(t, f, width)
	}
}

func TestSoundnessXor(t *testing.T) {
	cfg := ift.Config{NumLabels: 1}

	for _, width := range []uint{1, 2, 3} {
		f := newBinaryFixture(t, cfg, ir.CellXor, width, false, false, handleXor)
		checkSoundness(t, f, width)
	}
}

func TestSoundnessConjunctiveAnd(t *testing.T) {
	cfg := ift.Config{NumLabels: 1, ConjunctiveGates: true}

	for _, width := range []uint{1, 2, 3} {
		f := newBinaryFixture(t, cfg, ir.CellAnd, width, false, false, handleAnd)
		checkSoundness(t, f, width)
	}
}
