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

// Package ift implements the hierarchical, leaves-first information-flow
// tracking instrumenter: it walks a design's module hierarchy bottom-up and,
// for every module not already instrumented, clones each cell's combinational
// or sequential behaviour into a parallel shadow circuit operating on taint
// labels rather than data values (spec.md §2, §4).
package ift

// PmuxVariant selects how the $pmux handler builds its shadow logic, mirroring
// the three mutually exclusive code paths the original pass offers behind its
// -pmux-use-large-cells and -precise-pmux command-line flags.
type PmuxVariant uint8

const (
	// PmuxSmallCells builds the shadow pmux from a chain of 2-to-1 muxes, one
	// per case, each conjoined with its selector bit. This is the default: it
	// assumes the one-hot selector invariant holds and is cheap to build.
	PmuxSmallCells PmuxVariant = iota
	// PmuxLargeCells builds the shadow pmux as a single wide $pmux shadow cell
	// whose per-case taint slots are OR-reduced once the case is selected.
	PmuxLargeCells
	// PmuxPrecise drops the one-hot assumption: it treats every case whose
	// selector bit could be set (as far as the taint tracking can tell) as a
	// potential source, conjoining across all of them rather than trusting
	// that exactly one fires.
	PmuxPrecise
)

// Config gathers every tunable documented in spec.md §6, mirroring the real
// command-line surface of the pass this instrumenter reimplements (named
// fields here correspond 1:1 to -rtlift-adders, -conjunctive-*,
// -precise-shiftx, -imprecise-*, -pmux-use-large-cells/-precise-pmux and
// -exclude-signals/-num-distinct-labels).
type Config struct {
	// NumLabels is the number of independent taint labels tracked in
	// parallel; every W-bit data wire gets one W-bit taint wire per label,
	// and each module port gets one W*NumLabels taint port holding every
	// label's slice. Must be at least 1.
	NumLabels uint

	// RtliftAdders selects the cheaper, approximate adder/subtractor taint
	// construction (each result bit is tainted if any input taint bit at or
	// below its position is set) over the precise bit-exact one.
	RtliftAdders bool

	// Per-family conjunctive fallbacks: when set, the corresponding cell
	// family is instrumented with the generic sound-but-imprecise rule
	// "output taint is the OR of all input taints, broadcast to every output
	// bit" instead of a precise handler.
	ConjunctiveGates    bool
	ConjunctiveMuxes    bool
	ConjunctiveRegisters bool

	// PreciseShiftx enables the bit-exact two-phase shift handler for $shiftx
	// (the one $shift always uses); when unset, $shiftx gets the generic
	// conjunctive fallback.
	PreciseShiftx bool

	// ImpreciseShlSshl and ImpreciseShrSshr downgrade the corresponding
	// precise shift handler to the generic conjunctive fallback.
	ImpreciseShlSshl bool
	ImpreciseShrSshr bool

	// Pmux selects among the three $pmux shadow-construction strategies.
	Pmux PmuxVariant

	// ExcludeSignals lists signal names (as they would appear once exposed as
	// module ports) never to receive taint tracking: materialization treats
	// an excluded wire's taint as the constant untainted value (spec.md
	// §4.1, "Exclusion list").
	ExcludeSignals []string
}

// DefaultConfig returns the instrumenter's default tuning: a single taint
// label, precise handlers everywhere a precise handler exists, and small-cell
// pmux construction.
func DefaultConfig() Config {
	return Config{NumLabels: 1}
}
