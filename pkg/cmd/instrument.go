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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comsec-group/go-cellift/pkg/ift"
	"github.com/comsec-group/go-cellift/pkg/ir"
)

// instrumentCmd runs the instrumenter over a design fixture, exposing every
// tunable of ift.Config as a flag (spec.md §6).
var instrumentCmd = &cobra.Command{
	Use:   "instrument design.json",
	Short: "Instrument a design fixture with IFT shadow logic",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := configureLogger(cmd)

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		design, err := ir.LoadFixture(data)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		cfg := configFromFlags(cmd)
		instrumenter := ift.New(cfg, logger)

		if err := instrumenter.Run(design); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		for _, m := range design.Modules() {
			fmt.Printf("module %s: %d cells, %d wires\n", m.Name, len(m.Cells()), len(m.Wires()))
		}
	},
}

func pmuxVariantFromFlags(cmd *cobra.Command) ift.PmuxVariant {
	switch {
	case GetFlag(cmd, "precise-pmux"):
		return ift.PmuxPrecise
	case GetFlag(cmd, "pmux-use-large-cells"):
		return ift.PmuxLargeCells
	default:
		return ift.PmuxSmallCells
	}
}

func configFromFlags(cmd *cobra.Command) ift.Config {
	return ift.Config{
		NumLabels:            GetUint(cmd, "num-distinct-labels"),
		RtliftAdders:         GetFlag(cmd, "rtlift-adders"),
		ConjunctiveGates:     GetFlag(cmd, "conjunctive-gates"),
		ConjunctiveMuxes:     GetFlag(cmd, "conjunctive-muxes"),
		ConjunctiveRegisters: GetFlag(cmd, "conjunctive-registers"),
		PreciseShiftx:        GetFlag(cmd, "precise-shiftx"),
		ImpreciseShlSshl:     GetFlag(cmd, "imprecise-shl-sshl"),
		ImpreciseShrSshr:     GetFlag(cmd, "imprecise-shr-sshr"),
		Pmux:                 pmuxVariantFromFlags(cmd),
		ExcludeSignals:       GetStringArray(cmd, "exclude-signals"),
	}
}

func init() {
	rootCmd.AddCommand(instrumentCmd)

	instrumentCmd.Flags().Uint("num-distinct-labels", 1, "number of independent taint labels tracked in parallel")
	instrumentCmd.Flags().Bool("rtlift-adders", false, "use the cheap RTLIFT adder/subtractor taint approximation")
	instrumentCmd.Flags().Bool("conjunctive-gates", false, "instrument bitwise gates with the conjunctive fallback")
	instrumentCmd.Flags().Bool("conjunctive-muxes", false, "instrument mux/pmux with the conjunctive fallback")
	instrumentCmd.Flags().Bool("conjunctive-registers", false, "instrument registers/latches with the conjunctive fallback")
	instrumentCmd.Flags().Bool("precise-shiftx", false, "use the bit-exact shift construction for $shiftx")
	instrumentCmd.Flags().Bool("imprecise-shl-sshl", false, "downgrade $shl/$sshl to the conjunctive fallback")
	instrumentCmd.Flags().Bool("imprecise-shr-sshr", false, "downgrade $shr/$sshr to the conjunctive fallback")
	instrumentCmd.Flags().Bool("pmux-use-large-cells", false, "build $pmux shadow logic as a single wide shadow cell")
	instrumentCmd.Flags().Bool("precise-pmux", false, "drop the one-hot assumption when instrumenting $pmux")
	instrumentCmd.Flags().StringArray("exclude-signals", []string{}, "signal names to leave permanently untainted")
}
