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
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Blank-imported for its init() side effects: every handler in
	// pkg/ift/cells registers itself into pkg/ift's dispatch table on
	// import, the same database/sql-style pattern that keeps pkg/ift free
	// of a dependency on its own handler library.
	_ "github.com/comsec-group/go-cellift/pkg/ift/cells"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cellift",
	Short: "A cell-level information-flow-tracking netlist instrumenter.",
	Long:  "A cell-level information-flow-tracking (IFT) netlist instrumenter.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("cellift ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// configureLogger raises logrus's level to Debug when -verbose is set, and
// otherwise leaves it at the package default (Info), matching how
// pkg/cmd/util/schema_stack.go gates its own debug tracing in the teacher.
func configureLogger(cmd *cobra.Command) log.FieldLogger {
	logger := log.StandardLogger()

	if GetFlag(cmd, "verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
