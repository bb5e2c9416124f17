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
package ir

import (
	"encoding/json"
	"fmt"
)

// This file is the "minimal stub needed to construct test fixtures" carved
// out by spec.md's Non-goals: a real netlist reader/writer (Yosys JSON, or
// otherwise) is out of scope for this repository. What follows is just
// enough JSON decoding to build small *Design values by hand for the CLI and
// for tests, the same role pkg/trace/json plays for the teacher's trace
// fixtures - not a general-purpose hardware description format.

type fixtureWire struct {
	Name  string `json:"name"`
	Width uint   `json:"width"`
	Role  string `json:"role"`
}

type fixtureCell struct {
	Name      string                     `json:"name"`
	Type      string                     `json:"type"`
	Submodule string                     `json:"submodule"`
	Params    map[string]json.RawMessage `json:"params"`
	Ports     map[string]string          `json:"ports"`
}

type fixtureModule struct {
	Name  string        `json:"name"`
	Wires []fixtureWire `json:"wires"`
	Cells []fixtureCell `json:"cells"`
}

type fixtureDesign struct {
	Top     string          `json:"top"`
	Modules []fixtureModule `json:"modules"`
}

// LoadFixture decodes a minimal JSON description of a design: a top module
// name plus, for every module, a flat wire list (name/width/role) and a cell
// list (name/type/params/ports, ports given as bare wire names standing for
// that wire's full signal). It exists to let the CLI and tests construct a
// *Design without a real netlist front end.
func LoadFixture(data []byte) (*Design, error) {
	var doc fixtureDesign
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding design fixture: %w", err)
	}

	d := NewDesign()
	d.Top = doc.Top

	for _, fm := range doc.Modules {
		m := d.AddModule(fm.Name)

		for _, fw := range fm.Wires {
			switch fw.Role {
			case "input":
				m.AddInputWire(fw.Name, fw.Width)
			case "output":
				m.AddOutputWire(fw.Name, fw.Width)
			default:
				m.AddWire(fw.Name, fw.Width)
			}
		}
	}

	for _, fm := range doc.Modules {
		m, _ := d.Module(fm.Name)

		for _, fc := range fm.Cells {
			ports := make(map[string]Signal, len(fc.Ports))

			for port, wireName := range fc.Ports {
				w, ok := m.Wire(wireName)
				if !ok {
					return nil, fmt.Errorf("module %q, cell %q: unknown wire %q", fm.Name, fc.Name, wireName)
				}

				ports[port] = w.Signal()
			}

			if fc.Type == string(CellSubmodule) || fc.Submodule != "" {
				m.AddSubmoduleCell(fc.Name, fc.Submodule, ports)
				continue
			}

			params, err := decodeFixtureParams(fc.Params)
			if err != nil {
				return nil, fmt.Errorf("module %q, cell %q: %w", fm.Name, fc.Name, err)
			}

			m.AddCell(fc.Name, CellType(fc.Type), params, ports)
		}
	}

	return d, nil
}

func decodeFixtureParams(raw map[string]json.RawMessage) (Params, error) {
	params := NewParams()

	for name, msg := range raw {
		var b bool
		if err := json.Unmarshal(msg, &b); err == nil {
			params.SetBool(name, b)
			continue
		}

		var u uint
		if err := json.Unmarshal(msg, &u); err != nil {
			return params, fmt.Errorf("parameter %q: %w", name, err)
		}

		params.SetUint(name, u)
	}

	return params, nil
}
