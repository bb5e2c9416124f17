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

// Design is a collection of modules keyed by identifier, with a distinguished
// top module.  The design never gains or loses modules during instrumentation
// (spec.md §3): only module contents are mutated.
type Design struct {
	Top     string
	modules map[string]*Module
	order   []string
}

// NewDesign constructs an empty design.
func NewDesign() *Design {
	return &Design{modules: make(map[string]*Module)}
}

// AddModule creates and registers a new, empty module.
func (d *Design) AddModule(name string) *Module {
	m := NewModule(d, name)
	d.modules[name] = m
	d.order = append(d.order, name)

	return m
}

// Module looks up a module by name.
func (d *Design) Module(name string) (*Module, bool) {
	m, ok := d.modules[name]
	return m, ok
}

// Modules returns every module in the design, in registration order.
func (d *Design) Modules() []*Module {
	ms := make([]*Module, len(d.order))
	for i, name := range d.order {
		ms[i] = d.modules[name]
	}

	return ms
}
