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
package ift

import "github.com/comsec-group/go-cellift/pkg/ir"

// visitState tracks a module's position in the depth-first traversal used by
// topoSort: unvisited modules are absent from the map, inProgress marks a
// module currently on the recursion stack (a re-visit means a cycle), done
// marks a module whose entire subtree has already been ordered.
type visitState uint8

const (
	inProgress visitState = iota + 1
	done
)

// topoSort orders every module of design so that a module never precedes any
// submodule it instantiates (leaves first), per spec.md §4.5. It returns
// ErrRecursiveHierarchy if the submodule-reference graph contains a cycle.
func topoSort(design *ir.Design) ([]string, error) {
	state := make(map[string]visitState)
	order := make([]string, 0, len(design.Modules()))
	stack := make([]string, 0, 8)

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case inProgress:
			cycle := append(append([]string(nil), stack...), name)
			return recursiveHierarchyError(cycle)
		}

		m, ok := design.Module(name)
		if !ok {
			return nil
		}

		state[name] = inProgress
		stack = append(stack, name)

		for _, c := range m.Cells() {
			if c.IsSubmodule() {
				if err := visit(c.Submodule); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
		order = append(order, name)

		return nil
	}

	for _, m := range design.Modules() {
		if err := visit(m.Name); err != nil {
			return nil, err
		}
	}

	return order, nil
}
