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

import "github.com/bits-and-blooms/bitset"

// ExclusionSet is a name-keyed wrapper around a bitset.BitSet of interned
// wire-name IDs (spec.md §3, "Exclusion list"): wires whose name is in the
// set never receive taint tracking, so TaintOf returns a constant-zero
// signal for them regardless of label. Interning keeps membership tests at
// the cost of a map lookup plus a single bit test rather than a linear scan
// of -exclude-signals for every wire touched during instrumentation.
type ExclusionSet struct {
	ids  map[string]uint
	bits *bitset.BitSet
}

// NewExclusionSet builds an ExclusionSet from the signal names configured via
// -exclude-signals.
func NewExclusionSet(names []string) *ExclusionSet {
	e := &ExclusionSet{
		ids:  make(map[string]uint, len(names)),
		bits: bitset.New(uint(len(names))),
	}

	for _, n := range names {
		e.add(n)
	}

	return e
}

func (e *ExclusionSet) add(name string) {
	id, ok := e.ids[name]
	if !ok {
		id = uint(len(e.ids))
		e.ids[name] = id
	}

	e.bits.Set(id)
}

// Contains reports whether name was configured as excluded.
func (e *ExclusionSet) Contains(name string) bool {
	if e == nil {
		return false
	}

	id, ok := e.ids[name]
	if !ok {
		return false
	}

	return e.bits.Test(id)
}
