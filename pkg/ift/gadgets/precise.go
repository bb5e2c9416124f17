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
package gadgets

import "github.com/comsec-group/go-cellift/pkg/ir"

// ANDTaint computes the precise, bit-exact taint of a AND gate from the
// gate's two data operands and their taints: a bit of the result is tainted
// when both operands are tainted, or when one operand is tainted while the
// other concretely holds 1 (the only concrete value an AND cannot mask).
// a, b, at and bt must already share a's width.
func ANDTaint(m builder, a, b, at, bt ir.Signal) ir.Signal {
	both := And(m, at, bt)
	aOnB1 := And(m, at, b)
	bOnA1 := And(m, bt, a)

	return OrReduceN(m, both, aOnB1, bOnA1)
}

// ORTaint computes the precise, bit-exact taint of an OR gate: symmetric to
// ANDTaint, but the "unmaskable" concrete value is 0 rather than 1.
func ORTaint(m builder, a, b, at, bt ir.Signal) ir.Signal {
	both := And(m, at, bt)
	aOnB0 := And(m, at, Not(m, b))
	bOnA0 := And(m, bt, Not(m, a))

	return OrReduceN(m, both, aOnB0, bOnA0)
}

// XORTaint computes the exact taint of an XOR (or XNOR) gate: XOR flips
// unconditionally with either operand, so taint propagates regardless of
// concrete values.
func XORTaint(m builder, at, bt ir.Signal) ir.Signal {
	return Or(m, at, bt)
}
