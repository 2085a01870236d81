/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package solidity

// Operator tables grouping Solidity's BinaryOperation/UnaryOperation
// operator strings by family, so a mutator can pick a replacement from the
// same family as the operator it found.
var (
	ArithmeticOperators = []string{"+", "-", "*", "/", "%", "**"}
	LogicalOperators    = []string{"&&", "||"}
	BitwiseOperators    = []string{"&", "|", "^"}
	BitshiftOperators   = []string{"<<", ">>"}
	ComparisonOperators = []string{"==", "!=", ">", "<", ">=", "<="}
	PrefixOperators     = []string{"++", "--", "!", "-", "~"}
	PostfixOperators    = []string{"++", "--"}
	AssignmentOperators = []string{"+=", "-=", "*=", "/="}

	// NonCommutativeOperators lists binary operators for which swapping
	// the left and right operand changes the result, the set
	// OperatorSwapArguments mutates; swapping a commutative operator
	// (e.g. "+") would produce a semantically identical mutant, failing
	// the uniqueness invariant for no benefit.
	NonCommutativeOperators = []string{"-", "/", "%", "**", ">", "<", "<=", ">=", "<<", ">>"}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}

// otherInFamily returns every member of the family containing op, except op
// itself.
func otherInFamily(op string) ([]string, bool) {
	for _, family := range [][]string{
		ArithmeticOperators, LogicalOperators, BitwiseOperators,
		BitshiftOperators, ComparisonOperators, PrefixOperators, AssignmentOperators,
	} {
		if !contains(family, op) {
			continue
		}
		out := make([]string, 0, len(family)-1)
		for _, s := range family {
			if s != op {
				out = append(out, s)
			}
		}

		return out, true
	}

	return nil, false
}
