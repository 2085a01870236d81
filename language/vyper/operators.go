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

package vyper

// Operator tables grouping Vyper's BinOp/BoolOp/Compare/AugAssign operator
// strings by family, mirroring language/solidity/operators.go.
// BitshiftOperators holds the left/right shift tokens and BitwiseOperators
// the &, | and ^ tokens, as two separate families.
var (
	ArithmeticOperators = []string{"+", "-", "*", "/", "%", "**"}
	LogicalOperators    = []string{"and", "or"}
	BitwiseOperators    = []string{"&", "|", "^"}
	BitshiftOperators   = []string{"<<", ">>"}
	ComparisonOperators = []string{"==", "!=", ">", "<", ">=", "<="}
	UnaryOperators       = []string{"-", "not"}
	AssignmentOperators  = []string{"+=", "-=", "*=", "/="}

	// NonCommutativeOperators lists binary operators for which swapping
	// operands changes the result, mirroring
	// language/solidity/operators.go's own list.
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
		BitshiftOperators, ComparisonOperators, UnaryOperators, AssignmentOperators,
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
