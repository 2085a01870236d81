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

import (
	"fmt"
	"math/rand"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
)

// binaryOpMutator replaces a BinOp/BoolOp/Compare/AugAssign/UnaryOp's
// "op" field with another member of the same family, mirroring
// language/solidity's binaryOpMutator.
type binaryOpMutator struct {
	kind     mutation.Type
	nodeType string
	family   []string
}

func (m binaryOpMutator) Implements() mutation.Type { return m.kind }

func (m binaryOpMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok || tag != m.nodeType {
		return false
	}
	op, ok := jsonast.StringField(node, "op")
	if !ok {
		return false
	}

	return contains(m.family, op)
}

func (m binaryOpMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	op, _ := jsonast.StringField(node, "op")
	var choices []string
	for _, o := range m.family {
		if o != op {
			choices = append(choices, o)
		}
	}
	if len(choices) == 0 {
		choices = m.family
	}
	replacement := choices[rng.Intn(len(choices))]
	jsonast.SetField(node, "op", replacement)

	return mutator.Result{
		HasComment:  true,
		CommentNode: NewComment(fmt.Sprintf("mutagremlins: %q replaced with %q", op, replacement)),
	}
}

func newOperatorFamilyMutators() []mutator.Mutator[jsonast.Node] {
	return []mutator.Mutator[jsonast.Node]{
		binaryOpMutator{kind: mutation.ArithmeticBinaryOp, nodeType: "BinOp", family: ArithmeticOperators},
		binaryOpMutator{kind: mutation.LogicalBinaryOp, nodeType: "BoolOp", family: LogicalOperators},
		binaryOpMutator{kind: mutation.BitwiseOp, nodeType: "BinOp", family: BitwiseOperators},
		binaryOpMutator{kind: mutation.BitshiftOp, nodeType: "BinOp", family: BitshiftOperators},
		binaryOpMutator{kind: mutation.PredicateBinaryOp, nodeType: "Compare", family: ComparisonOperators},
		binaryOpMutator{kind: mutation.Assignment, nodeType: "AugAssign", family: AssignmentOperators},
		binaryOpMutator{kind: mutation.UnaryOp, nodeType: "UnaryOp", family: UnaryOperators},
	}
}

// operatorSwapArgumentsMutator swaps left/right on a BinOp using a
// non-commutative operator.
type operatorSwapArgumentsMutator struct{}

func (operatorSwapArgumentsMutator) Implements() mutation.Type { return mutation.OperatorSwapArguments }

func (operatorSwapArgumentsMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok || tag != "BinOp" {
		return false
	}
	op, ok := jsonast.StringField(node, "op")

	return ok && contains(NonCommutativeOperators, op)
}

func (operatorSwapArgumentsMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if ok {
		left, right := m["left"], m["right"]
		m["left"], m["right"] = right, left
	}

	return mutator.Result{}
}

// ifStatementMutator negates an If's test by wrapping it in a synthesized
// UnaryOp "not" node.
type ifStatementMutator struct{}

func (ifStatementMutator) Implements() mutation.Type { return mutation.IfStatement }

func (ifStatementMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")

	return ok && tag == "If"
}

func (ifStatementMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	test := m["test"]
	m["test"] = map[string]any{
		"ast_type": "UnaryOp",
		"op":       "not",
		"operand":  test,
	}

	return mutator.Result{}
}

// deleteExpressionMutator blanks an Expr statement's value with an empty
// Tuple placeholder, simulating statement deletion while keeping the AST
// shape valid for the pretty-printer.
type deleteExpressionMutator struct{}

func (deleteExpressionMutator) Implements() mutation.Type { return mutation.DeleteExpression }

func (deleteExpressionMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")

	return ok && tag == "Expr"
}

func (deleteExpressionMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if ok {
		m["value"] = map[string]any{"ast_type": "Tuple", "elements": []any{}}
	}

	return mutator.Result{}
}

// integerMutator replaces an Int literal's value v with one of
// {0, 1, -1, v+1, v-1, 2v}, drawn uniformly. Vyper's AST carries the
// value as a JSON number, so no string round-trip is needed here.
type integerMutator struct{}

func (integerMutator) Implements() mutation.Type { return mutation.Integer }

func (integerMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")

	return ok && tag == "Int"
}

func (integerMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	value, _ := jsonast.IntField(node, "value")
	candidates := [6]int64{0, 1, -1, value + 1, value - 1, value * 2}
	replacement := candidates[rng.Intn(len(candidates))]
	jsonast.SetField(node, "value", replacement)

	return mutator.Result{
		HasComment:  true,
		CommentNode: NewComment(fmt.Sprintf("mutagremlins: %d replaced with %d", value, replacement)),
	}
}

// functionSwapArgumentsMutator swaps two arguments of a Call carrying at
// least two arguments.
type functionSwapArgumentsMutator struct{}

func (functionSwapArgumentsMutator) Implements() mutation.Type { return mutation.FunctionSwapArguments }

func (functionSwapArgumentsMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok || tag != "Call" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	args, ok := m["args"].([]any)

	return ok && len(args) >= 2
}

func (functionSwapArgumentsMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	args, _ := m["args"].([]any)
	i := rng.Intn(len(args))
	j := rng.Intn(len(args))
	for j == i && len(args) > 1 {
		j = rng.Intn(len(args))
	}
	args[i], args[j] = args[j], args[i]

	return mutator.Result{}
}

// linesSwapMutator swaps two adjacent statements within any node's "body"
// array (Module, FunctionDef, If, For all share the field name, unlike
// Solidity which wraps statements in a dedicated Block node).
type linesSwapMutator struct{}

func (linesSwapMutator) Implements() mutation.Type { return mutation.LinesSwap }

func (linesSwapMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	stmts, ok := m["body"].([]any)

	return ok && len(stmts) >= 2
}

func (linesSwapMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	stmts, _ := m["body"].([]any)
	i := rng.Intn(len(stmts) - 1)
	stmts[i], stmts[i+1] = stmts[i+1], stmts[i]

	return mutator.Result{}
}

// functionCallMutator removes a Call entirely, approximated by replacing it
// with a zero-value Int, mirroring language/solidity's functionCallMutator
// including its refusal to delete a call that has another call among its
// arguments.
type functionCallMutator struct{}

func (functionCallMutator) Implements() mutation.Type { return mutation.FunctionCall }

func (functionCallMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok || tag != "Call" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	args, _ := m["args"].([]any)
	for _, a := range args {
		am, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if am["ast_type"] == "Call" {
			return false
		}
	}

	return true
}

func (functionCallMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	node.Set(map[string]any{"ast_type": "Int", "value": int64(0)})

	return mutator.Result{}
}
