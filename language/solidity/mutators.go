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

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
)

// binaryOpMutator replaces a BinaryOperation/Assignment/UnaryOperation's
// "operator" field with another member of the same family, the shape
// shared by ArithmeticBinaryOp, LogicalBinaryOp, BitwiseOp, BitshiftOp,
// PredicateBinaryOp, Assignment, and UnaryOp.
type binaryOpMutator struct {
	kind     mutation.Type
	nodeType string
	family   []string
}

func (m binaryOpMutator) Implements() mutation.Type { return m.kind }

func (m binaryOpMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != m.nodeType {
		return false
	}
	op, ok := jsonast.StringField(node, "operator")
	if !ok {
		return false
	}

	return contains(m.family, op)
}

func (m binaryOpMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	op, _ := jsonast.StringField(node, "operator")
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
	jsonast.SetField(node, "operator", replacement)

	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{
		MutatedNodeID: id,
		HasComment:    true,
		CommentNode:   NewComment(fmt.Sprintf("mutagremlins: %q replaced with %q", op, replacement)),
	}
}

// newOperatorFamilyMutators builds the operator-family mutators shared by
// every Solidity binary/unary/assignment construct.
func newOperatorFamilyMutators() []mutator.Mutator[jsonast.Node] {
	return []mutator.Mutator[jsonast.Node]{
		binaryOpMutator{kind: mutation.ArithmeticBinaryOp, nodeType: "BinaryOperation", family: ArithmeticOperators},
		binaryOpMutator{kind: mutation.LogicalBinaryOp, nodeType: "BinaryOperation", family: LogicalOperators},
		binaryOpMutator{kind: mutation.BitwiseOp, nodeType: "BinaryOperation", family: BitwiseOperators},
		binaryOpMutator{kind: mutation.BitshiftOp, nodeType: "BinaryOperation", family: BitshiftOperators},
		binaryOpMutator{kind: mutation.PredicateBinaryOp, nodeType: "BinaryOperation", family: ComparisonOperators},
		binaryOpMutator{kind: mutation.Assignment, nodeType: "Assignment", family: AssignmentOperators},
		binaryOpMutator{kind: mutation.UnaryOp, nodeType: "UnaryOperation", family: PrefixOperators},
	}
}

// operatorSwapArgumentsMutator swaps leftExpression/rightExpression on a
// BinaryOperation using a non-commutative operator.
type operatorSwapArgumentsMutator struct{}

func (operatorSwapArgumentsMutator) Implements() mutation.Type { return mutation.OperatorSwapArguments }

func (operatorSwapArgumentsMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "BinaryOperation" {
		return false
	}
	op, ok := jsonast.StringField(node, "operator")

	return ok && contains(NonCommutativeOperators, op)
}

func (operatorSwapArgumentsMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if ok {
		left, right := m["leftExpression"], m["rightExpression"]
		m["leftExpression"], m["rightExpression"] = right, left
	}
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// ifStatementMutator negates an IfStatement's condition by wrapping it in a
// synthesized UnaryOperation "!" node.
type ifStatementMutator struct{}

func (ifStatementMutator) Implements() mutation.Type { return mutation.IfStatement }

func (ifStatementMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")

	return ok && tag == "IfStatement"
}

func (ifStatementMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	cond := m["condition"]
	m["condition"] = map[string]any{
		"nodeType":      "UnaryOperation",
		"operator":      "!",
		"prefix":        true,
		"subExpression": cond,
	}
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// deleteExpressionMutator blanks an ExpressionStatement's expression with a
// no-op placeholder (an empty Tuple), simulating statement deletion while
// keeping the AST shape valid for the pretty-printer.
type deleteExpressionMutator struct{}

func (deleteExpressionMutator) Implements() mutation.Type { return mutation.DeleteExpression }

func (deleteExpressionMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")

	return ok && tag == "ExpressionStatement"
}

func (deleteExpressionMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if ok {
		m["expression"] = map[string]any{"nodeType": "TupleExpression", "components": []any{}}
	}
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// integerMutator replaces a number Literal's value v with one of
// {0, 1, -1, v+1, v-1, 2v}, drawn uniformly.
type integerMutator struct{}

func (integerMutator) Implements() mutation.Type { return mutation.Integer }

func (integerMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "Literal" {
		return false
	}
	kind, ok := jsonast.StringField(node, "kind")

	return ok && kind == "number"
}

func (integerMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	// solc's compact-json AST carries a number Literal's value as a
	// string ("42", "0x2a"); keep that shape so the printer round-trips.
	m, _ := node.Get().(map[string]any)
	var value int64
	switch v := m["value"].(type) {
	case string:
		value, _ = strconv.ParseInt(v, 0, 64)
	case float64:
		value = int64(v)
	case int64:
		value = v
	}
	candidates := [6]int64{0, 1, -1, value + 1, value - 1, value * 2}
	replacement := candidates[rng.Intn(len(candidates))]
	jsonast.SetField(node, "value", strconv.FormatInt(replacement, 10))
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{
		MutatedNodeID: id,
		HasComment:    true,
		CommentNode:   NewComment(fmt.Sprintf("mutagremlins: %d replaced with %d", value, replacement)),
	}
}

// requireMutator negates the first argument of a require()/assert() call.
type requireMutator struct{}

func (requireMutator) Implements() mutation.Type { return mutation.Require }

func (requireMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "FunctionCall" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	expr, ok := m["expression"].(map[string]any)
	if !ok {
		return false
	}
	name, _ := expr["name"].(string)

	return name == "require" || name == "assert"
}

func (requireMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	args, ok := m["arguments"].([]any)
	if !ok || len(args) == 0 {
		return mutator.Result{}
	}
	args[0] = map[string]any{
		"nodeType":      "UnaryOperation",
		"operator":      "!",
		"prefix":        true,
		"subExpression": args[0],
	}
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// uncheckedBlockMutator retags an UncheckedBlock node as an ordinary Block,
// exposing its contents to overflow checks again.
type uncheckedBlockMutator struct{}

func (uncheckedBlockMutator) Implements() mutation.Type { return mutation.UncheckedBlock }

func (uncheckedBlockMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")

	return ok && tag == "UncheckedBlock"
}

func (uncheckedBlockMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	jsonast.SetField(node, "nodeType", "Block")
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// functionSwapArgumentsMutator swaps the first two arguments of a
// FunctionCall carrying at least two arguments.
type functionSwapArgumentsMutator struct{}

func (functionSwapArgumentsMutator) Implements() mutation.Type { return mutation.FunctionSwapArguments }

func (functionSwapArgumentsMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "FunctionCall" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	args, ok := m["arguments"].([]any)

	return ok && len(args) >= 2
}

func (functionSwapArgumentsMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	args, _ := m["arguments"].([]any)
	i := rng.Intn(len(args))
	j := rng.Intn(len(args))
	for j == i && len(args) > 1 {
		j = rng.Intn(len(args))
	}
	args[i], args[j] = args[j], args[i]
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// linesSwapMutator swaps two adjacent statements within a Block.
type linesSwapMutator struct{}

func (linesSwapMutator) Implements() mutation.Type { return mutation.LinesSwap }

func (linesSwapMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "Block" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	stmts, ok := m["statements"].([]any)

	return ok && len(stmts) >= 2
}

func (linesSwapMutator) Mutate(node *jsonast.Node, rng *rand.Rand) mutator.Result {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return mutator.Result{}
	}
	stmts, _ := m["statements"].([]any)
	i := rng.Intn(len(stmts) - 1)
	stmts[i], stmts[i+1] = stmts[i+1], stmts[i]
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

// functionCallMutator removes a function call, approximated by replacing
// the call with a number Literal of value 0. It skips any call that has
// another FunctionCall among its arguments; whether the call returns a
// value is not checked.
type functionCallMutator struct{}

func (functionCallMutator) Implements() mutation.Type { return mutation.FunctionCall }

func (functionCallMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok || tag != "FunctionCall" {
		return false
	}
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	args, _ := m["arguments"].([]any)
	for _, a := range args {
		am, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if am["nodeType"] == "FunctionCall" {
			return false
		}
	}

	return true
}

func (functionCallMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	node.Set(map[string]any{
		"nodeType": "Literal",
		"kind":     "number",
		"value":    int64(0),
	})
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}
