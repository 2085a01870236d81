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

// Package mutation defines the closed set of mutation algorithms the
// generator can apply, split between algorithms generic across languages
// and algorithms specific to one language's grammar.
package mutation

import "fmt"

// Type identifies a single mutation algorithm.
type Type int

// Generic mutation types, implementable by any language delegate that has
// the relevant grammar construct.
const (
	ArithmeticBinaryOp Type = iota
	LogicalBinaryOp
	BitwiseOp
	BitshiftOp
	PredicateBinaryOp
	Assignment
	DeleteExpression
	FunctionCall
	IfStatement
	Integer
	FunctionSwapArguments
	OperatorSwapArguments
	LinesSwap
	UnaryOp

	// Solidity-specific.
	Require
	UncheckedBlock
)

var typeText = map[Type]string{
	ArithmeticBinaryOp:    "arithmetic-binary-op",
	LogicalBinaryOp:       "logical-binary-op",
	BitwiseOp:             "bitwise-op",
	BitshiftOp:            "bitshift-op",
	PredicateBinaryOp:     "predicate-binary-op",
	Assignment:            "assignment",
	DeleteExpression:      "delete-expression",
	FunctionCall:          "function-call",
	IfStatement:           "if-statement",
	Integer:               "integer",
	FunctionSwapArguments: "function-swap-arguments",
	OperatorSwapArguments: "operator-swap-arguments",
	LinesSwap:             "lines-swap",
	UnaryOp:               "unary-op",
	Require:               "require",
	UncheckedBlock:        "unchecked-block",
}

// camelText holds the CamelCase spellings accepted as aliases in CLI flags
// and config files alongside the canonical kebab-case names.
var camelText = map[string]Type{
	"ArithmeticBinaryOp":    ArithmeticBinaryOp,
	"LogicalBinaryOp":       LogicalBinaryOp,
	"BitwiseOp":             BitwiseOp,
	"BitshiftOp":            BitshiftOp,
	"PredicateBinaryOp":     PredicateBinaryOp,
	"Assignment":            Assignment,
	"DeleteExpression":      DeleteExpression,
	"FunctionCall":          FunctionCall,
	"IfStatement":           IfStatement,
	"Integer":               Integer,
	"FunctionSwapArguments": FunctionSwapArguments,
	"OperatorSwapArguments": OperatorSwapArguments,
	"LinesSwap":             LinesSwap,
	"UnaryOp":               UnaryOp,
	"Require":               Require,
	"UncheckedBlock":        UncheckedBlock,
}

var textType = func() map[string]Type {
	m := make(map[string]Type, len(typeText)+len(camelText))
	for k, v := range typeText {
		m[v] = k
	}
	for k, v := range camelText {
		m[k] = v
	}

	return m
}()

// description is the one-paragraph explanation the algorithms --describe
// flag prints for each mutation type.
var description = map[Type]string{
	ArithmeticBinaryOp:    "Replaces one arithmetic binary operator (+, -, *, /, %, **) with another from the same family.",
	LogicalBinaryOp:       "Replaces one logical binary operator (&&, ||) with the other.",
	BitwiseOp:             "Replaces one bitwise operator (&, |, ^) with another from the same family.",
	BitshiftOp:            "Replaces one bitshift operator (<<, >>) with the other.",
	PredicateBinaryOp:     "Replaces one comparison operator (<, <=, >, >=, ==, !=) with another from the same family.",
	Assignment:            "Replaces one compound assignment operator (+=, -=, *=, /=) with another.",
	DeleteExpression:      "Replaces the expression of an expression statement with an empty tuple, removing its effect.",
	FunctionCall:          "Deletes a function call expression, replacing it with the integer literal 0 whatever the call's return type.",
	IfStatement:           "Replaces an if statement's condition with its logical negation.",
	Integer:               "Replaces an integer literal v with one of 0, 1, -1, v+1, v-1 or 2v.",
	FunctionSwapArguments: "Swaps the order of two arguments in a function call.",
	OperatorSwapArguments: "Swaps the order of the two operands of a non-commutative binary operator.",
	LinesSwap:             "Swaps the order of two adjacent statements within the same block.",
	UnaryOp:               "Replaces one unary operator (!, -, ++, --) with another from the same family.",
	Require:               "Negates the condition of a Solidity require() or assert() call.",
	UncheckedBlock:        "Removes a Solidity unchecked { } wrapper, exposing its contents to overflow checks.",
}

// String implements fmt.Stringer, returning the canonical kebab-case name
// used in CLI flags and .mgnx config files.
func (t Type) String() string {
	if s, ok := typeText[t]; ok {
		return s
	}

	return fmt.Sprintf("mutation.Type(%d)", int(t))
}

// Describe returns the one-paragraph human description of t.
func (t Type) Describe() string {
	if s, ok := description[t]; ok {
		return s
	}

	return "no description available"
}

// Parse converts a canonical name (as found in a .mgnx file or --mutations
// flag) back into a Type.
func Parse(s string) (Type, bool) {
	t, ok := textType[s]

	return t, ok
}

// Generic lists every mutation type implementable by more than one
// language, in the canonical order used when no explicit list is given and
// --all-mutations is requested for a language that does not define its own
// extras.
func Generic() []Type {
	return []Type{
		ArithmeticBinaryOp,
		LogicalBinaryOp,
		BitwiseOp,
		BitshiftOp,
		PredicateBinaryOp,
		Assignment,
		DeleteExpression,
		FunctionCall,
		IfStatement,
		Integer,
		FunctionSwapArguments,
		OperatorSwapArguments,
		LinesSwap,
		UnaryOp,
	}
}
