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

// Package ast provides the language-agnostic AST traversal machinery: the
// SimpleAST adapter interface a language implements once, and the traversal
// algorithms (Traverse, TraverseMut) that drive any Visitor/VisitorMut over
// a conforming tree.
//
// Neither SimpleAST nor the traverser know anything about Solidity, Vyper,
// or even JSON: a language package (jsonast, language/solidity,
// language/vyper) supplies the adapter, and every concrete visitor (in
// visit, printer, commenter) is written once against this package.
package ast

// SimpleAST is the per-node adapter a language implements over its own node
// representation N (for this system, effectively always `any`, since the
// AST is parsed JSON). GetChildren returns adapters, not raw
// nodes, so that a language can skip "structural" JSON keys (e.g.
// "nodeType" tags) that are not themselves child nodes.
type SimpleAST[N any] interface {
	// GetNode returns the wrapped node.
	GetNode() *N

	// GetChildren returns adapters over the node's children, in source
	// order.
	GetChildren() []SimpleAST[N]
}

// Traverser names the traversal algorithms for a fixed node type N. It is a
// zero-value-usable type with no methods: Go does not allow generic methods
// on a non-generic receiver type, so Traverse/TraverseMut below are free
// functions instead.
type Traverser[N any] struct{}

// Traverse walks tree non-mutably, driving visitor through the on_enter /
// have_permission_to_visit / visit / visit_children / on_start_visit_children
// / (recurse) / on_end_visit_children / on_exit sequence. It returns true if
// the traversal was stopped early by the visitor.
func Traverse[N any](tree SimpleAST[N], visitor Visitor[N]) bool {
	node := tree.GetNode()

	visitor.OnEnter(node)

	if visitor.HavePermissionToVisit(node) {
		if stop := visitor.Visit(node); stop {
			visitor.OnExit(node)

			return true
		}

		if visitor.VisitChildren(node) {
			visitor.OnStartVisitChildren(node)

			for _, child := range tree.GetChildren() {
				if stop := Traverse(child, visitor); stop {
					visitor.OnEndVisitChildren(node)
					visitor.OnExit(node)

					return true
				}
			}

			visitor.OnEndVisitChildren(node)
		}
	}

	visitor.OnExit(node)

	return false
}

// TraverseMut walks tree, allowing visitor to mutate nodes in place. The
// short-circuit semantics mirror Traverse.
func TraverseMut[N any](tree SimpleAST[N], visitor VisitorMut[N]) bool {
	node := tree.GetNode()

	visitor.OnEnter(node)

	stop := false

	if visitor.HavePermissionToVisit(node) {
		if visitor.VisitMut(node) {
			visitor.OnExit(node)

			return true
		}

		if visitor.VisitChildren(node) {
			visitor.OnStartVisitChildren(node)

			for _, child := range tree.GetChildren() {
				if stop = TraverseMut(child, visitor); stop {
					break
				}
			}

			visitor.OnEndVisitChildren(node)
		}
	}

	visitor.OnExit(node)

	return stop
}
