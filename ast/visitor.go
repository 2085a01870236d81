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

package ast

// Visitor describes the behavior required to traverse a syntax tree without
// mutating it. Every method has a default no-op/true implementation via the
// embeddable BaseVisitor, so a concrete visitor only overrides the hooks it
// cares about.
type Visitor[N any] interface {
	// OnEnter is called as the traversal starts to examine node.
	OnEnter(node *N)

	// HavePermissionToVisit reports whether the traversal may call Visit
	// and descend into node's children. If false, the traversal skips
	// straight to OnExit.
	HavePermissionToVisit(node *N) bool

	// Visit fully processes node. It returns true if the traversal should
	// stop immediately.
	Visit(node *N) bool

	// VisitChildren reports whether the traverser should walk node's
	// children itself. A visitor that performs its own child traversal
	// (e.g. to interleave pretty-printing tokens) returns false here.
	VisitChildren(node *N) bool

	// OnStartVisitChildren is called just before the traverser begins
	// visiting node's children.
	OnStartVisitChildren(node *N)

	// OnEndVisitChildren is called just after the traverser finishes
	// visiting node's children.
	OnEndVisitChildren(node *N)

	// OnExit is called once, unconditionally, as the traversal leaves
	// node.
	OnExit(node *N)
}

// VisitorMut is the mutating counterpart of Visitor.
type VisitorMut[N any] interface {
	OnEnter(node *N)
	HavePermissionToVisit(node *N) bool
	VisitMut(node *N) bool
	VisitChildren(node *N) bool
	OnStartVisitChildren(node *N)
	OnEndVisitChildren(node *N)
	OnExit(node *N)
}

// BaseVisitor implements every Visitor hook as a sensible no-op, so concrete
// visitors can embed it and override only what they need.
type BaseVisitor[N any] struct{}

func (BaseVisitor[N]) OnEnter(*N)                      {}
func (BaseVisitor[N]) HavePermissionToVisit(*N) bool    { return true }
func (BaseVisitor[N]) Visit(*N) bool                    { return false }
func (BaseVisitor[N]) VisitChildren(*N) bool            { return true }
func (BaseVisitor[N]) OnStartVisitChildren(*N)          {}
func (BaseVisitor[N]) OnEndVisitChildren(*N)            {}
func (BaseVisitor[N]) OnExit(*N)                        {}

// BaseVisitorMut implements every VisitorMut hook as a sensible no-op.
type BaseVisitorMut[N any] struct{}

func (BaseVisitorMut[N]) OnEnter(*N)                   {}
func (BaseVisitorMut[N]) HavePermissionToVisit(*N) bool { return true }
func (BaseVisitorMut[N]) VisitMut(*N) bool              { return false }
func (BaseVisitorMut[N]) VisitChildren(*N) bool         { return true }
func (BaseVisitorMut[N]) OnStartVisitChildren(*N)       {}
func (BaseVisitorMut[N]) OnEndVisitChildren(*N)         {}
func (BaseVisitorMut[N]) OnExit(*N)                     {}
