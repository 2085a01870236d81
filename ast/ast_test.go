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

package ast_test

import (
	"testing"

	"github.com/go-gremlins/mutagremlins/ast"
)

// fakeNode is a minimal tree for exercising Traverse/TraverseMut without
// depending on jsonast.
type fakeNode struct {
	name     string
	children []*fakeNode
}

type fakeTree struct {
	node *fakeNode
}

func (f fakeTree) GetNode() *fakeNode { return f.node }

func (f fakeTree) GetChildren() []ast.SimpleAST[fakeNode] {
	out := make([]ast.SimpleAST[fakeNode], len(f.node.children))
	for i, c := range f.node.children {
		out[i] = fakeTree{node: c}
	}

	return out
}

// recordingVisitor records the order in which nodes are visited, and the
// enter/exit bracket calls around descending into children.
type recordingVisitor struct {
	ast.BaseVisitor[fakeNode]
	order []string
}

func (v *recordingVisitor) Visit(n *fakeNode) bool {
	v.order = append(v.order, "visit:"+n.name)

	return false
}

func (v *recordingVisitor) OnStartVisitChildren(n *fakeNode) {
	v.order = append(v.order, "start:"+n.name)
}

func (v *recordingVisitor) OnEndVisitChildren(n *fakeNode) {
	v.order = append(v.order, "end:"+n.name)
}

func buildTree() *fakeNode {
	return &fakeNode{
		name: "root",
		children: []*fakeNode{
			{name: "a"},
			{name: "b", children: []*fakeNode{{name: "b1"}}},
		},
	}
}

func TestTraverseOrder(t *testing.T) {
	tree := fakeTree{node: buildTree()}
	v := &recordingVisitor{}
	ast.Traverse[fakeNode](tree, v)

	expected := []string{
		"visit:root", "start:root",
		"visit:a", "start:a", "end:a",
		"visit:b", "start:b",
		"visit:b1", "start:b1", "end:b1",
		"end:b",
		"end:root",
	}
	if len(v.order) != len(expected) {
		t.Fatalf("got %v, want %v", v.order, expected)
	}
	for i := range expected {
		if v.order[i] != expected[i] {
			t.Fatalf("at index %d: got %q, want %q (full: %v)", i, v.order[i], expected[i], v.order)
		}
	}
}

// stoppingVisitor stops the traversal as soon as it sees the named node.
type stoppingVisitor struct {
	ast.BaseVisitor[fakeNode]
	stopAt string
	seen   []string
}

func (v *stoppingVisitor) Visit(n *fakeNode) bool {
	v.seen = append(v.seen, n.name)

	return n.name == v.stopAt
}

func TestTraverseStopsEarly(t *testing.T) {
	tree := fakeTree{node: buildTree()}
	v := &stoppingVisitor{stopAt: "a"}
	stopped := ast.Traverse[fakeNode](tree, v)

	if !stopped {
		t.Fatalf("expected Traverse to report early stop")
	}
	if len(v.seen) != 2 || v.seen[1] != "a" {
		t.Fatalf("expected traversal to stop right after visiting %q, got %v", "a", v.seen)
	}
}

// permissionDenyingVisitor refuses to visit/descend into any node named
// "b", to exercise HavePermissionToVisit's short-circuit.
type permissionDenyingVisitor struct {
	ast.BaseVisitor[fakeNode]
	visited []string
}

func (v *permissionDenyingVisitor) HavePermissionToVisit(n *fakeNode) bool {
	return n.name != "b"
}

func (v *permissionDenyingVisitor) Visit(n *fakeNode) bool {
	v.visited = append(v.visited, n.name)

	return false
}

func TestTraverseSkipsDeniedSubtree(t *testing.T) {
	tree := fakeTree{node: buildTree()}
	v := &permissionDenyingVisitor{}
	ast.Traverse[fakeNode](tree, v)

	for _, name := range v.visited {
		if name == "b" || name == "b1" {
			t.Fatalf("expected subtree rooted at denied node %q to be skipped entirely, got %v", "b", v.visited)
		}
	}
}

// mutatingVisitor renames every node it visits, proving TraverseMut can
// observe in-place changes made during its own walk.
type mutatingVisitor struct {
	ast.BaseVisitorMut[fakeNode]
	visited []string
}

func (v *mutatingVisitor) VisitMut(n *fakeNode) bool {
	v.visited = append(v.visited, n.name)
	n.name = n.name + "!"

	return false
}

func TestTraverseMutMutatesInPlace(t *testing.T) {
	root := buildTree()
	tree := fakeTree{node: root}
	v := &mutatingVisitor{}
	ast.TraverseMut[fakeNode](tree, v)

	if root.name != "root!" {
		t.Errorf("expected root to be renamed in place, got %q", root.name)
	}
	if root.children[0].name != "a!" {
		t.Errorf("expected child to be renamed in place, got %q", root.children[0].name)
	}
	if len(v.visited) != 4 {
		t.Fatalf("expected 4 nodes visited, got %d (%v)", len(v.visited), v.visited)
	}
}

func TestBaseVisitorDefaults(t *testing.T) {
	var v ast.BaseVisitor[fakeNode]
	n := &fakeNode{name: "x"}

	if !v.HavePermissionToVisit(n) {
		t.Errorf("expected default HavePermissionToVisit to be true")
	}
	if v.Visit(n) {
		t.Errorf("expected default Visit to not stop traversal")
	}
	if !v.VisitChildren(n) {
		t.Errorf("expected default VisitChildren to be true")
	}
	v.OnEnter(n)
	v.OnStartVisitChildren(n)
	v.OnEndVisitChildren(n)
	v.OnExit(n)
}

func TestBaseVisitorMutDefaults(t *testing.T) {
	var v ast.BaseVisitorMut[fakeNode]
	n := &fakeNode{name: "x"}

	if !v.HavePermissionToVisit(n) {
		t.Errorf("expected default HavePermissionToVisit to be true")
	}
	if v.VisitMut(n) {
		t.Errorf("expected default VisitMut to not stop traversal")
	}
	if !v.VisitChildren(n) {
		t.Errorf("expected default VisitChildren to be true")
	}
}
