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

package visit_test

import (
	"math/rand"
	"testing"

	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
	"github.com/go-gremlins/mutagremlins/visit"
)

// literalMutator claims every Literal node and, when mutated, replaces its
// "value" field with -1, the minimal mutator.Mutator needed to exercise the
// counting/mutating visitors without pulling in a full language package.
type literalMutator struct{}

func (literalMutator) Implements() mutation.Type { return mutation.Integer }

func (literalMutator) IsMutableNode(node *jsonast.Node, _ *rand.Rand) bool {
	tag, ok := jsonast.TypeTag(node, "nodeType")

	return ok && tag == "Literal"
}

func (literalMutator) Mutate(node *jsonast.Node, _ *rand.Rand) mutator.Result {
	jsonast.SetField(node, "value", int64(-1))
	id, _ := jsonast.IntField(node, "id")

	return mutator.Result{MutatedNodeID: id}
}

func noPermitter() permissions.Permit[jsonast.Node] {
	return permissions.Func[jsonast.Node](func(permissions.Verb, *jsonast.Node) bool { return true })
}

func threeLiterals() *jsonast.Node {
	tree := map[string]any{
		"nodeType": "Block",
		"id":       int64(1),
		"statements": []any{
			map[string]any{"nodeType": "Literal", "id": int64(2), "value": int64(1)},
			map[string]any{"nodeType": "Literal", "id": int64(3), "value": int64(2)},
			map[string]any{"nodeType": "Literal", "id": int64(4), "value": int64(3)},
		},
	}

	return jsonast.NewRoot(tree)
}

func TestNodesCounterCountsEveryMatch(t *testing.T) {
	root := threeLiterals()
	mutators := map[mutation.Type]mutator.Mutator[jsonast.Node]{mutation.Integer: literalMutator{}}
	counter := visit.NewNodesCounter(mutators, noPermitter(), rand.New(rand.NewSource(0)))

	ast.Traverse[jsonast.Node](jsonast.Adapt(root), counter)

	if got := counter.Counts[mutation.Integer]; got != 3 {
		t.Fatalf("expected 3 mutable Literal nodes, got %d", got)
	}
}

func TestNodesCounterRespectsPermissions(t *testing.T) {
	root := threeLiterals()
	mutators := map[mutation.Type]mutator.Mutator[jsonast.Node]{mutation.Integer: literalMutator{}}
	denyAll := permissions.Func[jsonast.Node](func(permissions.Verb, *jsonast.Node) bool { return false })
	counter := visit.NewNodesCounter(mutators, denyAll, rand.New(rand.NewSource(0)))

	ast.Traverse[jsonast.Node](jsonast.Adapt(root), counter)

	if got := counter.Counts[mutation.Integer]; got != 0 {
		t.Fatalf("expected 0 counted nodes when permission denies visiting, got %d", got)
	}
}

func TestNodesCounterRespectsMutatePermissionIndependentlyOfVisit(t *testing.T) {
	root := threeLiterals()
	mutators := map[mutation.Type]mutator.Mutator[jsonast.Node]{mutation.Integer: literalMutator{}}
	// Visit is always allowed (so the walker still descends into children),
	// but Mutate is denied for node 3 specifically: the count must reflect
	// only nodes eligible for mutation, not merely nodes the walker visits.
	visitAllowMutateSelective := permissions.Func[jsonast.Node](func(verb permissions.Verb, node *jsonast.Node) bool {
		if verb != permissions.Mutate {
			return true
		}
		id, _ := jsonast.IntField(node, "id")

		return id != 3
	})
	counter := visit.NewNodesCounter(mutators, visitAllowMutateSelective, rand.New(rand.NewSource(0)))

	ast.Traverse[jsonast.Node](jsonast.Adapt(root), counter)

	if got := counter.Counts[mutation.Integer]; got != 2 {
		t.Fatalf("expected 2 mutable Literal nodes once node 3 is Mutate-denied, got %d", got)
	}
}

func TestMutationMakerIndexSpaceMatchesMutatePermittedNodesOnly(t *testing.T) {
	root := threeLiterals()
	// Node 3 is Mutate-denied; the maker's index space must skip it
	// entirely, the same way NodesCounter never counted it, so index 0
	// and 1 land on node 2 and node 4 respectively, not node 2 and node 3.
	denyNodeThree := permissions.Func[jsonast.Node](func(verb permissions.Verb, node *jsonast.Node) bool {
		if verb != permissions.Mutate {
			return true
		}
		id, _ := jsonast.IntField(node, "id")

		return id != 3
	})

	maker := visit.NewMutationMaker(literalMutator{}, rand.New(rand.NewSource(0)), 1, denyNodeThree, jsonast.FieldIDMaker{Key: "id"})
	stopped := ast.TraverseMut[jsonast.Node](jsonast.Adapt(root), maker)

	if !stopped {
		t.Fatal("expected the traversal to short-circuit once it mutated the second permitted node")
	}
	if !maker.Mutated {
		t.Fatal("expected Mutated to be true")
	}
	if maker.MutatedNodeID != 4 {
		t.Errorf("expected index 1 to land on node 4 (skipping Mutate-denied node 3), got %d", maker.MutatedNodeID)
	}
}

func TestMutationMakerMutatesOnlyTheIndexedNode(t *testing.T) {
	for index, wantID := range map[int]int64{0: 2, 1: 3, 2: 4} {
		root := threeLiterals()
		maker := visit.NewMutationMaker(literalMutator{}, rand.New(rand.NewSource(0)), index, noPermitter(), jsonast.FieldIDMaker{Key: "id"})

		stopped := ast.TraverseMut[jsonast.Node](jsonast.Adapt(root), maker)
		if !stopped {
			t.Fatalf("index %d: expected the traversal to short-circuit once it mutated", index)
		}
		if maker.MutatedNodeID != wantID {
			t.Errorf("index %d: expected mutated node id %d, got %d", index, wantID, maker.MutatedNodeID)
		}

		m := root.Get().(map[string]any)
		stmts := m["statements"].([]any)
		for i, s := range stmts {
			stmt := s.(map[string]any)
			id := stmt["id"].(int64)
			if id == wantID {
				if v := stmt["value"].(int64); v != -1 {
					t.Errorf("index %d: expected the targeted node's value to be mutated, got %d", index, v)
				}
			} else if v := stmt["value"].(int64); v == -1 {
				t.Errorf("index %d: node %d (position %d) was mutated but should not have been", index, id, i)
			}
		}
	}
}

func TestMutationMakerIndexBeyondCountMutatesNothing(t *testing.T) {
	root := threeLiterals()
	maker := visit.NewMutationMaker(literalMutator{}, rand.New(rand.NewSource(0)), 10, noPermitter(), jsonast.FieldIDMaker{Key: "id"})

	stopped := ast.TraverseMut[jsonast.Node](jsonast.Adapt(root), maker)
	if stopped {
		t.Fatalf("expected no short-circuit when index exceeds the mutable-node count")
	}
	if maker.MutatedNodeID != 0 {
		t.Errorf("expected no mutation, got mutated id %d", maker.MutatedNodeID)
	}
	if maker.Mutated {
		t.Error("expected Mutated to be false when index exceeds the mutable-node count")
	}
}

func TestMutationMakerDeniesMutatePermission(t *testing.T) {
	root := threeLiterals()
	denyMutate := permissions.Func[jsonast.Node](func(verb permissions.Verb, _ *jsonast.Node) bool {
		return verb != permissions.Mutate
	})
	maker := visit.NewMutationMaker(literalMutator{}, rand.New(rand.NewSource(0)), 0, denyMutate, jsonast.FieldIDMaker{Key: "id"})

	ast.TraverseMut[jsonast.Node](jsonast.Adapt(root), maker)

	if maker.MutatedNodeID != 0 {
		t.Errorf("expected mutation to be blocked when Mutate permission is denied, got id %d", maker.MutatedNodeID)
	}
	if maker.Mutated {
		t.Error("expected Mutated to be false when Mutate permission denies every candidate")
	}
}

func TestPathVisitorBuildsRootToNodePaths(t *testing.T) {
	root := threeLiterals()
	pv := visit.NewPathVisitor(noPermitter(), jsonast.FieldIDMaker{Key: "id"})

	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	want := map[int64]visit.NodePath{
		1: {1},
		2: {1, 2},
		3: {1, 3},
		4: {1, 4},
	}
	for id, wantPath := range want {
		gotPath, ok := pv.PathMap[id]
		if !ok {
			t.Fatalf("missing path for node %d", id)
		}
		if len(gotPath) != len(wantPath) {
			t.Fatalf("node %d: expected path length %d, got %d (%v)", id, len(wantPath), len(gotPath), gotPath)
		}
		for i := range wantPath {
			if gotPath[i] != wantPath[i] {
				t.Errorf("node %d: expected path %v, got %v", id, wantPath, gotPath)

				break
			}
		}
		if gotPath[len(gotPath)-1] != id {
			t.Errorf("node %d: path must end in the node's own id, got %v", id, gotPath)
		}
	}
}
