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
	"testing"

	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/permissions"
	"github.com/go-gremlins/mutagremlins/visit"
)

func allowAll() permissions.Permit[jsonast.Node] {
	return permissions.Func[jsonast.Node](func(permissions.Verb, *jsonast.Node) bool { return true })
}

func TestInsertCommentNearestSplicesIntoEnclosingBlock(t *testing.T) {
	tree := map[string]any{
		"nodeType": "Block",
		"id":       int64(1),
		"statements": []any{
			map[string]any{"nodeType": "ExpressionStatement", "id": int64(2)},
			map[string]any{"nodeType": "ExpressionStatement", "id": int64(3)},
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}

	pv := visit.NewPathVisitor(allowAll(), idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	idx := commenter.NewByIDIndex(root, idMaker)
	finders := NewNodeFinderFactory()
	commenters := NewCommenterFactory()

	path, ok := pv.PathMap[3]
	if !ok {
		t.Fatal("expected a path for node 3")
	}

	ok = commenter.InsertCommentNearest(path, 3, NewComment("mutated"), idx, finders, commenters, idMaker)
	if !ok {
		t.Fatal("expected the comment to be inserted")
	}

	m := root.Get().(map[string]any)
	stmts := m["statements"].([]any)
	if len(stmts) != 3 {
		t.Fatalf("expected 3 entries after insertion, got %d", len(stmts))
	}
	inserted := stmts[1].(map[string]any)
	if inserted["nodeType"] != "Comment" || inserted["text"] != "mutated" {
		t.Errorf("expected the comment spliced immediately before node 3, got %v", stmts)
	}
	if stmts[2].(map[string]any)["id"] != int64(3) {
		t.Errorf("expected node 3 to remain after the inserted comment, got %v", stmts)
	}
}

func TestInsertCommentNearestWrapsBracelessBody(t *testing.T) {
	tree := map[string]any{
		"nodeType": "WhileStatement",
		"id":       int64(1),
		"condition": map[string]any{
			"nodeType": "Literal", "id": int64(2), "value": true,
		},
		"body": map[string]any{
			"nodeType": "ExpressionStatement", "id": int64(3),
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}

	pv := visit.NewPathVisitor(allowAll(), idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	idx := commenter.NewByIDIndex(root, idMaker)
	finders := NewNodeFinderFactory()
	commenters := NewCommenterFactory()

	path := pv.PathMap[3]
	ok := commenter.InsertCommentNearest(path, 3, NewComment("mutated"), idx, finders, commenters, idMaker)
	if !ok {
		t.Fatal("expected the comment to be inserted by wrapping the bare body in a Block")
	}

	m := root.Get().(map[string]any)
	body, ok := m["body"].(map[string]any)
	if !ok || body["nodeType"] != "Block" {
		t.Fatalf("expected body rewrapped as a Block, got %v", m["body"])
	}
	stmts := body["statements"].([]any)
	if len(stmts) != 2 {
		t.Fatalf("expected the wrapper block to hold [comment, original], got %v", stmts)
	}
	if stmts[0].(map[string]any)["nodeType"] != "Comment" {
		t.Errorf("expected the comment first, got %v", stmts[0])
	}
	if stmts[1].(map[string]any)["id"] != int64(3) {
		t.Errorf("expected the original statement preserved second, got %v", stmts[1])
	}
}

func TestInsertCommentNearestIfStatementTrueAndFalseBody(t *testing.T) {
	tree := map[string]any{
		"nodeType":  "IfStatement",
		"id":        int64(1),
		"condition": map[string]any{"nodeType": "Literal", "id": int64(2), "value": true},
		"trueBody":  map[string]any{"nodeType": "ExpressionStatement", "id": int64(3)},
		"falseBody": map[string]any{"nodeType": "ExpressionStatement", "id": int64(4)},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}

	pv := visit.NewPathVisitor(allowAll(), idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	idx := commenter.NewByIDIndex(root, idMaker)
	finders := NewNodeFinderFactory()
	commenters := NewCommenterFactory()

	if !commenter.InsertCommentNearest(pv.PathMap[4], 4, NewComment("else branch"), idx, finders, commenters, idMaker) {
		t.Fatal("expected the comment to be inserted into falseBody")
	}

	m := root.Get().(map[string]any)
	falseBody := m["falseBody"].(map[string]any)
	if falseBody["nodeType"] != "Block" {
		t.Fatalf("expected falseBody rewrapped as a Block, got %v", m["falseBody"])
	}
	if trueBody, ok := m["trueBody"].(map[string]any); !ok || trueBody["nodeType"] != "ExpressionStatement" {
		t.Errorf("expected trueBody left untouched, got %v", m["trueBody"])
	}
}

func TestListMemberRejectsNonMemberID(t *testing.T) {
	l := listMember{key: "statements"}
	node := jsonast.NewRoot(map[string]any{
		"nodeType":   "Block",
		"statements": []any{map[string]any{"nodeType": "ExpressionStatement", "id": int64(1)}},
	})
	idMaker := jsonast.FieldIDMaker{Key: "id"}

	if l.NodeIsDirectMember(node, 99, idMaker) {
		t.Error("expected an id absent from the array to not be a direct member")
	}
	if l.InsertComment(node, 99, NewComment("x"), idMaker) {
		t.Error("expected InsertComment to fail for a non-member id")
	}
}

func TestNewCommentShape(t *testing.T) {
	c := NewComment("hello")
	m, ok := c.(map[string]any)
	if !ok {
		t.Fatalf("expected NewComment to return a map, got %T", c)
	}
	if m["nodeType"] != "Comment" || m["text"] != "hello" {
		t.Errorf("unexpected comment shape: %v", m)
	}
}
