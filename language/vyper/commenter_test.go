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

func TestInsertCommentNearestSplicesIntoModuleBody(t *testing.T) {
	tree := map[string]any{
		"ast_type": "Module",
		"body": []any{
			map[string]any{"ast_type": "Expr", "tag": "first"},
			map[string]any{"ast_type": "Expr", "tag": "second"},
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.NewSyntheticIDMaker(root)

	pv := visit.NewPathVisitor(allowAll(), idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	// keys sort as "ast_type", "body": Children()[1] is the body array node.
	target := root.Children()[1].Children()[1]
	nodeID, ok := idMaker.GetID(target)
	if !ok {
		t.Fatal("expected the second body statement to have a synthetic id")
	}

	idx := commenter.NewByIDIndex(root, idMaker)
	finders := NewNodeFinderFactory()
	commenters := NewCommenterFactory()

	path, ok := pv.PathMap[nodeID]
	if !ok {
		t.Fatalf("missing path for node %d", nodeID)
	}
	if !commenter.InsertCommentNearest(path, nodeID, NewComment("mutated"), idx, finders, commenters, idMaker) {
		t.Fatal("expected the comment to be inserted")
	}

	m := root.Get().(map[string]any)
	stmts := m["body"].([]any)
	if len(stmts) != 3 {
		t.Fatalf("expected 3 entries after insertion, got %d", len(stmts))
	}
	inserted := stmts[1].(map[string]any)
	if inserted["ast_type"] != "Comment" || inserted["text"] != "mutated" {
		t.Errorf("expected the comment spliced immediately before the second statement, got %v", stmts)
	}
	if stmts[2].(map[string]any)["tag"] != "second" {
		t.Errorf("expected the original second statement to remain last, got %v", stmts)
	}
}

func TestInsertCommentNearestIfBodyAndOrelse(t *testing.T) {
	tree := map[string]any{
		"ast_type": "If",
		"test":     map[string]any{"ast_type": "Compare", "op": ">"},
		"body": []any{
			map[string]any{"ast_type": "Expr", "tag": "then"},
		},
		"orelse": []any{
			map[string]any{"ast_type": "Expr", "tag": "else"},
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.NewSyntheticIDMaker(root)

	pv := visit.NewPathVisitor(allowAll(), idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	idx := commenter.NewByIDIndex(root, idMaker)
	finders := NewNodeFinderFactory()
	commenters := NewCommenterFactory()

	// keys sort as "ast_type", "body", "orelse", "test": Children()[2] is orelse.
	elseNode := root.Children()[2].Children()[0]
	elseID, ok := idMaker.GetID(elseNode)
	if !ok {
		t.Fatal("expected the orelse statement to have a synthetic id")
	}

	if !commenter.InsertCommentNearest(pv.PathMap[elseID], elseID, NewComment("x"), idx, finders, commenters, idMaker) {
		t.Fatal("expected the comment to be inserted into the orelse branch")
	}

	m := root.Get().(map[string]any)
	orelse := m["orelse"].([]any)
	if len(orelse) != 2 {
		t.Fatalf("expected 2 entries in orelse after insertion, got %v", orelse)
	}
	if orelse[0].(map[string]any)["ast_type"] != "Comment" {
		t.Errorf("expected the comment prepended to orelse, got %v", orelse)
	}
}

func TestListMemberRejectsUnknownID(t *testing.T) {
	l := listMember{key: "body"}
	node := jsonast.NewRoot(map[string]any{
		"ast_type": "Module",
		"body":     []any{map[string]any{"ast_type": "Expr"}},
	})
	idMaker := jsonast.NewSyntheticIDMaker(node)

	if l.NodeIsDirectMember(node, 99999, idMaker) {
		t.Error("expected an id absent from the array to not be a direct member")
	}
}

func TestNewCommentShape(t *testing.T) {
	c := NewComment("hi")
	m, ok := c.(map[string]any)
	if !ok {
		t.Fatalf("expected NewComment to return a map, got %T", c)
	}
	if m["ast_type"] != "Comment" || m["text"] != "hi" {
		t.Errorf("unexpected comment shape: %v", m)
	}
}
