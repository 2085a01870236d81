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

package commenter_test

import (
	"testing"

	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/visit"
)

// listFinder/listCommenter is the minimal NodeFinder/Commenter pair this
// test uses to exercise InsertCommentNearest without depending on either
// language package: it treats any node carrying a "items" array field the
// same way language/solidity's listMember treats "statements".
type listFinder struct{}

func (listFinder) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	arr, ok := m["items"].([]any)
	if !ok {
		return false
	}
	for _, item := range arr {
		if id, ok := idMaker.GetID(jsonast.NewRoot(item)); ok && id == nodeID {
			return true
		}
	}

	return false
}

type listCommenter struct{}

func (listCommenter) InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	arr, ok := m["items"].([]any)
	if !ok {
		return false
	}
	for i, item := range arr {
		if id, ok := idMaker.GetID(jsonast.NewRoot(item)); ok && id == nodeID {
			out := make([]any, 0, len(arr)+1)
			out = append(out, arr[:i]...)
			out = append(out, commentNode)
			out = append(out, arr[i:]...)
			m["items"] = out

			return true
		}
	}

	return false
}

type staticFinderFactory struct{ finder commenter.NodeFinder }

func (f staticFinderFactory) NodeFinderFor(*jsonast.Node) (commenter.NodeFinder, bool) {
	return f.finder, true
}

type staticCommenterFactory struct{ commenter commenter.Commenter }

func (f staticCommenterFactory) CommenterFor(*jsonast.Node) (commenter.Commenter, bool) {
	return f.commenter, true
}

func allowAll() func(node *jsonast.Node) bool { return func(*jsonast.Node) bool { return true } }

func TestByIDIndexLooksUpEveryReachableNode(t *testing.T) {
	tree := map[string]any{
		"id": int64(1),
		"items": []any{
			map[string]any{"id": int64(2)},
			map[string]any{"id": int64(3)},
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}

	idx := commenter.NewByIDIndex(root, idMaker)

	for _, id := range []int64{1, 2, 3} {
		if _, ok := idx.Lookup(id); !ok {
			t.Errorf("expected id %d to be indexed", id)
		}
	}
	if _, ok := idx.Lookup(99); ok {
		t.Error("expected an unindexed id to report not found")
	}
}

func TestInsertCommentNearestFindsFirstMatchingAncestor(t *testing.T) {
	tree := map[string]any{
		"id": int64(1),
		"items": []any{
			map[string]any{"id": int64(2)},
			map[string]any{"id": int64(3)},
		},
	}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}
	idx := commenter.NewByIDIndex(root, idMaker)

	path := visit.NodePath{1, 3}
	finders := staticFinderFactory{finder: listFinder{}}
	commenters := staticCommenterFactory{commenter: listCommenter{}}

	ok := commenter.InsertCommentNearest(path, 3, map[string]any{"comment": true}, idx, finders, commenters, idMaker)
	if !ok {
		t.Fatal("expected the comment to be inserted")
	}

	m := root.Get().(map[string]any)
	items := m["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 entries after insertion, got %d", len(items))
	}
	if items[1].(map[string]any)["comment"] != true {
		t.Errorf("expected the comment spliced before node 3, got %v", items)
	}
}

func TestInsertCommentNearestReturnsFalseWhenNoAncestorMatches(t *testing.T) {
	tree := map[string]any{"id": int64(1), "items": []any{}}
	root := jsonast.NewRoot(tree)
	idMaker := jsonast.FieldIDMaker{Key: "id"}
	idx := commenter.NewByIDIndex(root, idMaker)

	path := visit.NodePath{1, 99}
	finders := staticFinderFactory{finder: listFinder{}}
	commenters := staticCommenterFactory{commenter: listCommenter{}}

	if commenter.InsertCommentNearest(path, 99, "x", idx, finders, commenters, idMaker) {
		t.Error("expected no insertion when nodeID matches no direct member anywhere on the path")
	}
}
