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
	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/jsonast"
)

// listMember implements both commenter.NodeFinder and commenter.Commenter
// over a single array field, mirroring language/solidity's listMember.
// Vyper has no dedicated Block wrapper node the way Solidity does: a
// Module, FunctionDef, If and For all hold their statements directly under
// "body" (If additionally under "orelse" for its else-branch), so the same
// listMember value is registered under both field names per ast_type where
// applicable.
type listMember struct {
	key string
}

func (l listMember) indexOf(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) (int, []any, bool) {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return 0, nil, false
	}
	arr, ok := m[l.key].([]any)
	if !ok {
		return 0, nil, false
	}
	// Ids may be keyed by structural path (jsonast.SyntheticIDMaker), so
	// each candidate is looked up through node's own Children() walk,
	// which carries the path, rather than through a fresh root.
	for _, field := range node.Children() {
		if field.Path() != node.Path()+"."+l.key {
			continue
		}
		for i, child := range field.Children() {
			if id, ok := idMaker.GetID(child); ok && id == nodeID {
				return i, arr, true
			}
		}
	}

	return 0, arr, false
}

// NodeIsDirectMember implements commenter.NodeFinder.
func (l listMember) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	_, _, ok := l.indexOf(node, nodeID, idMaker)

	return ok
}

// InsertComment implements commenter.Commenter.
func (l listMember) InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	idx, arr, ok := l.indexOf(node, nodeID, idMaker)
	if !ok {
		return false
	}

	out := make([]any, 0, len(arr)+1)
	out = append(out, arr[:idx]...)
	out = append(out, commentNode)
	out = append(out, arr[idx:]...)
	m[l.key] = out

	return true
}

// bodyAndOrelse combines two listMembers so a single ancestor (an If
// statement) can receive a comment in either branch, trying "body" first
// then "orelse".
type bodyAndOrelse struct {
	body, orelse listMember
}

func (b bodyAndOrelse) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	return b.body.NodeIsDirectMember(node, nodeID, idMaker) || b.orelse.NodeIsDirectMember(node, nodeID, idMaker)
}

func (b bodyAndOrelse) InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool {
	if b.body.NodeIsDirectMember(node, nodeID, idMaker) {
		return b.body.InsertComment(node, nodeID, commentNode, idMaker)
	}

	return b.orelse.InsertComment(node, nodeID, commentNode, idMaker)
}

type nodeFinderFactory struct {
	byType map[string]commenter.NodeFinder
}

func (f nodeFinderFactory) NodeFinderFor(node *jsonast.Node) (commenter.NodeFinder, bool) {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok {
		return nil, false
	}
	finder, ok := f.byType[tag]

	return finder, ok
}

type commenterFactory struct {
	byType map[string]commenter.Commenter
}

func (f commenterFactory) CommenterFor(node *jsonast.Node) (commenter.Commenter, bool) {
	tag, ok := jsonast.TypeTag(node, "ast_type")
	if !ok {
		return nil, false
	}
	c, ok := f.byType[tag]

	return c, ok
}

func ancestorsByType() map[string]bodyAndOrelse {
	body := listMember{key: "body"}
	orelse := listMember{key: "orelse"}

	return map[string]bodyAndOrelse{
		"Module":      {body: body},
		"FunctionDef": {body: body},
		"For":         {body: body},
		"If":          {body: body, orelse: orelse},
	}
}

// NewNodeFinderFactory builds the Vyper commenter.NodeFinderFactory.
func NewNodeFinderFactory() commenter.NodeFinderFactory {
	byType := make(map[string]commenter.NodeFinder)
	for tag, finder := range ancestorsByType() {
		byType[tag] = finder
	}

	return nodeFinderFactory{byType: byType}
}

// NewCommenterFactory builds the Vyper commenter.CommenterFactory.
func NewCommenterFactory() commenter.CommenterFactory {
	byType := make(map[string]commenter.Commenter)
	for tag, c := range ancestorsByType() {
		byType[tag] = c
	}

	return commenterFactory{byType: byType}
}

// NewComment builds the JSON shape this package's printer renders as a
// single-line "#" comment.
func NewComment(text string) any {
	return map[string]any{"ast_type": "Comment", "text": text}
}
