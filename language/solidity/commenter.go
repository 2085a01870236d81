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
	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/jsonast"
)

// listMember implements both commenter.NodeFinder and commenter.Commenter
// over a single array field, the shape every Solidity ancestor that can
// receive a comment shares: a Block/UncheckedBlock's "statements", or a
// SourceUnit/ContractDefinition's "nodes".
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
	for i, item := range arr {
		child := jsonast.NewRoot(item)
		if id, ok := idMaker.GetID(child); ok && id == nodeID {
			return i, arr, true
		}
	}

	return 0, arr, false
}

// NodeIsDirectMember implements commenter.NodeFinder.
func (l listMember) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	_, _, ok := l.indexOf(node, nodeID, idMaker)

	return ok
}

// InsertComment implements commenter.Commenter: it splices commentNode into
// the array immediately before the member named by nodeID.
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

// singleMember implements commenter.NodeFinder/commenter.Commenter over a
// field that holds exactly one child node directly, not wrapped in a Block
// and not inside an array: Solidity's braceless-statement grammar lets
// `if (cond) stmt;`, `while (cond) stmt;`, `for (...) stmt;` and
// `do stmt; while (cond);` all hold a single bare statement under
// "trueBody"/"falseBody"/"body" instead of a Block. When a mutated node is
// exactly that single statement, InsertComment synthesizes a wrapper Block
// holding {comment, original statement} and replaces the field with it, per
// spec's single-statement-to-block rule.
type singleMember struct {
	key string
}

func (s singleMember) directChild(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) (any, bool) {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := m[s.key]
	if !ok || val == nil {
		return nil, false
	}
	child := jsonast.NewRoot(val)
	id, ok := idMaker.GetID(child)

	return val, ok && id == nodeID
}

// NodeIsDirectMember implements commenter.NodeFinder.
func (s singleMember) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	_, ok := s.directChild(node, nodeID, idMaker)

	return ok
}

// InsertComment implements commenter.Commenter.
func (s singleMember) InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	val, ok := s.directChild(node, nodeID, idMaker)
	if !ok {
		return false
	}
	m[s.key] = map[string]any{
		"nodeType":   "Block",
		"statements": []any{commentNode, val},
	}

	return true
}

// pairMember tries two singleMembers in turn, for ancestors that hold their
// bare-statement body under either of two field names (IfStatement's
// "trueBody"/"falseBody").
type pairMember struct {
	a, b singleMember
}

func (p pairMember) NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool {
	return p.a.NodeIsDirectMember(node, nodeID, idMaker) || p.b.NodeIsDirectMember(node, nodeID, idMaker)
}

func (p pairMember) InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool {
	if p.a.NodeIsDirectMember(node, nodeID, idMaker) {
		return p.a.InsertComment(node, nodeID, commentNode, idMaker)
	}

	return p.b.InsertComment(node, nodeID, commentNode, idMaker)
}

type nodeFinderFactory struct {
	byType map[string]commenter.NodeFinder
}

func (f nodeFinderFactory) NodeFinderFor(node *jsonast.Node) (commenter.NodeFinder, bool) {
	tag, ok := jsonast.TypeTag(node, "nodeType")
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
	tag, ok := jsonast.TypeTag(node, "nodeType")
	if !ok {
		return nil, false
	}
	c, ok := f.byType[tag]

	return c, ok
}

// ancestorsByType lists every Solidity ast node type that can directly hold
// a commentable child: Block/UncheckedBlock.statements and
// SourceUnit/ContractDefinition.nodes are arrays (listMember);
// FunctionDefinition/ModifierDefinition/DoWhileStatement/ForStatement/
// WhileStatement.body and TryCatchClause.block hold a single statement that
// is a bare (braceless) statement only in the loop/conditional cases
// (singleMember); IfStatement holds two such single-statement slots
// (pairMember).
func ancestorsByType() (finders map[string]commenter.NodeFinder, commenters map[string]commenter.Commenter) {
	statements := listMember{key: "statements"}
	nodes := listMember{key: "nodes"}
	body := singleMember{key: "body"}
	block := singleMember{key: "block"}
	ifBranches := pairMember{a: singleMember{key: "trueBody"}, b: singleMember{key: "falseBody"}}

	byType := map[string]interface {
		commenter.NodeFinder
		commenter.Commenter
	}{
		"Block":              statements,
		"UncheckedBlock":     statements,
		"SourceUnit":         nodes,
		"ContractDefinition": nodes,
		"FunctionDefinition": body,
		"ModifierDefinition": body,
		"DoWhileStatement":   body,
		"ForStatement":       body,
		"WhileStatement":     body,
		"TryCatchClause":     block,
		"IfStatement":        ifBranches,
	}

	finders = make(map[string]commenter.NodeFinder, len(byType))
	commenters = make(map[string]commenter.Commenter, len(byType))
	for tag, v := range byType {
		finders[tag] = v
		commenters[tag] = v
	}

	return finders, commenters
}

// NewNodeFinderFactory builds the Solidity commenter.NodeFinderFactory.
func NewNodeFinderFactory() commenter.NodeFinderFactory {
	finders, _ := ancestorsByType()

	return nodeFinderFactory{byType: finders}
}

// NewCommenterFactory builds the Solidity commenter.CommenterFactory.
func NewCommenterFactory() commenter.CommenterFactory {
	_, commenters := ancestorsByType()

	return commenterFactory{byType: commenters}
}

// NewComment builds the JSON shape this package's printer renders as a
// single-line "//" comment, the CommentNode a mutator stores in its
// mutator.Result when it wants an explanatory comment inserted.
func NewComment(text string) any {
	return map[string]any{"nodeType": "Comment", "text": text}
}
