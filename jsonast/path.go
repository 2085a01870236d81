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

package jsonast

import "github.com/go-gremlins/mutagremlins/ast"

// SyntheticIDMaker assigns a stable int64 to every Node reachable from a
// root, in deterministic pre-order, for languages whose AST (Vyper's, in
// particular) carries no native node-id field the way Solidity's does.
//
// Ids are keyed by structural Path rather than Node pointer: the generator
// clones the tree for every mutation attempt (jsonast.NewRoot over a fresh
// value), so the Node instances a later traversal produces are never the
// ones a SyntheticIDMaker built earlier saw. Two structurally identical
// trees produce identical paths for corresponding nodes, so a maker built
// from the original tree still resolves ids correctly against a clone, as
// long as the clone's shape hasn't diverged yet at the point of lookup.
// Ids must be rebuilt (via NewSyntheticIDMaker) whenever the tree's shape
// changes, since mutation can insert or remove nodes (e.g. the commenter
// wrapping a single statement in a synthesized Block).
type SyntheticIDMaker struct {
	ids map[string]int64
}

// NewSyntheticIDMaker walks root in pre-order and assigns sequential ids
// starting at 1 (0 is reserved to mean "no id").
func NewSyntheticIDMaker(root *Node) *SyntheticIDMaker {
	m := &SyntheticIDMaker{ids: make(map[string]int64)}
	var next int64 = 1

	var walk func(n *Node)
	walk = func(n *Node) {
		m.ids[n.Path()] = next
		next++
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	return m
}

// GetID implements Id.
func (m *SyntheticIDMaker) GetID(node *Node) (int64, bool) {
	id, ok := m.ids[node.Path()]

	return id, ok
}

var _ ast.SimpleAST[Node] = adapter{}
