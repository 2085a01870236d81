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

// Package commenter locates the nearest enclosing block-like ancestor of a
// mutated node, using the NodePathMap a visit.PathVisitor already built,
// then asks a language-specific NodeFinder/Commenter pair to insert a
// comment node at the right place, idempotently (a statement whose body is
// a single bare statement gets wrapped in a synthesized block first).
package commenter

import (
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/visit"
)

// NodeFinder reports whether a node with the given id is a direct
// member/child of node, for a specific language's grammar of "direct
// member" (e.g. a Block's "statements" array, a SourceUnit's "nodes"
// array).
type NodeFinder interface {
	// NodeIsDirectMember reports whether node_id names a direct child of
	// node.
	NodeIsDirectMember(node *jsonast.Node, nodeID int64, idMaker jsonast.Id) bool
}

// NodeFinderFactory resolves the NodeFinder to use for a given ancestor
// node, dispatching on its type tag.
type NodeFinderFactory interface {
	NodeFinderFor(node *jsonast.Node) (NodeFinder, bool)
}

// Commenter inserts commentNode into node so it appears immediately before
// the child identified by nodeID, provided that child is a direct member of
// node (as NodeFinder would report).
type Commenter interface {
	// InsertComment mutates node in place, inserting commentNode ahead of
	// the child named by nodeID. It returns false if node has no such
	// direct child (the caller should try the next ancestor up the
	// NodePath).
	InsertComment(node *jsonast.Node, nodeID int64, commentNode any, idMaker jsonast.Id) bool
}

// CommenterFactory resolves the Commenter to use for a given ancestor node.
type CommenterFactory interface {
	CommenterFor(node *jsonast.Node) (Commenter, bool)
}

// ByIDIndex looks node up by id in the whole tree, used to turn a
// visit.NodePath (a list of ids) back into the actual ancestor Node objects
// to try, nearest first.
type ByIDIndex struct {
	byID map[int64]*jsonast.Node
}

// NewByIDIndex builds an index from every node reachable from root to its
// id, using idMaker to compute ids.
func NewByIDIndex(root *jsonast.Node, idMaker jsonast.Id) *ByIDIndex {
	idx := &ByIDIndex{byID: make(map[int64]*jsonast.Node)}

	var walk func(n *jsonast.Node)
	walk = func(n *jsonast.Node) {
		if id, ok := idMaker.GetID(n); ok {
			idx.byID[id] = n
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	return idx
}

// Lookup returns the node with id, if indexed.
func (idx *ByIDIndex) Lookup(id int64) (*jsonast.Node, bool) {
	n, ok := idx.byID[id]

	return n, ok
}

// InsertCommentNearest walks path (as produced by visit.PathVisitor, root
// first / node itself last) from the node outward, nearest ancestor first,
// trying each candidate ancestor's Commenter until one reports success.
//
// path includes nodeID itself as its last element, so the search starts at
// the second-to-last entry (the immediate parent) and works outward; the
// node itself is never a candidate for receiving its own comment.
func InsertCommentNearest(
	path visit.NodePath,
	nodeID int64,
	commentNode any,
	idx *ByIDIndex,
	finders NodeFinderFactory,
	commenters CommenterFactory,
	idMaker jsonast.Id,
) bool {
	for i := len(path) - 2; i >= 0; i-- {
		ancestor, ok := idx.Lookup(path[i])
		if !ok {
			continue
		}
		finder, ok := finders.NodeFinderFor(ancestor)
		if !ok || !finder.NodeIsDirectMember(ancestor, nodeID, idMaker) {
			continue
		}
		commenterImpl, ok := commenters.CommenterFor(ancestor)
		if !ok {
			continue
		}
		if commenterImpl.InsertComment(ancestor, nodeID, commentNode, idMaker) {
			return true
		}
	}

	return false
}
