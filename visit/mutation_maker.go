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

package visit

import (
	"math/rand"

	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
)

// MutationMaker performs exactly one mutation per tree pass: it walks the
// tree counting how many nodes the given mutator considers mutable, and
// when it reaches the index-th one, mutates it and stops the traversal
// immediately. Applying mutations one at a time, rather than in a single
// pass over all candidates, keeps each mutant's node ids and positions
// consistent with what NodesCounter already reported.
type MutationMaker struct {
	ast.BaseVisitorMut[jsonast.Node]

	mutator   mutator.Mutator[jsonast.Node]
	rng       *rand.Rand
	index     int
	current   int
	permitter permissions.Permit[jsonast.Node]
	idMaker   jsonast.Id

	// MutatedNodeID is the id of the node that was mutated, populated
	// once the traversal finds and mutates its target.
	MutatedNodeID int64

	// Mutated reports whether the traversal actually found and mutated
	// its target. A mutable node at the target index can still be denied
	// Mutate permission, in which case the traversal completes having
	// changed nothing; callers must check this rather than infer success
	// from MutatedNodeID, whose zero value is also a valid node id.
	Mutated bool

	// HasComment and CommentNode mirror mutator.Result: when the mutator
	// requests an explanatory comment, CommentNode is the comment node to
	// insert.
	HasComment bool
	CommentNode any
}

// NewMutationMaker creates a MutationMaker that mutates the index-th node
// (0-based, in traversal order) that m considers mutable.
func NewMutationMaker(m mutator.Mutator[jsonast.Node], rng *rand.Rand, index int, permitter permissions.Permit[jsonast.Node], idMaker jsonast.Id) *MutationMaker {
	return &MutationMaker{
		mutator:   m,
		rng:       rng,
		index:     index,
		permitter: permitter,
		idMaker:   idMaker,
	}
}

// HavePermissionToVisit implements ast.VisitorMut.
func (v *MutationMaker) HavePermissionToVisit(node *jsonast.Node) bool {
	return v.permitter.HasPermission(permissions.Visit, node)
}

// OnStartVisitChildren implements ast.VisitorMut.
func (v *MutationMaker) OnStartVisitChildren(node *jsonast.Node) {
	v.permitter.Enter(node)
}

// OnEndVisitChildren implements ast.VisitorMut.
func (v *MutationMaker) OnEndVisitChildren(node *jsonast.Node) {
	v.permitter.Exit(node)
}

// VisitMut implements ast.VisitorMut.
//
// current only advances over nodes that are both mutable and permitted to
// mutate, so its index space matches NodesCounter.Counts exactly: a node
// this mutator claims but Mutate permission denies is skipped entirely,
// the same as NodesCounter never counting it in the first place.
func (v *MutationMaker) VisitMut(node *jsonast.Node) bool {
	if !v.mutator.IsMutableNode(node, v.rng) {
		return false
	}

	if !v.permitter.HasPermission(permissions.Mutate, node) {
		return false
	}

	if v.current != v.index {
		v.current++

		return false
	}

	result := v.mutator.Mutate(node, v.rng)
	if result.MutatedNodeID != 0 {
		v.MutatedNodeID = result.MutatedNodeID
	} else if id, ok := v.idMaker.GetID(node); ok {
		v.MutatedNodeID = id
	}
	v.Mutated = true
	v.HasComment = result.HasComment
	v.CommentNode = result.CommentNode

	return true
}
