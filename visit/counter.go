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
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
)

// NodesCounter walks a tree once and counts, per mutation.Type, how many
// nodes each registered mutator considers mutable. The generator uses the
// resulting table both to report "no mutable node" errors and to build the
// weighted sampling queue of mutation kinds to apply.
type NodesCounter struct {
	ast.BaseVisitor[jsonast.Node]

	mutators  map[mutation.Type]mutator.Mutator[jsonast.Node]
	permitter permissions.Permit[jsonast.Node]
	rng       *rand.Rand

	// Counts accumulates the mutable-node count per mutation.Type.
	Counts map[mutation.Type]int
}

// NewNodesCounter creates a NodesCounter over mutators, consulting rng for
// any mutator whose mutability test is itself randomized.
func NewNodesCounter(mutators map[mutation.Type]mutator.Mutator[jsonast.Node], permitter permissions.Permit[jsonast.Node], rng *rand.Rand) *NodesCounter {
	return &NodesCounter{
		mutators:  mutators,
		permitter: permitter,
		rng:       rng,
		Counts:    make(map[mutation.Type]int),
	}
}

// HavePermissionToVisit implements ast.Visitor.
func (v *NodesCounter) HavePermissionToVisit(node *jsonast.Node) bool {
	return v.permitter.HasPermission(permissions.Visit, node)
}

// Visit implements ast.Visitor.
func (v *NodesCounter) Visit(node *jsonast.Node) bool {
	if !v.permitter.HasPermission(permissions.Mutate, node) {
		return false
	}

	for kind, m := range v.mutators {
		if m.IsMutableNode(node, v.rng) {
			v.Counts[kind]++
		}
	}

	return false
}

// OnStartVisitChildren implements ast.Visitor.
func (v *NodesCounter) OnStartVisitChildren(node *jsonast.Node) {
	v.permitter.Enter(node)
}

// OnEndVisitChildren implements ast.Visitor.
func (v *NodesCounter) OnEndVisitChildren(node *jsonast.Node) {
	v.permitter.Exit(node)
}
