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

// Package visit implements the concrete, language-agnostic visitors the
// mutation generator drives over a jsonast tree: PathVisitor (node-id to
// ancestor-path index, used by the commenter to find the nearest enclosing
// block), NodesCounter (counts mutable candidates per mutation.Type), and
// MutationMaker (mutates the i-th candidate of a single mutation.Type).
package visit

import (
	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/permissions"
)

// NodePath is the chain of node ids from the root down to (and including)
// a node.
type NodePath []int64

// NodePathMap maps a node id to its NodePath.
type NodePathMap map[int64]NodePath

// PathVisitor builds a NodePathMap for an entire tree in a single pass. The
// commenter uses the resulting map to find a node's enclosing statements
// without needing parent pointers on the JSON tree itself.
type PathVisitor struct {
	ast.BaseVisitor[jsonast.Node]

	permitter   permissions.Permit[jsonast.Node]
	idMaker     jsonast.Id
	currentPath NodePath

	// PathMap accumulates the id -> path mapping as the traversal
	// proceeds.
	PathMap NodePathMap
}

// NewPathVisitor creates a PathVisitor.
func NewPathVisitor(permitter permissions.Permit[jsonast.Node], idMaker jsonast.Id) *PathVisitor {
	return &PathVisitor{
		permitter: permitter,
		idMaker:   idMaker,
		PathMap:   make(NodePathMap),
	}
}

// HavePermissionToVisit implements ast.Visitor.
func (v *PathVisitor) HavePermissionToVisit(node *jsonast.Node) bool {
	return v.permitter.HasPermission(permissions.Visit, node)
}

// Visit implements ast.Visitor.
func (v *PathVisitor) Visit(node *jsonast.Node) bool {
	if id, ok := v.idMaker.GetID(node); ok {
		path := make(NodePath, len(v.currentPath), len(v.currentPath)+1)
		copy(path, v.currentPath)
		path = append(path, id)
		v.PathMap[id] = path
	}

	return false
}

// OnStartVisitChildren implements ast.Visitor.
func (v *PathVisitor) OnStartVisitChildren(node *jsonast.Node) {
	if id, ok := v.idMaker.GetID(node); ok {
		v.currentPath = append(v.currentPath, id)
	}
	v.permitter.Enter(node)
}

// OnEndVisitChildren implements ast.Visitor.
func (v *PathVisitor) OnEndVisitChildren(node *jsonast.Node) {
	v.permitter.Exit(node)
	if _, ok := v.idMaker.GetID(node); ok && len(v.currentPath) > 0 {
		v.currentPath = v.currentPath[:len(v.currentPath)-1]
	}
}
