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

import "github.com/go-gremlins/mutagremlins/permissions"

// Permitter answers permission.Permit queries for a JSON AST by inspecting
// the node's type tag and name, and the name of its nearest named ancestor.
// Ancestor tracking is the one piece of state a permission query needs
// beyond the node itself; a visitor that wants Children-scoped permissions
// enforced must call Enter/Exit itself, in the same on_enter/on_exit (or
// on_start_visit_children/on_end_visit_children) pair it already uses to
// track its own state, mirroring PathVisitor's current_path stack.
type Permitter struct {
	rules    *permissions.Permissions
	typeKey  string
	namer    Namer
	ancestry []string
}

// NewPermitter builds a Permitter over rules, reading the type tag from
// typeKey (e.g. "nodeType" for Solidity, "ast_type" for Vyper) and names
// via namer.
func NewPermitter(rules *permissions.Permissions, typeKey string, namer Namer) *Permitter {
	return &Permitter{rules: rules, typeKey: typeKey, namer: namer}
}

// Enter pushes node's name (if any) onto the ancestry stack. Call this when
// a traversal descends into node's children.
func (p *Permitter) Enter(node *Node) {
	name, _ := p.namer.GetName(node)
	p.ancestry = append(p.ancestry, name)
}

// Exit pops the entry pushed by the matching Enter.
func (p *Permitter) Exit(*Node) {
	if len(p.ancestry) > 0 {
		p.ancestry = p.ancestry[:len(p.ancestry)-1]
	}
}

func (p *Permitter) nearestNamedAncestor() (string, bool) {
	for i := len(p.ancestry) - 1; i >= 0; i-- {
		if p.ancestry[i] != "" {
			return p.ancestry[i], true
		}
	}

	return "", false
}

// HasPermission implements permissions.Permit[Node].
func (p *Permitter) HasPermission(verb permissions.Verb, node *Node) bool {
	if p.rules == nil || p.rules.IsEmpty() {
		return true
	}

	var probes []permissions.Probe
	if tag, ok := TypeTag(node, p.typeKey); ok {
		probes = append(probes, permissions.TypeProbe(tag))
	}
	if name, ok := p.namer.GetName(node); ok {
		probes = append(probes, permissions.NameProbe(name))
	}
	if ancestor, ok := p.nearestNamedAncestor(); ok {
		probes = append(probes, permissions.ChildrenProbe(ancestor))
	}

	return p.rules.Decide(verb, probes) == permissions.Allow
}

var _ permissions.Permit[Node] = (*Permitter)(nil)
