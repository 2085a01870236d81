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

// Package permissions implements structured (action, scope, object) queries
// that gate which AST nodes may be visited or mutated.
//
// Permission is deliberately not string-based: the query grammar
// (verb.scope.object) is easy to get wrong by hand-assembling strings, so it
// is instead expressed with a small closed set of Go types that can only be
// constructed through the helper functions below.
package permissions

// Permission is the terminal "yes" or "no" of a query.
type Permission int

const (
	// Allow permits the operation to continue.
	Allow Permission = iota
	// Deny forbids the operation.
	Deny
)

// Verb is the operation being requested.
type Verb int

const (
	// Mutate requests permission to mutate a node.
	Mutate Verb = iota
	// Visit requests permission to visit (and thus count/recurse into) a node.
	Visit
)

// ObjectKind discriminates the two forms an Object can take.
type ObjectKind int

const (
	// ObjectValue matches a specific named moniker.
	ObjectValue ObjectKind = iota
	// ObjectAny matches any moniker.
	ObjectAny
)

// Object is the focus of a scoped query: either a specific name, or a
// wildcard, each carrying the Permission to apply on a match.
type Object struct {
	Kind  ObjectKind
	Value string
	Perm  Permission
}

// ValueObject builds an Object matching the exact string s.
func ValueObject(s string, p Permission) Object {
	return Object{Kind: ObjectValue, Value: s, Perm: p}
}

// AnyObject builds a wildcard Object.
func AnyObject(p Permission) Object {
	return Object{Kind: ObjectAny, Perm: p}
}

// ScopeKind discriminates the four forms a Scope can take.
type ScopeKind int

const (
	// ScopeType matches nodes whose type tag equals the Object's value.
	ScopeType ScopeKind = iota
	// ScopeName matches named nodes (functions, identifiers, ...) whose
	// name equals the Object's value.
	ScopeName
	// ScopeChildren matches nodes whose nearest named ancestor equals the
	// Object's value.
	ScopeChildren
	// ScopeAny wildcards the scope itself.
	ScopeAny
)

// Scope narrows a query to a kind of node. AnyPerm is only meaningful when
// Kind is ScopeAny.
type Scope struct {
	Kind    ScopeKind
	Object  Object
	AnyPerm Permission
}

// TypeScope builds a Scope keyed on the node's type tag.
func TypeScope(obj Object) Scope { return Scope{Kind: ScopeType, Object: obj} }

// NameScope builds a Scope keyed on the node's name.
func NameScope(obj Object) Scope { return Scope{Kind: ScopeName, Object: obj} }

// ChildrenScope builds a Scope keyed on the nearest named ancestor.
func ChildrenScope(obj Object) Scope { return Scope{Kind: ScopeChildren, Object: obj} }

// AnyScope builds a wildcard Scope.
func AnyScope(p Permission) Scope { return Scope{Kind: ScopeAny, AnyPerm: p} }

// Action is the top-level (verb, scope) query registered in a Permissions
// list, or issued against one.
type Action struct {
	Verb  Verb
	Scope Scope
}

// Permissions is an ordered list of Action settings. Evaluation walks the
// list in insertion order; the first match wins. If nothing matches, the
// default is Allow.
type Permissions struct {
	actions []Action
}

// New creates an empty Permissions list (allow-everything).
func New() *Permissions {
	return &Permissions{}
}

// Add appends an Action to the list.
func (p *Permissions) Add(a Action) {
	p.actions = append(p.actions, a)
}

// Remove deletes the first Action equal to a, if present.
func (p *Permissions) Remove(a Action) {
	for i, existing := range p.actions {
		if existing == a {
			p.actions = append(p.actions[:i], p.actions[i+1:]...)

			return
		}
	}
}

// Len returns the number of registered actions.
func (p *Permissions) Len() int { return len(p.actions) }

// IsEmpty reports whether the list has no registered actions, which means
// every query defaults to Allow.
func (p *Permissions) IsEmpty() bool { return len(p.actions) == 0 }

// Clear removes all registered actions.
func (p *Permissions) Clear() { p.actions = nil }

// Have reports whether the Permissions list grants query, matching both
// Kind and Object exactly (including the registered rule's own Perm, which
// is what decides the answer). This is the low-level primitive; most
// callers want Decide, which probes several candidate scopes for one node
// at once.
func (p *Permissions) Have(query Action) bool {
	for _, a := range p.actions {
		if a.Verb == query.Verb && a.Scope.Kind == query.Scope.Kind &&
			a.Scope.Object.Kind == query.Scope.Object.Kind && a.Scope.Object.Value == query.Scope.Object.Value {
			return a.Scope.Object.Perm == Allow
		}
	}

	return true
}

// Probe is one candidate scope to test against the registered rules: "does
// any rule key on this Kind/Value pair?". A node being queried typically
// yields up to three probes (its type tag, its own name if it has one, and
// the name of its nearest named ancestor if it has one); Decide returns the
// permission carried by the first registered rule, in list order, that
// matches any of them.
type Probe struct {
	Kind  ScopeKind
	Value string
}

// TypeProbe builds a Probe for a node's type tag.
func TypeProbe(typeTag string) Probe { return Probe{Kind: ScopeType, Value: typeTag} }

// NameProbe builds a Probe for a node's own name.
func NameProbe(name string) Probe { return Probe{Kind: ScopeName, Value: name} }

// ChildrenProbe builds a Probe for a node's nearest named ancestor.
func ChildrenProbe(ancestor string) Probe { return Probe{Kind: ScopeChildren, Value: ancestor} }

// Decide walks the registered rules in order and returns the Permission
// carried by the first rule whose Verb matches verb and whose Scope matches
// any of probes (an AnyScope rule matches any verb-matching query
// unconditionally; within a non-wildcard rule, an AnyObject matches any
// probe of the same Kind). If nothing matches, the default is Allow.
func (p *Permissions) Decide(verb Verb, probes []Probe) Permission {
	for _, a := range p.actions {
		if a.Verb != verb {
			continue
		}
		if a.Scope.Kind == ScopeAny {
			return a.Scope.AnyPerm
		}
		for _, pr := range probes {
			if a.Scope.Kind != pr.Kind {
				continue
			}
			if a.Scope.Object.Kind == ObjectAny {
				return a.Scope.Object.Perm
			}
			if a.Scope.Object.Kind == ObjectValue && a.Scope.Object.Value == pr.Value {
				return a.Scope.Object.Perm
			}
		}
	}

	return Allow
}
