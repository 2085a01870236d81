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

// Package jsonast implements ast.SimpleAST over a tree decoded from
// encoding/json (map[string]any / []any / scalars), the common shape of a
// compiler-emitted AST for both Solidity and Vyper.
//
// Go maps give no mutable reference to a stored value, unlike Rust's
// serde_json::Value::Object (a Map whose values_mut() yields real &mut
// Value). Node works around this by pairing each value with a set-back
// closure that knows how to write a replacement value into its parent
// container (map assignment, or slice-index assignment). A mutator calls
// Node.Set to replace a node's value; the closure propagates the change to
// the parent, so the root value (and therefore the JSON it serializes back
// to) reflects the mutation.
package jsonast

import (
	"sort"
	"strconv"

	"github.com/go-gremlins/mutagremlins/ast"
)

// Node wraps a single value in a decoded JSON tree, together with enough
// context to write a replacement value back into its parent container.
//
// path identifies the node's position by the sequence of map keys/array
// indices from the root, e.g. `.nodes[2].body.statements[0]`. Unlike the
// Node pointer itself, path is stable across independent traversals of two
// structurally identical trees (a tree and a clone of it made for one
// mutation attempt), which is what lets a jsonast.Id implementation like
// SyntheticIDMaker assign ids once and look them up again later against a
// freshly walked clone.
type Node struct {
	value  any
	setter func(any)
	parent *Node
	path   string
}

// NewRoot wraps the top-level decoded JSON value. There is no parent to
// write back to, so Set only updates the Node itself.
func NewRoot(value any) *Node {
	return &Node{value: value}
}

// Get returns the node's current value.
func (n *Node) Get() any { return n.value }

// Set replaces the node's value, propagating the change to the parent
// container (if any) so the root tree reflects the mutation.
func (n *Node) Set(v any) {
	n.value = v
	if n.setter != nil {
		n.setter(v)
	}
}

// Parent returns the enclosing Node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Path returns the node's structural position from the root, stable across
// independent Children() walks of structurally identical trees.
func (n *Node) Path() string { return n.path }

// childOfMap builds a child Node for key in an object-valued node.
func (n *Node) childOfMap(m map[string]any, key string) *Node {
	return &Node{
		value: m[key],
		setter: func(v any) {
			m[key] = v
		},
		parent: n,
		path:   n.path + "." + key,
	}
}

// childOfSlice builds a child Node for index in an array-valued node.
func (n *Node) childOfSlice(s []any, index int) *Node {
	return &Node{
		value: s[index],
		setter: func(v any) {
			s[index] = v
		},
		parent: n,
		path:   n.path + "[" + strconv.Itoa(index) + "]",
	}
}

// Children returns this node's children in deterministic order: for an
// object, sorted by key (encoding/json's map[string]any has no stable
// iteration order, so sorting is required for reproducible traversal and
// therefore reproducible i-th-node selection); for an array, by index.
func (n *Node) Children() []*Node {
	switch v := n.value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		children := make([]*Node, 0, len(keys))
		for _, k := range keys {
			children = append(children, n.childOfMap(v, k))
		}

		return children
	case []any:
		children := make([]*Node, 0, len(v))
		for i := range v {
			children = append(children, n.childOfSlice(v, i))
		}

		return children
	default:
		return nil
	}
}

// adapter implements ast.SimpleAST[Node] over a single Node, matching it
// against its own Children().
type adapter struct {
	node *Node
}

// Adapt wraps node as an ast.SimpleAST[Node], suitable for ast.Traverse and
// ast.TraverseMut.
func Adapt(node *Node) ast.SimpleAST[Node] {
	return adapter{node: node}
}

func (a adapter) GetNode() *Node { return a.node }

func (a adapter) GetChildren() []ast.SimpleAST[Node] {
	kids := a.node.Children()
	out := make([]ast.SimpleAST[Node], len(kids))
	for i, k := range kids {
		out[i] = adapter{node: k}
	}

	return out
}

// TypeTag returns the discriminator value under key (e.g. "nodeType" for
// Solidity, "ast_type" for Vyper) if node is an object carrying that key as
// a string.
func TypeTag(node *Node, key string) (string, bool) {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)

	return s, ok
}

// StringField returns the string stored under key in node, if node is an
// object carrying key as a string.
func StringField(node *Node, key string) (string, bool) {
	return TypeTag(node, key)
}

// IntField returns the integer stored under key, accepting both float64
// (the shape encoding/json produces for any JSON number) and int64.
func IntField(node *Node, key string) (int64, bool) {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return 0, false
	}
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// BoolField returns the boolean stored under key.
func BoolField(node *Node, key string) (bool, bool) {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false, false
	}
	v, ok := m[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)

	return b, ok
}

// SetField writes v under key on node, which must currently hold an
// object. This mutates the object in place (maps are reference types), so
// no Set-propagation through Node is required for field-level edits; only
// whole-node replacement goes through Node.Set.
func SetField(node *Node, key string, v any) bool {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return false
	}
	m[key] = v

	return true
}

// IsObject reports whether node currently wraps a JSON object.
func IsObject(node *Node) bool {
	_, ok := node.Get().(map[string]any)

	return ok
}

// IsArray reports whether node currently wraps a JSON array.
func IsArray(node *Node) bool {
	_, ok := node.Get().([]any)

	return ok
}
