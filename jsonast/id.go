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

// Id gives a stable int64 identity to a node, so a mutation can later be
// traced back to the exact source position the pretty-printer or commenter
// needs, even after the node's own fields have been mutated.
type Id interface {
	// GetID returns the id for node, or (0, false) if node carries none.
	GetID(node *Node) (int64, bool)
}

// Namer gives a human-readable moniker to a node (a function name, a
// contract name, a variable name) for use in Name/Children permission
// scopes and in generated comments.
type Namer interface {
	// GetName returns the name for node, or (false) if node is unnamed.
	GetName(node *Node) (string, bool)
}

// FieldIDMaker is an Id backed by a single integer field, the shape
// Solidity's compiler emits ("id" on every node).
type FieldIDMaker struct {
	Key string
}

// GetID implements Id.
func (f FieldIDMaker) GetID(node *Node) (int64, bool) {
	return IntField(node, f.Key)
}

// FuncNamer adapts an arbitrary conversion function to Namer, mirroring the
// original's JSONNamer closure wrapper: a language supplies the
// node-to-name logic, this package supplies the interface plumbing.
type FuncNamer struct {
	Fn func(node *Node) (string, bool)
}

// GetName implements Namer.
func (f FuncNamer) GetName(node *Node) (string, bool) {
	return f.Fn(node)
}

// FieldNamer is a Namer backed by a single string field, used by languages
// whose nodes name themselves directly (e.g. Solidity's FunctionDefinition
// "name" field).
type FieldNamer struct {
	Key string
}

// GetName implements Namer.
func (f FieldNamer) GetName(node *Node) (string, bool) {
	return StringField(node, f.Key)
}
