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

package permissions

// Permit is consulted by a visitor before it visits or mutates a node. A
// language binds one Permit implementation to its own node type N, whose
// job is to turn the node into the Probes (type tag, own name, nearest
// named ancestor) that Decide needs; Permit itself owns no traversal state
// beyond what a single node query requires.
type Permit[N any] interface {
	// HasPermission reports whether verb may be performed on node.
	HasPermission(verb Verb, node *N) bool

	// Enter and Exit bracket a traversal's descent into node's children,
	// giving a Permit implementation that needs ancestor context (e.g. a
	// Children-scoped rule) a place to maintain it. A visitor calls these
	// from its own OnStartVisitChildren/OnEndVisitChildren pair. Permit
	// implementations with no ancestor state make both no-ops.
	Enter(node *N)
	Exit(node *N)
}

// Func adapts a plain function to Permit, the common case where a
// language's permitter has no state beyond the Permissions list and a way
// to read a node's type/name/ancestor. Enter/Exit are no-ops: a Permit this
// simple has no ancestor-dependent rule to track.
type Func[N any] func(verb Verb, node *N) bool

// HasPermission implements Permit.
func (f Func[N]) HasPermission(verb Verb, node *N) bool { return f(verb, node) }

// Enter implements Permit.
func (f Func[N]) Enter(*N) {}

// Exit implements Permit.
func (f Func[N]) Exit(*N) {}
