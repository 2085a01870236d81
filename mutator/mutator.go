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

// Package mutator defines the contract every per-node mutation algorithm
// implements, and the factory that resolves a mutation.Type to a concrete
// Mutator for one language.
package mutator

import (
	"math/rand"

	"github.com/go-gremlins/mutagremlins/mutation"
)

// Result carries what a single mutation produced: the id of the node that
// was changed, and, when the language delegate supports inline comments, the
// explanatory comment node to insert near it.
type Result struct {
	// MutatedNodeID is the language-specific identifier of the node that
	// was mutated, used afterwards to generate the "mutated from X to Y"
	// comment at the correct source position.
	MutatedNodeID int64

	// HasComment reports whether CommentNode is meaningful.
	HasComment bool

	// CommentNode is the language-specific comment node the Commenter
	// inserts into the statement list nearest the mutated node.
	CommentNode any
}

// Mutator implements a single mutation algorithm over nodes of type N.
type Mutator[N any] interface {
	// IsMutableNode reports whether node is a candidate this mutator
	// could mutate. rng may be consulted when mutability is itself
	// probabilistic (it generally is not, but the signature matches
	// Mutate's so a mutator can share logic between the two).
	IsMutableNode(node *N, rng *rand.Rand) bool

	// Mutate changes node in place, returning the Result describing what
	// changed. Mutate is only ever called on a node for which
	// IsMutableNode returned true.
	Mutate(node *N, rng *rand.Rand) Result

	// Implements returns the mutation.Type this mutator implements.
	Implements() mutation.Type
}

// Factory resolves a mutation.Type to the Mutator that implements it for
// one language. A language delegate owns one Factory instance, built once
// when the delegate is created.
type Factory[N any] interface {
	// MutatorFor returns the Mutator implementing kind, or (nil, false)
	// if the language does not support kind.
	MutatorFor(kind mutation.Type) (Mutator[N], bool)

	// Supported returns every mutation.Type this factory can produce a
	// Mutator for, generic types first in mutation.Generic order,
	// followed by any language-specific extras.
	Supported() []mutation.Type
}
