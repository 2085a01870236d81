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

package vyper

import (
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
)

// mutatorFactory implements mutator.Factory[jsonast.Node] for every mutation
// this package supports, mirroring language/solidity's mutatorFactory.
// Vyper has no Require/UncheckedBlock equivalents, so its Supported() set
// is strictly the generic family.
type mutatorFactory struct {
	byType map[mutation.Type]mutator.Mutator[jsonast.Node]
}

// NewMutatorFactory builds the Vyper mutator.Factory.
func NewMutatorFactory() mutator.Factory[jsonast.Node] {
	f := &mutatorFactory{byType: make(map[mutation.Type]mutator.Mutator[jsonast.Node])}

	add := func(m mutator.Mutator[jsonast.Node]) {
		f.byType[m.Implements()] = m
	}

	for _, m := range newOperatorFamilyMutators() {
		add(m)
	}
	add(operatorSwapArgumentsMutator{})
	add(ifStatementMutator{})
	add(deleteExpressionMutator{})
	add(integerMutator{})
	add(functionSwapArgumentsMutator{})
	add(linesSwapMutator{})
	add(functionCallMutator{})

	return f
}

func (f *mutatorFactory) MutatorFor(kind mutation.Type) (mutator.Mutator[jsonast.Node], bool) {
	m, ok := f.byType[kind]

	return m, ok
}

func (f *mutatorFactory) Supported() []mutation.Type {
	out := make([]mutation.Type, 0, len(f.byType))
	for _, kind := range mutation.Generic() {
		if _, ok := f.byType[kind]; ok {
			out = append(out, kind)
		}
	}

	return out
}
