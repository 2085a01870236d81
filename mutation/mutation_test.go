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

package mutation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-gremlins/mutagremlins/mutation"
)

func TestTypeString(t *testing.T) {
	testCases := []struct {
		name     string
		mutType  mutation.Type
		expected string
	}{
		{"ArithmeticBinaryOp", mutation.ArithmeticBinaryOp, "arithmetic-binary-op"},
		{"LogicalBinaryOp", mutation.LogicalBinaryOp, "logical-binary-op"},
		{"Require", mutation.Require, "require"},
		{"UncheckedBlock", mutation.UncheckedBlock, "unchecked-block"},
		{"unknown", mutation.Type(999), "mutation.Type(999)"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mutType.String(); got != tc.expected {
				t.Errorf(cmp.Diff(got, tc.expected))
			}
		})
	}
}

func TestTypeDescribe(t *testing.T) {
	if mutation.Integer.Describe() == "" {
		t.Errorf("expected a non-empty description for Integer")
	}
	if got := mutation.Type(999).Describe(); got != "no description available" {
		t.Errorf("expected fallback description, got %q", got)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected mutation.Type
		ok       bool
	}{
		{"known", "integer", mutation.Integer, true},
		{"camel case alias", "ArithmeticBinaryOp", mutation.ArithmeticBinaryOp, true},
		{"camel case solidity extra", "UncheckedBlock", mutation.UncheckedBlock, true},
		{"unknown", "not-a-real-mutation", mutation.Type(0), false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := mutation.Parse(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Errorf(cmp.Diff(got, tc.expected))
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, typ := range append(mutation.Generic(), mutation.Require, mutation.UncheckedBlock) {
		typ := typ
		t.Run(typ.String(), func(t *testing.T) {
			got, ok := mutation.Parse(typ.String())
			if !ok {
				t.Fatalf("Parse(%q) failed", typ.String())
			}
			if got != typ {
				t.Errorf(cmp.Diff(got, typ))
			}
		})
	}
}

func TestGenericDoesNotIncludeLanguageSpecificTypes(t *testing.T) {
	for _, typ := range mutation.Generic() {
		if typ == mutation.Require || typ == mutation.UncheckedBlock {
			t.Errorf("mutation.Generic() leaked a language-specific type: %s", typ)
		}
	}
	if len(mutation.Generic()) != 14 {
		t.Errorf("expected 14 generic mutation types, got %d", len(mutation.Generic()))
	}
}
