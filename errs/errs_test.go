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

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gremlins/mutagremlins/errs"
)

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      *errs.Error
		expected string
	}{
		{
			name:     "detail only",
			err:      errs.New(errs.IO, "foo.sol"),
			expected: "I/O error: foo.sol",
		},
		{
			name:     "no detail",
			err:      errs.New(errs.NoMutableNode, ""),
			expected: "AST does not contain any mutable node for requested mutations",
		},
		{
			name:     "wrapped",
			err:      errs.Wrap(errs.IO, "foo.sol", fmt.Errorf("permission denied")),
			expected: "I/O error: foo.sol: permission denied",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := errs.Wrap(errs.IO, "foo", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	a := errs.New(errs.NoMutableNode, "a.sol")
	b := errs.New(errs.NoMutableNode, "b.sol")
	c := errs.New(errs.SourceDoesNotCompile, "a.sol")

	if !errors.Is(a, b) {
		t.Errorf("expected same-Kind errors to match via errors.Is")
	}
	if errors.Is(a, c) {
		t.Errorf("expected different-Kind errors not to match")
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got := errs.Kind(999).String(); got != "unknown error" {
		t.Errorf("got %q, want %q", got, "unknown error")
	}
}
