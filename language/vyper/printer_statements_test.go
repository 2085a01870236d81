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

package vyper_test

import (
	"strings"
	"testing"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/language/vyper"
	"github.com/go-gremlins/mutagremlins/printer"
)

func printStatement(t *testing.T, tree map[string]any) string {
	t.Helper()
	var buf strings.Builder
	pp := printer.New(&buf, 0, 0)
	if err := printer.PrintTree(pp, vyper.NewNodePrinterFactory(), jsonast.NewRoot(tree)); err != nil {
		t.Fatalf("unexpected print error: %v", err)
	}

	return buf.String()
}

func vyName(id string) map[string]any {
	return map[string]any{"ast_type": "Name", "id": id}
}

func vyInt(v float64) map[string]any {
	return map[string]any{"ast_type": "Int", "value": v}
}

func TestPrintVyperStatements(t *testing.T) {
	testCases := []struct {
		name string
		tree map[string]any
		want string
	}{
		{
			name: "for loop",
			tree: map[string]any{
				"ast_type": "For",
				"target":   vyName("i"),
				"iter": map[string]any{
					"ast_type": "Call",
					"func":     vyName("range"),
					"args":     []any{vyInt(10)},
				},
				"body": []any{
					map[string]any{"ast_type": "Pass"},
				},
			},
			want: "for i in range(10):\n    pass",
		},
		{
			name: "assert without message",
			tree: map[string]any{
				"ast_type": "Assert",
				"test": map[string]any{
					"ast_type": "Compare",
					"op":       ">",
					"left":     vyName("x"),
					"right":    vyInt(0),
				},
			},
			want: "assert x > 0",
		},
		{
			name: "assert with message",
			tree: map[string]any{
				"ast_type": "Assert",
				"test":     vyName("ok"),
				"msg":      map[string]any{"ast_type": "Str", "value": "not ok"},
			},
			want: "assert ok, \"not ok\"",
		},
		{
			name: "raise",
			tree: map[string]any{
				"ast_type": "Raise",
				"exc":      map[string]any{"ast_type": "Str", "value": "boom"},
			},
			want: "raise \"boom\"",
		},
		{
			name: "bare raise",
			tree: map[string]any{"ast_type": "Raise"},
			want: "raise",
		},
		{
			name: "break",
			tree: map[string]any{"ast_type": "Break"},
			want: "break",
		},
		{
			name: "continue",
			tree: map[string]any{"ast_type": "Continue"},
			want: "continue",
		},
		{
			name: "subscript with index wrapper",
			tree: map[string]any{
				"ast_type": "Subscript",
				"value": map[string]any{
					"ast_type": "Attribute",
					"value":    vyName("self"),
					"attr":     "balances",
				},
				"slice": map[string]any{
					"ast_type": "Index",
					"value":    vyName("addr"),
				},
			},
			want: "self.balances[addr]",
		},
		{
			name: "subscript with direct slice",
			tree: map[string]any{
				"ast_type": "Subscript",
				"value":    vyName("amounts"),
				"slice":    vyInt(3),
			},
			want: "amounts[3]",
		},
		{
			name: "list",
			tree: map[string]any{
				"ast_type": "List",
				"elements": []any{vyInt(1), vyInt(2)},
			},
			want: "[1, 2]",
		},
		{
			name: "hex literal",
			tree: map[string]any{
				"ast_type": "Hex",
				"value":    "0xdeadbeef",
			},
			want: "0xdeadbeef",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := printStatement(t, tc.tree); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
