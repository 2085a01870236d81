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

package printer_test

import (
	"strings"
	"testing"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/printer"
)

// childTaggingPrinter prints its own "tag" field, lets the driving visitor
// recurse automatically into children, and writes a space between siblings
// so the rendered order is observable.
type childTaggingPrinter struct{}

func (childTaggingPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	if !p.AtLineStart() {
		p.WriteSpace()
	}
	tag, _ := jsonast.StringField(node, "tag")
	p.WriteToken(tag)
}
func (childTaggingPrinter) PrintChildren(*jsonast.Node) bool             { return true }
func (childTaggingPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

func TestPrintTreeDescendsAutomaticallyWhenPrintChildrenTrue(t *testing.T) {
	tree := map[string]any{
		"tag": "root",
		"a":   map[string]any{"tag": "child-a"},
		"b":   map[string]any{"tag": "child-b"},
	}
	root := jsonast.NewRoot(tree)
	// Force every node through the same printer regardless of its shape.
	anyFactory := printer.FactoryFunc(func(*jsonast.Node) (printer.NodePrinter, bool) {
		return childTaggingPrinter{}, true
	})

	var buf strings.Builder
	p := printer.New(&buf, 0, 0)

	if err := printer.PrintTree(p, anyFactory, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "root") {
		t.Fatalf("expected output to start with the root's own tag, got %q", got)
	}
	if !strings.Contains(got, "child-a") || !strings.Contains(got, "child-b") {
		t.Errorf("expected both children printed, got %q", got)
	}
}

func TestPrintTreeSkipsUnregisteredNodesButStillDescends(t *testing.T) {
	tree := map[string]any{
		"known":   map[string]any{"tag": "hit"},
		"unknown": map[string]any{"other": "no-tag-field"},
	}
	root := jsonast.NewRoot(tree)
	factory := printer.FactoryFunc(func(node *jsonast.Node) (printer.NodePrinter, bool) {
		if _, ok := jsonast.StringField(node, "tag"); ok {
			return childTaggingPrinter{}, true
		}

		return nil, false
	})

	var buf strings.Builder
	p := printer.New(&buf, 0, 0)

	if err := printer.PrintTree(p, factory, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "hit") {
		t.Errorf("expected the tagged descendant to still be printed, got %q", got)
	}
}
