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
	"github.com/go-gremlins/mutagremlins/printer"
)

type forPrinter struct{ factory printer.NodePrinterFactory }

func (fp *forPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("for ")
	if target, ok := m["target"]; ok {
		printChild(p, fp.factory, jsonast.NewRoot(target))
	}
	p.WriteToken(" in ")
	if iter, ok := m["iter"]; ok {
		printChild(p, fp.factory, jsonast.NewRoot(iter))
	}
	p.WriteToken(":")
	p.Indent()
	body := arrayField(node, "body")
	for i := range body {
		p.WriteNewline()
		printChild(p, fp.factory, childNode(body, i))
	}
	p.Outdent()
}
func (fp *forPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (fp *forPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type assertPrinter struct{ factory printer.NodePrinterFactory }

func (ap *assertPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("assert ")
	if test, ok := m["test"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(test))
	}
	if msg, ok := m["msg"]; ok && msg != nil {
		p.WriteToken(", ")
		printChild(p, ap.factory, jsonast.NewRoot(msg))
	}
}
func (ap *assertPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *assertPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type raisePrinter struct{ factory printer.NodePrinterFactory }

func (rp *raisePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("raise")
	if exc, ok := m["exc"]; ok && exc != nil {
		p.WriteSpace()
		printChild(p, rp.factory, jsonast.NewRoot(exc))
	}
}
func (rp *raisePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (rp *raisePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type keywordPrinter struct{ keyword string }

func (kp keywordPrinter) PrintNode(p *printer.PrettyPrinter, _ *jsonast.Node) {
	p.WriteToken(kp.keyword)
}
func (kp keywordPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (kp keywordPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type strPrinter struct{}

func (strPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	v, _ := m["value"].(string)
	p.WriteTokens("\"", v, "\"")
}
func (strPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (strPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type hexPrinter struct{}

func (hexPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	v, _ := m["value"].(string)
	p.WriteToken(v)
}
func (hexPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (hexPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// subscriptPrinter renders indexing like `self.balances[addr]`. Vyper's
// older AST wraps the index in an Index node under "slice"; the newer one
// puts the expression directly under "slice".
type subscriptPrinter struct{ factory printer.NodePrinterFactory }

func (sp *subscriptPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if value, ok := m["value"]; ok {
		printChild(p, sp.factory, jsonast.NewRoot(value))
	}
	p.WriteToken("[")
	if slice, ok := m["slice"]; ok && slice != nil {
		if sm, ok := slice.(map[string]any); ok {
			if tag, _ := sm["ast_type"].(string); tag == "Index" {
				if inner, ok := sm["value"]; ok {
					printChild(p, sp.factory, jsonast.NewRoot(inner))
				}
			} else {
				printChild(p, sp.factory, jsonast.NewRoot(slice))
			}
		}
	}
	p.WriteToken("]")
}
func (sp *subscriptPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (sp *subscriptPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type listPrinter struct{ factory printer.NodePrinterFactory }

func (lp *listPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	elements := arrayField(node, "elements")
	p.WriteToken("[")
	for i := range elements {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, lp.factory, childNode(elements, i))
	}
	p.WriteToken("]")
}
func (lp *listPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (lp *listPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}
