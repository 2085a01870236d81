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

package solidity

import (
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/printer"
)

type variableDeclarationStatementPrinter struct{ factory printer.NodePrinterFactory }

func (vs *variableDeclarationStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	decls := arrayField(node, "declarations")
	if len(decls) == 1 {
		printChild(p, vs.factory, childNode(decls, 0))
	} else if len(decls) > 1 {
		// Tuple assignment; a nil slot is an omitted component.
		p.WriteToken("(")
		for i, d := range decls {
			if i > 0 {
				p.WriteToken(", ")
			}
			if d != nil {
				printChild(p, vs.factory, childNode(decls, i))
			}
		}
		p.WriteToken(")")
	}
	if init, ok := m["initialValue"]; ok && init != nil {
		p.WriteToken(" = ")
		printChild(p, vs.factory, jsonast.NewRoot(init))
	}
	p.WriteToken(";")
}
func (vs *variableDeclarationStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (vs *variableDeclarationStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type forStatementPrinter struct{ factory printer.NodePrinterFactory }

func (fs *forStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("for (")
	if init, ok := m["initializationExpression"]; ok && init != nil {
		// The initializer is a statement node and prints its own ";".
		printChild(p, fs.factory, jsonast.NewRoot(init))
	} else {
		p.WriteToken(";")
	}
	if cond, ok := m["condition"]; ok && cond != nil {
		p.WriteSpace()
		printChild(p, fs.factory, jsonast.NewRoot(cond))
	}
	p.WriteToken(";")
	if loop, ok := m["loopExpression"].(map[string]any); ok {
		// The loop expression is an ExpressionStatement; print its inner
		// expression alone so no trailing ";" appears before ")".
		if expr, ok := loop["expression"]; ok {
			p.WriteSpace()
			printChild(p, fs.factory, jsonast.NewRoot(expr))
		}
	}
	p.WriteToken(") ")
	if body, ok := m["body"]; ok && body != nil {
		printChild(p, fs.factory, jsonast.NewRoot(body))
	}
}
func (fs *forStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (fs *forStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type whileStatementPrinter struct{ factory printer.NodePrinterFactory }

func (ws *whileStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("while (")
	if cond, ok := m["condition"]; ok {
		printChild(p, ws.factory, jsonast.NewRoot(cond))
	}
	p.WriteToken(") ")
	if body, ok := m["body"]; ok && body != nil {
		printChild(p, ws.factory, jsonast.NewRoot(body))
	}
}
func (ws *whileStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ws *whileStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type doWhileStatementPrinter struct{ factory printer.NodePrinterFactory }

func (ds *doWhileStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("do ")
	if body, ok := m["body"]; ok && body != nil {
		printChild(p, ds.factory, jsonast.NewRoot(body))
	}
	p.WriteToken(" while (")
	if cond, ok := m["condition"]; ok {
		printChild(p, ds.factory, jsonast.NewRoot(cond))
	}
	p.WriteToken(");")
}
func (ds *doWhileStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ds *doWhileStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type keywordStatementPrinter struct{ keyword string }

func (ks keywordStatementPrinter) PrintNode(p *printer.PrettyPrinter, _ *jsonast.Node) {
	p.WriteToken(ks.keyword)
}
func (ks keywordStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ks keywordStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type emitStatementPrinter struct{ factory printer.NodePrinterFactory }

func (es *emitStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("emit ")
	if call, ok := m["eventCall"]; ok {
		printChild(p, es.factory, jsonast.NewRoot(call))
	}
	p.WriteToken(";")
}
func (es *emitStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (es *emitStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type revertStatementPrinter struct{ factory printer.NodePrinterFactory }

func (rs *revertStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("revert ")
	if call, ok := m["errorCall"]; ok {
		printChild(p, rs.factory, jsonast.NewRoot(call))
	}
	p.WriteToken(";")
}
func (rs *revertStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (rs *revertStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type tryStatementPrinter struct{ factory printer.NodePrinterFactory }

func (ts *tryStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("try ")
	if call, ok := m["externalCall"]; ok {
		printChild(p, ts.factory, jsonast.NewRoot(call))
	}
	// clauses[0] is the success path; solc gives it an empty errorName
	// just like a bare "catch", so the position decides the keyword.
	clauses := arrayField(node, "clauses")
	for i := range clauses {
		p.WriteSpace()
		if i == 0 {
			printSuccessClause(p, ts.factory, childNode(clauses, i))
		} else {
			printChild(p, ts.factory, childNode(clauses, i))
		}
	}
}

func printSuccessClause(p *printer.PrettyPrinter, factory printer.NodePrinterFactory, clause *jsonast.Node) {
	m, _ := clause.Get().(map[string]any)
	if params, ok := m["parameters"].(map[string]any); ok {
		if list, _ := params["parameters"].([]any); len(list) > 0 {
			p.WriteToken("returns ")
			printChild(p, factory, jsonast.NewRoot(params))
			p.WriteSpace()
		}
	}
	if block, ok := m["block"]; ok && block != nil {
		printChild(p, factory, jsonast.NewRoot(block))
	}
}
func (ts *tryStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ts *tryStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type tryCatchClausePrinter struct{ factory printer.NodePrinterFactory }

func (tc *tryCatchClausePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("catch ")
	if errName, _ := m["errorName"].(string); errName != "" {
		p.WriteToken(errName)
	}
	if params, ok := m["parameters"].(map[string]any); ok {
		if list, _ := params["parameters"].([]any); len(list) > 0 {
			printChild(p, tc.factory, jsonast.NewRoot(params))
			p.WriteSpace()
		}
	}
	if block, ok := m["block"]; ok && block != nil {
		printChild(p, tc.factory, jsonast.NewRoot(block))
	}
}
func (tc *tryCatchClausePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (tc *tryCatchClausePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}
