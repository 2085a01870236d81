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
	"fmt"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/printer"
)

// printChild renders one sub-node through factory, reusing p so column and
// indent state carry across the call, mirroring language/solidity's
// printChild.
func printChild(p *printer.PrettyPrinter, factory printer.NodePrinterFactory, child *jsonast.Node) {
	_ = printer.PrintTree(p, factory, child)
}

func arrayField(node *jsonast.Node, key string) []any {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return nil
	}
	arr, _ := m[key].([]any)

	return arr
}

func childNode(arr []any, i int) *jsonast.Node {
	root := jsonast.NewRoot(arr)

	return root.Children()[i]
}

type modulePrinter struct{ factory printer.NodePrinterFactory }

func (mp *modulePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	body := arrayField(node, "body")
	for i := range body {
		if i > 0 {
			p.WriteNewline()
			p.WriteNewline()
		}
		printChild(p, mp.factory, childNode(body, i))
	}
}
func (mp *modulePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (mp *modulePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type argPrinter struct{}

func (argPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "arg")
	p.WriteToken(name)
	m, _ := node.Get().(map[string]any)
	if ann, ok := m["annotation"].(map[string]any); ok {
		if tn, ok := ann["id"].(string); ok {
			p.WriteTokens(": ", tn)
		}
	}
}
func (argPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (argPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type argumentsPrinter struct{ factory printer.NodePrinterFactory }

func (ap *argumentsPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	p.WriteToken("(")
	args := arrayField(node, "args")
	for i := range args {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, ap.factory, childNode(args, i))
	}
	p.WriteToken(")")
}
func (ap *argumentsPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *argumentsPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type functionDefPrinter struct{ factory printer.NodePrinterFactory }

func (fp *functionDefPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	for _, d := range arrayField(node, "decorator_list") {
		if dm, ok := d.(map[string]any); ok {
			if id, ok := dm["id"].(string); ok {
				p.WriteTokens("@", id)
				p.WriteNewline()
			}
		}
	}
	name, _ := m["name"].(string)
	p.WriteTokens("def ", name)
	// The argument list is printed directly rather than dispatched on its
	// type tag, which is absent or lowercase depending on the AST source.
	p.WriteToken("(")
	if args, ok := m["args"].(map[string]any); ok {
		list, _ := args["args"].([]any)
		for i := range list {
			if i > 0 {
				p.WriteToken(", ")
			}
			argPrinter{}.PrintNode(p, childNode(list, i))
		}
	}
	p.WriteToken(")")
	if ret, ok := m["returns"]; ok && ret != nil {
		p.WriteToken(" -> ")
		printChild(p, fp.factory, jsonast.NewRoot(ret))
	}
	p.WriteToken(":")
	p.Indent()
}
func (fp *functionDefPrinter) PrintChildren(*jsonast.Node) bool { return false }

func (fp *functionDefPrinter) OnExit(p *printer.PrettyPrinter, node *jsonast.Node) {
	body := arrayField(node, "body")
	for i := range body {
		p.WriteNewline()
		printChild(p, fp.factory, childNode(body, i))
	}
	p.Outdent()
}

type annAssignPrinter struct{ factory printer.NodePrinterFactory }

func (aa *annAssignPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if target, ok := m["target"]; ok {
		printChild(p, aa.factory, jsonast.NewRoot(target))
	}
	if ann, ok := m["annotation"].(map[string]any); ok {
		if id, ok := ann["id"].(string); ok {
			p.WriteTokens(": ", id)
		}
	}
	if value, ok := m["value"]; ok && value != nil {
		p.WriteToken(" = ")
		printChild(p, aa.factory, jsonast.NewRoot(value))
	}
}
func (aa *annAssignPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (aa *annAssignPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type assignPrinter struct{ factory printer.NodePrinterFactory }

func (ap *assignPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if target, ok := m["target"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(target))
	}
	p.WriteToken(" = ")
	if value, ok := m["value"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(value))
	}
}
func (ap *assignPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *assignPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type augAssignPrinter struct{ factory printer.NodePrinterFactory }

func (ap *augAssignPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["op"].(string)
	if target, ok := m["target"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(target))
	}
	p.WriteTokens(" ", op, " ")
	if value, ok := m["value"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(value))
	}
}
func (ap *augAssignPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *augAssignPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type ifPrinter struct{ factory printer.NodePrinterFactory }

func (ip *ifPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("if ")
	if test, ok := m["test"]; ok {
		printChild(p, ip.factory, jsonast.NewRoot(test))
	}
	p.WriteToken(":")
	p.Indent()
	body := arrayField(node, "body")
	for i := range body {
		p.WriteNewline()
		printChild(p, ip.factory, childNode(body, i))
	}
	p.Outdent()
	orelse := arrayField(node, "orelse")
	if len(orelse) > 0 {
		p.WriteNewline()
		p.WriteToken("else:")
		p.Indent()
		for i := range orelse {
			p.WriteNewline()
			printChild(p, ip.factory, childNode(orelse, i))
		}
		p.Outdent()
	}
}
func (ip *ifPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ip *ifPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type returnPrinter struct{ factory printer.NodePrinterFactory }

func (rp *returnPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("return")
	if value, ok := m["value"]; ok && value != nil {
		p.WriteSpace()
		printChild(p, rp.factory, jsonast.NewRoot(value))
	}
}
func (rp *returnPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (rp *returnPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type exprPrinter struct{ factory printer.NodePrinterFactory }

func (ep *exprPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if value, ok := m["value"]; ok {
		printChild(p, ep.factory, jsonast.NewRoot(value))
	}
}
func (ep *exprPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ep *exprPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type binOpPrinter struct{ factory printer.NodePrinterFactory }

func (bp *binOpPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["op"].(string)
	if left, ok := m["left"]; ok {
		printChild(p, bp.factory, jsonast.NewRoot(left))
	}
	p.WriteTokens(" ", op, " ")
	if right, ok := m["right"]; ok {
		printChild(p, bp.factory, jsonast.NewRoot(right))
	}
}
func (bp *binOpPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (bp *binOpPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type boolOpPrinter struct{ factory printer.NodePrinterFactory }

func (bp *boolOpPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["op"].(string)
	values := arrayField(node, "values")
	for i := range values {
		if i > 0 {
			p.WriteTokens(" ", op, " ")
		}
		printChild(p, bp.factory, childNode(values, i))
	}
}
func (bp *boolOpPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (bp *boolOpPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type comparePrinter struct{ factory printer.NodePrinterFactory }

func (cp *comparePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["op"].(string)
	if left, ok := m["left"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(left))
	}
	p.WriteTokens(" ", op, " ")
	if right, ok := m["right"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(right))
	}
}
func (cp *comparePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (cp *comparePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type unaryOpPrinter struct{ factory printer.NodePrinterFactory }

func (up *unaryOpPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["op"].(string)
	if op == "not" {
		p.WriteToken("not ")
	} else {
		p.WriteToken(op)
	}
	if operand, ok := m["operand"]; ok {
		printChild(p, up.factory, jsonast.NewRoot(operand))
	}
}
func (up *unaryOpPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (up *unaryOpPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type callPrinter struct{ factory printer.NodePrinterFactory }

func (cp *callPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if fn, ok := m["func"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(fn))
	}
	p.WriteToken("(")
	args, _ := m["args"].([]any)
	for i := range args {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, cp.factory, childNode(args, i))
	}
	p.WriteToken(")")
}
func (cp *callPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (cp *callPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type namePrinter struct{}

func (namePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	id, _ := jsonast.StringField(node, "id")
	p.WriteToken(id)
}
func (namePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (namePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type attributePrinter struct{ factory printer.NodePrinterFactory }

func (ap *attributePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if value, ok := m["value"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(value))
	}
	attr, _ := m["attr"].(string)
	p.WriteTokens(".", attr)
}
func (ap *attributePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *attributePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type intPrinter struct{}

func (intPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	switch v := m["value"].(type) {
	case float64:
		p.WriteToken(fmt.Sprintf("%v", v))
	case int64:
		p.WriteToken(fmt.Sprintf("%d", v))
	default:
		p.WriteToken(fmt.Sprintf("%v", v))
	}
}
func (intPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (intPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type nameConstantPrinter struct{}

func (nameConstantPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	switch v := m["value"].(type) {
	case bool:
		if v {
			p.WriteToken("True")
		} else {
			p.WriteToken("False")
		}
	default:
		p.WriteToken(fmt.Sprintf("%v", v))
	}
}
func (nameConstantPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (nameConstantPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type tuplePrinter struct{ factory printer.NodePrinterFactory }

func (tp *tuplePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	elements := arrayField(node, "elements")
	p.WriteToken("(")
	for i := range elements {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, tp.factory, childNode(elements, i))
	}
	p.WriteToken(")")
}
func (tp *tuplePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (tp *tuplePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// commentPrinter renders the synthesized node a mutator's mutator.Result
// asks the commenter package to splice in, one "# text" line.
type commentPrinter struct{}

func (commentPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	text, _ := jsonast.StringField(node, "text")
	p.WriteTokens("# ", text)
}
func (commentPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (commentPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// NewNodePrinterFactory builds the Vyper printer.NodePrinterFactory,
// dispatching on the "ast_type" discriminator vyper's `-f ast` output uses.
func NewNodePrinterFactory() printer.NodePrinterFactory {
	factory := &printer.MapFactory{TypeKey: "ast_type", Printers: map[string]printer.NodePrinter{}}

	factory.Printers["Module"] = &modulePrinter{factory: factory}
	factory.Printers["FunctionDef"] = &functionDefPrinter{factory: factory}
	factory.Printers["Arguments"] = &argumentsPrinter{factory: factory}
	factory.Printers["Arg"] = argPrinter{}
	factory.Printers["AnnAssign"] = &annAssignPrinter{factory: factory}
	factory.Printers["Assign"] = &assignPrinter{factory: factory}
	factory.Printers["AugAssign"] = &augAssignPrinter{factory: factory}
	factory.Printers["If"] = &ifPrinter{factory: factory}
	factory.Printers["Return"] = &returnPrinter{factory: factory}
	factory.Printers["Expr"] = &exprPrinter{factory: factory}
	factory.Printers["BinOp"] = &binOpPrinter{factory: factory}
	factory.Printers["BoolOp"] = &boolOpPrinter{factory: factory}
	factory.Printers["Compare"] = &comparePrinter{factory: factory}
	factory.Printers["UnaryOp"] = &unaryOpPrinter{factory: factory}
	factory.Printers["Call"] = &callPrinter{factory: factory}
	factory.Printers["Name"] = namePrinter{}
	factory.Printers["Attribute"] = &attributePrinter{factory: factory}
	factory.Printers["Int"] = intPrinter{}
	factory.Printers["NameConstant"] = nameConstantPrinter{}
	factory.Printers["Tuple"] = &tuplePrinter{factory: factory}
	factory.Printers["For"] = &forPrinter{factory: factory}
	factory.Printers["Assert"] = &assertPrinter{factory: factory}
	factory.Printers["Raise"] = &raisePrinter{factory: factory}
	factory.Printers["Pass"] = keywordPrinter{keyword: "pass"}
	factory.Printers["Break"] = keywordPrinter{keyword: "break"}
	factory.Printers["Continue"] = keywordPrinter{keyword: "continue"}
	factory.Printers["Str"] = strPrinter{}
	factory.Printers["Hex"] = hexPrinter{}
	factory.Printers["Bytes"] = hexPrinter{}
	factory.Printers["Subscript"] = &subscriptPrinter{factory: factory}
	factory.Printers["Index"] = &exprPrinter{factory: factory}
	factory.Printers["List"] = &listPrinter{factory: factory}
	factory.Printers["Comment"] = commentPrinter{}

	return factory
}
