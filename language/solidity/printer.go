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
	"fmt"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/printer"
)

// printChild renders one sub-node through factory, reusing p so column and
// indent state carry across the call. Node printers that need to interleave
// punctuation (commas, parens) around a list of children call this directly
// instead of letting the driving visitor recurse automatically.
func printChild(p *printer.PrettyPrinter, factory printer.NodePrinterFactory, child *jsonast.Node) {
	_ = printer.PrintTree(p, factory, child)
}

// arrayField returns the []any stored under key on node, or nil.
func arrayField(node *jsonast.Node, key string) []any {
	m, ok := node.Get().(map[string]any)
	if !ok {
		return nil
	}
	arr, _ := m[key].([]any)

	return arr
}

// childNode wraps the value at arr[i] as a jsonast.Node whose Set writes
// back into arr, mirroring jsonast.Node.childOfSlice for values this
// package needs to print out of their natural traversal order.
func childNode(arr []any, i int) *jsonast.Node {
	root := jsonast.NewRoot(arr)

	return root.Children()[i]
}

type sourceUnitPrinter struct{}

func (sourceUnitPrinter) PrintNode(*printer.PrettyPrinter, *jsonast.Node) {}
func (sourceUnitPrinter) PrintChildren(*jsonast.Node) bool                { return false }

func (p sourceUnitPrinter) printNodeWithFactory(pp *printer.PrettyPrinter, factory printer.NodePrinterFactory, node *jsonast.Node) {
	nodes := arrayField(node, "nodes")
	for i := range nodes {
		if i > 0 {
			pp.WriteNewline()
			pp.WriteNewline()
		}
		printChild(pp, factory, childNode(nodes, i))
	}
}

func (sourceUnitPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type pragmaPrinter struct{}

func (pragmaPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	literals := arrayField(node, "literals")
	parts := make([]string, 0, len(literals))
	for _, l := range literals {
		if s, ok := l.(string); ok {
			parts = append(parts, s)
		}
	}
	p.WriteToken("pragma ")
	for i, s := range parts {
		if i > 0 {
			p.WriteSpace()
		}
		p.WriteToken(s)
	}
	p.WriteToken(";")
}
func (pragmaPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (pragmaPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type contractDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (cp *contractDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	kind, _ := jsonast.StringField(node, "contractKind")
	if kind == "" {
		kind = "contract"
	}
	if abstract, _ := jsonast.BoolField(node, "abstract"); abstract {
		p.WriteToken("abstract ")
	}
	name, _ := jsonast.StringField(node, "name")
	p.WriteTokens(kind, " ", name)
	bases := arrayField(node, "baseContracts")
	for i := range bases {
		if i == 0 {
			p.WriteToken(" is ")
		} else {
			p.WriteToken(", ")
		}
		printChild(p, cp.factory, childNode(bases, i))
	}
	p.WriteToken(" {")
	p.Indent()
}

func (cp *contractDefinitionPrinter) PrintChildren(*jsonast.Node) bool { return false }

func (cp *contractDefinitionPrinter) printBody(p *printer.PrettyPrinter, node *jsonast.Node) {
	nodes := arrayField(node, "nodes")
	for i := range nodes {
		p.WriteNewline()
		child := childNode(nodes, i)
		printChild(p, cp.factory, child)
		// State variables reuse the VariableDeclaration shape parameters
		// use, so the terminating semicolon belongs to the enclosing
		// contract body, not the declaration printer.
		if tag, _ := jsonast.TypeTag(child, "nodeType"); tag == "VariableDeclaration" {
			p.WriteToken(";")
		}
	}
}

func (cp *contractDefinitionPrinter) OnExit(p *printer.PrettyPrinter, node *jsonast.Node) {
	cp.printBody(p, node)
	p.Outdent()
	p.WriteNewline()
	p.WriteToken("}")
}

type parameterListPrinter struct{ factory printer.NodePrinterFactory }

func (pl *parameterListPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	p.WriteToken("(")
	params := arrayField(node, "parameters")
	for i := range params {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, pl.factory, childNode(params, i))
	}
	p.WriteToken(")")
}
func (pl *parameterListPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (pl *parameterListPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type functionDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (fp *functionDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	kind, _ := m["kind"].(string)
	if kind == "" {
		kind = "function"
	}
	name, _ := m["name"].(string)
	if kind == "function" {
		p.WriteTokens("function ", name)
	} else {
		p.WriteToken(kind)
	}
	if params, ok := m["parameters"].(map[string]any); ok {
		printChild(p, fp.factory, jsonast.NewRoot(params))
	}
	if vis, ok := m["visibility"].(string); ok && vis != "" {
		p.WriteTokens(" ", vis)
	}
	if mut, ok := m["stateMutability"].(string); ok && mut != "" && mut != "nonpayable" {
		p.WriteTokens(" ", mut)
	}
	if virtual, ok := m["virtual"].(bool); ok && virtual {
		p.WriteToken(" virtual")
	}
	if _, ok := m["overrides"].(map[string]any); ok {
		p.WriteToken(" override")
	}
	mods, _ := m["modifiers"].([]any)
	for i := range mods {
		p.WriteSpace()
		printChild(p, fp.factory, childNode(mods, i))
	}
	if ret, ok := m["returnParameters"].(map[string]any); ok {
		if arr, ok := ret["parameters"].([]any); ok && len(arr) > 0 {
			p.WriteToken(" returns ")
			printChild(p, fp.factory, jsonast.NewRoot(ret))
		}
	}
	if body, ok := m["body"]; ok && body != nil {
		p.WriteSpace()
		printChild(p, fp.factory, jsonast.NewRoot(body))
	} else {
		p.WriteToken(";")
	}
}
func (fp *functionDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (fp *functionDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type variableDeclarationPrinter struct{ factory printer.NodePrinterFactory }

func (vp *variableDeclarationPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	typeName, _ := m["typeName"].(map[string]any)
	if typeName != nil {
		if tn, ok := typeName["name"].(string); ok {
			p.WriteToken(tn)
		} else {
			printChild(p, vp.factory, jsonast.NewRoot(typeName))
		}
	}
	if loc, ok := m["storageLocation"].(string); ok && loc != "" && loc != "default" {
		p.WriteTokens(" ", loc)
	}
	if vis, ok := m["visibility"].(string); ok && vis == "public" {
		p.WriteToken(" public")
	}
	switch mut, _ := m["mutability"].(string); mut {
	case "constant":
		p.WriteToken(" constant")
	case "immutable":
		p.WriteToken(" immutable")
	}
	if indexed, ok := m["indexed"].(bool); ok && indexed {
		p.WriteToken(" indexed")
	}
	name, _ := m["name"].(string)
	if name != "" {
		p.WriteTokens(" ", name)
	}
	if value, ok := m["value"]; ok && value != nil {
		p.WriteToken(" = ")
		printChild(p, vp.factory, jsonast.NewRoot(value))
	}
}
func (vp *variableDeclarationPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (vp *variableDeclarationPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type blockPrinter struct{ factory printer.NodePrinterFactory }

func (bp *blockPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	tag, _ := jsonast.TypeTag(node, "nodeType")
	if tag == "UncheckedBlock" {
		p.WriteToken("unchecked ")
	}
	p.WriteToken("{")
	p.Indent()
}
func (bp *blockPrinter) PrintChildren(*jsonast.Node) bool { return false }

func (bp *blockPrinter) OnExit(p *printer.PrettyPrinter, node *jsonast.Node) {
	stmts := arrayField(node, "statements")
	for i := range stmts {
		p.WriteNewline()
		printChild(p, bp.factory, childNode(stmts, i))
	}
	p.Outdent()
	p.WriteNewline()
	p.WriteToken("}")
}

type ifStatementPrinter struct{ factory printer.NodePrinterFactory }

func (ip *ifStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("if (")
	if cond, ok := m["condition"]; ok {
		printChild(p, ip.factory, jsonast.NewRoot(cond))
	}
	p.WriteToken(") ")
	if body, ok := m["trueBody"]; ok {
		printChild(p, ip.factory, jsonast.NewRoot(body))
	}
	if elseBody, ok := m["falseBody"]; ok && elseBody != nil {
		p.WriteToken(" else ")
		printChild(p, ip.factory, jsonast.NewRoot(elseBody))
	}
}
func (ip *ifStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ip *ifStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type expressionStatementPrinter struct{ factory printer.NodePrinterFactory }

func (ep *expressionStatementPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if expr, ok := m["expression"]; ok {
		printChild(p, ep.factory, jsonast.NewRoot(expr))
	}
	p.WriteToken(";")
}
func (ep *expressionStatementPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ep *expressionStatementPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type returnPrinter struct{ factory printer.NodePrinterFactory }

func (rp *returnPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("return")
	if expr, ok := m["expression"]; ok && expr != nil {
		p.WriteSpace()
		printChild(p, rp.factory, jsonast.NewRoot(expr))
	}
	p.WriteToken(";")
}
func (rp *returnPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (rp *returnPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type binaryOperationPrinter struct{ factory printer.NodePrinterFactory }

func (bp *binaryOperationPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["operator"].(string)
	if left, ok := m["leftExpression"]; ok {
		printChild(p, bp.factory, jsonast.NewRoot(left))
	}
	p.WriteTokens(" ", op, " ")
	if right, ok := m["rightExpression"]; ok {
		printChild(p, bp.factory, jsonast.NewRoot(right))
	}
}
func (bp *binaryOperationPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (bp *binaryOperationPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type unaryOperationPrinter struct{ factory printer.NodePrinterFactory }

func (up *unaryOperationPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["operator"].(string)
	prefix, _ := m["prefix"].(bool)
	sub, hasSub := m["subExpression"]
	if prefix {
		p.WriteToken(op)
		if hasSub {
			printChild(p, up.factory, jsonast.NewRoot(sub))
		}
	} else {
		if hasSub {
			printChild(p, up.factory, jsonast.NewRoot(sub))
		}
		p.WriteToken(op)
	}
}
func (up *unaryOperationPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (up *unaryOperationPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type assignmentPrinter struct{ factory printer.NodePrinterFactory }

func (ap *assignmentPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	op, _ := m["operator"].(string)
	if lhs, ok := m["leftHandSide"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(lhs))
	}
	p.WriteTokens(" ", op, " ")
	if rhs, ok := m["rightHandSide"]; ok {
		printChild(p, ap.factory, jsonast.NewRoot(rhs))
	}
}
func (ap *assignmentPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ap *assignmentPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type literalPrinter struct{}

func (literalPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	kind, _ := m["kind"].(string)
	switch kind {
	case "string":
		v, _ := m["value"].(string)
		p.WriteTokens("\"", v, "\"")
	case "bool":
		v, _ := m["value"].(string)
		p.WriteToken(v)
	default:
		switch v := m["value"].(type) {
		case string:
			p.WriteToken(v)
		case float64:
			p.WriteToken(fmt.Sprintf("%v", v))
		case int64:
			p.WriteToken(fmt.Sprintf("%d", v))
		default:
			p.WriteToken(fmt.Sprintf("%v", v))
		}
	}
}
func (literalPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (literalPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type identifierPrinter struct{}

func (identifierPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteToken(name)
}
func (identifierPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (identifierPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type memberAccessPrinter struct{ factory printer.NodePrinterFactory }

func (mp *memberAccessPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if expr, ok := m["expression"]; ok {
		printChild(p, mp.factory, jsonast.NewRoot(expr))
	}
	name, _ := m["memberName"].(string)
	p.WriteTokens(".", name)
}
func (mp *memberAccessPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (mp *memberAccessPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type functionCallPrinter struct{ factory printer.NodePrinterFactory }

func (fc *functionCallPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if expr, ok := m["expression"]; ok {
		printChild(p, fc.factory, jsonast.NewRoot(expr))
	}
	p.WriteToken("(")
	args, _ := m["arguments"].([]any)
	for i := range args {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, fc.factory, childNode(args, i))
	}
	p.WriteToken(")")
}
func (fc *functionCallPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (fc *functionCallPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type tupleExpressionPrinter struct{ factory printer.NodePrinterFactory }

func (tp *tupleExpressionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	components := arrayField(node, "components")
	p.WriteToken("(")
	for i := range components {
		if i > 0 {
			p.WriteToken(", ")
		}
		printChild(p, tp.factory, childNode(components, i))
	}
	p.WriteToken(")")
}
func (tp *tupleExpressionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (tp *tupleExpressionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type elementaryTypeNamePrinter struct{}

func (elementaryTypeNamePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteToken(name)
}
func (elementaryTypeNamePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (elementaryTypeNamePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// commentPrinter renders the synthesized node a mutator's mutator.Result
// asks the commenter package to splice in, one "// text" line.
type commentPrinter struct{}

func (commentPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	text, _ := jsonast.StringField(node, "text")
	p.WriteTokens("// ", text)
}
func (commentPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (commentPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// sourceUnitAdapter exists because sourceUnitPrinter needs the factory to
// print its own "nodes" array but printer.NodePrinter's PrintNode signature
// carries no factory parameter; the MapFactory registers this adapter
// instead of sourceUnitPrinter directly.
type sourceUnitAdapter struct {
	factory printer.NodePrinterFactory
	inner   sourceUnitPrinter
}

func (s *sourceUnitAdapter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	s.inner.printNodeWithFactory(p, s.factory, node)
}
func (s *sourceUnitAdapter) PrintChildren(*jsonast.Node) bool             { return false }
func (s *sourceUnitAdapter) OnExit(p *printer.PrettyPrinter, node *jsonast.Node) {
	s.inner.OnExit(p, node)
}

// NewNodePrinterFactory builds the Solidity printer.NodePrinterFactory,
// dispatching on the "nodeType" discriminator solc's compact-json AST uses.
func NewNodePrinterFactory() printer.NodePrinterFactory {
	factory := &printer.MapFactory{TypeKey: "nodeType", Printers: map[string]printer.NodePrinter{}}

	factory.Printers["SourceUnit"] = &sourceUnitAdapter{factory: factory}
	factory.Printers["PragmaDirective"] = pragmaPrinter{}
	factory.Printers["ContractDefinition"] = &contractDefinitionPrinter{factory: factory}
	factory.Printers["FunctionDefinition"] = &functionDefinitionPrinter{factory: factory}
	factory.Printers["ParameterList"] = &parameterListPrinter{factory: factory}
	factory.Printers["VariableDeclaration"] = &variableDeclarationPrinter{factory: factory}
	factory.Printers["Block"] = &blockPrinter{factory: factory}
	factory.Printers["UncheckedBlock"] = &blockPrinter{factory: factory}
	factory.Printers["IfStatement"] = &ifStatementPrinter{factory: factory}
	factory.Printers["ExpressionStatement"] = &expressionStatementPrinter{factory: factory}
	factory.Printers["Return"] = &returnPrinter{factory: factory}
	factory.Printers["BinaryOperation"] = &binaryOperationPrinter{factory: factory}
	factory.Printers["UnaryOperation"] = &unaryOperationPrinter{factory: factory}
	factory.Printers["Assignment"] = &assignmentPrinter{factory: factory}
	factory.Printers["Literal"] = literalPrinter{}
	factory.Printers["Identifier"] = identifierPrinter{}
	factory.Printers["MemberAccess"] = &memberAccessPrinter{factory: factory}
	factory.Printers["FunctionCall"] = &functionCallPrinter{factory: factory}
	factory.Printers["TupleExpression"] = &tupleExpressionPrinter{factory: factory}
	factory.Printers["ElementaryTypeName"] = elementaryTypeNamePrinter{}
	factory.Printers["VariableDeclarationStatement"] = &variableDeclarationStatementPrinter{factory: factory}
	factory.Printers["ForStatement"] = &forStatementPrinter{factory: factory}
	factory.Printers["WhileStatement"] = &whileStatementPrinter{factory: factory}
	factory.Printers["DoWhileStatement"] = &doWhileStatementPrinter{factory: factory}
	factory.Printers["Break"] = keywordStatementPrinter{keyword: "break;"}
	factory.Printers["Continue"] = keywordStatementPrinter{keyword: "continue;"}
	factory.Printers["PlaceholderStatement"] = keywordStatementPrinter{keyword: "_;"}
	factory.Printers["EmitStatement"] = &emitStatementPrinter{factory: factory}
	factory.Printers["RevertStatement"] = &revertStatementPrinter{factory: factory}
	factory.Printers["TryStatement"] = &tryStatementPrinter{factory: factory}
	factory.Printers["TryCatchClause"] = &tryCatchClausePrinter{factory: factory}
	factory.Printers["ImportDirective"] = importDirectivePrinter{}
	factory.Printers["InheritanceSpecifier"] = &inheritanceSpecifierPrinter{factory: factory}
	factory.Printers["UsingForDirective"] = &usingForDirectivePrinter{factory: factory}
	factory.Printers["ModifierDefinition"] = &modifierDefinitionPrinter{factory: factory}
	factory.Printers["ModifierInvocation"] = &modifierInvocationPrinter{factory: factory}
	factory.Printers["EventDefinition"] = &eventDefinitionPrinter{factory: factory}
	factory.Printers["ErrorDefinition"] = &errorDefinitionPrinter{factory: factory}
	factory.Printers["StructDefinition"] = &structDefinitionPrinter{factory: factory}
	factory.Printers["EnumDefinition"] = &enumDefinitionPrinter{factory: factory}
	factory.Printers["EnumValue"] = enumValuePrinter{}
	factory.Printers["Mapping"] = &mappingPrinter{factory: factory}
	factory.Printers["ArrayTypeName"] = &arrayTypeNamePrinter{factory: factory}
	factory.Printers["UserDefinedTypeName"] = userDefinedTypeNamePrinter{}
	factory.Printers["IdentifierPath"] = identifierPathPrinter{}
	factory.Printers["IndexAccess"] = &indexAccessPrinter{factory: factory}
	factory.Printers["Conditional"] = &conditionalPrinter{factory: factory}
	factory.Printers["NewExpression"] = &newExpressionPrinter{factory: factory}
	factory.Printers["ElementaryTypeNameExpression"] = &elementaryTypeNameExpressionPrinter{factory: factory}
	factory.Printers["FunctionCallOptions"] = &functionCallOptionsPrinter{factory: factory}
	factory.Printers["Comment"] = commentPrinter{}

	return factory
}
