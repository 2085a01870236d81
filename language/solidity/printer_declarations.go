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

type importDirectivePrinter struct{}

func (importDirectivePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	file, _ := m["file"].(string)
	if alias, ok := m["unitAlias"].(string); ok && alias != "" {
		p.WriteTokens("import \"", file, "\" as ", alias, ";")
	} else {
		p.WriteTokens("import \"", file, "\";")
	}
}
func (importDirectivePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (importDirectivePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type inheritanceSpecifierPrinter struct{ factory printer.NodePrinterFactory }

func (is *inheritanceSpecifierPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if base, ok := m["baseName"]; ok {
		printChild(p, is.factory, jsonast.NewRoot(base))
	}
	if args, ok := m["arguments"].([]any); ok {
		p.WriteToken("(")
		for i := range args {
			if i > 0 {
				p.WriteToken(", ")
			}
			printChild(p, is.factory, childNode(args, i))
		}
		p.WriteToken(")")
	}
}
func (is *inheritanceSpecifierPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (is *inheritanceSpecifierPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type usingForDirectivePrinter struct{ factory printer.NodePrinterFactory }

func (uf *usingForDirectivePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("using ")
	if lib, ok := m["libraryName"]; ok && lib != nil {
		printChild(p, uf.factory, jsonast.NewRoot(lib))
	}
	p.WriteToken(" for ")
	if tn, ok := m["typeName"]; ok && tn != nil {
		printChild(p, uf.factory, jsonast.NewRoot(tn))
	} else {
		p.WriteToken("*")
	}
	p.WriteToken(";")
}
func (uf *usingForDirectivePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (uf *usingForDirectivePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type modifierDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (md *modifierDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	name, _ := m["name"].(string)
	p.WriteTokens("modifier ", name)
	if params, ok := m["parameters"].(map[string]any); ok {
		if list, _ := params["parameters"].([]any); len(list) > 0 {
			printChild(p, md.factory, jsonast.NewRoot(params))
		} else {
			p.WriteToken("()")
		}
	}
	if body, ok := m["body"]; ok && body != nil {
		p.WriteSpace()
		printChild(p, md.factory, jsonast.NewRoot(body))
	} else {
		p.WriteToken(";")
	}
}
func (md *modifierDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (md *modifierDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type modifierInvocationPrinter struct{ factory printer.NodePrinterFactory }

func (mi *modifierInvocationPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if name, ok := m["modifierName"]; ok {
		printChild(p, mi.factory, jsonast.NewRoot(name))
	}
	if args, ok := m["arguments"].([]any); ok {
		p.WriteToken("(")
		for i := range args {
			if i > 0 {
				p.WriteToken(", ")
			}
			printChild(p, mi.factory, childNode(args, i))
		}
		p.WriteToken(")")
	}
}
func (mi *modifierInvocationPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (mi *modifierInvocationPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type eventDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (ed *eventDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	name, _ := m["name"].(string)
	p.WriteTokens("event ", name)
	if params, ok := m["parameters"].(map[string]any); ok {
		printChild(p, ed.factory, jsonast.NewRoot(params))
	} else {
		p.WriteToken("()")
	}
	if anon, ok := m["anonymous"].(bool); ok && anon {
		p.WriteToken(" anonymous")
	}
	p.WriteToken(";")
}
func (ed *eventDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ed *eventDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type errorDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (ed *errorDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	name, _ := m["name"].(string)
	p.WriteTokens("error ", name)
	if params, ok := m["parameters"].(map[string]any); ok {
		printChild(p, ed.factory, jsonast.NewRoot(params))
	} else {
		p.WriteToken("()")
	}
	p.WriteToken(";")
}
func (ed *errorDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ed *errorDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type structDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (sd *structDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteTokens("struct ", name, " {")
	p.Indent()
	members := arrayField(node, "members")
	for i := range members {
		p.WriteNewline()
		printChild(p, sd.factory, childNode(members, i))
		p.WriteToken(";")
	}
	p.Outdent()
	p.WriteNewline()
	p.WriteToken("}")
}
func (sd *structDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (sd *structDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type enumDefinitionPrinter struct{ factory printer.NodePrinterFactory }

func (ed *enumDefinitionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteTokens("enum ", name, " {")
	members := arrayField(node, "members")
	for i := range members {
		if i > 0 {
			p.WriteToken(",")
		}
		p.WriteSpace()
		printChild(p, ed.factory, childNode(members, i))
	}
	p.WriteToken(" }")
}
func (ed *enumDefinitionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ed *enumDefinitionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type enumValuePrinter struct{}

func (enumValuePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteToken(name)
}
func (enumValuePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (enumValuePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type mappingPrinter struct{ factory printer.NodePrinterFactory }

func (mp *mappingPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("mapping(")
	if key, ok := m["keyType"]; ok {
		printChild(p, mp.factory, jsonast.NewRoot(key))
	}
	p.WriteToken(" => ")
	if value, ok := m["valueType"]; ok {
		printChild(p, mp.factory, jsonast.NewRoot(value))
	}
	p.WriteToken(")")
}
func (mp *mappingPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (mp *mappingPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type arrayTypeNamePrinter struct{ factory printer.NodePrinterFactory }

func (at *arrayTypeNamePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if base, ok := m["baseType"]; ok {
		printChild(p, at.factory, jsonast.NewRoot(base))
	}
	p.WriteToken("[")
	if length, ok := m["length"]; ok && length != nil {
		printChild(p, at.factory, jsonast.NewRoot(length))
	}
	p.WriteToken("]")
}
func (at *arrayTypeNamePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (at *arrayTypeNamePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

// userDefinedTypeNamePrinter handles both the pre-0.8 flat "name" form and
// the current nested "pathNode" form solc emits for user-defined types.
type userDefinedTypeNamePrinter struct{}

func (userDefinedTypeNamePrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if path, ok := m["pathNode"].(map[string]any); ok {
		if name, ok := path["name"].(string); ok {
			p.WriteToken(name)

			return
		}
	}
	if name, ok := m["name"].(string); ok {
		p.WriteToken(name)
	}
}
func (userDefinedTypeNamePrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (userDefinedTypeNamePrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type identifierPathPrinter struct{}

func (identifierPathPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	name, _ := jsonast.StringField(node, "name")
	p.WriteToken(name)
}
func (identifierPathPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (identifierPathPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type indexAccessPrinter struct{ factory printer.NodePrinterFactory }

func (ia *indexAccessPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if base, ok := m["baseExpression"]; ok {
		printChild(p, ia.factory, jsonast.NewRoot(base))
	}
	p.WriteToken("[")
	if index, ok := m["indexExpression"]; ok && index != nil {
		printChild(p, ia.factory, jsonast.NewRoot(index))
	}
	p.WriteToken("]")
}
func (ia *indexAccessPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ia *indexAccessPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type conditionalPrinter struct{ factory printer.NodePrinterFactory }

func (cp *conditionalPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if cond, ok := m["condition"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(cond))
	}
	p.WriteToken(" ? ")
	if t, ok := m["trueExpression"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(t))
	}
	p.WriteToken(" : ")
	if f, ok := m["falseExpression"]; ok {
		printChild(p, cp.factory, jsonast.NewRoot(f))
	}
}
func (cp *conditionalPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (cp *conditionalPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type newExpressionPrinter struct{ factory printer.NodePrinterFactory }

func (ne *newExpressionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	p.WriteToken("new ")
	if tn, ok := m["typeName"]; ok {
		printChild(p, ne.factory, jsonast.NewRoot(tn))
	}
}
func (ne *newExpressionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (ne *newExpressionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type elementaryTypeNameExpressionPrinter struct{ factory printer.NodePrinterFactory }

func (et *elementaryTypeNameExpressionPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if tn, ok := m["typeName"].(map[string]any); ok {
		printChild(p, et.factory, jsonast.NewRoot(tn))
	} else if name, ok := m["typeName"].(string); ok {
		// Pre-0.6 ASTs inline the type name as a bare string.
		p.WriteToken(name)
	}
}
func (et *elementaryTypeNameExpressionPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (et *elementaryTypeNameExpressionPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}

type functionCallOptionsPrinter struct{ factory printer.NodePrinterFactory }

func (fo *functionCallOptionsPrinter) PrintNode(p *printer.PrettyPrinter, node *jsonast.Node) {
	m, _ := node.Get().(map[string]any)
	if expr, ok := m["expression"]; ok {
		printChild(p, fo.factory, jsonast.NewRoot(expr))
	}
	names, _ := m["names"].([]any)
	options := arrayField(node, "options")
	p.WriteToken("{")
	for i := range options {
		if i > 0 {
			p.WriteToken(", ")
		}
		if i < len(names) {
			if name, ok := names[i].(string); ok {
				p.WriteTokens(name, ": ")
			}
		}
		printChild(p, fo.factory, childNode(options, i))
	}
	p.WriteToken("}")
}
func (fo *functionCallOptionsPrinter) PrintChildren(*jsonast.Node) bool             { return false }
func (fo *functionCallOptionsPrinter) OnExit(*printer.PrettyPrinter, *jsonast.Node) {}
