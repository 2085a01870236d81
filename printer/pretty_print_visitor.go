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

package printer

import (
	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/jsonast"
)

// PrettyPrintVisitor drives a NodePrinterFactory over a tree. Each node's
// NodePrinter may ask to print its own children (PrintChildren returning
// false) rather than letting the traverser's ordinary child recursion run,
// which is why this visitor keeps a stack of the active printer per
// in-progress node: VisitChildren consults the printer that PrintNode just
// resolved, and OnExit pops it and calls its closing hook.
type PrettyPrintVisitor struct {
	ast.BaseVisitor[jsonast.Node]

	printer *PrettyPrinter
	factory NodePrinterFactory
	stack   []NodePrinter
}

// NewPrettyPrintVisitor creates a PrettyPrintVisitor writing through p,
// resolving node printers from factory.
func NewPrettyPrintVisitor(p *PrettyPrinter, factory NodePrinterFactory) *PrettyPrintVisitor {
	return &PrettyPrintVisitor{printer: p, factory: factory}
}

// Visit implements ast.Visitor: resolve and run the node's printer.
func (v *PrettyPrintVisitor) Visit(node *jsonast.Node) bool {
	np, ok := v.factory.PrinterFor(node)
	if !ok {
		v.stack = append(v.stack, nil)

		return false
	}
	np.PrintNode(v.printer, node)
	v.stack = append(v.stack, np)

	return false
}

// VisitChildren implements ast.Visitor: only the generic traverser recurses
// into children when the active printer did not claim it will do so
// itself.
func (v *PrettyPrintVisitor) VisitChildren(node *jsonast.Node) bool {
	if len(v.stack) == 0 {
		return true
	}
	np := v.stack[len(v.stack)-1]
	if np == nil {
		return true
	}

	return np.PrintChildren(node)
}

// OnExit implements ast.Visitor: pop the printer pushed in Visit and run
// its closing hook.
func (v *PrettyPrintVisitor) OnExit(node *jsonast.Node) {
	if len(v.stack) == 0 {
		return
	}
	np := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	if np != nil {
		np.OnExit(v.printer, node)
	}
}

// PrintTree renders root through the visitor's printer/factory in a single
// traversal. The caller is responsible for flushing/closing the underlying
// writer.
func PrintTree(p *PrettyPrinter, factory NodePrinterFactory, root *jsonast.Node) error {
	v := NewPrettyPrintVisitor(p, factory)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), v)

	return p.Err()
}
