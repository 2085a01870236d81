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

import "github.com/go-gremlins/mutagremlins/jsonast"

// NodePrinter formats one AST node. PrintChildren reports whether the
// PrettyPrintVisitor's own traversal should still descend into node's
// children after PrintNode returns; a printer that writes its children
// itself (to interleave syntax like commas and parens in the right places)
// returns false.
type NodePrinter interface {
	// PrintNode writes node's own formatting, but not necessarily its
	// children, to p.
	PrintNode(p *PrettyPrinter, node *jsonast.Node)

	// PrintChildren reports whether the driving visitor should traverse
	// node's children after PrintNode.
	PrintChildren(node *jsonast.Node) bool

	// OnExit runs after node's children have been printed (whether by
	// this printer or by the driving visitor), for closing syntax like a
	// block's closing brace.
	OnExit(p *PrettyPrinter, node *jsonast.Node)
}

// NodePrinterFactory resolves a node to the NodePrinter that knows how to
// format it, by inspecting the node's type tag.
type NodePrinterFactory interface {
	// PrinterFor returns the NodePrinter for node, or (nil, false) if no
	// printer is registered for its type tag.
	PrinterFor(node *jsonast.Node) (NodePrinter, bool)
}

// FactoryFunc adapts a plain function to NodePrinterFactory.
type FactoryFunc func(node *jsonast.Node) (NodePrinter, bool)

// PrinterFor implements NodePrinterFactory.
func (f FactoryFunc) PrinterFor(node *jsonast.Node) (NodePrinter, bool) { return f(node) }

// MapFactory dispatches on a node's type tag through a plain map, the
// common case for both Solidity and Vyper: one NodePrinter per type tag,
// built once and reused for every node of that type.
type MapFactory struct {
	TypeKey  string
	Printers map[string]NodePrinter
}

// PrinterFor implements NodePrinterFactory.
func (f *MapFactory) PrinterFor(node *jsonast.Node) (NodePrinter, bool) {
	tag, ok := jsonast.TypeTag(node, f.TypeKey)
	if !ok {
		return nil, false
	}
	p, ok := f.Printers[tag]

	return p, ok
}

// BaseNodePrinter implements NodePrinter with sensible defaults (descend
// into children, no closing syntax), so a concrete printer only has to
// override PrintNode, or also OnExit for block-like nodes.
type BaseNodePrinter struct{}

func (BaseNodePrinter) PrintNode(*PrettyPrinter, *jsonast.Node) {}
func (BaseNodePrinter) PrintChildren(*jsonast.Node) bool        { return true }
func (BaseNodePrinter) OnExit(*PrettyPrinter, *jsonast.Node)    {}
