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

// Package printer implements the streaming, line-flow pretty-printing
// engine shared by every language: a column-budget-aware writer plus the
// generic visitor that drives per-node NodePrinter implementations over it.
//
// The engine itself knows nothing about Solidity or Vyper grammar; each
// language supplies a NodePrinterFactory (see language/solidity and
// language/vyper) that dispatches on the node's type tag.
package printer

import (
	"io"
	"strings"
)

const (
	// DefaultColumnLimit is the default column budget before
	// WriteFlowableText wraps to a new line.
	DefaultColumnLimit = 150

	// DefaultIndentWidth is the default number of spaces one indent level
	// adds.
	DefaultIndentWidth = 4
)

// PrettyPrinter tracks indentation depth and the current line's column
// position while node printers write tokens through it to an io.Writer.
type PrettyPrinter struct {
	w io.Writer

	indentWidth int
	columnLimit int

	indentLevel int
	column      int

	// err latches the first write error so callers of the many small
	// Write* methods (which do not return an error, mirroring the
	// original's infallible-looking call sites) can check it once at the
	// end via Err.
	err error
}

// New creates a PrettyPrinter writing to w with the given column budget and
// indent width. A zero columnLimit/indentWidth falls back to the package
// defaults.
func New(w io.Writer, columnLimit, indentWidth int) *PrettyPrinter {
	if columnLimit <= 0 {
		columnLimit = DefaultColumnLimit
	}
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}

	return &PrettyPrinter{w: w, columnLimit: columnLimit, indentWidth: indentWidth}
}

// Err returns the first write error encountered, if any.
func (p *PrettyPrinter) Err() error { return p.err }

func (p *PrettyPrinter) raw(s string) {
	if p.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err

		return
	}
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

// Indent increases the indentation level by one.
func (p *PrettyPrinter) Indent() { p.indentLevel++ }

// Outdent decreases the indentation level by one, a no-op at level 0.
func (p *PrettyPrinter) Outdent() {
	if p.indentLevel > 0 {
		p.indentLevel--
	}
}

// Column reports the current 0-based column on the active line.
func (p *PrettyPrinter) Column() int { return p.column }

// AtLineStart reports whether nothing beyond the current indentation has
// been written on the current line.
func (p *PrettyPrinter) AtLineStart() bool { return p.column <= p.indentLevel*p.indentWidth }

// WriteToken writes s verbatim, with no surrounding whitespace.
func (p *PrettyPrinter) WriteToken(s string) { p.raw(s) }

// WriteTokens writes each of toks verbatim, back to back.
func (p *PrettyPrinter) WriteTokens(toks ...string) {
	for _, t := range toks {
		p.raw(t)
	}
}

// WriteSpace writes a single space.
func (p *PrettyPrinter) WriteSpace() { p.raw(" ") }

// WriteSpaces writes n spaces.
func (p *PrettyPrinter) WriteSpaces(n int) {
	if n > 0 {
		p.raw(strings.Repeat(" ", n))
	}
}

// WriteNewline writes a newline and resets the column, then writes the
// current indent so the next token lands already indented.
func (p *PrettyPrinter) WriteNewline() {
	p.raw("\n")
	p.WriteIndent()
}

// WriteIndent writes indentLevel * indentWidth spaces, without a preceding
// newline. Node printers call this directly when they need to align a
// continuation without starting a fresh logical line.
func (p *PrettyPrinter) WriteIndent() {
	p.WriteSpaces(p.indentLevel * p.indentWidth)
}

// WriteFlowableText writes s, inserting a newline-plus-indent before it
// instead of a single space when doing so would exceed the column budget.
// This is used for comma-separated lists (arguments, parameters) that
// should wrap rather than run arbitrarily long.
func (p *PrettyPrinter) WriteFlowableText(s string) {
	if !p.AtLineStart() && p.column+1+len(s) > p.columnLimit {
		p.WriteNewline()
	} else if !p.AtLineStart() {
		p.WriteSpace()
	}
	p.raw(s)
}
