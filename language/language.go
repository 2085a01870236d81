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

// Package language defines the Delegate contract each supported smart
// contract language (Solidity, Vyper) implements once, and the registry the
// recognizer and generator use to find the right delegate for a file
// without hard-coding a language list.
package language

import (
	"fmt"

	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
	"github.com/go-gremlins/mutagremlins/preferences"
	"github.com/go-gremlins/mutagremlins/printer"
	"github.com/go-gremlins/mutagremlins/visit"
)

// Language identifies a supported smart-contract language.
type Language int

const (
	// Solidity identifies the Solidity language.
	Solidity Language = iota
	// Vyper identifies the Vyper language.
	Vyper
)

func (l Language) String() string {
	switch l {
	case Solidity:
		return "solidity"
	case Vyper:
		return "vyper"
	default:
		return fmt.Sprintf("language.Language(%d)", int(l))
	}
}

// Parse converts a lowercase language name (as used on the CLI and in
// .mgnx files) back to a Language.
func Parse(s string) (Language, bool) {
	switch s {
	case "solidity":
		return Solidity, true
	case "vyper":
		return Vyper, true
	default:
		return 0, false
	}
}

// SuperAST wraps a recognized JSON AST with the language that owns it, so
// downstream code (the generator, the pretty-print and mutate commands) can
// carry "an AST of some language" as a single value without a type switch
// leaking into every call site.
type SuperAST struct {
	Lang Language
	Root *jsonast.Node
}

// Delegate is the full set of language-specific operations the generator
// and recognizer need. A language package (language/solidity,
// language/vyper) implements this once against jsonast.Node.
type Delegate interface {
	// Implements returns the Language this delegate owns.
	Implements() Language

	// FileExtension returns the canonical source file extension (with
	// leading dot), e.g. ".sol".
	FileExtension() string

	// DefaultCompilerSettings returns the Preferences a generated .mgnx
	// file should carry by default for this language's compiler.
	DefaultCompilerSettings() *preferences.Preferences

	// FileIsLanguageSourceFile reports whether the given file looks like
	// source code (not an AST) in this language.
	FileIsLanguageSourceFile(fileName string, prefs *preferences.Preferences) bool

	// JSONIsLanguageAST reports whether the decoded JSON value conforms
	// to this language's AST shape.
	JSONIsLanguageAST(value any) bool

	// ConvertSourceFileToAST invokes the language's compiler to produce a
	// SuperAST for the program in fileName.
	ConvertSourceFileToAST(fileName string, prefs *preferences.Preferences) (SuperAST, error)

	// RecoverAST returns the raw jsonast.Node root wrapped by ast, or an
	// error if ast belongs to a different language.
	RecoverAST(ast SuperAST) (*jsonast.Node, error)

	// ValueAsSuperAST validates a decoded JSON value and wraps it as a
	// SuperAST for this language.
	ValueAsSuperAST(value any) (SuperAST, error)

	// MutatorFactory returns this language's mutation.Type -> Mutator
	// resolver.
	MutatorFactory() mutator.Factory[jsonast.Node]

	// NodePermitter builds a permissions.Permit bound to rules, with this
	// language's node-type/name conventions baked in.
	NodePermitter(rules *permissions.Permissions) permissions.Permit[jsonast.Node]

	// NodeIDMaker returns this language's jsonast.Id implementation.
	NodeIDMaker(root *jsonast.Node) jsonast.Id

	// Namer returns this language's jsonast.Namer implementation.
	Namer() jsonast.Namer

	// NodePrinterFactory returns this language's printer.NodePrinterFactory.
	NodePrinterFactory() printer.NodePrinterFactory

	// NodeFinderFactory returns this language's commenter.NodeFinderFactory.
	NodeFinderFactory() commenter.NodeFinderFactory

	// CommenterFactory returns this language's commenter.CommenterFactory.
	CommenterFactory() commenter.CommenterFactory

	// MutantCompiles invokes the language's compiler against fileName and
	// reports whether it accepted the program.
	MutantCompiles(fileName string, prefs *preferences.Preferences) bool
}

// Registry holds every Delegate the tool knows about, in registration
// order; the recognizer tries them in this order when classifying an
// unfamiliar file.
type Registry struct {
	delegates []Delegate
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d to the registry.
func (r *Registry) Register(d Delegate) {
	r.delegates = append(r.delegates, d)
}

// All returns every registered delegate, in registration order.
func (r *Registry) All() []Delegate {
	return r.delegates
}

// For returns the delegate implementing lang, if registered.
func (r *Registry) For(lang Language) (Delegate, bool) {
	for _, d := range r.delegates {
		if d.Implements() == lang {
			return d, true
		}
	}

	return nil, false
}

// NewPathVisitor is a tiny convenience so generator and cmd do not
// need to import visit directly just to build a PathVisitor's dependency.
func NewPathVisitor(d Delegate, rules *permissions.Permissions, root *jsonast.Node) *visit.PathVisitor {
	return visit.NewPathVisitor(d.NodePermitter(rules), d.NodeIDMaker(root))
}
