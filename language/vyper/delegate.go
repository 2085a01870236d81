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

// Package vyper implements the language.Delegate for Vyper's
// `vyper -f ast` JSON output.
//
// Unlike solc, vyper's AST JSON wraps the actual module tree under an
// outer {"contract_name": ..., "ast": {...}} envelope, and individual nodes
// carry no native id field the way Solidity's do. This package strips the
// envelope at load time (the core only ever traverses/mutates/prints the
// inner "ast" Module node) and assigns ids synthetically via
// jsonast.SyntheticIDMaker, rebuilt once per loaded tree.
package vyper

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
	"github.com/go-gremlins/mutagremlins/preferences"
	"github.com/go-gremlins/mutagremlins/printer"
	"github.com/go-gremlins/mutagremlins/util"
)

const fileExtension = ".vy"

// Delegate implements language.Delegate for Vyper.
type Delegate struct {
	mutators mutator.Factory[jsonast.Node]
	printers printer.NodePrinterFactory
	finders  commenter.NodeFinderFactory
	commentr commenter.CommenterFactory
	namer    jsonast.Namer
}

// NewDelegate builds the Vyper language.Delegate.
func NewDelegate() *Delegate {
	return &Delegate{
		mutators: NewMutatorFactory(),
		printers: NewNodePrinterFactory(),
		finders:  NewNodeFinderFactory(),
		commentr: NewCommenterFactory(),
		namer: jsonast.FuncNamer{Fn: func(node *jsonast.Node) (string, bool) {
			tag, ok := jsonast.TypeTag(node, "ast_type")
			if !ok || tag != "FunctionDef" {
				return "", false
			}

			return jsonast.StringField(node, "name")
		}},
	}
}

// Implements implements language.Delegate.
func (d *Delegate) Implements() language.Language { return language.Vyper }

// FileExtension implements language.Delegate.
func (d *Delegate) FileExtension() string { return fileExtension }

// DefaultCompilerSettings implements language.Delegate.
func (d *Delegate) DefaultCompilerSettings() *preferences.Preferences {
	p := preferences.New()
	p.SetString(preferences.KeyCompiler, "vyper")
	p.SetString(preferences.KeyRootPath, ".")

	return p
}

// FileIsLanguageSourceFile implements language.Delegate.
func (d *Delegate) FileIsLanguageSourceFile(fileName string, _ *preferences.Preferences) bool {
	return strings.EqualFold(filepath.Ext(fileName), fileExtension)
}

// envelope reports whether value is vyper's {"contract_name", "ast"}
// top-level shape, and returns the inner ast.Module value when it is.
func envelope(value any) (any, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, ok := m["contract_name"]; !ok {
		return nil, false
	}
	inner, ok := m["ast"]
	if !ok {
		return nil, false
	}

	return inner, true
}

// JSONIsLanguageAST implements language.Delegate.
func (d *Delegate) JSONIsLanguageAST(value any) bool {
	inner, ok := envelope(value)
	if !ok {
		return false
	}
	m, ok := inner.(map[string]any)
	if !ok {
		return false
	}
	tag, ok := m["ast_type"].(string)

	return ok && tag == "Module"
}

func compilerBinary(prefs *preferences.Preferences) string {
	if prefs != nil {
		if v, ok := prefs.GetString(preferences.KeyCompiler); ok && v != "" {
			return v
		}
	}

	return "vyper"
}

// ConvertSourceFileToAST implements language.Delegate, invoking vyper -f ast
// over fileName.
func (d *Delegate) ConvertSourceFileToAST(fileName string, prefs *preferences.Preferences) (language.SuperAST, error) {
	if _, err := util.ProbeCompilerVersion(compilerBinary(prefs)); err != nil {
		return language.SuperAST{}, err
	}

	args := []string{"-f", "ast"}
	if prefs != nil {
		if rootPath, ok := prefs.GetString(preferences.KeyRootPath); ok && rootPath != "" {
			args = append(args, "-p", rootPath)
		}
	}
	args = append(args, fileName)

	result, err := util.ShellExecute(compilerBinary(prefs), args)
	if err != nil {
		return language.SuperAST{}, errs.Wrap(errs.SourceDoesNotCompile, fileName, err)
	}
	if result.ExitCode != 0 {
		return language.SuperAST{}, errs.New(errs.SourceDoesNotCompile, result.Stderr)
	}

	var decoded any
	if err := json.Unmarshal([]byte(result.Stdout), &decoded); err != nil {
		return language.SuperAST{}, errs.Wrap(errs.JSONParse, fileName, err)
	}

	return d.ValueAsSuperAST(decoded)
}

// RecoverAST implements language.Delegate.
func (d *Delegate) RecoverAST(ast language.SuperAST) (*jsonast.Node, error) {
	if ast.Lang != language.Vyper {
		return nil, errs.New(errs.ASTTypeNotSupported, ast.Lang.String())
	}

	return ast.Root, nil
}

// ValueAsSuperAST implements language.Delegate. It strips the
// {contract_name, ast} envelope, storing only the inner Module node as the
// SuperAST's Root so the rest of the pipeline never has to know the
// envelope exists.
func (d *Delegate) ValueAsSuperAST(value any) (language.SuperAST, error) {
	if !d.JSONIsLanguageAST(value) {
		return language.SuperAST{}, errs.New(errs.UnrecognizedJSON, "not a Vyper Module")
	}
	inner, _ := envelope(value)

	return language.SuperAST{Lang: language.Vyper, Root: jsonast.NewRoot(inner)}, nil
}

// MutatorFactory implements language.Delegate.
func (d *Delegate) MutatorFactory() mutator.Factory[jsonast.Node] { return d.mutators }

// NodePermitter implements language.Delegate.
func (d *Delegate) NodePermitter(rules *permissions.Permissions) permissions.Permit[jsonast.Node] {
	return jsonast.NewPermitter(rules, "ast_type", d.namer)
}

// NodeIDMaker implements language.Delegate. Vyper's AST carries no native
// id field, so ids are assigned by a pre-order walk of root, rebuilt for
// every freshly loaded/cloned tree.
func (d *Delegate) NodeIDMaker(root *jsonast.Node) jsonast.Id {
	return jsonast.NewSyntheticIDMaker(root)
}

// Namer implements language.Delegate.
func (d *Delegate) Namer() jsonast.Namer { return d.namer }

// NodePrinterFactory implements language.Delegate.
func (d *Delegate) NodePrinterFactory() printer.NodePrinterFactory { return d.printers }

// NodeFinderFactory implements language.Delegate.
func (d *Delegate) NodeFinderFactory() commenter.NodeFinderFactory { return d.finders }

// CommenterFactory implements language.Delegate.
func (d *Delegate) CommenterFactory() commenter.CommenterFactory { return d.commentr }

// MutantCompiles implements language.Delegate.
func (d *Delegate) MutantCompiles(fileName string, prefs *preferences.Preferences) bool {
	args := []string{}
	if prefs != nil {
		if rootPath, ok := prefs.GetString(preferences.KeyRootPath); ok && rootPath != "" {
			args = append(args, "-p", rootPath)
		}
	}
	args = append(args, fileName)

	result, err := util.ShellExecute(compilerBinary(prefs), args)
	if err != nil {
		return false
	}

	return result.ExitCode == 0
}

var _ language.Delegate = (*Delegate)(nil)
