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

// Package solidity implements the language.Delegate for Solidity's
// solc --ast-compact-json output.
package solidity

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

const fileExtension = ".sol"

// Delegate implements language.Delegate for Solidity.
type Delegate struct {
	mutators mutator.Factory[jsonast.Node]
	printers printer.NodePrinterFactory
	finders  commenter.NodeFinderFactory
	commentr commenter.CommenterFactory
	namer    jsonast.Namer
}

// NewDelegate builds the Solidity language.Delegate.
func NewDelegate() *Delegate {
	return &Delegate{
		mutators: NewMutatorFactory(),
		printers: NewNodePrinterFactory(),
		finders:  NewNodeFinderFactory(),
		commentr: NewCommenterFactory(),
		namer:    jsonast.FieldNamer{Key: "name"},
	}
}

// Implements implements language.Delegate.
func (d *Delegate) Implements() language.Language { return language.Solidity }

// FileExtension implements language.Delegate.
func (d *Delegate) FileExtension() string { return fileExtension }

// DefaultCompilerSettings implements language.Delegate.
func (d *Delegate) DefaultCompilerSettings() *preferences.Preferences {
	p := preferences.New()
	p.SetString(preferences.KeyCompiler, "solc")
	p.SetString(preferences.KeyBasePath, ".")
	p.SetArray(preferences.KeyIncludePaths, []any{})
	p.SetArray(preferences.KeyAllowPaths, []any{"."})
	p.SetArray(preferences.KeyRemappings, []any{})

	return p
}

// FileIsLanguageSourceFile implements language.Delegate.
func (d *Delegate) FileIsLanguageSourceFile(fileName string, _ *preferences.Preferences) bool {
	return strings.EqualFold(filepath.Ext(fileName), fileExtension)
}

// JSONIsLanguageAST implements language.Delegate.
func (d *Delegate) JSONIsLanguageAST(value any) bool {
	m, ok := value.(map[string]any)
	if !ok {
		return false
	}
	tag, ok := m["nodeType"].(string)

	return ok && tag == "SourceUnit"
}

func compilerBinary(prefs *preferences.Preferences) string {
	if prefs != nil {
		if v, ok := prefs.GetString(preferences.KeyCompiler); ok && v != "" {
			return v
		}
	}

	return "solc"
}

// ConvertSourceFileToAST implements language.Delegate, invoking solc with
// --ast-compact-json over fileName.
func (d *Delegate) ConvertSourceFileToAST(fileName string, prefs *preferences.Preferences) (language.SuperAST, error) {
	if _, err := util.ProbeCompilerVersion(compilerBinary(prefs)); err != nil {
		return language.SuperAST{}, err
	}

	args := []string{"--ast-compact-json"}
	if prefs != nil {
		if basePath, ok := prefs.GetString(preferences.KeyBasePath); ok && basePath != "" {
			args = append(args, "--base-path", basePath)
		}
		if allow, ok := prefs.GetArray(preferences.KeyAllowPaths); ok && len(allow) > 0 {
			paths := make([]string, 0, len(allow))
			for _, p := range allow {
				if s, ok := p.(string); ok {
					paths = append(paths, s)
				}
			}
			args = append(args, "--allow-paths", strings.Join(paths, ","))
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

	jsonText := extractASTJSON(result.Stdout)

	var decoded any
	if err := json.Unmarshal([]byte(jsonText), &decoded); err != nil {
		return language.SuperAST{}, errs.Wrap(errs.JSONParse, fileName, err)
	}

	return d.ValueAsSuperAST(decoded)
}

// extractASTJSON strips solc's "======= file.sol =======\nJSON: " banner
// lines, keeping only the trailing JSON object solc prints per source file.
func extractASTJSON(stdout string) string {
	idx := strings.Index(stdout, "{")
	if idx < 0 {
		return stdout
	}

	return stdout[idx:]
}

// RecoverAST implements language.Delegate.
func (d *Delegate) RecoverAST(ast language.SuperAST) (*jsonast.Node, error) {
	if ast.Lang != language.Solidity {
		return nil, errs.New(errs.ASTTypeNotSupported, ast.Lang.String())
	}

	return ast.Root, nil
}

// ValueAsSuperAST implements language.Delegate.
func (d *Delegate) ValueAsSuperAST(value any) (language.SuperAST, error) {
	if !d.JSONIsLanguageAST(value) {
		return language.SuperAST{}, errs.New(errs.UnrecognizedJSON, "not a Solidity SourceUnit")
	}

	return language.SuperAST{Lang: language.Solidity, Root: jsonast.NewRoot(value)}, nil
}

// MutatorFactory implements language.Delegate.
func (d *Delegate) MutatorFactory() mutator.Factory[jsonast.Node] { return d.mutators }

// NodePermitter implements language.Delegate.
func (d *Delegate) NodePermitter(rules *permissions.Permissions) permissions.Permit[jsonast.Node] {
	return jsonast.NewPermitter(rules, "nodeType", d.namer)
}

// NodeIDMaker implements language.Delegate. Solidity's compiler stamps every
// node with a native "id" field, so no synthetic id walk is needed.
func (d *Delegate) NodeIDMaker(*jsonast.Node) jsonast.Id {
	return jsonast.FieldIDMaker{Key: "id"}
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
	args := []string{"--bin"}
	if prefs != nil {
		if basePath, ok := prefs.GetString(preferences.KeyBasePath); ok && basePath != "" {
			args = append(args, "--base-path", basePath)
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
