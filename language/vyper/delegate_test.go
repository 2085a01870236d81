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

package vyper_test

import (
	"testing"

	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/language/vyper"
	"github.com/go-gremlins/mutagremlins/preferences"
)

func TestDelegateImplementsAndExtension(t *testing.T) {
	d := vyper.NewDelegate()

	if d.Implements() != language.Vyper {
		t.Errorf("expected language.Vyper, got %v", d.Implements())
	}
	if d.FileExtension() != ".vy" {
		t.Errorf("expected .vy, got %q", d.FileExtension())
	}
}

func TestFileIsLanguageSourceFile(t *testing.T) {
	d := vyper.NewDelegate()

	cases := map[string]bool{
		"Token.vy":  true,
		"Token.VY":  true,
		"Token.sol": false,
		"Token":     false,
	}
	for name, want := range cases {
		if got := d.FileIsLanguageSourceFile(name, nil); got != want {
			t.Errorf("FileIsLanguageSourceFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestJSONIsLanguageASTStripsEnvelope(t *testing.T) {
	d := vyper.NewDelegate()

	wrapped := map[string]any{
		"contract_name": "Token",
		"ast":           map[string]any{"ast_type": "Module", "body": []any{}},
	}
	if !d.JSONIsLanguageAST(wrapped) {
		t.Error("expected the envelope-wrapped Module to be recognized")
	}
	if d.JSONIsLanguageAST(map[string]any{"ast_type": "Module"}) {
		t.Error("expected a bare Module with no envelope to be rejected")
	}
	if d.JSONIsLanguageAST(map[string]any{"contract_name": "Token", "ast": map[string]any{"ast_type": "FunctionDef"}}) {
		t.Error("expected a non-Module inner ast_type to be rejected")
	}
}

func TestValueAsSuperASTStripsEnvelope(t *testing.T) {
	d := vyper.NewDelegate()

	wrapped := map[string]any{
		"contract_name": "Token",
		"ast":           map[string]any{"ast_type": "Module", "body": []any{}},
	}
	sup, err := d.ValueAsSuperAST(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sup.Lang != language.Vyper {
		t.Errorf("expected language.Vyper, got %v", sup.Lang)
	}
	if tag, ok := jsonast.TypeTag(sup.Root, "ast_type"); !ok || tag != "Module" {
		t.Errorf("expected the stored root to be the unwrapped Module, got %q", tag)
	}
	if _, stillWrapped := sup.Root.Get().(map[string]any)["contract_name"]; stillWrapped {
		t.Error("expected the envelope's contract_name key to be stripped from the stored root")
	}
}

func TestRecoverASTRejectsWrongLanguage(t *testing.T) {
	d := vyper.NewDelegate()

	wrongLang := language.SuperAST{Lang: language.Solidity, Root: jsonast.NewRoot(map[string]any{})}
	if _, err := d.RecoverAST(wrongLang); err == nil {
		t.Error("expected RecoverAST to reject a SuperAST tagged for another language")
	}
}

func TestDefaultCompilerSettings(t *testing.T) {
	d := vyper.NewDelegate()
	p := d.DefaultCompilerSettings()

	if v, ok := p.GetString(preferences.KeyCompiler); !ok || v != "vyper" {
		t.Errorf("expected default compiler vyper, got %q", v)
	}
}

func TestNodeIDMakerAssignsSyntheticIDs(t *testing.T) {
	d := vyper.NewDelegate()
	root := jsonast.NewRoot(map[string]any{
		"ast_type": "Module",
		"body": []any{
			map[string]any{"ast_type": "FunctionDef", "name": "f"},
		},
	})
	idMaker := d.NodeIDMaker(root)

	id, ok := idMaker.GetID(root)
	if !ok || id == 0 {
		t.Errorf("expected the root to get a nonzero synthetic id, got %v, %v", id, ok)
	}
}

func TestNamerResolvesFunctionDefNameOnly(t *testing.T) {
	d := vyper.NewDelegate()
	namer := d.Namer()

	fn := jsonast.NewRoot(map[string]any{"ast_type": "FunctionDef", "name": "transfer"})
	if name, ok := namer.GetName(fn); !ok || name != "transfer" {
		t.Errorf("expected name 'transfer', got %q, %v", name, ok)
	}

	other := jsonast.NewRoot(map[string]any{"ast_type": "Module"})
	if _, ok := namer.GetName(other); ok {
		t.Error("expected a non-FunctionDef node to report no name")
	}
}
