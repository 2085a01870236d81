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

package configfile_test

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/go-gremlins/mutagremlins/configfile"
	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/mutation"
)

func TestLoadRejectsWrongExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := configfile.Load(fs, "run.json")

	var e *errs.Error
	if err == nil {
		t.Fatalf("expected an error for a non-.mgnx path")
	}
	if !assertAs(t, err, &e) || e.Kind != errs.ConfigFileBadExtension {
		t.Errorf("expected ConfigFileBadExtension, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := configfile.Load(fs, "missing.mgnx")
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadMissingRequiredKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "run.mgnx", []byte(`{}`), 0o644)

	_, err := configfile.Load(fs, "run.mgnx")
	var e *errs.Error
	if !assertAs(t, err, &e) || e.Kind != errs.ConfigFileMissingRequiredKey {
		t.Fatalf("expected ConfigFileMissingRequiredKey, got %v", err)
	}
}

func TestLoadUnsupportedLanguage(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "run.mgnx", []byte(`{"language":"rust","filename":"a.rs"}`), 0o644)

	_, err := configfile.Load(fs, "run.mgnx")
	var e *errs.Error
	if !assertAs(t, err, &e) || e.Kind != errs.ConfigFileUnsupportedLanguage {
		t.Fatalf("expected ConfigFileUnsupportedLanguage, got %v", err)
	}
}

func TestLoadFullDetails(t *testing.T) {
	fs := afero.NewMemMapFs()
	contents := `{
		"language": "vyper",
		"filename": "Token.vy",
		"num-mutants": 3,
		"seed": 42,
		"mutations": ["integer", "if-statement"],
		"all-mutations": false,
		"functions": ["transfer"],
		"compiler-details": {"compiler": "vyper", "root-path": "."}
	}`
	_ = afero.WriteFile(fs, "run.mgnx", []byte(contents), 0o644)

	details, err := configfile.Load(fs, "run.mgnx")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if details.Language != language.Vyper || !details.HasLanguage {
		t.Errorf("expected language Vyper, got %v (has=%v)", details.Language, details.HasLanguage)
	}
	if details.Filename != "Token.vy" {
		t.Errorf("expected filename Token.vy, got %q", details.Filename)
	}
	if details.NumMutants != 3 {
		t.Errorf("expected num-mutants 3, got %d", details.NumMutants)
	}
	if !details.HasSeed || details.Seed != 42 {
		t.Errorf("expected seed 42, got %d (has=%v)", details.Seed, details.HasSeed)
	}
	if len(details.Mutations) != 2 || details.Mutations[0] != mutation.Integer || details.Mutations[1] != mutation.IfStatement {
		t.Errorf("unexpected mutations: %v", details.Mutations)
	}
	if len(details.Functions) != 1 || details.Functions[0] != "transfer" {
		t.Errorf("unexpected functions: %v", details.Functions)
	}
	if !details.HasCompilerDetails || details.CompilerDetails == nil {
		t.Fatalf("expected compiler-details to be parsed")
	}
	if v, ok := details.CompilerDetails.GetString("compiler"); !ok || v != "vyper" {
		t.Errorf("expected nested compiler detail to round-trip, got %q, %v", v, ok)
	}
}

func TestLoadDefaultsNumMutants(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "run.mgnx", []byte(`{"language":"solidity","filename":"a.sol"}`), 0o644)

	details, err := configfile.Load(fs, "run.mgnx")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if details.NumMutants != configfile.DefaultNumMutants {
		t.Errorf("expected default num-mutants %d, got %d", configfile.DefaultNumMutants, details.NumMutants)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	details := &configfile.Details{
		Language:    language.Solidity,
		HasLanguage: true,
		Filename:    "Token.sol",
		NumMutants:  7,
		Seed:        99,
		HasSeed:     true,
		Mutations:   []mutation.Type{mutation.Integer},
		Functions:   []string{"mint"},
	}

	if err := configfile.Save(fs, "out.mgnx", details); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := configfile.Load(fs, "out.mgnx")
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}

	if reloaded.Filename != details.Filename || reloaded.NumMutants != details.NumMutants {
		t.Errorf("round trip mismatch: got %+v, want %+v", reloaded, details)
	}
	if !reloaded.HasSeed || reloaded.Seed != 99 {
		t.Errorf("expected seed to round-trip, got %d (has=%v)", reloaded.Seed, reloaded.HasSeed)
	}
}

func TestSaveRejectsWrongExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := configfile.Save(fs, "out.json", &configfile.Details{})
	var e *errs.Error
	if !assertAs(t, err, &e) || e.Kind != errs.ConfigFileBadExtension {
		t.Fatalf("expected ConfigFileBadExtension, got %v", err)
	}
}

func assertAs(t *testing.T, err error, target **errs.Error) bool {
	t.Helper()
	if e, ok := err.(*errs.Error); ok {
		*target = e

		return true
	}

	return false
}
