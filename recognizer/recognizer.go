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

// Package recognizer classifies an input file as either a language's source
// file or a previously-produced AST JSON file, by trying each registered
// language.Delegate in turn, and loads it into a language.SuperAST.
package recognizer

import (
	"encoding/json"

	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/preferences"
	"github.com/spf13/afero"
)

// Recognizer loads a file through the filesystem abstraction fs, trying
// each registered delegate until one claims the file.
type Recognizer struct {
	fs       afero.Fs
	registry *language.Registry
}

// New creates a Recognizer backed by fs (use afero.NewOsFs() in production,
// afero.NewMemMapFs() in tests) and registry.
func New(fs afero.Fs, registry *language.Registry) *Recognizer {
	return &Recognizer{fs: fs, registry: registry}
}

// Load classifies fileName and returns its AST: if fileName is a source
// file for some registered language, its delegate compiles it; if it is
// already an AST JSON file for some registered language, it is parsed and
// wrapped directly.
// Load classifies fileName and returns its AST. prefs overrides the
// matching delegate's default compiler settings when non-nil.
func (r *Recognizer) Load(fileName string, prefs *preferences.Preferences) (language.Delegate, language.SuperAST, error) {
	for _, d := range r.registry.All() {
		effective := prefs
		if effective == nil {
			effective = d.DefaultCompilerSettings()
		}
		if d.FileIsLanguageSourceFile(fileName, effective) {
			superAST, err := d.ConvertSourceFileToAST(fileName, effective)

			return d, superAST, err
		}
	}

	data, err := afero.ReadFile(r.fs, fileName)
	if err != nil {
		return nil, language.SuperAST{}, errs.Wrap(errs.IO, fileName, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, language.SuperAST{}, errs.Wrap(errs.JSONParse, fileName, err)
	}

	for _, d := range r.registry.All() {
		if d.JSONIsLanguageAST(value) {
			superAST, err := d.ValueAsSuperAST(value)

			return d, superAST, err
		}
	}

	return nil, language.SuperAST{}, errs.New(errs.LanguageNotRecognized, fileName)
}
