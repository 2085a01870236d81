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

// Package configfile reads and writes .mgnx files: a per-file record of
// which language, source file, and mutation settings to use, so a mutation
// run can be repeated byte-for-byte without retyping every flag.
//
// .mgnx is the renamed successor of the original tool's .morph file; the
// shape (required "language"/"filename", optional "num-mutants"/"seed"/
// "mutations"/"all-mutations"/"compiler-details"/"functions") is unchanged.
package configfile

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/preferences"
	"github.com/spf13/afero"
)

// Extension is the required extension for a config file.
const Extension = ".mgnx"

const (
	keyLanguage        = "language"
	keyFilename        = "filename"
	keyCompilerDetails = "compiler-details"
	keyNumMutants       = "num-mutants"
	keySeed             = "seed"
	keyMutations        = "mutations"
	keyAllMutations     = "all-mutations"
	keyFunctions        = "functions"
)

// DefaultNumMutants is used when a config file omits num-mutants.
const DefaultNumMutants = 5

// Details is everything a .mgnx file can carry.
type Details struct {
	Language         language.Language
	HasLanguage      bool
	Filename         string
	NumMutants       int64
	Seed             uint64
	HasSeed          bool
	Mutations        []mutation.Type
	AllMutations     bool
	CompilerDetails  *preferences.Preferences
	HasCompilerDetails bool
	Functions        []string
}

// Load reads and parses the .mgnx file at path through fs.
func Load(fs afero.Fs, path string) (*Details, error) {
	if strings.ToLower(filepath.Ext(path)) != Extension {
		return nil, errs.New(errs.ConfigFileBadExtension, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errs.Wrap(errs.ConfigFileNotSupported, path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(errs.ConfigFileNotSupported, path, err)
	}

	var missing []string
	if _, ok := raw[keyLanguage]; !ok {
		missing = append(missing, keyLanguage)
	}
	if _, ok := raw[keyFilename]; !ok {
		missing = append(missing, keyFilename)
	}
	if len(missing) > 0 {
		return nil, errs.New(errs.ConfigFileMissingRequiredKey, strings.Join(missing, ", "))
	}

	details := &Details{NumMutants: DefaultNumMutants}

	langStr, _ := raw[keyLanguage].(string)
	lang, ok := language.Parse(langStr)
	if !ok {
		return nil, errs.New(errs.ConfigFileUnsupportedLanguage, langStr)
	}
	details.Language = lang
	details.HasLanguage = true

	details.Filename, _ = raw[keyFilename].(string)

	if v, ok := raw[keyNumMutants]; ok {
		if f, ok := v.(float64); ok {
			details.NumMutants = int64(f)
		}
	}

	if v, ok := raw[keySeed]; ok {
		if f, ok := v.(float64); ok {
			details.Seed = uint64(f)
			details.HasSeed = true
		}
	}

	if v, ok := raw[keyMutations]; ok {
		if arr, ok := v.([]any); ok {
			for _, item := range arr {
				s, ok := item.(string)
				if !ok {
					continue
				}
				if t, ok := mutation.Parse(s); ok {
					details.Mutations = append(details.Mutations, t)
				}
			}
		}
	}

	if v, ok := raw[keyAllMutations]; ok {
		details.AllMutations, _ = v.(bool)
	}

	if v, ok := raw[keyCompilerDetails]; ok {
		if m, ok := v.(map[string]any); ok {
			encoded, err := json.Marshal(m)
			if err == nil {
				var p preferences.Preferences
				if err := json.Unmarshal(encoded, &p); err == nil {
					details.CompilerDetails = &p
					details.HasCompilerDetails = true
				}
			}
		}
	}

	if v, ok := raw[keyFunctions]; ok {
		if arr, ok := v.([]any); ok {
			for _, item := range arr {
				if s, ok := item.(string); ok {
					details.Functions = append(details.Functions, s)
				}
			}
		}
	}

	return details, nil
}

// Save writes details to path through fs, as pretty-printed JSON. path must
// carry the .mgnx extension.
func Save(fs afero.Fs, path string, details *Details) error {
	if strings.ToLower(filepath.Ext(path)) != Extension {
		return errs.New(errs.ConfigFileBadExtension, path)
	}

	out := map[string]any{
		keyFilename: details.Filename,
		keyNumMutants: details.NumMutants,
	}
	if details.HasLanguage {
		out[keyLanguage] = details.Language.String()
	}
	if details.HasSeed {
		out[keySeed] = details.Seed
	}
	if len(details.Mutations) > 0 {
		names := make([]string, len(details.Mutations))
		for i, m := range details.Mutations {
			names[i] = m.String()
		}
		out[keyMutations] = names
	}
	if details.AllMutations {
		out[keyAllMutations] = true
	}
	if details.HasCompilerDetails && details.CompilerDetails != nil {
		out[keyCompilerDetails] = details.CompilerDetails
	}
	if len(details.Functions) > 0 {
		out[keyFunctions] = details.Functions
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errs.Wrap(errs.IO, path, err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errs.Wrap(errs.IO, path, err)
	}

	return nil
}
