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

// Package errs provides the unified error taxonomy used across the
// mutation-generation pipeline.
//
// Every fatal condition the pipeline can raise is represented by a single
// Error type carrying a Kind discriminator, instead of a zoo of unrelated
// error types. Callers that care about a specific failure mode should
// switch on errors.As + Kind rather than on the concrete type.
package errs

import "fmt"

// Kind discriminates the category of failure represented by an Error.
type Kind int

// The kinds of errors the pipeline can produce.
const (
	// IO indicates a file read/write/mkdir failure.
	IO Kind = iota

	// JSONParse indicates the AST file is not well-formed JSON.
	JSONParse

	// UnrecognizedJSON indicates well-formed JSON that does not conform to
	// any supported language's AST shape.
	UnrecognizedJSON

	// LanguageNotRecognized indicates neither the source-file nor the
	// AST-file test succeeded for any registered delegate.
	LanguageNotRecognized

	// LanguageNotSupported indicates a name present in a config that does
	// not correspond to any registered language.
	LanguageNotSupported

	// ASTTypeNotSupported indicates a SuperAST variant was handed to a
	// delegate that does not own it.
	ASTTypeNotSupported

	// NoMutableNode indicates that, after counting, every requested
	// mutation kind has zero mutable candidates.
	NoMutableNode

	// MutationAlgorithmNotSupported indicates a requested mutation kind is
	// not implementable for the target language.
	MutationAlgorithmNotSupported

	// SourceDoesNotCompile indicates the source, or a mutant under
	// validation, failed to compile.
	SourceDoesNotCompile

	// CompilerNoVersion indicates the compiler version probe produced
	// nothing parseable.
	CompilerNoVersion

	// ConfigFileBadExtension indicates a config file path does not carry
	// the expected extension.
	ConfigFileBadExtension

	// ConfigFileNotSupported indicates the config file could not be read
	// or parsed at all.
	ConfigFileNotSupported

	// ConfigFileMissingRequiredKey indicates a required key is absent from
	// a config file.
	ConfigFileMissingRequiredKey

	// ConfigFileUnsupportedLanguage indicates the language key names a
	// language unknown to the tool.
	ConfigFileUnsupportedLanguage
)

var kindText = map[Kind]string{
	IO:                            "I/O error",
	JSONParse:                     "JSON parse error",
	UnrecognizedJSON:              "unrecognized JSON element",
	LanguageNotRecognized:         "unable to determine language from input file",
	LanguageNotSupported:          "language not supported",
	ASTTypeNotSupported:           "language does not support this AST type",
	NoMutableNode:                 "AST does not contain any mutable node for requested mutations",
	MutationAlgorithmNotSupported: "language does not support mutation algorithm",
	SourceDoesNotCompile:          "source file would not compile",
	CompilerNoVersion:             "compiler does not report its version number",
	ConfigFileBadExtension:        "configuration file does not have the correct extension",
	ConfigFileNotSupported:        "configuration file not supported",
	ConfigFileMissingRequiredKey:  "configuration file missing required key",
	ConfigFileUnsupportedLanguage: "configuration file contains an invalid value for the language key",
}

func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}

	return "unknown error"
}

// Error is the single error type produced by the pipeline. Detail carries
// the offending path, name, or value, and Err optionally wraps the
// underlying cause (e.g. the os or json error that triggered IO/JSONParse).
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

// New creates an Error of the given Kind with a detail string.
func New(k Kind, detail string) *Error {
	return &Error{Kind: k, Detail: detail}
}

// Wrap creates an Error of the given Kind, wrapping an underlying error.
func Wrap(k Kind, detail string, err error) *Error {
	return &Error{Kind: k, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. This lets
// callers write errors.Is(err, errs.New(errs.NoMutableNode, "")) without
// caring about Detail/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}
