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

package util_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/util"
)

func fakeCompiler(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler script is a POSIX shell script")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fake-compiler")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake compiler script: %v", err)
	}

	return path
}

func TestShellExecuteCapturesStdout(t *testing.T) {
	bin := fakeCompiler(t, `echo hello-from-compiler`)

	result, err := util.ShellExecute(bin, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
	if result.Stdout != "hello-from-compiler\n" {
		t.Errorf("unexpected stdout: %q", result.Stdout)
	}
}

func TestShellExecuteReportsNonZeroExitWithoutError(t *testing.T) {
	bin := fakeCompiler(t, `echo failing 1>&2; exit 1`)

	result, err := util.ShellExecute(bin, nil)
	if err != nil {
		t.Fatalf("a non-zero exit must not surface as a Go error, got: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", result.ExitCode)
	}
	if result.Stderr != "failing\n" {
		t.Errorf("unexpected stderr: %q", result.Stderr)
	}
}

func TestShellExecuteFailsForAMissingBinary(t *testing.T) {
	_, err := util.ShellExecute(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	if err == nil {
		t.Fatal("expected an error for a binary that cannot be found or executed")
	}
}

func TestProbeCompilerVersionExtractsVersionFromStdout(t *testing.T) {
	bin := fakeCompiler(t, `echo "solc, the solidity compiler version 0.8.17+commit.8df45f5f"`)

	v, err := util.ProbeCompilerVersion(bin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "0.8.17" {
		t.Errorf("expected version 0.8.17, got %q", v)
	}
}

func TestProbeCompilerVersionExtractsVersionFromStderr(t *testing.T) {
	bin := fakeCompiler(t, `echo "vyper 0.3.7" 1>&2`)

	v, err := util.ProbeCompilerVersion(bin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "0.3.7" {
		t.Errorf("expected version 0.3.7, got %q", v)
	}
}

func TestProbeCompilerVersionFailsWhenNoVersionTokenAppears(t *testing.T) {
	bin := fakeCompiler(t, `echo "no version info here"`)

	_, err := util.ProbeCompilerVersion(bin)

	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.CompilerNoVersion {
		t.Fatalf("expected a CompilerNoVersion error, got %v", err)
	}
}
