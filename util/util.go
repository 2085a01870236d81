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

// Package util holds small shared helpers used across language delegates:
// shell-executing a compiler binary and probing its version.
package util

import (
	"bytes"
	"os/exec"
	"regexp"
	"runtime"

	"github.com/go-gremlins/mutagremlins/errs"
)

// ShellResult is the outcome of ShellExecute.
type ShellResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ShellExecute runs command with arguments, the way a language delegate
// invokes its compiler (solc, vyper) to parse/compile a source file. On
// Windows the command is run through "cmd /C" so PATH-resolved .bat/.cmd
// shims work; elsewhere it is exec'd directly.
func ShellExecute(command string, arguments []string) (ShellResult, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		args := append([]string{"/C", command}, arguments...)
		cmd = exec.Command("cmd", args...)
	} else {
		cmd = exec.Command(command, arguments...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ShellResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return result, nil
		}

		return result, err
	}

	return result, nil
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// ProbeCompilerVersion invokes binary with --version and extracts the first
// dotted-number token from its output, the way a delegate checks a
// compiler is usable before the first real invocation. It returns a
// errs.CompilerNoVersion error if no such token appears anywhere in
// stdout/stderr.
func ProbeCompilerVersion(binary string) (string, error) {
	result, err := ShellExecute(binary, []string{"--version"})
	if err != nil {
		return "", errs.Wrap(errs.CompilerNoVersion, binary, err)
	}

	if v := versionPattern.FindString(result.Stdout); v != "" {
		return v, nil
	}
	if v := versionPattern.FindString(result.Stderr); v != "" {
		return v, nil
	}

	return "", errs.New(errs.CompilerNoVersion, binary)
}
