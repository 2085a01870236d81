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

package cmd

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/go-gremlins/mutagremlins/cmd/internal/flags"
	"github.com/go-gremlins/mutagremlins/configuration"
	"github.com/go-gremlins/mutagremlins/generator"
	"github.com/go-gremlins/mutagremlins/internal/exclusion"
	"github.com/go-gremlins/mutagremlins/internal/execution"
	"github.com/go-gremlins/mutagremlins/pkg/log"
)

type prettyPrintCmd struct {
	cmd *cobra.Command
}

const prettyPrintCommandName = "pretty-print"

func newPrettyPrintCmd(ctx context.Context) (*prettyPrintCmd, error) {
	cmd := &cobra.Command{
		Use:   prettyPrintCommandName,
		Args:  cobra.NoArgs,
		Short: "Render a source file or JSON AST back to source, unmutated",
		Long:  prettyPrintLongExplainer(),
		RunE:  runPrettyPrint(ctx),
	}

	if err := setPrettyPrintFlagsOnCmd(cmd); err != nil {
		return nil, err
	}

	return &prettyPrintCmd{cmd: cmd}, nil
}

func prettyPrintLongExplainer() string {
	return heredoc.Doc(`
		Parses one or more source (or AST) files and writes them back out
		unchanged, as a way to check that a file round-trips through the
		pretty-printer cleanly before it is used as mutate input.
	`)
}

func setPrettyPrintFlagsOnCmd(cmd *cobra.Command) error {
	normalize(cmd)

	fls := []*flags.Flag{
		{Name: paramOutputDirectory, CfgKey: configuration.MutateOutputKey, Shorthand: "o", DefaultV: "output", Usage: "directory to receive rendered files"},
		{Name: paramStdout, DefaultV: false, Usage: "write rendered output to stdout instead of files"},
		{Name: paramSoliditySolc, CfgKey: configuration.SolidityCompilerKey, DefaultV: "solc", Usage: "path to the Solidity compiler binary"},
		{Name: paramSolidityBasePath, DefaultV: ".", Usage: "solc --base-path"},
		{Name: paramVyperCompiler, CfgKey: configuration.VyperCompilerKey, DefaultV: "vyper", Usage: "path to the Vyper compiler binary"},
		{Name: paramVyperRootPath, DefaultV: ".", Usage: "vyper -p root path"},
	}
	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return err
		}
	}

	cmd.Flags().StringArray(paramFileNames, nil, "source (or AST) file to render; repeatable, required")
	cmd.Flags().StringArray(paramExcludeFiles, nil, "regex of file paths to skip; repeatable")
	cmd.Flags().StringArray(paramSolidityInclude, nil, "solc --include-path; repeatable")
	cmd.Flags().StringArray(paramSolidityAllow, nil, "solc --allow-paths; repeatable")
	cmd.Flags().StringArray(paramSolidityRemaps, nil, "solc import remapping (old=new); repeatable")

	_ = cmd.MarkFlagRequired(paramFileNames)

	return nil
}

func runPrettyPrint(_ context.Context) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		fileNames, _ := cmd.Flags().GetStringArray(paramFileNames)
		excludeRegexes, _ := cmd.Flags().GetStringArray(paramExcludeFiles)
		configuration.Set(configuration.ExcludeFilesKey, excludeRegexes)

		rules, err := exclusion.New()
		if err != nil {
			return err
		}

		outputDir, _ := cmd.Flags().GetString(paramOutputDirectory)
		useStdout, _ := cmd.Flags().GetBool(paramStdout)
		solidityPrefs, vyperPrefs := compilerDetailsFrom(cmd)

		g := generator.New(afero.NewOsFs(), newRegistry())

		processed := 0
		for _, fileName := range fileNames {
			if rules.IsFileExcluded(fileName) {
				log.Infof("skipping excluded file %s\n", fileName)

				continue
			}

			params := generator.Parameters{
				FileName:        fileName,
				OutputDirectory: outputDir,
				NumMutants:      0,
				PrintOriginal:   true,
				CompilerDetails: prefsFor(fileName, solidityPrefs, vyperPrefs),
			}
			if useStdout {
				params.Stdout = os.Stdout
			}

			if _, err := g.Run(params); err != nil {
				log.Errorf("%s: %s\n", fileName, err)

				continue
			}
			log.Infof("%s: rendered\n", fileName)
			processed++
		}

		if processed == 0 {
			return execution.NewExitErr(execution.NoFileProcessed)
		}

		return nil
	}
}
