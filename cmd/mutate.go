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
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-gremlins/mutagremlins/cmd/internal/flags"
	"github.com/go-gremlins/mutagremlins/configuration"
	"github.com/go-gremlins/mutagremlins/generator"
	"github.com/go-gremlins/mutagremlins/internal/exclusion"
	"github.com/go-gremlins/mutagremlins/internal/execution"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/language/solidity"
	"github.com/go-gremlins/mutagremlins/language/vyper"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/pkg/log"
	"github.com/go-gremlins/mutagremlins/preferences"
)

type mutateCmd struct {
	cmd *cobra.Command
}

const (
	mutateCommandName = "mutate"

	paramOutputDirectory  = "output-directory"
	paramFileNames        = "file-names"
	paramRNGSeed          = "rng-seed"
	paramNumMutants       = "num-mutants"
	paramMutations        = "mutations"
	paramAllMutations     = "all-mutations"
	paramPrintOriginal    = "print-original"
	paramSaveConfigFiles  = "save-config-files"
	paramStdout           = "stdout"
	paramFunctions        = "functions"
	paramValidateMutants  = "validate-mutants"
	paramExcludeFiles     = "exclude-files"
	paramWatchConfig      = "watch-config"
	paramSoliditySolc     = "solidity-compiler"
	paramSolidityBasePath = "solidity-base-path"
	paramSolidityInclude  = "solidity-include-path"
	paramSolidityAllow    = "solidity-allow-paths"
	paramSolidityRemaps   = "solidity-remappings"
	paramVyperCompiler    = "vyper-compiler"
	paramVyperRootPath    = "vyper-root-path"
)

func newRegistry() *language.Registry {
	registry := language.NewRegistry()
	registry.Register(solidity.NewDelegate())
	registry.Register(vyper.NewDelegate())

	return registry
}

func newMutateCmd(ctx context.Context) (*mutateCmd, error) {
	cmd := &cobra.Command{
		Use:   mutateCommandName,
		Args:  cobra.NoArgs,
		Short: "Generate mutants for one or more smart-contract source files",
		Long:  mutateLongExplainer(),
		RunE:  runMutate(ctx),
	}

	if err := setMutateFlagsOnCmd(cmd); err != nil {
		return nil, err
	}

	return &mutateCmd{cmd: cmd}, nil
}

func mutateLongExplainer() string {
	return heredoc.Doc(`
		Generates syntactically valid mutants of Solidity and Vyper smart
		contracts, for use as input to a mutation-testing suite.

		For an input file named X.sol with K successful mutants, mutate
		writes output/X.sol_0.sol ... output/X.sol_{K-1}.sol. With
		--print-original, an unmutated copy is also written as
		output/X.sol.sol. With --save-config-files, a single output/X.mgnx
		file captures the settings needed to reproduce the run.
	`)
}

func setMutateFlagsOnCmd(cmd *cobra.Command) error {
	normalize(cmd)

	fls := []*flags.Flag{
		{Name: paramOutputDirectory, CfgKey: configuration.MutateOutputKey, Shorthand: "o", DefaultV: "output", Usage: "directory to receive generated mutants"},
		{Name: paramRNGSeed, CfgKey: configuration.MutateSeedKey, DefaultV: int64(-1), Usage: "PRNG seed; -1 derives a seed from the current time"},
		{Name: paramNumMutants, CfgKey: configuration.MutateNumMutantsKey, Shorthand: "n", DefaultV: 1, Usage: "number of mutants to attempt to generate"},
		{Name: paramAllMutations, DefaultV: false, Usage: "use every mutation algorithm the language supports"},
		{Name: paramPrintOriginal, DefaultV: false, Usage: "also write an unmutated copy of the source"},
		{Name: paramSaveConfigFiles, DefaultV: false, Usage: "also write a .mgnx file capturing this run's settings"},
		{Name: paramStdout, DefaultV: false, Usage: "write mutants to stdout instead of files"},
		{Name: paramValidateMutants, DefaultV: false, Usage: "discard mutants that fail to compile"},
		{Name: paramWatchConfig, CfgKey: configuration.WatchConfigKey, DefaultV: false, Usage: "re-run whenever the config file changes on disk, until interrupted"},
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

	cmd.Flags().StringArray(paramFileNames, nil, "source (or AST) file to mutate; repeatable, required")
	cmd.Flags().StringArray(paramMutations, nil, "mutation kind to use; repeatable, names from the algorithms command")
	cmd.Flags().StringArray(paramFunctions, nil, "restrict mutation to these function names; repeatable")
	cmd.Flags().StringArray(paramExcludeFiles, nil, "regex of file paths to skip; repeatable")
	cmd.Flags().StringArray(paramSolidityInclude, nil, "solc --include-path; repeatable")
	cmd.Flags().StringArray(paramSolidityAllow, nil, "solc --allow-paths; repeatable")
	cmd.Flags().StringArray(paramSolidityRemaps, nil, "solc import remapping (old=new); repeatable")

	_ = cmd.MarkFlagRequired(paramFileNames)

	return nil
}

func normalize(cmd *cobra.Command) {
	cmd.Flags().SortFlags = false
	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		from := []string{".", "_"}
		to := "-"
		for _, sep := range from {
			name = strings.ReplaceAll(name, sep, to)
		}

		return pflag.NormalizedName(name)
	})
}

func runMutate(ctx context.Context) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		watch, _ := cmd.Flags().GetBool(paramWatchConfig)
		if !watch {
			return runMutateOnce(cmd)
		}

		return runMutateWatching(ctx, cmd)
	}
}

// runMutateOnce runs the mutate pipeline over every --file-names entry a
// single time, returning execution.NoFileProcessed if every file failed.
func runMutateOnce(cmd *cobra.Command) error {
	fileNames, _ := cmd.Flags().GetStringArray(paramFileNames)
	excludeRegexes, _ := cmd.Flags().GetStringArray(paramExcludeFiles)
	configuration.Set(configuration.ExcludeFilesKey, excludeRegexes)

	rules, err := exclusion.New()
	if err != nil {
		return err
	}

	g := generator.New(afero.NewOsFs(), newRegistry())
	params, rawSeed, err := mutateParametersFor(cmd)
	if err != nil {
		return err
	}
	solidityPrefs, vyperPrefs := compilerDetailsFrom(cmd)

	processed := 0
	for _, fileName := range fileNames {
		if rules.IsFileExcluded(fileName) {
			log.Infof("skipping excluded file %s\n", fileName)

			continue
		}

		perFile := params
		perFile.FileName = fileName
		perFile.Seed = seedFor(rawSeed, fileName)
		perFile.CompilerDetails = prefsFor(fileName, solidityPrefs, vyperPrefs)
		perFile.OnMutant = func(r generator.Record) {
			log.Infof("%s: %s at candidate %d (node %d, choices %016x)\n", fileName, r.Kind, r.Index, r.MutatedNodeID, r.ChoiceHash)
		}

		emitted, err := g.Run(perFile)
		if err != nil {
			log.Errorf("%s: %s\n", fileName, err)

			continue
		}
		log.Infof("%s: %d mutant(s) generated\n", fileName, emitted)
		processed++
	}

	if processed == 0 {
		return execution.NewExitErr(execution.NoFileProcessed)
	}

	return nil
}

// runMutateWatching runs the mutate pipeline once, then keeps re-running it
// every time the active config file changes on disk, until ctx is done
// (the process receives an interrupt signal). The first run's error, if
// any, is still returned; errors from subsequent re-runs are only logged,
// since a long-lived watch should survive one bad config edit.
func runMutateWatching(ctx context.Context, cmd *cobra.Command) error {
	changed := make(chan struct{}, 1)
	configuration.Watch(func(e fsnotify.Event) {
		log.Infof("config file %s changed, re-running mutate\n", e.Name)
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	firstErr := runMutateOnce(cmd)

	for {
		select {
		case <-ctx.Done():
			return firstErr
		case <-changed:
			if err := runMutateOnce(cmd); err != nil {
				log.Errorf("re-run after config change: %s\n", err)
			}
		}
	}
}

// seedFor derives a per-file seed from baseSeed, as -1 means "derive from
// time" rather than a literal PRNG seed.
func seedFor(baseSeed int64, fileName string) uint64 {
	if baseSeed >= 0 {
		return uint64(baseSeed)
	}

	h := uint64(time.Now().UnixNano())
	for _, r := range fileName {
		h = h*31 + uint64(r)
	}

	return h
}

// mutateParametersFor builds the generator.Parameters shared by every file
// in the run, and returns the raw --rng-seed value separately since -1
// means "derive a fresh per-file seed from the current time" rather than a
// literal seed (generator.Parameters.Seed has no room for that sentinel).
func mutateParametersFor(cmd *cobra.Command) (generator.Parameters, int64, error) {
	outputDir, _ := cmd.Flags().GetString(paramOutputDirectory)
	seed, _ := cmd.Flags().GetInt64(paramRNGSeed)
	numMutants, _ := cmd.Flags().GetInt(paramNumMutants)
	allMutations, _ := cmd.Flags().GetBool(paramAllMutations)
	printOriginal, _ := cmd.Flags().GetBool(paramPrintOriginal)
	saveConfigFiles, _ := cmd.Flags().GetBool(paramSaveConfigFiles)
	useStdout, _ := cmd.Flags().GetBool(paramStdout)
	validate, _ := cmd.Flags().GetBool(paramValidateMutants)
	functions, _ := cmd.Flags().GetStringArray(paramFunctions)
	mutationNames, _ := cmd.Flags().GetStringArray(paramMutations)

	var kinds []mutation.Type
	for _, name := range mutationNames {
		if t, ok := mutation.Parse(name); ok {
			kinds = append(kinds, t)
		}
	}

	params := generator.Parameters{
		OutputDirectory: outputDir,
		NumMutants:      numMutants,
		Mutations:       kinds,
		AllMutations:    allMutations,
		Functions:       functions,
		ValidateMutants: validate,
		PrintOriginal:   printOriginal,
		SaveConfigFile:  saveConfigFiles,
	}
	if useStdout {
		params.Stdout = os.Stdout
	}

	return params, seed, nil
}

// compilerDetailsFrom builds one preferences.Preferences per language from
// its compiler-path and search-path flags. Each file gets whichever tree
// matches its extension (see prefsFor); the two never share a "compiler"
// key, so a Solidity override can never leak into a Vyper invocation.
func compilerDetailsFrom(cmd *cobra.Command) (solidityPrefs, vyperPrefs *preferences.Preferences) {
	solc, _ := cmd.Flags().GetString(paramSoliditySolc)
	basePath, _ := cmd.Flags().GetString(paramSolidityBasePath)
	includePaths, _ := cmd.Flags().GetStringArray(paramSolidityInclude)
	allowPaths, _ := cmd.Flags().GetStringArray(paramSolidityAllow)
	remappings, _ := cmd.Flags().GetStringArray(paramSolidityRemaps)

	solidityPrefs = preferences.New()
	solidityPrefs.SetString(preferences.KeyCompiler, solc)
	solidityPrefs.SetString(preferences.KeyBasePath, basePath)
	solidityPrefs.SetArray(preferences.KeyIncludePaths, toAnySlice(includePaths))
	solidityPrefs.SetArray(preferences.KeyAllowPaths, toAnySlice(allowPaths))
	solidityPrefs.SetArray(preferences.KeyRemappings, toAnySlice(remappings))

	vyperBin, _ := cmd.Flags().GetString(paramVyperCompiler)
	rootPath, _ := cmd.Flags().GetString(paramVyperRootPath)

	vyperPrefs = preferences.New()
	vyperPrefs.SetString(preferences.KeyCompiler, vyperBin)
	vyperPrefs.SetString(preferences.KeyRootPath, rootPath)

	return solidityPrefs, vyperPrefs
}

// prefsFor picks the compiler Preferences matching fileName's extension, or
// nil (delegate default) for an AST JSON file whose language is unknown
// until the recognizer inspects its content.
func prefsFor(fileName string, solidityPrefs, vyperPrefs *preferences.Preferences) *preferences.Preferences {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".sol":
		return solidityPrefs
	case ".vy":
		return vyperPrefs
	default:
		return nil
	}
}

func toAnySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}

	return out
}
