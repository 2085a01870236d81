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
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/go-gremlins/mutagremlins/cmd/internal/flags"
	"github.com/go-gremlins/mutagremlins/mutation"
)

type algorithmsCmd struct {
	cmd *cobra.Command
}

const (
	algorithmsCommandName = "algorithms"

	paramList     = "list"
	paramDescribe = "describe"
)

// allTypes lists every mutation.Type in the stable order used for --list,
// generic algorithms first, then language-specific ones.
func allTypes() []mutation.Type {
	types := mutation.Generic()

	return append(types, mutation.Require, mutation.UncheckedBlock)
}

func newAlgorithmsCmd() *algorithmsCmd {
	cmd := &cobra.Command{
		Use:   algorithmsCommandName,
		Args:  cobra.NoArgs,
		Short: "List or describe the available mutation algorithms",
		Long:  algorithmsLongExplainer(),
		RunE:  runAlgorithms,
	}

	_ = flags.Set(cmd, &flags.Flag{Name: paramList, DefaultV: false, Usage: "print the name of every mutation algorithm"})
	_ = flags.Set(cmd, &flags.Flag{Name: paramDescribe, DefaultV: "", Usage: "print the description of one named algorithm"})

	return &algorithmsCmd{cmd: cmd}
}

func algorithmsLongExplainer() string {
	return heredoc.Doc(`
		Lists the mutation algorithms mutagremlins knows about, or prints the
		description of a single one, for use with the mutate command's
		--mutations flag.
	`)
}

func runAlgorithms(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString(paramDescribe)
	if name != "" {
		t, ok := mutation.Parse(name)
		if !ok {
			return fmt.Errorf("unknown mutation algorithm %q", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.String(), t.Describe())

		return nil
	}

	list, _ := cmd.Flags().GetBool(paramList)
	if list {
		for _, t := range allTypes() {
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
		}

		return nil
	}

	return cmd.Help()
}
