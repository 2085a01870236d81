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

/*
Mutagremlins generates syntactically valid mutants of Solidity and Vyper
smart contracts, for use as input to a mutation-testing suite. Given a
source file (or a compiler-produced JSON AST), it counts the mutable
constructs present, samples a queue of mutation kinds, and applies one
mutation per mutant, pretty-printing the result back to source.

Usage

To generate mutants for a Solidity file:

	$ mutagremlins mutate --file-names Token.sol --num-mutants 10 --output-directory output

To use every mutation algorithm the language supports, instead of a
hand-picked list:

	$ mutagremlins mutate --file-names Token.sol --all-mutations

To render an AST back to source without mutating it:

	$ mutagremlins pretty-print --file-names Token.sol

To list or describe the available mutation algorithms:

	$ mutagremlins algorithms --list
	$ mutagremlins algorithms --describe integer

Output layout

For input "X.sol" with K successful mutants, mutate writes:

	output/X.sol_0.sol … output/X.sol_{K-1}.sol

With --print-original, an additional output/X.sol.sol carries the
unmutated source. With --save-config-files, output/X.mgnx carries the
effective configuration needed to reproduce the run.

Configuration

Mutagremlins uses Viper (https://github.com/spf13/viper) for tool-level
defaults (compiler paths, default output directory, default RNG seed,
silent mode). Options can be set in the following ways, each taking
precedence over the next:

 - specific command flags
 - environment variables
 - configuration file

Environment variables follow:

	MUTAGREMLINS_<COMMAND NAME>_<FLAG NAME>

with every dash in the option name replaced by an underscore. Example:

	$ MUTAGREMLINS_MUTATE_NUM_MUTANTS=20 mutagremlins mutate --file-names Token.sol

The configuration file must be named .mutagremlins.yaml and can be placed
in one of the following folders (in order): /etc/mutagremlins (not on
Windows), $XDG_CONFIG_HOME/mutagremlins/mutagremlins (default
$HOME/.config/mutagremlins/mutagremlins), $HOME/.mutagremlins, the root of
the enclosing Go module, the current folder.

This is distinct from the per-file .mgnx configuration, which records the
settings needed to reproduce one mutate invocation, not tool-wide defaults.
*/
package gremlins
