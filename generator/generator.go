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

// Package generator implements the top-level mutation-generation pipeline:
// recognize the input file, load its AST, build the requested mutators,
// count mutable nodes, sample a queue of mutation kinds, and emit one
// mutant per queue entry, each pretty-printed and optionally compile
// checked and commented.
package generator

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/go-gremlins/mutagremlins/ast"
	"github.com/go-gremlins/mutagremlins/commenter"
	"github.com/go-gremlins/mutagremlins/configfile"
	"github.com/go-gremlins/mutagremlins/errs"
	"github.com/go-gremlins/mutagremlins/jsonast"
	"github.com/go-gremlins/mutagremlins/language"
	"github.com/go-gremlins/mutagremlins/mutation"
	"github.com/go-gremlins/mutagremlins/mutator"
	"github.com/go-gremlins/mutagremlins/permissions"
	"github.com/go-gremlins/mutagremlins/pkg/log"
	"github.com/go-gremlins/mutagremlins/preferences"
	"github.com/go-gremlins/mutagremlins/printer"
	"github.com/go-gremlins/mutagremlins/recognizer"
	"github.com/go-gremlins/mutagremlins/visit"
)

// Parameters controls one generator run, one per input file.
type Parameters struct {
	// FileName is the source or AST file to mutate.
	FileName string

	// OutputDirectory receives the generated mutant files.
	OutputDirectory string

	// NumMutants is how many mutants to attempt to generate.
	NumMutants int

	// Seed seeds the run's PRNG. Two runs with the same Seed, FileName,
	// and Mutations produce byte-identical mutants in the same order.
	Seed uint64

	// Mutations is the explicit set of mutation kinds to use. Ignored if
	// AllMutations is true.
	Mutations []mutation.Type

	// AllMutations requests every mutation kind the language supports.
	AllMutations bool

	// Functions restricts mutation to the named functions, when
	// non-empty (enforced by tightening the Permissions passed in).
	Functions []string

	// ValidateMutants requests a best-effort compile check of each
	// mutant before it is kept.
	ValidateMutants bool

	// PrintOriginal requests an additional, unmutated copy of the source
	// be written alongside the mutants (suffix ".sol.sol"-style, per the
	// original extension appended a second time).
	PrintOriginal bool

	// SaveConfigFile requests one .mgnx file for the input file, written
	// under OutputDirectory, capturing the settings that reproduce the run.
	SaveConfigFile bool

	// CompilerDetails overrides the delegate's default compiler
	// Preferences, when non-nil.
	CompilerDetails *preferences.Preferences

	// Stdout, when non-nil, redirects every rendered mutant (and the
	// original, and the original's text for pretty-print-only runs) to
	// this writer instead of writing files under OutputDirectory.
	Stdout io.Writer

	// OnMutant, when non-nil, receives one Record per emitted mutant, in
	// emission order.
	OnMutant func(Record)
}

// Record is the per-mutant bookkeeping reported through
// Parameters.OnMutant: which algorithm ran, the candidate index it was
// applied at, the id of the node it changed, and a hash folding in the
// rng-driven choices, so two runs can be compared for reproducibility
// without diffing the mutant files themselves.
type Record struct {
	Kind          mutation.Type
	Index         int
	MutatedNodeID int64
	ChoiceHash    uint64
}

// Generator runs mutation-generation passes against a language.Registry.
type Generator struct {
	fs       afero.Fs
	registry *language.Registry
}

// New creates a Generator backed by fs and registry.
func New(fs afero.Fs, registry *language.Registry) *Generator {
	return &Generator{fs: fs, registry: registry}
}

// maxDedupAttempts bounds how many times the generator retries a queue slot
// whose sampled (mutator, index) pair produced a mutant identical to one
// already emitted, before giving up on that slot and moving to the next.
const maxDedupAttempts = 50

// Run executes one mutation-generation pass per Parameters, writing mutants
// (and, if requested, the original and a .mgnx config) under
// params.OutputDirectory.
func (g *Generator) Run(params Parameters) (int, error) {
	d, superAST, err := recognizer.New(g.fs, g.registry).Load(params.FileName, params.CompilerDetails)
	if err != nil {
		return 0, err
	}
	root, err := d.RecoverAST(superAST)
	if err != nil {
		return 0, err
	}

	mutators, err := selectMutators(d, params)
	if err != nil {
		return 0, err
	}

	rules := permissions.New()
	if len(params.Functions) > 0 {
		// Specific functions are allowed first (list order decides the
		// first match), then a trailing catch-all denies mutation
		// anywhere else, restricting the whole run to these functions.
		for _, fn := range params.Functions {
			rules.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.ChildrenScope(permissions.ValueObject(fn, permissions.Allow))})
		}
		rules.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.ChildrenScope(permissions.AnyObject(permissions.Deny))})
	}

	rng := rand.New(rand.NewSource(int64(params.Seed)))

	permitter := d.NodePermitter(rules)
	idMaker := d.NodeIDMaker(root)

	counter := visit.NewNodesCounter(mutators, permitter, rng)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), counter)

	total := 0
	for _, c := range counter.Counts {
		total += c
	}
	if total == 0 && params.NumMutants > 0 {
		return 0, errs.New(errs.NoMutableNode, params.FileName)
	}

	queue := buildQueue(counter.Counts, params.NumMutants, rng)

	emitted := 0
	seen := make(map[string]bool)

	for slot, kind := range queue {
		m, ok := mutators[kind]
		if !ok {
			continue
		}

		accept := func(candidate *jsonast.Node) bool {
			if !params.ValidateMutants {
				return true
			}
			ok, cleanup := g.validates(d, candidate, params)
			cleanup()

			return ok
		}

		mutantRoot, record, mutationResult, success := attemptMutation(root, m, counter.Counts[kind], rng, permitter, idMaker, seen, maxDedupAttempts, accept)
		if !success {
			log.Infof("could not find a unique, valid mutant for %s after %d attempts, skipping slot %d", kind, maxDedupAttempts, slot)

			continue
		}
		record.Kind = kind
		mutatedIdx := record.MutatedNodeID

		if mutationResult.HasComment {
			insertComment(mutantRoot, mutatedIdx, mutationResult, d, permitter, idMaker)
		}

		if _, err := g.writeMutant(d, mutantRoot, params, emitted); err != nil {
			return emitted, err
		}
		if params.OnMutant != nil {
			params.OnMutant(record)
		}

		emitted++
	}

	if params.PrintOriginal {
		if err := g.writeOriginal(d, root, params); err != nil {
			return emitted, err
		}
	}

	if params.SaveConfigFile {
		if err := g.writeConfigFile(d, params); err != nil {
			return emitted, err
		}
	}

	return emitted, nil
}

// selectMutators builds the MutationType -> Mutator map the generator uses
// for this run. Kinds the language's factory does not implement are
// silently dropped; the caller fails with NoMutableNode only if
// every requested kind turns out unsupported and the map ends up empty.
func selectMutators(d language.Delegate, params Parameters) (map[mutation.Type]mutator.Mutator[jsonast.Node], error) {
	factory := d.MutatorFactory()

	kinds := params.Mutations
	if params.AllMutations || len(kinds) == 0 {
		kinds = factory.Supported()
	}

	out := make(map[mutation.Type]mutator.Mutator[jsonast.Node], len(kinds))
	for _, k := range kinds {
		m, ok := factory.MutatorFor(k)
		if !ok {
			continue
		}
		out[k] = m
	}

	if len(out) == 0 {
		return nil, errs.New(errs.NoMutableNode, params.FileName)
	}

	return out, nil
}

// buildQueue samples NumMutants mutation kinds uniformly with replacement
// from the kinds that have at least one mutable candidate, weighting
// nothing: every eligible kind is equally likely regardless of how many
// candidates it has, so a rare-but-present construct gets fair coverage.
func buildQueue(counts map[mutation.Type]int, numMutants int, rng *rand.Rand) []mutation.Type {
	var eligible []mutation.Type
	for k, c := range counts {
		if c > 0 {
			eligible = append(eligible, k)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	// Map iteration order is randomized; the same rng draw must pick the
	// same kind on every run.
	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })

	queue := make([]mutation.Type, numMutants)
	for i := range queue {
		queue[i] = eligible[rng.Intn(len(eligible))]
	}

	return queue
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}

		return out
	default:
		return t
	}
}

// attemptMutation draws up to maxAttempts (index, mutator) pairs, retrying
// whenever a draw fails to produce a genuinely new, accepted mutant: the
// target node turned out to be Mutate-denied and nothing was changed, the
// result is structurally identical to one already emitted for this file, or
// accept rejects it (e.g. the validate-mutants compile check). Only a draw
// that clears every one of these is returned as a success.
func attemptMutation(
	root *jsonast.Node,
	m mutator.Mutator[jsonast.Node],
	candidateCount int,
	rng *rand.Rand,
	permitter permissions.Permit[jsonast.Node],
	idMaker jsonast.Id,
	seen map[string]bool,
	maxAttempts int,
	accept func(mutantRoot *jsonast.Node) bool,
) (*jsonast.Node, Record, mutator.Result, bool) {
	if candidateCount == 0 {
		return nil, Record{}, mutator.Result{}, false
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		index := rng.Intn(candidateCount)

		mutantValue := cloneValue(root.Get())
		mutantRoot := jsonast.NewRoot(mutantValue)

		maker := visit.NewMutationMaker(m, rng, index, permitter, idMaker)
		ast.TraverseMut[jsonast.Node](jsonast.Adapt(mutantRoot), maker)

		if !maker.Mutated {
			continue
		}

		encoded, err := json.Marshal(mutantValue)
		if err != nil {
			continue
		}
		digest := string(encoded)
		if seen[digest] {
			continue
		}

		if accept != nil && !accept(mutantRoot) {
			continue
		}

		seen[digest] = true

		record := Record{
			Index:         index,
			MutatedNodeID: maker.MutatedNodeID,
			ChoiceHash:    choiceHash(index, maker.MutatedNodeID, encoded),
		}

		return mutantRoot, record, mutator.Result{
			MutatedNodeID: maker.MutatedNodeID,
			HasComment:    maker.HasComment,
			CommentNode:   maker.CommentNode,
		}, true
	}

	return nil, Record{}, mutator.Result{}, false
}

// choiceHash folds the sampled candidate index, the mutated node's id, and
// the serialized mutant into one FNV-1a digest. The serialized form covers
// the mutator's own rng draws (which operator it picked, which arguments it
// swapped) without each mutator having to report them.
func choiceHash(index int, mutatedNodeID int64, encoded []byte) uint64 {
	h := fnv.New64a()
	var scalar [8]byte
	binary.LittleEndian.PutUint64(scalar[:], uint64(index))
	_, _ = h.Write(scalar[:])
	binary.LittleEndian.PutUint64(scalar[:], uint64(mutatedNodeID))
	_, _ = h.Write(scalar[:])
	_, _ = h.Write(encoded)

	return h.Sum64()
}

func insertComment(root *jsonast.Node, _ int64, result mutator.Result, d language.Delegate, permitter permissions.Permit[jsonast.Node], idMaker jsonast.Id) {
	pv := visit.NewPathVisitor(permitter, idMaker)
	ast.Traverse[jsonast.Node](jsonast.Adapt(root), pv)

	path, ok := pv.PathMap[result.MutatedNodeID]
	if !ok {
		return
	}

	idx := commenter.NewByIDIndex(root, idMaker)
	commenter.InsertCommentNearest(path, result.MutatedNodeID, result.CommentNode, idx, d.NodeFinderFactory(), d.CommenterFactory(), idMaker)
}

func (g *Generator) validates(d language.Delegate, root *jsonast.Node, params Parameters) (bool, func()) {
	tmpDir := filepath.Join(params.OutputDirectory, ".mutagremlins-validate-"+uuid.NewString())
	_ = g.fs.MkdirAll(tmpDir, 0o755)

	cleanup := func() { _ = g.fs.RemoveAll(tmpDir) }

	tmpFile := filepath.Join(tmpDir, filepath.Base(params.FileName))
	if err := g.renderTo(d, root, tmpFile); err != nil {
		return false, cleanup
	}

	prefs := params.CompilerDetails
	if prefs == nil {
		prefs = d.DefaultCompilerSettings()
	}

	return d.MutantCompiles(tmpFile, prefs), cleanup
}

func (g *Generator) renderTo(d language.Delegate, root *jsonast.Node, path string) error {
	var buf strings.Builder
	p := printer.New(&buf, 0, 0)
	if err := printer.PrintTree(p, d.NodePrinterFactory(), root); err != nil {
		return err
	}

	return afero.WriteFile(g.fs, path, []byte(buf.String()), 0o644)
}

// renderToStdout pretty-prints root to w, preceded by a "// name" header so
// multiple renders on the same stream stay distinguishable.
func renderToStdout(d language.Delegate, root *jsonast.Node, w io.Writer, name string) error {
	var buf strings.Builder
	p := printer.New(&buf, 0, 0)
	if err := printer.PrintTree(p, d.NodePrinterFactory(), root); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "// %s\n%s\n", name, buf.String())

	return err
}

func (g *Generator) writeMutant(d language.Delegate, root *jsonast.Node, params Parameters, index int) (string, error) {
	ext := d.FileExtension()
	base := filepath.Base(params.FileName)
	name := fmt.Sprintf("%s_%d%s", base, index, ext)

	if params.Stdout != nil {
		return name, renderToStdout(d, root, params.Stdout, name)
	}

	outPath := filepath.Join(params.OutputDirectory, name)

	if err := g.fs.MkdirAll(params.OutputDirectory, 0o755); err != nil {
		return "", errs.Wrap(errs.IO, params.OutputDirectory, err)
	}

	if err := g.renderTo(d, root, outPath); err != nil {
		return "", errs.Wrap(errs.IO, outPath, err)
	}

	return outPath, nil
}

func (g *Generator) writeOriginal(d language.Delegate, root *jsonast.Node, params Parameters) error {
	ext := d.FileExtension()
	name := filepath.Base(params.FileName) + ext

	if params.Stdout != nil {
		return renderToStdout(d, root, params.Stdout, name)
	}

	outPath := filepath.Join(params.OutputDirectory, name)

	return g.renderTo(d, root, outPath)
}

// writeConfigFile writes one .mgnx file per input file, capturing the
// settings that reproduce the whole run (not one per emitted mutant).
func (g *Generator) writeConfigFile(d language.Delegate, params Parameters) error {
	details := &configfile.Details{
		Language:           d.Implements(),
		HasLanguage:        true,
		Filename:           params.FileName,
		NumMutants:         int64(params.NumMutants),
		Seed:               params.Seed,
		HasSeed:            true,
		Mutations:          params.Mutations,
		AllMutations:       params.AllMutations,
		CompilerDetails:    params.CompilerDetails,
		HasCompilerDetails: params.CompilerDetails != nil,
		Functions:          params.Functions,
	}

	// X.sol -> output/X.mgnx: the source extension is dropped, not
	// appended to.
	base := filepath.Base(params.FileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cfgPath := filepath.Join(params.OutputDirectory, base+configfile.Extension)

	return configfile.Save(g.fs, cfgPath, details)
}
