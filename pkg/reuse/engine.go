// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

// Package reuse measures text reuse between tokenized documents. Each
// document is turned into a hashed set of n-gram shingles (or raw terms)
// and requested pairs are scored with the Dice coefficient over those sets.
//
// A call is a stateless batch transform: all input is validated first,
// hashed sets are built once per document and dropped when the call
// returns, and results come back in the order the pairs were requested.
package reuse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultNGramLength         = 5
	DefaultBlockSize           = 256
	DefaultSequentialThreshold = 64
)

// Document is an ordered sequence of tokens, already tokenized upstream.
type Document []string

// Request describes one invocation.
type Request struct {
	// Documents are addressed by their zero-based position.
	Documents []Document
	// Pairs is the explicit comparison list. nil requests all pairs i < j;
	// an empty non-nil slice requests nothing.
	Pairs []Pair
	// IgnoreDocs is used with IgnoreDocuments.
	IgnoreDocs []int
	// IgnoreTerms is used with IgnoreTerms. Values are canonical shingles
	// (tokens joined by the separator) or raw terms in GranularityTerms.
	IgnoreTerms []string
	IgnoreMode  IgnoreMode
}

// Options configures the engine. Use DefaultOptions as a starting point.
type Options struct {
	// Hasher defaults to DefaultHasher.
	Hasher Hasher
	// Clock is used for timing only. Defaults to the real clock.
	Clock     clockwork.Clock
	Separator string
	// NGramLength must be at least 1. GranularityTerms does not window.
	NGramLength int
	// BlockSize caps the requests in one block. 0 uses DefaultBlockSize.
	BlockSize int
	// Workers is the number of blocks evaluated concurrently. 0 means 1.
	Workers int
	// SequentialThreshold is the request count below which StrategyAuto
	// uses the sequential comparator. 0 uses DefaultSequentialThreshold.
	SequentialThreshold int
	Duplicates          DuplicateMode
	Granularity         Granularity
	Collisions          CollisionPolicy
	Strategy            Strategy
	// ReportMatches fills Result.Matches. Scores are unaffected.
	ReportMatches    bool
	NormalizeUnicode bool
}

// DefaultOptions returns shingle comparison with 5-grams in set mode,
// confirming collisions.
func DefaultOptions() Options {
	return Options{
		Separator:           DefaultSeparator,
		NGramLength:         DefaultNGramLength,
		BlockSize:           DefaultBlockSize,
		Workers:             1,
		SequentialThreshold: DefaultSequentialThreshold,
		Duplicates:          Set,
		Granularity:         GranularityShingles,
		Collisions:          CollisionConfirm,
		Strategy:            StrategyAuto,
	}
}

// Stats describes how an invocation was executed.
type Stats struct {
	RunID        string
	Strategy     Strategy
	Requests     int
	Blocks       int
	SetsBuilt    int
	PeakLiveSets int
	Elapsed      time.Duration
}

// Report is the full output of Engine.Run.
type Report struct {
	Results []Result
	Stats   Stats
}

type runStats struct {
	strategy     Strategy
	blocks       int
	setsBuilt    int
	peakLiveSets int
}

// Engine runs comparisons with a fixed set of options. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	clock clockwork.Clock
	opts  Options
}

// NewEngine validates opts and fills unset tuning fields with defaults.
func NewEngine(opts Options) (*Engine, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if opts.BlockSize == 0 {
		opts.BlockSize = DefaultBlockSize
	}
	if opts.Workers == 0 {
		opts.Workers = 1
	}
	if opts.SequentialThreshold == 0 {
		opts.SequentialThreshold = DefaultSequentialThreshold
	}
	if opts.Hasher == nil {
		opts.Hasher = DefaultHasher
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{opts: opts, clock: clock}, nil
}

// Options returns the effective options, defaults applied.
func (e *Engine) Options() Options {
	return e.opts
}

// Compare is shorthand for NewEngine(opts) followed by Compare.
func Compare(ctx context.Context, req Request, opts Options) ([]Result, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}
	return e.Compare(ctx, req)
}

// Compare returns one result per resolved, non-ignored pair in request
// order.
func (e *Engine) Compare(ctx context.Context, req Request) ([]Result, error) {
	rep, err := e.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.Results, nil
}

// Run validates the request, resolves the pairs, drops ignored documents
// and scores the remaining pairs with the configured strategy.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	start := e.clock.Now()
	runID := uuid.New().String()

	ignored, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	pairs, err := ResolvePairs(len(req.Documents), req.Pairs)
	if err != nil {
		return nil, err
	}
	if err := checkTokens(req.Documents, e.opts); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison cancelled: %w", err)
	}
	reqs := selectRequests(pairs, ignored)

	inv := newInvocation(req, e.opts)
	out := newAssembler(len(reqs))

	var rs *runStats
	if e.useSequential(len(reqs)) {
		rs, err = inv.compareSequential(ctx, reqs, out)
	} else {
		rs, err = inv.compareBlocks(ctx, reqs, out)
	}
	if err != nil {
		return nil, err
	}

	stats := Stats{
		RunID:        runID,
		Strategy:     rs.strategy,
		Requests:     len(reqs),
		Blocks:       rs.blocks,
		SetsBuilt:    rs.setsBuilt,
		PeakLiveSets: rs.peakLiveSets,
		Elapsed:      e.clock.Since(start),
	}

	log.Debug().
		Str("run_id", runID).
		Int("documents", len(req.Documents)).
		Int("requests", stats.Requests).
		Int("dropped", len(pairs)-len(reqs)).
		Stringer("strategy", stats.Strategy).
		Int("blocks", stats.Blocks).
		Int("sets_built", stats.SetsBuilt).
		Int("peak_live_sets", stats.PeakLiveSets).
		Dur("elapsed", stats.Elapsed).
		Msg("text reuse comparison finished")

	return &Report{Results: out.finish(), Stats: stats}, nil
}

func (e *Engine) useSequential(n int) bool {
	switch e.opts.Strategy {
	case StrategySequential:
		return true
	case StrategyBlock:
		return false
	default:
		return n < e.opts.SequentialThreshold
	}
}

// invocation binds one request's documents to the hashing configuration.
type invocation struct {
	docs    []Document
	opts    Options
	builder setBuilder
}

func newInvocation(req Request, opts Options) *invocation {
	inv := &invocation{
		docs: req.Documents,
		opts: opts,
		builder: setBuilder{
			hasher: opts.Hasher,
			mode:   opts.Duplicates,
			policy: opts.Collisions,
		},
	}
	if req.IgnoreMode == IgnoreTerms {
		values := req.IgnoreTerms
		if opts.NormalizeUnicode {
			values = normalizeTokens(values)
		}
		inv.builder.ignore = NewHashedSet(values, Set, opts.Collisions, opts.Hasher)
	}
	return inv
}

// units returns the comparison units of one document.
func (inv *invocation) units(doc int) []string {
	tokens := []string(inv.docs[doc])
	if inv.opts.NormalizeUnicode {
		tokens = normalizeTokens(tokens)
	}
	if inv.opts.Granularity == GranularityTerms {
		return Terms(tokens)
	}
	// NGramLength was validated up front.
	shingles, _ := Shingles(tokens, inv.opts.NGramLength, inv.opts.Separator)
	return shingles
}

func (inv *invocation) buildSet(doc int) *HashedSet {
	return inv.builder.build(inv.units(doc))
}
