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

package reuse

import (
	"context"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// ============================================================================
// Generators
// ============================================================================

// tokenGen draws from a small vocabulary so documents overlap often.
func tokenGen() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})
}

func documentGen() *rapid.Generator[Document] {
	return rapid.Custom(func(t *rapid.T) Document {
		return rapid.SliceOfN(tokenGen(), 0, 12).Draw(t, "tokens")
	})
}

func corpusGen(minDocs, maxDocs int) *rapid.Generator[[]Document] {
	return rapid.SliceOfN(documentGen(), minDocs, maxDocs)
}

func optionsGen() *rapid.Generator[Options] {
	return rapid.Custom(func(t *rapid.T) Options {
		opts := DefaultOptions()
		opts.NGramLength = rapid.IntRange(1, 3).Draw(t, "ngram")
		opts.Duplicates = rapid.SampledFrom([]DuplicateMode{Set, Multiset}).Draw(t, "duplicates")
		opts.Granularity = rapid.SampledFrom([]Granularity{GranularityShingles, GranularityTerms}).Draw(t, "granularity")
		opts.ReportMatches = rapid.Bool().Draw(t, "report")
		opts.Collisions = rapid.SampledFrom([]CollisionPolicy{CollisionConfirm, CollisionAccept}).Draw(t, "collisions")
		if rapid.Bool().Draw(t, "narrowHasher") {
			opts.Hasher = narrowHasher
		}
		return opts
	})
}

// narrowHasher keeps two bits of the hash so distinct units collide often.
func narrowHasher(s string) uint64 {
	return DefaultHasher(s) & 3
}

// ignoreUnitGen draws a value in the canonical form opts compares on.
func ignoreUnitGen(opts Options) *rapid.Generator[string] {
	if opts.Granularity == GranularityTerms {
		return tokenGen()
	}
	return rapid.Custom(func(t *rapid.T) string {
		window := rapid.SliceOfN(tokenGen(), opts.NGramLength, opts.NGramLength).Draw(t, "window")
		return JoinShingle(window, opts.Separator)
	})
}

// requestGen draws a request over docs. Explicit pair lists are unsorted
// and may repeat pairs or pair a document with itself.
func requestGen(docs []Document, opts Options) *rapid.Generator[Request] {
	return rapid.Custom(func(t *rapid.T) Request {
		req := Request{Documents: docs}
		idx := rapid.IntRange(0, len(docs)-1)

		if rapid.Bool().Draw(t, "explicit") {
			pair := rapid.Custom(func(t *rapid.T) Pair {
				return Pair{I: idx.Draw(t, "i"), J: idx.Draw(t, "j")}
			})
			req.Pairs = rapid.SliceOfN(pair, 0, 20).Draw(t, "pairs")
		}

		req.IgnoreMode = rapid.SampledFrom([]IgnoreMode{
			IgnoreNone,
			IgnoreDocuments,
			IgnoreTerms,
		}).Draw(t, "ignoreMode")
		switch req.IgnoreMode {
		case IgnoreDocuments:
			req.IgnoreDocs = rapid.SliceOfN(idx, 1, 3).Draw(t, "ignoreDocs")
		case IgnoreTerms:
			req.IgnoreTerms = rapid.SliceOfN(ignoreUnitGen(opts), 1, 3).Draw(t, "ignoreTerms")
		case IgnoreNone:
		}
		return req
	})
}

// ============================================================================
// Properties
// ============================================================================

// TestPropertyShingleCount verifies L tokens give max(0, L-n+1) shingles.
func TestPropertyShingleCount(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		doc := documentGen().Draw(t, "doc")
		n := rapid.IntRange(1, 6).Draw(t, "n")

		shingles, err := Shingles(doc, n, DefaultSeparator)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := max(0, len(doc)-n+1)
		if len(shingles) != want {
			t.Fatalf("got %d shingles for %d tokens and n=%d, want %d", len(shingles), len(doc), n, want)
		}
	})
}

// TestPropertyDiceSymmetricAndBounded verifies swapping a pair changes
// nothing but the sides, and every score stays in [0, 1].
func TestPropertyDiceSymmetricAndBounded(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := documentGen().Draw(t, "a")
		b := documentGen().Draw(t, "b")
		opts := optionsGen().Draw(t, "opts")

		req := Request{Documents: []Document{a, b}, Pairs: []Pair{{0, 1}, {1, 0}}}
		results, err := Compare(context.Background(), req, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ab, ba := results[0], results[1]
		if ab.Dice != ba.Dice || ab.Intersection != ba.Intersection {
			t.Fatalf("asymmetric: %+v vs %+v", ab, ba)
		}
		if ab.SizeI != ba.SizeJ || ab.SizeJ != ba.SizeI {
			t.Fatalf("sizes not swapped: %+v vs %+v", ab, ba)
		}
		if ab.Dice < 0 || ab.Dice > 1 {
			t.Fatalf("dice out of range: %v", ab.Dice)
		}
	})
}

// TestPropertySelfSimilarity verifies a document with at least one unit
// scores 1 against itself.
func TestPropertySelfSimilarity(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		opts := optionsGen().Draw(t, "opts")
		doc := rapid.SliceOfN(tokenGen(), opts.NGramLength, 12).Draw(t, "doc")

		results, err := Compare(context.Background(), Request{
			Documents: []Document{doc},
			Pairs:     []Pair{{0, 0}},
		}, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Dice != 1 {
			t.Fatalf("self dice = %v for %v", results[0].Dice, doc)
		}
	})
}

// TestPropertyBlockMatchesSequential verifies the blocked comparator gives
// exactly the sequential results for any block size, worker count, pair
// list, ignore setting and collision policy.
func TestPropertyBlockMatchesSequential(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		docs := corpusGen(1, 7).Draw(t, "docs")
		opts := optionsGen().Draw(t, "opts")
		req := requestGen(docs, opts).Draw(t, "req")

		seq := opts
		seq.Strategy = StrategySequential
		want, err := Compare(context.Background(), req, seq)
		if err != nil {
			t.Fatalf("sequential: %v", err)
		}

		blk := opts
		blk.Strategy = StrategyBlock
		blk.BlockSize = rapid.IntRange(1, 5).Draw(t, "blockSize")
		blk.Workers = rapid.IntRange(1, 4).Draw(t, "workers")
		got, err := Compare(context.Background(), req, blk)
		if err != nil {
			t.Fatalf("block: %v", err)
		}

		if !reflect.DeepEqual(want, got) {
			t.Fatalf("block results differ:\nwant %+v\ngot  %+v", want, got)
		}
	})
}

// TestPropertyIgnoredDocumentsAbsent verifies no result references an
// ignored document and every other pair survives.
func TestPropertyIgnoredDocumentsAbsent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		docs := corpusGen(1, 7).Draw(t, "docs")
		ignore := rapid.SliceOfN(rapid.IntRange(0, len(docs)-1), 1, 3).Draw(t, "ignore")

		ignored := make(map[int]bool, len(ignore))
		for _, idx := range ignore {
			ignored[idx] = true
		}

		results, err := Compare(context.Background(), Request{
			Documents:  docs,
			IgnoreMode: IgnoreDocuments,
			IgnoreDocs: ignore,
		}, unigramOpts(Set))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, r := range results {
			if ignored[r.DocI] || ignored[r.DocJ] {
				t.Fatalf("ignored document in result %+v", r)
			}
		}
		kept := len(docs) - len(ignored)
		if want := kept * (kept - 1) / 2; len(results) != want {
			t.Fatalf("got %d results, want %d", len(results), want)
		}
	})
}
