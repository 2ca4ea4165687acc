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
	"fmt"
)

// LineScore is the overlap between line LineA of the first document and
// line LineB of the second.
type LineScore struct {
	Score
	LineA int
	LineB int
}

// LineWise scores every line of linesA against every line of linesB, in
// row-major order (all of line 0's partners first). Lines go through the
// same pipeline as documents, so opts selects granularity, duplicate
// handling and match reporting.
func LineWise(ctx context.Context, linesA, linesB []Document, opts Options) ([]LineScore, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	offset := len(linesA)
	docs := make([]Document, 0, len(linesA)+len(linesB))
	docs = append(docs, linesA...)
	docs = append(docs, linesB...)

	pairs := make([]Pair, 0, len(linesA)*len(linesB))
	for i := range linesA {
		for j := range linesB {
			pairs = append(pairs, Pair{I: i, J: offset + j})
		}
	}

	results, err := e.Compare(ctx, Request{Documents: docs, Pairs: pairs})
	if err != nil {
		return nil, fmt.Errorf("line-wise comparison: %w", err)
	}

	scores := make([]LineScore, len(results))
	for n, r := range results {
		scores[n] = LineScore{
			LineA: r.DocI,
			LineB: r.DocJ - offset,
			Score: Score{
				Matches:      r.Matches,
				Intersection: r.Intersection,
				SizeA:        r.SizeI,
				SizeB:        r.SizeJ,
				Dice:         r.Dice,
			},
		}
	}
	return scores, nil
}

// CompareTokens scores a single pair of documents with opts.
func CompareTokens(a, b Document, opts Options) (Score, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return Score{}, err
	}
	docs := []Document{a, b}
	if err := checkTokens(docs, e.opts); err != nil {
		return Score{}, err
	}
	inv := newInvocation(Request{Documents: docs}, e.opts)
	return ScoreSets(inv.buildSet(0), inv.buildSet(1), e.opts.ReportMatches), nil
}

// RawTermMatches compares two lines term by term and always reports which
// terms matched, in line1 order.
func RawTermMatches(line1, line2 Document, mode DuplicateMode) (Score, error) {
	opts := DefaultOptions()
	opts.Granularity = GranularityTerms
	opts.Duplicates = mode
	opts.ReportMatches = true
	return CompareTokens(line1, line2, opts)
}
