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

// Pair is one requested comparison. Indices are zero-based.
type Pair struct {
	I int
	J int
}

// AllPairs enumerates every unordered pair (i, j) with i < j in row-major
// order. Self-pairs are never generated.
func AllPairs(numDocs int) []Pair {
	if numDocs < 2 {
		return []Pair{}
	}
	pairs := make([]Pair, 0, numDocs*(numDocs-1)/2)
	for i := range numDocs - 1 {
		for j := i + 1; j < numDocs; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// ResolvePairs returns the comparison list for an invocation. A nil
// explicit list means all pairs; a non-nil list is used as given, in the
// caller's order, and must reference documents in [0, numDocs).
func ResolvePairs(numDocs int, explicit []Pair) ([]Pair, error) {
	if explicit == nil {
		return AllPairs(numDocs), nil
	}
	if err := checkPairs(numDocs, explicit); err != nil {
		return nil, err
	}
	out := make([]Pair, len(explicit))
	copy(out, explicit)
	return out, nil
}

func checkPairs(numDocs int, pairs []Pair) error {
	for pos, p := range pairs {
		for _, idx := range [2]int{p.I, p.J} {
			if idx < 0 || idx >= numDocs {
				return &IndexError{Field: "pairs", Position: pos, Index: idx, NumDocs: numDocs}
			}
		}
	}
	return nil
}

// request ties a pair to the output slot its result is written to.
type request struct {
	pair Pair
	slot int
}

// selectRequests drops pairs that reference an ignored document and numbers
// the survivors in order. The relative order of kept pairs is unchanged.
func selectRequests(pairs []Pair, ignored map[int]struct{}) []request {
	reqs := make([]request, 0, len(pairs))
	for _, p := range pairs {
		if _, skip := ignored[p.I]; skip {
			continue
		}
		if _, skip := ignored[p.J]; skip {
			continue
		}
		reqs = append(reqs, request{pair: p, slot: len(reqs)})
	}
	return reqs
}
