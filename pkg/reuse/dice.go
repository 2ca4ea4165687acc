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

// Score holds the overlap between two hashed sets.
type Score struct {
	Matches      []string
	Intersection int
	SizeA        int
	SizeB        int
	Dice         float64
}

// DiceCoefficient computes 2*intersection / (sizeA + sizeB). Two empty
// sets score 0.
func DiceCoefficient(intersection, sizeA, sizeB int) float64 {
	total := sizeA + sizeB
	if total == 0 {
		return 0
	}
	return 2 * float64(intersection) / float64(total)
}

// ScoreSets intersects two sets built with the same mode and collision
// policy. In multiset mode each shared unit contributes
// min(countA, countB). With reportMatches the matched units are listed in
// a's first-occurrence order, a multiset match repeated once per shared
// occurrence.
func ScoreSets(a, b *HashedSet, reportMatches bool) Score {
	sc := Score{SizeA: a.Size(), SizeB: b.Size()}
	if a == nil || b == nil {
		return sc
	}

	left, right := a, b
	// Counting only: walk the smaller side.
	if !reportMatches && len(b.members) < len(a.members) {
		left, right = b, a
	}

	multiset := a.mode == Multiset
	for i := range left.members {
		lm := &left.members[i]
		rm := right.find(lm.hash, lm.text)
		if rm == nil {
			continue
		}

		shared := 1
		if multiset {
			shared = min(lm.count, rm.count)
		}
		sc.Intersection += shared

		if reportMatches {
			for range shared {
				sc.Matches = append(sc.Matches, lm.text)
			}
		}
	}

	if reportMatches && sc.Matches == nil {
		sc.Matches = []string{}
	}
	sc.Dice = DiceCoefficient(sc.Intersection, sc.SizeA, sc.SizeB)
	return sc
}
