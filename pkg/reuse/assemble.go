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

// Result is the outcome of one comparison request.
type Result struct {
	// Matches lists the matched units when match reporting is enabled.
	Matches      []string
	DocI         int
	DocJ         int
	Intersection int
	SizeI        int
	SizeJ        int
	Dice         float64
}

// assembler places results at the slot of their originating request, so
// output order follows the resolved request list whatever order the
// comparators finished in. Slots are disjoint, so concurrent writers need
// no locking.
type assembler struct {
	results []Result
}

func newAssembler(n int) *assembler {
	return &assembler{results: make([]Result, n)}
}

func (a *assembler) put(req request, sc Score) {
	a.results[req.slot] = Result{
		DocI:         req.pair.I,
		DocJ:         req.pair.J,
		Intersection: sc.Intersection,
		SizeI:        sc.SizeA,
		SizeJ:        sc.SizeB,
		Dice:         sc.Dice,
		Matches:      sc.Matches,
	}
}

func (a *assembler) finish() []Result {
	return a.results
}
