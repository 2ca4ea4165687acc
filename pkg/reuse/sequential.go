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

// compareSequential scores each request in order against a memo arena.
// It is the reference the blocked path must agree with.
func (inv *invocation) compareSequential(ctx context.Context, reqs []request, out *assembler) (*runStats, error) {
	sets := newArena(inv.buildSet, nil)

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sequential comparison cancelled: %w", err)
		}
		a := sets.acquire(req.pair.I)
		b := sets.acquire(req.pair.J)
		out.put(req, ScoreSets(a, b, inv.opts.ReportMatches))
	}

	built, peak := sets.stats()
	return &runStats{strategy: StrategySequential, setsBuilt: built, peakLiveSets: peak}, nil
}
