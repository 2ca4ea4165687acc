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
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// block is a run of requests sharing the same anchor document (the lower
// index of each pair).
type block struct {
	reqs   []request
	anchor int
}

// planBlocks groups requests by anchor, orders anchors ascending and splits
// any group larger than size into consecutive chunks. Request order inside
// a group is preserved.
func planBlocks(reqs []request, size int) []block {
	groups := make(map[int][]request)
	for _, req := range reqs {
		anchor := min(req.pair.I, req.pair.J)
		groups[anchor] = append(groups[anchor], req)
	}

	anchors := make([]int, 0, len(groups))
	for anchor := range groups {
		anchors = append(anchors, anchor)
	}
	slices.Sort(anchors)

	var blocks []block
	for _, anchor := range anchors {
		group := groups[anchor]
		for start := 0; start < len(group); start += size {
			end := min(start+size, len(group))
			blocks = append(blocks, block{anchor: anchor, reqs: group[start:end]})
		}
	}
	return blocks
}

// useCounts returns how many times each document is read across reqs. The
// arena frees a set once its count is exhausted.
func useCounts(reqs []request) map[int]int {
	uses := make(map[int]int)
	for _, req := range reqs {
		uses[req.pair.I]++
		uses[req.pair.J]++
	}
	return uses
}

// compareBlocks evaluates requests block by block. Each set is built at
// most once and released after its last scheduled use. Blocks are handed
// to up to opts.Workers goroutines; cancellation is only observed between
// blocks.
func (inv *invocation) compareBlocks(ctx context.Context, reqs []request, out *assembler) (*runStats, error) {
	blocks := planBlocks(reqs, inv.opts.BlockSize)
	sets := newArena(inv.buildSet, useCounts(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(inv.opts.Workers, 1))

	for n, blk := range blocks {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log.Trace().
				Int("block", n).
				Int("anchor", blk.anchor).
				Int("requests", len(blk.reqs)).
				Msg("comparing block")
			inv.evalBlock(sets, blk, out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("block comparison cancelled: %w", err)
	}
	// errgroup only reports errors returned by workers; a parent context
	// cancelled before the first launch still has to surface.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("block comparison cancelled: %w", err)
	}

	built, peak := sets.stats()
	return &runStats{
		strategy:     StrategyBlock,
		blocks:       len(blocks),
		setsBuilt:    built,
		peakLiveSets: peak,
	}, nil
}

func (inv *invocation) evalBlock(sets *arena, blk block, out *assembler) {
	for _, req := range blk.reqs {
		a := sets.acquire(req.pair.I)
		b := sets.acquire(req.pair.J)
		out.put(req, ScoreSets(a, b, inv.opts.ReportMatches))
		sets.release(req.pair.I)
		sets.release(req.pair.J)
	}
}
