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
	"fmt"
	"strings"
)

func validateOptions(opts Options) error {
	if opts.NGramLength <= 0 {
		return configErr("ngram_length", opts.NGramLength, "must be at least 1")
	}
	switch opts.Granularity {
	case GranularityShingles, GranularityTerms:
	default:
		return configErr("granularity", opts.Granularity, "unrecognized granularity")
	}
	if !opts.Duplicates.valid() {
		return configErr("duplicates", opts.Duplicates, "unrecognized duplicate-handling mode")
	}
	if opts.Collisions != CollisionConfirm && opts.Collisions != CollisionAccept {
		return configErr("collisions", opts.Collisions, "unrecognized collision policy")
	}
	switch opts.Strategy {
	case StrategyAuto, StrategySequential, StrategyBlock:
	default:
		return configErr("strategy", opts.Strategy, "unrecognized strategy")
	}
	if opts.BlockSize < 0 {
		return configErr("block_size", opts.BlockSize, "must not be negative")
	}
	if opts.Workers < 0 {
		return configErr("workers", opts.Workers, "must not be negative")
	}
	if opts.SequentialThreshold < 0 {
		return configErr("sequential_threshold", opts.SequentialThreshold, "must not be negative")
	}
	return nil
}

// validateRequest checks the ignore specification against the documents
// and returns the ignored document set. Pairs are checked by ResolvePairs.
func validateRequest(req Request) (map[int]struct{}, error) {
	numDocs := len(req.Documents)

	switch req.IgnoreMode {
	case IgnoreNone:
		if len(req.IgnoreDocs) > 0 || len(req.IgnoreTerms) > 0 {
			return nil, configErr("ignore_mode", req.IgnoreMode, "ignore values given without an ignore mode")
		}
		return nil, nil
	case IgnoreDocuments:
		if len(req.IgnoreDocs) == 0 {
			return nil, configErr("ignore_docs", req.IgnoreDocs, "documents mode requires at least one index")
		}
		if len(req.IgnoreTerms) > 0 {
			return nil, configErr("ignore_terms", req.IgnoreTerms, "not allowed in documents mode")
		}
		ignored := make(map[int]struct{}, len(req.IgnoreDocs))
		for pos, idx := range req.IgnoreDocs {
			if idx < 0 || idx >= numDocs {
				return nil, &IndexError{Field: "ignore_docs", Position: pos, Index: idx, NumDocs: numDocs}
			}
			ignored[idx] = struct{}{}
		}
		return ignored, nil
	case IgnoreTerms:
		if len(req.IgnoreTerms) == 0 {
			return nil, configErr("ignore_terms", req.IgnoreTerms, "terms mode requires at least one value")
		}
		if len(req.IgnoreDocs) > 0 {
			return nil, configErr("ignore_docs", req.IgnoreDocs, "not allowed in terms mode")
		}
		return nil, nil
	default:
		return nil, configErr("ignore_mode", req.IgnoreMode, "unrecognized ignore mode")
	}
}

// checkTokens rejects tokens that contain the shingle separator. Joined
// windows are the set keys, and such a token would let two different
// windows share one key.
func checkTokens(docs []Document, opts Options) error {
	if opts.Granularity != GranularityShingles || opts.NGramLength < 2 {
		return nil
	}
	for d, doc := range docs {
		for k, tok := range doc {
			if strings.Contains(tok, opts.Separator) {
				return configErr("documents", tok, fmt.Sprintf(
					"document %d token %d contains the shingle separator %q",
					d, k, opts.Separator,
				))
			}
		}
	}
	return nil
}
