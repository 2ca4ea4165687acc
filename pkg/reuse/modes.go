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

// DuplicateMode selects whether repeated shingles count once or with
// their multiplicity.
type DuplicateMode int

const (
	Set DuplicateMode = iota
	Multiset
)

func (m DuplicateMode) String() string {
	switch m {
	case Set:
		return "set"
	case Multiset:
		return "multiset"
	default:
		return fmt.Sprintf("DuplicateMode(%d)", int(m))
	}
}

func (m DuplicateMode) valid() bool {
	return m == Set || m == Multiset
}

// IgnoreMode selects what an ignore list refers to. Only one kind of
// exclusion is active per invocation.
type IgnoreMode int

const (
	IgnoreNone IgnoreMode = iota
	IgnoreDocuments
	IgnoreTerms
)

func (m IgnoreMode) String() string {
	switch m {
	case IgnoreNone:
		return "none"
	case IgnoreDocuments:
		return "documents"
	case IgnoreTerms:
		return "terms"
	default:
		return fmt.Sprintf("IgnoreMode(%d)", int(m))
	}
}

// Granularity selects the comparison unit. GranularityTerms skips
// windowing and compares raw tokens.
type Granularity int

const (
	GranularityShingles Granularity = iota
	GranularityTerms
)

func (g Granularity) String() string {
	switch g {
	case GranularityShingles:
		return "shingles"
	case GranularityTerms:
		return "terms"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// CollisionPolicy decides what happens when two different units hash to
// the same value.
type CollisionPolicy int

const (
	// CollisionConfirm compares canonical text inside a hash bucket, so a
	// collision never produces a false match.
	CollisionConfirm CollisionPolicy = iota
	// CollisionAccept treats equal hashes as equal units.
	CollisionAccept
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionConfirm:
		return "confirm"
	case CollisionAccept:
		return "accept"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// Strategy picks the comparator used for an invocation.
type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategySequential
	StrategyBlock
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySequential:
		return "sequential"
	case StrategyBlock:
		return "block"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseDuplicateMode maps a config string onto a DuplicateMode.
func ParseDuplicateMode(s string) (DuplicateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "set":
		return Set, nil
	case "multiset":
		return Multiset, nil
	default:
		return Set, configErr("duplicates", s, "must be set or multiset")
	}
}

// ParseIgnoreMode maps a config string onto an IgnoreMode.
func ParseIgnoreMode(s string) (IgnoreMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return IgnoreNone, nil
	case "documents", "docs":
		return IgnoreDocuments, nil
	case "terms":
		return IgnoreTerms, nil
	default:
		return IgnoreNone, configErr("ignore_mode", s, "must be none, documents or terms")
	}
}

// ParseGranularity maps a config string onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "shingles":
		return GranularityShingles, nil
	case "terms":
		return GranularityTerms, nil
	default:
		return GranularityShingles, configErr("granularity", s, "must be shingles or terms")
	}
}

// ParseCollisionPolicy maps a config string onto a CollisionPolicy.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "confirm":
		return CollisionConfirm, nil
	case "accept":
		return CollisionAccept, nil
	default:
		return CollisionConfirm, configErr("collisions", s, "must be confirm or accept")
	}
}

// ParseStrategy maps a config string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "sequential":
		return StrategySequential, nil
	case "block":
		return StrategyBlock, nil
	default:
		return StrategyAuto, configErr("strategy", s, "must be auto, sequential or block")
	}
}
