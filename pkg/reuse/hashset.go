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
	"github.com/cespare/xxhash/v2"
)

// Hasher maps a canonical unit to a fixed-width hash.
type Hasher func(string) uint64

// DefaultHasher is xxHash64 over the canonical string.
func DefaultHasher(s string) uint64 {
	return xxhash.Sum64String(s)
}

type member struct {
	text  string
	hash  uint64
	count int
}

// HashedSet is the hashed representation of one document's shingles or
// terms. Members are kept in first-occurrence order so matched units can be
// reported in document order.
type HashedSet struct {
	buckets map[uint64][]int
	members []member
	size    int
	mode    DuplicateMode
	policy  CollisionPolicy
}

// NewHashedSet hashes units into a set or multiset. A nil hasher falls back
// to DefaultHasher.
func NewHashedSet(units []string, mode DuplicateMode, policy CollisionPolicy, hasher Hasher) *HashedSet {
	b := setBuilder{mode: mode, policy: policy, hasher: hasher}
	return b.build(units)
}

// Size is |A| for the Dice denominator: distinct members in set mode,
// total multiplicity in multiset mode.
func (s *HashedSet) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Distinct returns the number of distinct members.
func (s *HashedSet) Distinct() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Count returns the multiplicity of a unit, honoring the collision policy.
// In set mode any present unit counts 1.
func (s *HashedSet) Count(unit string, hasher Hasher) int {
	if hasher == nil {
		hasher = DefaultHasher
	}
	m := s.find(hasher(unit), unit)
	if m == nil {
		return 0
	}
	if s.mode == Set {
		return 1
	}
	return m.count
}

func (s *HashedSet) find(h uint64, text string) *member {
	if s == nil {
		return nil
	}
	for _, idx := range s.buckets[h] {
		m := &s.members[idx]
		if s.policy == CollisionAccept || m.text == text {
			return m
		}
	}
	return nil
}

func (s *HashedSet) add(h uint64, text string) {
	if m := s.find(h, text); m != nil {
		m.count++
		if s.mode == Multiset {
			s.size++
		}
		return
	}
	s.buckets[h] = append(s.buckets[h], len(s.members))
	s.members = append(s.members, member{text: text, hash: h, count: 1})
	s.size++
}

// setBuilder carries the per-invocation hashing configuration. ignore, when
// set, holds the term-ignore units that are skipped during construction.
type setBuilder struct {
	hasher Hasher
	ignore *HashedSet
	mode   DuplicateMode
	policy CollisionPolicy
}

func (b setBuilder) build(units []string) *HashedSet {
	hasher := b.hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	s := &HashedSet{
		buckets: make(map[uint64][]int, len(units)),
		members: make([]member, 0, len(units)),
		mode:    b.mode,
		policy:  b.policy,
	}
	for _, u := range units {
		h := hasher(u)
		if b.ignore.find(h, u) != nil {
			continue
		}
		s.add(h, u)
	}
	return s
}
