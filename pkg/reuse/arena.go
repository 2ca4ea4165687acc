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
	"sync"

	"github.com/ZaparooProject/textreuse/pkg/helpers/syncutil"
)

type arenaEntry struct {
	set       *HashedSet
	once      sync.Once
	remaining int
}

// arena holds the hashed sets of one invocation, keyed by document index.
// Sets are built lazily and at most once. When use counts are supplied, an
// entry is dropped after its last use; without them the arena is a plain
// memo that lives until the invocation returns.
type arena struct {
	build    func(doc int) *HashedSet
	entries  map[int]*arenaEntry
	uses     map[int]int
	built    int
	live     int
	peakLive int
	mu       syncutil.Mutex
}

func newArena(build func(doc int) *HashedSet, uses map[int]int) *arena {
	return &arena{
		build:   build,
		entries: make(map[int]*arenaEntry),
		uses:    uses,
	}
}

func (a *arena) acquire(doc int) *HashedSet {
	a.mu.Lock()
	e, ok := a.entries[doc]
	if !ok {
		e = &arenaEntry{remaining: a.uses[doc]}
		a.entries[doc] = e
		a.built++
		a.live++
		a.peakLive = max(a.peakLive, a.live)
	}
	a.mu.Unlock()

	e.once.Do(func() {
		e.set = a.build(doc)
	})
	return e.set
}

// release marks one use of doc as finished. No-op for memo arenas.
func (a *arena) release(doc int) {
	if a.uses == nil {
		return
	}
	syncutil.WithLock(&a.mu, func() {
		e, ok := a.entries[doc]
		if !ok {
			return
		}
		e.remaining--
		if e.remaining <= 0 {
			delete(a.entries, doc)
			a.live--
		}
	})
}

func (a *arena) stats() (built, peakLive int) {
	syncutil.WithLock(&a.mu, func() {
		built, peakLive = a.built, a.peakLive
	})
	return built, peakLive
}
