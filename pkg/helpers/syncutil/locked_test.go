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

package syncutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLock_SerializesWriters(t *testing.T) {
	t.Parallel()

	var mu Mutex
	var wg sync.WaitGroup
	total := 0

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			WithLock(&mu, func() {
				total++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, total)
}

func TestWithLock_ReleasesOnPanic(t *testing.T) {
	t.Parallel()

	var mu Mutex
	assert.Panics(t, func() {
		WithLock(&mu, func() {
			panic("boom")
		})
	})

	// Would block forever if the panic leaked the lock.
	reached := false
	WithLock(&mu, func() {
		reached = true
	})
	assert.True(t, reached)
}
