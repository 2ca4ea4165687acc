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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllPairs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, AllPairs(0))
	assert.NotNil(t, AllPairs(0))
	assert.Empty(t, AllPairs(1))
	assert.Equal(t, []Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, AllPairs(4))
	assert.Len(t, AllPairs(10), 45)
}

func TestResolvePairs(t *testing.T) {
	t.Parallel()

	t.Run("nil means all pairs", func(t *testing.T) {
		t.Parallel()

		got, err := ResolvePairs(3, nil)
		require.NoError(t, err)
		assert.Equal(t, []Pair{{0, 1}, {0, 2}, {1, 2}}, got)
	})

	t.Run("empty list means none", func(t *testing.T) {
		t.Parallel()

		got, err := ResolvePairs(3, []Pair{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("explicit order kept", func(t *testing.T) {
		t.Parallel()

		in := []Pair{{2, 0}, {1, 1}, {0, 1}, {2, 0}}
		got, err := ResolvePairs(3, in)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		// The resolved list is a copy.
		got[0] = Pair{0, 0}
		assert.Equal(t, Pair{2, 0}, in[0])
	})
}

func TestResolvePairs_OutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pairs   []Pair
		wantPos int
		wantIdx int
	}{
		{name: "j too large", pairs: []Pair{{0, 1}, {1, 3}}, wantPos: 1, wantIdx: 3},
		{name: "negative i", pairs: []Pair{{-1, 0}}, wantPos: 0, wantIdx: -1},
		{name: "one-based last", pairs: []Pair{{0, 1}, {2, 3}, {0, 0}}, wantPos: 1, wantIdx: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ResolvePairs(3, tt.pairs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange))

			var ierr *IndexError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, "pairs", ierr.Field)
			assert.Equal(t, tt.wantPos, ierr.Position)
			assert.Equal(t, tt.wantIdx, ierr.Index)
			assert.Equal(t, 3, ierr.NumDocs)
		})
	}
}

func TestSelectRequests(t *testing.T) {
	t.Parallel()

	pairs := []Pair{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {0, 3}}
	reqs := selectRequests(pairs, map[int]struct{}{2: {}})

	require.Len(t, reqs, 2)
	assert.Equal(t, request{pair: Pair{0, 1}, slot: 0}, reqs[0])
	assert.Equal(t, request{pair: Pair{0, 3}, slot: 1}, reqs[1])

	all := selectRequests(pairs, nil)
	assert.Len(t, all, len(pairs))
}
