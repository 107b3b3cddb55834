// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalton_PrimesAreTheFirstPrimes(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, Primes(10))
	assert.Empty(t, Primes(0))
}

func TestHalton_InitRejectsNonPositiveLength(t *testing.T) {
	h := NewHalton(NewDefaultEngine().Rand())
	assert.Error(t, h.Init(0, false, false))
	assert.Error(t, h.Init(-3, true, true))
}

func TestHalton_AdvanceWithoutInitPanics(t *testing.T) {
	h := NewHalton(NewDefaultEngine().Rand())
	assert.Panics(t, h.Advance)
}

func TestHalton_PlainSequenceMatchesRadicalInverse(t *testing.T) {
	h := NewHalton(NewDefaultEngine().Rand())
	require.NoError(t, h.Init(2, false, false))
	want := [][2]float64{
		{1.0 / 2, 1.0 / 3},
		{1.0 / 4, 2.0 / 3},
		{3.0 / 4, 1.0 / 9},
		{1.0 / 8, 4.0 / 9},
		{5.0 / 8, 7.0 / 9},
	}
	for i, w := range want {
		h.Advance()
		assert.InDelta(t, w[0], h.Coordinate(1), 1e-15, "point %v base 2", i+1)
		assert.InDelta(t, w[1], h.Coordinate(2), 1e-15, "point %v base 3", i+1)
	}
}

func TestHalton_CoordinatesStayInsideOpenUnitInterval(t *testing.T) {
	h := NewHalton(NewEngine(3).Rand())
	require.NoError(t, h.Init(8, true, true))
	assert.Equal(t, 8, h.Length())
	for range 10000 {
		h.Advance()
		for i := 1; i <= 8; i++ {
			u := h.Coordinate(i)
			if u <= 0 || u >= 1 {
				t.Fatalf("coordinate %v outside (0,1): %v", i, u)
			}
		}
	}
}

func TestHalton_SameSeedReproducesSequence(t *testing.T) {
	a := NewHalton(NewEngine(11).Rand())
	b := NewHalton(NewEngine(11).Rand())
	require.NoError(t, a.Init(4, true, true))
	require.NoError(t, b.Init(4, true, true))
	for range 100 {
		a.Advance()
		b.Advance()
		for i := 1; i <= 4; i++ {
			assert.Equal(t, a.Coordinate(i), b.Coordinate(i))
		}
	}
}

func TestHalton_RandomizationChangesSequence(t *testing.T) {
	plain := NewHalton(NewEngine(5).Rand())
	random := NewHalton(NewEngine(5).Rand())
	require.NoError(t, plain.Init(3, false, false))
	require.NoError(t, random.Init(3, true, true))
	plain.Advance()
	random.Advance()
	differs := false
	for i := 1; i <= 3; i++ {
		if plain.Coordinate(i) != random.Coordinate(i) {
			differs = true
		}
	}
	assert.True(t, differs)
}

func TestHalton_DigitPermutationKeepsZeroFixed(t *testing.T) {
	rg := NewEngine(9).Rand()
	for _, b := range Primes(12) {
		perm := digitPermutation(rg, b)
		require.Len(t, perm, int(b))
		assert.Equal(t, uint64(0), perm[0])
		seen := map[uint64]bool{}
		for _, d := range perm {
			assert.Less(t, d, b)
			seen[d] = true
		}
		assert.Len(t, seen, int(b))
	}
}

// TestHalton_MarginalsAreEquidistributed checks that every coordinate of a
// randomized stream has mean 1/2 and variance 1/12.
func TestHalton_MarginalsAreEquidistributed(t *testing.T) {
	h := NewHalton(NewEngine(17).Rand())
	require.NoError(t, h.Init(8, true, true))
	const n = 20000
	sum := make([]float64, 8)
	sq := make([]float64, 8)
	for range n {
		h.Advance()
		for i := 1; i <= 8; i++ {
			u := h.Coordinate(i)
			sum[i-1] += u
			sq[i-1] += u * u
		}
	}
	for d := range 8 {
		mean := sum[d] / n
		variance := sq[d]/n - mean*mean
		assert.InDelta(t, 0.5, mean, 0.005, "dimension %v", d+1)
		assert.InDelta(t, 1.0/12, variance, 0.002, "dimension %v", d+1)
		assert.False(t, math.IsNaN(variance))
	}
}
