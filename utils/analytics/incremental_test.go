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

package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestIncrementalStats_String(t *testing.T) {
	obj := IncrementalStats{
		count: 10,
		min:   0,
		max:   0,
		ksum:  0,
		c:     0,
		m1:    0,
		m2:    0,
		m3:    0,
		m4:    0,
	}

	str, err := json.Marshal(obj)
	assert.NoError(t, err)
	assert.Equal(t, string(str), obj.String())
}

func TestIncrementalStats_EmptyStats(t *testing.T) {
	s := NewIncrementalStats()
	assert.Zero(t, s.Count())
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.Skewness())
	assert.Zero(t, s.Kurtosis())
}

func TestIncrementalStats_MatchesBatchStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9, 1.5, -3, 12.25}
	s := NewIncrementalStats()
	for _, x := range values {
		s.Add(x)
	}
	require.Equal(t, uint64(len(values)), s.Count())
	assert.Equal(t, -3.0, s.Min())
	assert.Equal(t, 12.25, s.Max())
	assert.InDelta(t, 50.75, s.Sum(), 1e-12)

	mean, variance := stat.PopMeanVariance(values, nil)
	assert.InDelta(t, mean, s.Mean(), 1e-12)
	assert.InDelta(t, variance, s.Variance(), 1e-12)
}

func TestIncrementalStats_ConstantStream(t *testing.T) {
	s := NewIncrementalStats()
	for range 100 {
		s.Add(0.25)
	}
	assert.Equal(t, 0.25, s.Min())
	assert.Equal(t, 0.25, s.Max())
	assert.InDelta(t, 25.0, s.Sum(), 1e-12)
	assert.InDelta(t, 0.25, s.Mean(), 1e-15)
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.Skewness())
	assert.Zero(t, s.Kurtosis())
}

func TestIncrementalStats_SkewedStream(t *testing.T) {
	s := NewIncrementalStats()
	for _, x := range []float64{0, 0, 0, 3} {
		s.Add(x)
	}
	assert.InDelta(t, 2/math.Sqrt(3), s.Skewness(), 1e-12)
	assert.InDelta(t, -2.0/3, s.Kurtosis(), 1e-12)
}

func TestIncrementalStats_SymmetricStreamHasNoSkew(t *testing.T) {
	s := NewIncrementalStats()
	for _, x := range []float64{-2, -1, 0, 1, 2} {
		s.Add(x)
	}
	assert.InDelta(t, 0, s.Skewness(), 1e-15)
	// population excess kurtosis of {-2..2} is 1.7-3
	assert.InDelta(t, -1.3, s.Kurtosis(), 1e-12)
}
