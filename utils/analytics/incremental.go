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
)

// IncrementalStats computes count, extrema, sum and the first four central
// moments of a stream of values in a single pass. The sum is compensated
// with Kahan summation.
type IncrementalStats struct {
	count uint64
	min   float64
	max   float64
	ksum  float64 // Kahan sum
	c     float64 // Kahan compensation
	m1    float64 // mean
	m2    float64 // sum of squared deviations
	m3    float64
	m4    float64
}

// NewIncrementalStats creates an empty accumulator.
func NewIncrementalStats() *IncrementalStats {
	return &IncrementalStats{}
}

// Add a value to the statistics.
func (s *IncrementalStats) Add(x float64) {
	if s.count == 0 || x < s.min {
		s.min = x
	}
	if s.count == 0 || x > s.max {
		s.max = x
	}

	y := x - s.c
	t := s.ksum + y
	s.c = (t - s.ksum) - y
	s.ksum = t

	n1 := float64(s.count)
	s.count++
	n := float64(s.count)
	delta := x - s.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	s.m1 += deltaN
	s.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(n-2) - 3*deltaN*s.m2
	s.m2 += term1
}

// Count returns the number of values.
func (s *IncrementalStats) Count() uint64 {
	return s.count
}

// Min returns the smallest value, zero if empty.
func (s *IncrementalStats) Min() float64 {
	return s.min
}

// Max returns the largest value, zero if empty.
func (s *IncrementalStats) Max() float64 {
	return s.max
}

// Sum returns the compensated sum of all values.
func (s *IncrementalStats) Sum() float64 {
	return s.ksum
}

// Mean returns the arithmetic mean.
func (s *IncrementalStats) Mean() float64 {
	return s.m1
}

// Variance returns the population variance.
func (s *IncrementalStats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.m2 / float64(s.count)
}

// StandardDeviation returns the square root of the population variance.
func (s *IncrementalStats) StandardDeviation() float64 {
	return math.Sqrt(s.Variance())
}

// Skewness returns the population skewness, zero for constant streams.
func (s *IncrementalStats) Skewness() float64 {
	if s.m2 == 0 {
		return 0
	}
	return math.Sqrt(float64(s.count)) * s.m3 / math.Pow(s.m2, 1.5)
}

// Kurtosis returns the excess kurtosis, zero for constant streams.
func (s *IncrementalStats) Kurtosis() float64 {
	if s.m2 == 0 {
		return 0
	}
	return float64(s.count)*s.m4/(s.m2*s.m2) - 3.0
}

type incrementalStatsJSON struct {
	Count    uint64  `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// MarshalJSON encodes the derived statistics.
func (s IncrementalStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(incrementalStatsJSON{
		Count:    s.count,
		Min:      s.min,
		Max:      s.max,
		Sum:      s.ksum,
		Mean:     s.m1,
		Variance: s.Variance(),
		Skewness: s.Skewness(),
		Kurtosis: s.Kurtosis(),
	})
}

// String returns the JSON encoding of the statistics.
func (s IncrementalStats) String() string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}
