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

package sobol

import (
	"math"
	"slices"

	"github.com/0xsoniclabs/sobol/sobol/statistics/uniform"
	"github.com/cockroachdb/errors"
)

// DistributionTable holds one uniform(a,b) pair per model parameter. The
// second coordinate is the one replaced by uncertainties.
type DistributionTable [][2]float64

// Validate checks the table length and that every pair is a finite,
// non-empty interval a <= b.
func (t DistributionTable) Validate(dim int) error {
	if len(t) != dim {
		return errors.Wrapf(ErrInvalidConfig, "distribution table has %v rows, expected %v", len(t), dim)
	}
	for j, p := range t {
		if !isFinite(p[0]) || !isFinite(p[1]) {
			return errors.Wrapf(ErrInvalidConfig, "distribution of parameter %v has non-finite bounds %v", j+1, p)
		}
		if p[0] > p[1] {
			return errors.Wrapf(ErrInvalidConfig, "distribution of parameter %v has reversed bounds %v", j+1, p)
		}
	}
	return nil
}

// WithUncertainties returns a copy of the table with the second coordinate
// of every pair replaced by the corresponding uncertainty. An empty
// uncertainty vector returns the table unchanged.
func (t DistributionTable) WithUncertainties(uncertainties []float64) (DistributionTable, error) {
	if len(uncertainties) == 0 {
		return t, nil
	}
	if len(uncertainties) != len(t) {
		return nil, errors.Wrapf(ErrInvalidConfig, "got %v uncertainties for %v parameters", len(uncertainties), len(t))
	}
	res := slices.Clone(t)
	for j, u := range uncertainties {
		if !isFinite(u) {
			return nil, errors.Wrapf(ErrInvalidConfig, "uncertainty of parameter %v is not finite, got %v", j+1, u)
		}
		res[j][1] = u
	}
	return res, nil
}

// Means returns the mean of every parameter distribution.
func (t DistributionTable) Means() []float64 {
	m := make([]float64, len(t))
	for j, p := range t {
		m[j] = uniform.Mean(p[0], p[1])
	}
	return m
}

// UncertaintyBounds builds the hyperparameter table [alpha*b, beta*b] that
// scales the calibrated second coordinate b of every parameter down by
// alpha and up by beta.
func UncertaintyBounds(t DistributionTable, alpha, beta float64) (DistributionTable, error) {
	if !(alpha > 0 && alpha < beta) || !isFinite(beta) {
		return nil, errors.Wrapf(ErrInvalidConfig, "uncertainty factors must satisfy 0 < alpha < beta, got alpha=%v beta=%v", alpha, beta)
	}
	res := make(DistributionTable, len(t))
	for j, p := range t {
		lo, hi := alpha*p[1], beta*p[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		res[j] = [2]float64{lo, hi}
	}
	return res, nil
}

// CoVTable keeps the mean m of every parameter and sets the half-width of
// its uniform distribution to sqrt(3)*cov*|m|, so that the standard
// deviation is cov*|m|.
func CoVTable(t DistributionTable, cov float64) DistributionTable {
	res := make(DistributionTable, len(t))
	for j, m := range t.Means() {
		h := math.Sqrt(3) * cov * math.Abs(m)
		res[j] = [2]float64{m - h, m + h}
	}
	return res
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
