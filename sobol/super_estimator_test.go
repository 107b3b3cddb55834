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
	"testing"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// firstUncertainty is an inner estimator whose index is the first
// uncertainty it is called with.
type firstUncertainty struct {
	dim   int
	calls int
	fail  int // call number returning an error, zero never fails
	err   error
}

func (f *firstUncertainty) Dim() int {
	return f.dim
}

func (f *firstUncertainty) ComputeSensitivityIndices(uncertainties []float64, indices IndexSet) (float64, error) {
	f.calls++
	if f.calls == f.fail {
		return 0, f.err
	}
	return uncertainties[0], nil
}

func newTestSuperConfig(runs int) SuperConfig {
	cfg := DefaultSuperConfig()
	cfg.Runs = runs
	return cfg
}

func TestSuperEstimator_VaryingTheInfluentialUncertainty(t *testing.T) {
	inner := &firstUncertainty{dim: 2}
	hyper := DistributionTable{{1, 3}, {1, 3}}
	s, err := NewSuperEstimator(inner, hyper, IndexSet{1}, newTestSuperConfig(2000), testLogger())
	require.NoError(t, err)

	res, err := s.ComputeSuperSobolIndices()
	require.NoError(t, err)
	assert.Equal(t, 4*2000, inner.calls)

	// F is U(1,3): mean 2, variance 1/3
	assert.InDelta(t, 2.0, res.Mean, 0.01)
	assert.InDelta(t, 1.0/3.0, res.Variance, 0.01)
	assert.InDelta(t, res.Variance, res.Lower, 0.02)
	assert.InDelta(t, res.Variance, res.Total, 0.02)
	assert.Equal(t, IndexSet{1}, res.Indices)
	assert.Equal(t, 2000, res.Runs)
	require.NotNil(t, res.Inner)
	assert.Equal(t, uint64(2000), res.Inner.Count())
	assert.InDelta(t, res.Mean, res.Inner.Mean(), 1e-9)
	assert.Equal(t, res, s.Results())
}

func TestSuperEstimator_VaryingAnIrrelevantUncertainty(t *testing.T) {
	inner := &firstUncertainty{dim: 2}
	hyper := DistributionTable{{1, 3}, {1, 3}}
	s, err := NewSuperEstimator(inner, hyper, IndexSet{2}, newTestSuperConfig(500), testLogger())
	require.NoError(t, err)

	res, err := s.ComputeSuperSobolIndices()
	require.NoError(t, err)
	assert.Zero(t, res.Lower)
	assert.Zero(t, res.Total)
	assert.Greater(t, res.Variance, 0.0)
}

func TestSuperEstimator_InnerErrorIsReturnedUnmodified(t *testing.T) {
	innerErr := errors.New("inner failure")
	inner := &firstUncertainty{dim: 2, fail: 7, err: innerErr}
	s, err := NewSuperEstimator(inner, DistributionTable{{1, 3}, {1, 3}}, IndexSet{1}, newTestSuperConfig(10), testLogger())
	require.NoError(t, err)

	_, err = s.ComputeSuperSobolIndices()
	assert.Equal(t, innerErr, err)
	assert.Equal(t, 7, inner.calls)
}

func TestSuperEstimator_ReportsProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), gomock.Any()).Times(10)

	s, err := NewSuperEstimator(&firstUncertainty{dim: 1}, DistributionTable{{1, 2}}, IndexSet{1}, newTestSuperConfig(50), log)
	require.NoError(t, err)
	_, err = s.ComputeSuperSobolIndices()
	require.NoError(t, err)
}

func TestSuperEstimator_LinearModelStaysFiniteAndBounded(t *testing.T) {
	cfg := DefaultEstimatorConfig()
	cfg.Runs = 1000
	inner := newLinearEstimator(t, cfg)
	hyper, err := UncertaintyBounds(linearTable, 0.5, 1.5)
	require.NoError(t, err)

	s, err := NewSuperEstimator(inner, hyper, IndexSet{1}, newTestSuperConfig(40), testLogger())
	require.NoError(t, err)
	res, err := s.ComputeSuperSobolIndices()
	require.NoError(t, err)

	for _, v := range []float64{res.Lower, res.Total, res.Mean, res.Variance} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite result %v", res)
	}
	assert.GreaterOrEqual(t, res.Variance, 0.0)
	assert.GreaterOrEqual(t, res.Total, 0.0)
	// the inner index is a share of the variance
	assert.Greater(t, res.Mean, 0.0)
	assert.Less(t, res.Mean, 1.0)
	// the un-normalized indices are of the order of the variance of the inner index
	assert.Greater(t, res.Variance, 0.0)
	assert.LessOrEqual(t, math.Abs(res.Lower), 2*res.Variance)
	assert.LessOrEqual(t, res.Total, 2*res.Variance)
	assert.Equal(t, uint64(40), res.Inner.Count())
}

func TestSuperEstimator_IsReproducible(t *testing.T) {
	run := func() SuperResults {
		s, err := NewSuperEstimator(&firstUncertainty{dim: 3}, DistributionTable{{0, 1}, {1, 2}, {2, 3}}, IndexSet{1, 3}, newTestSuperConfig(100), testLogger())
		require.NoError(t, err)
		res, err := s.ComputeSuperSobolIndices()
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Lower, b.Lower)
	assert.Equal(t, a.Total, b.Total)
	assert.Equal(t, a.Mean, b.Mean)
}

func TestSuperEstimator_InvalidConfiguration(t *testing.T) {
	inner := &firstUncertainty{dim: 2}
	_, err := NewSuperEstimator(nil, DistributionTable{{1, 3}, {1, 3}}, IndexSet{1}, newTestSuperConfig(10), testLogger())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewSuperEstimator(inner, DistributionTable{{1, 3}}, IndexSet{1}, newTestSuperConfig(10), testLogger())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewSuperEstimator(inner, DistributionTable{{1, 3}, {1, 3}}, IndexSet{3}, newTestSuperConfig(10), testLogger())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewSuperEstimator(inner, DistributionTable{{1, 3}, {1, 3}}, IndexSet{1}, newTestSuperConfig(0), testLogger())
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
