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

package models

import (
	"math"
	"testing"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_Linear(t *testing.T) {
	y, err := Linear([]float64{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y, 1e-15)
	y, err = Linear([]float64{1, 2}, []float64{2})
	require.NoError(t, err)
	assert.Equal(t, 6.0, y)
}

func TestModels_Ishigami(t *testing.T) {
	y, err := Ishigami([]float64{math.Pi / 2, math.Pi / 2, 1}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1+0.1+7, y, 1e-12)
	y, err = Ishigami([]float64{0, math.Pi / 2, 2}, []float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y, 1e-12)
	_, err = Ishigami([]float64{0, 0}, nil)
	assert.Error(t, err)
}

func TestModels_GFunction(t *testing.T) {
	y, err := GFunction([]float64{0, 0.5, 1}, []float64{0, 1})
	require.NoError(t, err)
	// (2+0)/1 * (0+1)/2 * (2+0)/1
	assert.InDelta(t, 2.0, y, 1e-15)
	_, err = GFunction([]float64{0.3}, []float64{-1})
	assert.Error(t, err)
}

func TestModels_LookupAndNames(t *testing.T) {
	assert.Equal(t, []string{"gfunction", "ishigami", "linear"}, Names())
	for _, name := range Names() {
		m, err := Lookup(name)
		require.NoError(t, err)
		study, err := NewStudy(name)
		require.NoError(t, err)
		require.NoError(t, study.Validate())
		assert.Equal(t, name, study.Model)

		params := study.Distributions.Means()
		_, err = m.Evaluate(params, study.Constants)
		assert.NoError(t, err)
	}
	_, err := Lookup("heston")
	assert.True(t, errors.Is(err, ErrUnknownModel))
	_, err = NewStudy("heston")
	assert.True(t, errors.Is(err, ErrUnknownModel))
}

func estimate(t *testing.T, name string, runs int, indices sobol.IndexSet) sobol.Results {
	t.Helper()
	study, err := NewStudy(name)
	require.NoError(t, err)
	model, err := Lookup(name)
	require.NoError(t, err)
	cfg := sobol.DefaultEstimatorConfig()
	cfg.Runs = runs
	e, err := sobol.NewEstimator(model, study.Constants, indices, study.Distributions, study.Dim, cfg, logger.NewLogger("critical", "models-test"))
	require.NoError(t, err)
	_, err = e.ComputeSensitivityIndices(nil, nil)
	require.NoError(t, err)
	return e.Results()
}

func TestModels_IshigamiIndices(t *testing.T) {
	// analytical values for a=7, b=0.1
	s1 := estimate(t, "ishigami", 50000, sobol.IndexSet{1})
	assert.InDelta(t, 0.3139, s1.Lower, 0.05)
	assert.InDelta(t, 0.5576, s1.Total, 0.05)
	assert.InDelta(t, 3.5, s1.Mean, 0.1)

	s3 := estimate(t, "ishigami", 50000, sobol.IndexSet{3})
	assert.InDelta(t, 0.0, s3.Lower, 0.05)
	assert.InDelta(t, 0.2437, s3.Total, 0.05)
}

func TestModels_GFunctionIndices(t *testing.T) {
	// V_j = 1/(3(1+a_j)^2), V = prod(1+V_j)-1
	vj := []float64{1.0 / 3, 1.0 / 12, 1.0 / (3 * 5.5 * 5.5), 1.0 / 300}
	v := 1.0
	for _, x := range vj {
		v *= 1 + x
	}
	v--
	res := estimate(t, "gfunction", 50000, sobol.IndexSet{1})
	assert.InDelta(t, vj[0]/v, res.Lower, 0.05)
	assert.InDelta(t, 1.0, res.Mean, 0.02)
}
