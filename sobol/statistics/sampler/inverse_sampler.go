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

package sampler

import (
	"math"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/statistics/generator"
	"github.com/0xsoniclabs/sobol/sobol/statistics/goodness"
	"github.com/0xsoniclabs/sobol/sobol/statistics/normal"
	"github.com/0xsoniclabs/sobol/sobol/statistics/pareto"
	"github.com/0xsoniclabs/sobol/sobol/statistics/uniform"
)

// paretoUpperSanityBound is the largest generalized Pareto draw that is not
// reported as an outlier.
const paretoUpperSanityBound = 100.0

// InverseSampler maps uniform draws in [0,1] onto target distributions by
// inverse transform sampling.
type InverseSampler struct {
	engine *generator.Engine
	log    logger.Logger
}

// NewInverseSampler creates a sampler. The engine is only consumed by
// samplers drawing their own uniform number.
func NewInverseSampler(engine *generator.Engine, log logger.Logger) *InverseSampler {
	return &InverseSampler{
		engine: engine,
		log:    log,
	}
}

// Uniform maps u onto the interval [a,b].
func (s *InverseSampler) Uniform(u, a, b float64) float64 {
	return uniform.Quantile(a, b, u)
}

// Normal maps u onto a normal distribution. The variance must be
// non-negative.
func (s *InverseSampler) Normal(u, mean, variance float64) float64 {
	return normal.Quantile(mean, variance, u)
}

// GeneralizedPareto draws a sample of the generalized Pareto distribution
// using the sampler's engine. Invalid parameters are reported and give NaN.
func (s *InverseSampler) GeneralizedPareto(k, sigma, theta float64) float64 {
	if err := pareto.Check(k, sigma, theta); err != nil {
		s.log.Warningf("cannot sample; %v", err)
		return math.NaN()
	}
	u := s.engine.OpenFloat64()
	x := pareto.Quantile(k, sigma, theta, u)
	if x < theta || x > paretoUpperSanityBound {
		s.log.Warningf("generalized Pareto sample %v outside [%v,%v] (k=%v, sigma=%v, u=%v)", x, theta, paretoUpperSanityBound, k, sigma, u)
	}
	return x
}

// AndersonDarlingNormal returns the A² statistic of the sample against a
// normal distribution with the given mean and variance.
func (s *InverseSampler) AndersonDarlingNormal(values []float64, mean, variance float64) (float64, error) {
	return goodness.AndersonDarlingNormal(values, mean, variance)
}

// NormalCDF returns the standard normal cumulative distribution function.
func (s *InverseSampler) NormalCDF(x float64) float64 {
	return normal.CDF(x)
}
