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
	"slices"
	"time"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/statistics/generator"
	"github.com/0xsoniclabs/sobol/sobol/statistics/sampler"
	"github.com/0xsoniclabs/sobol/utils/analytics"
	"github.com/cockroachdb/errors"
)

// DefaultSuperRuns is the default number of outer iterations.
const DefaultSuperRuns = 10000

// IndexEstimator computes a Sobol index for a vector of uncertainties. It is
// the model of the outer Super Sobol loop; Estimator implements it.
type IndexEstimator interface {
	Dim() int
	ComputeSensitivityIndices(uncertainties []float64, indices IndexSet) (float64, error)
}

// SuperConfig holds the run parameters of a SuperEstimator.
type SuperConfig struct {
	Runs            int   // outer iterations
	Seed            int64 // seed of the engine randomizing the outer stream
	RandomizedStart bool
	RandomPermute   bool
}

// DefaultSuperConfig returns the default outer configuration. Its seed
// differs from the default inner seed so that the two streams are not
// randomized alike.
func DefaultSuperConfig() SuperConfig {
	return SuperConfig{
		Runs:            DefaultSuperRuns,
		Seed:            generator.DefaultSeed + 1,
		RandomizedStart: true,
		RandomPermute:   true,
	}
}

// SuperResults are the outcome of a Super Sobol estimation. Lower and Total
// are NOT normalized by the variance of the inner index: Lower is the mean
// of F*(F_model1-F2) and Total is half the mean of (F-F_model2)^2. Divide
// by Variance (or 2*Variance) to obtain the normalized convention of the
// inner estimator.
type SuperResults struct {
	Lower    float64                     `json:"lowerSuper"`
	Total    float64                     `json:"totalSuper"`
	Mean     float64                     `json:"superMean"`
	Variance float64                     `json:"superVariance"`
	Indices  IndexSet                    `json:"indices"`
	Runs     int                         `json:"runs"`
	Inner    *analytics.IncrementalStats `json:"inner"`
}

// SuperEstimator estimates the sensitivity of a Sobol index to the
// uncertainty of the distribution parameters of the model inputs.
type SuperEstimator struct {
	inner   IndexEstimator
	hyper   DistributionTable
	indices IndexSet
	dim     int
	cfg     SuperConfig

	engine  *generator.Engine
	stream  generator.Stream
	sampler *sampler.InverseSampler
	log     logger.Logger

	results SuperResults
}

// NewSuperEstimator creates a Super Sobol estimator over the inner
// estimator. The hyper table bounds the uncertainty of every parameter and
// the index set selects the parameters whose uncertainty is varied.
func NewSuperEstimator(inner IndexEstimator, hyper DistributionTable, indices IndexSet, cfg SuperConfig, log logger.Logger) (*SuperEstimator, error) {
	if inner == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "inner estimator is missing")
	}
	dim := inner.Dim()
	if err := hyper.Validate(dim); err != nil {
		return nil, errors.Wrap(err, "hyperparameter table")
	}
	if err := indices.Validate(dim); err != nil {
		return nil, err
	}
	if cfg.Runs <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "number of super runs must be positive, got %v", cfg.Runs)
	}
	if log == nil {
		log = logger.NewLogger("info", "Super-Sobol")
	}
	engine := generator.NewEngine(cfg.Seed)
	return &SuperEstimator{
		inner:   inner,
		hyper:   slices.Clone(hyper),
		indices: NewIndexSet(indices...),
		dim:     dim,
		cfg:     cfg,
		engine:  engine,
		stream:  generator.NewHalton(engine.Rand()),
		sampler: sampler.NewInverseSampler(engine, log),
		log:     log,
	}, nil
}

// ComputeSuperSobolIndices runs the outer Monte Carlo loop. Every outer
// iteration calls the inner estimator four times.
func (s *SuperEstimator) ComputeSuperSobolIndices() (SuperResults, error) {
	mask := s.indices.Mask(s.dim)
	s.engine.Seed(s.cfg.Seed)
	if err := s.stream.Init(2*s.dim, s.cfg.RandomizedStart, s.cfg.RandomPermute); err != nil {
		return SuperResults{}, errors.Wrap(err, "cannot initialize stream")
	}

	var (
		s1    = make([]float64, s.dim)
		s2    = make([]float64, s.dim)
		sArg1 = make([]float64, s.dim)
		sArg2 = make([]float64, s.dim)

		sumF0, sumD, sumDy, sumDT float64
	)
	stats := analytics.NewIncrementalStats()
	step := max(1, s.cfg.Runs/10)
	start := time.Now()

	for i := range s.cfg.Runs {
		s.stream.Advance()
		for j := range s.dim {
			s1[j] = s.sampler.Uniform(s.stream.Coordinate(j+1), s.hyper[j][0], s.hyper[j][1])
			s2[j] = s.sampler.Uniform(s.stream.Coordinate(j+1+s.dim), s.hyper[j][0], s.hyper[j][1])
		}
		pickFreeze(mask, s1, s2, sArg1, sArg2)

		f, err := s.inner.ComputeSensitivityIndices(s1, nil)
		if err != nil {
			return SuperResults{}, err
		}
		f2, err := s.inner.ComputeSensitivityIndices(s2, nil)
		if err != nil {
			return SuperResults{}, err
		}
		fModel1, err := s.inner.ComputeSensitivityIndices(sArg1, nil)
		if err != nil {
			return SuperResults{}, err
		}
		fModel2, err := s.inner.ComputeSensitivityIndices(sArg2, nil)
		if err != nil {
			return SuperResults{}, err
		}

		stats.Add(f)
		sumF0 += f
		sumD += f * f
		sumDy += f * (fModel1 - f2)
		d := f - fModel2
		sumDT += d * d

		if (i+1)%step == 0 {
			h, m, sec := logger.ParseTime(time.Since(start))
			s.log.Infof("Super Sobol %v/%v runs (%v%%), elapsed %vh %vm %vs", i+1, s.cfg.Runs, 100*(i+1)/s.cfg.Runs, h, m, sec)
		}
	}

	n := float64(s.cfg.Runs)
	mean := sumF0 / n
	s.results = SuperResults{
		Lower:    sumDy / n,
		Total:    sumDT / n / 2,
		Mean:     mean,
		Variance: sumD/n - mean*mean,
		Indices:  slices.Clone(s.indices),
		Runs:     s.cfg.Runs,
		Inner:    stats,
	}
	return s.results, nil
}

// Results returns the outcome of the last successful call.
func (s *SuperEstimator) Results() SuperResults {
	return s.results
}

// Hyper returns the hyperparameter table.
func (s *SuperEstimator) Hyper() DistributionTable {
	return slices.Clone(s.hyper)
}
