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
	"context"
	"math"
	"slices"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/statistics/generator"
	"github.com/0xsoniclabs/sobol/sobol/statistics/sampler"
	"github.com/0xsoniclabs/sobol/sobol/statistics/uniform"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRuns = 10000 // Monte Carlo iterations per estimator call
	DefaultCoV  = 1.0   // coefficient of variation

	// blockSize is the number of stream vectors generated ahead of the
	// workers of a parallel estimator.
	blockSize = 4096
)

// EstimatorConfig holds the run parameters of an Estimator.
type EstimatorConfig struct {
	Runs            int     // Monte Carlo iterations per call
	CoV             float64 // coefficient of variation, the default sweep value
	Workers         int     // goroutines evaluating the model; 1 is sequential
	Seed            int64   // seed of the engine randomizing the stream
	RandomizedStart bool    // start the stream at a random index
	RandomPermute   bool    // scramble the digits of the stream
}

// DefaultEstimatorConfig returns the configuration of a sequential
// estimator with a randomized, permuted stream.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		Runs:            DefaultRuns,
		CoV:             DefaultCoV,
		Workers:         1,
		Seed:            generator.DefaultSeed,
		RandomizedStart: true,
		RandomPermute:   true,
	}
}

func (c EstimatorConfig) validate() error {
	if c.Runs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of runs must be positive, got %v", c.Runs)
	}
	if c.Workers <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of workers must be positive, got %v", c.Workers)
	}
	if !isFinite(c.CoV) || c.CoV < 0 {
		return errors.Wrapf(ErrInvalidConfig, "coefficient of variation must be non-negative, got %v", c.CoV)
	}
	return nil
}

// Results are the outcome of the last estimator call. Lower and Total are
// normalized by the model variance.
type Results struct {
	Lower    float64  `json:"lower"`
	Total    float64  `json:"total"`
	Mean     float64  `json:"mean"`
	Variance float64  `json:"variance"`
	Indices  IndexSet `json:"indices"`
	Runs     int      `json:"runs"`
}

// Estimator computes lower and total Sobol indices of a model with the
// pick-and-freeze Monte Carlo method. Every call restarts the stream from
// the configured seed, so that identical inputs give identical indices.
// An Estimator is not safe for concurrent use.
type Estimator struct {
	model     Model
	constants []float64
	indices   IndexSet
	table     DistributionTable
	dim       int
	cfg       EstimatorConfig

	engine  *generator.Engine
	stream  generator.Stream
	sampler *sampler.InverseSampler
	log     logger.Logger

	results Results
}

// NewEstimator creates an estimator for the given model with a default
// index set and distribution table of dim parameters.
func NewEstimator(model Model, constants []float64, indices IndexSet, table DistributionTable, dim int, cfg EstimatorConfig, log logger.Logger) (*Estimator, error) {
	if model == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "model is missing")
	}
	if dim <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "dimension must be positive, got %v", dim)
	}
	if err := indices.Validate(dim); err != nil {
		return nil, err
	}
	if err := table.Validate(dim); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewLogger("info", "Sobol")
	}
	engine := generator.NewEngine(cfg.Seed)
	return &Estimator{
		model:     model,
		constants: slices.Clone(constants),
		indices:   NewIndexSet(indices...),
		table:     slices.Clone(table),
		dim:       dim,
		cfg:       cfg,
		engine:    engine,
		stream:    generator.NewHalton(engine.Rand()),
		sampler:   sampler.NewInverseSampler(engine, log),
		log:       log,
	}, nil
}

// ComputeSensitivityIndices runs one Monte Carlo estimation and returns the
// total index. A non-empty uncertainty vector replaces the second coordinate
// of every distribution for this call only; a non-nil index set overrides
// the default index set for this call only. Model errors are returned
// unmodified.
func (e *Estimator) ComputeSensitivityIndices(uncertainties []float64, indices IndexSet) (float64, error) {
	if indices == nil {
		indices = e.indices
	} else if err := indices.Validate(e.dim); err != nil {
		return 0, err
	}
	table, err := e.table.WithUncertainties(uncertainties)
	if err != nil {
		return 0, err
	}
	res, err := e.estimate(table, indices)
	if err != nil {
		return 0, err
	}
	e.results = res
	return res.Total, nil
}

// estimate computes the indices of the index set under the given table.
func (e *Estimator) estimate(table DistributionTable, indices IndexSet) (Results, error) {
	mask := indices.Mask(e.dim)
	e.engine.Seed(e.cfg.Seed)
	if err := e.stream.Init(2*e.dim, e.cfg.RandomizedStart, e.cfg.RandomPermute); err != nil {
		return Results{}, errors.Wrap(err, "cannot initialize stream")
	}

	e.log.Debugf("Estimating indices %v with %v runs and %v worker(s)", indices, e.cfg.Runs, e.cfg.Workers)
	var (
		acc accumulator
		err error
	)
	if e.cfg.Workers == 1 {
		acc, err = e.runSequential(table, mask)
	} else {
		acc, err = e.runParallel(table, mask)
	}
	if err != nil {
		return Results{}, err
	}

	res, err := acc.results()
	res.Indices = slices.Clone(indices)
	if err != nil {
		return res, err
	}
	e.log.Debugf("Indices %v: lower %v, total %v, mean %v, variance %v", indices, res.Lower, res.Total, res.Mean, res.Variance)
	return res, nil
}

// draw advances the stream and maps the first dim coordinates into x1 and
// the remaining dim coordinates into x2.
func (e *Estimator) draw(table DistributionTable, x1, x2 []float64) {
	e.stream.Advance()
	for j := range e.dim {
		x1[j] = e.sampler.Uniform(e.stream.Coordinate(j+1), table[j][0], table[j][1])
		x2[j] = e.sampler.Uniform(e.stream.Coordinate(j+1+e.dim), table[j][0], table[j][1])
	}
}

func (e *Estimator) runSequential(table DistributionTable, mask []bool) (accumulator, error) {
	var acc accumulator
	w := newWorkspace(e.dim)
	for range e.cfg.Runs {
		e.draw(table, w.x1, w.x2)
		if err := w.evaluate(e.model, e.constants, mask, &acc); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// runParallel generates the stream block by block and lets every worker
// evaluate a fixed contiguous range of each block.
func (e *Estimator) runParallel(table DistributionTable, mask []bool) (accumulator, error) {
	var total accumulator
	workers := e.cfg.Workers
	stride := 2 * e.dim
	buffer := make([]float64, min(blockSize, e.cfg.Runs)*stride)
	spaces := make([]*workspace, workers)
	for i := range spaces {
		spaces[i] = newWorkspace(e.dim)
	}

	for done := 0; done < e.cfg.Runs; {
		n := min(blockSize, e.cfg.Runs-done)
		for i := range n {
			row := buffer[i*stride : (i+1)*stride]
			e.draw(table, row[:e.dim], row[e.dim:])
		}

		partials := make([]accumulator, workers)
		chunk := (n + workers - 1) / workers
		g, ctx := errgroup.WithContext(context.Background())
		for w := range workers {
			lo, hi := w*chunk, min((w+1)*chunk, n)
			if lo >= hi {
				break
			}
			g.Go(func() error {
				ws := spaces[w]
				for i := lo; i < hi; i++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					row := buffer[i*stride : (i+1)*stride]
					copy(ws.x1, row[:e.dim])
					copy(ws.x2, row[e.dim:])
					if err := ws.evaluate(e.model, e.constants, mask, &partials[w]); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return total, err
		}
		for _, p := range partials {
			total.merge(p)
		}
		done += n
	}
	return total, nil
}

// workspace holds the argument vectors of one goroutine.
type workspace struct {
	x1, x2, arg1, arg2 []float64
}

func newWorkspace(dim int) *workspace {
	return &workspace{
		x1:   make([]float64, dim),
		x2:   make([]float64, dim),
		arg1: make([]float64, dim),
		arg2: make([]float64, dim),
	}
}

// evaluate builds the pick-and-freeze arguments and evaluates the model at
// x1, arg1 and arg2.
func (w *workspace) evaluate(model Model, constants []float64, mask []bool, acc *accumulator) error {
	pickFreeze(mask, w.x1, w.x2, w.arg1, w.arg2)
	f, err := model.Evaluate(w.x1, constants)
	if err != nil {
		return err
	}
	fArg1, err := model.Evaluate(w.arg1, constants)
	if err != nil {
		return err
	}
	fArg2, err := model.Evaluate(w.arg2, constants)
	if err != nil {
		return err
	}
	acc.add(f, fArg1, fArg2)
	return nil
}

// Sweep recomputes the indices of the default index set for every
// coefficient of variation. Each parameter keeps its mean and gets a
// uniform distribution with standard deviation cov*|mean|.
func (e *Estimator) Sweep(covs []float64) ([]SweepRow, error) {
	if len(covs) == 0 {
		covs = []float64{e.cfg.CoV}
	}
	rows := make([]SweepRow, 0, len(covs))
	for _, cov := range covs {
		if !isFinite(cov) || cov < 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "coefficient of variation must be non-negative, got %v", cov)
		}
		res, err := e.estimate(CoVTable(e.table, cov), e.indices)
		if err != nil {
			return nil, errors.Wrapf(err, "coefficient of variation %v", cov)
		}
		rows = append(rows, SweepRow{
			CoV:      cov,
			Lower:    res.Lower,
			Total:    res.Total,
			Mean:     res.Mean,
			Variance: res.Variance,
		})
	}
	return rows, nil
}

// Results returns the outcome of the last successful call.
func (e *Estimator) Results() Results {
	return e.results
}

// Dim returns the number of model parameters.
func (e *Estimator) Dim() int {
	return e.dim
}

// Indices returns the default index set.
func (e *Estimator) Indices() IndexSet {
	return slices.Clone(e.indices)
}

// Table returns the default distribution table.
func (e *Estimator) Table() DistributionTable {
	return slices.Clone(e.table)
}

// Config returns the run parameters.
func (e *Estimator) Config() EstimatorConfig {
	return e.cfg
}

// normalizedSpread is the standard deviation over mean of a uniform
// distribution; it is reported next to the configured CoV.
func normalizedSpread(p [2]float64) float64 {
	m := uniform.Mean(p[0], p[1])
	if m == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(uniform.Variance(p[0], p[1])) / math.Abs(m)
}
