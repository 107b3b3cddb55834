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

package utils

import (
	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/0xsoniclabs/sobol/sobol/models"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentMode defines the positional arguments a command accepts.
type ArgumentMode int

const (
	NoArgs           ArgumentMode = iota // no positional arguments
	OptionalStudyArg                     // an optional study file
)

// Config of a sensitivity command. The study is loaded from the study file
// or from the reference study of the model; flags that are set override it.
type Config struct {
	AppName     string
	CommandName string
	LogLevel    string

	StudyFile string       // study file given as argument
	Study     *sobol.Study // effective study

	RandomSeed      int64   // seed of the inner stream; the outer stream uses seed+1
	RandomizedStart bool    // randomized start of the streams
	RandomPermute   bool    // random digit permutation of the streams
	Workers         int     // goroutines evaluating the model
	Samples         int     // samples drawn by the validation
	Output          string  // tab separated output file
	DbFile          string  // sqlite3 database
	ChartFile       string  // html chart file
	Port            string  // port of the chart server
	CoV             float64 // coefficient of variation of the validation and sweeps
}

// NewConfig creates a configuration from the command line context.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := &Config{
		LogLevel:        ctx.String(logger.LogLevelFlag.Name),
		RandomSeed:      ctx.Int64(RandomSeedFlag.Name),
		RandomizedStart: ctx.Bool(RandomizedStartFlag.Name),
		RandomPermute:   ctx.Bool(RandomPermuteFlag.Name),
		Workers:         WorkersFlag.Value,
		Samples:         ctx.Int(SamplesFlag.Name),
		Output:          ctx.String(OutputFlag.Name),
		DbFile:          ctx.String(Sqlite3Flag.Name),
		ChartFile:       ctx.String(ChartFlag.Name),
		Port:            ctx.String(PortFlag.Name),
		CoV:             ctx.Float64(CoVFlag.Name),
	}
	if ctx.App != nil {
		cfg.AppName = ctx.App.HelpName
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = logger.LogLevelFlag.Value
	}
	if ctx.IsSet(WorkersFlag.Name) {
		cfg.Workers = ctx.Int(WorkersFlag.Name)
	}
	if cfg.Workers <= 0 {
		return nil, errors.Wrapf(sobol.ErrInvalidConfig, "number of workers must be positive, got %v", cfg.Workers)
	}

	switch mode {
	case NoArgs:
		if ctx.Args().Len() > 0 {
			return nil, errors.Newf("command takes no arguments, got %v", ctx.Args().Slice())
		}
	case OptionalStudyArg:
		if ctx.Args().Len() > 1 {
			return nil, errors.Newf("command takes at most one study file, got %v", ctx.Args().Slice())
		}
		cfg.StudyFile = ctx.Args().First()
	default:
		return nil, errors.Newf("unknown argument mode %v", mode)
	}

	study, err := loadStudy(ctx, cfg.StudyFile)
	if err != nil {
		return nil, err
	}
	if err := overrideStudy(ctx, study); err != nil {
		return nil, err
	}
	if err := study.Validate(); err != nil {
		return nil, err
	}
	cfg.Study = study
	return cfg, nil
}

// loadStudy reads the study file or creates the reference study of the
// model flag.
func loadStudy(ctx *cli.Context, filename string) (*sobol.Study, error) {
	if filename == "" {
		model := ctx.String(ModelFlag.Name)
		if model == "" {
			model = ModelFlag.Value
		}
		return models.NewStudy(model)
	}
	return sobol.ReadStudy(filename)
}

// overrideStudy replaces study values by flags that are set.
func overrideStudy(ctx *cli.Context, study *sobol.Study) error {
	if ctx.IsSet(ModelFlag.Name) {
		study.Model = ctx.String(ModelFlag.Name)
	}
	if ctx.IsSet(ConstantsFlag.Name) {
		study.Constants = ctx.Float64Slice(ConstantsFlag.Name)
	}
	if ctx.IsSet(MonteCarloRunsFlag.Name) {
		study.Runs = ctx.Int(MonteCarloRunsFlag.Name)
	}
	if ctx.IsSet(SuperSobolRunsFlag.Name) {
		study.SuperRuns = ctx.Int(SuperSobolRunsFlag.Name)
	}
	if ctx.IsSet(IndicesFlag.Name) {
		indices, err := sobol.ParseIndexSet(ctx.String(IndicesFlag.Name))
		if err != nil {
			return err
		}
		study.Indices = indices
	}
	if ctx.IsSet(SuperIndicesFlag.Name) {
		indices, err := sobol.ParseIndexSet(ctx.String(SuperIndicesFlag.Name))
		if err != nil {
			return err
		}
		study.SuperIndices = indices
	}
	if ctx.IsSet(CoVFlag.Name) {
		study.CoV = ctx.Float64(CoVFlag.Name)
	}
	if ctx.IsSet(CoVListFlag.Name) {
		study.CoVs = ctx.Float64Slice(CoVListFlag.Name)
	}
	if ctx.IsSet(AlphaFlag.Name) || ctx.IsSet(BetaFlag.Name) {
		study.Hyper = nil
		study.Alpha = ctx.Float64(AlphaFlag.Name)
		study.Beta = ctx.Float64(BetaFlag.Name)
	}
	return nil
}

// EstimatorConfig returns the run parameters of the inner estimator.
func (cfg *Config) EstimatorConfig() sobol.EstimatorConfig {
	return sobol.EstimatorConfig{
		Runs:            cfg.Study.Runs,
		CoV:             cfg.Study.CoV,
		Workers:         cfg.Workers,
		Seed:            cfg.RandomSeed,
		RandomizedStart: cfg.RandomizedStart,
		RandomPermute:   cfg.RandomPermute,
	}
}

// SuperConfig returns the run parameters of the outer estimator.
func (cfg *Config) SuperConfig() sobol.SuperConfig {
	return sobol.SuperConfig{
		Runs:            cfg.Study.SuperRuns,
		Seed:            cfg.RandomSeed + 1,
		RandomizedStart: cfg.RandomizedStart,
		RandomPermute:   cfg.RandomPermute,
	}
}
