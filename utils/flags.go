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
	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/0xsoniclabs/sobol/sobol/statistics/generator"
	"github.com/urfave/cli/v2"
)

// Command line flags of the sensitivity tools. Flags that are set override
// the values of a study file.
var (
	ModelFlag = cli.StringFlag{
		Name:  "model",
		Usage: "built-in model (\"linear\", \"ishigami\", \"gfunction\")",
		Value: "linear",
	}
	ConstantsFlag = cli.Float64SliceFlag{
		Name:  "constants",
		Usage: "comma separated constants passed to the model",
	}
	MonteCarloRunsFlag = cli.IntFlag{
		Name:    "runs",
		Aliases: []string{"n"},
		Usage:   "number of Monte Carlo runs of a Sobol estimation",
		Value:   sobol.DefaultRuns,
	}
	SuperSobolRunsFlag = cli.IntFlag{
		Name:  "super-runs",
		Usage: "number of outer Monte Carlo runs of a Super Sobol estimation",
		Value: sobol.DefaultSuperRuns,
	}
	IndicesFlag = cli.StringFlag{
		Name:  "indices",
		Usage: "comma separated 1-based parameter positions of the Sobol indices, e.g. \"1,3\"",
	}
	SuperIndicesFlag = cli.StringFlag{
		Name:  "super-indices",
		Usage: "comma separated 1-based positions of the parameters whose uncertainty is varied",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "seed of the engine randomizing the low-discrepancy stream",
		Value: generator.DefaultSeed,
	}
	RandomizedStartFlag = cli.BoolFlag{
		Name:  "randomized-start",
		Usage: "start the low-discrepancy stream at a random index",
		Value: true,
	}
	RandomPermuteFlag = cli.BoolFlag{
		Name:  "random-permute",
		Usage: "randomly permute the digits of the low-discrepancy stream",
		Value: true,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of goroutines evaluating the model",
		Value: 1,
	}
	CoVFlag = cli.Float64Flag{
		Name:  "cov",
		Usage: "coefficient of variation",
		Value: sobol.DefaultCoV,
	}
	CoVListFlag = cli.Float64SliceFlag{
		Name:  "cov-list",
		Usage: "comma separated coefficients of variation of a sweep",
	}
	AlphaFlag = cli.Float64Flag{
		Name:  "alpha",
		Usage: "factor decreasing the calibrated uncertainty",
		Value: 0.5,
	}
	BetaFlag = cli.Float64Flag{
		Name:  "beta",
		Usage: "factor increasing the calibrated uncertainty",
		Value: 1.5,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path",
	}
	Sqlite3Flag = cli.StringFlag{
		Name:  "db",
		Usage: "sqlite3 database receiving the results",
	}
	ChartFlag = cli.StringFlag{
		Name:  "chart",
		Usage: "html file receiving a chart of the results",
	}
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of samples drawn for validation",
		Value: 10000,
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the chart web server",
		Value: "8080",
	}
)
