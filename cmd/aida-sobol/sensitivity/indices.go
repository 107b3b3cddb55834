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

package sensitivity

import (
	"time"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/visualizer"
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/urfave/cli/v2"
)

// IndicesCommand computes the lower and total Sobol index of a study.
var IndicesCommand = cli.Command{
	Action:    indicesAction,
	Name:      "indices",
	Usage:     "compute lower and total Sobol indices",
	ArgsUsage: "[<study.json>]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.ModelFlag,
		&utils.ConstantsFlag,
		&utils.MonteCarloRunsFlag,
		&utils.IndicesFlag,
		&utils.RandomSeedFlag,
		&utils.RandomizedStartFlag,
		&utils.RandomPermuteFlag,
		&utils.WorkersFlag,
		&utils.OutputFlag,
		&utils.Sqlite3Flag,
		&utils.ChartFlag,
	},
	Description: `
The indices command estimates the lower and total Sobol index of the index
set of a study with the pick-and-freeze Monte Carlo method. Without study file
the reference study of the selected model is used.`,
}

func indicesAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OptionalStudyArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sobol Indices")
	est, err := newEstimator(cfg, log)
	if err != nil {
		return err
	}

	log.Noticef("Estimate indices %v of model %v with %v runs", cfg.Study.Indices, cfg.Study.Model, cfg.Study.Runs)
	start := time.Now()
	if _, err := est.ComputeSensitivityIndices(nil, nil); err != nil {
		return err
	}
	logElapsed(log, start)

	res := est.Results()
	printers, err := newPrinters(cfg,
		est.Dump,
		func() string {
			return formatResults(res.Indices, res.Runs, res.Lower, res.Total, res.Mean, res.Variance)
		},
		indicesCreate, indicesInsert,
		func() [][]any {
			return [][]any{{cfg.Study.Model, res.Indices.String(), res.Runs, res.Lower, res.Total, res.Mean, res.Variance}}
		})
	if err != nil {
		return err
	}
	if err := emit(printers); err != nil {
		return err
	}
	if cfg.ChartFile != "" {
		log.Noticef("Write chart %v", cfg.ChartFile)
		return visualizer.RenderFile(&visualizer.View{Title: cfg.Study.Model, Results: &res}, cfg.ChartFile)
	}
	return nil
}
