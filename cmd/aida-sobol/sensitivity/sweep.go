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
	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/0xsoniclabs/sobol/sobol/visualizer"
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/urfave/cli/v2"
)

// SweepCommand recomputes the Sobol indices over coefficients of variation.
var SweepCommand = cli.Command{
	Action:    sweepAction,
	Name:      "sweep",
	Usage:     "compute Sobol indices over coefficients of variation",
	ArgsUsage: "[<study.json>]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.ModelFlag,
		&utils.ConstantsFlag,
		&utils.MonteCarloRunsFlag,
		&utils.IndicesFlag,
		&utils.CoVListFlag,
		&utils.RandomSeedFlag,
		&utils.RandomizedStartFlag,
		&utils.RandomPermuteFlag,
		&utils.WorkersFlag,
		&utils.OutputFlag,
		&utils.Sqlite3Flag,
		&utils.ChartFlag,
	},
	Description: `
The sweep command keeps the mean of every parameter and widens its uniform
distribution to the standard deviation cov*|mean| for every coefficient of
variation cov. It writes a row (cov, lower, total, mean, variance) per
coefficient.`,
}

func sweepAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OptionalStudyArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sobol Sweep")
	est, err := newEstimator(cfg, log)
	if err != nil {
		return err
	}

	log.Noticef("Sweep indices %v of model %v over %v", cfg.Study.Indices, cfg.Study.Model, cfg.Study.CoVs)
	start := time.Now()
	rows, err := est.Sweep(cfg.Study.CoVs)
	if err != nil {
		return err
	}
	logElapsed(log, start)

	text := func() string { return sobol.FormatSweep(rows) }
	printers, err := newPrinters(cfg, text, text, sweepCreate, sweepInsert, func() [][]any {
		values := make([][]any, len(rows))
		for i, row := range rows {
			values[i] = append([]any{cfg.Study.Model, cfg.Study.Indices.String()}, row.Values()...)
		}
		return values
	})
	if err != nil {
		return err
	}
	if err := emit(printers); err != nil {
		return err
	}
	if cfg.ChartFile != "" {
		log.Noticef("Write chart %v", cfg.ChartFile)
		return visualizer.RenderFile(&visualizer.View{Title: cfg.Study.Model, Sweep: rows}, cfg.ChartFile)
	}
	return nil
}
