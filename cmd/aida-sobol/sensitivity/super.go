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
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/urfave/cli/v2"
)

// SuperCommand computes the Super Sobol indices of a study.
var SuperCommand = cli.Command{
	Action:    superAction,
	Name:      "super",
	Usage:     "compute Super Sobol indices of the distribution uncertainty",
	ArgsUsage: "[<study.json>]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.ModelFlag,
		&utils.ConstantsFlag,
		&utils.MonteCarloRunsFlag,
		&utils.SuperSobolRunsFlag,
		&utils.IndicesFlag,
		&utils.SuperIndicesFlag,
		&utils.AlphaFlag,
		&utils.BetaFlag,
		&utils.RandomSeedFlag,
		&utils.RandomizedStartFlag,
		&utils.RandomPermuteFlag,
		&utils.WorkersFlag,
		&utils.OutputFlag,
		&utils.Sqlite3Flag,
	},
	Description: `
The super command estimates how sensitive the total Sobol index of the study
is to the uncertainty of the distribution parameters selected by the super
index set. The uncertainty bounds are taken from the hyperparameter table of
the study or scaled by alpha and beta from the distribution table.`,
}

func superAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OptionalStudyArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Super Sobol")
	est, err := newEstimator(cfg, log)
	if err != nil {
		return err
	}
	hyper, err := cfg.Study.HyperTable()
	if err != nil {
		return err
	}
	super, err := sobol.NewSuperEstimator(est, hyper, cfg.Study.SuperIndices, cfg.SuperConfig(), log)
	if err != nil {
		return err
	}

	log.Noticef("Estimate super indices %v of model %v with %v x 4 x %v runs", cfg.Study.SuperIndices, cfg.Study.Model, cfg.Study.SuperRuns, cfg.Study.Runs)
	start := time.Now()
	res, err := super.ComputeSuperSobolIndices()
	if err != nil {
		return err
	}
	logElapsed(log, start)

	printers, err := newPrinters(cfg,
		super.Dump,
		func() string {
			return formatResults(res.Indices, res.Runs, res.Lower, res.Total, res.Mean, res.Variance)
		},
		superCreate, superInsert,
		func() [][]any {
			return [][]any{{cfg.Study.Model, res.Indices.String(), res.Runs, res.Lower, res.Total, res.Mean, res.Variance}}
		})
	if err != nil {
		return err
	}
	return emit(printers)
}
