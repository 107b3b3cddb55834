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
	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/visualizer"
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand serves the charts of a study on a local web server.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serve charts of indices, sweep and sampler validation",
	ArgsUsage: "[<study.json>]",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.ModelFlag,
		&utils.ConstantsFlag,
		&utils.MonteCarloRunsFlag,
		&utils.IndicesFlag,
		&utils.CoVListFlag,
		&utils.SamplesFlag,
		&utils.RandomSeedFlag,
		&utils.RandomizedStartFlag,
		&utils.RandomPermuteFlag,
		&utils.WorkersFlag,
		&utils.PortFlag,
	},
	Description: `
The visualize command computes the indices, the coefficient of variation
sweep and the sampler validation of a study and serves their charts on
localhost:<port>.`,
}

func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OptionalStudyArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sobol Visualize")
	est, err := newEstimator(cfg, log)
	if err != nil {
		return err
	}
	if _, err := est.ComputeSensitivityIndices(nil, nil); err != nil {
		return err
	}
	res := est.Results()
	rows, err := est.Sweep(cfg.Study.CoVs)
	if err != nil {
		return err
	}
	v, err := validateNormal(cfg, log)
	if err != nil {
		return err
	}

	view := &visualizer.View{
		Title:     cfg.Study.Model,
		Sweep:     rows,
		Results:   &res,
		ECDF:      v.ecdf,
		Reference: v.reference,
	}
	log.Noticef("Open web browser with http://localhost:%v", cfg.Port)
	log.Notice("Cancel with ^C")
	return visualizer.FireUpWeb(view, cfg.Port)
}
