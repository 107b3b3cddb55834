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
	"fmt"
	"math"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol/statistics/ecdf"
	"github.com/0xsoniclabs/sobol/sobol/statistics/generator"
	"github.com/0xsoniclabs/sobol/sobol/statistics/goodness"
	"github.com/0xsoniclabs/sobol/sobol/statistics/sampler"
	"github.com/0xsoniclabs/sobol/sobol/visualizer"
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/stat"
)

// ErrSamplerRejected is returned if the goodness of fit test rejects the
// normal sampler.
var ErrSamplerRejected = errors.New("normal sampler rejected")

// ValidateCommand checks the normal sampler on the low-discrepancy stream.
var ValidateCommand = cli.Command{
	Action:    validateAction,
	Name:      "validate",
	Usage:     "validate the normal sampler with the Anderson-Darling test",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.SamplesFlag,
		&utils.RandomSeedFlag,
		&utils.RandomizedStartFlag,
		&utils.RandomPermuteFlag,
		&utils.OutputFlag,
		&utils.ChartFlag,
	},
	Description: `
The validate command maps a one-dimensional low-discrepancy stream onto the
standard normal distribution and tests the sample with the Anderson-Darling
statistic at the 5% level. The empirical CDF of the sample can be written
as chart.`,
}

// validation summarizes a sampler validation.
type validation struct {
	samples     int
	mean        float64
	variance    float64
	aSquared    float64
	maxDistance float64
	ecdf        [][2]float64
	reference   [][2]float64
}

func (v *validation) rejected() bool {
	return goodness.RejectsNormal(v.aSquared, goodness.Critical95)
}

func (v *validation) dump() string {
	t := table.NewWriter()
	t.SetTitle("Normal sampler validation")
	t.AppendHeader(table.Row{"Member", "Value"})
	t.AppendRows([]table.Row{
		{"samples", v.samples},
		{"mean", fmt.Sprintf("%.6f", v.mean)},
		{"variance", fmt.Sprintf("%.6f", v.variance)},
		{"A²", fmt.Sprintf("%.4f", v.aSquared)},
		{"critical value", goodness.Critical95},
		{"max ecdf distance", fmt.Sprintf("%.4f", v.maxDistance)},
		{"rejected", v.rejected()},
	})
	return t.Render()
}

// validateNormal draws samples standard normal values from a
// low-discrepancy stream and tests them against the normal CDF.
func validateNormal(cfg *utils.Config, log logger.Logger) (*validation, error) {
	if cfg.Samples < 2 {
		return nil, errors.Newf("validation needs at least 2 samples, got %v", cfg.Samples)
	}
	engine := generator.NewEngine(cfg.RandomSeed)
	stream := generator.NewHalton(engine.Rand())
	if err := stream.Init(1, cfg.RandomizedStart, cfg.RandomPermute); err != nil {
		return nil, err
	}
	s := sampler.NewInverseSampler(engine, log)
	values := make([]float64, cfg.Samples)
	for i := range values {
		stream.Advance()
		values[i] = s.Normal(stream.Coordinate(1), 0, 1)
	}

	v := &validation{samples: cfg.Samples}
	v.mean, v.variance = stat.MeanVariance(values, nil)
	var err error
	if v.aSquared, err = s.AndersonDarlingNormal(values, 0, 1); err != nil {
		return nil, err
	}
	if v.ecdf, err = ecdf.FromSample(values, ecdf.NumPoints); err != nil {
		return nil, err
	}
	lo, hi := v.ecdf[0][0], v.ecdf[len(v.ecdf)-1][0]
	v.reference = ecdf.Reference(s.NormalCDF, lo, hi, ecdf.NumPoints)
	v.maxDistance = ecdf.MaxDistance(v.ecdf, s.NormalCDF)
	if math.IsNaN(v.maxDistance) {
		return nil, errors.New("ecdf distance is not a number")
	}
	return v, nil
}

func validateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sampler Validation")
	log.Noticef("Validate normal sampler with %v samples", cfg.Samples)
	v, err := validateNormal(cfg, log)
	if err != nil {
		return err
	}

	printers := utils.NewPrinters().
		AddPrinterToConsole(false, v.dump).
		AddPrinterToFile(cfg.Output, v.dump)
	if err := emit(printers); err != nil {
		return err
	}
	if cfg.ChartFile != "" {
		log.Noticef("Write chart %v", cfg.ChartFile)
		view := &visualizer.View{Title: "standard normal", ECDF: v.ecdf, Reference: v.reference}
		if err := visualizer.RenderFile(view, cfg.ChartFile); err != nil {
			return err
		}
	}
	if v.rejected() {
		return errors.Wrapf(ErrSamplerRejected, "A² %v exceeds %v", v.aSquared, goodness.Critical95)
	}
	return nil
}
