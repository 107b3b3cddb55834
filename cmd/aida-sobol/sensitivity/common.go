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
	"time"

	"github.com/0xsoniclabs/sobol/logger"
	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/0xsoniclabs/sobol/sobol/models"
	"github.com/0xsoniclabs/sobol/utils"
	"github.com/cockroachdb/errors"
)

// Tables of the sqlite3 output.
const (
	indicesCreate = `CREATE TABLE IF NOT EXISTS sobol_indices (model TEXT, indices TEXT, runs INTEGER, lower REAL, total REAL, mean REAL, variance REAL)`
	indicesInsert = `INSERT INTO sobol_indices (model, indices, runs, lower, total, mean, variance) VALUES (?, ?, ?, ?, ?, ?, ?)`

	superCreate = `CREATE TABLE IF NOT EXISTS super_sobol_indices (model TEXT, indices TEXT, runs INTEGER, lower REAL, total REAL, mean REAL, variance REAL)`
	superInsert = `INSERT INTO super_sobol_indices (model, indices, runs, lower, total, mean, variance) VALUES (?, ?, ?, ?, ?, ?, ?)`

	sweepCreate = `CREATE TABLE IF NOT EXISTS sobol_sweep (model TEXT, indices TEXT, cov REAL, lower REAL, total REAL, mean REAL, variance REAL)`
	sweepInsert = `INSERT INTO sobol_sweep (model, indices, cov, lower, total, mean, variance) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// resultsHeader is the header line of tab separated index results.
const resultsHeader = "indices\truns\tlower\ttotal\tmean\tvariance"

// newEstimator creates the estimator of the study in the configuration.
func newEstimator(cfg *utils.Config, log logger.Logger) (*sobol.Estimator, error) {
	study := cfg.Study
	model, err := models.Lookup(study.Model)
	if err != nil {
		return nil, err
	}
	est, err := sobol.NewEstimator(model, study.Constants, study.Indices, study.Distributions, study.Dim, cfg.EstimatorConfig(), log)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create estimator for model %v", study.Model)
	}
	return est, nil
}

// newPrinters creates the console, file and sqlite3 sinks of a command.
// The console prints dump, the file receives text and sqlite3 inserts rows.
func newPrinters(cfg *utils.Config, dump func() string, text func() string, create, insert string, rows func() [][]any) (*utils.Printers, error) {
	printers := utils.NewPrinters().
		AddPrinterToConsole(false, dump).
		AddPrinterToFile(cfg.Output, text)
	return printers.AddPrinterToSqlite3(cfg.DbFile, create, insert, rows)
}

// emit prints through all sinks and closes them.
func emit(printers *utils.Printers) error {
	return errors.Join(printers.Print(), printers.Close())
}

// formatResults formats results as a tab separated table with header.
func formatResults(indices sobol.IndexSet, runs int, lower, total, mean, variance float64) string {
	return fmt.Sprintf("%v\n%v\t%v\t%v\t%v\t%v\t%v\n", resultsHeader, indices, runs, lower, total, mean, variance)
}

// logElapsed reports the elapsed time since start.
func logElapsed(log logger.Logger, start time.Time) {
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Elapsed time: %vh %vm %vs", hours, minutes, seconds)
}
