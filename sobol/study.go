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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// StudyFileId identifies study files.
const StudyFileId = "sobol-study"

// Study describes a sensitivity study: the model, its parameter
// distributions and the run parameters of both estimators.
type Study struct {
	FileId        string            `json:"FileId"`                 // file identification
	Model         string            `json:"model"`                  // name of a built-in model
	Constants     []float64         `json:"constants"`              // constants passed to the model
	Dim           int               `json:"dim"`                    // number of model parameters
	Indices       IndexSet          `json:"indices"`                // index set of the Sobol indices
	SuperIndices  IndexSet          `json:"superIndices,omitempty"` // index set of the Super Sobol indices
	Distributions DistributionTable `json:"distributions"`          // uniform bounds per parameter
	Hyper         DistributionTable `json:"hyper,omitempty"`        // uncertainty bounds per parameter
	Alpha         float64           `json:"alpha,omitempty"`        // uncertainty scale-down factor
	Beta          float64           `json:"beta,omitempty"`         // uncertainty scale-up factor
	Runs          int               `json:"runs"`                   // Monte Carlo runs per estimation
	SuperRuns     int               `json:"superRuns"`              // outer Super Sobol runs
	CoV           float64           `json:"cov"`                    // coefficient of variation
	CoVs          []float64         `json:"covs,omitempty"`         // coefficients of a sweep
}

// NewStudy returns the reference study: a linear model of four uniform
// parameters with growing ranges.
func NewStudy() *Study {
	return &Study{
		FileId:        StudyFileId,
		Model:         "linear",
		Constants:     []float64{0.1},
		Dim:           4,
		Indices:       IndexSet{1},
		SuperIndices:  IndexSet{2},
		Distributions: DistributionTable{{0, 1}, {0, 4}, {0, 9}, {0, 16}},
		Alpha:         0.5,
		Beta:          1.5,
		Runs:          DefaultRuns,
		SuperRuns:     DefaultSuperRuns,
		CoV:           DefaultCoV,
		CoVs:          []float64{0.01, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35},
	}
}

// Validate checks the consistency of the study.
func (s *Study) Validate() error {
	if s.Model == "" {
		return errors.Wrap(ErrInvalidConfig, "study names no model")
	}
	if s.Dim <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "dimension must be positive, got %v", s.Dim)
	}
	if err := s.Indices.Validate(s.Dim); err != nil {
		return err
	}
	if s.SuperIndices != nil {
		if err := s.SuperIndices.Validate(s.Dim); err != nil {
			return errors.Wrap(err, "super indices")
		}
	}
	if err := s.Distributions.Validate(s.Dim); err != nil {
		return err
	}
	if s.Hyper != nil {
		if err := s.Hyper.Validate(s.Dim); err != nil {
			return errors.Wrap(err, "hyperparameter table")
		}
	}
	if s.Runs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of runs must be positive, got %v", s.Runs)
	}
	if s.SuperRuns <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of super runs must be positive, got %v", s.SuperRuns)
	}
	if !isFinite(s.CoV) || s.CoV < 0 {
		return errors.Wrapf(ErrInvalidConfig, "coefficient of variation must be non-negative, got %v", s.CoV)
	}
	return nil
}

// HyperTable returns the explicit hyperparameter table of the study or
// derives it from alpha and beta.
func (s *Study) HyperTable() (DistributionTable, error) {
	if s.Hyper != nil {
		return s.Hyper, nil
	}
	return UncertaintyBounds(s.Distributions, s.Alpha, s.Beta)
}

// ReadStudy reads a study from a file in JSON format. Run counts and the
// coefficient of variation missing in the file take their default values.
func ReadStudy(filename string) (study *Study, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening study file %v; %v", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading study file; %v", err)
	}
	s := Study{Runs: DefaultRuns, SuperRuns: DefaultSuperRuns, CoV: DefaultCoV}
	if err = json.Unmarshal(contents, &s); err != nil {
		return nil, fmt.Errorf("cannot unmarshal study; %v", err)
	}
	if s.FileId != StudyFileId {
		return nil, fmt.Errorf("file %v is not a study file", filename)
	}
	return &s, nil
}

// Write the study in JSON format.
func (s *Study) Write(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot open JSON file; %v", fErr)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	s.FileId = StudyFileId
	jOut, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %v", err)
	}
	if _, err = fmt.Fprintln(f, string(jOut)); err != nil {
		return fmt.Errorf("failed to write JSON file; %v", err)
	}
	return nil
}
