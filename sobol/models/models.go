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

package models

import (
	"math"
	"slices"

	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/cockroachdb/errors"
)

// Built-in test models of sensitivity analysis.

const (
	DefaultLinearCoefficient = 0.1
	DefaultIshigamiA         = 7.0
	DefaultIshigamiB         = 0.1
)

// ErrUnknownModel is returned by Lookup for unregistered names.
var ErrUnknownModel = errors.New("unknown model")

// Linear is c*(p_1+...+p_n) with c=constants[0] or DefaultLinearCoefficient.
func Linear(parameters []float64, constants []float64) (float64, error) {
	c := DefaultLinearCoefficient
	if len(constants) > 0 {
		c = constants[0]
	}
	y := 0.0
	for _, p := range parameters {
		y += c * p
	}
	return y, nil
}

// Ishigami is sin(x1) + a*sin(x2)^2 + b*x3^4*sin(x1) with a and b taken
// from the constants or the defaults 7 and 0.1.
func Ishigami(parameters []float64, constants []float64) (float64, error) {
	if len(parameters) != 3 {
		return 0, errors.Newf("ishigami requires 3 parameters, got %v", len(parameters))
	}
	a, b := DefaultIshigamiA, DefaultIshigamiB
	if len(constants) > 0 {
		a = constants[0]
	}
	if len(constants) > 1 {
		b = constants[1]
	}
	s2 := math.Sin(parameters[1])
	x3 := parameters[2] * parameters[2]
	return math.Sin(parameters[0])*(1+b*x3*x3) + a*s2*s2, nil
}

// GFunction is the product of (|4x_j-2|+a_j)/(1+a_j) over all parameters.
// a_j is constants[j]; missing coefficients are zero.
func GFunction(parameters []float64, constants []float64) (float64, error) {
	y := 1.0
	for j, x := range parameters {
		a := 0.0
		if j < len(constants) {
			a = constants[j]
		}
		if a < 0 {
			return 0, errors.Newf("g-function coefficient a_%v must be non-negative, got %v", j+1, a)
		}
		y *= (math.Abs(4*x-2) + a) / (1 + a)
	}
	return y, nil
}

type entry struct {
	model sobol.ModelFunc
	study func() *sobol.Study
}

var registry = map[string]entry{
	"linear": {
		model: Linear,
		study: sobol.NewStudy,
	},
	"ishigami": {
		model: Ishigami,
		study: func() *sobol.Study {
			s := sobol.NewStudy()
			s.Model = "ishigami"
			s.Constants = []float64{DefaultIshigamiA, DefaultIshigamiB}
			s.Dim = 3
			s.Indices = sobol.IndexSet{1}
			s.SuperIndices = sobol.IndexSet{3}
			s.Distributions = sobol.DistributionTable{{-math.Pi, math.Pi}, {-math.Pi, math.Pi}, {-math.Pi, math.Pi}}
			return s
		},
	},
	"gfunction": {
		model: GFunction,
		study: func() *sobol.Study {
			s := sobol.NewStudy()
			s.Model = "gfunction"
			s.Constants = []float64{0, 1, 4.5, 9}
			s.Dim = 4
			s.Indices = sobol.IndexSet{1}
			s.SuperIndices = sobol.IndexSet{2}
			s.Distributions = sobol.DistributionTable{{0, 1}, {0, 1}, {0, 1}, {0, 1}}
			return s
		},
	},
}

// Lookup returns the built-in model with the given name.
func Lookup(name string) (sobol.Model, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q, available models %v", name, Names())
	}
	return e.model, nil
}

// NewStudy returns the reference study of a built-in model.
func NewStudy(name string) (*sobol.Study, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q, available models %v", name, Names())
	}
	return e.study(), nil
}

// Names lists the built-in models in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
