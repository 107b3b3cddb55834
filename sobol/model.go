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

// Model is a scalar model whose sensitivity is estimated. Evaluate must be a
// pure function of its arguments; a returned error aborts the estimation.
// Models used by estimators with more than one worker must be safe for
// concurrent use.
//
//go:generate mockgen -source model.go -destination model_mock.go -package sobol
type Model interface {
	Evaluate(parameters []float64, constants []float64) (float64, error)
}

// ModelFunc adapts an ordinary function to a Model.
type ModelFunc func(parameters []float64, constants []float64) (float64, error)

// Evaluate calls f(parameters, constants).
func (f ModelFunc) Evaluate(parameters []float64, constants []float64) (float64, error) {
	return f(parameters, constants)
}
