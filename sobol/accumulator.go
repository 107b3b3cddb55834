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
	"github.com/cockroachdb/errors"
)

// degeneracyTolerance is the relative variance below which model output is
// considered constant.
const degeneracyTolerance = 1e-10

// accumulator collects the Monte Carlo sums of one estimator call. Partial
// accumulators of disjoint iteration ranges are merged in range order.
type accumulator struct {
	n     int
	sumF0 float64 // f(x1)
	sumD  float64 // f(x1)^2
	sumF1 float64 // f(arg1)
	sumDy float64 // f(x1)*f(arg1)
	sumDT float64 // (f(x1)-f(arg2))^2
}

func (a *accumulator) add(f, fArg1, fArg2 float64) {
	a.n++
	a.sumF0 += f
	a.sumD += f * f
	a.sumF1 += fArg1
	a.sumDy += f * fArg1
	d := f - fArg2
	a.sumDT += d * d
}

func (a *accumulator) merge(o accumulator) {
	a.n += o.n
	a.sumF0 += o.sumF0
	a.sumD += o.sumD
	a.sumF1 += o.sumF1
	a.sumDy += o.sumDy
	a.sumDT += o.sumDT
}

// results normalizes the sums into lower and total indices. Mean and
// variance are filled in even if the variance is degenerate.
func (a *accumulator) results() (Results, error) {
	n := float64(a.n)
	mean := a.sumF0 / n
	variance := a.sumD/n - mean*mean
	res := Results{
		Mean:     mean,
		Variance: variance,
		Runs:     a.n,
	}
	if !(variance > degeneracyTolerance*mean*mean) {
		return res, errors.Wrapf(ErrDegenerateVariance, "variance %v at mean %v", variance, mean)
	}
	res.Lower = (a.sumDy/n - mean*a.sumF1/n) / variance
	res.Total = a.sumDT / n / (2 * variance)
	return res, nil
}
