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

package pareto

import (
	"fmt"
	"math"
)

// Package for the generalized Pareto distribution with shape k, scale sigma
// and location theta.

// Quantile is the inverse cumulative distribution function for u in [0,1).
// A zero shape is the exponential limit of the distribution.
func Quantile(k, sigma, theta, u float64) float64 {
	if k == 0 {
		return theta - sigma*math.Log1p(-u)
	}
	return theta + sigma/k*(math.Pow(1.0-u, -k)-1)
}

// Check whether the parameters define a generalized Pareto distribution.
func Check(k, sigma, theta float64) error {
	if !(sigma > 0) {
		return fmt.Errorf("generalized Pareto requires a positive scale, got sigma=%v", sigma)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return fmt.Errorf("generalized Pareto requires a finite shape, got k=%v", k)
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return fmt.Errorf("generalized Pareto requires a finite location, got theta=%v", theta)
	}
	return nil
}
