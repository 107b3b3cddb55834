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

package normal

import "math"

// Package for the normal distribution based on rational approximations:
// Beasley-Springer-Moro for the inverse and Abramowitz-Stegun 7.1.26 for
// the cumulative distribution function.

// centralRegion is the half-width around 1/2 where the rational
// approximation of the inverse is used instead of the tail expansion.
const centralRegion = 0.42

// Coefficients of the central rational approximation.
var (
	a = [4]float64{2.50662823884, -18.61500062529, 41.39119773534, -25.44106049637}
	b = [4]float64{-8.4735109309, 23.08336743743, -21.06224101826, 3.13082909833}
)

// Coefficients of the log-log tail expansion.
var c = [9]float64{
	0.3374754822726147,
	0.9761690190917186,
	0.1607979714918209,
	0.0276438810333863,
	0.0038405729373609,
	0.0003951896511919,
	0.0000321767881768,
	0.0000002888167364,
	0.0000003960315187,
}

// Coefficients of Abramowitz-Stegun 7.1.26.
const (
	p  = 0.3275911
	a1 = 0.254829592
	a2 = -0.284496736
	a3 = 1.421413741
	a4 = -1.453152027
	a5 = 1.061405429
)

// StdQuantile approximates the inverse of the standard normal CDF for u in (0,1).
func StdQuantile(u float64) float64 {
	y := u - 0.5
	if math.Abs(y) < centralRegion {
		r := y * y
		return y * (((a[3]*r+a[2])*r+a[1])*r + a[0]) /
			((((b[3]*r+b[2])*r+b[1])*r+b[0])*r + 1)
	}
	r := u
	if y > 0 {
		r = 1 - u
	}
	r = math.Log(-math.Log(r))
	x := c[0] + r*(c[1]+r*(c[2]+r*(c[3]+r*(c[4]+r*(c[5]+r*(c[6]+r*(c[7]+r*c[8])))))))
	if y < 0 {
		x = -x
	}
	return x
}

// Quantile maps u in (0,1) to a sample of N(mean, variance). The variance
// must not be negative.
func Quantile(mean, variance, u float64) float64 {
	return mean + math.Sqrt(variance)*StdQuantile(u)
}

// CDF approximates the standard normal cumulative distribution function.
func CDF(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x) / math.Sqrt2
	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return 0.5 * (1.0 + sign*y)
}

// Standardize maps x of N(mean, variance) onto the standard normal scale.
func Standardize(mean, variance, x float64) float64 {
	return (x - mean) / math.Sqrt(variance)
}
