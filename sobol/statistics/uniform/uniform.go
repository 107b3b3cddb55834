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

package uniform

// Package for the continuous uniform distribution on [a,b].

// Quantile is the inverse cumulative distribution function. It maps u in
// [0,1] affinely onto [a,b]; the caller guarantees the range of u.
func Quantile(a, b, u float64) float64 {
	return (b-a)*u + a
}

// Mean returns the expectation of Unif(a,b).
func Mean(a, b float64) float64 {
	return (a + b) / 2
}

// Variance returns the variance of Unif(a,b).
func Variance(a, b float64) float64 {
	return (b - a) * (b - a) / 12
}
