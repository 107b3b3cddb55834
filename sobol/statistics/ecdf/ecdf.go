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

package ecdf

import (
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// NumPoints is the default number of points kept in a compressed
// empirical cumulative distribution function.
const NumPoints = 300

// FromSample computes the empirical cumulative distribution function of a
// sample as a piecewise linear function (x_i, i/n) over the sorted sample.
// The function is compressed with the Visvalingam-Whyatt algorithm to at
// most numPoints points. The sample is not modified.
func FromSample(values []float64, numPoints int) ([][2]float64, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("ecdf: sample is empty")
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	ls := make(orb.LineString, 0, n+1)
	ls = append(ls, orb.Point{sorted[0], 0.0})
	for i, x := range sorted {
		ls = append(ls, orb.Point{x, float64(i+1) / float64(n)})
	}
	return Simplify(ls, numPoints), nil
}

// Reference tabulates an analytical CDF on n+1 equidistant points in [lo,hi].
func Reference(cdf func(float64) float64, lo, hi float64, n int) [][2]float64 {
	fn := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n)
		fn = append(fn, [2]float64{x, cdf(x)})
	}
	return fn
}

// Simplify reduces a line string to at most numPoints points using the
// Visvalingam-Whyatt algorithm.
// See https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func Simplify(ls orb.LineString, numPoints int) [][2]float64 {
	if numPoints > 2 && len(ls) > numPoints {
		ls = simplify.VisvalingamKeep(numPoints).Simplify(ls.Clone()).(orb.LineString)
	}
	fn := make([][2]float64, len(ls))
	for i := range ls {
		fn[i] = [2]float64(ls[i])
	}
	return fn
}

// MaxDistance returns the largest vertical distance between a piecewise
// linear CDF and an analytical CDF, evaluated at the points of the former.
func MaxDistance(fn [][2]float64, cdf func(float64) float64) float64 {
	d := 0.0
	for _, pt := range fn {
		d = math.Max(d, math.Abs(pt[1]-cdf(pt[0])))
	}
	return d
}

// Check whether a piecewise linear function is a valid CDF: it must range
// from 0 to 1 and its points must be non-decreasing in both coordinates.
func Check(fn [][2]float64) error {
	if len(fn) < 2 {
		return fmt.Errorf("ecdf must have at least start and end point")
	}
	if fn[0][1] != 0.0 {
		return fmt.Errorf("ecdf must start at probability 0, but starts at %v", fn[0][1])
	}
	last := len(fn) - 1
	if fn[last][1] != 1.0 {
		return fmt.Errorf("ecdf must end at probability 1, but ends at %v", fn[last][1])
	}
	for i := range last {
		if fn[i][0] > fn[i+1][0] || fn[i][1] > fn[i+1][1] {
			return fmt.Errorf("ecdf points must be monotone, but point %v (%v,%v) exceeds point %v (%v,%v)", i, fn[i][0], fn[i][1], i+1, fn[i+1][0], fn[i+1][1])
		}
	}
	return nil
}
