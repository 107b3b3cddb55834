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

package goodness

import (
	"fmt"
	"math"
	"slices"

	"github.com/0xsoniclabs/sobol/sobol/statistics/normal"
)

// Critical values of the A² statistic for a fully specified normal
// distribution (case 0) at the 90%, 95%, 97.5% and 99% levels.
const (
	Critical90  = 1.933
	Critical95  = 2.492
	Critical975 = 3.070
	Critical99  = 3.857
)

// AndersonDarlingNormal computes the Anderson-Darling statistic A² of the
// sample against N(mean, variance). The sample is standardized, sorted and
// mapped through the standard normal CDF; values is not modified.
func AndersonDarlingNormal(values []float64, mean float64, variance float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, fmt.Errorf("anderson-darling: sample is empty")
	}
	if !(variance > 0) {
		return 0, fmt.Errorf("anderson-darling: variance must be positive, got %v", variance)
	}

	cdf := make([]float64, n)
	for i, v := range values {
		cdf[i] = normal.CDF(normal.Standardize(mean, variance, v))
	}
	// the CDF is monotone, sorting its values sorts the sample
	slices.Sort(cdf)

	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += float64(2*i-1) * (math.Log(cdf[i-1]) + math.Log(1-cdf[n-i]))
	}
	return -float64(n) - sum/float64(n), nil
}

// RejectsNormal reports whether the statistic exceeds the given critical value.
func RejectsNormal(aSquared float64, critical float64) bool {
	return aSquared > critical
}
