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

// pickFreeze fills arg1 with the masked coordinates of x1 and the remaining
// coordinates of x2, and arg2 with the complement.
func pickFreeze(mask []bool, x1, x2, arg1, arg2 []float64) {
	for j, frozen := range mask {
		if frozen {
			arg1[j] = x1[j]
			arg2[j] = x2[j]
		} else {
			arg1[j] = x2[j]
			arg2[j] = x1[j]
		}
	}
}
