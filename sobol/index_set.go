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
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// IndexSet is a set of 1-based parameter positions.
type IndexSet []int

// NewIndexSet creates a sorted index set without duplicates.
func NewIndexSet(indices ...int) IndexSet {
	s := slices.Clone(indices)
	slices.Sort(s)
	return slices.Compact(s)
}

// ParseIndexSet parses a comma separated list of positions, e.g. "1,3".
func ParseIndexSet(str string) (IndexSet, error) {
	var indices []int
	for _, field := range strings.Split(str, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		i, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "index %q is not an integer", field)
		}
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "index set %q is empty", str)
	}
	return NewIndexSet(indices...), nil
}

// Validate checks that the set is non-empty, duplicate-free and inside [1,dim].
func (s IndexSet) Validate(dim int) error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidConfig, "index set is empty")
	}
	seen := make(map[int]bool, len(s))
	for _, i := range s {
		if i < 1 || i > dim {
			return errors.Wrapf(ErrInvalidConfig, "index %v outside [1,%v]", i, dim)
		}
		if seen[i] {
			return errors.Wrapf(ErrInvalidConfig, "duplicate index %v", i)
		}
		seen[i] = true
	}
	return nil
}

// Mask returns the membership of 0-based positions: mask[j] iff j+1 is in
// the set. Positions outside [1,dim] are ignored.
func (s IndexSet) Mask(dim int) []bool {
	mask := make([]bool, dim)
	for _, i := range s {
		if i >= 1 && i <= dim {
			mask[i-1] = true
		}
	}
	return mask
}

// Contains reports whether the 1-based position i is in the set.
func (s IndexSet) Contains(i int) bool {
	return slices.Contains(s, i)
}

func (s IndexSet) String() string {
	parts := make([]string, len(s))
	for k, i := range s {
		parts[k] = strconv.Itoa(i)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
