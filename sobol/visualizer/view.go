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

package visualizer

import (
	"fmt"
	"sync"

	"github.com/0xsoniclabs/sobol/sobol"
)

// View holds the results shown by the charts.
type View struct {
	Title     string           // name of the study
	Sweep     []sobol.SweepRow // coefficient of variation sweep
	Results   *sobol.Results   // results of the last estimation
	ECDF      [][2]float64     // empirical CDF of the validation sample
	Reference [][2]float64     // reference CDF of the validation
}

// Validate checks that the view has something to show.
func (v *View) Validate() error {
	if v == nil {
		return fmt.Errorf("visualizer: view is nil")
	}
	if len(v.Sweep) == 0 && v.Results == nil && len(v.ECDF) == 0 {
		return fmt.Errorf("visualizer: view %q has no data", v.Title)
	}
	return nil
}

var (
	currentMu    sync.RWMutex
	currentState *View
)

func setViewState(view *View) error {
	if err := view.Validate(); err != nil {
		return err
	}
	currentMu.Lock()
	currentState = view
	currentMu.Unlock()
	return nil
}

func currentView() (*View, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: view not initialised")
	}
	return currentState, nil
}
