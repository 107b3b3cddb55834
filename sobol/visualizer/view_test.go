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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Validate(t *testing.T) {
	var nilView *View
	assert.Error(t, nilView.Validate())
	assert.Error(t, (&View{Title: "empty"}).Validate())
	assert.NoError(t, (&View{ECDF: [][2]float64{{0, 1}}}).Validate())
}

func TestView_CurrentView(t *testing.T) {
	clearView(t)
	_, err := currentView()
	assert.Error(t, err)

	view := sampleView()
	mustSetView(t, view)
	got, err := currentView()
	require.NoError(t, err)
	assert.Same(t, view, got)
}
