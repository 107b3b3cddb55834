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

package utils

import (
	"errors"
	"testing"

	"github.com/0xsoniclabs/sobol/sobol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_Must(t *testing.T) {
	mockFn := func() ([]byte, error) {
		return []byte{1, 2, 3}, nil
	}
	assert.Equal(t, []byte{1, 2, 3}, Must(mockFn()))

	mockFnWithError := func() ([]byte, error) {
		return nil, errors.New("mock error")
	}
	assert.Panics(t, func() {
		_ = Must(mockFnWithError())
	})
}

func TestUtils_CreateTestStudyFile(t *testing.T) {
	study := sobol.NewStudy()
	study.Runs = 123
	filename := CreateTestStudyFile(t, study)
	got, err := sobol.ReadStudy(filename)
	require.NoError(t, err)
	assert.Equal(t, study, got)
}

func TestArgsBuilder_NewArgs(t *testing.T) {
	args := NewArgs("test").
		Arg("a").
		Arg(0).
		Arg(false).
		Flag("f1", "v1").
		Flag("f2", 0).
		Flag("f3", false).
		Flag("f4", true).
		Flag("f5", int64(7)).
		Flag("f6", 0.25).
		Flag("f7", []float64{0.1, 2}).
		Build()
	assert.Equal(t, []string{
		"test", "a", "0", "false",
		"--f1", "v1",
		"--f2", "0",
		"--f3=false",
		"--f4=true",
		"--f5", "7",
		"--f6", "0.25",
		"--f7", "0.1,2",
	}, args)
}

func TestArgsBuilder_UnsupportedTypePanics(t *testing.T) {
	assert.Panics(t, func() { NewArgs("test").Flag("f", struct{}{}) })
	assert.Panics(t, func() { NewArgs("test").Arg(1.5) })
}
