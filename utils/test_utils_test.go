// Copyright 2025 Sonic Labs
// This file is part of Tephra, a Monte Carlo driver for volcanic plume models
//
// Tephra is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tephra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tephra. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_Must(t *testing.T) {
	// Test with a valid value
	mockFn := func() ([]byte, error) {
		return []byte{1, 2, 3}, nil
	}
	validValue := []byte{1, 2, 3}
	result := Must(mockFn())
	assert.Equal(t, validValue, result)

	// Test with an error
	mockFnWithError := func() ([]byte, error) {
		return nil, errors.New("mock error")
	}
	assert.Panics(t, func() {
		_ = Must(mockFnWithError())
	})
}

func TestUtils_WriteTestScriptIsExecutable(t *testing.T) {
	path := WriteTestScript(t, filepath.Join(t.TempDir(), "bin", "hello"), "echo hello")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)

	out, err := exec.Command(path).Output()
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(string(out)))
}

func TestArgsBuilder_NewArgs(t *testing.T) {
	args := NewArgs("test").
		Arg("a").
		Arg(0).
		Arg(false).
		Arg(true).
		Flag("f1", "v1").
		Flag("f2", 0).
		Flag("f3", false).
		Flag("f4", true).
		Build()
	assert.Equal(t, []string{"test", "a", "0", "false", "true", "--f1", "v1", "--f2", "0", "--f3=false", "--f4"}, args)
}

func TestArgsBuilder_NumericFlags(t *testing.T) {
	args := NewArgs("run").
		Flag("seed", int64(42)).
		Flag("radar-uncertainty", 300.5).
		Flag("trial-timeout", 90*time.Second).
		Build()
	assert.Equal(t, []string{"run", "--seed", "42", "--radar-uncertainty", "300.5", "--trial-timeout", "1m30s"}, args)
}

func TestArgsBuilder_UnsupportedTypePanics(t *testing.T) {
	assert.Panics(t, func() { NewArgs("x").Flag("f", []int{1}) })
	assert.Panics(t, func() { NewArgs("x").Arg(1.5) })
}
