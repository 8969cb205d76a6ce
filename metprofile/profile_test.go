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

package metprofile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_ProducesHeaderAndFixedPrecisionColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Profile{{Altitude: 1, Density: 1.2, Pressure: 1000, Temperature: 290, Humidity: 10, WindU: 1, WindV: -2.00049}}))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, headerNames, lines[0])
	assert.Equal(t, headerUnits, lines[1])
	assert.Equal(t, "1.000\t1.200\t1000.000\t290.000\t10.000\t1.000\t-2.000", lines[2])
	assert.Equal(t, "", lines[3])
}

func TestRead_ParsesWrittenProfile(t *testing.T) {
	profile := Profile{
		{Altitude: 0.5, Density: 1.19, Pressure: 1000, Temperature: 291.5, Humidity: 9.8, WindU: 3, WindV: 1},
		{Altitude: 0.55, Density: 1.18, Pressure: 995, Temperature: 291, Humidity: 9.7, WindU: 3.5, WindV: 0.5},
	}
	path := filepath.Join(t.TempDir(), "2013_11_23_12.met")
	require.NoError(t, WriteFile(path, profile))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestRead_RejectsMalformedContent(t *testing.T) {
	tests := map[string]string{
		"empty":           headerNames + "\n" + headerUnits + "\n",
		"too few columns": "1 2 3 4 5 6\n",
		"not a number":    "1 2 3 4 5 6 x\n",
		"nan":             "1 2 3 4 5 6 NaN\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(content))
			assert.True(t, errors.Is(err, ErrMalformedProfile), "got %v", err)
		})
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.met"))
	assert.Error(t, err)
}

func TestReadFile_ToleratesBlankLines(t *testing.T) {
	path := utils.WriteTestFile(t, filepath.Join(t.TempDir(), "x.met"), "# header\n\n1 2 3 4 5 6 7\n\n")
	profile, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, profile, 1)
}
