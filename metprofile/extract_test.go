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
	"math"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLevels() []Level {
	// deliberately unsorted
	return []Level{
		{Pressure: 990, Temperature: 280, SpecificHumidity: 0.008, U: 3, V: 4, Geopotential: 2000 * Gravity},
		{Pressure: 1000, Temperature: 290, SpecificHumidity: 0.010, U: 1, V: 2, Geopotential: 1000 * Gravity},
	}
}

func TestFromPressureLevels_InterpolatesEveryStep(t *testing.T) {
	profile, err := FromPressureLevels(testLevels(), DefaultStep)
	require.NoError(t, err)
	require.Len(t, profile, 2)

	first := profile[0]
	assert.Equal(t, 1000.0, first.Pressure)
	assert.InDelta(t, 1.0, first.Altitude, 1e-12)
	assert.InDelta(t, 1000*100/(GasConstant*290), first.Density, 1e-12)
	assert.InDelta(t, 10.0, first.Humidity, 1e-12)
	assert.Equal(t, 1.0, first.WindU)
	assert.Equal(t, 2.0, first.WindV)

	second := profile[1]
	assert.Equal(t, 995.0, second.Pressure)
	assert.InDelta(t, 1.5, second.Altitude, 1e-12)
	assert.InDelta(t, 285.0, second.Temperature, 1e-12)
	assert.InDelta(t, 9.0, second.Humidity, 1e-12)
	assert.InDelta(t, 2.0, second.WindU, 1e-12)
	assert.InDelta(t, 3.0, second.WindV, 1e-12)
}

func TestFromPressureLevels_StopsBeforeLowestPressure(t *testing.T) {
	levels := testLevels()
	levels[0].Pressure = 987
	profile, err := FromPressureLevels(levels, DefaultStep)
	require.NoError(t, err)

	var pressures []float64
	for _, row := range profile {
		pressures = append(pressures, row.Pressure)
	}
	assert.Equal(t, []float64{1000, 995, 990}, pressures)
}

func TestFromPressureLevels_DensityDecreasesWithAltitude(t *testing.T) {
	levels := []Level{
		{Pressure: 1000, Temperature: 288, Geopotential: 100 * Gravity},
		{Pressure: 850, Temperature: 278, Geopotential: 1500 * Gravity},
		{Pressure: 500, Temperature: 252, Geopotential: 5600 * Gravity},
		{Pressure: 200, Temperature: 218, Geopotential: 11800 * Gravity},
	}
	profile, err := FromPressureLevels(levels, DefaultStep)
	require.NoError(t, err)
	assert.Len(t, profile, 160)
	for i := 1; i < len(profile); i++ {
		assert.Greater(t, profile[i].Altitude, profile[i-1].Altitude)
		assert.Less(t, profile[i].Density, profile[i-1].Density)
	}
}

func TestFromPressureLevels_RejectsInvalidInput(t *testing.T) {
	duplicated := append(testLevels(), testLevels()[0])
	nonFinite := testLevels()
	nonFinite[1].U = math.NaN()

	_, err := FromPressureLevels(testLevels()[:1], DefaultStep)
	assert.True(t, errors.Is(err, ErrTooFewLevels))
	_, err = FromPressureLevels(duplicated, DefaultStep)
	assert.True(t, errors.Is(err, ErrMalformedExtract))
	_, err = FromPressureLevels(nonFinite, DefaultStep)
	assert.True(t, errors.Is(err, ErrMalformedExtract))
	_, err = FromPressureLevels(testLevels(), 0)
	assert.True(t, errors.Is(err, ErrMalformedExtract))
}

func TestReadExtract(t *testing.T) {
	path := utils.WriteTestFile(t, filepath.Join(t.TempDir(), "2013_11_23_12_pressure_levels.json"), `{
  "time": "2013-11-23T12:00:00Z",
  "latitude": 37.75,
  "longitude": 15.0,
  "levels": [
    {"pressure": 1000, "temperature": 290, "specific_humidity": 0.01, "u": 1, "v": 2, "geopotential": 9806.65}
  ]
}`)
	extract, err := ReadExtract(path)
	require.NoError(t, err)
	assert.Equal(t, 37.75, extract.Latitude)
	require.Len(t, extract.Levels, 1)
	assert.Equal(t, 0.01, extract.Levels[0].SpecificHumidity)

	broken := utils.WriteTestFile(t, filepath.Join(t.TempDir(), "broken.json"), `{"levels": [`)
	_, err = ReadExtract(broken)
	assert.True(t, errors.Is(err, ErrMalformedExtract))
}
