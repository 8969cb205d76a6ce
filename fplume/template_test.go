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

package fplume

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInputTemplate = `TIME_UTC
  YEAR = {{.year}}
  MONTH = {{.month}}
  DAY = {{.day}}
  BEGIN_METEO_DATA_(HOURS_AFTER_00) = {{.hour}}
SOURCE
  MASS_FLOW_RATE_(KGS) = {{.MER}}
  EXIT_VELOCITY_(MS) = {{.exit_velocity}}
  EXIT_TEMPERATURE_(K) = {{printf "%.1f" .exit_temperature}}
`

func testEvent() eruption.Event {
	return eruption.Event{Code: 7, Year: 2013, Month: 11, Day: 23, Hour: 12, MER: 5e5, ExitVelocity: 150, ObservedHeight: 9000}
}

func testVector() montecarlo.Vector {
	return montecarlo.NewVector(testEvent(), []string{"MER", "exit_velocity", "exit_temperature"}, map[string]float64{
		"MER":              1234567.8,
		"exit_velocity":    150.25,
		"exit_temperature": 1391.04,
	})
}

func testKeys() []string {
	return append([]string{"MER", "exit_velocity", "exit_temperature"}, montecarlo.TemporalKeys...)
}

func TestInputTemplate_RendersVectorAndTemporalKey(t *testing.T) {
	tmpl, err := ParseInputTemplate("test.inp", testInputTemplate, testKeys())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Render(&buf, testVector()))
	assert.Equal(t, `TIME_UTC
  YEAR = 2013
  MONTH = 11
  DAY = 23
  BEGIN_METEO_DATA_(HOURS_AFTER_00) = 12
SOURCE
  MASS_FLOW_RATE_(KGS) = 1234567.8
  EXIT_VELOCITY_(MS) = 150.25
  EXIT_TEMPERATURE_(K) = 1391.0
`, buf.String())
}

func TestInputTemplate_ListsPlaceholders(t *testing.T) {
	tmpl, err := ParseInputTemplate("test.inp", testInputTemplate, append(testKeys(), "cp"))
	require.NoError(t, err)
	assert.Equal(t, []string{"MER", "day", "exit_temperature", "exit_velocity", "hour", "month", "year"}, tmpl.Placeholders())
	assert.Equal(t, []string{"cp"}, tmpl.Unused(append(testKeys(), "cp")))
}

func TestInputTemplate_RejectsUnknownPlaceholders(t *testing.T) {
	_, err := ParseInputTemplate("test.inp", "A = {{.MER}}\nB = {{if .c_umbrella}}{{.cp}}{{end}}\n", []string{"MER"})
	assert.True(t, errors.Is(err, ErrTemplatePlaceholder))
	assert.ErrorContains(t, err, "[c_umbrella cp]")
}

func TestInputTemplate_RejectsSyntaxErrors(t *testing.T) {
	_, err := ParseInputTemplate("test.inp", "A = {{.MER", testKeys())
	assert.ErrorContains(t, err, "cannot parse input template")
}

func TestInputTemplate_RenderFailsOnMissingValue(t *testing.T) {
	tmpl, err := ParseInputTemplate("test.inp", "{{.cp}}", []string{"cp"})
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, tmpl.Render(&buf, testVector()))
}

func TestLoadInputTemplate(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadInputTemplate(filepath.Join(dir, "missing.inp"), testKeys())
	assert.True(t, errors.Is(err, ErrMissingArtifact))

	path := utils.WriteTestFile(t, filepath.Join(dir, "template_fplume.inp"), testInputTemplate)
	tmpl, err := LoadInputTemplate(path, testKeys())
	require.NoError(t, err)
	assert.Len(t, tmpl.Placeholders(), 7)
}
