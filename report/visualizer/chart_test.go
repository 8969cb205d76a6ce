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

package visualizer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/report"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries(t *testing.T) []report.Entry {
	t.Helper()
	events := []eruption.Event{
		{Code: 7, Year: 2013, Month: 11, Day: 23, Hour: 12, MER: 2e6, ExitVelocity: 100, ObservedHeight: 12000},
		{Code: 3, Year: 2011, Month: 1, Day: 12, Hour: 22, MER: 3e5, ExitVelocity: 80, ObservedHeight: 8000},
	}
	ensembles := []montecarlo.Ensemble{
		{ID: "2013_11_23_12", Heights: []float64{8000, 8500, 9000}},
		{ID: "2011_01_12_22", Heights: []float64{4000, 4100}},
	}
	entries := report.Aggregate(ensembles, events, report.Options{Elevation: 3350, Uncertainty: 300}, logger.NewLogger("critical", "Chart-Test"))
	require.Len(t, entries, 2)
	return entries
}

func TestRender_ContainsEveryChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testEntries(t), 1e6))

	page := buf.String()
	for _, want := range []string{
		pageTitle,
		"Simulated and observed column heights",
		"ECDF percentile of the radar height",
		"Mass eruption rate",
		"Q-Q plot of the radar percentiles",
		"Radar percentile versus MER",
		"Empirical distribution of the simulated heights",
		"2011-01-12-22",
		"2013-11-23-12",
		"Low MER",
		"High MER",
	} {
		assert.Contains(t, page, want)
	}
}

func TestRender_NoEntries(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, nil, 1e6)
	assert.True(t, errors.Is(err, ErrNoEntries))
	assert.Zero(t, buf.Len())
}

func TestRenderFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "montecarlo.html")
	require.NoError(t, RenderFile(path, testEntries(t), 1e6))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Mass eruption rate")
}

func TestRenderFile_NothingToPlotCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "montecarlo.html")
	err := RenderFile(path, nil, 1e6)
	assert.True(t, errors.Is(err, ErrNoEntries))
	assert.NoFileExists(t, path)
}
