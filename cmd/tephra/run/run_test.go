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

package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/stochastic/statistics/ecdf"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEvents = "code\tyear\tmonth\tday\thour\tmer\texit_v\th\n" +
	"7\t2013\t11\t23\t12\t5e5\t150\t9000\n" +
	"8\t2021\t02\t16\t17\t1.2e6\t210.5\t\n"

// newTestConfig stages the inputs of event 7 only, next to a simulator that
// always reports a column height of 9000 m.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	layout := config.NewLayout(root)
	utils.WriteTestFile(t, layout.EventsFile(), testEvents)
	utils.WriteTestFile(t, layout.InputTemplate(),
		"YEAR = {{.year}}\nMASS_FLOW_RATE_(KGS) = {{.MER}}\nVELOCITY_(MS) = {{.exit_velocity}}\n")
	utils.WriteTestFile(t, filepath.Join(layout.StagingDir(), "2013_11_23_12.met"), "met\n")
	utils.WriteTestFile(t, filepath.Join(layout.StagingDir(), "2013_11_23_12.tgsd"), "tgsd\n")
	utils.WriteTestScript(t, filepath.Join(layout.DefaultSimulatorDir(), "fplume"),
		`printf 'height\n9000.0 0.1\n' > "$1.01.res"`)

	return &config.Config{
		LogLevel:     "critical",
		ProjectDir:   root,
		Layout:       layout,
		SimulatorDir: layout.DefaultSimulatorDir(),
		Simulator:    "fplume",
		Code:         7,
		NumTrials:    3,
		RandomSeed:   1,
		Uncertainty:  300,
		MerThreshold: 1e6,
		Parameters:   montecarlo.DefaultSpec(),
	}
}

func TestRun_ConstantSimulatorYieldsConstantEnsemble(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, Run(context.Background(), cfg, utils.NewShell()))

	ensemble, err := montecarlo.ReadColumnFile(filepath.Join(cfg.Layout.ColumnDir(), "2013_11_23_12.column"))
	require.NoError(t, err)
	assert.Equal(t, []float64{9000, 9000, 9000}, ensemble.Heights)

	// observed 9000 m, uncertainty 300 m, no vent elevation
	percentile, err := ecdf.Compare(ensemble.Heights, 9000, 300)
	require.NoError(t, err)
	assert.Equal(t, ecdf.Percentile{Low: 0, Mid: 1, High: 1}, percentile)
}

func TestRun_FailingEventDoesNotStopTheOthers(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.All = true

	err := Run(context.Background(), cfg, utils.NewShell())
	require.Error(t, err)
	assert.ErrorContains(t, err, "1 of 2 events failed")
	assert.ErrorContains(t, err, "tephra prepare")

	column, err := os.ReadFile(filepath.Join(cfg.Layout.ColumnDir(), "2013_11_23_12.column"))
	require.NoError(t, err)
	assert.Equal(t, "9000\n9000\n9000\n", string(column))
	assert.NoFileExists(t, filepath.Join(cfg.Layout.ColumnDir(), "2021_02_16_17.column"))
}

func TestRun_UnknownEventCode(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Code = 99
	assert.Error(t, Run(context.Background(), cfg, utils.NewShell()))
}
