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

package extension

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_NoCollectorIsCreatedWithoutFile(t *testing.T) {
	ext := MakeMetricsCollector(&config.Config{})
	if _, ok := ext.(montecarlo.NilExtension); !ok {
		t.Errorf("metrics collector is enabled although no file is configured")
	}

	ext = MakeMetricsCollector(&config.Config{MetricsFile: filepath.Join(t.TempDir(), "tephra.prom")})
	if _, ok := ext.(*metricsCollector); !ok {
		t.Errorf("metrics collector is not created although a file is configured")
	}
}

func TestMetricsCollector_CountsSuccessfulRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	file := filepath.Join(t.TempDir(), "tephra.prom")
	c := makeMetricsCollector(m, reg, file)

	ctx := &montecarlo.Context{}
	state := montecarlo.State{Event: testEvent(), Trials: 2}
	for i, height := range []float64{8500, 9500} {
		state.Trial = i + 1
		ctx.Height = height
		ctx.Heights = append(ctx.Heights, height)
		ctx.Elapsed = 2 * time.Second
		require.NoError(t, c.PostTrial(state, ctx))
	}
	require.NoError(t, c.PostRun(state, ctx, nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrialsCompleted))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TrialsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ensembles.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TrialDuration))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tephra_trials_completed_total 2")
	assert.Contains(t, string(content), `tephra_ensembles_total{outcome="success"} 1`)
	assert.Contains(t, string(content), "tephra_column_height_meters_count 2")
}

func TestMetricsCollector_CountsFailedTrial(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := makeMetricsCollector(m, reg, "")

	ctx := &montecarlo.Context{Heights: []float64{9000}}
	state := montecarlo.State{Event: testEvent(), Trials: 4, Trial: 2}
	require.NoError(t, c.PostRun(state, ctx, errors.New("simulator crashed")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TrialsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ensembles.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Ensembles.WithLabelValues("success")))
}

func TestMetricsCollector_FailureOutsideTrialsIsNotATrialFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := makeMetricsCollector(m, reg, "")

	// persisting failed after all trials completed
	ctx := &montecarlo.Context{Heights: []float64{1, 2}}
	state := montecarlo.State{Event: testEvent(), Trials: 2, Trial: 2}
	require.NoError(t, c.PostRun(state, ctx, errors.New("disk full")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TrialsFailed))
}

func TestMetricsCollector_UnwritableFileIsReported(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := makeMetricsCollector(NewMetrics(reg), reg, filepath.Join(t.TempDir(), "missing", "tephra.prom"))
	err := c.PostRun(montecarlo.State{Event: testEvent()}, &montecarlo.Context{}, nil)
	assert.ErrorContains(t, err, "cannot write metrics")
}

func TestMetricsCollector_SamplingFailureIsNotATrialFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := makeMetricsCollector(m, reg, "")

	// the second parameter vector could not be drawn
	ctx := &montecarlo.Context{Heights: []float64{9000}}
	state := montecarlo.State{Event: testEvent(), Trials: 3, Trial: 1}
	require.NoError(t, c.PostRun(state, ctx, errors.New("no variates left")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TrialsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ensembles.WithLabelValues("failure")))
}
