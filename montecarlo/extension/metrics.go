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
	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "tephra"

// Metrics holds the Prometheus counters and histograms of the Monte Carlo runs.
type Metrics struct {
	TrialsCompleted prometheus.Counter
	TrialsFailed    prometheus.Counter
	Ensembles       *prometheus.CounterVec // labels: outcome={success,failure}
	TrialDuration   prometheus.Histogram
	ColumnHeight    prometheus.Histogram
}

// NewMetrics creates the run metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TrialsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "trials_completed_total",
			Help:      "Simulator invocations that produced a column height.",
		}),
		TrialsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "trials_failed_total",
			Help:      "Simulator invocations that failed and aborted their event.",
		}),
		Ensembles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ensembles_total",
			Help:      "Ensemble collections by outcome.",
		}, []string{"outcome"}),
		TrialDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "trial_duration_seconds",
			Help:      "Wall time of a single simulator invocation.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ColumnHeight: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "column_height_meters",
			Help:      "Simulated column heights above the vent.",
			Buckets:   prometheus.LinearBuckets(0, 2000, 12),
		}),
	}
	reg.MustRegister(m.TrialsCompleted, m.TrialsFailed, m.Ensembles, m.TrialDuration, m.ColumnHeight)
	return m
}

// MakeMetricsCollector creates an extension recording run metrics. When a metrics
// file is configured, the registry is written there in the node exporter textfile
// format after every ensemble.
func MakeMetricsCollector(cfg *config.Config) montecarlo.Extension {
	if cfg.MetricsFile == "" {
		return montecarlo.NilExtension{}
	}
	reg := prometheus.NewRegistry()
	return makeMetricsCollector(NewMetrics(reg), reg, cfg.MetricsFile)
}

func makeMetricsCollector(m *Metrics, gatherer prometheus.Gatherer, file string) *metricsCollector {
	return &metricsCollector{metrics: m, gatherer: gatherer, file: file}
}

type metricsCollector struct {
	montecarlo.NilExtension
	metrics  *Metrics
	gatherer prometheus.Gatherer
	file     string
}

func (c *metricsCollector) PostTrial(_ montecarlo.State, ctx *montecarlo.Context) error {
	c.metrics.TrialsCompleted.Inc()
	c.metrics.TrialDuration.Observe(ctx.Elapsed.Seconds())
	c.metrics.ColumnHeight.Observe(ctx.Height)
	return nil
}

func (c *metricsCollector) PostRun(state montecarlo.State, ctx *montecarlo.Context, err error) error {
	if err != nil {
		// a trial was started but never completed
		if state.Trial > len(ctx.Heights) {
			c.metrics.TrialsFailed.Inc()
		}
		c.metrics.Ensembles.WithLabelValues("failure").Inc()
	} else {
		c.metrics.Ensembles.WithLabelValues("success").Inc()
	}
	if c.file == "" {
		return nil
	}
	if werr := prometheus.WriteToTextfile(c.file, c.gatherer); werr != nil {
		return errors.Wrapf(werr, "cannot write metrics to %v", c.file)
	}
	return nil
}
