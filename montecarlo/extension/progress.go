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
	"time"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/jonboulle/clockwork"
)

const (
	progressReportFormat = "Track: %v trial %d/%d, last height %.1f m, elapsed %vh %vm %vs, %.2f trials/s"
	progressDoneFormat   = "Completed %v: %d trials in %vh %vm %vs"
	progressAbortFormat  = "Aborted %v after %d of %d trials: %v"
)

// MakeProgressTracker creates an extension reporting the progress of every
// ensemble collection at most once per interval.
func MakeProgressTracker(cfg *config.Config, interval time.Duration) montecarlo.Extension {
	if !cfg.TrackProgress {
		return montecarlo.NilExtension{}
	}
	return makeProgressTracker(interval, logger.NewLogger(cfg.LogLevel, "Progress-Tracker"), clockwork.NewRealClock())
}

func makeProgressTracker(interval time.Duration, log logger.Logger, clock clockwork.Clock) *progressTracker {
	return &progressTracker{interval: interval, log: log, clock: clock}
}

type progressTracker struct {
	montecarlo.NilExtension
	interval   time.Duration
	log        logger.Logger
	clock      clockwork.Clock
	start      time.Time
	lastReport time.Time
}

func (t *progressTracker) PreRun(state montecarlo.State, _ *montecarlo.Context) error {
	t.start = t.clock.Now()
	t.lastReport = t.start
	t.log.Noticef("Collecting %d trials for %v", state.Trials, state.Event)
	return nil
}

func (t *progressTracker) PostTrial(state montecarlo.State, ctx *montecarlo.Context) error {
	now := t.clock.Now()
	if now.Sub(t.lastReport) < t.interval && state.Trial < state.Trials {
		return nil
	}
	t.lastReport = now
	elapsed := now.Sub(t.start)
	hours, minutes, seconds := logger.ParseTime(elapsed)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(state.Trial) / elapsed.Seconds()
	}
	t.log.Infof(progressReportFormat, state.Event.ID(), state.Trial, state.Trials, ctx.Height, hours, minutes, seconds, rate)
	return nil
}

func (t *progressTracker) PostRun(state montecarlo.State, ctx *montecarlo.Context, err error) error {
	if err != nil {
		t.log.Warningf(progressAbortFormat, state.Event, len(ctx.Heights), state.Trials, err)
		return nil
	}
	hours, minutes, seconds := logger.ParseTime(t.clock.Since(t.start))
	t.log.Noticef(progressDoneFormat, state.Event, len(ctx.Heights), hours, minutes, seconds)
	return nil
}
