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

package montecarlo

import (
	"context"
	"time"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/cockroachdb/errors"
)

// ErrInvalidTrialCount is returned when fewer than one trial is requested.
var ErrInvalidTrialCount = errors.New("ensemble size must be at least one")

// TrialRunner runs the external simulator once for a sampled vector.
//
//go:generate mockgen -source collector.go -destination collector_mock.go -package montecarlo
type TrialRunner interface {
	// RunTrial returns the simulated column height of one trial.
	RunTrial(ctx context.Context, event eruption.Event, vector Vector, trial int) (float64, error)
	// Cleanup removes every transient artifact of the event.
	Cleanup(event eruption.Event) error
}

// Collector drives the trials of one event and persists the resulting ensemble.
type Collector struct {
	sampler    ParameterSampler
	runner     TrialRunner
	store      EnsembleStore
	extensions []Extension
	log        logger.Logger
}

// NewCollector creates a collector; extensions are notified in the given order.
func NewCollector(sampler ParameterSampler, runner TrialRunner, store EnsembleStore, log logger.Logger, extensions ...Extension) *Collector {
	return &Collector{
		sampler:    sampler,
		runner:     runner,
		store:      store,
		extensions: extensions,
		log:        log,
	}
}

// Collect runs exactly n trials for the event in sequence. Any failure aborts the
// event and nothing is persisted. Transient artifacts are removed in either case.
func (c *Collector) Collect(ctx context.Context, event eruption.Event, n int) (ensemble Ensemble, err error) {
	if n < 1 {
		return Ensemble{}, errors.Wrapf(ErrInvalidTrialCount, "got %d", n)
	}
	if err := c.sampler.Check(event); err != nil {
		return Ensemble{}, err
	}

	state := State{Event: event, Trials: n}
	ectx := &Context{Heights: make([]float64, 0, n)}

	// stale artifacts of an aborted earlier run must not leak into this one
	if err := c.runner.Cleanup(event); err != nil {
		return Ensemble{}, errors.Wrapf(err, "cannot clean up before %v", event)
	}
	defer func() {
		if cerr := c.runner.Cleanup(event); cerr != nil {
			err = errors.CombineErrors(err, errors.Wrapf(cerr, "cannot clean up after %v", event))
		}
	}()

	if err = c.signalPreRun(state, ectx); err != nil {
		return Ensemble{}, c.signalPostRun(state, ectx, err)
	}
	if err = c.runTrials(ctx, &state, ectx); err != nil {
		return Ensemble{}, c.signalPostRun(state, ectx, err)
	}

	ensemble = Ensemble{ID: event.ID(), Heights: ectx.Heights}
	if ectx.Output, err = c.store.Save(ensemble); err != nil {
		err = errors.Wrapf(err, "cannot persist ensemble of %v", event)
		return Ensemble{}, c.signalPostRun(state, ectx, err)
	}
	c.log.Noticef("Ensemble of %v with %d trials written to %v", event, n, ectx.Output)
	if err = c.signalPostRun(state, ectx, nil); err != nil {
		return Ensemble{}, err
	}
	return ensemble, nil
}

func (c *Collector) runTrials(ctx context.Context, state *State, ectx *Context) error {
	for i := 1; i <= state.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "%v interrupted before trial %d", state.Event, i)
		}
		// a trial starts once its parameter vector is drawn
		vector, err := c.sampler.Sample(state.Event)
		if err != nil {
			return errors.Wrapf(err, "trial %d of %v", i, state.Event)
		}
		state.Trial = i
		ectx.Vector = vector
		ectx.Height = 0
		if err := c.signalPreTrial(*state, ectx); err != nil {
			return err
		}

		start := time.Now()
		height, err := c.runner.RunTrial(ctx, state.Event, vector, i)
		ectx.Elapsed = time.Since(start)
		if err != nil {
			return errors.Wrapf(err, "trial %d of %d for %v", i, state.Trials, state.Event)
		}
		ectx.Height = height
		ectx.Heights = append(ectx.Heights, height)
		c.log.Debugf("Trial %d of %d for %v: column height %.1f m", i, state.Trials, state.Event, height)

		if err := c.signalPostTrial(*state, ectx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) signalPreRun(state State, ctx *Context) error {
	for _, e := range c.extensions {
		if err := e.PreRun(state, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) signalPreTrial(state State, ctx *Context) error {
	for _, e := range c.extensions {
		if err := e.PreTrial(state, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) signalPostTrial(state State, ctx *Context) error {
	for _, e := range c.extensions {
		if err := e.PostTrial(state, ctx); err != nil {
			return err
		}
	}
	return nil
}

// signalPostRun notifies every extension in reverse order and returns the
// collection error combined with any error raised by the extensions.
func (c *Collector) signalPostRun(state State, ctx *Context, err error) error {
	for i := len(c.extensions) - 1; i >= 0; i-- {
		if perr := c.extensions[i].PostRun(state, ctx, err); perr != nil {
			err = errors.CombineErrors(err, perr)
		}
	}
	return err
}
