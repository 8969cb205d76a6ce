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
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/fplume"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/montecarlo/extension"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Command collects the Monte Carlo ensembles of the selected events.
var Command = cli.Command{
	Action: runAction,
	Name:   "run",
	Usage:  "collects the ensemble of simulated column heights of events",
	Flags: []cli.Flag{
		&utils.ProjectDirFlag,
		&utils.ConfigFileFlag,
		&utils.CodeFlag,
		&utils.AllFlag,
		&utils.NumTrialsFlag,
		&utils.SiteFlag,
		&utils.SimulatorDirFlag,
		&utils.SimulatorFlag,
		&utils.RandomSeedFlag,
		&utils.TrialTimeoutFlag,
		&utils.TrackProgressFlag,
		&utils.MetricsFileFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Runs FPLUME n-montecarlo times per selected event on randomly perturbed
inputs and stores the simulated heights in data/processed/column_files.
The static inputs of every event must have been staged by 'tephra prepare'.`,
}

func runAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.EventSelector)
	if err != nil {
		return err
	}
	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(sigCtx, cfg, utils.NewShell())
}

// Run collects the ensembles of all selected events. A failing event is
// reported and the remaining events are still collected; cancellation stops
// the whole run.
func Run(ctx context.Context, cfg *config.Config, shell utils.ShellExecutor) error {
	log := logger.NewLogger(cfg.LogLevel, "Tephra-Run")

	events, err := eruption.Select(cfg.Layout.EventsFile(), cfg.Code, cfg.All)
	if err != nil {
		return err
	}
	keys := cfg.Parameters.Keys()
	tmpl, err := fplume.LoadInputTemplate(cfg.Layout.InputTemplate(), keys)
	if err != nil {
		return err
	}
	if unused := tmpl.Unused(keys); len(unused) > 0 {
		log.Warningf("Template %v does not use the parameters %v", cfg.Layout.InputTemplate(), unused)
	}
	runner, err := fplume.NewRunner(cfg, tmpl, shell, log)
	if err != nil {
		return err
	}

	seed := cfg.Seed()
	log.Noticef("Sampling %v parameters with seed %d", len(cfg.Parameters), seed)
	sampler := montecarlo.NewSampler(cfg.Parameters, rand.New(rand.NewSource(seed)))
	store := montecarlo.NewColumnStore(cfg.Layout.StagingDir(), cfg.Layout.ColumnDir())
	collector := montecarlo.NewCollector(sampler, runner, store, log,
		extension.MakeProgressTracker(cfg, config.ProgressReportInterval),
		extension.MakeMetricsCollector(cfg),
	)

	var failures []error
	for _, event := range events {
		ensemble, err := collector.Collect(ctx, event, cfg.NumTrials)
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "run interrupted during %v", event)
		}
		if err != nil {
			log.Errorf("Aborted %v: %v", event, err)
			failures = append(failures, errors.Wrapf(err, "%v", event))
			continue
		}
		log.Noticef("Collected %d heights for %v", ensemble.Len(), event)
	}
	if len(failures) > 0 {
		return errors.Wrapf(combine(failures), "%d of %d events failed", len(failures), len(events))
	}
	return nil
}

func combine(errs []error) error {
	var res error
	for _, err := range errs {
		res = errors.CombineErrors(res, err)
	}
	return res
}
