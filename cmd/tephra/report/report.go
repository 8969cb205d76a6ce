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

package report

import (
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	analysis "github.com/0xsoniclabs/tephra/report"
	"github.com/0xsoniclabs/tephra/report/visualizer"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ErrNothingToReport is returned when no ensemble can be compared with an observation.
var ErrNothingToReport = errors.New("no ensemble with a matching observation")

// Command compares all collected ensembles with the radar observations.
var Command = cli.Command{
	Action: reportAction,
	Name:   "report",
	Usage:  "compares the ensembles of all events with the radar heights",
	Flags: []cli.Flag{
		&utils.ProjectDirFlag,
		&utils.ConfigFileFlag,
		&utils.SiteFlag,
		&utils.UncertaintyFlag,
		&utils.MerThresholdFlag,
		&utils.OutputFlag,
		&utils.ChartFlag,
		&utils.ResultDbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Joins every column file with its event, prints the ECDF percentile of each radar
height and renders the charts of all events into one HTML page.`,
}

func reportAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.NoSelector)
	if err != nil {
		return err
	}
	return Report(cfg, os.Stdout)
}

// Report aggregates the ensembles and writes the tables to w, the output file,
// the result database and the chart page.
func Report(cfg *config.Config, w io.Writer) error {
	log := logger.NewLogger(cfg.LogLevel, "Tephra-Report")

	events, err := eruption.LoadEvents(cfg.Layout.EventsFile())
	if err != nil {
		return err
	}
	ensembles, err := analysis.LoadEnsembles(cfg.Layout.ColumnDir(), log)
	if err != nil {
		return errors.Wrapf(err, "cannot read ensembles; run `tephra run` first")
	}
	opts := analysis.Options{Elevation: cfg.Site.Elevation, Uncertainty: cfg.Uncertainty}
	entries := analysis.Aggregate(ensembles, events, opts, log)
	if len(entries) == 0 {
		return errors.Wrapf(ErrNothingToReport, "in %v", cfg.Layout.ColumnDir())
	}
	log.Noticef("Comparing %d ensembles with %v radar heights (uncertainty %v m)", len(entries), cfg.Site.Name, cfg.Uncertainty)

	percentiles := func() string { return analysis.PercentileTable(entries) }
	printers := utils.NewPrinters().
		AddPrinterToWriter(w, func() string {
			return strings.Join([]string{analysis.SummaryTable(entries), percentiles()}, "\n")
		}).
		AddPrinterToFile(cfg.Output, percentiles)
	if cfg.ResultDb != "" {
		db, err := analysis.NewResultDB(cfg.ResultDb, cfg.Site.Name, opts)
		if err != nil {
			return err
		}
		printers.AddPrinter(analysis.NewPrinterToResultDB(db, func() []analysis.Entry { return entries }))
	}
	err = printers.Print()
	err = errors.CombineErrors(err, printers.Close())
	if err != nil {
		return err
	}

	if err := visualizer.RenderFile(cfg.Chart, entries, cfg.MerThreshold); err != nil {
		return err
	}
	log.Noticef("Charts written to %v", cfg.Chart)
	return nil
}
