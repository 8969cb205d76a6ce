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

package prepare

import (
	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/fplume"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/urfave/cli/v2"
)

// Command stages the static simulator inputs of the selected events.
var Command = cli.Command{
	Action: prepareAction,
	Name:   "prepare",
	Usage:  "stages the atmospheric profile and grain size distribution of events",
	Flags: []cli.Flag{
		&utils.ProjectDirFlag,
		&utils.ConfigFileFlag,
		&utils.CodeFlag,
		&utils.AllFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Copies data/interim/met_files/<ID>.met and the grain size distribution template
into the staging area data/interim/tmp_montecarlo.`,
}

func prepareAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.EventSelector)
	if err != nil {
		return err
	}
	return Prepare(cfg)
}

// Prepare stages the inputs of every selected event; it stops at the first
// event with a missing or invalid input.
func Prepare(cfg *config.Config) error {
	log := logger.NewLogger(cfg.LogLevel, "Tephra-Prepare")
	events, err := eruption.Select(cfg.Layout.EventsFile(), cfg.Code, cfg.All)
	if err != nil {
		return err
	}
	for _, event := range events {
		staged, err := fplume.Prepare(cfg.Layout, event)
		if err != nil {
			return err
		}
		for _, path := range staged {
			log.Infof("Staged %v", path)
		}
	}
	log.Noticef("Prepared %d events", len(events))
	return nil
}
