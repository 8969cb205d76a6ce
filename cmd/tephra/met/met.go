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

package met

import (
	"os"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/metprofile"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Command converts pressure level extracts into FPLUME atmospheric profiles.
var Command = cli.Command{
	Action: metAction,
	Name:   "met",
	Usage:  "converts the pressure level extracts of events into .met profiles",
	Flags: []cli.Flag{
		&utils.ProjectDirFlag,
		&utils.ConfigFileFlag,
		&utils.CodeFlag,
		&utils.AllFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Reads data/external/ERA5/<ID>_pressure_levels.json, interpolates the levels every
5 hPa and writes data/interim/met_files/<ID>.met.`,
}

func metAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.EventSelector)
	if err != nil {
		return err
	}
	return Convert(cfg)
}

// Convert writes the atmospheric profile of every selected event.
func Convert(cfg *config.Config) error {
	log := logger.NewLogger(cfg.LogLevel, "Tephra-Met")
	events, err := eruption.Select(cfg.Layout.EventsFile(), cfg.Code, cfg.All)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Layout.MetDir(), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create %v", cfg.Layout.MetDir())
	}
	for _, event := range events {
		id := event.ID()
		extract, err := metprofile.ReadExtract(cfg.Layout.ExtractFile(id))
		if err != nil {
			return errors.Wrapf(err, "cannot convert %v", event)
		}
		profile, err := metprofile.FromPressureLevels(extract.Levels, metprofile.DefaultStep)
		if err != nil {
			return errors.Wrapf(err, "cannot convert %v", event)
		}
		if err := metprofile.WriteFile(cfg.Layout.MetFile(id), profile); err != nil {
			return err
		}
		log.Infof("Wrote %v with %d levels", cfg.Layout.MetFile(id), len(profile))
	}
	log.Noticef("Converted %d events", len(events))
	return nil
}
