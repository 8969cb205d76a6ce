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

package utils

import (
	"github.com/urfave/cli/v2"
)

// Command line options shared by the tephra commands.
var (
	ProjectDirFlag = cli.PathFlag{
		Name:  "project-dir",
		Usage: "root of the project containing data/, plots/ and config.yaml",
		Value: ".",
	}
	ConfigFileFlag = cli.PathFlag{
		Name:  "config",
		Usage: "YAML configuration file (default: <project-dir>/config.yaml)",
	}
	SimulatorDirFlag = cli.PathFlag{
		Name:  "fplume-dir",
		Usage: "installation directory of FPLUME, used as working directory of every trial (default: <project-dir>/fplume-1.3/src)",
	}
	SimulatorFlag = cli.StringFlag{
		Name:  "fplume",
		Usage: "name or path of the FPLUME executable",
		Value: "fplume",
	}
	CodeFlag = cli.IntFlag{
		Name:  "code",
		Usage: "process only the event with this code",
	}
	AllFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "process every event of the event list",
	}
	NumTrialsFlag = cli.IntFlag{
		Name:    "n-montecarlo",
		Aliases: []string{"n"},
		Usage:   "number of Monte Carlo trials per event",
		Value:   100,
	}
	SiteFlag = cli.StringFlag{
		Name:  "volcano",
		Usage: "volcano the events belong to",
		Value: "Etna",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the parameter sampler; 0 derives one from the current time",
	}
	TrialTimeoutFlag = cli.DurationFlag{
		Name:  "trial-timeout",
		Usage: "abort an event when one simulator run takes longer; 0 disables the limit",
	}
	TrackProgressFlag = cli.BoolFlag{
		Name:  "track-progress",
		Usage: "periodically log the progress of every ensemble",
		Value: true,
	}
	MetricsFileFlag = cli.PathFlag{
		Name:  "metrics-file",
		Usage: "write Prometheus run metrics to this file in the node exporter textfile format",
	}
	ResultDbFlag = cli.PathFlag{
		Name:  "result-db",
		Usage: "sqlite3 database collecting ensemble statistics of every report",
	}
	UncertaintyFlag = cli.Float64Flag{
		Name:  "radar-uncertainty",
		Usage: "half width of the radar height uncertainty in meters",
		Value: 300,
	}
	MerThresholdFlag = cli.Float64Flag{
		Name:  "mer-threshold",
		Usage: "mass eruption rate separating the low and high MER groups in kg/s",
		Value: 1e6,
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "also write the percentile table to this file",
	}
	ChartFlag = cli.PathFlag{
		Name:  "chart",
		Usage: "HTML chart page (default: <project-dir>/plots/montecarlo.html)",
	}
)
