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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/tephra/cmd/tephra/met"
	"github.com/0xsoniclabs/tephra/cmd/tephra/prepare"
	"github.com/0xsoniclabs/tephra/cmd/tephra/report"
	"github.com/0xsoniclabs/tephra/cmd/tephra/run"
	"github.com/0xsoniclabs/tephra/config"
	"github.com/urfave/cli/v2"
)

// TephraApp data structure
var TephraApp = cli.App{
	Name:      "Tephra",
	HelpName:  "tephra",
	Usage:     "Monte Carlo uncertainty analysis of FPLUME column heights",
	Version:   config.Version + " (" + config.GitCommit + ")",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&met.Command,
		&prepare.Command,
		&run.Command,
		&report.Command,
	},
	Description: `
A study runs the commands in order: met converts the atmospheric extracts of the
selected events, prepare stages them, run collects the Monte Carlo ensembles and
report compares all ensembles with the radar observations.`,
}

func main() {
	if err := TephraApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
