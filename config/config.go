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

package config

import (
	"math"
	"path/filepath"
	"time"

	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var (
	// ErrMissingSelector is returned when a per-event command gets neither --code nor --all.
	ErrMissingSelector = errors.New("please specify --code <int> or --all")
	// ErrInvalidConfig is returned for option values that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SelectorMode tells NewConfig whether the command operates on selected events.
type SelectorMode int

const (
	NoSelector    SelectorMode = iota // command works on all available data
	EventSelector                     // command requires --code or --all
)

// Config is the immutable run configuration handed to every component.
type Config struct {
	AppName     string
	CommandName string

	LogLevel      string
	ProjectDir    string
	ConfigFile    string
	SimulatorDir  string
	Simulator     string
	Code          int
	All           bool
	NumTrials     int
	SiteName      string
	Site          Site
	RandomSeed    int64
	TrialTimeout  time.Duration
	TrackProgress bool
	MetricsFile   string
	ResultDb      string
	Uncertainty   float64
	MerThreshold  float64
	Output        string
	Chart         string
	Parameters    montecarlo.Spec
	Layout        Layout
}

// NewConfig creates the configuration of a command from its flags and the
// optional YAML configuration file. Explicitly set flags take precedence over the file.
func NewConfig(ctx *cli.Context, mode SelectorMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	required := cfg.ConfigFile != ""
	if !required {
		cfg.ConfigFile = filepath.Join(cfg.ProjectDir, DefaultConfigFile)
	}
	file, err := loadFile(cfg.ConfigFile, required)
	if err != nil {
		return nil, err
	}
	if file != nil {
		file.apply(cfg, func(name string) bool { return ctx.IsSet(name) })
	}

	if err := cfg.complete(); err != nil {
		return nil, err
	}
	if mode == EventSelector && !cfg.All && !ctx.IsSet(utils.CodeFlag.Name) {
		return nil, ErrMissingSelector
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		LogLevel:      getFlagValue(ctx, logger.LogLevelFlag).(string),
		ProjectDir:    getFlagValue(ctx, utils.ProjectDirFlag).(string),
		ConfigFile:    getFlagValue(ctx, utils.ConfigFileFlag).(string),
		SimulatorDir:  getFlagValue(ctx, utils.SimulatorDirFlag).(string),
		Simulator:     getFlagValue(ctx, utils.SimulatorFlag).(string),
		Code:          getFlagValue(ctx, utils.CodeFlag).(int),
		All:           getFlagValue(ctx, utils.AllFlag).(bool),
		NumTrials:     getFlagValue(ctx, utils.NumTrialsFlag).(int),
		SiteName:      getFlagValue(ctx, utils.SiteFlag).(string),
		RandomSeed:    getFlagValue(ctx, utils.RandomSeedFlag).(int64),
		TrialTimeout:  getFlagValue(ctx, utils.TrialTimeoutFlag).(time.Duration),
		TrackProgress: getFlagValue(ctx, utils.TrackProgressFlag).(bool),
		MetricsFile:   getFlagValue(ctx, utils.MetricsFileFlag).(string),
		ResultDb:      getFlagValue(ctx, utils.ResultDbFlag).(string),
		Uncertainty:   getFlagValue(ctx, utils.UncertaintyFlag).(float64),
		MerThreshold:  getFlagValue(ctx, utils.MerThresholdFlag).(float64),
		Output:        getFlagValue(ctx, utils.OutputFlag).(string),
		Chart:         getFlagValue(ctx, utils.ChartFlag).(string),
	}
	return cfg
}

// complete derives dependent values and validates the configuration.
func (cfg *Config) complete() error {
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	cfg.Layout = NewLayout(cfg.ProjectDir)
	if cfg.SimulatorDir == "" {
		cfg.SimulatorDir = cfg.Layout.DefaultSimulatorDir()
	}
	if cfg.Simulator == "" {
		cfg.Simulator = utils.SimulatorFlag.Value
	}
	if cfg.Chart == "" {
		cfg.Chart = filepath.Join(cfg.Layout.PlotsDir(), DefaultChartFile)
	}
	if len(cfg.Parameters) == 0 {
		cfg.Parameters = montecarlo.DefaultSpec()
	}

	site, err := LookupSite(cfg.SiteName)
	if err != nil {
		return err
	}
	cfg.Site = site

	return cfg.Validate()
}

// Validate checks the option values; it does not touch the file system.
func (cfg *Config) Validate() error {
	if cfg.NumTrials < 1 {
		return errors.Wrapf(ErrInvalidConfig, "n_montecarlo must be at least 1, got %d", cfg.NumTrials)
	}
	if cfg.TrialTimeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "trial timeout must not be negative, got %v", cfg.TrialTimeout)
	}
	if math.IsNaN(cfg.Uncertainty) || math.IsInf(cfg.Uncertainty, 0) || cfg.Uncertainty < 0 {
		return errors.Wrapf(ErrInvalidConfig, "radar uncertainty must be a nonnegative number, got %v", cfg.Uncertainty)
	}
	if math.IsNaN(cfg.MerThreshold) || cfg.MerThreshold <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "MER threshold must be positive, got %v", cfg.MerThreshold)
	}
	if err := cfg.Parameters.Validate(); err != nil {
		return errors.Wrap(err, "parameters")
	}
	return nil
}

// Seed returns the configured random seed, or one derived from the current time.
func (cfg *Config) Seed() int64 {
	if cfg.RandomSeed != 0 {
		return cfg.RandomSeed
	}
	return time.Now().UnixNano()
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.DurationFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Duration(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.DurationFlag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}
