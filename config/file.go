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
	"bytes"
	"io"
	"os"
	"time"

	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// File is the content of config.yaml. Absent keys leave the flag values untouched.
type File struct {
	NumTrials    *int            `yaml:"n_montecarlo"`
	Volcano      *string         `yaml:"volcano"`
	SimulatorDir *string         `yaml:"fplume_dir"`
	Simulator    *string         `yaml:"fplume"`
	Seed         *int64          `yaml:"seed"`
	TrialTimeout *time.Duration  `yaml:"trial_timeout"`
	Uncertainty  *float64        `yaml:"radar_uncertainty"`
	MerThreshold *float64        `yaml:"mer_threshold"`
	Parameters   montecarlo.Spec `yaml:"parameters"`
}

// ReadFile decodes a configuration file; unknown keys are rejected.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration %v", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	file := &File{}
	if err := dec.Decode(file); err != nil {
		// a document without content decodes to io.EOF
		if errors.Is(err, io.EOF) {
			return file, nil
		}
		return nil, errors.Wrapf(err, "cannot parse configuration %v", path)
	}
	return file, nil
}

// loadFile reads the configuration file; a missing optional file is not an error.
func loadFile(path string, required bool) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cannot access configuration %v", path)
	}
	return ReadFile(path)
}

// apply overlays the file onto cfg; options for which isSet reports true keep their flag value.
func (f *File) apply(cfg *Config, isSet func(name string) bool) {
	if f.NumTrials != nil && !isSet(utils.NumTrialsFlag.Name) {
		cfg.NumTrials = *f.NumTrials
	}
	if f.Volcano != nil && !isSet(utils.SiteFlag.Name) {
		cfg.SiteName = *f.Volcano
	}
	if f.SimulatorDir != nil && !isSet(utils.SimulatorDirFlag.Name) {
		cfg.SimulatorDir = *f.SimulatorDir
	}
	if f.Simulator != nil && !isSet(utils.SimulatorFlag.Name) {
		cfg.Simulator = *f.Simulator
	}
	if f.Seed != nil && !isSet(utils.RandomSeedFlag.Name) {
		cfg.RandomSeed = *f.Seed
	}
	if f.TrialTimeout != nil && !isSet(utils.TrialTimeoutFlag.Name) {
		cfg.TrialTimeout = *f.TrialTimeout
	}
	if f.Uncertainty != nil && !isSet(utils.UncertaintyFlag.Name) {
		cfg.Uncertainty = *f.Uncertainty
	}
	if f.MerThreshold != nil && !isSet(utils.MerThresholdFlag.Name) {
		cfg.MerThreshold = *f.MerThreshold
	}
	if len(f.Parameters) > 0 {
		cfg.Parameters = f.Parameters
	}
}
