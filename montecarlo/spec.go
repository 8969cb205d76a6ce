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
	"math"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/cockroachdb/errors"
)

// ErrInvalidSpec is returned when a parameter specification cannot be resolved.
var ErrInvalidSpec = errors.New("invalid parameter specification")

// Kind selects the distribution a parameter is drawn from.
type Kind string

const (
	Normal  Kind = "normal" // normal truncated to [0, +inf)
	Uniform Kind = "uniform"
)

// MeanSource names the event covariate a mean is taken from; empty means a literal mean.
type MeanSource string

const (
	Literal      MeanSource = ""
	FromMER      MeanSource = "mer"
	FromVelocity MeanSource = "exit_velocity"
)

// Temporal key names supplied with every sampled vector.
const (
	YearKey  = "year"
	MonthKey = "month"
	DayKey   = "day"
	HourKey  = "hour"
)

// TemporalKeys lists the names reserved for the event's temporal key.
var TemporalKeys = []string{YearKey, MonthKey, DayKey, HourKey}

// Descriptor describes how one named parameter is drawn.
// The spread of a normal parameter is Std, or StdFactor times the resolved mean when Std is zero.
type Descriptor struct {
	Name      string     `yaml:"name"`
	Kind      Kind       `yaml:"kind,omitempty"`
	Mean      float64    `yaml:"mean,omitempty"`
	MeanRef   MeanSource `yaml:"mean_ref,omitempty"`
	Std       float64    `yaml:"std,omitempty"`
	StdFactor float64    `yaml:"std_factor,omitempty"`
	Min       float64    `yaml:"min,omitempty"`
	Max       float64    `yaml:"max,omitempty"`
}

// Spec is an ordered parameter specification.
type Spec []Descriptor

// DefaultSpec returns the literature values used for FPLUME perturbations.
func DefaultSpec() Spec {
	return Spec{
		{Name: "MER", Kind: Normal, MeanRef: FromMER, StdFactor: 0.223},
		{Name: "exit_velocity", Kind: Normal, MeanRef: FromVelocity, Std: 25},
		{Name: "exit_temperature", Kind: Normal, Mean: 1390, Std: 6},
		{Name: "exit_water_fraction", Kind: Normal, Mean: 3, Std: 0.5},
		{Name: "cp", Kind: Normal, Mean: 1300, Std: 50},
		{Name: "c_umbrella", Kind: Normal, Mean: 1.2, Std: 0.025},
	}
}

// Names returns the parameter names in specification order.
func (s Spec) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.Name
	}
	return names
}

// Keys returns every name a rendered parameter file may refer to.
func (s Spec) Keys() []string {
	return append(s.Names(), TemporalKeys...)
}

func (d Descriptor) kind() Kind {
	if d.Kind == "" {
		return Normal
	}
	return d.Kind
}

// Validate checks the structure of the specification independently of any event.
func (s Spec) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidSpec, "no parameters")
	}
	seen := map[string]struct{}{}
	for _, key := range TemporalKeys {
		seen[key] = struct{}{}
	}
	for _, d := range s {
		if d.Name == "" {
			return errors.Wrap(ErrInvalidSpec, "parameter without a name")
		}
		if _, found := seen[d.Name]; found {
			return errors.Wrapf(ErrInvalidSpec, "parameter %q is duplicated or reserved", d.Name)
		}
		seen[d.Name] = struct{}{}
		if err := d.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d Descriptor) validate() error {
	switch d.kind() {
	case Normal:
		switch d.MeanRef {
		case Literal:
			if d.Mean < 0 || math.IsNaN(d.Mean) {
				return errors.Wrapf(ErrInvalidSpec, "parameter %q needs a nonnegative mean", d.Name)
			}
		case FromMER, FromVelocity:
		default:
			return errors.Wrapf(ErrInvalidSpec, "parameter %q refers to unknown covariate %q", d.Name, d.MeanRef)
		}
		if d.Std < 0 || d.StdFactor < 0 || (d.Std == 0 && d.StdFactor == 0) {
			return errors.Wrapf(ErrInvalidSpec, "parameter %q needs a positive std or std_factor", d.Name)
		}
	case Uniform:
		if !(d.Min < d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
			return errors.Wrapf(ErrInvalidSpec, "parameter %q needs min < max, got [%v, %v)", d.Name, d.Min, d.Max)
		}
	default:
		return errors.Wrapf(ErrInvalidSpec, "parameter %q has unknown kind %q", d.Name, d.Kind)
	}
	return nil
}

// Resolve computes the location and scale of a normal parameter for an event.
func (d Descriptor) Resolve(event eruption.Event) (mean, std float64, err error) {
	switch d.MeanRef {
	case Literal:
		mean = d.Mean
	case FromMER:
		mean = event.MER
	case FromVelocity:
		mean = event.ExitVelocity
	default:
		return 0, 0, errors.Wrapf(ErrInvalidSpec, "parameter %q refers to unknown covariate %q", d.Name, d.MeanRef)
	}
	std = d.Std
	if std == 0 {
		std = d.StdFactor * mean
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean < 0 {
		return 0, 0, errors.Wrapf(ErrInvalidSpec, "parameter %q of %v: mean %v must be a nonnegative number", d.Name, event, mean)
	}
	if math.IsNaN(std) || math.IsInf(std, 0) || std <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidSpec, "parameter %q of %v: std %v must be positive", d.Name, event, std)
	}
	return mean, std, nil
}

// Check verifies that every parameter can be resolved for the event.
func (s Spec) Check(event eruption.Event) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, d := range s {
		if d.kind() != Normal {
			continue
		}
		if _, _, err := d.Resolve(event); err != nil {
			return err
		}
	}
	return nil
}
