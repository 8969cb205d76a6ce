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
	"fmt"
	"math/rand"
	"strconv"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/stochastic/statistics/truncnormal"
	"github.com/cockroachdb/errors"
)

// Vector is one sampled parameter set together with the event's temporal key.
// It is never modified after sampling.
type Vector struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	names  []string
	values map[string]float64
}

// Get returns the sampled value of a parameter.
func (v Vector) Get(name string) (float64, bool) {
	value, found := v.values[name]
	return value, found
}

// Names returns the sampled parameter names in specification order.
func (v Vector) Names() []string {
	return append([]string(nil), v.names...)
}

// Len returns the number of sampled parameters.
func (v Vector) Len() int {
	return len(v.names)
}

// TemplateData returns a fresh mapping from every template key to its value.
// Temporal key fields are zero padded as in the event identifier.
func (v Vector) TemplateData() map[string]any {
	data := make(map[string]any, len(v.values)+len(TemporalKeys))
	for name, value := range v.values {
		data[name] = Number(value)
	}
	data[YearKey] = fmt.Sprintf("%04d", v.Year)
	data[MonthKey] = fmt.Sprintf("%02d", v.Month)
	data[DayKey] = fmt.Sprintf("%02d", v.Day)
	data[HourKey] = fmt.Sprintf("%02d", v.Hour)
	return data
}

// Number is a sampled value as handed to templates. It prints in plain decimal
// notation, so {{.MER}} never renders in exponent form; printf verbs still apply.
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// ParameterSampler draws one parameter vector per call.
//
//go:generate mockgen -source sampler.go -destination sampler_mock.go -package montecarlo
type ParameterSampler interface {
	Check(event eruption.Event) error
	Sample(event eruption.Event) (Vector, error)
}

// Sampler draws every parameter of a specification independently.
type Sampler struct {
	spec Spec
	rg   *rand.Rand
}

// NewSampler creates a sampler over spec using rg as its only source of randomness.
func NewSampler(spec Spec, rg *rand.Rand) *Sampler {
	return &Sampler{spec: spec, rg: rg}
}

// Check verifies that every parameter can be resolved for the event.
func (s *Sampler) Check(event eruption.Event) error {
	return s.spec.Check(event)
}

// Sample draws one vector for the event.
func (s *Sampler) Sample(event eruption.Event) (Vector, error) {
	v := Vector{
		Year:   event.Year,
		Month:  event.Month,
		Day:    event.Day,
		Hour:   event.Hour,
		names:  s.spec.Names(),
		values: make(map[string]float64, len(s.spec)),
	}
	for _, d := range s.spec {
		var value float64
		switch d.kind() {
		case Uniform:
			value = d.Min + s.rg.Float64()*(d.Max-d.Min)
		case Normal:
			mean, std, err := d.Resolve(event)
			if err != nil {
				return Vector{}, err
			}
			value, err = truncnormal.Sample(s.rg, mean, std)
			if err != nil {
				return Vector{}, errors.Wrapf(err, "cannot sample %q", d.Name)
			}
		default:
			return Vector{}, errors.Wrapf(ErrInvalidSpec, "parameter %q has unknown kind %q", d.Name, d.Kind)
		}
		v.values[d.Name] = value
	}
	return v, nil
}

// NewVector builds a vector from explicit values; used by tools replaying a parameter set.
func NewVector(event eruption.Event, names []string, values map[string]float64) Vector {
	v := Vector{
		Year:   event.Year,
		Month:  event.Month,
		Day:    event.Day,
		Hour:   event.Hour,
		names:  append([]string(nil), names...),
		values: make(map[string]float64, len(values)),
	}
	for name, value := range values {
		v.values[name] = value
	}
	return v
}
