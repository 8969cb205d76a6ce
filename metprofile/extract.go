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

package metprofile

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
)

const (
	// Gravity converts geopotential to geopotential height, in m/s^2.
	Gravity = 9.80665
	// GasConstant is the specific gas constant of dry air, in J/(kg K).
	GasConstant = 287.05
	// DefaultStep is the pressure resolution of generated profiles, in hPa.
	DefaultStep = 5.0
)

var (
	ErrTooFewLevels     = errors.New("pressure level extract needs at least two distinct levels")
	ErrMalformedExtract = errors.New("malformed pressure level extract")
)

// Level is one pressure level of a reanalysis extract at the vent location.
type Level struct {
	Pressure         float64 `json:"pressure"`          // hPa
	Temperature      float64 `json:"temperature"`       // K
	SpecificHumidity float64 `json:"specific_humidity"` // kg/kg
	U                float64 `json:"u"`                 // m/s
	V                float64 `json:"v"`                 // m/s
	Geopotential     float64 `json:"geopotential"`      // m^2/s^2
}

// Extract is the pressure level data of one event, e.g. exported from ERA5.
type Extract struct {
	Time      string  `json:"time,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Levels    []Level `json:"levels"`
}

// ReadExtract decodes a JSON extract.
func ReadExtract(path string) (*Extract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extract := &Extract{}
	if err := json.Unmarshal(data, extract); err != nil {
		return nil, errors.Wrapf(ErrMalformedExtract, "%v: %v", path, err)
	}
	return extract, nil
}

// FromPressureLevels interpolates the levels linearly in pressure every step hPa,
// starting at the highest pressure and stopping before the lowest one, and derives
// the FPLUME quantities of every interpolated level.
func FromPressureLevels(levels []Level, step float64) (Profile, error) {
	if !(step > 0) {
		return nil, errors.Wrapf(ErrMalformedExtract, "step must be positive, got %v", step)
	}
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pressure < sorted[j].Pressure })

	pressures := make([]float64, len(sorted))
	for i, l := range sorted {
		if err := l.check(); err != nil {
			return nil, err
		}
		if i > 0 && l.Pressure == sorted[i-1].Pressure {
			return nil, errors.Wrapf(ErrMalformedExtract, "pressure level %v hPa appears twice", l.Pressure)
		}
		pressures[i] = l.Pressure
	}
	if len(sorted) < 2 {
		return nil, errors.Wrapf(ErrTooFewLevels, "got %d", len(sorted))
	}

	lowest, highest := pressures[0], pressures[len(pressures)-1]
	n := int(math.Ceil((highest - lowest) / step))
	profile := make(Profile, 0, n)
	for i := 0; i < n; i++ {
		p := highest - float64(i)*step
		profile = append(profile, interpolate(sorted, pressures, p).row())
	}
	return profile, nil
}

func (l Level) check() error {
	for _, v := range []float64{l.Pressure, l.Temperature, l.SpecificHumidity, l.U, l.V, l.Geopotential} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrMalformedExtract, "level %v hPa has a non-finite value", l.Pressure)
		}
	}
	if l.Pressure <= 0 || l.Temperature <= 0 {
		return errors.Wrapf(ErrMalformedExtract, "level %v hPa needs positive pressure and temperature", l.Pressure)
	}
	return nil
}

// interpolate returns the level at pressure p, which lies within the sorted pressures.
func interpolate(levels []Level, pressures []float64, p float64) Level {
	i := sort.SearchFloat64s(pressures, p)
	if i < len(pressures) && pressures[i] == p {
		return levels[i]
	}
	lo, hi := levels[i-1], levels[i]
	w := (p - lo.Pressure) / (hi.Pressure - lo.Pressure)
	lerp := func(a, b float64) float64 { return a + w*(b-a) }
	return Level{
		Pressure:         p,
		Temperature:      lerp(lo.Temperature, hi.Temperature),
		SpecificHumidity: lerp(lo.SpecificHumidity, hi.SpecificHumidity),
		U:                lerp(lo.U, hi.U),
		V:                lerp(lo.V, hi.V),
		Geopotential:     lerp(lo.Geopotential, hi.Geopotential),
	}
}

func (l Level) row() Row {
	return Row{
		Altitude:    l.Geopotential / Gravity / 1000,
		Density:     l.Pressure * 100 / (GasConstant * l.Temperature),
		Pressure:    l.Pressure,
		Temperature: l.Temperature,
		Humidity:    l.SpecificHumidity * 1000,
		WindU:       l.U,
		WindV:       l.V,
	}
}
