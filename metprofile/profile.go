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

// Package metprofile converts pressure level extracts into the atmospheric
// profiles read by FPLUME.
package metprofile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMalformedProfile is returned for .met content that cannot be parsed.
var ErrMalformedProfile = errors.New("malformed atmospheric profile")

const (
	headerNames = "# Z(asl)    Density     Pressure   Temperature   Specific-humidity  Wind-velocity       Wind-velocity"
	headerUnits = "#  (km)   (kg/m^3)      (hPa)        (K)          (g/kg)         West->East(m/s)    North->South(m/s)"

	numColumns = 7
)

// Row is one level of an atmospheric profile in FPLUME units.
type Row struct {
	Altitude    float64 // km above sea level
	Density     float64 // kg/m^3
	Pressure    float64 // hPa
	Temperature float64 // K
	Humidity    float64 // specific humidity in g/kg
	WindU       float64 // west to east, m/s
	WindV       float64 // north to south, m/s
}

func (r Row) values() [numColumns]float64 {
	return [numColumns]float64{r.Altitude, r.Density, r.Pressure, r.Temperature, r.Humidity, r.WindU, r.WindV}
}

// Profile lists the levels from the highest pressure (lowest altitude) upwards.
type Profile []Row

// Write prints the profile with the two header lines and tab separated values.
func Write(w io.Writer, p Profile) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, headerNames)
	fmt.Fprintln(bw, headerUnits)
	for _, row := range p {
		values := row.values()
		for i, v := range values {
			if i > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(strconv.FormatFloat(v, 'f', 3, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the profile to path, replacing an existing file.
func WriteFile(path string, p Profile) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create profile %v", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			err = errors.CombineErrors(err, cerr)
		}
	}()
	return Write(file, p)
}

// Read parses a profile; lines starting with '#' and blank lines are skipped.
func Read(r io.Reader) (Profile, error) {
	var profile Profile
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != numColumns {
			return nil, errors.Wrapf(ErrMalformedProfile, "line %d has %d columns, expected %d", line, len(fields), numColumns)
		}
		var values [numColumns]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrMalformedProfile, "line %d column %d: %q is not a number", line, i+1, field)
			}
			values[i] = v
		}
		profile = append(profile, Row{
			Altitude:    values[0],
			Density:     values[1],
			Pressure:    values[2],
			Temperature: values[3],
			Humidity:    values[4],
			WindU:       values[5],
			WindV:       values[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(profile) == 0 {
		return nil, errors.Wrap(ErrMalformedProfile, "no levels")
	}
	return profile, nil
}

// ReadFile parses the profile stored at path.
func ReadFile(path string) (Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	profile, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read profile %v", path)
	}
	return profile, nil
}
