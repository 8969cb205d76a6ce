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

package eruption

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Column names of the event record store.
const (
	CodeColumn           = "code"
	YearColumn           = "year"
	MonthColumn          = "month"
	DayColumn            = "day"
	HourColumn           = "hour"
	MERColumn            = "mer"
	ExitVelocityColumn   = "exit_v"
	ObservedHeightColumn = "h"
)

var requiredColumns = []string{
	CodeColumn, YearColumn, MonthColumn, DayColumn, HourColumn, MERColumn, ExitVelocityColumn, ObservedHeightColumn,
}

// LoadEvents reads every event of a tab separated record store with a header row.
// Codes and identifiers must be unique.
func LoadEvents(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open event store %v", path)
	}
	defer file.Close()
	events, err := ReadEvents(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load events from %v", path)
	}
	return events, nil
}

// ReadEvents parses a tab separated record store with a header row.
func ReadEvents(r io.Reader) ([]Event, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformedRecord, "missing header row")
	}
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, found := index[name]; !found {
			return nil, errors.Wrapf(ErrMalformedRecord, "missing column %q", name)
		}
	}

	var events []Event
	codes := map[int]struct{}{}
	ids := map[string]int{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(record) {
			continue
		}
		e, err := parseRecord(record, index)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if _, found := codes[e.Code]; found {
			return nil, errors.Wrapf(ErrDuplicateIdentifier, "code %d appears twice (line %d)", e.Code, line)
		}
		if other, found := ids[e.ID()]; found {
			return nil, errors.Wrapf(ErrDuplicateIdentifier, "events %d and %d share identifier %v", other, e.Code, e.ID())
		}
		codes[e.Code] = struct{}{}
		ids[e.ID()] = e.Code
		events = append(events, e)
	}
	return events, nil
}

// Find returns the event with the given code.
func Find(events []Event, code int) (Event, error) {
	for _, e := range events {
		if e.Code == code {
			return e, nil
		}
	}
	return Event{}, errors.Wrapf(ErrEventNotFound, "no event found with code %d", code)
}

// Select loads the events chosen by a command: all of them or the one with the given code.
func Select(path string, code int, all bool) ([]Event, error) {
	events, err := LoadEvents(path)
	if err != nil {
		return nil, err
	}
	if all {
		return events, nil
	}
	e, err := Find(events, code)
	if err != nil {
		return nil, err
	}
	return []Event{e}, nil
}

// ByIdentifier indexes events by their identifier.
func ByIdentifier(events []Event) map[string]Event {
	res := make(map[string]Event, len(events))
	for _, e := range events {
		res[e.ID()] = e
	}
	return res
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseRecord(record []string, index map[string]int) (Event, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	integer := func(name string) (int, error) {
		v, err := strconv.Atoi(field(name))
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedRecord, "column %q: %v", name, err)
		}
		return v, nil
	}
	// empty covariates are kept as missing values
	float := func(name string) (float64, error) {
		s := field(name)
		if s == "" || strings.EqualFold(s, "nan") {
			return math.NaN(), nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrMalformedRecord, "column %q: %v", name, err)
		}
		return v, nil
	}

	var e Event
	var err error
	if e.Code, err = integer(CodeColumn); err != nil {
		return Event{}, err
	}
	if e.Year, err = integer(YearColumn); err != nil {
		return Event{}, err
	}
	if e.Month, err = integer(MonthColumn); err != nil {
		return Event{}, err
	}
	if e.Day, err = integer(DayColumn); err != nil {
		return Event{}, err
	}
	if e.Hour, err = integer(HourColumn); err != nil {
		return Event{}, err
	}
	if e.MER, err = float(MERColumn); err != nil {
		return Event{}, err
	}
	if e.ExitVelocity, err = float(ExitVelocityColumn); err != nil {
		return Event{}, err
	}
	if e.ObservedHeight, err = float(ObservedHeightColumn); err != nil {
		return Event{}, err
	}
	if e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31 || e.Hour < 0 || e.Hour > 23 {
		return Event{}, errors.Wrapf(ErrMalformedRecord, "invalid date %v", e.ID())
	}
	return e, nil
}
