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
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrEventNotFound is returned when no event carries the requested code.
	ErrEventNotFound = errors.New("event not found")
	// ErrDuplicateIdentifier is returned when two events share a code or an identifier.
	ErrDuplicateIdentifier = errors.New("duplicate event identifier")
	// ErrMalformedRecord is returned for records that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed event record")
)

// IdentifierLayout is the time layout of event identifiers.
const IdentifierLayout = "2006_01_02_15"

// Event is one historical eruption with its covariates and the radar observation.
// Missing numeric covariates are NaN.
type Event struct {
	Code           int
	Year           int
	Month          int
	Day            int
	Hour           int
	MER            float64 // mass eruption rate, kg/s
	ExitVelocity   float64 // m/s
	ObservedHeight float64 // radar column height, m
}

// ID returns the event identifier YYYY_MM_DD_HH used to name all event artifacts.
func (e Event) ID() string {
	return fmt.Sprintf("%04d_%02d_%02d_%02d", e.Year, e.Month, e.Day, e.Hour)
}

// Time returns the eruption hour in UTC.
func (e Event) Time() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, 0, 0, 0, time.UTC)
}

// HasObservation reports whether both the MER and the radar height are known.
func (e Event) HasObservation() bool {
	return !math.IsNaN(e.MER) && !math.IsNaN(e.ObservedHeight)
}

func (e Event) String() string {
	return fmt.Sprintf("event %d (%s)", e.Code, e.ID())
}

// ParseIdentifier parses an event identifier back into its eruption hour.
func ParseIdentifier(id string) (time.Time, error) {
	t, err := time.Parse(IdentifierLayout, id)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid event identifier %q", id)
	}
	return t, nil
}
