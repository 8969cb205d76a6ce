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

// Package report compares the collected ensembles with the radar observations
// across all events.
package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/stochastic/statistics/ecdf"
	"gonum.org/v1/gonum/stat"
)

// Options configures the comparison of ensembles with observations.
type Options struct {
	Elevation   float64 // vent height added to every simulated height, in m
	Uncertainty float64 // half width of the radar uncertainty band, in m
}

// Entry is the ensemble of one event joined with its observation.
type Entry struct {
	Event      eruption.Event
	Heights    []float64 // simulated heights above sea level, in trial order
	Box        ecdf.Box
	Percentile ecdf.Percentile
	Mean       float64
	Std        float64
	Curve      [][2]float64 // compressed ECDF of Heights
}

// Label is the short event label used on chart axes.
func (e Entry) Label() string {
	return e.Event.Time().Format("2006-01-02-15")
}

// LoadEnsembles reads every column file of dir in name order. Unreadable files
// and files not named after an event identifier are skipped with a diagnostic.
func LoadEnsembles(dir string, log logger.Logger) ([]montecarlo.Ensemble, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ensembles []montecarlo.Ensemble
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, montecarlo.ColumnExtension) {
			continue
		}
		ensemble, err := montecarlo.ReadColumnFile(filepath.Join(dir, name))
		if err != nil {
			log.Warningf("Skipped %v: %v", name, err)
			continue
		}
		if _, err := eruption.ParseIdentifier(ensemble.ID); err != nil {
			log.Warningf("Skipped %v: %v", name, err)
			continue
		}
		ensembles = append(ensembles, ensemble)
	}
	return ensembles, nil
}

// Aggregate joins ensembles with their events and orders the result by MER.
// Ensembles without a matching event, without radar height or MER, or without
// any height are skipped with a diagnostic.
func Aggregate(ensembles []montecarlo.Ensemble, events []eruption.Event, opts Options, log logger.Logger) []Entry {
	byID := eruption.ByIdentifier(events)
	var result []Entry
	for _, ensemble := range ensembles {
		event, found := byID[ensemble.ID]
		if !found {
			log.Warningf("Skipped %v: no matching event", ensemble.ID)
			continue
		}
		if !event.HasObservation() {
			log.Warningf("Skipped %v: missing radar or MER data", ensemble.ID)
			continue
		}
		entry, err := newEntry(event, ensemble.Heights, opts)
		if err != nil {
			log.Warningf("Skipped %v: %v", ensemble.ID, err)
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Event.MER < result[j].Event.MER })
	return result
}

func newEntry(event eruption.Event, simulated []float64, opts Options) (Entry, error) {
	heights := make([]float64, len(simulated))
	for i, h := range simulated {
		heights[i] = h + opts.Elevation
	}
	box, err := ecdf.BoxStats(heights)
	if err != nil {
		return Entry{}, err
	}
	percentile, err := ecdf.Compare(heights, event.ObservedHeight, opts.Uncertainty)
	if err != nil {
		return Entry{}, err
	}
	curve, err := ecdf.Curve(heights, ecdf.NumCurvePoints)
	if err != nil {
		return Entry{}, err
	}
	mean, std := stat.Mean(heights, nil), 0.0
	if len(heights) > 1 {
		std = stat.StdDev(heights, nil)
	}
	return Entry{
		Event:      event,
		Heights:    heights,
		Box:        box,
		Percentile: percentile,
		Mean:       mean,
		Std:        std,
		Curve:      curve,
	}, nil
}
