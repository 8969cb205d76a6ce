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

package report

import (
	"sort"

	"github.com/0xsoniclabs/tephra/stochastic/statistics/ecdf"
)

// QQPoint pairs the percentile of one event with its theoretical uniform quantile.
type QQPoint struct {
	Label       string
	MER         float64
	Theoretical float64
	Percentile  ecdf.Percentile
}

// SplitByMER separates entries with MER below threshold from the others.
func SplitByMER(entries []Entry, threshold float64) (low, high []Entry) {
	for _, e := range entries {
		if e.Event.MER < threshold {
			low = append(low, e)
		} else {
			high = append(high, e)
		}
	}
	return low, high
}

// QQ sorts the entries by their mid percentile and assigns the plotting
// positions (i+0.5)/n of a uniform distribution. A calibrated ensemble yields
// points close to the diagonal.
func QQ(entries []Entry) []QQPoint {
	points := make([]QQPoint, len(entries))
	for i, e := range entries {
		points[i] = QQPoint{Label: e.Label(), MER: e.Event.MER, Percentile: e.Percentile}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Percentile.Mid < points[j].Percentile.Mid })
	n := float64(len(points))
	for i := range points {
		points[i].Theoretical = (float64(i) + 0.5) / n
	}
	return points
}
