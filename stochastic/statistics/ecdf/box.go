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

package ecdf

import "math"

// Box holds the five statistics drawn by the ensemble box plot.
type Box struct {
	WhiskerLow  float64 // 1st percentile
	Q1          float64 // 25th percentile
	Median      float64
	Q3          float64 // 75th percentile
	WhiskerHigh float64 // 99th percentile
}

// Values returns the box in the order expected by box plot renderers.
func (b Box) Values() [5]float64 {
	return [5]float64{b.WhiskerLow, b.Q1, b.Median, b.Q3, b.WhiskerHigh}
}

// Quantile returns the p-quantile (p in [0, 1]) of an ascending sample, linearly
// interpolating between the two closest ranks.
func Quantile(sorted []float64, p float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, ErrEmptyEnsemble
	}
	p = math.Min(math.Max(p, 0), 1)
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1], nil
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i]), nil
}

// BoxStats computes the 1/25/50/75/99th percentiles of sample.
func BoxStats(sample []float64) (Box, error) {
	if len(sample) == 0 {
		return Box{}, ErrEmptyEnsemble
	}
	s := Sorted(sample)
	var qs [5]float64
	for i, p := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		q, err := Quantile(s, p)
		if err != nil {
			return Box{}, err
		}
		qs[i] = q
	}
	return Box{qs[0], qs[1], qs[2], qs[3], qs[4]}, nil
}
