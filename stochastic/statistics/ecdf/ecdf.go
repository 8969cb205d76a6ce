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

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

var (
	// ErrEmptyEnsemble is returned when a statistic is requested for a sample without values.
	ErrEmptyEnsemble = errors.New("empty ensemble")
	// ErrInvalidUncertainty is returned for a negative or non-finite observation uncertainty.
	ErrInvalidUncertainty = errors.New("uncertainty must be a nonnegative finite number")
)

// NumCurvePoints is the default number of points kept when compressing an ECDF curve.
const NumCurvePoints = 100

// Percentile locates an observation within an empirical distribution. Mid is the
// ECDF at the observation, Low and High are the ECDF at observation -/+ uncertainty.
type Percentile struct {
	Low  float64
	Mid  float64
	High float64
}

// Sorted returns an ascending copy of sample.
func Sorted(sample []float64) []float64 {
	s := make([]float64, len(sample))
	copy(s, sample)
	sort.Float64s(s)
	return s
}

// Rank evaluates the ECDF of an ascending sample at q: the number of values <= q
// divided by the sample size (rightmost insertion point, ties count fully).
func Rank(sorted []float64, q float64) (float64, error) {
	n := len(sorted)
	if n == 0 {
		return 0, ErrEmptyEnsemble
	}
	i := sort.Search(n, func(i int) bool { return sorted[i] > q })
	return float64(i) / float64(n), nil
}

// Compare computes where observed falls in sample, propagating the symmetric
// uncertainty as a band of query points. The sample is not modified.
func Compare(sample []float64, observed, uncertainty float64) (Percentile, error) {
	if len(sample) == 0 {
		return Percentile{}, ErrEmptyEnsemble
	}
	if math.IsNaN(uncertainty) || math.IsInf(uncertainty, 0) || uncertainty < 0 {
		return Percentile{}, errors.Wrapf(ErrInvalidUncertainty, "got %v", uncertainty)
	}
	if math.IsNaN(observed) {
		return Percentile{}, errors.New("observed value is not a number")
	}
	s := Sorted(sample)
	var p Percentile
	var err error
	if p.Low, err = Rank(s, observed-uncertainty); err != nil {
		return Percentile{}, err
	}
	if p.Mid, err = Rank(s, observed); err != nil {
		return Percentile{}, err
	}
	if p.High, err = Rank(s, observed+uncertainty); err != nil {
		return Percentile{}, err
	}
	return p, nil
}

// Curve returns the ECDF of sample as (x, F(x)) points, compressed to at most
// numPoints points using the Visvalingam-Whyatt algorithm.
func Curve(sample []float64, numPoints int) ([][2]float64, error) {
	if len(sample) == 0 {
		return nil, ErrEmptyEnsemble
	}
	s := Sorted(sample)
	n := float64(len(s))
	ls := orb.LineString{{s[0], 0}}
	for i, x := range s {
		// the step is drawn as a vertical segment at each distinct value
		if i+1 < len(s) && s[i+1] == x {
			continue
		}
		ls = append(ls, orb.Point{x, float64(i+1) / n})
	}
	if numPoints > 1 && len(ls) > numPoints {
		ls = simplify.VisvalingamKeep(numPoints).Simplify(ls).(orb.LineString)
	}
	curve := make([][2]float64, len(ls))
	for i := range ls {
		curve[i] = [2]float64(ls[i])
	}
	return curve, nil
}
