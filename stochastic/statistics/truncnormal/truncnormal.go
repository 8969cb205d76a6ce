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

package truncnormal

import (
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Package for the normal distribution truncated to the nonnegative half-line [0, +inf).

// ErrInvalidScale is returned for a non-positive standard deviation or non-finite arguments.
var ErrInvalidScale = errors.New("truncated normal requires a finite mean and a positive finite standard deviation")

// LowerBound is the truncation bound of the distribution.
const LowerBound = 0.0

func check(mean, std float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(std) || math.IsInf(std, 0) || std <= 0 {
		return errors.Wrapf(ErrInvalidScale, "mean=%v std=%v", mean, std)
	}
	return nil
}

// Alpha returns the standardized lower bound a = (0 - mean) / std.
func Alpha(mean, std float64) float64 {
	return (LowerBound - mean) / std
}

// CDF is the cumulative distribution function of the truncated distribution.
func CDF(mean, std, x float64) (float64, error) {
	if err := check(mean, std); err != nil {
		return 0, err
	}
	if x <= LowerBound {
		return 0, nil
	}
	a := Alpha(mean, std)
	z := (x - mean) / std
	// both terms are expressed through upper tails to keep precision for a >> 0
	tail := distuv.UnitNormal.Survival(a)
	if tail == 0 {
		return 1, nil
	}
	return (tail - distuv.UnitNormal.Survival(z)) / tail, nil
}

// Quantile is the inverse cumulative distribution function for p in [0, 1].
func Quantile(mean, std, p float64) (float64, error) {
	if err := check(mean, std); err != nil {
		return 0, err
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, errors.Newf("probability %v out of range [0, 1]", p)
	}
	a := Alpha(mean, std)
	var z float64
	if a <= 0 {
		lo := distuv.UnitNormal.CDF(a)
		u := lo + p*(1-lo)
		if u >= 1 {
			u = math.Nextafter(1, 0)
		}
		z = distuv.UnitNormal.Quantile(u)
	} else {
		// mirror into the lower tail of -Z, where the truncated mass is representable
		tail := distuv.UnitNormal.Survival(a)
		v := tail * (1 - p)
		if v <= 0 {
			return LowerBound, nil
		}
		z = -distuv.UnitNormal.Quantile(v)
	}
	x := mean + std*z
	if x < LowerBound || math.IsNaN(x) {
		x = LowerBound
	}
	return x, nil
}

// Sample draws a single value from normal(mean, std) truncated to [0, +inf)
// by inverse transform sampling. The generator is the only state.
func Sample(rg *rand.Rand, mean, std float64) (float64, error) {
	if err := check(mean, std); err != nil {
		return 0, err
	}
	return Quantile(mean, std, rg.Float64())
}

// Mean returns the expectation of the truncated distribution.
func Mean(mean, std float64) (float64, error) {
	if err := check(mean, std); err != nil {
		return 0, err
	}
	a := Alpha(mean, std)
	tail := distuv.UnitNormal.Survival(a)
	if tail == 0 {
		return LowerBound, nil
	}
	return mean + std*distuv.UnitNormal.Prob(a)/tail, nil
}
