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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneToHundred() []float64 {
	s := make([]float64, 100)
	for i := range s {
		s[i] = float64(i + 1)
	}
	return s
}

func TestCompare_PointObservation(t *testing.T) {
	p, err := Compare(oneToHundred(), 50, 0)
	require.NoError(t, err)
	assert.Equal(t, Percentile{Low: 0.5, Mid: 0.5, High: 0.5}, p)
}

func TestCompare_UncertaintyBand(t *testing.T) {
	p, err := Compare(oneToHundred(), 50, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.40, p.Low)
	assert.Equal(t, 0.50, p.Mid)
	assert.Equal(t, 0.60, p.High)
}

func TestCompare_TiesCountFully(t *testing.T) {
	p, err := Compare([]float64{9000, 9000, 9000}, 9000, 300)
	require.NoError(t, err)
	assert.Equal(t, Percentile{Low: 0, Mid: 1, High: 1}, p)

	p, err = Compare([]float64{9000, 9000, 9000}, 9300, 300)
	require.NoError(t, err)
	assert.Equal(t, Percentile{Low: 1, Mid: 1, High: 1}, p)
}

func TestCompare_OutsideSample(t *testing.T) {
	p, err := Compare([]float64{3, 1, 2}, -5, 1)
	require.NoError(t, err)
	assert.Equal(t, Percentile{}, p)

	p, err = Compare([]float64{3, 1, 2}, 50, 1)
	require.NoError(t, err)
	assert.Equal(t, Percentile{Low: 1, Mid: 1, High: 1}, p)
}

func TestCompare_DoesNotModifySample(t *testing.T) {
	sample := []float64{3, 1, 2}
	_, err := Compare(sample, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestCompare_EmptyEnsemble(t *testing.T) {
	_, err := Compare(nil, 10, 1)
	assert.True(t, errors.Is(err, ErrEmptyEnsemble))
	_, err = Rank(nil, 1)
	assert.True(t, errors.Is(err, ErrEmptyEnsemble))
}

func TestCompare_InvalidUncertainty(t *testing.T) {
	for _, u := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Compare([]float64{1}, 1, u)
		assert.True(t, errors.Is(err, ErrInvalidUncertainty), "uncertainty %v", u)
	}
}

func TestCompare_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	nonEmpty := gen.SliceOf(gen.Float64Range(0, 20_000)).SuchThat(func(v []float64) bool {
		return len(v) > 0
	})

	properties.Property("low <= mid <= high and all lie in [0, 1]", prop.ForAll(
		func(sample []float64, observed, uncertainty float64) bool {
			p, err := Compare(sample, observed, uncertainty)
			if err != nil {
				return false
			}
			return 0 <= p.Low && p.Low <= p.Mid && p.Mid <= p.High && p.High <= 1
		},
		nonEmpty,
		gen.Float64Range(-1_000, 21_000),
		gen.Float64Range(0, 2_000),
	))

	properties.Property("mid equals the fraction of values not above the observation", prop.ForAll(
		func(sample []float64, observed float64) bool {
			p, err := Compare(sample, observed, 0)
			if err != nil {
				return false
			}
			count := 0
			for _, v := range sample {
				if v <= observed {
					count++
				}
			}
			return p.Mid == float64(count)/float64(len(sample))
		},
		nonEmpty,
		gen.Float64Range(0, 20_000),
	))

	properties.TestingRun(t)
}

func TestCurve_IsMonotoneAndEndsAtOne(t *testing.T) {
	sample := make([]float64, 1000)
	for i := range sample {
		sample[i] = float64((i * 7919) % 1000)
	}
	curve, err := Curve(sample, NumCurvePoints)
	require.NoError(t, err)
	require.LessOrEqual(t, len(curve), NumCurvePoints)
	assert.Equal(t, [2]float64{0, 0}, curve[0])
	assert.Equal(t, [2]float64{999, 1}, curve[len(curve)-1])
	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i][0], curve[i-1][0])
		assert.GreaterOrEqual(t, curve[i][1], curve[i-1][1])
	}
}

func TestCurve_CollapsesTies(t *testing.T) {
	curve, err := Curve([]float64{5, 5, 5, 7}, NumCurvePoints)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{5, 0}, {5, 0.75}, {7, 1}}, curve)

	_, err = Curve(nil, NumCurvePoints)
	assert.True(t, errors.Is(err, ErrEmptyEnsemble))
}
