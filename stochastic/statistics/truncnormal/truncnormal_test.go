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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestTruncNormal_SampleNeverNegative(t *testing.T) {
	rg := rand.New(rand.NewSource(42))
	for i := 0; i < 100_000; i++ {
		x, err := Sample(rg, 5, 1)
		require.NoError(t, err)
		if x < 0 {
			t.Fatalf("negative sample %v at draw %d", x, i)
		}
	}
}

func TestTruncNormal_SampleNeverNegativeForSmallRatios(t *testing.T) {
	rg := rand.New(rand.NewSource(7))
	for _, p := range [][2]float64{{0.1, 5}, {0, 1}, {1.2, 0.025}, {3, 0.5}} {
		for i := 0; i < 10_000; i++ {
			x, err := Sample(rg, p[0], p[1])
			require.NoError(t, err)
			require.GreaterOrEqual(t, x, 0.0, "mean=%v std=%v", p[0], p[1])
		}
	}
}

func TestTruncNormal_InvalidScale(t *testing.T) {
	rg := rand.New(rand.NewSource(1))
	tests := []struct {
		name      string
		mean, std float64
	}{
		{"zero std", 5, 0},
		{"negative std", 5, -1},
		{"nan std", 5, math.NaN()},
		{"inf std", 5, math.Inf(1)},
		{"nan mean", math.NaN(), 1},
		{"inf mean", math.Inf(-1), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Sample(rg, test.mean, test.std)
			assert.True(t, errors.Is(err, ErrInvalidScale), "unexpected error %v", err)
		})
	}
}

func TestTruncNormal_MatchesNormalFarFromBound(t *testing.T) {
	// with mean 1390 and std 6 the truncation is irrelevant
	rg := rand.New(rand.NewSource(3))
	xs := make([]float64, 20_000)
	for i := range xs {
		x, err := Sample(rg, 1390, 6)
		require.NoError(t, err)
		xs[i] = x
	}
	mean, std := stat.MeanStdDev(xs, nil)
	assert.InDelta(t, 1390, mean, 0.2)
	assert.InDelta(t, 6, std, 0.2)
}

func TestTruncNormal_SampleMeanMatchesAnalyticMean(t *testing.T) {
	rg := rand.New(rand.NewSource(11))
	xs := make([]float64, 50_000)
	for i := range xs {
		x, err := Sample(rg, 0.5, 1)
		require.NoError(t, err)
		xs[i] = x
	}
	want, err := Mean(0.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, want, stat.Mean(xs, nil), 0.02)
}

func TestTruncNormal_QuantileInvertsCDF(t *testing.T) {
	for _, p := range []float64{0, 0.01, 0.25, 0.5, 0.75, 0.99} {
		x, err := Quantile(2, 1.5, p)
		require.NoError(t, err)
		got, err := CDF(2, 1.5, x)
		require.NoError(t, err)
		assert.InDelta(t, p, got, 1e-9, "p=%v", p)
	}
}

func TestTruncNormal_CDFAgainstGonumNormal(t *testing.T) {
	n := distuv.Normal{Mu: 1, Sigma: 2}
	mass := 1 - n.CDF(0)
	for _, x := range []float64{0.5, 1, 3, 8} {
		want := (n.CDF(x) - n.CDF(0)) / mass
		got, err := CDF(1, 2, x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestTruncNormal_NegativeMeanStaysInUpperTail(t *testing.T) {
	// a = 40: the mirrored branch must keep samples finite and nonnegative
	x, err := Quantile(-40, 1, 0.5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, x, 0.0)
	assert.False(t, math.IsInf(x, 0))

	x, err = Quantile(-2, 1, 0.5)
	require.NoError(t, err)
	assert.Greater(t, x, 0.0)
	assert.Less(t, x, 1.0)
}

func TestTruncNormal_QuantileRejectsOutOfRangeProbability(t *testing.T) {
	_, err := Quantile(1, 1, 1.5)
	assert.Error(t, err)
	_, err = Quantile(1, 1, math.NaN())
	assert.Error(t, err)
}

func TestTruncNormal_SameSeedSameDraws(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		x, err := Sample(a, 5e5, 0.223*5e5)
		require.NoError(t, err)
		y, err := Sample(b, 5e5, 0.223*5e5)
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}
