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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitByMER_ThresholdBelongsToTheHighGroup(t *testing.T) {
	entries := []Entry{
		testEntry(t, 1, 5e5, 9000, 6000),
		testEntry(t, 2, 1e6, 9000, 6000),
		testEntry(t, 3, 2e6, 9000, 6000),
	}
	low, high := SplitByMER(entries, 1e6)
	require.Len(t, low, 1)
	require.Len(t, high, 2)
	assert.Equal(t, 1, low[0].Event.Code)
	assert.Equal(t, 2, high[0].Event.Code)
	assert.Equal(t, 3, high[1].Event.Code)
}

func TestQQ_UniformPlottingPositions(t *testing.T) {
	entries := []Entry{
		testEntry(t, 1, 5e5, 9350, 5000, 6000), // mid 1.0
		testEntry(t, 2, 6e5, 3350, 1000, 2000), // mid 0.0
		testEntry(t, 3, 7e5, 9850, 6000, 7000), // mid 0.5
	}
	points := QQ(entries)
	require.Len(t, points, 3)
	assert.Equal(t, "2013-11-23-07", points[0].Label)
	assert.Equal(t, "2013-11-23-08", points[1].Label)
	assert.Equal(t, "2013-11-23-06", points[2].Label)
	assert.Equal(t, 6e5, points[0].MER)
	for i, want := range []float64{1.0 / 6, 0.5, 5.0 / 6} {
		assert.InDelta(t, want, points[i].Theoretical, 1e-12)
	}
	assert.Equal(t, 0.0, points[0].Percentile.Mid)
	assert.Equal(t, 0.5, points[1].Percentile.Mid)
	assert.Equal(t, 1.0, points[2].Percentile.Mid)
}

func TestQQ_Empty(t *testing.T) {
	assert.Empty(t, QQ(nil))
}
