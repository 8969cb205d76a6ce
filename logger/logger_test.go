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

package logger

import (
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestLogger_NewLogger(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		log := NewLogger("DEBUG", "Tephra-Test")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.DEBUG))
	})

	t.Run("lowercase level", func(t *testing.T) {
		log := NewLogger("warning", "Tephra-Test-Lower")
		assert.True(t, log.IsEnabledFor(logging.WARNING))
		assert.False(t, log.IsEnabledFor(logging.INFO))
	})

	t.Run("invalid log level", func(t *testing.T) {
		log := NewLogger("INVALID", "Tephra-Test-Invalid")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.INFO))
		assert.False(t, log.IsEnabledFor(logging.DEBUG))
	})
}

func TestLogger_ParseTime(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		h, m, s uint32
	}{
		{"zero", 0, 0, 0, 0},
		{"seconds only", 59 * time.Second, 0, 0, 59},
		{"full minute", 60 * time.Second, 0, 1, 0},
		{"hour minute second", 3661 * time.Second, 1, 1, 1},
		{"rounds to seconds", 1499 * time.Millisecond, 0, 0, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h, m, s := ParseTime(test.elapsed)
			assert.Equal(t, test.h, h)
			assert.Equal(t, test.m, m)
			assert.Equal(t, test.s, s)
		})
	}
}
