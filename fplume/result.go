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

package fplume

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ResultSuffix completes the run name to the result file FPLUME writes.
const ResultSuffix = ".01.res"

// ReadResult returns the column height reported by a result file: the first
// field of its last non-blank line.
func ReadResult(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(ErrResultMissing, "cannot open %v: %v", path, err)
	}
	defer file.Close()

	last := ""
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(ErrResultMissing, "cannot read %v: %v", path, err)
	}
	if last == "" {
		return 0, errors.Wrapf(ErrResultMissing, "%v is empty", path)
	}
	field := strings.Fields(last)[0]
	height, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(height) || math.IsInf(height, 0) {
		return 0, errors.Wrapf(ErrResultMissing, "%v ends with %q, not a column height", path, field)
	}
	return height, nil
}
