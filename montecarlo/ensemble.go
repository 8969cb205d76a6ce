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

package montecarlo

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ColumnExtension is the file extension of persisted ensembles.
const ColumnExtension = ".column"

// Ensemble is the ordered sequence of simulated column heights (m) of one event.
type Ensemble struct {
	ID      string
	Heights []float64
}

// Len returns the number of trials in the ensemble.
func (e Ensemble) Len() int {
	return len(e.Heights)
}

// WriteColumn writes one height per line.
func WriteColumn(w io.Writer, heights []float64) error {
	bw := bufio.NewWriter(w)
	for _, h := range heights {
		if _, err := bw.WriteString(strconv.FormatFloat(h, 'f', -1, 64) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadColumn parses every whitespace separated value of a column file.
func ReadColumn(r io.Reader) ([]float64, error) {
	var heights []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		for _, field := range strings.Fields(scanner.Text()) {
			h, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			heights = append(heights, h)
		}
	}
	return heights, scanner.Err()
}

// ReadColumnFile loads the ensemble stored in path; its ID is the file name up to the first dot.
func ReadColumnFile(path string) (Ensemble, error) {
	file, err := os.Open(path)
	if err != nil {
		return Ensemble{}, err
	}
	defer file.Close()
	heights, err := ReadColumn(file)
	if err != nil {
		return Ensemble{}, errors.Wrapf(err, "cannot parse %v", path)
	}
	id, _, _ := strings.Cut(filepath.Base(path), ".")
	return Ensemble{ID: id, Heights: heights}, nil
}

// EnsembleStore persists completed ensembles.
//
//go:generate mockgen -source ensemble.go -destination ensemble_mock.go -package montecarlo
type EnsembleStore interface {
	// Save persists the ensemble and returns the path of the published file.
	Save(ensemble Ensemble) (string, error)
}

// ColumnStore writes an ensemble into the staging area and publishes a copy
// into the processed column directory.
type ColumnStore struct {
	StagingDir   string
	ProcessedDir string
}

// NewColumnStore creates a store over the two directories.
func NewColumnStore(stagingDir, processedDir string) *ColumnStore {
	return &ColumnStore{StagingDir: stagingDir, ProcessedDir: processedDir}
}

// Save replaces any earlier ensemble of the same event.
func (s *ColumnStore) Save(ensemble Ensemble) (string, error) {
	if ensemble.ID == "" {
		return "", errors.New("ensemble without identifier")
	}
	if err := os.MkdirAll(s.StagingDir, 0755); err != nil {
		return "", err
	}
	staged := filepath.Join(s.StagingDir, ensemble.ID+ColumnExtension)
	if err := writeColumnFile(staged, ensemble.Heights); err != nil {
		return "", errors.Wrapf(err, "cannot write %v", staged)
	}
	published, err := Publish(staged, s.ProcessedDir)
	if err != nil {
		return "", err
	}
	return published, nil
}

func writeColumnFile(path string, heights []float64) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, file.Close())
	}()
	return WriteColumn(file, heights)
}

// Publish copies src into dir under the same name. Readers of the destination
// see either the previous or the new content.
func Publish(src, dir string) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(src)+".*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	path = filepath.Join(dir, filepath.Base(src))
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
