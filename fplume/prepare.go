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
	"os"
	"path/filepath"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/metprofile"
	"github.com/cockroachdb/errors"
)

// Prepare stages the static inputs of an event, <ID>.met and <ID>.tgsd, in the
// staging area. Nothing is staged when the atmospheric profile is missing or invalid.
func Prepare(layout config.Layout, event eruption.Event) ([]string, error) {
	id := event.ID()
	met := layout.MetFile(id)
	if err := requireFile(met, "run `tephra met` first"); err != nil {
		return nil, err
	}
	if _, err := metprofile.ReadFile(met); err != nil {
		return nil, err
	}
	sizeTemplate := layout.SizeDistributionTemplate()
	if err := requireFile(sizeTemplate, "copy the grain size distribution of FPLUME there"); err != nil {
		return nil, err
	}

	staging := layout.StagingDir()
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, errors.Wrapf(err, "cannot create staging area %v", staging)
	}
	staged := []string{
		filepath.Join(staging, id+SizeDistributionExtension),
		filepath.Join(staging, id+MetExtension),
	}
	if err := copyFile(sizeTemplate, staged[0]); err != nil {
		return nil, errors.Wrapf(err, "cannot stage %v", sizeTemplate)
	}
	if err := copyFile(met, staged[1]); err != nil {
		return nil, errors.Wrapf(err, "cannot stage %v", met)
	}
	return staged, nil
}
