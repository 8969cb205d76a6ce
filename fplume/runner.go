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

// Package fplume runs single FPLUME simulations on sampled parameter vectors.
package fplume

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/0xsoniclabs/tephra/config"
	"github.com/0xsoniclabs/tephra/eruption"
	"github.com/0xsoniclabs/tephra/logger"
	"github.com/0xsoniclabs/tephra/montecarlo"
	"github.com/0xsoniclabs/tephra/utils"
	"github.com/cockroachdb/errors"
)

var (
	// ErrMissingArtifact is returned when an input prepared by an earlier step is absent.
	ErrMissingArtifact = errors.New("missing input artifact")
	// ErrSimulatorNotFound is returned when the FPLUME executable cannot be located.
	ErrSimulatorNotFound = errors.New("simulator not found")
	// ErrSimulatorFailed marks simulator runs that exited with an error.
	ErrSimulatorFailed = errors.New("simulator failed")
	// ErrSimulatorTimeout is returned when a run exceeds the trial timeout.
	ErrSimulatorTimeout = errors.New("simulator timed out")
	// ErrResultMissing is returned when a run produced no usable column height.
	ErrResultMissing = errors.New("simulator result missing")
)

const (
	// WorkAreaName is the directory below the installation directory holding the trial stages.
	WorkAreaName = "tmp_montecarlo"

	MetExtension              = ".met"
	SizeDistributionExtension = ".tgsd"
	InputExtension            = ".inp"

	outputTailLength = 512
)

// Runner executes one FPLUME run per trial, each in its own stage directory
// <installation>/tmp_montecarlo/<ID>.trial-NNNN.
type Runner struct {
	cfg      *config.Config
	template *InputTemplate
	shell    utils.ShellExecutor
	binary   string
	log      logger.Logger
}

// NewRunner locates the simulator and creates a runner rendering inputs with tmpl.
func NewRunner(cfg *config.Config, tmpl *InputTemplate, shell utils.ShellExecutor, log logger.Logger) (*Runner, error) {
	info, err := os.Stat(cfg.SimulatorDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrSimulatorNotFound, "installation directory %v does not exist", cfg.SimulatorDir)
	}
	binary, err := resolveBinary(cfg.SimulatorDir, cfg.Simulator)
	if err != nil {
		return nil, err
	}
	log.Debugf("Using simulator %v in %v", binary, cfg.SimulatorDir)
	return &Runner{cfg: cfg, template: tmpl, shell: shell, binary: binary, log: log}, nil
}

// resolveBinary prefers an executable of the given name inside the installation
// directory and falls back to the search path.
func resolveBinary(dir, name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		path, err := filepath.Abs(name)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(ErrSimulatorNotFound, "%v", err)
		}
		return path, nil
	}
	candidate := filepath.Join(dir, name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return filepath.Abs(candidate)
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrSimulatorNotFound, "%q is neither in %v nor on the search path", name, dir)
	}
	return path, nil
}

// WorkArea is the directory holding the stages of all trials.
func (r *Runner) WorkArea() string {
	return filepath.Join(r.cfg.SimulatorDir, WorkAreaName)
}

// RunTrial renders the vector, runs FPLUME once and returns the column height.
// The stage of a failed trial is left for Cleanup.
func (r *Runner) RunTrial(ctx context.Context, event eruption.Event, vector montecarlo.Vector, trial int) (float64, error) {
	id := event.ID()
	staging := r.cfg.Layout.StagingDir()
	met := filepath.Join(staging, id+MetExtension)
	tgsd := filepath.Join(staging, id+SizeDistributionExtension)
	for _, input := range []string{met, tgsd} {
		if err := requireFile(input, "run `tephra prepare` first"); err != nil {
			return 0, err
		}
	}

	stageName := fmt.Sprintf("%s.trial-%04d", id, trial)
	stage := filepath.Join(r.WorkArea(), stageName)
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return 0, errors.Wrapf(err, "cannot create stage of trial %d", trial)
	}
	if err := copyFile(met, filepath.Join(stage, id+MetExtension)); err != nil {
		return 0, errors.Wrapf(err, "cannot stage %v", met)
	}
	if err := copyFile(tgsd, filepath.Join(stage, id+SizeDistributionExtension)); err != nil {
		return 0, errors.Wrapf(err, "cannot stage %v", tgsd)
	}
	if err := r.template.RenderFile(filepath.Join(stage, id+InputExtension), vector); err != nil {
		return 0, err
	}

	if err := r.run(ctx, filepath.Join(WorkAreaName, stageName, id)); err != nil {
		return 0, err
	}
	height, err := ReadResult(filepath.Join(stage, id+ResultSuffix))
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(stage); err != nil {
		return 0, errors.Wrapf(err, "cannot remove stage of trial %d", trial)
	}
	r.log.Debugf("Trial %d of %v: column height %.1f m", trial, event, height)
	return height, nil
}

// run executes the simulator on the run name, relative to the installation directory.
func (r *Runner) run(ctx context.Context, name string) error {
	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if r.cfg.TrialTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.TrialTimeout)
	}
	defer cancel()

	out, err := r.shell.Command(runCtx, r.cfg.SimulatorDir, r.binary, name)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "simulator run %v interrupted", name)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return errors.Wrapf(ErrSimulatorTimeout, "run %v exceeded %v", name, r.cfg.TrialTimeout)
	}
	return errors.Mark(errors.Wrapf(err, "%v %v failed; output: %s", filepath.Base(r.binary), name, tail(out)), ErrSimulatorFailed)
}

func tail(out []byte) string {
	text := strings.TrimSpace(string(out))
	if len(text) > outputTailLength {
		text = "..." + text[len(text)-outputTailLength:]
	}
	return text
}

// Cleanup removes every artifact of the event from the work area, and everything
// but the prepared inputs from the staging area.
func (r *Runner) Cleanup(event eruption.Event) error {
	id := event.ID()
	prefix := id + "."
	err := RemoveByPrefix(r.WorkArea(), prefix)
	if serr := RemoveByPrefix(r.cfg.Layout.StagingDir(), prefix, id+MetExtension, id+SizeDistributionExtension); serr != nil {
		err = errors.CombineErrors(err, serr)
	}
	if err != nil {
		return errors.Wrapf(err, "cannot remove artifacts of %v", event)
	}
	return nil
}
