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

package utils

import (
	"context"
	"os/exec"
	"time"
)

const waitDelay = time.Second

// ShellExecutor runs external programs to completion.
//
//go:generate mockgen -source shell.go -destination shell_mock.go -package utils
type ShellExecutor interface {
	// Command runs name with dir as working directory and returns its combined output.
	// The process is killed when ctx is done.
	Command(ctx context.Context, dir string, name string, arg ...string) ([]byte, error)
}

type shell struct{}

func (s shell) Command(ctx context.Context, dir string, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Dir = dir
	// children inheriting the output pipe must not outlive a killed process
	cmd.WaitDelay = waitDelay
	return cmd.CombinedOutput()
}

func NewShell() ShellExecutor {
	return shell{}
}
