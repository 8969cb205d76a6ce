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
	"time"

	"github.com/0xsoniclabs/tephra/eruption"
)

// State is the progress of an ensemble collection visible to extensions.
type State struct {
	Event  eruption.Event
	Trials int // requested ensemble size
	Trial  int // current trial, 1-based; 0 before the first trial
}

// Context carries the data produced while collecting an ensemble.
type Context struct {
	Vector  Vector        // vector of the current trial
	Height  float64       // result of the current trial, set after it succeeded
	Heights []float64     // results collected so far
	Elapsed time.Duration // duration of the current trial
	Output  string        // path of the published ensemble, set on success
}

// Extension is notified around every ensemble collection and every trial.
// An error returned by a hook aborts the collection.
//
//go:generate mockgen -source extension.go -destination extension_mock.go -package montecarlo
type Extension interface {
	PreRun(State, *Context) error
	PreTrial(State, *Context) error
	PostTrial(State, *Context) error
	// PostRun is called after the collection ended; err is the error the collection failed with.
	PostRun(State, *Context, error) error
}

// NilExtension is an extension doing nothing; embed it to implement only some hooks.
type NilExtension struct{}

func (NilExtension) PreRun(State, *Context) error          { return nil }
func (NilExtension) PreTrial(State, *Context) error        { return nil }
func (NilExtension) PostTrial(State, *Context) error       { return nil }
func (NilExtension) PostRun(State, *Context, error) error { return nil }
