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

// Package montecarlo is a generated GoMock package.
package montecarlo

import (
	context "context"
	reflect "reflect"

	eruption "github.com/0xsoniclabs/tephra/eruption"
	gomock "go.uber.org/mock/gomock"
)

// MockTrialRunner is a mock of TrialRunner interface.
type MockTrialRunner struct {
	ctrl     *gomock.Controller
	recorder *MockTrialRunnerMockRecorder
	isgomock struct{}
}

// MockTrialRunnerMockRecorder is the mock recorder for MockTrialRunner.
type MockTrialRunnerMockRecorder struct {
	mock *MockTrialRunner
}

// NewMockTrialRunner creates a new mock instance.
func NewMockTrialRunner(ctrl *gomock.Controller) *MockTrialRunner {
	mock := &MockTrialRunner{ctrl: ctrl}
	mock.recorder = &MockTrialRunnerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTrialRunner) EXPECT() *MockTrialRunnerMockRecorder {
	return m.recorder
}

// Cleanup mocks base method.
func (m *MockTrialRunner) Cleanup(event eruption.Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cleanup", event)
	ret0, _ := ret[0].(error)
	return ret0
}

// Cleanup indicates an expected call of Cleanup.
func (mr *MockTrialRunnerMockRecorder) Cleanup(event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cleanup", reflect.TypeOf((*MockTrialRunner)(nil).Cleanup), event)
}

// RunTrial mocks base method.
func (m *MockTrialRunner) RunTrial(ctx context.Context, event eruption.Event, vector Vector, trial int) (float64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RunTrial", ctx, event, vector, trial)
	ret0, _ := ret[0].(float64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RunTrial indicates an expected call of RunTrial.
func (mr *MockTrialRunnerMockRecorder) RunTrial(ctx any, event any, vector any, trial any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RunTrial", reflect.TypeOf((*MockTrialRunner)(nil).RunTrial), ctx, event, vector, trial)
}
