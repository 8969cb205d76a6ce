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
	reflect "reflect"

	eruption "github.com/0xsoniclabs/tephra/eruption"
	gomock "go.uber.org/mock/gomock"
)

// MockParameterSampler is a mock of ParameterSampler interface.
type MockParameterSampler struct {
	ctrl     *gomock.Controller
	recorder *MockParameterSamplerMockRecorder
	isgomock struct{}
}

// MockParameterSamplerMockRecorder is the mock recorder for MockParameterSampler.
type MockParameterSamplerMockRecorder struct {
	mock *MockParameterSampler
}

// NewMockParameterSampler creates a new mock instance.
func NewMockParameterSampler(ctrl *gomock.Controller) *MockParameterSampler {
	mock := &MockParameterSampler{ctrl: ctrl}
	mock.recorder = &MockParameterSamplerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockParameterSampler) EXPECT() *MockParameterSamplerMockRecorder {
	return m.recorder
}

// Check mocks base method.
func (m *MockParameterSampler) Check(event eruption.Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Check", event)
	ret0, _ := ret[0].(error)
	return ret0
}

// Check indicates an expected call of Check.
func (mr *MockParameterSamplerMockRecorder) Check(event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Check", reflect.TypeOf((*MockParameterSampler)(nil).Check), event)
}

// Sample mocks base method.
func (m *MockParameterSampler) Sample(event eruption.Event) (Vector, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sample", event)
	ret0, _ := ret[0].(Vector)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Sample indicates an expected call of Sample.
func (mr *MockParameterSamplerMockRecorder) Sample(event any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sample", reflect.TypeOf((*MockParameterSampler)(nil).Sample), event)
}
