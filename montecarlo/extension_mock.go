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

	gomock "go.uber.org/mock/gomock"
)

// MockExtension is a mock of Extension interface.
type MockExtension struct {
	ctrl     *gomock.Controller
	recorder *MockExtensionMockRecorder
	isgomock struct{}
}

// MockExtensionMockRecorder is the mock recorder for MockExtension.
type MockExtensionMockRecorder struct {
	mock *MockExtension
}

// NewMockExtension creates a new mock instance.
func NewMockExtension(ctrl *gomock.Controller) *MockExtension {
	mock := &MockExtension{ctrl: ctrl}
	mock.recorder = &MockExtensionMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockExtension) EXPECT() *MockExtensionMockRecorder {
	return m.recorder
}

// PostRun mocks base method.
func (m *MockExtension) PostRun(arg0 State, arg1 *Context, arg2 error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PostRun", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// PostRun indicates an expected call of PostRun.
func (mr *MockExtensionMockRecorder) PostRun(arg0 any, arg1 any, arg2 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PostRun", reflect.TypeOf((*MockExtension)(nil).PostRun), arg0, arg1, arg2)
}

// PostTrial mocks base method.
func (m *MockExtension) PostTrial(arg0 State, arg1 *Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PostTrial", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// PostTrial indicates an expected call of PostTrial.
func (mr *MockExtensionMockRecorder) PostTrial(arg0 any, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PostTrial", reflect.TypeOf((*MockExtension)(nil).PostTrial), arg0, arg1)
}

// PreRun mocks base method.
func (m *MockExtension) PreRun(arg0 State, arg1 *Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PreRun", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// PreRun indicates an expected call of PreRun.
func (mr *MockExtensionMockRecorder) PreRun(arg0 any, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PreRun", reflect.TypeOf((*MockExtension)(nil).PreRun), arg0, arg1)
}

// PreTrial mocks base method.
func (m *MockExtension) PreTrial(arg0 State, arg1 *Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PreTrial", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// PreTrial indicates an expected call of PreTrial.
func (mr *MockExtensionMockRecorder) PreTrial(arg0 any, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PreTrial", reflect.TypeOf((*MockExtension)(nil).PreTrial), arg0, arg1)
}
