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

// Package report is a generated GoMock package.
package report

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockResultDB is a mock of ResultDB interface.
type MockResultDB struct {
	ctrl     *gomock.Controller
	recorder *MockResultDBMockRecorder
	isgomock struct{}
}

// MockResultDBMockRecorder is the mock recorder for MockResultDB.
type MockResultDBMockRecorder struct {
	mock *MockResultDB
}

// NewMockResultDB creates a new mock instance.
func NewMockResultDB(ctrl *gomock.Controller) *MockResultDB {
	mock := &MockResultDB{ctrl: ctrl}
	mock.recorder = &MockResultDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResultDB) EXPECT() *MockResultDBMockRecorder {
	return m.recorder
}

// Add mocks base method.
func (m *MockResultDB) Add(entry Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Add", entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// Add indicates an expected call of Add.
func (mr *MockResultDBMockRecorder) Add(entry any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Add", reflect.TypeOf((*MockResultDB)(nil).Add), entry)
}

// Close mocks base method.
func (m *MockResultDB) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockResultDBMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockResultDB)(nil).Close))
}

// Flush mocks base method.
func (m *MockResultDB) Flush() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Flush")
	ret0, _ := ret[0].(error)
	return ret0
}

// Flush indicates an expected call of Flush.
func (mr *MockResultDBMockRecorder) Flush() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockResultDB)(nil).Flush))
}

// Records mocks base method.
func (m *MockResultDB) Records() ([]Record, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Records")
	ret0, _ := ret[0].([]Record)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Records indicates an expected call of Records.
func (mr *MockResultDBMockRecorder) Records() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Records", reflect.TypeOf((*MockResultDB)(nil).Records))
}
