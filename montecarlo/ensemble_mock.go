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

// MockEnsembleStore is a mock of EnsembleStore interface.
type MockEnsembleStore struct {
	ctrl     *gomock.Controller
	recorder *MockEnsembleStoreMockRecorder
	isgomock struct{}
}

// MockEnsembleStoreMockRecorder is the mock recorder for MockEnsembleStore.
type MockEnsembleStoreMockRecorder struct {
	mock *MockEnsembleStore
}

// NewMockEnsembleStore creates a new mock instance.
func NewMockEnsembleStore(ctrl *gomock.Controller) *MockEnsembleStore {
	mock := &MockEnsembleStore{ctrl: ctrl}
	mock.recorder = &MockEnsembleStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEnsembleStore) EXPECT() *MockEnsembleStoreMockRecorder {
	return m.recorder
}

// Save mocks base method.
func (m *MockEnsembleStore) Save(ensemble Ensemble) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ensemble)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Save indicates an expected call of Save.
func (mr *MockEnsembleStoreMockRecorder) Save(ensemble any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockEnsembleStore)(nil).Save), ensemble)
}
