// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainmock provides a mockgen-style mock of chain.BroadcastTransport,
// matching the teacher's own generated-mock layout (validators/validatorsmock,
// networking/sender/sendermock).
package chainmock

import (
	context "context"
	reflect "reflect"

	ids "github.com/luxfi/ids"
	gomock "go.uber.org/mock/gomock"

	shred "github.com/shubham4564/proofwithquantumannealing-sub001/shred"
)

// MockBroadcastTransport is a mock of the chain.BroadcastTransport interface.
type MockBroadcastTransport struct {
	ctrl     *gomock.Controller
	recorder *MockBroadcastTransportMockRecorder
}

// MockBroadcastTransportMockRecorder is the recorder for MockBroadcastTransport.
type MockBroadcastTransportMockRecorder struct {
	mock *MockBroadcastTransport
}

// NewMockBroadcastTransport builds a new mock controlled by ctrl.
func NewMockBroadcastTransport(ctrl *gomock.Controller) *MockBroadcastTransport {
	mock := &MockBroadcastTransport{ctrl: ctrl}
	mock.recorder = &MockBroadcastTransportMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBroadcastTransport) EXPECT() *MockBroadcastTransportMockRecorder {
	return m.recorder
}

// Send mocks chain.BroadcastTransport.Send.
func (m *MockBroadcastTransport) Send(ctx context.Context, target ids.NodeID, shreds []shred.Shred) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, target, shreds)
	ret0, _ := ret[0].(error)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockBroadcastTransportMockRecorder) Send(ctx, target, shreds interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockBroadcastTransport)(nil).Send), ctx, target, shreds)
}
