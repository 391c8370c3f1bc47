// Copyright 2026 The SecKey Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seckey

import (
	"context"
	"sync"
)

// Transport is the channel to a device's management application. It is
// implemented outside this package, over smart-card or HID plumbing; this
// core only exchanges command/response byte buffers through it.
type Transport interface {
	// SendCommand sends a management command and waits for the response
	SendCommand(cmd byte, args []byte) ([]byte, error)

	// SendCommandWithContext sends a management command with context support
	SendCommandWithContext(ctx context.Context, cmd byte, args []byte) ([]byte, error)

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the interface a transport speaks over
type TransportType string

const (
	// TransportUSB represents a wired smart-card or HID transport.
	TransportUSB TransportType = "usb"
	// TransportNFC represents a contactless transport.
	TransportNFC TransportType = "nfc"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// MockTransport provides a mock implementation of Transport for testing.
// Responses are queued per command byte; each call pops the next queued
// response, and the last response sticks, so paged reads can be scripted.
type MockTransport struct {
	responses map[byte][][]byte
	callCount map[byte]int
	errorMap  map[byte]error
	mu        sync.Mutex
	connected bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		connected: true,
		responses: make(map[byte][][]byte),
		callCount: make(map[byte]int),
		errorMap:  make(map[byte]error),
	}
}

// SetResponse configures a single response for a command, replacing any queue
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = [][]byte{response}
}

// QueueResponses configures a sequence of responses for a command; the
// final response is repeated once the queue is exhausted
func (m *MockTransport) QueueResponses(cmd byte, responses ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = responses
}

// SetError configures a command to fail with the given error
func (m *MockTransport) SetError(cmd byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMap[cmd] = err
}

// CallCount returns how many times a command has been sent
func (m *MockTransport) CallCount(cmd byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount[cmd]
}

// Disconnect marks the transport as no longer connected
func (m *MockTransport) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
}

// SendCommand implements Transport interface
func (m *MockTransport) SendCommand(cmd byte, _ []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil, ErrTransportClosed
	}

	m.callCount[cmd]++

	if err, exists := m.errorMap[cmd]; exists {
		return nil, err
	}

	queue, exists := m.responses[cmd]
	if !exists || len(queue) == 0 {
		return nil, ErrCommandFailed
	}
	response := queue[0]
	if len(queue) > 1 {
		m.responses[cmd] = queue[1:]
	}
	return response, nil
}

// SendCommandWithContext implements Transport interface with context support
func (m *MockTransport) SendCommandWithContext(ctx context.Context, cmd byte, args []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return m.SendCommand(cmd, args)
}

// Close implements Transport interface
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// IsConnected implements Transport interface
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Type implements Transport interface
func (*MockTransport) Type() TransportType {
	return TransportMock
}
