// Copyright 2026 The ru5102 Authors.
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

package ru5102

import (
	"fmt"
	"time"

	"github.com/miek/ru5102/internal/syncutil"
)

// Transport is the duplex byte channel a Reader drives. The serial backend
// in transport/uart implements it; tests use MockTransport.
type Transport interface {
	// Write sends the whole packet to the device.
	Write(p []byte) error

	// ReadExact blocks until p is filled completely or the read timeout
	// elapses. Enforcing the timeout is the transport's responsibility.
	ReadExact(p []byte) error

	// SetTimeout sets the read timeout for subsequent ReadExact calls.
	SetTimeout(timeout time.Duration) error

	// Close closes the transport connection.
	Close() error

	// IsConnected returns true if the transport is connected.
	IsConnected() bool

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport.
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing.
	TransportMock TransportType = "mock"
)

// MockTransport provides a scripted Transport for testing. A response is
// keyed by the command byte of the packet most recently written; ReadExact
// then serves that response's bytes in order, so the length-prefixed
// two-phase read the Reader performs works against it unchanged.
type MockTransport struct {
	responses map[byte][]byte
	errorMap  map[byte]error
	callCount map[byte]int
	written   [][]byte
	pending   []byte
	timeout   time.Duration
	mu        syncutil.Mutex
	connected bool
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		connected: true,
		timeout:   time.Second,
		responses: make(map[byte][]byte),
		errorMap:  make(map[byte]error),
		callCount: make(map[byte]int),
	}
}

// Write implements Transport. It records the packet, tracks the command
// byte and stages the configured response for subsequent ReadExact calls.
func (m *MockTransport) Write(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}

	pkt := make([]byte, len(p))
	copy(pkt, p)
	m.written = append(m.written, pkt)

	if len(p) < 3 {
		return nil
	}
	cmd := p[2]
	m.callCount[cmd]++

	if err, ok := m.errorMap[cmd]; ok {
		m.pending = nil
		return err
	}
	if resp, ok := m.responses[cmd]; ok {
		m.pending = append([]byte(nil), resp...)
	} else {
		m.pending = nil
	}
	return nil
}

// ReadExact implements Transport. Running out of staged bytes behaves like
// a device that stopped talking: a timeout error.
func (m *MockTransport) ReadExact(p []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}
	if len(m.pending) < len(p) {
		return fmt.Errorf("mock transport has %d of %d bytes: %w",
			len(m.pending), len(p), ErrTimeout)
	}
	copy(p, m.pending[:len(p)])
	m.pending = m.pending[len(p):]
	return nil
}

// SetTimeout implements Transport.
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	m.timeout = timeout
	m.mu.Unlock()
	return nil
}

// Close implements Transport.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	return nil
}

// IsConnected implements Transport.
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	connected := m.connected
	m.mu.Unlock()
	return connected
}

// Type implements Transport.
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Test helper methods

// SetResponse configures the raw reply bytes served after a packet with the
// given command byte is written. The bytes are served verbatim, so tests can
// stage corrupted frames as easily as valid ones.
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.mu.Lock()
	m.responses[cmd] = response
	m.mu.Unlock()
}

// SetError configures an error to be returned when the given command is
// written.
func (m *MockTransport) SetError(cmd byte, err error) {
	m.mu.Lock()
	m.errorMap[cmd] = err
	m.mu.Unlock()
}

// ClearError removes error injection for a command.
func (m *MockTransport) ClearError(cmd byte) {
	m.mu.Lock()
	delete(m.errorMap, cmd)
	m.mu.Unlock()
}

// Written returns copies of every packet written so far, oldest first.
func (m *MockTransport) Written() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.written))
	for i, pkt := range m.written {
		out[i] = append([]byte(nil), pkt...)
	}
	return out
}

// LastWritten returns the most recently written packet, or nil.
func (m *MockTransport) LastWritten() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.written) == 0 {
		return nil
	}
	return append([]byte(nil), m.written[len(m.written)-1]...)
}

// GetCallCount returns how many times a command was written.
func (m *MockTransport) GetCallCount(cmd byte) int {
	m.mu.Lock()
	count := m.callCount[cmd]
	m.mu.Unlock()
	return count
}

// Reset clears recorded packets and call counts and reconnects.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	m.callCount = make(map[byte]int)
	m.written = nil
	m.pending = nil
	m.connected = true
	m.mu.Unlock()
}

// Ensure MockTransport implements Transport.
var _ Transport = (*MockTransport)(nil)
