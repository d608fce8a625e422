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

// Package uart implements the ru5102.Transport byte channel over a serial
// port: 8 data bits, no parity, 1 stop bit, no flow control.
package uart

import (
	"fmt"
	"time"

	"github.com/miek/ru5102"
	"github.com/miek/ru5102/internal/syncutil"
	"go.bug.st/serial"
)

// DefaultBaudRate matches the CF-RU5102 factory configuration.
const DefaultBaudRate = 57600

// defaultTimeout bounds one ReadExact call.
const defaultTimeout = 1 * time.Second

// pollTimeout is the per-Read timeout on the port; ReadExact loops short
// reads against its own deadline.
const pollTimeout = 50 * time.Millisecond

// Transport implements the ru5102.Transport interface over a serial port.
type Transport struct {
	port     serial.Port
	portName string
	timeout  time.Duration
	mu       syncutil.Mutex
}

type config struct {
	baudRate int
	timeout  time.Duration
}

// Option configures the transport at open time.
type Option func(*config)

// WithBaudRate overrides the factory 57600 baud, for readers that have been
// reconfigured with the set-baud-rate command.
func WithBaudRate(baudRate int) Option {
	return func(c *config) {
		c.baudRate = baudRate
	}
}

// WithReadTimeout sets the initial read timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// New opens a serial port for the reader.
func New(portName string, opts ...Option) (*Transport, error) {
	cfg := &config{
		baudRate: DefaultBaudRate,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: cfg.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(pollTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	return &Transport{
		port:     port,
		portName: portName,
		timeout:  cfg.timeout,
	}, nil
}

// Write sends the whole packet, blocking until the OS buffer has drained so
// the device sees the complete command before the response read starts.
func (t *Transport) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return ru5102.ErrNotConnected
	}

	for off := 0; off < len(p); {
		n, err := t.port.Write(p[off:])
		if err != nil {
			return fmt.Errorf("serial write %s: %w", t.portName, err)
		}
		off += n
	}
	if err := t.port.Drain(); err != nil {
		return fmt.Errorf("serial drain %s: %w", t.portName, err)
	}
	return nil
}

// ReadExact fills p completely, accumulating partial reads, or fails with
// ru5102.ErrTimeout once the read timeout elapses without progress to
// completion.
func (t *Transport) ReadExact(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return ru5102.ErrNotConnected
	}

	deadline := time.Now().Add(t.timeout)
	for off := 0; off < len(p); {
		if time.Now().After(deadline) {
			return fmt.Errorf("serial read %s got %d of %d bytes: %w",
				t.portName, off, len(p), ru5102.ErrTimeout)
		}
		n, err := t.port.Read(p[off:])
		if err != nil {
			return fmt.Errorf("serial read %s: %w", t.portName, err)
		}
		off += n
	}
	return nil
}

// SetTimeout sets the overall timeout for one ReadExact call.
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	t.timeout = timeout
	t.mu.Unlock()
	return nil
}

// Close closes the serial port.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("serial close %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true if the port is open.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	connected := t.port != nil
	t.mu.Unlock()
	return connected
}

// Type returns the transport type.
func (*Transport) Type() ru5102.TransportType {
	return ru5102.TransportUART
}

// Ensure Transport implements ru5102.Transport.
var _ ru5102.Transport = (*Transport)(nil)
