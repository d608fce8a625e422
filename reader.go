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

	"github.com/miek/ru5102/internal/frame"
)

// Reader drives one CF-RU5102 device over a byte channel. Every public
// operation is a single synchronous command/response exchange that owns the
// channel for its duration; there is no multiplexing of in-flight commands.
//
// Thread safety: Reader is NOT thread-safe. All methods must be called from
// a single goroutine or protected with external synchronization.
type Reader struct {
	transport Transport
	address   byte
}

// Option configures a Reader.
type Option func(*Reader) error

// WithAddress sets the device address used in outgoing packets. The default
// 0 addresses the reader in its factory configuration; 0xFF broadcasts.
func WithAddress(address byte) Option {
	return func(r *Reader) error {
		r.address = address
		return nil
	}
}

// WithTimeout sets the transport read timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reader) error {
		if err := r.transport.SetTimeout(timeout); err != nil {
			return fmt.Errorf("failed to set timeout on transport: %w", err)
		}
		return nil
	}
}

// New creates a Reader over the given transport.
func New(transport Transport, opts ...Option) (*Reader, error) {
	r := &Reader{transport: transport}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Transport returns the underlying transport.
func (r *Reader) Transport() Transport {
	return r.transport
}

// Address returns the device address used in outgoing packets.
func (r *Reader) Address() byte {
	return r.address
}

// SetTimeout sets the transport read timeout.
func (r *Reader) SetTimeout(timeout time.Duration) error {
	if err := r.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout on transport: %w", err)
	}
	return nil
}

// Close closes the underlying transport.
func (r *Reader) Close() error {
	if r.transport != nil {
		if err := r.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

// exchange performs one command/response round trip: serialize, write the
// packet, read the announced length byte, read exactly that many more bytes,
// then CRC-validate and decode. Channel failures surface as TransportError;
// undecodable responses surface as Program-class errors.
func (r *Reader) exchange(op string, command byte, payload []byte) (*frame.Response, ResponseStatus, error) {
	pkt, err := frame.Build(r.address, command, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	debugf("%s TX %s", op, hexBytes(pkt))
	if err := r.transport.Write(pkt); err != nil {
		return nil, 0, &TransportError{Op: op + " write", Err: err}
	}

	var length [1]byte
	if err := r.transport.ReadExact(length[:]); err != nil {
		return nil, 0, &TransportError{Op: op + " read length", Err: err}
	}

	buf := make([]byte, int(length[0])+1)
	buf[0] = length[0]
	if err := r.transport.ReadExact(buf[1:]); err != nil {
		return nil, 0, &TransportError{Op: op + " read body", Err: err}
	}
	debugf("%s RX %s", op, hexBytes(buf))

	resp, err := frame.Parse(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	status, err := StatusFromByte(resp.Status)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return resp, status, nil
}

// command runs one exchange whose only interesting result is success.
func (r *Reader) command(op string, code byte, payload []byte) error {
	_, status, err := r.exchange(op, code, payload)
	if err != nil {
		return err
	}
	if !status.IsSuccess() {
		return newStatusError(op, status)
	}
	return nil
}

// ReaderInformation fetches the reader's firmware and RF configuration
// record.
func (r *Reader) ReaderInformation() (*ReaderInformation, error) {
	const op = "reader information"
	resp, status, err := r.exchange(op, cmdGetReaderInformation, nil)
	if err != nil {
		return nil, err
	}
	if !status.IsSuccess() {
		return nil, newStatusError(op, status)
	}
	info, err := parseReaderInformation(resp.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// Inventory enumerates the EPCs of all tags currently in the reader's RF
// field. No tags in range is a valid business outcome, not an error: the
// result is an empty slice.
func (r *Reader) Inventory() ([][]byte, error) {
	const op = "inventory"
	resp, status, err := r.exchange(op, cmdInventory, nil)
	if err != nil {
		return nil, err
	}
	if status == StatusNoTags {
		return [][]byte{}, nil
	}
	if !status.IsSuccess() {
		return nil, newStatusError(op, status)
	}

	tags, err := parseInventory(resp.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tags, nil
}

// parseInventory decodes the repeated [len, epc...] records that follow the
// tag count byte.
func parseInventory(payload []byte) ([][]byte, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("tag count: %w", ErrTruncatedPayload)
	}
	count := int(payload[0])
	tags := make([][]byte, 0, count)
	offset := 1

	for i := 0; i < count; i++ {
		if offset >= len(payload) {
			return nil, fmt.Errorf("tag %d of %d: %w", i+1, count, ErrTruncatedPayload)
		}
		epcLen := int(payload[offset])
		offset++
		if offset+epcLen > len(payload) {
			return nil, fmt.Errorf("tag %d of %d: %w", i+1, count, ErrTruncatedPayload)
		}
		epc := make([]byte, epcLen)
		copy(epc, payload[offset:offset+epcLen])
		tags = append(tags, epc)
		offset += epcLen
	}
	return tags, nil
}

// ReadData reads from one tag's memory and returns the raw payload bytes.
func (r *Reader) ReadData(cmd ReadCommand) ([]byte, error) {
	const op = "read data"
	payload, err := cmd.payload()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, status, err := r.exchange(op, cmdReadData, payload)
	if err != nil {
		return nil, err
	}
	if !status.IsSuccess() {
		return nil, newStatusError(op, status)
	}
	return resp.Payload, nil
}

// WriteData writes to one tag's memory.
func (r *Reader) WriteData(cmd WriteCommand) error {
	payload, err := cmd.payload()
	if err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return r.command("write data", cmdWriteData, payload)
}

// Kill permanently disables a tag. The tag is unusable afterwards.
func (r *Reader) Kill(cmd KillCommand) error {
	payload, err := cmd.payload()
	if err != nil {
		return fmt.Errorf("kill: %w", err)
	}
	return r.command("kill", cmdKillTag, payload)
}

// SetRegion sets the reader's frequency band edges.
func (r *Reader) SetRegion(maxFrequency, minFrequency byte) error {
	return r.command("set region", cmdSetRegion, []byte{maxFrequency, minFrequency})
}

// SetAddress reconfigures the device address. On success the Reader
// addresses all subsequent packets to the new value.
func (r *Reader) SetAddress(address byte) error {
	if err := r.command("set address", cmdSetAddress, []byte{address}); err != nil {
		return err
	}
	r.address = address
	return nil
}

// SetScanTime sets the inventory scan time in units of 100 ms.
func (r *Reader) SetScanTime(scanTime byte) error {
	return r.command("set scan time", cmdSetScanTime, []byte{scanTime})
}

// SetBaudRate reconfigures the device's serial baud rate. The host must
// reopen its own port at the new rate afterwards; that side is the
// transport owner's concern.
func (r *Reader) SetBaudRate(code byte) error {
	return r.command("set baud rate", cmdSetBaudRate, []byte{code})
}

// SetPower sets the RF output power level.
func (r *Reader) SetPower(power byte) error {
	return r.command("set power", cmdSetPower, []byte{power})
}

// AcoustoOpticControl drives the beeper and LED: active and silent interval
// in units of 50 ms, repeated times.
func (r *Reader) AcoustoOpticControl(activeTime, silentTime, times byte) error {
	return r.command("acousto-optic control", cmdAcoustoOpticControl,
		[]byte{activeTime, silentTime, times})
}
