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

// Package frame implements the RU5102 wire packet format: a single-byte
// length prefix, a fixed header, an operation-specific payload and a
// little-endian CRC-16/MCRF4XX trailer.
//
// Command packet:  [len, address, command, payload..., crc_lo, crc_hi]
// Response packet: [len, address, command, status, payload..., crc_lo, crc_hi]
//
// The length byte counts every byte that follows it, CRC included. The CRC
// covers every byte before it, length byte included.
package frame

import (
	"errors"
	"fmt"
)

// MaxPayload is the largest command payload that still fits the single-byte
// length field (length = payload + address + command + 2 CRC bytes).
const MaxPayload = 251

// MaxResponsePayload is MaxPayload less the status byte responses carry.
const MaxResponsePayload = 250

// minResponse is the smallest valid response buffer: length, address,
// command echo, status and two CRC bytes.
const minResponse = 6

var (
	// ErrPayloadTooLarge means the payload would overflow the length byte.
	ErrPayloadTooLarge = errors.New("payload too large for length field")
	// ErrTruncated means the buffer is shorter than a minimal frame.
	ErrTruncated = errors.New("response frame truncated")
	// ErrLengthMismatch means the length byte disagrees with the buffer size.
	ErrLengthMismatch = errors.New("length byte does not match frame size")
	// ErrBadCRC means the CRC trailer does not match the frame contents.
	ErrBadCRC = errors.New("bad CRC")
)

// Build serializes one command packet for the given reader address,
// command code and payload.
func Build(address, command byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	pkt := make([]byte, 0, len(payload)+6)
	pkt = append(pkt, byte(len(payload)+4), address, command)
	pkt = append(pkt, payload...)

	crc := Checksum(pkt)
	pkt = append(pkt, byte(crc), byte(crc>>8))
	return pkt, nil
}

// Response is a parsed reply packet. Status is the raw status byte; mapping
// it to a known code is the caller's concern.
type Response struct {
	Payload []byte
	Address byte
	Command byte
	Status  byte
}

// Parse validates and decodes a complete reply buffer, length byte included.
// No field is exposed unless both the declared length and the CRC check out.
func Parse(buf []byte) (*Response, error) {
	if len(buf) < minResponse {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(buf))
	}
	if int(buf[0]) != len(buf)-1 {
		return nil, fmt.Errorf("%w: length byte %d, %d bytes follow",
			ErrLengthMismatch, buf[0], len(buf)-1)
	}

	want := Checksum(buf[:len(buf)-2])
	got := uint16(buf[len(buf)-2]) | uint16(buf[len(buf)-1])<<8
	if want != got {
		return nil, fmt.Errorf("%w: computed %04X, trailer %04X", ErrBadCRC, want, got)
	}

	payload := make([]byte, len(buf)-minResponse)
	copy(payload, buf[4:len(buf)-2])
	return &Response{
		Address: buf[1],
		Command: buf[2],
		Status:  buf[3],
		Payload: payload,
	}, nil
}

// BuildResponse serializes the device side of the protocol. The driver never
// sends these; they exist for tests and mock transports.
func BuildResponse(address, command, status byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxResponsePayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	pkt := make([]byte, 0, len(payload)+7)
	pkt = append(pkt, byte(len(payload)+5), address, command, status)
	pkt = append(pkt, payload...)

	crc := Checksum(pkt)
	pkt = append(pkt, byte(crc), byte(crc>>8))
	return pkt, nil
}
