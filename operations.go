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

import "fmt"

// MemoryLocation selects one of the tag's addressable memory banks.
type MemoryLocation byte

// Tag memory banks per EPC Gen2.
const (
	LocationPassword MemoryLocation = 0x00
	LocationEPC      MemoryLocation = 0x01
	LocationTID      MemoryLocation = 0x02
	LocationUser     MemoryLocation = 0x03
)

func (l MemoryLocation) String() string {
	switch l {
	case LocationPassword:
		return "password"
	case LocationEPC:
		return "EPC"
	case LocationTID:
		return "TID"
	case LocationUser:
		return "user"
	default:
		return fmt.Sprintf("location(0x%02X)", byte(l))
	}
}

// ReadCommand describes one read of a tag's memory.
//
// EPC identifies the target tag and must be a whole number of 2-byte words.
// Password is the 4-byte access password; nil serializes as four zero bytes.
// MaskAddress and MaskLength optionally restrict which tags respond; the
// wire encoding is positional, so they must be supplied together or not at
// all. StartAddress and Count are in words.
type ReadCommand struct {
	MaskAddress  *byte
	MaskLength   *byte
	EPC          []byte
	Password     []byte
	Location     MemoryLocation
	StartAddress byte
	Count        byte
}

func (c *ReadCommand) payload() ([]byte, error) {
	epcWords, err := epcWordCount(c.EPC)
	if err != nil {
		return nil, err
	}
	password, err := passwordBytes(c.Password)
	if err != nil {
		return nil, err
	}
	mask, err := maskBytes(c.MaskAddress, c.MaskLength)
	if err != nil {
		return nil, err
	}

	pkt := make([]byte, 0, len(c.EPC)+10)
	pkt = append(pkt, epcWords)
	pkt = append(pkt, c.EPC...)
	pkt = append(pkt, byte(c.Location), c.StartAddress, c.Count)
	pkt = append(pkt, password...)
	pkt = append(pkt, mask...)
	return pkt, nil
}

// WriteCommand describes one write to a tag's memory. Data must be a whole
// number of 2-byte words; the remaining fields follow ReadCommand.
type WriteCommand struct {
	MaskAddress  *byte
	MaskLength   *byte
	EPC          []byte
	Data         []byte
	Password     []byte
	Location     MemoryLocation
	StartAddress byte
}

func (c *WriteCommand) payload() ([]byte, error) {
	if len(c.Data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddData, len(c.Data))
	}
	epcWords, err := epcWordCount(c.EPC)
	if err != nil {
		return nil, err
	}
	password, err := passwordBytes(c.Password)
	if err != nil {
		return nil, err
	}
	mask, err := maskBytes(c.MaskAddress, c.MaskLength)
	if err != nil {
		return nil, err
	}

	pkt := make([]byte, 0, len(c.EPC)+len(c.Data)+10)
	pkt = append(pkt, byte(len(c.Data)/2), epcWords)
	pkt = append(pkt, c.EPC...)
	pkt = append(pkt, byte(c.Location), c.StartAddress)
	pkt = append(pkt, c.Data...)
	pkt = append(pkt, password...)
	pkt = append(pkt, mask...)
	return pkt, nil
}

// KillCommand permanently disables a tag. The device requires a non-zero
// kill password and reports StatusKillPasswordZero otherwise; the driver
// passes the password through as given (nil serializes as zeros) and lets
// the firmware enforce that rule.
type KillCommand struct {
	MaskAddress *byte
	MaskLength  *byte
	EPC         []byte
	Password    []byte
}

func (c *KillCommand) payload() ([]byte, error) {
	epcWords, err := epcWordCount(c.EPC)
	if err != nil {
		return nil, err
	}
	password, err := passwordBytes(c.Password)
	if err != nil {
		return nil, err
	}
	mask, err := maskBytes(c.MaskAddress, c.MaskLength)
	if err != nil {
		return nil, err
	}

	pkt := make([]byte, 0, len(c.EPC)+7)
	pkt = append(pkt, epcWords)
	pkt = append(pkt, c.EPC...)
	pkt = append(pkt, password...)
	pkt = append(pkt, mask...)
	return pkt, nil
}

// epcWordCount validates the word-addressed EPC and returns its length in
// 2-byte words.
func epcWordCount(epc []byte) (byte, error) {
	if len(epc)%2 != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrOddEPC, len(epc))
	}
	return byte(len(epc) / 2), nil
}

// passwordBytes returns the 4-byte access password, zero-filled when absent.
func passwordBytes(password []byte) ([]byte, error) {
	switch len(password) {
	case 0:
		return []byte{0, 0, 0, 0}, nil
	case 4:
		return password, nil
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadPasswordLength, len(password))
	}
}

// maskBytes encodes the optional mask pair. The device infers the presence
// of these trailing fields purely from payload length, so emitting only one
// of the pair would produce a packet the firmware misparses; a partial mask
// is rejected here instead.
func maskBytes(address, length *byte) ([]byte, error) {
	switch {
	case address == nil && length == nil:
		return nil, nil
	case address != nil && length != nil:
		return []byte{*address, *length}, nil
	default:
		return nil, ErrPartialMask
	}
}
