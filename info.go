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

// readerInfoLen is the exact payload size of a GetReaderInformation reply.
const readerInfoLen = 8

// Protocol support bits in ReaderInformation.SupportedProtocols.
const (
	ProtocolISO18000_6B byte = 0x01
	ProtocolEPCC1G2     byte = 0x02
)

// ReaderInformation is the fixed 8-byte record returned by the reader:
// firmware version, hardware type, supported protocol bitmask, frequency
// band edges, RF power and inventory scan time.
type ReaderInformation struct {
	Version            [2]byte
	ReaderType         byte
	SupportedProtocols byte
	MaxFrequency       byte
	MinFrequency       byte
	Power              byte
	ScanTime           byte
}

func parseReaderInformation(payload []byte) (*ReaderInformation, error) {
	if len(payload) != readerInfoLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMalformedInfo, len(payload))
	}
	return &ReaderInformation{
		Version:            [2]byte{payload[0], payload[1]},
		ReaderType:         payload[2],
		SupportedProtocols: payload[3],
		MaxFrequency:       payload[4],
		MinFrequency:       payload[5],
		Power:              payload[6],
		ScanTime:           payload[7],
	}, nil
}

func (i *ReaderInformation) String() string {
	return fmt.Sprintf("firmware %d.%d type 0x%02X protocols 0x%02X freq %d-%d power %d scan time %d",
		i.Version[0], i.Version[1], i.ReaderType, i.SupportedProtocols,
		i.MinFrequency, i.MaxFrequency, i.Power, i.ScanTime)
}
