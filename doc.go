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

// Package ru5102 is a host-side driver for the CF-RU5102 UHF RFID reader.
//
// The reader speaks a length-prefixed, CRC-16/MCRF4XX checksummed binary
// protocol over a serial byte stream. This package implements the protocol
// layer: packet framing, command serialization for the supported operations
// (inventory, read, write, kill, reader information and the reader
// configuration commands), response parsing and the mapping of device status
// codes to typed errors.
//
// A Reader drives exactly one device over a Transport, one synchronous
// command/response exchange at a time:
//
//	transport, err := uart.New("/dev/ttyUSB0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	reader, err := ru5102.New(transport)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer reader.Close()
//
//	tags, err := reader.Inventory()
//
// Reader is not safe for concurrent use; wrap it with external mutual
// exclusion if multiple goroutines must share one device.
package ru5102
