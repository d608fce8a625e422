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

// Command reader polls a CF-RU5102 for tags and prints each EPC it sees.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miek/ru5102"
	"github.com/miek/ru5102/transport/uart"
	"go.bug.st/serial"
)

var (
	flagDevice  string
	flagBaud    int
	flagAddress uint
	flagInfo    bool
	flagReadTID bool
	flagDebug   bool
)

func init() {
	flag.StringVar(&flagDevice, "device", "", "Serial device path (lists candidates if empty)")
	flag.IntVar(&flagBaud, "baud", uart.DefaultBaudRate, "Serial baud rate")
	flag.UintVar(&flagAddress, "address", 0, "Reader address (0-255, 0xFF broadcasts)")
	flag.BoolVar(&flagInfo, "info", false, "Print reader information before polling")
	flag.BoolVar(&flagReadTID, "read-tid", false, "Read the TID bank of each tag found")
	flag.BoolVar(&flagDebug, "debug", false, "Trace wire traffic")
}

func main() {
	flag.Parse()

	if flagDebug {
		ru5102.SetDebugEnabled(true)
	}

	if flagDevice == "" {
		listPorts()
		os.Exit(1)
	}
	if flagAddress > 0xFF {
		fmt.Fprintln(os.Stderr, "address must fit in one byte")
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// listPorts prints candidate serial devices when no -device was given.
func listPorts() {
	fmt.Fprintln(os.Stderr, "no -device given; available serial ports:")
	ports, err := serial.GetPortsList()
	if err != nil || len(ports) == 0 {
		fmt.Fprintln(os.Stderr, "  (none found)")
		return
	}
	for _, port := range ports {
		fmt.Fprintf(os.Stderr, "  %s\n", port)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport, err := uart.New(flagDevice, uart.WithBaudRate(flagBaud))
	if err != nil {
		return err
	}

	reader, err := ru5102.New(transport, ru5102.WithAddress(byte(flagAddress)))
	if err != nil {
		_ = transport.Close()
		return err
	}
	defer func() { _ = reader.Close() }()

	if flagInfo {
		info, err := reader.ReaderInformation()
		if err != nil {
			return fmt.Errorf("reader information: %w", err)
		}
		fmt.Printf("Reader: %s\n", info)
	}

	for ctx.Err() == nil {
		tags, err := reader.Inventory()
		if err != nil {
			if ru5102.IsRetryable(err) {
				continue
			}
			return fmt.Errorf("inventory: %w", err)
		}

		for _, epc := range tags {
			fmt.Printf("Found tag: %s\n", hex.EncodeToString(epc))
			if flagReadTID {
				printTID(reader, epc)
			}
		}

		select {
		case <-ctx.Done():
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}

func printTID(reader *ru5102.Reader, epc []byte) {
	data, err := reader.ReadData(ru5102.ReadCommand{
		EPC:          epc,
		Location:     ru5102.LocationTID,
		StartAddress: 0,
		Count:        4,
	})
	if err != nil {
		fmt.Printf("  TID read failed: %v\n", err)
		return
	}
	fmt.Printf("  TID: %s\n", hex.EncodeToString(data))
}
