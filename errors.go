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
	"errors"
	"fmt"

	"github.com/miek/ru5102/internal/frame"
)

// Errors fall into four classes. Io errors come from the byte channel and
// are fatal for the exchange. Communication errors are transient device-side
// conditions the caller may retry. Protocol errors mean the tag rejected the
// operation. Program errors mean the request or response itself was
// malformed, so retrying the identical request cannot help. Nothing is
// logged or retried internally; every failure is returned to the caller.
var (
	// Builder errors - Program class, caught before any bytes are written.
	ErrOddEPC            = errors.New("EPC must be a whole number of 2-byte words")
	ErrOddData           = errors.New("write data must be a whole number of 2-byte words")
	ErrBadPasswordLength = errors.New("access password must be exactly 4 bytes")
	ErrPartialMask       = errors.New("mask address and mask length must be supplied together")

	// Decode errors - Program class, the response could not be trusted.
	ErrUnknownStatus    = errors.New("unrecognized status code")
	ErrMalformedInfo    = errors.New("reader information payload is not 8 bytes")
	ErrTruncatedPayload = errors.New("payload shorter than its declared contents")

	// Channel errors - Io class.
	ErrTimeout      = errors.New("read timeout")
	ErrNotConnected = errors.New("transport not connected")
)

// StatusError reports a non-success status byte returned by the reader.
type StatusError struct {
	Op     string
	Status ResponseStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s error: %s (0x%02X)",
		e.Op, e.Status.Outcome(), e.Status, byte(e.Status))
}

// Outcome returns the classification of the underlying status code.
func (e *StatusError) Outcome() Outcome {
	return e.Status.Outcome()
}

func newStatusError(op string, status ResponseStatus) *StatusError {
	return &StatusError{Op: op, Status: status}
}

// TransportError wraps a byte-channel failure with the operation that hit it.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsIoError reports whether err is a channel-level failure (Io class).
func IsIoError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsCommunicationError reports whether err is a transient device-side
// condition (Communication class).
func IsCommunicationError(err error) bool {
	return statusOutcome(err) == OutcomeCommunication
}

// IsProtocolError reports whether the tag rejected the operation
// (Protocol class).
func IsProtocolError(err error) bool {
	return statusOutcome(err) == OutcomeProtocol
}

// IsProgramError reports whether err indicates a malformed request or an
// untrustworthy response (Program class).
func IsProgramError(err error) bool {
	if statusOutcome(err) == OutcomeProgram {
		return true
	}
	switch {
	case errors.Is(err, ErrOddEPC),
		errors.Is(err, ErrOddData),
		errors.Is(err, ErrBadPasswordLength),
		errors.Is(err, ErrPartialMask),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrMalformedInfo),
		errors.Is(err, ErrTruncatedPayload),
		errors.Is(err, frame.ErrBadCRC),
		errors.Is(err, frame.ErrTruncated),
		errors.Is(err, frame.ErrLengthMismatch),
		errors.Is(err, frame.ErrPayloadTooLarge):
		return true
	default:
		return false
	}
}

// IsBadCRC reports whether a response failed its CRC integrity check.
func IsBadCRC(err error) bool {
	return errors.Is(err, frame.ErrBadCRC)
}

// IsRetryable reports whether repeating the identical request could
// plausibly succeed. Only transient conditions qualify: communication-class
// statuses and read timeouts. The driver itself never retries.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return IsCommunicationError(err) || errors.Is(err, ErrTimeout)
}

// statusOutcome extracts the outcome class from a StatusError, or -1 when
// err carries no device status.
func statusOutcome(err error) Outcome {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Outcome()
	}
	return Outcome(-1)
}
