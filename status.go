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

// ResponseStatus is the status byte carried by every reply packet. The set
// of values is closed and must track the documented firmware codes; an
// unlisted byte is a decode error, never coerced to a known value.
type ResponseStatus byte

// Status codes from the CF-RU5102 firmware documentation.
const (
	StatusOK                            ResponseStatus = 0x00
	StatusReturnBeforeInventoryFinished ResponseStatus = 0x01
	StatusScanTimeOverflow              ResponseStatus = 0x02
	StatusMoreData                      ResponseStatus = 0x03
	StatusReaderFlashFull               ResponseStatus = 0x04
	StatusAccessPasswordError           ResponseStatus = 0x05
	StatusKillTagError                  ResponseStatus = 0x09
	StatusKillPasswordZero              ResponseStatus = 0x0A
	StatusCommandNotSupported           ResponseStatus = 0x0B
	StatusSaveFail                      ResponseStatus = 0x13
	StatusCannotAdjust                  ResponseStatus = 0x14
	StatusCommandExecuteError           ResponseStatus = 0xF9
	StatusPoorCommunication             ResponseStatus = 0xFA
	StatusNoTags                        ResponseStatus = 0xFB
	StatusTagError                      ResponseStatus = 0xFC
	StatusWrongLength                   ResponseStatus = 0xFD
	StatusIllegalCommand                ResponseStatus = 0xFE
	StatusParameterError                ResponseStatus = 0xFF
)

// statusNames doubles as the closed set of recognized codes and the
// human-readable cause for each.
var statusNames = map[ResponseStatus]string{
	StatusOK:                            "OK",
	StatusReturnBeforeInventoryFinished: "returned before inventory finished",
	StatusScanTimeOverflow:              "scan time overflow",
	StatusMoreData:                      "more data pending",
	StatusReaderFlashFull:               "reader flash full",
	StatusAccessPasswordError:           "access password error",
	StatusKillTagError:                  "kill tag error",
	StatusKillPasswordZero:              "kill password is zero",
	StatusCommandNotSupported:           "command not supported",
	StatusSaveFail:                      "save failed",
	StatusCannotAdjust:                  "cannot adjust",
	StatusCommandExecuteError:           "command execute error",
	StatusPoorCommunication:             "poor communication with tag",
	StatusNoTags:                        "no tags in range",
	StatusTagError:                      "tag error",
	StatusWrongLength:                   "wrong command length",
	StatusIllegalCommand:                "illegal command",
	StatusParameterError:                "parameter error",
}

// StatusFromByte maps a raw status byte to its ResponseStatus. Bytes outside
// the documented set fail with ErrUnknownStatus.
func StatusFromByte(b byte) (ResponseStatus, error) {
	s := ResponseStatus(b)
	if _, ok := statusNames[s]; !ok {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownStatus, b)
	}
	return s, nil
}

func (s ResponseStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown status 0x%02X", byte(s))
}

// Outcome classifies a status code for error handling.
type Outcome int

const (
	// OutcomeSuccess means the operation completed, possibly partially,
	// and the response payload is meaningful.
	OutcomeSuccess Outcome = iota
	// OutcomeCommunication is a transient device-side condition; the caller
	// may retry the same request.
	OutcomeCommunication
	// OutcomeProtocol means the tag rejected the operation; the request or
	// target tag must change before retrying.
	OutcomeProtocol
	// OutcomeProgram means the request itself was malformed; retrying it
	// unchanged cannot succeed.
	OutcomeProgram
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCommunication:
		return "communication"
	case OutcomeProtocol:
		return "protocol"
	case OutcomeProgram:
		return "program"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Outcome returns the classification of s. This is the single source of
// truth for status handling; callers must not re-map individual codes.
func (s ResponseStatus) Outcome() Outcome {
	switch s {
	case StatusOK, StatusReturnBeforeInventoryFinished, StatusScanTimeOverflow, StatusMoreData:
		return OutcomeSuccess
	case StatusPoorCommunication, StatusNoTags:
		return OutcomeCommunication
	case StatusAccessPasswordError, StatusKillTagError, StatusKillPasswordZero, StatusCommandNotSupported:
		return OutcomeProtocol
	default:
		// WrongLength, IllegalCommand, ParameterError and every remaining
		// code indicate a request the firmware could not act on.
		return OutcomeProgram
	}
}

// IsSuccess reports whether the response payload is valid for use.
func (s ResponseStatus) IsSuccess() bool {
	return s.Outcome() == OutcomeSuccess
}
