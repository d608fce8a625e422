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

// EPC C1 G2 (ISO 18000-6C) tag command codes
const (
	cmdInventory             = 0x01
	cmdReadData              = 0x02
	cmdWriteData             = 0x03
	cmdWriteEPC              = 0x04
	cmdKillTag               = 0x05
	cmdLock                  = 0x06
	cmdBlockErase            = 0x07
	cmdReadProtect           = 0x08
	cmdReadProtectWithoutEPC = 0x09
	cmdResetReadProtect      = 0x0A
	cmdCheckReadProtect      = 0x0B
	cmdEASAlarm              = 0x0C
	cmdCheckEASAlarm         = 0x0D
	cmdBlockLock             = 0x0E
	cmdInventorySingle       = 0x0F
	cmdBlockWrite            = 0x10
)

// ISO 18000-6B tag command codes
const (
	cmdInventorySignal6B   = 0x50
	cmdInventoryMultiple6B = 0x51
	cmdReadData6B          = 0x52
	cmdWriteData6B         = 0x53
	cmdCheckLock6B         = 0x54
	cmdLock6B              = 0x55
)

// Reader configuration command codes
const (
	cmdGetReaderInformation = 0x21
	cmdSetRegion            = 0x22
	cmdSetAddress           = 0x24
	cmdSetScanTime          = 0x25
	cmdSetBaudRate          = 0x28
	cmdSetPower             = 0x2F
	cmdAcoustoOpticControl  = 0x33
)
