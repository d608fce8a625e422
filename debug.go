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
	"os"
	"strings"
)

// debugEnabled controls whether wire traffic is traced to stdout.
var debugEnabled = os.Getenv("RU5102_DEBUG") != ""

// SetDebugEnabled toggles debug tracing of wire traffic. The RU5102_DEBUG
// environment variable enables it at startup.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	fmt.Printf("DEBUG: "+format+"\n", args...)
}

// hexBytes formats wire bytes as space-separated hex, truncated past 32
// bytes to keep traces readable.
func hexBytes(data []byte) string {
	if len(data) == 0 {
		return "(empty)"
	}
	shown := data
	suffix := ""
	if len(data) > 32 {
		shown = data[:32]
		suffix = fmt.Sprintf(" ... (%d bytes total)", len(data))
	}
	parts := make([]string, len(shown))
	for i, b := range shown {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ") + suffix
}
