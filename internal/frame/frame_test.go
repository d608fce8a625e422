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

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
		want    []byte
		address byte
		command byte
	}{
		{
			name:    "inventory broadcast",
			address: 10,
			command: 0x01,
			payload: nil,
			want:    []byte{4, 10, 0x01, 171, 182},
		},
		{
			name:    "empty payload equals nil payload",
			address: 10,
			command: 0x01,
			payload: []byte{},
			want:    []byte{4, 10, 0x01, 171, 182},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Build(tt.address, tt.command, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildLengthInvariant(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 17)
	pkt, err := Build(0x02, 0x02, payload)
	require.NoError(t, err)

	// The length byte counts everything after itself.
	assert.Equal(t, byte(len(payload)+4), pkt[0])
	assert.Len(t, pkt, int(pkt[0])+1)
}

func TestBuildPayloadTooLarge(t *testing.T) {
	t.Parallel()

	_, err := Build(0, 0x02, make([]byte, MaxPayload))
	require.NoError(t, err)

	_, err = Build(0, 0x02, make([]byte, MaxPayload+1))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestParse(t *testing.T) {
	t.Parallel()

	resp, err := Parse([]byte{5, 0, 1, 251, 242, 61})
	require.NoError(t, err)
	assert.Equal(t, byte(0), resp.Address)
	assert.Equal(t, byte(1), resp.Command)
	assert.Equal(t, byte(0xFB), resp.Status)
	assert.Empty(t, resp.Payload)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantErr error
		name    string
		buf     []byte
	}{
		{
			name:    "too short",
			buf:     []byte{3, 0, 1, 251},
			wantErr: ErrTruncated,
		},
		{
			name:    "length byte disagrees",
			buf:     []byte{6, 0, 1, 251, 242, 61},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "corrupted CRC trailer",
			buf:     []byte{5, 0, 1, 251, 242, 62},
			wantErr: ErrBadCRC,
		},
		{
			name:    "corrupted body",
			buf:     []byte{5, 0, 2, 251, 242, 61},
			wantErr: ErrBadCRC,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.buf)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResponseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
		address byte
		command byte
		status  byte
	}{
		{
			name:    "empty payload",
			address: 0,
			command: 0x01,
			status:  0x00,
			payload: nil,
		},
		{
			name:    "inventory payload",
			address: 10,
			command: 0x01,
			status:  0x03,
			payload: []byte{2, 4, 0xAA, 0xBB, 0xCC, 0xDD, 2, 0x11, 0x22, 0x33, 0x44},
		},
		{
			name:    "maximum payload",
			address: 255,
			command: 0x02,
			status:  0x00,
			payload: make([]byte, MaxResponsePayload),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := BuildResponse(tt.address, tt.command, tt.status, tt.payload)
			require.NoError(t, err)

			resp, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.address, resp.Address)
			assert.Equal(t, tt.command, resp.Command)
			assert.Equal(t, tt.status, resp.Status)
			if len(tt.payload) == 0 {
				assert.Empty(t, resp.Payload)
			} else {
				assert.Equal(t, tt.payload, resp.Payload)
			}
		})
	}
}

func TestCommandRoundTrip(t *testing.T) {
	t.Parallel()

	// A command packet has the same layout as a response whose "status" slot
	// is the first payload byte, so Parse recovers what Build encoded.
	payload := []byte{0x04, 0x30, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00}
	pkt, err := Build(2, 0x02, payload)
	require.NoError(t, err)

	resp, err := Parse(pkt)
	require.NoError(t, err)
	assert.Equal(t, byte(2), resp.Address)
	assert.Equal(t, byte(0x02), resp.Command)
	assert.Equal(t, payload[0], resp.Status)
	assert.Equal(t, payload[1:], resp.Payload)
}
