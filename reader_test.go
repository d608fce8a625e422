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
	"testing"
	"time"

	"github.com/miek/ru5102/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustResponse builds a device reply frame for the mock transport to serve.
func mustResponse(t *testing.T, command, status byte, payload []byte) []byte {
	t.Helper()
	raw, err := frame.BuildResponse(0, command, status, payload)
	require.NoError(t, err)
	return raw
}

func newTestReader(t *testing.T, opts ...Option) (*Reader, *MockTransport) {
	t.Helper()
	mock := NewMockTransport()
	reader, err := New(mock, opts...)
	require.NoError(t, err)
	return reader, mock
}

func TestInventory(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusOK), []byte{
		2,
		4, 0xAA, 0xBB, 0xCC, 0xDD,
		4, 0x11, 0x22, 0x33, 0x44,
	}))

	tags, err := reader.Inventory()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{
		{0xAA, 0xBB, 0xCC, 0xDD},
		{0x11, 0x22, 0x33, 0x44},
	}, tags)
}

func TestInventoryPacketBytes(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t, WithAddress(10))
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusNoTags), nil))

	_, err := reader.Inventory()
	require.NoError(t, err)

	// Known-good frame for an Inventory to address 10.
	assert.Equal(t, []byte{4, 10, 1, 171, 182}, mock.LastWritten())
}

func TestInventoryNoTags(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusNoTags), nil))

	tags, err := reader.Inventory()
	require.NoError(t, err)
	require.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestInventoryTruncatedPayload(t *testing.T) {
	t.Parallel()

	// The count byte promises two tags but only one record follows.
	reader, mock := newTestReader(t)
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusOK), []byte{
		2,
		4, 0xAA, 0xBB, 0xCC, 0xDD,
	}))

	_, err := reader.Inventory()
	require.ErrorIs(t, err, ErrTruncatedPayload)
	assert.True(t, IsProgramError(err))
}

func TestInventoryPoorCommunication(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusPoorCommunication), nil))

	_, err := reader.Inventory()
	require.Error(t, err)
	assert.True(t, IsCommunicationError(err))
	assert.True(t, IsRetryable(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StatusPoorCommunication, se.Status)
}

func TestInventoryBadCRC(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	raw := mustResponse(t, cmdInventory, byte(StatusOK), []byte{0})
	raw[len(raw)-1] ^= 0xFF
	mock.SetResponse(cmdInventory, raw)

	_, err := reader.Inventory()
	require.Error(t, err)
	assert.True(t, IsBadCRC(err))
	assert.True(t, IsProgramError(err))
	assert.False(t, IsRetryable(err))
}

func TestInventoryUnknownStatus(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, 0x42, nil))

	_, err := reader.Inventory()
	require.ErrorIs(t, err, ErrUnknownStatus)
	assert.True(t, IsProgramError(err))
}

func TestInventoryTransportError(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	injected := errors.New("device unplugged")
	mock.SetError(cmdInventory, injected)

	_, err := reader.Inventory()
	require.ErrorIs(t, err, injected)
	assert.True(t, IsIoError(err))
	assert.False(t, IsRetryable(err))
}

func TestInventoryReadTimeout(t *testing.T) {
	t.Parallel()

	// No staged response at all: the length-byte read times out.
	reader, _ := newTestReader(t)

	_, err := reader.Inventory()
	require.ErrorIs(t, err, ErrTimeout)
	assert.True(t, IsIoError(err))
	assert.True(t, IsRetryable(err))
}

func TestReaderInformation(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdGetReaderInformation, mustResponse(t, cmdGetReaderInformation,
		byte(StatusOK), []byte{0x02, 0x15, 0x09, 0x02, 0x31, 0x00, 0x1E, 0x0A}))

	info, err := reader.ReaderInformation()
	require.NoError(t, err)
	assert.Equal(t, [2]byte{0x02, 0x15}, info.Version)
	assert.Equal(t, byte(0x09), info.ReaderType)
	assert.Equal(t, ProtocolEPCC1G2, info.SupportedProtocols)
	assert.Equal(t, byte(0x31), info.MaxFrequency)
	assert.Equal(t, byte(0x00), info.MinFrequency)
	assert.Equal(t, byte(0x1E), info.Power)
	assert.Equal(t, byte(0x0A), info.ScanTime)
}

func TestReaderInformationWrongLength(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdGetReaderInformation, mustResponse(t, cmdGetReaderInformation,
		byte(StatusOK), []byte{0x02, 0x15, 0x09}))

	_, err := reader.ReaderInformation()
	require.ErrorIs(t, err, ErrMalformedInfo)
	assert.True(t, IsProgramError(err))
}

func TestReadData(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdReadData, mustResponse(t, cmdReadData, byte(StatusOK),
		[]byte{0xE2, 0x00, 0x34, 0x12}))

	cmd := ReadCommand{
		EPC:      []byte{0xAA, 0xBB, 0xCC, 0xDD},
		Location: LocationTID,
		Count:    2,
	}
	data, err := reader.ReadData(cmd)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xE2, 0x00, 0x34, 0x12}, data)

	payload, err := cmd.payload()
	require.NoError(t, err)
	want, err := frame.Build(0, cmdReadData, payload)
	require.NoError(t, err)
	assert.Equal(t, want, mock.LastWritten())
}

func TestWriteDataAccessPasswordError(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdWriteData, mustResponse(t, cmdWriteData,
		byte(StatusAccessPasswordError), nil))

	err := reader.WriteData(WriteCommand{
		EPC:      []byte{0xAA, 0xBB},
		Data:     []byte{0x12, 0x34},
		Location: LocationUser,
		Password: []byte{1, 2, 3, 4},
	})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.False(t, IsRetryable(err))
}

func TestWriteDataBuilderErrorWritesNothing(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)

	err := reader.WriteData(WriteCommand{
		EPC:  []byte{0xAA, 0xBB},
		Data: []byte{0x12}, // odd byte count
	})
	require.ErrorIs(t, err, ErrOddData)
	assert.Empty(t, mock.Written(), "invalid requests must not reach the wire")
}

func TestKill(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdKillTag, mustResponse(t, cmdKillTag, byte(StatusOK), nil))

	err := reader.Kill(KillCommand{
		EPC:      []byte{0xAA, 0xBB, 0xCC, 0xDD},
		Password: []byte{9, 8, 7, 6},
	})
	require.NoError(t, err)

	want, err := frame.Build(0, cmdKillTag, []byte{2, 0xAA, 0xBB, 0xCC, 0xDD, 9, 8, 7, 6})
	require.NoError(t, err)
	assert.Equal(t, want, mock.LastWritten())
}

func TestKillPasswordZero(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdKillTag, mustResponse(t, cmdKillTag, byte(StatusKillPasswordZero), nil))

	err := reader.Kill(KillCommand{EPC: []byte{0xAA, 0xBB}})
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestSetAddress(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	mock.SetResponse(cmdSetAddress, mustResponse(t, cmdSetAddress, byte(StatusOK), nil))
	mock.SetResponse(cmdInventory, mustResponse(t, cmdInventory, byte(StatusNoTags), nil))

	require.NoError(t, reader.SetAddress(7))
	assert.Equal(t, byte(7), reader.Address())

	// Subsequent packets carry the new address byte.
	_, err := reader.Inventory()
	require.NoError(t, err)
	assert.Equal(t, byte(7), mock.LastWritten()[1])
}

func TestSetAddressFailureKeepsOldAddress(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t, WithAddress(3))
	mock.SetResponse(cmdSetAddress, mustResponse(t, cmdSetAddress, byte(StatusParameterError), nil))

	err := reader.SetAddress(7)
	require.Error(t, err)
	assert.Equal(t, byte(3), reader.Address())
}

func TestConfigurationCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		run     func(*Reader) error
		name    string
		command byte
		payload []byte
	}{
		{
			name:    "set region",
			run:     func(r *Reader) error { return r.SetRegion(0x31, 0x00) },
			command: cmdSetRegion,
			payload: []byte{0x31, 0x00},
		},
		{
			name:    "set scan time",
			run:     func(r *Reader) error { return r.SetScanTime(10) },
			command: cmdSetScanTime,
			payload: []byte{10},
		},
		{
			name:    "set baud rate",
			run:     func(r *Reader) error { return r.SetBaudRate(5) },
			command: cmdSetBaudRate,
			payload: []byte{5},
		},
		{
			name:    "set power",
			run:     func(r *Reader) error { return r.SetPower(30) },
			command: cmdSetPower,
			payload: []byte{30},
		},
		{
			name:    "acousto-optic control",
			run:     func(r *Reader) error { return r.AcoustoOpticControl(3, 1, 2) },
			command: cmdAcoustoOpticControl,
			payload: []byte{3, 1, 2},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader, mock := newTestReader(t)
			mock.SetResponse(tt.command, mustResponse(t, tt.command, byte(StatusOK), nil))

			require.NoError(t, tt.run(reader))
			assert.Equal(t, 1, mock.GetCallCount(tt.command))

			want, err := frame.Build(0, tt.command, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, want, mock.LastWritten())
		})
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	reader, err := New(mock, WithTimeout(250*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, mock.timeout)
	require.NoError(t, reader.SetTimeout(time.Second))
	assert.Equal(t, time.Second, mock.timeout)
}

func TestReaderClose(t *testing.T) {
	t.Parallel()

	reader, mock := newTestReader(t)
	require.NoError(t, reader.Close())
	assert.False(t, mock.IsConnected())

	_, err := reader.Inventory()
	require.ErrorIs(t, err, ErrNotConnected)
	assert.True(t, IsIoError(err))
}
