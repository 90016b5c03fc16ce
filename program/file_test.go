// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package program

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/sigurn/crc8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleProgram() *Program {
	p := New()
	p.Append("NEW_TRANSACTION")
	p.SetupComplete()
	p.Push([]byte("key"), []byte{0x00, 0xff})
	p.Append("SET")
	p.ToFront(3)
	p.BeginFinalization()
	p.BlockingCommit()
	return p
}

func TestWriteProgram_RoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "program.gz")
	p := sampleProgram()
	require.NoError(t, WriteProgram(fp, p))

	got, err := ReadProgram(fp)
	require.NoError(t, err)
	assert.Equal(t, p.Digest(), got.Digest())
	assert.Equal(t, p.SetupEnd(), got.SetupEnd())
	assert.Equal(t, p.FinalizationStart(), got.FinalizationStart())
	assert.Equal(t, p.Len(), got.Len())
}

func TestWriteProgram_RefusesToOverwrite(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "program.gz")
	require.NoError(t, WriteProgram(fp, sampleProgram()))
	assert.ErrorContains(t, WriteProgram(fp, sampleProgram()), "already exists")
}

func TestWriteProgram_PropagatesWriterErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewMockFileWriter(ctrl)
	mockErr := errors.New("mock error")

	p := New()
	p.Append("GET")
	gomock.InOrder(
		w.EXPECT().WriteData(fileMagic).Return(nil),
		w.EXPECT().WriteUint32(uint32(0)).Return(nil),
		w.EXPECT().WriteUint32(uint32(1)).Return(nil),
		w.EXPECT().WriteUint32(uint32(1)).Return(nil),
		w.EXPECT().WriteUint32(uint32(len(NewOp("GET").Value()))).Return(nil),
		w.EXPECT().WriteData(NewOp("GET").Value()).Return(mockErr),
	)
	err := writeProgram(w, p)
	assert.ErrorIs(t, err, mockErr)
	assert.ErrorContains(t, err, "instruction 0")
}

func TestReadProgram_RejectsCorruptInput(t *testing.T) {
	value := NewOp("GET").Value()
	tests := []struct {
		name    string
		setup   func(r *MockFileReader)
		wantErr string
	}{
		{
			name: "BadMagic",
			setup: func(r *MockFileReader) {
				r.EXPECT().ReadData(len(fileMagic)).Return([]byte("NOPE!"), nil)
			},
			wantErr: "not a program file",
		},
		{
			name: "InconsistentMarkers",
			setup: func(r *MockFileReader) {
				r.EXPECT().ReadData(len(fileMagic)).Return(fileMagic, nil)
				r.EXPECT().ReadUint32().Return(uint32(2), nil)
				r.EXPECT().ReadUint32().Return(uint32(1), nil)
				r.EXPECT().ReadUint32().Return(uint32(1), nil)
			},
			wantErr: "inconsistent phase markers",
		},
		{
			name: "ChecksumMismatch",
			setup: func(r *MockFileReader) {
				r.EXPECT().ReadData(len(fileMagic)).Return(fileMagic, nil)
				r.EXPECT().ReadUint32().Return(uint32(0), nil).Times(2)
				r.EXPECT().ReadUint32().Return(uint32(1), nil)
				r.EXPECT().ReadUint32().Return(uint32(len(value)), nil)
				r.EXPECT().ReadData(len(value)).Return(value, nil)
				r.EXPECT().ReadUint8().Return(crc8.Checksum(value, crcTable)+1, nil)
			},
			wantErr: "checksum mismatch",
		},
		{
			name: "Truncated",
			setup: func(r *MockFileReader) {
				r.EXPECT().ReadData(len(fileMagic)).Return(fileMagic, nil)
				r.EXPECT().ReadUint32().Return(uint32(0), errors.New("unexpected EOF"))
			},
			wantErr: "cannot read header",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := NewMockFileReader(ctrl)
			test.setup(r)
			_, err := readProgram(r)
			assert.ErrorContains(t, err, test.wantErr)
		})
	}
}

func TestNewFileReader_ErrorCases(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty_file")
	create, err := os.Create(emptyFile)
	require.NoError(t, err)
	require.NoError(t, create.Close())
	tests := []struct {
		name     string
		filepath string
		wantErr  string
	}{
		{
			name:     "file does not exist",
			filepath: "non_existent_file",
			wantErr:  "could not stat file: non_existent_file, does it exist?",
		},
		{
			name:     "file is a directory",
			filepath: t.TempDir(),
			wantErr:  "given path to program file is a directory",
		},
		{
			name:     "file is empty",
			filepath: emptyFile,
			wantErr:  "given program file is empty",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewFileReader(test.filepath)
			require.Error(t, err)
			require.Contains(t, err.Error(), test.wantErr)
		})
	}
}

func TestFileWriter_WriteUint32(t *testing.T) {
	mockErr := errors.New("mock error")
	tests := []struct {
		name    string
		setup   func(*MockWriteBuffer)
		wantErr error
	}{
		{
			name: "Success",
			setup: func(m *MockWriteBuffer) {
				m.EXPECT().Write(bigendian.Uint32ToBytes(7)).Return(4, nil)
			},
		},
		{
			name: "WriteError",
			setup: func(m *MockWriteBuffer) {
				m.EXPECT().Write(bigendian.Uint32ToBytes(7)).Return(0, mockErr)
			},
			wantErr: mockErr,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			buffer := NewMockWriteBuffer(ctrl)
			test.setup(buffer)
			fw := &fileWriter{buffer: buffer, closer: multiCloser{}}
			err := fw.WriteUint32(7)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileWriter_CloseFlushesBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	buffer := NewMockWriteBuffer(ctrl)
	mockErr := errors.New("flush failed")
	buffer.EXPECT().Flush().Return(mockErr)

	fw := &fileWriter{buffer: buffer, closer: multiCloser{}}
	assert.ErrorIs(t, fw.Close(), mockErr)
}

func TestFileReader_ReadsWhatWriterWrote(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "raw.gz")
	fw, err := NewFileWriter(fp)
	require.NoError(t, err)
	require.NoError(t, fw.WriteUint32(0xdeadbeef))
	require.NoError(t, fw.WriteUint8(9))
	require.NoError(t, fw.WriteData([]byte("xyz")))
	require.NoError(t, fw.Close())

	fr, err := NewFileReader(fp)
	require.NoError(t, err)
	defer fr.Close()
	v, err := fr.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v)
	b, err := fr.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(9), b)
	data, err := fr.ReadData(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), data)
	_, err = fr.ReadData(1)
	assert.Error(t, err)
}
