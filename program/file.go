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
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sigurn/crc8"
)

// A program file starts with fileMagic, followed by the setup end, the
// finalization start and the instruction count as uint32. Every instruction
// is stored as a uint32 length, its encoded value and a CRC-8 of the value.
var fileMagic = []byte("APIT\x01")

var crcTable = crc8.MakeTable(crc8.CRC8)

// WriteProgram stores p in a new gzip-compressed file.
func WriteProgram(filename string, p *Program) (err error) {
	w, err := NewFileWriter(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, w.Close())
	}()
	return writeProgram(w, p)
}

func writeProgram(w FileWriter, p *Program) error {
	if err := w.WriteData(fileMagic); err != nil {
		return err
	}
	for _, v := range []int{p.SetupEnd(), p.FinalizationStart(), p.Len()} {
		if err := w.WriteUint32(uint32(v)); err != nil {
			return err
		}
	}
	for i, in := range p.instructions {
		value := in.Value()
		if err := w.WriteUint32(uint32(len(value))); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
		if err := w.WriteData(value); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
		if err := w.WriteUint8(crc8.Checksum(value, crcTable)); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	return nil
}

// ReadProgram loads a program stored by WriteProgram.
func ReadProgram(filename string) (_ *Program, err error) {
	r, err := NewFileReader(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.CombineErrors(err, r.Close())
	}()
	return readProgram(r)
}

func readProgram(r FileReader) (*Program, error) {
	magic, err := r.ReadData(len(fileMagic))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read header")
	}
	if !bytes.Equal(magic, fileMagic) {
		return nil, fmt.Errorf("not a program file: unexpected header %q", magic)
	}
	var header [3]uint32
	for i := range header {
		if header[i], err = r.ReadUint32(); err != nil {
			return nil, errors.Wrap(err, "cannot read header")
		}
	}
	setupEnd, finalizationStart, count := int(header[0]), int(header[1]), int(header[2])
	if setupEnd > finalizationStart || finalizationStart > count {
		return nil, fmt.Errorf("inconsistent phase markers %d, %d for %d instructions", setupEnd, finalizationStart, count)
	}

	p := New()
	for i := 0; i < count; i++ {
		size, err := r.ReadUint32()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		value, err := r.ReadData(int(size))
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		checksum, err := r.ReadUint8()
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		if want := crc8.Checksum(value, crcTable); checksum != want {
			return nil, fmt.Errorf("instruction %d: checksum mismatch, got 0x%02x want 0x%02x", i, checksum, want)
		}
		in, err := ParseInstruction(value)
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
		p.instructions = append(p.instructions, in)
	}
	p.setupEnd = setupEnd
	p.finalizationStart = finalizationStart
	return p, nil
}
