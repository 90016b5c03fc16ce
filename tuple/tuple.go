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

// Package tuple implements the order-preserving encoding of scalar sequences
// used for every key the generator emits. Two packed tuples compare byte-wise
// in the same order as the tuples compare element by element.
package tuple

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// Element is a single scalar of a tuple. Supported types are nil, []byte,
// string, Tuple, all integer kinds, *big.Int, *uint256.Int, float32, float64,
// bool and uuid.UUID.
type Element = any

// Tuple is an ordered sequence of elements.
type Tuple []Element

// type codes
const (
	nilCode        = 0x00
	bytesCode      = 0x01
	stringCode     = 0x02
	nestedCode     = 0x05
	negIntBigCode  = 0x0b
	intZeroCode    = 0x14
	posIntBigCode  = 0x1d
	floatCode      = 0x20
	doubleCode     = 0x21
	falseCode      = 0x26
	trueCode       = 0x27
	uuidCode       = 0x30
	escapeTerminal = 0xff
)

var errUnsupported = errors.New("unsupported tuple element")

// ErrMalformed is returned by Unpack for byte strings that are not a valid encoding.
var ErrMalformed = errors.New("malformed tuple encoding")

// Pack encodes the tuple. It panics on element types the encoding does not
// support; use PackChecked to get an error instead.
func (t Tuple) Pack() []byte {
	b, err := t.PackChecked()
	if err != nil {
		panic(err)
	}
	return b
}

// PackChecked encodes the tuple and reports unsupported element types.
func (t Tuple) PackChecked() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 16))
	for i, e := range t {
		if err := encode(buf, e, false); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
	}
	return buf.Bytes(), nil
}

// String renders the tuple in a readable form, e.g. (1, b'a', "x").
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = Format(e)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Format renders a single element.
func Format(e Element) string {
	switch v := e.(type) {
	case nil:
		return "None"
	case []byte:
		return fmt.Sprintf("b%q", v)
	case string:
		return fmt.Sprintf("%q", v)
	case Tuple:
		return v.String()
	case bool:
		if v {
			return "True"
		}
		return "False"
	case *big.Int:
		return v.String()
	case *uint256.Int:
		return v.Dec()
	default:
		return fmt.Sprint(v)
	}
}

func encode(buf *bytes.Buffer, e Element, nested bool) error {
	switch v := e.(type) {
	case nil:
		buf.WriteByte(nilCode)
		if nested {
			buf.WriteByte(escapeTerminal)
		}
	case []byte:
		buf.WriteByte(bytesCode)
		writeEscaped(buf, v)
	case string:
		buf.WriteByte(stringCode)
		writeEscaped(buf, []byte(v))
	case Tuple:
		buf.WriteByte(nestedCode)
		for _, inner := range v {
			if err := encode(buf, inner, true); err != nil {
				return err
			}
		}
		buf.WriteByte(0x00)
	case int:
		encodeInt(buf, big.NewInt(int64(v)))
	case int8:
		encodeInt(buf, big.NewInt(int64(v)))
	case int16:
		encodeInt(buf, big.NewInt(int64(v)))
	case int32:
		encodeInt(buf, big.NewInt(int64(v)))
	case int64:
		encodeInt(buf, big.NewInt(v))
	case uint:
		encodeInt(buf, new(big.Int).SetUint64(uint64(v)))
	case uint8:
		encodeInt(buf, big.NewInt(int64(v)))
	case uint16:
		encodeInt(buf, big.NewInt(int64(v)))
	case uint32:
		encodeInt(buf, big.NewInt(int64(v)))
	case uint64:
		encodeInt(buf, new(big.Int).SetUint64(v))
	case *big.Int:
		encodeInt(buf, v)
	case *uint256.Int:
		encodeInt(buf, v.ToBig())
	case float32:
		buf.WriteByte(floatCode)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
		adjustFloat(b[:], true)
		buf.Write(b[:])
	case float64:
		buf.WriteByte(doubleCode)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
		adjustFloat(b[:], true)
		buf.Write(b[:])
	case bool:
		if v {
			buf.WriteByte(trueCode)
		} else {
			buf.WriteByte(falseCode)
		}
	case uuid.UUID:
		buf.WriteByte(uuidCode)
		buf.Write(v[:])
	default:
		return errors.Wrapf(errUnsupported, "type %T", e)
	}
	return nil
}

// writeEscaped writes b followed by a terminator, escaping every 0x00 as 0x00 0xff.
func writeEscaped(buf *bytes.Buffer, b []byte) {
	for _, c := range b {
		buf.WriteByte(c)
		if c == 0x00 {
			buf.WriteByte(escapeTerminal)
		}
	}
	buf.WriteByte(0x00)
}

func encodeInt(buf *bytes.Buffer, v *big.Int) {
	sign := v.Sign()
	if sign == 0 {
		buf.WriteByte(intZeroCode)
		return
	}
	mag := new(big.Int).Abs(v).Bytes()
	n := len(mag)
	if sign > 0 {
		if n > 8 {
			buf.WriteByte(posIntBigCode)
			buf.WriteByte(byte(n))
		} else {
			buf.WriteByte(byte(intZeroCode + n))
		}
		buf.Write(mag)
		return
	}
	if n > 8 {
		buf.WriteByte(negIntBigCode)
		buf.WriteByte(byte(n) ^ 0xff)
	} else {
		buf.WriteByte(byte(intZeroCode - n))
	}
	// one's complement of the magnitude
	for _, c := range mag {
		buf.WriteByte(^c)
	}
}

// adjustFloat flips the sign bit of non-negative numbers and all bits of
// negative ones, so the IEEE representation sorts like the value.
func adjustFloat(b []byte, encoding bool) {
	if (encoding && b[0]&0x80 != 0x00) || (!encoding && b[0]&0x80 == 0x00) {
		for i := range b {
			b[i] ^= 0xff
		}
	} else {
		b[0] ^= 0x80
	}
}

// Unpack decodes a packed tuple. Integers are returned as int64 when they
// fit, as uint64 when they only fit unsigned and as *big.Int otherwise.
func Unpack(b []byte) (Tuple, error) {
	t, pos, err := decodeTuple(b, 0, false)
	if err != nil {
		return nil, err
	}
	if pos != len(b) {
		return nil, errors.Wrapf(ErrMalformed, "trailing bytes at %d", pos)
	}
	return t, nil
}

func decodeTuple(b []byte, pos int, nested bool) (Tuple, int, error) {
	t := Tuple{}
	for pos < len(b) {
		if nested && b[pos] == 0x00 {
			if pos+1 < len(b) && b[pos+1] == escapeTerminal {
				t = append(t, nil)
				pos += 2
				continue
			}
			return t, pos + 1, nil
		}
		e, next, err := decodeElement(b, pos)
		if err != nil {
			return nil, 0, err
		}
		t = append(t, e)
		pos = next
	}
	if nested {
		return nil, 0, errors.Wrap(ErrMalformed, "unterminated nested tuple")
	}
	return t, pos, nil
}

func decodeElement(b []byte, pos int) (Element, int, error) {
	code := b[pos]
	pos++
	switch {
	case code == nilCode:
		return nil, pos, nil
	case code == bytesCode:
		v, next, err := readEscaped(b, pos)
		return v, next, err
	case code == stringCode:
		v, next, err := readEscaped(b, pos)
		return string(v), next, err
	case code == nestedCode:
		return decodeTuple(b, pos, true)
	case code > negIntBigCode && code < posIntBigCode:
		return decodeInt(b, pos, int(code)-intZeroCode)
	case code == posIntBigCode || code == negIntBigCode:
		if pos >= len(b) {
			return nil, 0, errors.Wrap(ErrMalformed, "missing integer length")
		}
		n := int(b[pos])
		if code == negIntBigCode {
			n = int(b[pos] ^ 0xff)
			return decodeInt(b, pos+1, -n)
		}
		return decodeInt(b, pos+1, n)
	case code == floatCode:
		if pos+4 > len(b) {
			return nil, 0, errors.Wrap(ErrMalformed, "short float")
		}
		raw := append([]byte(nil), b[pos:pos+4]...)
		adjustFloat(raw, false)
		return math.Float32frombits(binary.BigEndian.Uint32(raw)), pos + 4, nil
	case code == doubleCode:
		if pos+8 > len(b) {
			return nil, 0, errors.Wrap(ErrMalformed, "short double")
		}
		raw := append([]byte(nil), b[pos:pos+8]...)
		adjustFloat(raw, false)
		return math.Float64frombits(binary.BigEndian.Uint64(raw)), pos + 8, nil
	case code == falseCode:
		return false, pos, nil
	case code == trueCode:
		return true, pos, nil
	case code == uuidCode:
		if pos+16 > len(b) {
			return nil, 0, errors.Wrap(ErrMalformed, "short uuid")
		}
		var u uuid.UUID
		copy(u[:], b[pos:pos+16])
		return u, pos + 16, nil
	}
	return nil, 0, errors.Wrapf(ErrMalformed, "unknown type code 0x%02x at %d", code, pos-1)
}

func readEscaped(b []byte, pos int) ([]byte, int, error) {
	out := []byte{}
	for pos < len(b) {
		c := b[pos]
		if c == 0x00 {
			if pos+1 < len(b) && b[pos+1] == escapeTerminal {
				out = append(out, 0x00)
				pos += 2
				continue
			}
			return out, pos + 1, nil
		}
		out = append(out, c)
		pos++
	}
	return nil, 0, errors.Wrap(ErrMalformed, "unterminated byte string")
}

// decodeInt reads |n| magnitude bytes; a negative n denotes a negative value.
func decodeInt(b []byte, pos int, n int) (Element, int, error) {
	size := n
	if size < 0 {
		size = -size
	}
	if pos+size > len(b) {
		return nil, 0, errors.Wrap(ErrMalformed, "short integer")
	}
	raw := append([]byte(nil), b[pos:pos+size]...)
	if n < 0 {
		for i := range raw {
			raw[i] ^= 0xff
		}
	}
	v := new(big.Int).SetBytes(raw)
	if n < 0 {
		v.Neg(v)
	}
	switch {
	case v.IsInt64():
		return v.Int64(), pos + size, nil
	case v.IsUint64():
		return v.Uint64(), pos + size, nil
	default:
		return v, pos + size, nil
	}
}

// Compare orders two tuples by their encodings.
func Compare(a, b Tuple) int {
	return bytes.Compare(a.Pack(), b.Pack())
}
