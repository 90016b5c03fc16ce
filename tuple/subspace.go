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

package tuple

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// Subspace is a key prefix under which a family of tuples is packed.
type Subspace struct {
	rawPrefix []byte
}

// NewSubspace creates a subspace whose prefix is the packed prefix tuple.
func NewSubspace(prefix Tuple) Subspace {
	return Subspace{rawPrefix: prefix.Pack()}
}

// FromBytes creates a subspace over a raw byte prefix.
func FromBytes(raw []byte) Subspace {
	return Subspace{rawPrefix: append([]byte(nil), raw...)}
}

// Sub returns the nested subspace extended by the given elements.
func (s Subspace) Sub(el ...Element) Subspace {
	return Subspace{rawPrefix: s.Pack(Tuple(el))}
}

// Bytes returns the raw prefix. This is the key() of the subspace.
func (s Subspace) Bytes() []byte {
	return append([]byte(nil), s.rawPrefix...)
}

// Pack encodes t under the subspace prefix.
func (s Subspace) Pack(t Tuple) []byte {
	out := append([]byte(nil), s.rawPrefix...)
	return append(out, t.Pack()...)
}

// Unpack decodes a key of the subspace back into its tuple.
func (s Subspace) Unpack(key []byte) (Tuple, error) {
	if !s.Contains(key) {
		return nil, errors.Newf("key %x is not in subspace %x", key, s.rawPrefix)
	}
	return Unpack(key[len(s.rawPrefix):])
}

// Contains reports whether key starts with the subspace prefix.
func (s Subspace) Contains(key []byte) bool {
	return bytes.HasPrefix(key, s.rawPrefix)
}

// Range returns the begin and end keys covering every packed tuple of the subspace.
func (s Subspace) Range() (begin, end []byte) {
	begin = append(s.Bytes(), 0x00)
	end = append(s.Bytes(), 0xff)
	return begin, end
}
