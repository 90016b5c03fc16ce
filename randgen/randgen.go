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

package randgen

import (
	"math"
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/0xsoniclabs/apitester/tuple"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"pgregory.net/rand"
)

//go:generate mockgen -source randgen.go -destination randgen_mock.go -package randgen

// RandomGenerator is the source of every random decision and payload of the generator.
type RandomGenerator interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// IntRange returns a uniform integer in [lo, hi].
	IntRange(lo, hi int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// RandomInt returns an integer in [-2^b, 2^b-1] for a bit width b drawn from [0, maxIntBits].
	RandomInt() *big.Int
	// RandomString returns length random bytes; the first byte is never 0xff.
	RandomString(length int) []byte
	// RandomUnicodeString returns length random printable characters.
	RandomUnicodeString(length int) string
	// RandomScalar returns a single random non-tuple element.
	RandomScalar() tuple.Element
	// RandomTuple returns a tuple with 1 to maxSize elements, possibly nested.
	RandomTuple(maxSize int) tuple.Tuple
	// RandomRangeParams returns limit, reverse and streaming mode for a range read.
	RandomRangeParams() RangeParams
	// RandomSelectorParams returns orEqual and offset for a key selector.
	RandomSelectorParams() SelectorParams
}

// RangeParams are the trailing arguments of the range read opcodes.
type RangeParams struct {
	Limit   int
	Reverse int
	Mode    int
}

// Args returns the parameters in push order.
func (p RangeParams) Args() []tuple.Element {
	return []tuple.Element{p.Limit, p.Reverse, p.Mode}
}

// SelectorParams describe a key selector relative to a key.
type SelectorParams struct {
	OrEqual int
	Offset  int
}

// Args returns the parameters in push order.
func (p SelectorParams) Args() []tuple.Element {
	return []tuple.Element{p.OrEqual, p.Offset}
}

const (
	// MaxIntBits is the widest integer RandomInt may produce.
	MaxIntBits = 256

	maxSmallLimit   = 1000
	minHugeLimit    = 100_000_000
	maxSelectorNear = 20
	maxSelectorFar  = 1000
)

type scalarKind int

const (
	kindNull scalarKind = iota
	kindBytes
	kindString
	kindInt
	kindUUID
	kindBool
	kindFloat
	kindDouble
	kindTuple
	numKinds
)

var specialFloats = []float64{math.NaN(), math.Inf(-1), math.Copysign(0, -1), 0, math.Inf(1)}

var specialStrings = []string{
	"\U0001f4a9", "\U0001f63c", "\U0001f3f3\ufe0f\u200d\U0001f308", "\U0001f1f5\U0001f1f2",
	"\uf8ff", "\U0002a2b2", "\u05e9\u05dc\u05d5\u05dd",
}

// Random is the seeded RandomGenerator. It is not safe for concurrent use;
// every generated thread owns its own instance.
type Random struct {
	rnd        *rand.Rand
	maxIntBits int
}

// New creates a generator seeded with seed producing integers of up to maxIntBits bits.
func New(seed uint64, maxIntBits int) (*Random, error) {
	if maxIntBits < 0 || maxIntBits > MaxIntBits {
		return nil, errors.Newf("max int bits must be within [0, %d], got %d", MaxIntBits, maxIntBits)
	}
	return &Random{rnd: rand.New(seed), maxIntBits: maxIntBits}, nil
}

func (r *Random) Intn(n int) int {
	return r.rnd.Intn(n)
}

func (r *Random) IntRange(lo, hi int) int {
	return lo + r.rnd.Intn(hi-lo+1)
}

func (r *Random) Float64() float64 {
	return r.rnd.Float64()
}

func (r *Random) RandomInt() *big.Int {
	bits := r.IntRange(0, r.maxIntBits)
	magnitude := uint256.Int{r.rnd.Uint64(), r.rnd.Uint64(), r.rnd.Uint64(), r.rnd.Uint64()}
	magnitude.Rsh(&magnitude, uint(MaxIntBits-bits))
	v := magnitude.ToBig()
	if r.rnd.Intn(2) == 1 {
		// maps [0, 2^b-1] onto [-2^b, -1]
		v.Not(v)
	}
	return v
}

func (r *Random) RandomString(length int) []byte {
	if length == 0 {
		return []byte{}
	}
	b := make([]byte, length)
	b[0] = byte(r.rnd.Intn(255))
	for i := 1; i < length; i++ {
		b[i] = byte(r.rnd.Intn(256))
	}
	return b
}

func (r *Random) RandomUnicodeString(length int) string {
	out := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, r.randomUnicodeChar()...)
	}
	return string(out)
}

func (r *Random) randomUnicodeChar() string {
	for {
		if r.rnd.Float64() < 0.05 {
			return specialStrings[r.rnd.Intn(len(specialStrings))]
		}
		c := rune(r.rnd.Intn(0x10000))
		if !utf8.ValidRune(c) {
			continue
		}
		if unicode.In(c, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z) {
			return string(c)
		}
	}
}

// randomFloat spreads values over the whole exponent range of a float with expBits exponent bits.
func (r *Random) randomFloat(expBits int) float64 {
	if r.rnd.Float64() < 0.05 {
		return specialFloats[r.rnd.Intn(len(specialFloats))]
	}
	sign := 1.0
	if r.rnd.Float64() < 0.5 {
		sign = -1.0
	}
	exponent := r.IntRange(-(1<<(expBits-1))-10, 1<<(expBits-1)-1)
	result := sign * math.Pow(2, float64(exponent)) * r.rnd.Float64()
	if r.rnd.Float64() < 0.05 {
		result = math.Trunc(result)
	}
	return result
}

func (r *Random) RandomScalar() tuple.Element {
	return r.randomElement(scalarKind(r.rnd.Intn(int(kindTuple))), 0)
}

func (r *Random) randomElement(kind scalarKind, nestedMax int) tuple.Element {
	switch kind {
	case kindNull:
		return nil
	case kindBytes:
		return r.RandomString(r.IntRange(0, 100))
	case kindString:
		return r.RandomUnicodeString(r.IntRange(0, 100))
	case kindInt:
		return r.RandomInt()
	case kindUUID:
		var id uuid.UUID
		for i := range id {
			id[i] = byte(r.rnd.Intn(256))
		}
		return id
	case kindBool:
		return r.rnd.Intn(2) == 1
	case kindFloat:
		return float32(r.randomFloat(8))
	case kindDouble:
		return r.randomFloat(11)
	default:
		length := r.IntRange(0, nestedMax)
		if length == 0 {
			return tuple.Tuple{}
		}
		return r.RandomTuple(length)
	}
}

func (r *Random) RandomTuple(maxSize int) tuple.Tuple {
	size := r.IntRange(1, maxSize)
	t := make(tuple.Tuple, 0, size)
	for i := 0; i < size; i++ {
		t = append(t, r.randomElement(scalarKind(r.rnd.Intn(int(numKinds))), maxSize-size))
	}
	return t
}

func (r *Random) RandomRangeParams() RangeParams {
	var limit int
	switch {
	case r.rnd.Float64() < 0.75:
		limit = r.IntRange(1, maxSmallLimit)
	case r.rnd.Float64() < 0.75:
		limit = 0
	default:
		limit = r.IntRange(minHugeLimit, math.MaxInt32)
	}
	return RangeParams{
		Limit:   limit,
		Reverse: r.rnd.Intn(2),
		Mode:    r.IntRange(-2, 4),
	}
}

func (r *Random) RandomSelectorParams() SelectorParams {
	var offset int
	if r.rnd.Float64() < 0.9 {
		offset = r.IntRange(-maxSelectorNear, maxSelectorNear)
	} else {
		offset = r.IntRange(-maxSelectorFar, maxSelectorFar)
	}
	return SelectorParams{OrEqual: r.rnd.Intn(2), Offset: offset}
}
