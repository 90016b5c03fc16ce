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

package apigen

import (
	"math"

	"github.com/0xsoniclabs/apitester/randgen"
	"github.com/0xsoniclabs/apitester/tuple"
)

// keyRegistry remembers every key tuple generated so far.
type keyRegistry struct {
	keys []tuple.Tuple
	// rate of the truncated exponential distribution over key age; zero picks uniformly
	rate float64
}

func (r *keyRegistry) add(t tuple.Tuple) {
	r.keys = append(r.keys, t)
}

func (r *keyRegistry) size() int {
	return len(r.keys)
}

// choose returns a registered tuple, preferring recent ones when the rate is positive.
func (r *keyRegistry) choose(rnd randgen.RandomGenerator) tuple.Tuple {
	n := len(r.keys)
	if r.rate <= 0 {
		return r.keys[rnd.Intn(n)]
	}
	age := sampleAge(r.rate, rnd.Float64(), n)
	return r.keys[n-1-age]
}

// quantile is the inverse cumulative distribution function of the
// exponential distribution truncated to [0, 1].
func quantile(lambda float64, p float64) float64 {
	return math.Log(p*math.Exp(-lambda)-p+1) / -lambda
}

// sampleAge discretizes quantile(lambda, p) to an age in [0, n).
func sampleAge(lambda float64, p float64, n int) int {
	y := int(float64(n) * quantile(lambda, p))
	if y < 0 {
		return 0
	} else if y >= n {
		return n - 1
	} else {
		return y
	}
}
