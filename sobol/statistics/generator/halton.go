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

package generator

import (
	"fmt"
	"math/rand"
)

// maxStartIndex bounds the random start index of a randomized stream.
const maxStartIndex = 1 << 24

// Stream is a low-discrepancy sequence of vectors in the open unit cube.
// A stream must be initialized before it is advanced; coordinates refer to
// the vector produced by the last Advance.
//
//go:generate mockgen -source halton.go -destination stream_mock.go -package generator
type Stream interface {
	// Init prepares a stream of vectors with the given length.
	Init(length int, randomizedStart bool, randomPermute bool) error
	// Advance produces the next vector of the sequence.
	Advance()
	// Coordinate returns the i-th coordinate (1-based) of the current vector.
	Coordinate(i int) float64
}

// Halton is a randomized Halton sequence (random start, random digit
// permutation). Dimension d uses the d-th prime as base; the start index
// and the permutations are drawn from the injected generator.
type Halton struct {
	rg     *rand.Rand
	bases  []uint64
	perms  [][]uint64 // digit permutation per dimension; nil is the identity
	index  uint64     // index of the current vector
	point  []float64
	isInit bool
}

// NewHalton creates an uninitialized Halton stream drawing its
// randomization from rg.
func NewHalton(rg *rand.Rand) *Halton {
	return &Halton{rg: rg}
}

// Init prepares the stream for vectors of the given length. With
// randomizedStart the sequence starts at a random index, otherwise at
// index one. With randomPermute the radical-inverse digits of every
// dimension are scrambled by a random permutation that keeps zero fixed.
func (h *Halton) Init(length int, randomizedStart bool, randomPermute bool) error {
	if length <= 0 {
		return fmt.Errorf("halton: vector length must be positive, got %v", length)
	}
	h.bases = Primes(length)
	h.point = make([]float64, length)
	h.perms = make([][]uint64, length)
	if randomPermute {
		for d, b := range h.bases {
			h.perms[d] = digitPermutation(h.rg, b)
		}
	}
	h.index = 0
	if randomizedStart {
		h.index = uint64(h.rg.Int63n(maxStartIndex))
	}
	h.isInit = true
	return nil
}

// Advance computes the next vector of the sequence.
func (h *Halton) Advance() {
	if !h.isInit {
		panic("halton: stream is not initialized")
	}
	h.index++
	for d, b := range h.bases {
		h.point[d] = radicalInverse(h.index, b, h.perms[d])
	}
}

// Coordinate returns the i-th coordinate (1-based) of the current vector.
func (h *Halton) Coordinate(i int) float64 {
	return h.point[i-1]
}

// Length returns the vector length of an initialized stream.
func (h *Halton) Length() int {
	return len(h.point)
}

// radicalInverse mirrors the base-b digits of n around the radix point.
func radicalInverse(n uint64, b uint64, perm []uint64) float64 {
	inv := 1.0 / float64(b)
	f := inv
	r := 0.0
	for n > 0 {
		d := n % b
		if perm != nil {
			d = perm[d]
		}
		r += float64(d) * f
		n /= b
		f *= inv
	}
	return r
}

// digitPermutation draws a random permutation of {0,...,b-1} with 0 fixed.
func digitPermutation(rg *rand.Rand, b uint64) []uint64 {
	perm := make([]uint64, b)
	for i, p := range rg.Perm(int(b) - 1) {
		perm[i+1] = uint64(p) + 1
	}
	return perm
}

// Primes returns the first n prime numbers.
func Primes(n int) []uint64 {
	primes := make([]uint64, 0, n)
	for c := uint64(2); len(primes) < n; c++ {
		isPrime := true
		for _, p := range primes {
			if p*p > c {
				break
			}
			if c%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, c)
		}
	}
	return primes
}
