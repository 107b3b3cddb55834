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
	"math/rand"

	"github.com/seehuhn/mt19937"
)

// DefaultSeed is the seed of an engine when no explicit seed is configured.
// It is the reference seed of the 64-bit Mersenne Twister.
const DefaultSeed int64 = 5489

// openScale maps the upper 52 bits of a 64-bit word to the unit interval.
const openScale = 1.0 / 4503599627370496.0

// Engine is a deterministic pseudorandom engine based on the 64-bit
// Mersenne Twister. Engines are not safe for concurrent use; every sampler
// and stream owns its own engine.
type Engine struct {
	mt *mt19937.MT19937
	rg *rand.Rand
}

// NewEngine creates an engine seeded with the given seed.
func NewEngine(seed int64) *Engine {
	mt := mt19937.New()
	mt.Seed(seed)
	return &Engine{
		mt: mt,
		rg: rand.New(mt),
	}
}

// NewDefaultEngine creates an engine seeded with DefaultSeed.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultSeed)
}

// Seed restarts the engine from the given seed.
func (e *Engine) Seed(seed int64) {
	e.mt.Seed(seed)
}

// Uint64 returns the next 64-bit word of the engine.
func (e *Engine) Uint64() uint64 {
	return e.mt.Uint64()
}

// OpenFloat64 returns a uniform number in the open interval (0,1).
func (e *Engine) OpenFloat64() float64 {
	return (float64(e.mt.Uint64()>>12) + 0.5) * openScale
}

// Rand exposes the engine as a math/rand generator. Draws from the returned
// generator advance the engine.
func (e *Engine) Rand() *rand.Rand {
	return e.rg
}
