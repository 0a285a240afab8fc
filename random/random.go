// This file is part of lc3sim.
//
// lc3sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// lc3sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with lc3sim.  If not, see <https://www.gnu.org/licenses/>.

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Counter is the source of emulation time.
type Counter interface {
	Steps() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	counter Counter

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The counter can be nil, in which case the count is always zero.
func NewRandom(counter Counter) *Random {
	return &Random{
		counter: counter,
	}
}

// new RNG from the standard library
func (rnd *Random) rand() *rand.Rand {
	var c int64
	if rnd.counter != nil {
		c = int64(rnd.counter.Steps())
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(c))
	}
	return rand.New(rand.NewSource(baseSeed + c))
}

// Intn returns a random number in the range 0 to n-1.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Fill the slice with random 16-bit values. The sequence is determined by the
// current count.
func (rnd *Random) Fill(p []uint16) {
	r := rnd.rand()
	for i := range p {
		p[i] = uint16(r.Intn(0x10000))
	}
}
