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

package random_test

import (
	"testing"

	"github.com/jetsetilly/lc3sim/random"
	"github.com/jetsetilly/lc3sim/test"
)

type counter struct {
	steps uint64
}

func (c *counter) Steps() uint64 {
	return c.steps
}

func TestRandom(t *testing.T) {
	a := random.NewRandom(&counter{steps: 100})
	b := random.NewRandom(&counter{steps: 100})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}

	pa := make([]uint16, 16)
	pb := make([]uint16, 16)
	a.Fill(pa)
	b.Fill(pb)
	for i := range pa {
		test.ExpectEquality(t, pa[i], pb[i])
	}
}

func TestNilCounter(t *testing.T) {
	a := random.NewRandom(nil)
	a.ZeroSeed = true
	v := a.Intn(1000)
	test.ExpectEquality(t, a.Intn(1000), v)
}
