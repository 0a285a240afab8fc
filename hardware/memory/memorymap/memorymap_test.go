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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
	"github.com/jetsetilly/lc3sim/test"
)

func TestMapAddress(t *testing.T) {
	test.ExpectEquality(t, memorymap.MapAddress(0x0025), memorymap.TrapTable)
	test.ExpectEquality(t, memorymap.MapAddress(0x0180), memorymap.InterruptTable)
	test.ExpectEquality(t, memorymap.MapAddress(0x0200), memorymap.OS)
	test.ExpectEquality(t, memorymap.MapAddress(0x2fff), memorymap.OS)
	test.ExpectEquality(t, memorymap.MapAddress(0x3000), memorymap.User)
	test.ExpectEquality(t, memorymap.MapAddress(0xfdff), memorymap.User)
	test.ExpectEquality(t, memorymap.MapAddress(0xfe00), memorymap.Devices)
	test.ExpectEquality(t, memorymap.MapAddress(0xffff), memorymap.Devices)
}

func TestUserAccessible(t *testing.T) {
	test.ExpectFailure(t, memorymap.UserAccessible(0x2fff))
	test.ExpectSuccess(t, memorymap.UserAccessible(0x3000))
	test.ExpectSuccess(t, memorymap.UserAccessible(0xfdff))
	test.ExpectFailure(t, memorymap.UserAccessible(0xfe00))
	test.ExpectEquality(t, memorymap.Vector(0x81), isa.Addr(0x0181))
}
