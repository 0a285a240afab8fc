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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
	"github.com/jetsetilly/lc3sim/test"
)

// counts reads of the mapped registers so that side effects can be detected
type mappedRegisters struct {
	values map[isa.Addr]isa.Word
	reads  int
}

func (m *mappedRegisters) Read(addr isa.Addr) isa.Word {
	m.reads++
	return m.values[addr]
}

func (m *mappedRegisters) Write(addr isa.Addr, data isa.Word) {
	m.values[addr] = data
}

func (m *mappedRegisters) Peek(addr isa.Addr) isa.Word {
	return m.values[addr]
}

func TestUserAccess(t *testing.T) {
	mem := memory.NewMemory()

	for _, a := range []isa.Addr{0x0000, 0x0200, 0x2fff, 0xfe00, 0xffff} {
		err := mem.Write(a, 0x1234, isa.User)
		test.ExpectSuccess(t, curated.Is(err, memory.AccessViolation), a)
		test.ExpectEquality(t, mem.Peek(a), isa.Word(0), a)

		_, err = mem.Read(a, isa.User)
		test.ExpectSuccess(t, curated.Is(err, memory.AccessViolation), a)

		_, err = mem.Fetch(a, isa.User)
		test.ExpectSuccess(t, curated.Is(err, memory.AccessViolation), a)
	}

	test.ExpectSuccess(t, mem.Write(0x3000, 0x1234, isa.User))
	v, err := mem.Read(0x3000, isa.User)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x1234))

	test.ExpectSuccess(t, mem.Write(0x0200, 0x5678, isa.Supervisor))
	test.ExpectEquality(t, mem.Peek(0x0200), isa.Word(0x5678))
}

func TestMapped(t *testing.T) {
	mem := memory.NewMemory()
	regs := &mappedRegisters{values: map[isa.Addr]isa.Word{0xfe00: 0x8000}}
	mem.Plumb(regs)

	v, err := mem.Read(0xfe00, isa.Supervisor)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x8000))
	test.ExpectEquality(t, regs.reads, 1)

	// peek does not touch the register
	test.ExpectEquality(t, mem.Peek(0xfe00), isa.Word(0x8000))
	test.ExpectEquality(t, regs.reads, 1)

	mem.Poke(0xfe06, 0x41)
	test.ExpectEquality(t, regs.values[0xfe06], isa.Word(0x41))
}

func TestAccessLog(t *testing.T) {
	mem := memory.NewMemory()
	mem.Log.Reset()

	_, _ = mem.Fetch(0x3000, isa.User)
	test.ExpectEquality(t, len(mem.Log.Accesses()), 0)

	_ = mem.Write(0x3001, 7, isa.User)
	_, _ = mem.Read(0x3001, isa.User)
	mem.Peek(0x3001)

	acc := mem.Log.Accesses()
	test.DemandEquality(t, len(acc), 2)
	test.ExpectEquality(t, acc[0], memory.Access{Addr: 0x3001, Value: 7, Write: true})
	test.ExpectEquality(t, acc[1], memory.Access{Addr: 0x3001, Value: 7, Write: false})

	// failed accesses are not recorded
	_ = mem.Write(0x0000, 1, isa.User)
	test.ExpectEquality(t, len(mem.Log.Accesses()), 2)

	// the log saturates rather than wrapping
	for i := 0; i < memory.MaxAccesses*2; i++ {
		mem.WriteUnchecked(0x4000, isa.Word(i))
	}
	test.ExpectEquality(t, len(mem.Log.Accesses()), memory.MaxAccesses)

	mem.Log.Reset()
	test.ExpectEquality(t, len(mem.Log.Accesses()), 0)
}
