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

// Package memory implements the LC-3 address space. Addresses below the device
// page are backed by a dense array of words. Addresses in the device page are
// handed to the memory-mapped register layer, which is attached with
// Plumb().
//
// All access by the CPU is checked against the privilege mode. User mode
// programs can only access the user region (0x3000 to 0xfdff), including for
// instruction fetches. A violation is returned as an AccessViolation error,
// which the CPU turns into an ACV exception.
package memory

import (
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
)

// AccessViolation is returned when a user mode access is made outside of the
// user region.
const AccessViolation = "memory: access violation at %v"

// Memory is the complete address space of the machine.
type Memory struct {
	ram [memorymap.Size]isa.Word

	// the register layer. if it is nil the device page is treated as plain
	// memory
	mapped MappedRegisters

	// accesses made during the current step
	Log AccessLog
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{}
}

// Plumb attaches the memory-mapped register layer.
func (mem *Memory) Plumb(mapped MappedRegisters) {
	mem.mapped = mapped
}

// Reset clears the backing array. The register layer is not affected.
func (mem *Memory) Reset() {
	clear(mem.ram[:])
	mem.Log.Reset()
}

func (mem *Memory) check(addr isa.Addr, privilege isa.Privilege) error {
	if privilege == isa.User && !memorymap.UserAccessible(addr) {
		return curated.Errorf(AccessViolation, addr)
	}
	return nil
}

// Read implements the CPUBus interface.
func (mem *Memory) Read(addr isa.Addr, privilege isa.Privilege) (isa.Word, error) {
	if err := mem.check(addr, privilege); err != nil {
		return 0, err
	}
	return mem.ReadUnchecked(addr), nil
}

// Write implements the CPUBus interface.
func (mem *Memory) Write(addr isa.Addr, data isa.Word, privilege isa.Privilege) error {
	if err := mem.check(addr, privilege); err != nil {
		return err
	}
	mem.WriteUnchecked(addr, data)
	return nil
}

// Fetch implements the CPUBus interface. It is the same as Read() except that
// the access is not recorded in the access log.
func (mem *Memory) Fetch(addr isa.Addr, privilege isa.Privilege) (isa.Word, error) {
	if err := mem.check(addr, privilege); err != nil {
		return 0, err
	}
	if memorymap.IsMapped(addr) && mem.mapped != nil {
		return mem.mapped.Read(addr), nil
	}
	return mem.ram[addr], nil
}

// ReadUnchecked implements the CPUBus interface.
func (mem *Memory) ReadUnchecked(addr isa.Addr) isa.Word {
	var v isa.Word
	if memorymap.IsMapped(addr) && mem.mapped != nil {
		v = mem.mapped.Read(addr)
	} else {
		v = mem.ram[addr]
	}
	mem.Log.record(addr, v, false)
	return v
}

// WriteUnchecked implements the CPUBus interface.
func (mem *Memory) WriteUnchecked(addr isa.Addr, data isa.Word) {
	mem.Log.record(addr, data, true)
	if memorymap.IsMapped(addr) && mem.mapped != nil {
		mem.mapped.Write(addr, data)
		return
	}
	mem.ram[addr] = data
}

// Peek implements the DebuggerBus interface. Mapped registers are read without
// side effects.
func (mem *Memory) Peek(addr isa.Addr) isa.Word {
	if memorymap.IsMapped(addr) && mem.mapped != nil {
		return mem.mapped.Peek(addr)
	}
	return mem.ram[addr]
}

// Poke implements the DebuggerBus interface. Poking a mapped register is the
// same as a privileged write.
func (mem *Memory) Poke(addr isa.Addr, data isa.Word) {
	if memorymap.IsMapped(addr) && mem.mapped != nil {
		mem.mapped.Write(addr, data)
		return
	}
	mem.ram[addr] = data
}
