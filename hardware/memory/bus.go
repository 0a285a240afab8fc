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

package memory

import "github.com/jetsetilly/lc3sim/hardware/isa"

// CPUBus defines the operations for the memory system when accessed from the
// CPU. Access is checked against the privilege of the CPU.
type CPUBus interface {
	Read(addr isa.Addr, privilege isa.Privilege) (isa.Word, error)
	Write(addr isa.Addr, data isa.Word, privilege isa.Privilege) error
	Fetch(addr isa.Addr, privilege isa.Privilege) (isa.Word, error)

	// unchecked variants are used for exception entry and the stack
	ReadUnchecked(addr isa.Addr) isa.Word
	WriteUnchecked(addr isa.Addr, data isa.Word)
}

// DebuggerBus defines the meta-operations for memory. Think of these functions
// as "debugging" functions, that is operations outside of the normal operation
// of the machine.
type DebuggerBus interface {
	Peek(addr isa.Addr) isa.Word
	Poke(addr isa.Addr, data isa.Word)
}

// MappedRegisters is implemented by the memory-mapped register layer. Every
// address in the device page is passed to it.
type MappedRegisters interface {
	// Read and Write have side effects. for example, reading KBDR clears the
	// ready bit in KBSR
	Read(addr isa.Addr) isa.Word
	Write(addr isa.Addr, data isa.Word)

	// Peek returns the visible value of the register with no side effects
	Peek(addr isa.Addr) isa.Word
}
