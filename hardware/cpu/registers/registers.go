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

// Package registers implements the LC-3 register file. The File type is shared
// by the CPU and the memory-mapped register layer (the PSR, BSP and MCR are
// visible in the device page) so it depends on neither.
package registers

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// RunBit is the bit in the MCR that indicates the machine is running.
const RunBit = isa.Word(0x8000)

// File is the complete register state of the LC-3.
type File struct {
	R   [isa.NumRegisters]isa.Word
	PC  isa.Addr
	PSR StatusRegister

	// the stack pointer of the inactive privilege mode. in user mode this is
	// the saved supervisor stack pointer and in supervisor mode it is the
	// saved user stack pointer
	BSP isa.Word

	// machine control register. bit 15 is the run bit
	MCR isa.Word
}

func (f *File) String() string {
	s := strings.Builder{}
	for i := range f.R {
		s.WriteString(fmt.Sprintf("R%d=%04x ", i, uint16(f.R[i])))
	}
	s.WriteString(fmt.Sprintf("PC=%04x PSR=%s BSP=%04x MCR=%04x", uint16(f.PC), f.PSR, uint16(f.BSP), uint16(f.MCR)))
	return s.String()
}

// Reset puts the register file into its power-on state. The machine starts in
// supervisor mode at the highest priority with the run bit set.
func (f *File) Reset(entry isa.Addr) {
	*f = File{
		PC: entry,
		PSR: StatusRegister{
			Privilege: isa.Supervisor,
			Priority:  MaxPriority,
			CC:        isa.Z,
		},
		MCR: RunBit,
	}
}

// Write sets the general purpose register and updates the condition codes.
func (f *File) Write(r isa.Reg, v isa.Word) {
	f.R[r&7] = v
	f.PSR.SetCC(v)
}

// SwapStacks exchanges R6 and BSP. Called whenever the privilege mode changes.
func (f *File) SwapStacks() {
	f.R[isa.SP], f.BSP = f.BSP, f.R[isa.SP]
}

// EnterSupervisor switches to supervisor mode, exchanging the stack pointers
// if the processor was in user mode.
func (f *File) EnterSupervisor() {
	if f.PSR.Privilege == isa.User {
		f.SwapStacks()
		f.PSR.Privilege = isa.Supervisor
	}
}

// LoadPSR sets the status register from its Word form. If the privilege mode
// changes then the stack pointers are exchanged.
func (f *File) LoadPSR(v isa.Word) {
	prev := f.PSR.Privilege
	f.PSR.FromValue(v)
	if f.PSR.Privilege != prev {
		f.SwapStacks()
	}
}

// SSP returns the supervisor stack pointer, wherever it currently is.
func (f *File) SSP() isa.Word {
	if f.PSR.Privilege == isa.Supervisor {
		return f.R[isa.SP]
	}
	return f.BSP
}

// USP returns the user stack pointer, wherever it currently is.
func (f *File) USP() isa.Word {
	if f.PSR.Privilege == isa.User {
		return f.R[isa.SP]
	}
	return f.BSP
}

// Running returns true if the run bit of the MCR is set.
func (f *File) Running() bool {
	return f.MCR&RunBit == RunBit
}
