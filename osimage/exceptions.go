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

package osimage

import (
	"github.com/jetsetilly/lc3sim/assembler"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
)

// print the message and halt. if the machine is restarted the handler returns
func fatal(p *assembler.Program, label string, msg string) {
	p.Label(label)
	p.Push(isa.R0)
	p.Push(isa.R7)
	p.LEA(isa.R0, label+"_msg")
	p.TRAP(PUTS)
	p.TRAP(HALT)
	p.Pop(isa.R7)
	p.Pop(isa.R0)
	p.RTI()
	p.Label(label + "_msg")
	p.Stringz(msg)
	p.Pool()
}

func exceptions(p *assembler.Program) {
	fatal(p, "pmv", "\nPrivilege mode violation\n")
	fatal(p, "ill", "\nIllegal opcode\n")
	fatal(p, "bad_trap", "\nBad trap\n")

	// the saved PC is the address after the faulting instruction so
	// returning skips it
	p.Label("acv")
	p.Push(isa.R0)
	p.Push(isa.R7)
	p.LEA(isa.R0, "acv_msg")
	p.TRAP(PUTS)
	p.LDIc(isa.R0, addresses.OSErrorOnACV)
	p.BR(isa.Z, "acv_return")
	p.TRAP(HALT)
	p.Label("acv_return")
	p.Pop(isa.R7)
	p.Pop(isa.R0)
	p.RTI()
	p.Label("acv_msg")
	p.Stringz("\nAccess control violation\n")
	p.Pool()

	p.Label("isr")
	p.RTI()
	p.Label("isr_unused")
	p.RTI()
}
