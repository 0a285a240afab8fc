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

package assembler

import (
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/isa"
)

func (p *Program) immediate(v int, bits uint) isa.SignedWord {
	if !fits(v, bits) {
		p.fail(curated.Errorf(ImmediateRange, v, p.pc))
	}
	return isa.SignedWord(v)
}

// ADD dr, sr1, sr2
func (p *Program) ADD(dr, sr1, sr2 isa.Reg) {
	p.emitIns(instructions.Instruction{Opcode: instructions.ADD, DR: dr, SR1: sr1, SR2: sr2})
}

// ADDi dr, sr1, #imm5
func (p *Program) ADDi(dr, sr1 isa.Reg, imm int) {
	p.emitIns(instructions.Instruction{Opcode: instructions.ADD, DR: dr, SR1: sr1, Immediate: true, Offset: p.immediate(imm, 5)})
}

// AND dr, sr1, sr2
func (p *Program) AND(dr, sr1, sr2 isa.Reg) {
	p.emitIns(instructions.Instruction{Opcode: instructions.AND, DR: dr, SR1: sr1, SR2: sr2})
}

// ANDi dr, sr1, #imm5
func (p *Program) ANDi(dr, sr1 isa.Reg, imm int) {
	p.emitIns(instructions.Instruction{Opcode: instructions.AND, DR: dr, SR1: sr1, Immediate: true, Offset: p.immediate(imm, 5)})
}

// NOT dr, sr
func (p *Program) NOT(dr, sr isa.Reg) {
	p.emitIns(instructions.Instruction{Opcode: instructions.NOT, DR: dr, SR1: sr})
}

// BR branches to the label if any of the condition codes in the mask is set.
func (p *Program) BR(mask isa.ConditionCode, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.BR, Mask: mask}, label, 9)
}

// JMP baseR
func (p *Program) JMP(base isa.Reg) {
	p.emitIns(instructions.Instruction{Opcode: instructions.JMP, SR1: base})
}

// RET is JMP R7
func (p *Program) RET() {
	p.JMP(isa.Link)
}

// JSR label
func (p *Program) JSR(label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.JSR, Immediate: true}, label, 11)
}

// JSRR baseR
func (p *Program) JSRR(base isa.Reg) {
	p.emitIns(instructions.Instruction{Opcode: instructions.JSR, SR1: base})
}

// LD dr, label
func (p *Program) LD(dr isa.Reg, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.LD, DR: dr}, label, 9)
}

// LDI dr, label
func (p *Program) LDI(dr isa.Reg, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.LDI, DR: dr}, label, 9)
}

// LDR dr, baseR, #offset6
func (p *Program) LDR(dr, base isa.Reg, offset int) {
	p.emitIns(instructions.Instruction{Opcode: instructions.LDR, DR: dr, SR1: base, Offset: p.immediate(offset, 6)})
}

// LEA dr, label
func (p *Program) LEA(dr isa.Reg, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.LEA, DR: dr}, label, 9)
}

// ST sr, label
func (p *Program) ST(sr isa.Reg, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.ST, DR: sr}, label, 9)
}

// STI sr, label
func (p *Program) STI(sr isa.Reg, label string) {
	p.emitRef(instructions.Instruction{Opcode: instructions.STI, DR: sr}, label, 9)
}

// STR sr, baseR, #offset6
func (p *Program) STR(sr, base isa.Reg, offset int) {
	p.emitIns(instructions.Instruction{Opcode: instructions.STR, DR: sr, SR1: base, Offset: p.immediate(offset, 6)})
}

// TRAP trapvect8
func (p *Program) TRAP(vect isa.Word) {
	p.emitIns(instructions.Instruction{Opcode: instructions.TRAP, TrapVect: vect & 0xff})
}

// RTI
func (p *Program) RTI() {
	p.emitIns(instructions.Instruction{Opcode: instructions.RTI})
}

// LDc loads a constant from the literal pool.
func (p *Program) LDc(dr isa.Reg, v isa.Word) {
	p.LD(dr, p.Const(v))
}

// LDIc loads the word at an address held in the literal pool.
func (p *Program) LDIc(dr isa.Reg, addr isa.Addr) {
	p.LDI(dr, p.Const(isa.Word(addr)))
}

// STIc stores to an address held in the literal pool.
func (p *Program) STIc(sr isa.Reg, addr isa.Addr) {
	p.STI(sr, p.Const(isa.Word(addr)))
}

// Push the register onto the stack addressed by R6.
func (p *Program) Push(r isa.Reg) {
	p.ADDi(isa.SP, isa.SP, -1)
	p.STR(r, isa.SP, 0)
}

// Pop the register from the stack addressed by R6.
func (p *Program) Pop(r isa.Reg) {
	p.LDR(r, isa.SP, 0)
	p.ADDi(isa.SP, isa.SP, 1)
}

// Clear sets the register to zero.
func (p *Program) Clear(r isa.Reg) {
	p.ANDi(r, r, 0)
}
