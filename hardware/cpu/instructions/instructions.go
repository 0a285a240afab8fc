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

// Package instructions decodes and encodes LC-3 instruction words. A decoded
// Instruction carries every field the interpreter needs so that execution
// never has to look at the raw bits again.
package instructions

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Instruction is a decoded instruction word. Fields not used by the opcode
// are zero.
type Instruction struct {
	Word   isa.Word
	Opcode Opcode

	// destination register. for stores this is the source register
	DR isa.Reg

	// first source register. for JMP, JSRR, LDR and STR this is the base
	// register
	SR1 isa.Reg
	SR2 isa.Reg

	// Immediate is true for the imm5 forms of ADD and AND and for JSR (as
	// opposed to JSRR)
	Immediate bool

	// sign extended imm5 or PC/base offset
	Offset isa.SignedWord

	// branch mask
	Mask isa.ConditionCode

	// zero extended trap vector
	TrapVect isa.Word
}

// Defn returns the definition for the instruction's opcode.
func (ins Instruction) Defn() Definition {
	return Definitions[ins.Opcode]
}

// Decode an instruction word.
func Decode(w isa.Word) Instruction {
	ins := Instruction{
		Word:   w,
		Opcode: Opcode(w >> 12),
	}

	dr := isa.Reg((w >> 9) & 7)
	sr1 := isa.Reg((w >> 6) & 7)

	switch ins.Opcode {
	case BR:
		ins.Mask = isa.ConditionCode((w >> 9) & 7)
		ins.Offset = isa.SignExtend(w, 9)
	case ADD, AND:
		ins.DR = dr
		ins.SR1 = sr1
		if w&0x20 == 0x20 {
			ins.Immediate = true
			ins.Offset = isa.SignExtend(w, 5)
		} else {
			ins.SR2 = isa.Reg(w & 7)
		}
	case LD, ST, LDI, STI, LEA:
		ins.DR = dr
		ins.Offset = isa.SignExtend(w, 9)
	case LDR, STR:
		ins.DR = dr
		ins.SR1 = sr1
		ins.Offset = isa.SignExtend(w, 6)
	case JSR:
		if w&0x0800 == 0x0800 {
			ins.Immediate = true
			ins.Offset = isa.SignExtend(w, 11)
		} else {
			ins.SR1 = sr1
		}
	case NOT:
		ins.DR = dr
		ins.SR1 = sr1
	case JMP:
		ins.SR1 = sr1
	case TRAP:
		ins.TrapVect = isa.ZeroExtend(w, 8)
	}

	return ins
}

// Encode returns the instruction word for the fields of the instruction. The
// Word field is ignored.
//
// Fields are truncated to their encoded width. Unused bits are zero, so for
// an instruction produced by Decode() the result may differ from the
// original word in those bits.
func (ins Instruction) Encode() isa.Word {
	w := isa.Word(ins.Opcode&0xf) << 12
	dr := isa.Word(ins.DR&7) << 9
	sr1 := isa.Word(ins.SR1&7) << 6
	off := func(bits uint) isa.Word {
		return isa.ZeroExtend(isa.Word(ins.Offset), bits)
	}

	switch ins.Opcode {
	case BR:
		w |= isa.Word(ins.Mask&isa.NZP)<<9 | off(9)
	case ADD, AND:
		w |= dr | sr1
		if ins.Immediate {
			w |= 0x20 | off(5)
		} else {
			w |= isa.Word(ins.SR2 & 7)
		}
	case LD, ST, LDI, STI, LEA:
		w |= dr | off(9)
	case LDR, STR:
		w |= dr | sr1 | off(6)
	case JSR:
		if ins.Immediate {
			w |= 0x0800 | off(11)
		} else {
			w |= sr1
		}
	case NOT:
		w |= dr | sr1 | 0x3f
	case JMP:
		w |= sr1
	case TRAP:
		w |= isa.ZeroExtend(ins.TrapVect, 8)
	}

	return w
}

// String returns the instruction in assembly language form. Offsets are shown
// as signed decimal values relative to the incremented PC.
func (ins Instruction) String() string {
	switch ins.Opcode {
	case BR:
		if ins.Mask == 0 {
			return "NOP"
		}
		m := ins.Mask.String()
		if ins.Mask == isa.NZP {
			m = ""
		}
		return fmt.Sprintf("BR%s #%d", m, ins.Offset)
	case ADD, AND:
		if ins.Immediate {
			return fmt.Sprintf("%s %s, %s, #%d", ins.Opcode, ins.DR, ins.SR1, ins.Offset)
		}
		return fmt.Sprintf("%s %s, %s, %s", ins.Opcode, ins.DR, ins.SR1, ins.SR2)
	case LD, ST, LDI, STI, LEA:
		return fmt.Sprintf("%s %s, #%d", ins.Opcode, ins.DR, ins.Offset)
	case LDR, STR:
		return fmt.Sprintf("%s %s, %s, #%d", ins.Opcode, ins.DR, ins.SR1, ins.Offset)
	case JSR:
		if ins.Immediate {
			return fmt.Sprintf("JSR #%d", ins.Offset)
		}
		return fmt.Sprintf("JSRR %s", ins.SR1)
	case NOT:
		return fmt.Sprintf("NOT %s, %s", ins.DR, ins.SR1)
	case JMP:
		if ins.SR1 == isa.Link {
			return "RET"
		}
		return fmt.Sprintf("JMP %s", ins.SR1)
	case RTI:
		return "RTI"
	case TRAP:
		if n, ok := trapNames[ins.TrapVect]; ok {
			return n
		}
		return fmt.Sprintf("TRAP x%02X", uint16(ins.TrapVect))
	}
	return fmt.Sprintf(".FILL x%04X", uint16(ins.Word))
}

// Target returns the effective address of a PC-relative instruction located
// at addr. The second return value is false if the instruction is not PC
// relative.
func (ins Instruction) Target(addr isa.Addr) (isa.Addr, bool) {
	switch ins.Opcode {
	case BR, LD, ST, LDI, STI, LEA:
		return (addr + 1).Offset(ins.Offset), true
	case JSR:
		if ins.Immediate {
			return (addr + 1).Offset(ins.Offset), true
		}
	}
	return 0, false
}

// Disassemble returns the instruction as it would be shown at addr. PC
// relative offsets are replaced by the target address.
func Disassemble(addr isa.Addr, w isa.Word) string {
	ins := Decode(w)
	t, ok := ins.Target(addr)
	if !ok || (ins.Opcode == BR && ins.Mask == 0) {
		return ins.String()
	}
	switch ins.Opcode {
	case BR:
		m := ins.Mask.String()
		if ins.Mask == isa.NZP {
			m = ""
		}
		return fmt.Sprintf("BR%s %s", m, t)
	case JSR:
		return fmt.Sprintf("JSR %s", t)
	}
	return fmt.Sprintf("%s %s, %s", ins.Opcode, ins.DR, t)
}

var trapNames = map[isa.Word]string{
	0x20: "GETC",
	0x21: "OUT",
	0x22: "PUTS",
	0x23: "IN",
	0x24: "PUTSP",
	0x25: "HALT",
}
