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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/test"
)

func TestDecodeAddImmediate(t *testing.T) {
	ins := instructions.Decode(0x127f)
	test.ExpectEquality(t, ins.Opcode, instructions.ADD)
	test.ExpectEquality(t, ins.DR, isa.R1)
	test.ExpectEquality(t, ins.SR1, isa.R1)
	test.ExpectSuccess(t, ins.Immediate)
	test.ExpectEquality(t, ins.Offset, isa.SignedWord(-1))
	test.ExpectEquality(t, ins.String(), "ADD R1, R1, #-1")
}

func TestDecodeBranch(t *testing.T) {
	ins := instructions.Decode(0x0fff)
	test.ExpectEquality(t, ins.Opcode, instructions.BR)
	test.ExpectEquality(t, ins.Mask, isa.NZP)
	test.ExpectEquality(t, ins.Offset, isa.SignedWord(-1))
	test.ExpectEquality(t, ins.String(), "BR #-1")
	test.ExpectEquality(t, instructions.Disassemble(0x3000, 0x0fff), "BR x3000")

	ins = instructions.Decode(0x0402)
	test.ExpectEquality(t, ins.Mask, isa.Z)
	test.ExpectEquality(t, ins.String(), "BRz #2")

	test.ExpectEquality(t, instructions.Decode(0x0000).String(), "NOP")
}

func TestDecodeJSR(t *testing.T) {
	ins := instructions.Decode(0x4802)
	test.ExpectSuccess(t, ins.Immediate)
	test.ExpectEquality(t, ins.Offset, isa.SignedWord(2))

	ins = instructions.Decode(0x4080)
	test.ExpectFailure(t, ins.Immediate)
	test.ExpectEquality(t, ins.SR1, isa.R2)
	test.ExpectEquality(t, ins.String(), "JSRR R2")
}

func TestDecodeMisc(t *testing.T) {
	test.ExpectEquality(t, instructions.Decode(0xc1c0).String(), "RET")
	test.ExpectEquality(t, instructions.Decode(0x8000).String(), "RTI")
	test.ExpectEquality(t, instructions.Decode(0xf025).String(), "HALT")
	test.ExpectEquality(t, instructions.Decode(0xf041).String(), "TRAP x41")
	test.ExpectEquality(t, instructions.Decode(0xd000).Defn().Effect, instructions.Illegal)
	test.ExpectEquality(t, instructions.Decode(0x6f41).String(), "LDR R7, R5, #1")
	test.ExpectEquality(t, instructions.Disassemble(0x3000, 0xe5fe), "LEA R2, x2FFF")
}

func TestEncode(t *testing.T) {
	// every word with no unused bits set survives a round trip
	words := []isa.Word{
		0x127f, 0x1042, 0x5020, 0x0e05, 0x2202, 0x3401, 0x4802, 0x40c0, 0x6f41,
		0x7f7f, 0x8000, 0x987f, 0xa3ff, 0xb000, 0xc1c0, 0xe1fe, 0xf025,
	}
	for _, w := range words {
		test.ExpectEquality(t, instructions.Decode(w).Encode(), w)
	}

	ins := instructions.Instruction{
		Opcode:    instructions.AND,
		DR:        isa.R3,
		SR1:       isa.R3,
		Immediate: true,
		Offset:    0,
	}
	test.ExpectEquality(t, ins.Encode(), isa.Word(0x56e0))
}
