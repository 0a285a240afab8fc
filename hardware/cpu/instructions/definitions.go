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

package instructions

import "fmt"

// Opcode is the top four bits of an instruction word.
type Opcode uint8

// List of opcodes, in encoding order.
const (
	BR Opcode = iota
	ADD
	LD
	ST
	JSR
	AND
	LDR
	STR
	RTI
	NOT
	LDI
	STI
	JMP
	RES
	LEA
	TRAP
)

// Definition describes each opcode in the instruction set.
type Definition struct {
	Opcode   Opcode
	Mnemonic string
	Effect   Category

	// instruction writes a general purpose register and so sets the
	// condition codes. LEA is a special case and is decided at execution
	// time
	SetsCC bool

	// instruction can only be executed in supervisor mode
	Privileged bool
}

func (defn Definition) String() string {
	return fmt.Sprintf("%x %s [effect=%s cc=%t privileged=%t]", uint8(defn.Opcode), defn.Mnemonic, defn.Effect, defn.SetsCC, defn.Privileged)
}

// Definitions is indexed by Opcode.
var Definitions = [16]Definition{
	{Opcode: BR, Mnemonic: "BR", Effect: Flow},
	{Opcode: ADD, Mnemonic: "ADD", Effect: Operate, SetsCC: true},
	{Opcode: LD, Mnemonic: "LD", Effect: Read, SetsCC: true},
	{Opcode: ST, Mnemonic: "ST", Effect: Write},
	{Opcode: JSR, Mnemonic: "JSR", Effect: Subroutine},
	{Opcode: AND, Mnemonic: "AND", Effect: Operate, SetsCC: true},
	{Opcode: LDR, Mnemonic: "LDR", Effect: Read, SetsCC: true},
	{Opcode: STR, Mnemonic: "STR", Effect: Write},
	{Opcode: RTI, Mnemonic: "RTI", Effect: Interrupt, Privileged: true},
	{Opcode: NOT, Mnemonic: "NOT", Effect: Operate, SetsCC: true},
	{Opcode: LDI, Mnemonic: "LDI", Effect: Read, SetsCC: true},
	{Opcode: STI, Mnemonic: "STI", Effect: Write},
	{Opcode: JMP, Mnemonic: "JMP", Effect: Flow},
	{Opcode: RES, Mnemonic: "RES", Effect: Illegal},
	{Opcode: LEA, Mnemonic: "LEA", Effect: Operate},
	{Opcode: TRAP, Mnemonic: "TRAP", Effect: Interrupt},
}

func (op Opcode) String() string {
	return Definitions[op&0xf].Mnemonic
}
