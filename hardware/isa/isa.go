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

// Package isa defines the basic value types of the LC-3 architecture. Every
// other hardware package is built on these types.
package isa

import "fmt"

// Word is an unsigned 16-bit value. The LC-3 is word addressed and every
// register and memory cell holds a Word.
type Word uint16

func (w Word) String() string {
	return fmt.Sprintf("%#04x", uint16(w))
}

// Signed returns the two's complement interpretation of the Word.
func (w Word) Signed() SignedWord {
	return SignedWord(int16(w))
}

// SignedWord is the two's complement interpretation of a Word.
type SignedWord int16

// Addr is a 16-bit memory address. It has the same representation as Word but
// is a distinct type so that addresses and data are not confused.
type Addr uint16

func (a Addr) String() string {
	return fmt.Sprintf("x%04X", uint16(a))
}

// Offset returns the address plus the signed offset, wrapping at the end of
// the address space.
func (a Addr) Offset(o SignedWord) Addr {
	return Addr(uint16(a) + uint16(o))
}

// Reg identifies one of the eight general purpose registers.
type Reg uint8

// List of general purpose registers.
const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

// NumRegisters is the number of general purpose registers.
const NumRegisters = 8

// the stack pointer and link register have conventional uses
const (
	SP   = R6
	Link = R7
)

func (r Reg) String() string {
	return fmt.Sprintf("R%d", uint8(r))
}

// SignExtend interprets the low bits of the value as a two's complement number
// of the specified width.
func SignExtend(v Word, bits uint) SignedWord {
	shift := 16 - bits
	return SignedWord(int16(v<<shift) >> shift)
}

// ZeroExtend returns the low bits of the value.
func ZeroExtend(v Word, bits uint) Word {
	return v & (1<<bits - 1)
}
