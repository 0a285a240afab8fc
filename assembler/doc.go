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

// Package assembler builds LC-3 memory images from Go code. It is used to
// create the OS ROM and the programs used in tests.
//
// Each instruction is a method of the Program type. Operands that refer to an
// address are given as label names and resolved when Assemble() is called:
//
//	p := assembler.NewProgram("hello")
//	p.Orig(0x3000)
//	p.LEA(isa.R0, "msg")
//	p.TRAP(0x22)
//	p.TRAP(0x25)
//	p.Label("msg")
//	p.Stringz("hello")
//	img, err := p.Assemble()
//
// Constants that do not fit in an immediate field can be placed in a literal
// pool with Const(). The pool is emitted at the next call to Pool(), which
// should be placed where execution can not reach, for example after a RET.
// The LDc(), LDIc() and STIc() functions are shorthand for loading a
// constant, or reading and writing through an address held in the pool.
//
// Errors are collected and the first one is returned by Assemble().
package assembler
