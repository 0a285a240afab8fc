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

// Package osimage assembles the OS ROM. The ROM contains the trap vector
// table, the interrupt vector table, the boot code, the configuration words
// and the service routines for every trap.
//
// The boot code at 0x0200 loads the supervisor stack pointer from the
// configuration word at 0x0602, sets the user stack to 0xfe00 and enters the
// user program at the address in the configuration word at 0x0600 by
// executing RTI with a user mode PSR on the stack.
//
// Trap routines take their arguments in R0, R1 and R2 and return their
// result in R0. Every other register is preserved. Traps that act on a pin,
// channel or timer return 0xffff in R0 if the number is out of range.
// Because RTI restores the caller's PSR, the condition codes after a trap are
// those from before the trap. Programs should test R0 explicitly.
package osimage
