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

// Package cpu implements the LC-3 instruction interpreter.
//
// The CPU executes one instruction per call to Step(). Before fetching, the
// interrupt controller is asked for the highest priority source that can
// interrupt the processor at its current priority. If there is one, the
// interrupt is serviced instead and the step ends with the PC at the service
// routine.
//
// Exceptions (privilege mode violation, illegal opcode and access control
// violation) are delivered through the interrupt vector table in the same
// way as interrupts but without changing the processor priority. An
// instruction that causes an exception does not change any register.
//
// The register file is owned by the machine and shared with the
// memory-mapped register layer, which is how the PSR, BSP and MCR registers
// are visible to programs.
package cpu
