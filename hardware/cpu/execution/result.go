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

// Package execution tracks the result of a single step of the CPU.
package execution

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Outcome is the result of a step.
type Outcome int

// List of valid Outcome values.
const (
	// the instruction was fetched and executed
	Executed Outcome = iota

	// the machine is not running. either the step was not attempted or the
	// instruction cleared the run bit of the MCR
	Halted

	// the instruction caused an exception (PMV, ILL or ACV) and the PC is now
	// at the handler
	ExceptionTaken

	// an interrupt was serviced instead of fetching an instruction. the PC is
	// now at the service routine
	Interrupted
)

func (o Outcome) String() string {
	switch o {
	case Executed:
		return "executed"
	case Halted:
		return "halted"
	case ExceptionTaken:
		return "exception"
	case Interrupted:
		return "interrupted"
	}
	return "unknown outcome"
}

// Exception identifies one of the three exceptions. The value is the vector.
type Exception isa.Word

// List of exception vectors.
const (
	PMV Exception = 0x00
	ILL Exception = 0x01
	ACV Exception = 0x02
)

func (e Exception) String() string {
	switch e {
	case PMV:
		return "privilege mode violation"
	case ILL:
		return "illegal opcode"
	case ACV:
		return "access control violation"
	}
	return fmt.Sprintf("exception %#02x", uint16(e))
}

// Result records everything interesting about the most recent step. The
// debugger uses it for its step display.
type Result struct {
	Outcome Outcome

	// address the instruction was fetched from. for an interrupted step this
	// is the PC at which the interrupt was taken
	Address isa.Addr

	// the decoded instruction. not valid for an interrupted step or when the
	// fetch itself raised an exception
	Instruction instructions.Instruction
	Fetched     bool

	// valid when Outcome is ExceptionTaken
	Exception Exception

	// valid when Outcome is Interrupted
	Vector isa.Word
}

// Reset the result to its empty state.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	switch r.Outcome {
	case Interrupted:
		return fmt.Sprintf("%s interrupt vector %#02x", r.Address, uint16(r.Vector))
	case ExceptionTaken:
		if r.Fetched {
			return fmt.Sprintf("%s %s (%s)", r.Address, instructions.Disassemble(r.Address, r.Instruction.Word), r.Exception)
		}
		return fmt.Sprintf("%s (%s)", r.Address, r.Exception)
	}
	if !r.Fetched {
		return r.Outcome.String()
	}
	return fmt.Sprintf("%s %s", r.Address, instructions.Disassemble(r.Address, r.Instruction.Word))
}
