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

package debugger

import (
	"context"
	"sync/atomic"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware"
	"github.com/jetsetilly/lc3sim/hardware/cpu/execution"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
	"github.com/jetsetilly/lc3sim/logger"
)

// Register indexes used by ReadRegister() and WriteRegister(). Indexes 0 to
// 7 are the general purpose registers.
const (
	RegPC  = 8
	RegPSR = 9
	RegMCR = 10

	NumRegisters = 11
)

// Debugger controls the execution of a Machine.
type Debugger struct {
	m *hardware.Machine

	breakpoints breakpoints
	watches     watches

	// set by Cancel() and consumed by RunUntilEvent()
	cancel atomic.Bool

	// the result of the most recent step
	last execution.Result

	// the access that triggered the most recent watchpoint event
	hit memory.Access

	// optional console for the TYPE command and for output after each
	// command
	Keyboard Keyboard
	Display  Display
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
func NewDebugger(m *hardware.Machine) *Debugger {
	return &Debugger{
		m: m,
	}
}

// Machine returns the machine being debugged.
func (dbg *Debugger) Machine() *hardware.Machine {
	return dbg.m
}

// LastResult returns the result of the most recent step.
func (dbg *Debugger) LastResult() execution.Result {
	return dbg.last
}

// LastWatch returns the access that caused the most recent watchpoint
// event.
func (dbg *Debugger) LastWatch() memory.Access {
	return dbg.hit
}

// StepOnce executes a single instruction, or services a single interrupt.
func (dbg *Debugger) StepOnce() execution.Result {
	dbg.last = dbg.m.Step()
	return dbg.last
}

// Cancel stops the current call to RunUntilEvent(). If there is no call in
// progress then the next call returns immediately. Safe to call from any
// goroutine.
func (dbg *Debugger) Cancel() {
	dbg.cancel.Store(true)
}

// RunUntilEvent steps the machine until it halts, reaches a breakpoint,
// makes an access to a watched address or is cancelled. Cancellation of the
// context is checked every hardware.PerformanceBrake steps.
//
// Breakpoints are checked after each step so a breakpoint at the PC where
// the run starts is not triggered until the PC returns to it.
func (dbg *Debugger) RunUntilEvent(ctx context.Context) govern.Event {
	var brake int

	for {
		if dbg.cancel.Swap(false) {
			return govern.EventCancelled
		}

		brake++
		if brake >= hardware.PerformanceBrake {
			brake = 0
			if ctx.Err() != nil {
				return govern.EventCancelled
			}
		}

		res := dbg.StepOnce()

		// a watched access is reported even if the step also halted the
		// machine. the halt is reported by the next call
		if dbg.watches.check(dbg.m.Mem.Log.Accesses(), &dbg.hit) {
			logger.Logf(dbg.m.Instance, "debugger", "watch: %s", dbg.hit)
			return govern.EventWatchpoint
		}

		if res.Outcome == execution.Halted {
			return govern.EventHalt
		}

		if dbg.breakpoints.contains(dbg.m.Regs.PC) {
			return govern.EventBreakpoint
		}
	}
}

// ReadRegister returns the value of the indexed register.
func (dbg *Debugger) ReadRegister(idx int) (isa.Word, error) {
	r := dbg.m.Regs
	switch {
	case idx >= 0 && idx < isa.NumRegisters:
		return r.R[idx], nil
	case idx == RegPC:
		return isa.Word(r.PC), nil
	case idx == RegPSR:
		return r.PSR.Value(), nil
	case idx == RegMCR:
		return r.MCR, nil
	}
	return 0, curated.Errorf(RegisterIndexError, idx)
}

// WriteRegister sets the indexed register. Writing to a general purpose
// register does not change the condition codes. Writing to the PSR
// exchanges the stack pointers if the privilege mode changes.
func (dbg *Debugger) WriteRegister(idx int, w isa.Word) error {
	r := dbg.m.Regs
	switch {
	case idx >= 0 && idx < isa.NumRegisters:
		r.R[idx] = w
	case idx == RegPC:
		r.PC = isa.Addr(w)
	case idx == RegPSR:
		r.LoadPSR(w)
	case idx == RegMCR:
		r.MCR = w
	default:
		return curated.Errorf(RegisterIndexError, idx)
	}
	return nil
}

func checkAddr(addr int) error {
	if addr < 0 || addr > 0xffff {
		return curated.Errorf(AddressRangeError, addr)
	}
	return nil
}

// ReadMemory returns the word at the address. Mapped registers are read
// without side effects.
func (dbg *Debugger) ReadMemory(addr int) (isa.Word, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	return dbg.m.Mem.Peek(isa.Addr(addr)), nil
}

// WriteMemory sets the word at the address. Writing to a mapped register has
// the same effect as a privileged write by the CPU.
func (dbg *Debugger) WriteMemory(addr int, w isa.Word) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	dbg.m.Mem.Poke(isa.Addr(addr), w)
	return nil
}
