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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/cpu/execution"
	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/cpu/registers"
	"github.com/jetsetilly/lc3sim/hardware/instance"
	"github.com/jetsetilly/lc3sim/hardware/interrupts"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
)

// Acknowledger is told when an interrupt source has been serviced so that the
// peripheral can reset its interrupt flag.
type Acknowledger interface {
	Acknowledge(s interrupts.Source)
}

// CPU implements the LC-3 processor. The register file is shared with the
// memory-mapped register layer.
type CPU struct {
	instance *instance.Instance

	Regs *registers.File

	mem  memory.CPUBus
	ints *interrupts.Controller
	ack  Acknowledger

	// result of the most recent call to Step()
	LastResult execution.Result
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// instance can be nil, in which case the default preferences apply.
func NewCPU(instance *instance.Instance, regs *registers.File, mem memory.CPUBus, ints *interrupts.Controller, ack Acknowledger) *CPU {
	return &CPU{
		instance: instance,
		Regs:     regs,
		mem:      mem,
		ints:     ints,
		ack:      ack,
	}
}

func (mc *CPU) String() string {
	return mc.Regs.String()
}

// Reset the register file and load the PC with the entry point. If the
// randomState preference is set the general purpose registers are given
// random values.
func (mc *CPU) Reset(entry isa.Addr) {
	mc.LastResult.Reset()
	mc.Regs.Reset(entry)

	if mc.instance != nil && mc.instance.Prefs.RandomState.Get().(bool) {
		var r [isa.NumRegisters]uint16
		mc.instance.Random.Fill(r[:])
		for i := range r {
			mc.Regs.R[i] = isa.Word(r[i])
		}
	}
}

func (mc *CPU) leaSetsCC() bool {
	if mc.instance == nil {
		return true
	}
	return mc.instance.Prefs.LEASetsCC.Get().(bool)
}

// Step services a pending interrupt or executes one instruction. The result
// is also stored in LastResult.
func (mc *CPU) Step() execution.Result {
	res := &mc.LastResult
	res.Reset()
	res.Address = mc.Regs.PC

	if !mc.Regs.Running() {
		res.Outcome = execution.Halted
		return *res
	}

	if s, ok := mc.ints.Select(mc.Regs.PSR.Priority); ok {
		mc.interrupt(s)
		res.Outcome = execution.Interrupted
		res.Vector = s.Vector()
		return *res
	}

	w, err := mc.mem.Fetch(mc.Regs.PC, mc.Regs.PSR.Privilege)
	mc.Regs.PC++
	if err != nil {
		mc.exception(execution.ACV)
		return *res
	}

	res.Instruction = instructions.Decode(w)
	res.Fetched = true

	if exc, ok := mc.execute(res.Instruction); !ok {
		mc.exception(exc)
		return *res
	}

	if mc.Regs.Running() {
		res.Outcome = execution.Executed
	} else {
		res.Outcome = execution.Halted
	}

	return *res
}

func (mc *CPU) push(v isa.Word) {
	mc.Regs.R[isa.SP]--
	mc.mem.WriteUnchecked(isa.Addr(mc.Regs.R[isa.SP]), v)
}

func (mc *CPU) pop() isa.Word {
	v := mc.mem.ReadUnchecked(isa.Addr(mc.Regs.R[isa.SP]))
	mc.Regs.R[isa.SP]++
	return v
}

// enter supervisor mode and save the PSR and PC on the supervisor stack.
// the PSR pushed is the value before the mode change
func (mc *CPU) enter() {
	psr := mc.Regs.PSR.Value()
	mc.Regs.EnterSupervisor()
	mc.push(psr)
	mc.push(isa.Word(mc.Regs.PC))
}

func (mc *CPU) exception(exc execution.Exception) {
	mc.enter()
	mc.Regs.PC = isa.Addr(mc.mem.ReadUnchecked(memorymap.Vector(isa.Word(exc))))
	mc.LastResult.Outcome = execution.ExceptionTaken
	mc.LastResult.Exception = exc
}

func (mc *CPU) interrupt(s interrupts.Source) {
	mc.enter()
	mc.Regs.PSR.Priority = s.Priority()
	mc.ints.Clear(s)
	if mc.ack != nil {
		mc.ack.Acknowledge(s)
	}
	mc.Regs.PC = isa.Addr(mc.mem.ReadUnchecked(memorymap.Vector(s.Vector())))
}

func (mc *CPU) read(addr isa.Addr) (isa.Word, bool) {
	v, err := mc.mem.Read(addr, mc.Regs.PSR.Privilege)
	return v, err == nil
}

func (mc *CPU) write(addr isa.Addr, v isa.Word) bool {
	return mc.mem.Write(addr, v, mc.Regs.PSR.Privilege) == nil
}

// execute the decoded instruction. the PC has already been incremented. if
// the instruction raises an exception no register has been changed and the
// exception is returned with a false value
func (mc *CPU) execute(ins instructions.Instruction) (execution.Exception, bool) {
	r := mc.Regs
	pc := r.PC

	switch ins.Opcode {
	case instructions.ADD, instructions.AND:
		a := r.R[ins.SR1]
		b := r.R[ins.SR2]
		if ins.Immediate {
			b = isa.Word(ins.Offset)
		}
		if ins.Opcode == instructions.ADD {
			r.Write(ins.DR, a+b)
		} else {
			r.Write(ins.DR, a&b)
		}

	case instructions.NOT:
		r.Write(ins.DR, ^r.R[ins.SR1])

	case instructions.BR:
		if ins.Mask&r.PSR.CC != 0 {
			r.PC = pc.Offset(ins.Offset)
		}

	case instructions.JMP:
		r.PC = isa.Addr(r.R[ins.SR1])

	case instructions.JSR:
		t := isa.Addr(r.R[ins.SR1])
		if ins.Immediate {
			t = pc.Offset(ins.Offset)
		}
		r.R[isa.Link] = isa.Word(pc)
		r.PC = t

	case instructions.LD:
		v, ok := mc.read(pc.Offset(ins.Offset))
		if !ok {
			return execution.ACV, false
		}
		r.Write(ins.DR, v)

	case instructions.LDI:
		p, ok := mc.read(pc.Offset(ins.Offset))
		if !ok {
			return execution.ACV, false
		}
		v, ok := mc.read(isa.Addr(p))
		if !ok {
			return execution.ACV, false
		}
		r.Write(ins.DR, v)

	case instructions.LDR:
		v, ok := mc.read(isa.Addr(r.R[ins.SR1]).Offset(ins.Offset))
		if !ok {
			return execution.ACV, false
		}
		r.Write(ins.DR, v)

	case instructions.LEA:
		a := isa.Word(pc.Offset(ins.Offset))
		if mc.leaSetsCC() {
			r.Write(ins.DR, a)
		} else {
			r.R[ins.DR] = a
		}

	case instructions.ST:
		if !mc.write(pc.Offset(ins.Offset), r.R[ins.DR]) {
			return execution.ACV, false
		}

	case instructions.STI:
		p, ok := mc.read(pc.Offset(ins.Offset))
		if !ok {
			return execution.ACV, false
		}
		if !mc.write(isa.Addr(p), r.R[ins.DR]) {
			return execution.ACV, false
		}

	case instructions.STR:
		if !mc.write(isa.Addr(r.R[ins.SR1]).Offset(ins.Offset), r.R[ins.DR]) {
			return execution.ACV, false
		}

	case instructions.TRAP:
		r.R[isa.Link] = isa.Word(pc)
		mc.enter()
		r.PC = isa.Addr(mc.mem.ReadUnchecked(isa.Addr(ins.TrapVect)))

	case instructions.RTI:
		if r.PSR.Privilege == isa.User {
			return execution.PMV, false
		}
		r.PC = isa.Addr(mc.pop())
		r.LoadPSR(mc.pop())

	case instructions.RES:
		return execution.ILL, false

	default:
		panic(fmt.Sprintf("cpu: unhandled opcode %v", ins.Opcode))
	}

	return 0, true
}
