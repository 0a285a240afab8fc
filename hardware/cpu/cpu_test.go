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

package cpu_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/lc3sim/hardware/cpu"
	"github.com/jetsetilly/lc3sim/hardware/cpu/execution"
	"github.com/jetsetilly/lc3sim/hardware/cpu/registers"
	"github.com/jetsetilly/lc3sim/hardware/instance"
	"github.com/jetsetilly/lc3sim/hardware/interrupts"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
	"github.com/jetsetilly/lc3sim/test"
)

type acknowledged []interrupts.Source

func (a *acknowledged) Acknowledge(s interrupts.Source) {
	*a = append(*a, s)
}

type machine struct {
	regs *registers.File
	mem  *memory.Memory
	ints *interrupts.Controller
	ack  *acknowledged
	mc   *cpu.CPU
}

func newMachine(ins *instance.Instance) *machine {
	m := &machine{
		regs: &registers.File{},
		mem:  memory.NewMemory(),
		ints: interrupts.NewController(),
		ack:  &acknowledged{},
	}
	m.mc = cpu.NewCPU(ins, m.regs, m.mem, m.ints, m.ack)
	m.mc.Reset(0x3000)
	return m
}

// put the machine into user mode with the supervisor stack at 0x0700 and the
// user stack at 0xfe00
func (m *machine) user() {
	m.regs.R[isa.SP] = 0x0700
	m.regs.BSP = 0xfe00
	m.regs.PSR.Priority = 0
	m.regs.LoadPSR(0x8002)
}

func (m *machine) program(origin isa.Addr, words ...isa.Word) {
	for i, w := range words {
		m.mem.WriteUnchecked(origin+isa.Addr(i), w)
	}
}

func TestAddImmediate(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0x127f)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Executed)
	test.ExpectEquality(t, m.regs.R[1], isa.Word(0xffff))
	test.ExpectEquality(t, m.regs.PSR.CC, isa.N)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x3001))
}

func TestLEA(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0xe400)
	m.mc.Step()
	test.ExpectEquality(t, m.regs.R[2], isa.Word(0x3001))
	test.ExpectEquality(t, m.regs.PSR.CC, isa.P)
}

func TestLEAWithoutCC(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".lc3sim", 0700))

	ins, err := instance.NewInstance(nil, nil)
	test.DemandSuccess(t, err)
	ins.Normalise()
	test.DemandSuccess(t, ins.Prefs.LEASetsCC.Set(false))

	m := newMachine(ins)
	m.program(0x3000, 0xe400)
	m.mc.Step()
	test.ExpectEquality(t, m.regs.R[2], isa.Word(0x3001))
	test.ExpectEquality(t, m.regs.PSR.CC, isa.Z)
}

func TestAccessViolation(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0xa000, 0x0000)
	m.program(0x0102, 0x1234)
	m.user()
	m.regs.R[0] = 0x5555

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.ExceptionTaken)
	test.ExpectEquality(t, res.Exception, execution.ACV)
	test.ExpectEquality(t, m.regs.PSR.Privilege, isa.Supervisor)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x1234))
	test.ExpectEquality(t, m.regs.R[isa.SP], isa.Word(0x06fe))
	test.ExpectEquality(t, m.regs.BSP, isa.Word(0xfe00))

	// faulting instruction has not written its destination
	test.ExpectEquality(t, m.regs.R[0], isa.Word(0x5555))

	// saved PC is the address after the faulting instruction
	test.ExpectEquality(t, m.mem.Peek(0x06fe), isa.Word(0x3001))
	test.ExpectEquality(t, m.mem.Peek(0x06ff), isa.Word(0x8002))

	// priority is unchanged
	test.ExpectEquality(t, m.regs.PSR.Priority, uint8(0))
}

func TestUserStoreViolation(t *testing.T) {
	m := newMachine(nil)

	// ST R0, #-2 at 0x3000 is a store to 0x2fff
	m.program(0x3000, 0x31fe)
	m.program(0x2fff, 0x4444)
	m.user()
	m.regs.R[0] = 0x1111

	res := m.mc.Step()
	test.ExpectEquality(t, res.Exception, execution.ACV)
	test.ExpectEquality(t, m.mem.Peek(0x2fff), isa.Word(0x4444))
}

func TestFetchViolation(t *testing.T) {
	m := newMachine(nil)
	m.user()
	m.regs.PC = 0x0200
	m.program(0x0102, 0x0300)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.ExceptionTaken)
	test.ExpectFailure(t, res.Fetched)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x0300))
	test.ExpectEquality(t, m.mem.Peek(0x06fe), isa.Word(0x0201))
}

func TestRTIInUserMode(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0x8000)
	m.program(0x0100, 0x0400)
	m.user()

	res := m.mc.Step()
	test.ExpectEquality(t, res.Exception, execution.PMV)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x0400))
}

func TestIllegalOpcode(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0xd000)
	m.program(0x0101, 0x0410)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Exception, execution.ILL)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x0410))
}

func TestTrapAndReturn(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0xf025)
	m.program(0x0025, 0x0400)
	m.program(0x0400, 0x5020, 0x8000) // AND R0, R0, #0; RTI
	m.user()
	m.regs.R[0] = 0xffff
	m.regs.PSR.SetCC(0xffff)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Executed)
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x0400))
	test.ExpectEquality(t, m.regs.R[isa.Link], isa.Word(0x3001))
	test.ExpectEquality(t, m.regs.PSR.Privilege, isa.Supervisor)

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PSR.CC, isa.Z)

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x3001))
	test.ExpectEquality(t, m.regs.PSR.Privilege, isa.User)
	test.ExpectEquality(t, m.regs.R[isa.SP], isa.Word(0xfe00))
	test.ExpectEquality(t, m.regs.BSP, isa.Word(0x0700))

	// condition codes are those from before the trap
	test.ExpectEquality(t, m.regs.PSR.CC, isa.N)
}

func TestInterrupt(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0x0fff) // BR #-1
	m.program(0x0188, 0x0500)
	m.user()

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x3000))

	m.ints.SetEnabled(interrupts.Timer0, true)
	m.ints.Raise(interrupts.Timer0)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Interrupted)
	test.ExpectEquality(t, res.Vector, isa.Word(0x88))
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x0500))
	test.ExpectEquality(t, m.regs.PSR.Priority, uint8(2))
	test.ExpectEquality(t, m.regs.PSR.Privilege, isa.Supervisor)
	test.ExpectFailure(t, m.ints.Pending(interrupts.Timer0))
	test.ExpectEquality(t, len(*m.ack), 1)
	test.ExpectEquality(t, (*m.ack)[0], interrupts.Timer0)

	// the saved PSR is the user PSR at priority zero
	test.ExpectEquality(t, m.mem.Peek(0x06ff), isa.Word(0x8002))
}

func TestInterruptPriority(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0x0fff)
	m.regs.PSR.Priority = 2

	m.ints.SetEnabled(interrupts.Timer0, true)
	m.ints.Raise(interrupts.Timer0)

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Executed)
	test.ExpectSuccess(t, m.ints.Pending(interrupts.Timer0))

	// disabled sources are never serviced
	m.ints.Raise(interrupts.Keyboard)
	res = m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Executed)

	m.ints.SetEnabled(interrupts.Keyboard, true)
	res = m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Interrupted)
	test.ExpectEquality(t, res.Vector, isa.Word(0x80))
}

func TestSubroutines(t *testing.T) {
	m := newMachine(nil)

	// JSRR R7 reads R7 before writing it
	m.program(0x3000, 0x41c0)
	m.regs.R[7] = 0x4000
	m.program(0x4000, 0x4802) // JSR #2
	m.program(0x4003, 0xc1c0) // RET

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x4000))
	test.ExpectEquality(t, m.regs.R[7], isa.Word(0x3001))

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x4003))
	test.ExpectEquality(t, m.regs.R[7], isa.Word(0x4001))

	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x4001))
}

func TestBranch(t *testing.T) {
	m := newMachine(nil)

	// reset leaves CC as Z. BRz #2 is taken and BRp #2 is not
	m.program(0x3000, 0x0402, 0x0000, 0x0000, 0x0202)
	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x3003))
	m.mc.Step()
	test.ExpectEquality(t, m.regs.PC, isa.Addr(0x3004))
}

func TestLoadsAndStores(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000,
		0x2205, // LD R1, #5
		0xa405, // LDI R2, #5
		0x6640, // LDR R3, R1, #0
		0x3603, // ST R3, #3
		0xb803, // STI R4, #3
		0x7a41, // STR R5, R1, #1
	)
	m.program(0x3006, 0x3100, 0x3101, 0x8000)
	m.program(0x3100, 0x8000, 0x0000)
	m.regs.R[4] = 0x00aa
	m.regs.R[5] = 0x00bb

	m.mc.Step()
	test.ExpectEquality(t, m.regs.R[1], isa.Word(0x3100))
	m.mc.Step()
	test.ExpectEquality(t, m.regs.R[2], isa.Word(0x0000))
	test.ExpectEquality(t, m.regs.PSR.CC, isa.Z)
	m.mc.Step()
	test.ExpectEquality(t, m.regs.R[3], isa.Word(0x8000))
	test.ExpectEquality(t, m.regs.PSR.CC, isa.N)
	m.mc.Step()
	test.ExpectEquality(t, m.mem.Peek(0x3007), isa.Word(0x8000))
	m.mc.Step()
	test.ExpectEquality(t, m.mem.Peek(0x8000), isa.Word(0x00aa))
	m.mc.Step()
	test.ExpectEquality(t, m.mem.Peek(0x3101), isa.Word(0x00bb))

	// stores do not change the condition codes
	test.ExpectEquality(t, m.regs.PSR.CC, isa.N)
}

func TestHaltIsIdempotent(t *testing.T) {
	m := newMachine(nil)
	m.program(0x3000, 0x127f)
	m.regs.MCR = 0

	res := m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Halted)
	before := *m.regs

	res = m.mc.Step()
	test.ExpectEquality(t, res.Outcome, execution.Halted)
	test.ExpectEquality(t, *m.regs, before)
}

func TestConditionCodeInvariant(t *testing.T) {
	m := newMachine(nil)
	for i := 0; i < 0x40; i++ {
		m.program(0x3000+isa.Addr(i), 0x1020|isa.Word(i&0x1f)) // ADD R0, R0, #imm
	}
	for i := 0; i < 0x40; i++ {
		m.mc.Step()
		test.ExpectSuccess(t, m.regs.PSR.CC.Valid())
		test.ExpectEquality(t, m.regs.PSR.CC, isa.ConditionOf(m.regs.R[0]))
	}
}
