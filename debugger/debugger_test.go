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

package debugger_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/lc3sim/assembler"
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/debugger"
	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware"
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/instance"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/logger"
	"github.com/jetsetilly/lc3sim/remote"
	"github.com/jetsetilly/lc3sim/test"
)

// address of the word written by the counting program
const data = 0x3007

// counts from one to ten, storing the count in data each time
func counter(p *assembler.Program) {
	p.Clear(isa.R0)
	p.Label("loop")
	p.ADDi(isa.R0, isa.R0, 1)
	p.ST(isa.R0, "data")
	p.LD(isa.R1, "data")
	p.ADDi(isa.R2, isa.R0, -10)
	p.BR(isa.N, "loop")
	p.TRAP(0x25)
	p.Label("data")
	p.Fill(0)
}

func forever(p *assembler.Program) {
	p.Label("self")
	p.BR(isa.NZP, "self")
}

func newDebugger(t *testing.T, program func(p *assembler.Program)) (*debugger.Debugger, *shims.Set) {
	t.Helper()

	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".lc3sim", 0700))

	set, err := shims.NewSet(clocks.NewManual(), preferences.DefaultRingCapacity, remote.MaxMessageSize)
	test.DemandSuccess(t, err)

	m, err := hardware.NewMachine(instance.Main, nil, set.Bundle())
	test.DemandSuccess(t, err)
	m.Instance.Normalise()
	test.DemandSuccess(t, m.Boot())

	p := assembler.NewProgram("test")
	program(p)
	img, err := p.Assemble()
	test.DemandSuccess(t, err)
	m.LoadImage(img)

	return debugger.NewDebugger(m), set
}

func TestRunToHalt(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventHalt)
	test.ExpectSuccess(t, dbg.Machine().Halted())

	v, err := dbg.ReadMemory(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(10))

	// running a halted machine returns immediately
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventHalt)
}

func TestBreakpoint(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()
	regs := dbg.Machine().Regs

	test.DemandSuccess(t, dbg.SetBreakpoint(0x3003))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventBreakpoint)
	test.ExpectEquality(t, regs.PC, isa.Addr(0x3003))
	test.ExpectEquality(t, regs.R[0], isa.Word(1))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventBreakpoint)
	test.ExpectEquality(t, regs.PC, isa.Addr(0x3003))
	test.ExpectEquality(t, regs.R[0], isa.Word(2))

	test.DemandSuccess(t, dbg.ClearBreakpoint(0x3003))
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventHalt)
}

func TestBreakpointAtStart(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()
	regs := dbg.Machine().Regs

	test.DemandSuccess(t, dbg.SetBreakpoint(0x3001))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventBreakpoint)
	test.ExpectEquality(t, regs.PC, isa.Addr(0x3001))
	test.ExpectEquality(t, regs.R[0], isa.Word(0))

	// the run starts on the breakpoint so it is not triggered until the next
	// time around the loop
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventBreakpoint)
	test.ExpectEquality(t, regs.PC, isa.Addr(0x3001))
	test.ExpectEquality(t, regs.R[0], isa.Word(1))
}

func TestBreakpointList(t *testing.T) {
	dbg, _ := newDebugger(t, counter)

	test.ExpectSuccess(t, dbg.SetBreakpoint(0x3005))
	test.ExpectSuccess(t, dbg.SetBreakpoint(0x3001))
	test.ExpectSuccess(t, dbg.SetBreakpoint(0x3003))

	bps := dbg.Breakpoints()
	test.DemandEquality(t, len(bps), 3)
	test.ExpectEquality(t, bps[0], isa.Addr(0x3001))
	test.ExpectEquality(t, bps[1], isa.Addr(0x3003))
	test.ExpectEquality(t, bps[2], isa.Addr(0x3005))

	err := dbg.SetBreakpoint(0x3003)
	test.ExpectSuccess(t, curated.Is(err, debugger.BreakpointExistsError))
	test.ExpectEquality(t, err.Error(), "debugger: breakpoint already set at x3003")

	test.ExpectSuccess(t, curated.Is(dbg.ClearBreakpoint(0x3002), debugger.BreakpointMissingError))

	test.ExpectSuccess(t, curated.Is(dbg.SetBreakpoint(0x10000), debugger.AddressRangeError))
	test.ExpectSuccess(t, curated.Is(dbg.SetBreakpoint(-1), debugger.AddressRangeError))

	// list is unchanged by the failures
	test.ExpectEquality(t, len(dbg.Breakpoints()), 3)
}

func TestBreakpointCapacity(t *testing.T) {
	dbg, _ := newDebugger(t, counter)

	for i := 0; i < debugger.MaxBreakpoints; i++ {
		test.DemandSuccess(t, dbg.SetBreakpoint(0x4000+i))
	}

	err := dbg.SetBreakpoint(0x5000)
	test.ExpectSuccess(t, curated.Is(err, debugger.BreakpointCapacityError))
	test.ExpectEquality(t, err.Error(), "debugger: no more than 16 breakpoints")
	test.ExpectEquality(t, len(dbg.Breakpoints()), debugger.MaxBreakpoints)

	test.DemandSuccess(t, dbg.ClearBreakpoint(0x4000))
	test.ExpectSuccess(t, dbg.SetBreakpoint(0x5000))
}

func TestWatchpointWrite(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()

	// the tail of the log shows the access
	log, err := test.NewRingWriter(64)
	test.DemandSuccess(t, err)
	logger.SetEcho(log)
	t.Cleanup(func() { logger.SetEcho(nil) })

	test.DemandSuccess(t, dbg.SetWatchpoint(data, debugger.WatchWrite))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventWatchpoint)
	test.ExpectEquality(t, dbg.Machine().Regs.PC, isa.Addr(0x3003))

	hit := dbg.LastWatch()
	test.ExpectEquality(t, hit.Addr, isa.Addr(data))
	test.ExpectEquality(t, hit.Value, isa.Word(1))
	test.ExpectEquality(t, hit.Write, true)

	test.ExpectSuccess(t, strings.HasSuffix(log.String(), "debugger: watch: write x3007 <- 0001\n"), log.String())
}

func TestWatchpointRead(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()

	test.DemandSuccess(t, dbg.SetWatchpoint(data, debugger.WatchRead))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventWatchpoint)
	test.ExpectEquality(t, dbg.Machine().Regs.PC, isa.Addr(0x3004))

	hit := dbg.LastWatch()
	test.ExpectEquality(t, hit.Value, isa.Word(1))
	test.ExpectEquality(t, hit.Write, false)

	test.DemandSuccess(t, dbg.ClearWatchpoint(data))
	test.ExpectEquality(t, len(dbg.Watchpoints()), 0)
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventHalt)

	test.ExpectSuccess(t, curated.Is(dbg.ClearWatchpoint(data), debugger.BreakpointMissingError))
}

func TestWatchpointHalt(t *testing.T) {
	dbg, _ := newDebugger(t, counter)
	ctx := context.Background()

	// the write to the MCR by the HALT trap stops the machine
	test.DemandSuccess(t, dbg.SetWatchpoint(0xfffe, debugger.WatchWrite))

	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventWatchpoint)
	test.ExpectSuccess(t, dbg.Machine().Halted())

	hit := dbg.LastWatch()
	test.ExpectEquality(t, hit.Addr, isa.Addr(0xfffe))
	test.ExpectEquality(t, hit.Value&0x8000, isa.Word(0))
	test.ExpectEquality(t, hit.Write, true)

	// the halt is reported by the next run
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventHalt)
}

func TestCancel(t *testing.T) {
	dbg, _ := newDebugger(t, forever)

	// a cancellation before the run is not lost
	steps := dbg.Machine().Steps()
	dbg.Cancel()
	test.ExpectEquality(t, dbg.RunUntilEvent(context.Background()), govern.EventCancelled)
	test.ExpectEquality(t, dbg.Machine().Steps(), steps)

	go func() {
		time.Sleep(10 * time.Millisecond)
		dbg.Cancel()
	}()
	test.ExpectEquality(t, dbg.RunUntilEvent(context.Background()), govern.EventCancelled)
}

func TestContextCancel(t *testing.T) {
	dbg, _ := newDebugger(t, forever)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	steps := dbg.Machine().Steps()
	test.ExpectEquality(t, dbg.RunUntilEvent(ctx), govern.EventCancelled)
	test.ExpectSuccess(t, dbg.Machine().Steps()-steps < hardware.PerformanceBrake)
}

func TestRegisters(t *testing.T) {
	dbg, _ := newDebugger(t, counter)

	for i := 0; i < isa.NumRegisters; i++ {
		test.DemandSuccess(t, dbg.WriteRegister(i, isa.Word(0x100+i)))
	}
	for i := 0; i < isa.NumRegisters; i++ {
		v, err := dbg.ReadRegister(i)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, isa.Word(0x100+i))
	}

	test.DemandSuccess(t, dbg.WriteRegister(debugger.RegPC, 0x3005))
	test.ExpectEquality(t, dbg.Machine().Regs.PC, isa.Addr(0x3005))

	v, err := dbg.ReadRegister(debugger.RegMCR)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x8000))

	v, err = dbg.ReadRegister(debugger.RegPSR)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x0702))

	// changing privilege exchanges the stack pointers
	sp := dbg.Machine().Regs.R[isa.SP]
	test.DemandSuccess(t, dbg.WriteRegister(debugger.RegPSR, 0x8002))
	test.ExpectEquality(t, dbg.Machine().Regs.PSR.Privilege, isa.User)
	test.ExpectEquality(t, dbg.Machine().Regs.BSP, sp)

	_, err = dbg.ReadRegister(debugger.NumRegisters)
	test.ExpectSuccess(t, curated.Is(err, debugger.RegisterIndexError))
	test.ExpectEquality(t, err.Error(), "debugger: no register with index 11")
	test.ExpectSuccess(t, curated.Is(dbg.WriteRegister(-1, 0), debugger.RegisterIndexError))
}

func TestMemory(t *testing.T) {
	dbg, _ := newDebugger(t, counter)

	test.DemandSuccess(t, dbg.WriteMemory(0x4000, 0x1234))
	v, err := dbg.ReadMemory(0x4000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x1234))

	// mapped register
	v, err = dbg.ReadMemory(0xfffe)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, isa.Word(0x8000))

	_, err = dbg.ReadMemory(0x10000)
	test.ExpectSuccess(t, curated.Is(err, debugger.AddressRangeError))
	test.ExpectSuccess(t, curated.Is(dbg.WriteMemory(-5, 0), debugger.AddressRangeError))
}

func TestVisualise(t *testing.T) {
	dbg, _ := newDebugger(t, counter)

	w := &test.CompareWriter{}
	dbg.Visualise(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))
}
