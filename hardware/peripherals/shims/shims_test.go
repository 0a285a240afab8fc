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

package shims_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/test"
)

func TestGPIO(t *testing.T) {
	g := shims.NewGPIO()

	// disabled pins can't be read or written
	_, err := g.Read(0)
	test.ExpectSuccess(t, curated.Is(err, peripherals.InvalidState))
	test.ExpectSuccess(t, curated.Is(g.Write(0, true), peripherals.InvalidState))
	test.ExpectSuccess(t, curated.Is(g.SetState(8, peripherals.GPIOInput), peripherals.InvalidIndex))

	test.ExpectSuccess(t, g.SetState(0, peripherals.GPIOOutput))
	test.ExpectSuccess(t, g.Write(0, true))
	v, err := g.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, v)

	test.ExpectSuccess(t, g.SetState(1, peripherals.GPIOInput))
	test.ExpectSuccess(t, g.SetInput(1, true))
	v, _ = g.Read(1)
	test.ExpectSuccess(t, v)
	test.ExpectFailure(t, g.InterruptOccurred(1))
	test.ExpectEquality(t, g.State(1), peripherals.GPIOInput)
}

func TestGPIOInterrupt(t *testing.T) {
	g := shims.NewGPIO()
	test.ExpectSuccess(t, g.SetState(2, peripherals.GPIOInterrupt))
	test.ExpectSuccess(t, g.InterruptsEnabled(2))
	test.ExpectFailure(t, g.InterruptsEnabled(3))

	test.ExpectSuccess(t, g.SetInput(2, true))
	test.ExpectSuccess(t, g.InterruptOccurred(2))
	g.ResetInterruptFlag(2)
	test.ExpectFailure(t, g.InterruptOccurred(2))

	// no change, no interrupt
	test.ExpectSuccess(t, g.SetInput(2, true))
	test.ExpectFailure(t, g.InterruptOccurred(2))

	test.ExpectSuccess(t, g.SetInput(2, false))
	test.ExpectSuccess(t, g.InterruptOccurred(2))

	// changing state discards the flag
	test.ExpectSuccess(t, g.SetState(2, peripherals.GPIOInput))
	test.ExpectFailure(t, g.InterruptOccurred(2))
}

func TestADC(t *testing.T) {
	a := shims.NewADC()
	test.ExpectSuccess(t, a.SetSample(0, 0xffff))

	_, err := a.Read(0)
	test.ExpectSuccess(t, curated.Is(err, peripherals.InvalidState))

	test.ExpectSuccess(t, a.SetState(0, peripherals.ADCEnabled))
	v, err := a.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint16(0x0fff))

	_, err = a.Read(6)
	test.ExpectSuccess(t, curated.Is(err, peripherals.InvalidIndex))
}

func TestPWM(t *testing.T) {
	p := shims.NewPWM()
	var changes int
	p.OnChange = func(ch int, period uint8, duty uint8) {
		changes++
	}
	test.ExpectSuccess(t, p.SetPeriod(1, 200))
	test.ExpectSuccess(t, p.SetDuty(1, 50))
	test.ExpectEquality(t, p.Period(1), uint8(200))
	test.ExpectEquality(t, p.Duty(1), uint8(50))
	test.ExpectEquality(t, changes, 2)
	test.ExpectFailure(t, p.SetDuty(2, 1))
}

func TestTimerSingleShot(t *testing.T) {
	clk := clocks.NewManual()
	tm := shims.NewTimers(clk)

	tm.SetPeriod(0, 10)
	tm.SetMode(0, peripherals.TimerSingleShot)
	test.ExpectSuccess(t, tm.InterruptsEnabled(0))

	clk.Advance(9 * time.Millisecond)
	test.ExpectFailure(t, tm.InterruptOccurred(0))

	clk.Advance(time.Millisecond)
	test.ExpectSuccess(t, tm.InterruptOccurred(0))
	test.ExpectEquality(t, tm.Mode(0), peripherals.TimerDisabled)

	// still enabled until serviced
	test.ExpectSuccess(t, tm.InterruptsEnabled(0))
	tm.ResetInterruptFlag(0)
	test.ExpectFailure(t, tm.InterruptsEnabled(0))

	clk.Advance(time.Second)
	test.ExpectFailure(t, tm.InterruptOccurred(0))
}

func TestTimerRepeated(t *testing.T) {
	clk := clocks.NewManual()
	tm := shims.NewTimers(clk)

	tm.SetMode(1, peripherals.TimerRepeated)
	tm.SetPeriod(1, 5)

	clk.Advance(5 * time.Millisecond)
	test.ExpectSuccess(t, tm.InterruptOccurred(1))
	tm.ResetInterruptFlag(1)
	test.ExpectFailure(t, tm.InterruptOccurred(1))

	// several missed periods coalesce
	clk.Advance(23 * time.Millisecond)
	test.ExpectSuccess(t, tm.InterruptOccurred(1))
	tm.ResetInterruptFlag(1)
	clk.Advance(time.Millisecond)
	test.ExpectFailure(t, tm.InterruptOccurred(1))
	clk.Advance(time.Millisecond)
	test.ExpectSuccess(t, tm.InterruptOccurred(1))

	tm.SetMode(1, peripherals.TimerDisabled)
	test.ExpectFailure(t, tm.InterruptOccurred(1))
	test.ExpectFailure(t, tm.InterruptsEnabled(1))
}

func TestClock(t *testing.T) {
	clk := clocks.NewManual()
	c := shims.NewClock(clk)
	test.ExpectEquality(t, c.Milliseconds(), uint16(0))
	clk.Advance(1500 * time.Millisecond)
	test.ExpectEquality(t, c.Milliseconds(), uint16(1500))
	c.SetMilliseconds(100)
	clk.Advance(time.Millisecond)
	test.ExpectEquality(t, c.Milliseconds(), uint16(101))

	// wraps at 16 bits
	c.SetMilliseconds(0xffff)
	clk.Advance(time.Millisecond)
	test.ExpectEquality(t, c.Milliseconds(), uint16(0))
}

func TestInput(t *testing.T) {
	in, err := shims.NewInput(16, 4)
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, in.CurrentDataUnread())
	test.ExpectFailure(t, in.InterruptOccurred())

	in.Push([]byte("A\n"))
	test.ExpectSuccess(t, in.CurrentDataUnread())
	test.ExpectSuccess(t, in.InterruptOccurred())
	in.ResetInterruptFlag()
	test.ExpectFailure(t, in.InterruptOccurred())

	v, err := in.ReadData()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, byte('A'))

	// a new byte is current
	test.ExpectSuccess(t, in.InterruptOccurred())
	v, _ = in.ReadData()
	test.ExpectEquality(t, v, byte('\n'))
	test.ExpectFailure(t, in.CurrentDataUnread())
	test.ExpectFailure(t, in.InterruptOccurred())

	// an arrival after an acknowledgement interrupts even if the current byte
	// has not been read
	in.Push([]byte("B"))
	in.ResetInterruptFlag()
	test.ExpectFailure(t, in.InterruptOccurred())
	in.Push([]byte("C"))
	test.ExpectSuccess(t, in.InterruptOccurred())
}

func TestOutput(t *testing.T) {
	out, err := shims.NewOutput(3, 1)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, out.CurrentDataWritten())
	test.ExpectSuccess(t, out.WriteData('a'))
	test.ExpectSuccess(t, out.InterruptOccurred())
	out.ResetInterruptFlag()

	test.ExpectSuccess(t, out.WriteData('b'))
	test.ExpectSuccess(t, out.WriteData('c'))
	test.ExpectFailure(t, out.CurrentDataWritten())
	test.ExpectFailure(t, out.InterruptOccurred())
	test.ExpectSuccess(t, curated.Is(out.WriteData('d'), peripherals.BackingError))
	out.ResetInterruptFlag()

	w := &test.CompareWriter{}
	n, err := out.Drain(w)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 3)
	test.ExpectSuccess(t, w.Compare("abc"))

	// not ready to ready transition
	test.ExpectSuccess(t, out.InterruptOccurred())
}

func TestSet(t *testing.T) {
	s, err := shims.NewSet(clocks.NewManual(), 12, 4)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, s.Bundle().Valid())

	_, err = shims.NewSet(clocks.NewManual(), 11, 4)
	test.ExpectFailure(t, err)
}
