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
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/lc3sim/hardware/cpu/registers"
	"github.com/jetsetilly/lc3sim/hardware/interrupts"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

type pwmChannel struct {
	Period uint8
	Duty   uint8
}

type timer struct {
	Mode   peripherals.TimerMode
	Period uint16
}

type interrupt struct {
	Source   string
	Vector   uint16
	Priority uint8
}

// copy of the machine state suitable for memviz
type snapshot struct {
	Registers registers.File
	Pending   []*interrupt
	GPIO      [addresses.NumGPIO]peripherals.GPIOState
	ADC       [addresses.NumADC]peripherals.ADCState
	PWM       [addresses.NumPWM]*pwmChannel
	Timers    [addresses.NumTimers]*timer
	Clock     uint16
}

func (dbg *Debugger) snapshot() *snapshot {
	b := dbg.m.Bundle
	s := &snapshot{
		Registers: *dbg.m.Regs,
		Clock:     b.Clock.Milliseconds(),
	}

	for src := interrupts.Source(0); src < interrupts.NumSources; src++ {
		if dbg.m.Interrupts.Pending(src) {
			s.Pending = append(s.Pending, &interrupt{
				Source:   src.String(),
				Vector:   uint16(src.Vector()),
				Priority: src.Priority(),
			})
		}
	}
	for n := range s.GPIO {
		s.GPIO[n] = b.GPIO.State(n)
	}
	for n := range s.ADC {
		s.ADC[n] = b.ADC.State(n)
	}
	for n := range s.PWM {
		s.PWM[n] = &pwmChannel{Period: b.PWM.Period(n), Duty: b.PWM.Duty(n)}
	}
	for n := range s.Timers {
		s.Timers[n] = &timer{Mode: b.Timers.Mode(n), Period: b.Timers.Period(n)}
	}

	return s
}

// Visualise writes a graphviz description of the register and peripheral
// state of the machine.
func (dbg *Debugger) Visualise(w io.Writer) {
	memviz.Map(w, dbg.snapshot())
}
