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

package shims

import (
	"time"

	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

// NumTimers is the number of timers.
const NumTimers = 2

type timer struct {
	mode     peripherals.TimerMode
	period   uint16
	deadline time.Duration
	flag     bool
}

// Timers implements the peripherals.Timers interface. Expiry is checked
// whenever InterruptOccurred() is called, which the register layer does
// between every instruction.
type Timers struct {
	src    clocks.Source
	timers [NumTimers]timer
}

// NewTimers is the preferred method of initialisation for the Timers type.
func NewTimers(src clocks.Source) *Timers {
	return &Timers{src: src}
}

// NumTimers implements the peripherals.Timers interface.
func (t *Timers) NumTimers() int {
	return NumTimers
}

func validTimer(id int) bool {
	return id >= 0 && id < NumTimers
}

func (t *Timers) restart(id int) {
	tm := &t.timers[id]
	tm.deadline = t.src.Now() + time.Duration(tm.period)*time.Millisecond
}

// SetMode implements the peripherals.Timers interface. Setting the mode
// restarts the timer. Disabling a timer discards any unserviced expiry.
func (t *Timers) SetMode(id int, mode peripherals.TimerMode) {
	if !validTimer(id) {
		return
	}
	t.timers[id].mode = mode
	if mode == peripherals.TimerDisabled {
		t.timers[id].flag = false
		return
	}
	t.restart(id)
}

// Mode implements the peripherals.Timers interface.
func (t *Timers) Mode(id int) peripherals.TimerMode {
	if !validTimer(id) {
		return peripherals.TimerDisabled
	}
	return t.timers[id].mode
}

// SetPeriod implements the peripherals.Timers interface. Setting the period
// of a running timer restarts it.
func (t *Timers) SetPeriod(id int, ms uint16) {
	if !validTimer(id) {
		return
	}
	t.timers[id].period = ms
	if t.timers[id].mode != peripherals.TimerDisabled {
		t.restart(id)
	}
}

// Period implements the peripherals.Timers interface.
func (t *Timers) Period(id int) uint16 {
	if !validTimer(id) {
		return 0
	}
	return t.timers[id].period
}

func (t *Timers) update(id int) {
	tm := &t.timers[id]
	if tm.mode == peripherals.TimerDisabled || tm.period == 0 {
		return
	}

	now := t.src.Now()
	if now < tm.deadline {
		return
	}

	tm.flag = true

	switch tm.mode {
	case peripherals.TimerSingleShot:
		tm.mode = peripherals.TimerDisabled
	case peripherals.TimerRepeated:
		// missed expiries coalesce into one
		p := time.Duration(tm.period) * time.Millisecond
		tm.deadline += ((now-tm.deadline)/p + 1) * p
	}
}

// InterruptOccurred implements the peripherals.Timers interface.
func (t *Timers) InterruptOccurred(id int) bool {
	if !validTimer(id) {
		return false
	}
	t.update(id)
	return t.timers[id].flag
}

// ResetInterruptFlag implements the peripherals.Timers interface.
func (t *Timers) ResetInterruptFlag(id int) {
	if validTimer(id) {
		t.timers[id].flag = false
	}
}

// InterruptsEnabled implements the peripherals.Timers interface. A running
// timer always has interrupts enabled. An expired single-shot timer remains
// enabled until its interrupt has been serviced.
func (t *Timers) InterruptsEnabled(id int) bool {
	if !validTimer(id) {
		return false
	}
	return t.timers[id].mode != peripherals.TimerDisabled || t.timers[id].flag
}
