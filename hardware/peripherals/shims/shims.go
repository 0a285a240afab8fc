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
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

// Set is a complete set of shims.
type Set struct {
	GPIO   *GPIO
	ADC    *ADC
	PWM    *PWM
	Timers *Timers
	Clock  *Clock
	Input  *Input
	Output *Output
}

// NewSet creates every shim. The timers and clock use the supplied source.
// The ring buffers of the input and output devices are created with the
// supplied capacity and must be able to hold three times maxMessage.
func NewSet(src clocks.Source, capacity int, maxMessage int) (*Set, error) {
	in, err := NewInput(capacity, maxMessage)
	if err != nil {
		return nil, err
	}
	out, err := NewOutput(capacity, maxMessage)
	if err != nil {
		return nil, err
	}
	return &Set{
		GPIO:   NewGPIO(),
		ADC:    NewADC(),
		PWM:    NewPWM(),
		Timers: NewTimers(src),
		Clock:  NewClock(src),
		Input:  in,
		Output: out,
	}, nil
}

// Bundle returns the shims as a peripherals.Bundle. Fields of the bundle can
// be replaced with other implementations before it is given to the machine.
func (s *Set) Bundle() *peripherals.Bundle {
	return &peripherals.Bundle{
		GPIO:   s.GPIO,
		ADC:    s.ADC,
		PWM:    s.PWM,
		Timers: s.Timers,
		Clock:  s.Clock,
		Input:  s.Input,
		Output: s.Output,
	}
}
