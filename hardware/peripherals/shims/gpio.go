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
	"sync/atomic"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

const gpioLabel = "gpio"

// NumPins is the number of GPIO pins.
const NumPins = 8

// GPIO implements the peripherals.GPIO interface.
type GPIO struct {
	// two bits per pin
	states atomic.Uint32

	// levels of input pins as set by SetInput()
	inputs atomic.Uint32

	// levels of output pins as set by Write()
	outputs uint32

	// interrupt flags, one bit per pin
	flags atomic.Uint32

	// called when an output pin is written. called on the emulation
	// goroutine
	OnWrite func(pin int, level bool)
}

// NewGPIO is the preferred method of initialisation for the GPIO type.
func NewGPIO() *GPIO {
	return &GPIO{}
}

// NumPins implements the peripherals.GPIO interface.
func (g *GPIO) NumPins() int {
	return NumPins
}

func (g *GPIO) valid(pin int) error {
	if pin < 0 || pin >= NumPins {
		return curated.Errorf(peripherals.InvalidIndex, gpioLabel, pin)
	}
	return nil
}

// SetState implements the peripherals.GPIO interface.
func (g *GPIO) SetState(pin int, state peripherals.GPIOState) error {
	if err := g.valid(pin); err != nil {
		return err
	}
	shift := uint(pin * 2)
	for {
		s := g.states.Load()
		n := s&^(3<<shift) | uint32(state&3)<<shift
		if g.states.CompareAndSwap(s, n) {
			break
		}
	}
	if state != peripherals.GPIOInterrupt {
		g.ResetInterruptFlag(pin)
	}
	return nil
}

// State implements the peripherals.GPIO interface.
func (g *GPIO) State(pin int) peripherals.GPIOState {
	if g.valid(pin) != nil {
		return peripherals.GPIODisabled
	}
	return peripherals.GPIOState((g.states.Load() >> uint(pin*2)) & 3)
}

// Read implements the peripherals.GPIO interface.
func (g *GPIO) Read(pin int) (bool, error) {
	if err := g.valid(pin); err != nil {
		return false, err
	}
	switch g.State(pin) {
	case peripherals.GPIOOutput:
		return g.outputs&(1<<pin) != 0, nil
	case peripherals.GPIOInput, peripherals.GPIOInterrupt:
		return g.inputs.Load()&(1<<pin) != 0, nil
	}
	return false, curated.Errorf(peripherals.InvalidState, gpioLabel, pin, peripherals.GPIODisabled)
}

// Write implements the peripherals.GPIO interface.
func (g *GPIO) Write(pin int, level bool) error {
	if err := g.valid(pin); err != nil {
		return err
	}
	if s := g.State(pin); s != peripherals.GPIOOutput {
		return curated.Errorf(peripherals.InvalidState, gpioLabel, pin, s)
	}
	if level {
		g.outputs |= 1 << pin
	} else {
		g.outputs &^= 1 << pin
	}
	if g.OnWrite != nil {
		g.OnWrite(pin, level)
	}
	return nil
}

// SetInput sets the level seen by an input pin. If the pin is in the
// interrupt state and the level changes then the interrupt flag is set. Safe
// to call from any goroutine.
func (g *GPIO) SetInput(pin int, level bool) error {
	if err := g.valid(pin); err != nil {
		return err
	}
	bit := uint32(1) << pin
	for {
		v := g.inputs.Load()
		n := v &^ bit
		if level {
			n |= bit
		}
		if v == n {
			return nil
		}
		if g.inputs.CompareAndSwap(v, n) {
			break
		}
	}
	if g.State(pin) == peripherals.GPIOInterrupt {
		setBits(&g.flags, bit)
	}
	return nil
}

// InterruptOccurred implements the peripherals.GPIO interface.
func (g *GPIO) InterruptOccurred(pin int) bool {
	return g.flags.Load()&(1<<pin) != 0
}

// ResetInterruptFlag implements the peripherals.GPIO interface.
func (g *GPIO) ResetInterruptFlag(pin int) {
	clearBits(&g.flags, uint32(1)<<pin)
}

// InterruptsEnabled implements the peripherals.GPIO interface.
func (g *GPIO) InterruptsEnabled(pin int) bool {
	return g.State(pin) == peripherals.GPIOInterrupt
}

func setBits(v *atomic.Uint32, bits uint32) {
	for {
		o := v.Load()
		if o&bits == bits || v.CompareAndSwap(o, o|bits) {
			return
		}
	}
}

func clearBits(v *atomic.Uint32, bits uint32) {
	for {
		o := v.Load()
		if o&bits == 0 || v.CompareAndSwap(o, o&^bits) {
			return
		}
	}
}
