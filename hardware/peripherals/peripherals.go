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

// Package peripherals defines the capabilities of the devices attached to the
// machine. The machine only ever talks to devices through these interfaces.
// Implementations are chosen once, collected in a Bundle and handed to the
// machine for the life of the session.
//
// The shims sub-package contains in-memory implementations of every interface.
// Other sub-packages back some of the peripherals with host resources: the
// terminal, audio files and Lua scripts.
//
// Peripherals never hold a reference to the CPU or to memory. Interrupts are
// reported with the InterruptOccurred() functions, which are polled by the
// register layer between instructions.
package peripherals

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/curated"
)

// Sentinel error patterns.
const (
	// a failure in the host resource backing the peripheral
	BackingError = "peripherals: %s: %v"

	// pin or channel number out of range
	InvalidIndex = "peripherals: %s: invalid pin or channel (%d)"

	// operation not allowed in the current state. for example, writing to a
	// GPIO pin that is not an output
	InvalidState = "peripherals: %s: pin or channel (%d) is %v"
)

// NewBackingError wraps an error from the host resource.
func NewBackingError(label string, err error) error {
	return curated.Errorf(BackingError, label, err)
}

// GPIOState is the configuration of a GPIO pin.
type GPIOState int

// List of valid GPIOState values. The values match the low bits of the GPIO
// control register.
const (
	GPIODisabled GPIOState = iota
	GPIOOutput
	GPIOInput
	GPIOInterrupt
)

func (s GPIOState) String() string {
	switch s {
	case GPIODisabled:
		return "disabled"
	case GPIOOutput:
		return "output"
	case GPIOInput:
		return "input"
	case GPIOInterrupt:
		return "interrupt"
	}
	return fmt.Sprintf("gpio state %d", int(s))
}

// GPIO is a bank of general purpose digital pins. A pin in the GPIOInterrupt
// state is an input that raises an interrupt when its level changes.
type GPIO interface {
	NumPins() int
	SetState(pin int, state GPIOState) error
	State(pin int) GPIOState
	Read(pin int) (bool, error)
	Write(pin int, level bool) error

	InterruptOccurred(pin int) bool
	ResetInterruptFlag(pin int)
	InterruptsEnabled(pin int) bool
}

// ADCState is whether an ADC channel is enabled.
type ADCState int

// List of valid ADCState values.
const (
	ADCDisabled ADCState = iota
	ADCEnabled
)

func (s ADCState) String() string {
	if s == ADCEnabled {
		return "enabled"
	}
	return "disabled"
}

// ADCMax is the largest sample value. Samples are 12 bits.
const ADCMax = 0x0fff

// ADC is a bank of analogue to digital converter channels.
type ADC interface {
	NumChannels() int
	SetState(ch int, state ADCState) error
	State(ch int) ADCState

	// 12-bit sample, zero extended
	Read(ch int) (uint16, error)
}

// PWM is a bank of pulse width modulation channels. A period of zero disables
// the channel.
type PWM interface {
	NumChannels() int
	SetPeriod(ch int, period uint8) error
	Period(ch int) uint8
	SetDuty(ch int, duty uint8) error
	Duty(ch int) uint8
}

// TimerMode is the mode of a timer.
type TimerMode int

// List of valid TimerMode values. The values match the low bits of the timer
// control register.
const (
	TimerDisabled TimerMode = iota
	TimerSingleShot
	TimerRepeated
)

func (m TimerMode) String() string {
	switch m {
	case TimerDisabled:
		return "disabled"
	case TimerSingleShot:
		return "single-shot"
	case TimerRepeated:
		return "repeated"
	}
	return fmt.Sprintf("timer mode %d", int(m))
}

// Timers is a bank of millisecond timers. A timer raises an interrupt when its
// period expires. A single-shot timer disables itself after expiring.
type Timers interface {
	NumTimers() int
	SetMode(id int, mode TimerMode)
	Mode(id int) TimerMode
	SetPeriod(id int, ms uint16)
	Period(id int) uint16

	InterruptOccurred(id int) bool
	ResetInterruptFlag(id int)
	InterruptsEnabled(id int) bool
}

// Clock is a free running millisecond counter. It wraps at 16 bits.
type Clock interface {
	Milliseconds() uint16
	SetMilliseconds(ms uint16)
}

// Input is a byte oriented input device, ie. the keyboard.
type Input interface {
	// ReadData consumes the current byte. If there is no current byte the
	// value is zero
	ReadData() (byte, error)
	CurrentDataUnread() bool

	SetInterruptsEnabled(enabled bool)
	InterruptOccurred() bool
	ResetInterruptFlag()
	InterruptsEnabled() bool
}

// Output is a byte oriented output device, ie. the display.
type Output interface {
	WriteData(b byte) error

	// CurrentDataWritten returns true if the device is ready to accept
	// another byte
	CurrentDataWritten() bool

	SetInterruptsEnabled(enabled bool)
	InterruptOccurred() bool
	ResetInterruptFlag()
	InterruptsEnabled() bool
}

// Bundle carries one implementation of every peripheral.
type Bundle struct {
	GPIO   GPIO
	ADC    ADC
	PWM    PWM
	Timers Timers
	Clock  Clock
	Input  Input
	Output Output
}

// Valid returns an error if any peripheral in the bundle is missing.
func (b *Bundle) Valid() error {
	switch {
	case b.GPIO == nil:
		return curated.Errorf("peripherals: bundle has no GPIO")
	case b.ADC == nil:
		return curated.Errorf("peripherals: bundle has no ADC")
	case b.PWM == nil:
		return curated.Errorf("peripherals: bundle has no PWM")
	case b.Timers == nil:
		return curated.Errorf("peripherals: bundle has no timers")
	case b.Clock == nil:
		return curated.Errorf("peripherals: bundle has no clock")
	case b.Input == nil:
		return curated.Errorf("peripherals: bundle has no input")
	case b.Output == nil:
		return curated.Errorf("peripherals: bundle has no output")
	}
	return nil
}
