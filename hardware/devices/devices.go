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

// Package devices implements the memory-mapped register layer. Every address
// in the device page (0xfe00 to 0xffff) is handed to the Devices type by the
// memory package. Reads and writes are translated into calls on the
// peripherals in the Bundle, or into changes to the register file for the
// BSP, PSR and MCR registers.
//
// Peripheral control registers share a common format:
//
//	bit 15    status. ready for KBSR and DSR, interrupt pending otherwise
//	bit 14    interrupt enable (KBSR and DSR only)
//	bit 13    sticky error. set when the peripheral reports an error and
//	          cleared by any write to the control register
//	low bits  mode or enable
//
// Between instructions the machine calls Poll(), which copies the interrupt
// flags of the peripherals into the interrupt controller. When the CPU
// services an interrupt it calls Acknowledge() so that the peripheral can
// reset its flag.
package devices

import (
	"github.com/jetsetilly/lc3sim/hardware/cpu/registers"
	"github.com/jetsetilly/lc3sim/hardware/interrupts"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/logger"
)

// sticky error bits for every control register
type stickyErrors struct {
	keyboard bool
	display  bool
	gpio     [addresses.NumGPIO]bool
	adc      [addresses.NumADC]bool
	pwm      [addresses.NumPWM]bool
}

// Devices is the memory-mapped register layer.
type Devices struct {
	perm   logger.Permission
	regs   *registers.File
	bundle *peripherals.Bundle
	ints   *interrupts.Controller
	table  *table

	errors stickyErrors

	// most recent value read from KBDR and written to DDR
	kbdr isa.Word
	ddr  isa.Word
}

// NewDevices is the preferred method of initialisation for the Devices type.
// The register file is shared with the CPU.
func NewDevices(perm logger.Permission, regs *registers.File, bundle *peripherals.Bundle, ints *interrupts.Controller) (*Devices, error) {
	if err := bundle.Valid(); err != nil {
		return nil, err
	}
	return &Devices{
		perm:   perm,
		regs:   regs,
		bundle: bundle,
		ints:   ints,
		table:  newTable(),
	}, nil
}

// Reset puts every peripheral into its disabled state and clears the sticky
// error bits.
func (d *Devices) Reset() {
	d.errors = stickyErrors{}
	d.kbdr = 0
	d.ddr = 0

	b := d.bundle
	b.Input.SetInterruptsEnabled(false)
	b.Output.SetInterruptsEnabled(false)
	b.Output.ResetInterruptFlag()
	for n := 0; n < addresses.NumGPIO; n++ {
		_ = b.GPIO.SetState(n, peripherals.GPIODisabled)
	}
	for n := 0; n < addresses.NumADC; n++ {
		_ = b.ADC.SetState(n, peripherals.ADCDisabled)
	}
	for n := 0; n < addresses.NumPWM; n++ {
		_ = b.PWM.SetPeriod(n, 0)
		_ = b.PWM.SetDuty(n, 0)
	}
	for n := 0; n < addresses.NumTimers; n++ {
		b.Timers.SetMode(n, peripherals.TimerDisabled)
		b.Timers.SetPeriod(n, 0)
	}
}

func (d *Devices) fault(err error) bool {
	if err == nil {
		return false
	}
	logger.Log(d.perm, "devices", err)
	return true
}

func bit(b bool, v isa.Word) isa.Word {
	if b {
		return v
	}
	return 0
}

// Read implements the memory.MappedRegisters interface.
func (d *Devices) Read(addr isa.Addr) isa.Word {
	return d.read(addr, false)
}

// Peek implements the memory.MappedRegisters interface.
func (d *Devices) Peek(addr isa.Addr) isa.Word {
	return d.read(addr, true)
}

func (d *Devices) read(addr isa.Addr, peek bool) isa.Word {
	b := d.bundle
	r := d.table.lookup(addr)

	switch r.kind {
	case kbsr:
		return bit(b.Input.CurrentDataUnread(), addresses.StatusBit) |
			bit(b.Input.InterruptsEnabled(), addresses.InterruptBit) |
			bit(d.errors.keyboard, addresses.ErrorBit)

	case kbdr:
		if peek {
			return d.kbdr
		}
		v, err := b.Input.ReadData()
		if d.fault(err) {
			d.errors.keyboard = true
		}
		d.kbdr = isa.Word(v)
		return d.kbdr

	case dsr:
		return bit(b.Output.CurrentDataWritten(), addresses.StatusBit) |
			bit(b.Output.InterruptsEnabled(), addresses.InterruptBit) |
			bit(d.errors.display, addresses.ErrorBit)

	case ddr:
		return d.ddr

	case bsp:
		return d.regs.BSP

	case psr:
		return d.regs.PSR.Value()

	case mcr:
		return d.regs.MCR

	case gpioControl:
		return isa.Word(b.GPIO.State(r.idx)&3) |
			bit(b.GPIO.InterruptOccurred(r.idx), addresses.StatusBit) |
			bit(d.errors.gpio[r.idx], addresses.ErrorBit)

	case gpioData:
		v, err := b.GPIO.Read(r.idx)
		if !peek && d.fault(err) {
			d.errors.gpio[r.idx] = true
		}
		return bit(v, 1)

	case gpioAll:
		var w isa.Word
		for n := 0; n < addresses.NumGPIO; n++ {
			if b.GPIO.State(n) == peripherals.GPIODisabled {
				continue
			}
			if v, err := b.GPIO.Read(n); err == nil && v {
				w |= 1 << n
			}
		}
		return w

	case adcControl:
		return bit(b.ADC.State(r.idx) == peripherals.ADCEnabled, 1) |
			bit(d.errors.adc[r.idx], addresses.ErrorBit)

	case adcData:
		v, err := b.ADC.Read(r.idx)
		if !peek && d.fault(err) {
			d.errors.adc[r.idx] = true
		}
		return isa.Word(v & peripherals.ADCMax)

	case pwmPeriod:
		return isa.Word(b.PWM.Period(r.idx)) |
			bit(d.errors.pwm[r.idx], addresses.ErrorBit)

	case pwmDuty:
		return isa.Word(b.PWM.Duty(r.idx))

	case timerControl:
		return isa.Word(b.Timers.Mode(r.idx)&3) |
			bit(d.ints.Pending(interrupts.TimerSource(r.idx)), addresses.StatusBit)

	case timerPeriod:
		return isa.Word(b.Timers.Period(r.idx))

	case clkr:
		return isa.Word(b.Clock.Milliseconds())
	}

	return 0
}

// Write implements the memory.MappedRegisters interface.
func (d *Devices) Write(addr isa.Addr, data isa.Word) {
	b := d.bundle
	r := d.table.lookup(addr)

	switch r.kind {
	case kbsr:
		d.errors.keyboard = false
		b.Input.SetInterruptsEnabled(data&addresses.InterruptBit != 0)

	case dsr:
		d.errors.display = false
		b.Output.SetInterruptsEnabled(data&addresses.InterruptBit != 0)

	case ddr:
		d.ddr = data
		if d.fault(b.Output.WriteData(byte(data))) {
			d.errors.display = true
		}

	case bsp:
		d.regs.BSP = data

	case psr:
		d.regs.LoadPSR(data)

	case mcr:
		d.regs.MCR = data

	case gpioControl:
		d.errors.gpio[r.idx] = d.fault(b.GPIO.SetState(r.idx, peripherals.GPIOState(data&3)))

	case gpioData:
		if d.fault(b.GPIO.Write(r.idx, data&1 == 1)) {
			d.errors.gpio[r.idx] = true
		}

	case gpioAll:
		for n := 0; n < addresses.NumGPIO; n++ {
			if b.GPIO.State(n) != peripherals.GPIOOutput {
				continue
			}
			if d.fault(b.GPIO.Write(n, data&(1<<n) != 0)) {
				d.errors.gpio[n] = true
			}
		}

	case adcControl:
		d.errors.adc[r.idx] = d.fault(b.ADC.SetState(r.idx, peripherals.ADCState(data&1)))

	case pwmPeriod:
		d.errors.pwm[r.idx] = d.fault(b.PWM.SetPeriod(r.idx, uint8(data)))

	case pwmDuty:
		if d.fault(b.PWM.SetDuty(r.idx, uint8(data))) {
			d.errors.pwm[r.idx] = true
		}

	case timerControl:
		m := peripherals.TimerMode(data & 3)
		if m > peripherals.TimerRepeated {
			m = peripherals.TimerDisabled
		}
		b.Timers.SetMode(r.idx, m)

	case timerPeriod:
		b.Timers.SetPeriod(r.idx, uint16(data))

	case clkr:
		b.Clock.SetMilliseconds(uint16(data))
	}
}

// Poll copies the interrupt state of every peripheral into the interrupt
// controller.
func (d *Devices) Poll() {
	b := d.bundle
	d.poll(interrupts.Keyboard, b.Input.InterruptOccurred(), b.Input.InterruptsEnabled())
	d.poll(interrupts.Display, b.Output.InterruptOccurred(), b.Output.InterruptsEnabled())
	for n := 0; n < addresses.NumGPIO; n++ {
		d.poll(interrupts.GPIOSource(n), b.GPIO.InterruptOccurred(n), b.GPIO.InterruptsEnabled(n))
	}

	// the timer's interrupt flag must be checked before the enabled state
	// because the check can change the state of a single-shot timer
	for n := 0; n < addresses.NumTimers; n++ {
		d.poll(interrupts.TimerSource(n), b.Timers.InterruptOccurred(n), b.Timers.InterruptsEnabled(n))
	}
}

func (d *Devices) poll(s interrupts.Source, occurred bool, enabled bool) {
	d.ints.SetEnabled(s, enabled)
	if occurred {
		d.ints.Raise(s)
	} else {
		d.ints.Clear(s)
	}
}

// Acknowledge is called when the interrupt from the source has been
// serviced.
func (d *Devices) Acknowledge(s interrupts.Source) {
	b := d.bundle
	switch {
	case s == interrupts.Keyboard:
		b.Input.ResetInterruptFlag()
	case s == interrupts.Display:
		b.Output.ResetInterruptFlag()
	case s >= interrupts.GPIO0 && s <= interrupts.GPIO7:
		b.GPIO.ResetInterruptFlag(int(s - interrupts.GPIO0))
	case s >= interrupts.Timer0 && s <= interrupts.Timer1:
		b.Timers.ResetInterruptFlag(int(s - interrupts.Timer0))
	}
}
