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

// Package addresses names the fixed addresses of the LC-3 machine. That is,
// the memory-mapped device registers and the OS configuration words.
package addresses

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Memory-mapped registers with fixed addresses.
const (
	KBSR = isa.Addr(0xfe00)
	KBDR = isa.Addr(0xfe02)
	DSR  = isa.Addr(0xfe04)
	DDR  = isa.Addr(0xfe06)
	BSP  = isa.Addr(0xfe07)
	PSR  = isa.Addr(0xfffc)
	MCR  = isa.Addr(0xfffe)
)

// Peripheral banks. Each bank is a sequence of control and data register
// pairs.
const (
	GPIOBase = isa.Addr(0xfe08)
	GPIODR   = isa.Addr(0xfe18)
	ADCBase  = isa.Addr(0xfe19)
	PWMBase  = isa.Addr(0xfe25)
	TMRBase  = isa.Addr(0xfe29)
	CLKR     = isa.Addr(0xfe2d)
)

// Number of pins or channels in each peripheral bank.
const (
	NumGPIO   = 8
	NumADC    = 6
	NumPWM    = 2
	NumTimers = 2
)

// GPIOControl returns the address of the control register for GPIO pin n.
func GPIOControl(n int) isa.Addr {
	return GPIOBase + isa.Addr(2*n)
}

// GPIOData returns the address of the data register for GPIO pin n.
func GPIOData(n int) isa.Addr {
	return GPIOBase + isa.Addr(2*n+1)
}

// ADCControl returns the address of the control register for ADC channel n.
func ADCControl(n int) isa.Addr {
	return ADCBase + isa.Addr(2*n)
}

// ADCData returns the address of the data register for ADC channel n.
func ADCData(n int) isa.Addr {
	return ADCBase + isa.Addr(2*n+1)
}

// PWMControl returns the address of the period register for PWM channel n.
func PWMControl(n int) isa.Addr {
	return PWMBase + isa.Addr(2*n)
}

// PWMData returns the address of the duty register for PWM channel n.
func PWMData(n int) isa.Addr {
	return PWMBase + isa.Addr(2*n+1)
}

// TimerControl returns the address of the mode register for timer n.
func TimerControl(n int) isa.Addr {
	return TMRBase + isa.Addr(2*n)
}

// TimerData returns the address of the period register for timer n.
func TimerData(n int) isa.Addr {
	return TMRBase + isa.Addr(2*n+1)
}

// OS configuration words. Written before boot and read by the boot code.
const (
	OSUserStart  = isa.Addr(0x0600)
	OSErrorOnACV = isa.Addr(0x0601)
	OSStartSP    = isa.Addr(0x0602)
)

// Bits common to device control registers.
const (
	StatusBit    = isa.Word(0x8000)
	InterruptBit = isa.Word(0x4000)
	ErrorBit     = isa.Word(0x2000)
)

// Canonical lists the canonical names of every mapped register. The map is
// not used during emulation. See Symbol() and the debugger.
var Canonical = map[isa.Addr]string{
	KBSR:   "KBSR",
	KBDR:   "KBDR",
	DSR:    "DSR",
	DDR:    "DDR",
	BSP:    "BSP",
	PSR:    "PSR",
	MCR:    "MCR",
	GPIODR: "GPIODR",
	CLKR:   "CLKR",
}

func init() {
	for n := 0; n < NumGPIO; n++ {
		Canonical[GPIOControl(n)] = fmt.Sprintf("G%dCR", n)
		Canonical[GPIOData(n)] = fmt.Sprintf("G%dDR", n)
	}
	for n := 0; n < NumADC; n++ {
		Canonical[ADCControl(n)] = fmt.Sprintf("A%dCR", n)
		Canonical[ADCData(n)] = fmt.Sprintf("A%dDR", n)
	}
	for n := 0; n < NumPWM; n++ {
		Canonical[PWMControl(n)] = fmt.Sprintf("P%dCR", n)
		Canonical[PWMData(n)] = fmt.Sprintf("P%dDR", n)
	}
	for n := 0; n < NumTimers; n++ {
		Canonical[TimerControl(n)] = fmt.Sprintf("T%dCR", n)
		Canonical[TimerData(n)] = fmt.Sprintf("T%dDR", n)
	}
}

// Symbol returns the canonical name of a mapped register, or the empty string
// if the address is not a mapped register.
func Symbol(addr isa.Addr) string {
	return Canonical[addr]
}
