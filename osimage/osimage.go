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

package osimage

import (
	"github.com/jetsetilly/lc3sim/assembler"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
	"github.com/jetsetilly/lc3sim/imageloader"
)

// List of trap vectors.
const (
	GETC   isa.Word = 0x20
	OUT    isa.Word = 0x21
	PUTS   isa.Word = 0x22
	IN     isa.Word = 0x23
	PUTSP  isa.Word = 0x24
	HALT   isa.Word = 0x25
	INPOLL isa.Word = 0x26
	OUTRDY isa.Word = 0x27

	GPIOInput     isa.Word = 0x30
	GPIOOutput    isa.Word = 0x31
	GPIOInterrupt isa.Word = 0x32
	GPIODisable   isa.Word = 0x33
	GPIOMode      isa.Word = 0x34
	GPIOWrite     isa.Word = 0x35
	GPIORead      isa.Word = 0x36

	ADCEnable  isa.Word = 0x40
	ADCDisable isa.Word = 0x41
	ADCMode    isa.Word = 0x42
	ADCRead    isa.Word = 0x43

	PWMEnable  isa.Word = 0x50
	PWMDisable isa.Word = 0x51
	PWMPeriod  isa.Word = 0x52
	PWMDuty    isa.Word = 0x53

	TimerSingleShot isa.Word = 0x60
	TimerRepeat     isa.Word = 0x61
	TimerStop       isa.Word = 0x62
	TimerMode       isa.Word = 0x63
	TimerPeriod     isa.Word = 0x64

	ClockSet isa.Word = 0x70
	ClockGet isa.Word = 0x71
)

// Invalid is returned in R0 by a trap given an invalid pin, channel or timer.
const Invalid = isa.Word(0xffff)

// Default values of the configuration words.
const (
	DefaultUserStart  = isa.Word(0x3000)
	DefaultErrorOnACV = isa.Word(1)
	DefaultStartSP    = isa.Word(0x0700)
)

// Limits of the starting supervisor stack pointer.
const (
	MinStartSP = isa.Word(0x0604)
	MaxStartSP = isa.Word(0x3000)
)

// Boot is the address of the boot code.
const Boot = memorymap.OriginOS

// address of the first service routine
const routines = isa.Addr(0x1000)

// the stack and PSR the user program starts with
const (
	userStack = isa.Word(0xfe00)
	userPSR   = isa.Word(0x8002)
)

// exception vectors
const (
	vectorPMV = 0x00
	vectorILL = 0x01
	vectorACV = 0x02
)

type routine struct {
	vector isa.Word
	name   string
	emit   func(p *assembler.Program, label string)
}

// Names of the traps handled by the OS, indexed by vector.
var Names = map[isa.Word]string{}

var traps = []routine{
	{GETC, "GETC", getc},
	{OUT, "OUT", out},
	{PUTS, "PUTS", puts},
	{IN, "IN", in},
	{PUTSP, "PUTSP", putsp},
	{HALT, "HALT", halt},
	{INPOLL, "INPOLL", inpoll},
	{OUTRDY, "OUTRDY", outrdy},

	{GPIOInput, "GPIO_INPUT", gpioSetState(2)},
	{GPIOOutput, "GPIO_OUTPUT", gpioSetState(1)},
	{GPIOInterrupt, "GPIO_INTERRUPT", gpioSetState(3)},
	{GPIODisable, "GPIO_DISABLE", gpioSetState(0)},
	{GPIOMode, "GPIO_MODE", gpioMode},
	{GPIOWrite, "GPIO_WRITE", gpioWrite},
	{GPIORead, "GPIO_READ", gpioRead},

	{ADCEnable, "ADC_ENABLE", adcSetState(1)},
	{ADCDisable, "ADC_DISABLE", adcSetState(0)},
	{ADCMode, "ADC_MODE", adcMode},
	{ADCRead, "ADC_READ", adcRead},

	{PWMEnable, "PWM_ENABLE", pwmEnable},
	{PWMDisable, "PWM_DISABLE", pwmDisable},
	{PWMPeriod, "PWM_PERIOD", pwmPeriod},
	{PWMDuty, "PWM_DUTY", pwmDuty},

	{TimerSingleShot, "TIMER_SINGLESHOT", timerStart(1)},
	{TimerRepeat, "TIMER_REPEAT", timerStart(2)},
	{TimerStop, "TIMER_STOP", timerStop},
	{TimerMode, "TIMER_MODE", timerMode},
	{TimerPeriod, "TIMER_PERIOD", timerPeriod},

	{ClockSet, "CLOCK_SET", clockSet},
	{ClockGet, "CLOCK_GET", clockGet},
}

func init() {
	for _, r := range traps {
		Names[r.vector] = r.name
	}
}

// Build assembles the OS ROM.
func Build() (*imageloader.Image, error) {
	p := assembler.NewProgram("os")

	// trap vector table
	p.Orig(memorymap.OriginTrapTable)
	vectors := make(map[isa.Word]string)
	for _, r := range traps {
		vectors[r.vector] = r.name
	}
	for v := isa.Word(0); v <= 0xff; v++ {
		if n, ok := vectors[v]; ok {
			p.FillLabel(n)
		} else {
			p.FillLabel("bad_trap")
		}
	}

	// interrupt vector table
	p.Orig(memorymap.OriginInterruptTable)
	for v := 0; v <= 0xff; v++ {
		switch {
		case v == vectorPMV:
			p.FillLabel("pmv")
		case v == vectorILL:
			p.FillLabel("ill")
		case v == vectorACV:
			p.FillLabel("acv")
		case isSource(isa.Word(v)):
			p.FillLabel("isr")
		default:
			p.FillLabel("isr_unused")
		}
	}

	p.Orig(Boot)
	boot(p)

	p.Orig(addresses.OSUserStart)
	p.Fill(DefaultUserStart, DefaultErrorOnACV, DefaultStartSP)

	p.Orig(routines)
	for _, r := range traps {
		p.Label(r.name)
		r.emit(p, r.name)
		p.Pool()
	}
	exceptions(p)

	return p.Assemble()
}

// the vectors of the interrupt sources
func isSource(v isa.Word) bool {
	return v == 0x80 || v == 0x81 || v == 0x88 || v == 0x89 || (v >= 0x90 && v <= 0x97)
}

func boot(p *assembler.Program) {
	p.LDIc(isa.SP, addresses.OSStartSP)

	p.LDc(isa.R0, userStack)
	p.STIc(isa.R0, addresses.BSP)

	p.LDc(isa.R0, userPSR)
	p.Push(isa.R0)
	p.LDIc(isa.R0, addresses.OSUserStart)
	p.Push(isa.R0)

	for _, r := range []isa.Reg{isa.R0, isa.R1, isa.R2, isa.R3, isa.R4, isa.R5, isa.R7} {
		p.Clear(r)
	}
	p.RTI()
	p.Pool()
}
