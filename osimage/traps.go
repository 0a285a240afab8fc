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
)

const (
	zp  = isa.Z | isa.P
	np  = isa.N | isa.P
	nzp = isa.NZP
)

// wait for the display to be ready and then write register r. tmp is
// clobbered
func display(p *assembler.Program, r isa.Reg, tmp isa.Reg, label string) {
	p.Label(label)
	p.LDIc(tmp, addresses.DSR)
	p.BR(zp, label)
	p.STIc(r, addresses.DDR)
}

func getc(p *assembler.Program, label string) {
	p.LDIc(isa.R0, addresses.KBSR)
	p.BR(zp, label)
	p.LDIc(isa.R0, addresses.KBDR)
	p.RTI()
}

func out(p *assembler.Program, label string) {
	p.Push(isa.R1)
	display(p, isa.R0, isa.R1, label+"_wait")
	p.Pop(isa.R1)
	p.RTI()
}

func puts(p *assembler.Program, label string) {
	p.Push(isa.R0)
	p.Push(isa.R1)
	p.Push(isa.R2)
	p.Label(label + "_loop")
	p.LDR(isa.R1, isa.R0, 0)
	p.BR(isa.Z, label+"_done")
	display(p, isa.R1, isa.R2, label+"_wait")
	p.ADDi(isa.R0, isa.R0, 1)
	p.BR(nzp, label+"_loop")
	p.Label(label + "_done")
	p.Pop(isa.R2)
	p.Pop(isa.R1)
	p.Pop(isa.R0)
	p.RTI()
}

func in(p *assembler.Program, label string) {
	p.Push(isa.R1)
	p.Push(isa.R7)
	p.LEA(isa.R0, label+"_prompt")
	p.TRAP(PUTS)
	p.TRAP(GETC)
	p.TRAP(OUT)
	p.ADDi(isa.R1, isa.R0, 0)
	p.Clear(isa.R0)
	p.ADDi(isa.R0, isa.R0, '\n')
	p.TRAP(OUT)
	p.ADDi(isa.R0, isa.R1, 0)
	p.Pop(isa.R7)
	p.Pop(isa.R1)
	p.RTI()
	p.Label(label + "_prompt")
	p.Stringz("\nInput a character> ")
}

// two characters per word, low byte first. a zero high byte ends the string
// as does a zero word
func putsp(p *assembler.Program, label string) {
	saved := []isa.Reg{isa.R0, isa.R1, isa.R2, isa.R3, isa.R4, isa.R5}
	for _, r := range saved {
		p.Push(r)
	}

	p.Label(label + "_loop")
	p.LDR(isa.R1, isa.R0, 0)
	p.BR(isa.Z, label+"_done")
	p.LDc(isa.R3, 0x00ff)
	p.AND(isa.R2, isa.R1, isa.R3)
	display(p, isa.R2, isa.R5, label+"_lo")

	// shift the high byte into R2. R3 is the bit being tested and R4 the bit
	// to set in the result
	p.Clear(isa.R2)
	p.LDc(isa.R3, 0x0100)
	p.Clear(isa.R4)
	p.ADDi(isa.R4, isa.R4, 1)
	p.Label(label + "_bit")
	p.AND(isa.R5, isa.R1, isa.R3)
	p.BR(isa.Z, label+"_skip")
	p.ADD(isa.R2, isa.R2, isa.R4)
	p.Label(label + "_skip")
	p.ADD(isa.R4, isa.R4, isa.R4)
	p.ADD(isa.R3, isa.R3, isa.R3)
	p.BR(np, label+"_bit")

	p.ADDi(isa.R2, isa.R2, 0)
	p.BR(isa.Z, label+"_done")
	display(p, isa.R2, isa.R5, label+"_hi")
	p.ADDi(isa.R0, isa.R0, 1)
	p.BR(nzp, label+"_loop")

	p.Label(label + "_done")
	for i := len(saved) - 1; i >= 0; i-- {
		p.Pop(saved[i])
	}
	p.RTI()
}

// clearing the run bit stops the machine after the STI. R0 and R1 hold the
// caller's values when the machine stops. R7 holds the value written to the
// MCR until the machine is restarted, at which point the trap restores it and
// returns to the caller
func halt(p *assembler.Program, label string) {
	p.ST(isa.R0, label+"_r0")
	p.ST(isa.R1, label+"_r1")
	p.ST(isa.R7, label+"_r7")
	p.LDIc(isa.R0, addresses.MCR)
	p.LDc(isa.R1, 0x7fff)
	p.AND(isa.R7, isa.R0, isa.R1)
	p.LD(isa.R0, label+"_r0")
	p.LD(isa.R1, label+"_r1")
	p.STIc(isa.R7, addresses.MCR)
	p.LD(isa.R7, label+"_r7")
	p.RTI()
	p.Label(label + "_r0")
	p.Fill(0)
	p.Label(label + "_r1")
	p.Fill(0)
	p.Label(label + "_r7")
	p.Fill(0)
}

func inpoll(p *assembler.Program, label string) {
	p.LDIc(isa.R0, addresses.KBSR)
	p.BR(isa.N, label+"_ready")
	p.LDc(isa.R0, Invalid)
	p.RTI()
	p.Label(label + "_ready")
	p.LDIc(isa.R0, addresses.KBDR)
	p.RTI()
}

func outrdy(p *assembler.Program, label string) {
	p.LDIc(isa.R0, addresses.DSR)
	p.BR(isa.N, label+"_ready")
	p.Clear(isa.R0)
	p.RTI()
	p.Label(label + "_ready")
	p.Clear(isa.R0)
	p.ADDi(isa.R0, isa.R0, 1)
	p.RTI()
}

// bank emits a trap that acts on one member of a bank of control/data
// register pairs. R0 is validated against count and R3 is set to the address
// of the control register before body is emitted. R3 and R4 are available to
// the body. the body can branch to label+"_invalid"
func bank(p *assembler.Program, label string, count int, base isa.Addr, body func()) {
	p.Push(isa.R3)
	p.Push(isa.R4)

	p.LDc(isa.R4, 0xfff8)
	p.AND(isa.R4, isa.R0, isa.R4)
	p.BR(np, label+"_invalid")
	p.ADDi(isa.R4, isa.R0, -count)
	p.BR(zp, label+"_invalid")

	p.LDc(isa.R3, isa.Word(base))
	p.ADD(isa.R3, isa.R3, isa.R0)
	p.ADD(isa.R3, isa.R3, isa.R0)

	body()
	p.BR(nzp, label+"_exit")

	p.Label(label + "_invalid")
	p.LDc(isa.R0, Invalid)
	p.Label(label + "_exit")
	p.Pop(isa.R4)
	p.Pop(isa.R3)
	p.RTI()
}

// write the value to the control register
func setControl(p *assembler.Program, v int) {
	p.Clear(isa.R4)
	if v != 0 {
		p.ADDi(isa.R4, isa.R4, v)
	}
	p.STR(isa.R4, isa.R3, 0)
}

func gpioSetState(state int) func(*assembler.Program, string) {
	return func(p *assembler.Program, label string) {
		bank(p, label, addresses.NumGPIO, addresses.GPIOBase, func() {
			setControl(p, state)
		})
	}
}

func gpioMode(p *assembler.Program, label string) {
	bank(p, label, addresses.NumGPIO, addresses.GPIOBase, func() {
		p.LDR(isa.R0, isa.R3, 0)
		p.ANDi(isa.R0, isa.R0, 3)
	})
}

func gpioWrite(p *assembler.Program, label string) {
	bank(p, label, addresses.NumGPIO, addresses.GPIOBase, func() {
		p.ANDi(isa.R4, isa.R1, 1)
		p.STR(isa.R4, isa.R3, 1)
	})
}

func gpioRead(p *assembler.Program, label string) {
	bank(p, label, addresses.NumGPIO, addresses.GPIOBase, func() {
		p.LDR(isa.R0, isa.R3, 1)
		p.ANDi(isa.R0, isa.R0, 1)
	})
}

func adcSetState(state int) func(*assembler.Program, string) {
	return func(p *assembler.Program, label string) {
		bank(p, label, addresses.NumADC, addresses.ADCBase, func() {
			setControl(p, state)
		})
	}
}

func adcMode(p *assembler.Program, label string) {
	bank(p, label, addresses.NumADC, addresses.ADCBase, func() {
		p.LDR(isa.R0, isa.R3, 0)
		p.ANDi(isa.R0, isa.R0, 1)
	})
}

func adcRead(p *assembler.Program, label string) {
	bank(p, label, addresses.NumADC, addresses.ADCBase, func() {
		p.LDR(isa.R0, isa.R3, 1)
	})
}

func pwmEnable(p *assembler.Program, label string) {
	bank(p, label, addresses.NumPWM, addresses.PWMBase, func() {
		p.LDc(isa.R4, 0x00ff)
		p.AND(isa.R4, isa.R1, isa.R4)
		p.BR(isa.Z, label+"_invalid")
		p.STR(isa.R2, isa.R3, 1)
		p.STR(isa.R1, isa.R3, 0)
	})
}

func pwmDisable(p *assembler.Program, label string) {
	bank(p, label, addresses.NumPWM, addresses.PWMBase, func() {
		setControl(p, 0)
	})
}

func pwmPeriod(p *assembler.Program, label string) {
	bank(p, label, addresses.NumPWM, addresses.PWMBase, func() {
		p.LDR(isa.R0, isa.R3, 0)
		p.LDc(isa.R4, 0x00ff)
		p.AND(isa.R0, isa.R0, isa.R4)
	})
}

func pwmDuty(p *assembler.Program, label string) {
	bank(p, label, addresses.NumPWM, addresses.PWMBase, func() {
		p.LDR(isa.R0, isa.R3, 1)
	})
}

// the period is written first because setting the mode starts the timer
func timerStart(mode int) func(*assembler.Program, string) {
	return func(p *assembler.Program, label string) {
		bank(p, label, addresses.NumTimers, addresses.TMRBase, func() {
			p.STR(isa.R1, isa.R3, 1)
			setControl(p, mode)
		})
	}
}

func timerStop(p *assembler.Program, label string) {
	bank(p, label, addresses.NumTimers, addresses.TMRBase, func() {
		setControl(p, 0)
	})
}

func timerMode(p *assembler.Program, label string) {
	bank(p, label, addresses.NumTimers, addresses.TMRBase, func() {
		p.LDR(isa.R0, isa.R3, 0)
		p.ANDi(isa.R0, isa.R0, 3)
	})
}

func timerPeriod(p *assembler.Program, label string) {
	bank(p, label, addresses.NumTimers, addresses.TMRBase, func() {
		p.LDR(isa.R0, isa.R3, 1)
	})
}

func clockSet(p *assembler.Program, _ string) {
	p.STIc(isa.R0, addresses.CLKR)
	p.RTI()
}

func clockGet(p *assembler.Program, _ string) {
	p.LDIc(isa.R0, addresses.CLKR)
	p.RTI()
}
