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

package devices

import (
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
)

// the kind of register at an address in the device page
type kind int

const (
	unmapped kind = iota
	kbsr
	kbdr
	dsr
	ddr
	bsp
	psr
	mcr
	gpioControl
	gpioData
	gpioAll
	adcControl
	adcData
	pwmPeriod
	pwmDuty
	timerControl
	timerPeriod
	clkr
)

type register struct {
	kind kind

	// pin, channel or timer number
	idx int
}

// number of addresses in the device page
const pageSize = int(memorymap.MemtopDevices-memorymap.OriginDevices) + 1

// dispatch table for the device page
type table [pageSize]register

func (t *table) lookup(addr isa.Addr) register {
	return t[addr-memorymap.OriginDevices]
}

func (t *table) set(addr isa.Addr, r register) {
	t[addr-memorymap.OriginDevices] = r
}

func newTable() *table {
	t := &table{}
	t.set(addresses.KBSR, register{kind: kbsr})
	t.set(addresses.KBDR, register{kind: kbdr})
	t.set(addresses.DSR, register{kind: dsr})
	t.set(addresses.DDR, register{kind: ddr})
	t.set(addresses.BSP, register{kind: bsp})
	t.set(addresses.PSR, register{kind: psr})
	t.set(addresses.MCR, register{kind: mcr})
	for n := 0; n < addresses.NumGPIO; n++ {
		t.set(addresses.GPIOControl(n), register{kind: gpioControl, idx: n})
		t.set(addresses.GPIOData(n), register{kind: gpioData, idx: n})
	}
	t.set(addresses.GPIODR, register{kind: gpioAll})
	for n := 0; n < addresses.NumADC; n++ {
		t.set(addresses.ADCControl(n), register{kind: adcControl, idx: n})
		t.set(addresses.ADCData(n), register{kind: adcData, idx: n})
	}
	for n := 0; n < addresses.NumPWM; n++ {
		t.set(addresses.PWMControl(n), register{kind: pwmPeriod, idx: n})
		t.set(addresses.PWMData(n), register{kind: pwmDuty, idx: n})
	}
	for n := 0; n < addresses.NumTimers; n++ {
		t.set(addresses.TimerControl(n), register{kind: timerControl, idx: n})
		t.set(addresses.TimerData(n), register{kind: timerPeriod, idx: n})
	}
	t.set(addresses.CLKR, register{kind: clkr})
	return t
}
