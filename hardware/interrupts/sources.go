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

package interrupts

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Source identifies a device that can raise an interrupt. The order of the
// list decides ties between sources with the same priority. Lower values win.
type Source int

// List of interrupt sources.
const (
	Keyboard Source = iota
	Display
	GPIO0
	GPIO1
	GPIO2
	GPIO3
	GPIO4
	GPIO5
	GPIO6
	GPIO7
	Timer0
	Timer1

	NumSources
)

// GPIOSource returns the Source for the GPIO pin.
func GPIOSource(pin int) Source {
	return GPIO0 + Source(pin)
}

// TimerSource returns the Source for the timer.
func TimerSource(id int) Source {
	return Timer0 + Source(id)
}

// Definition is the fixed vector and priority of a source.
type Definition struct {
	Label    string
	Vector   isa.Word
	Priority uint8
}

// Definitions is indexed by Source.
var Definitions = [NumSources]Definition{
	Keyboard: {Label: "keyboard", Vector: 0x80, Priority: 4},
	Display:  {Label: "display", Vector: 0x81, Priority: 4},
	GPIO0:    {Label: "gpio0", Vector: 0x90, Priority: 3},
	GPIO1:    {Label: "gpio1", Vector: 0x91, Priority: 3},
	GPIO2:    {Label: "gpio2", Vector: 0x92, Priority: 3},
	GPIO3:    {Label: "gpio3", Vector: 0x93, Priority: 3},
	GPIO4:    {Label: "gpio4", Vector: 0x94, Priority: 3},
	GPIO5:    {Label: "gpio5", Vector: 0x95, Priority: 3},
	GPIO6:    {Label: "gpio6", Vector: 0x96, Priority: 3},
	GPIO7:    {Label: "gpio7", Vector: 0x97, Priority: 3},
	Timer0:   {Label: "timer0", Vector: 0x88, Priority: 2},
	Timer1:   {Label: "timer1", Vector: 0x89, Priority: 2},
}

func (s Source) String() string {
	if s < 0 || s >= NumSources {
		return fmt.Sprintf("source %d", int(s))
	}
	return Definitions[s].Label
}

// Vector returns the interrupt vector for the source.
func (s Source) Vector() isa.Word {
	return Definitions[s].Vector
}

// Priority returns the static priority of the source.
func (s Source) Priority() uint8 {
	return Definitions[s].Priority
}
