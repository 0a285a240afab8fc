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
)

// Clock implements the peripherals.Clock interface.
type Clock struct {
	src  clocks.Source
	base time.Duration
}

// NewClock is the preferred method of initialisation for the Clock type. The
// clock starts at zero.
func NewClock(src clocks.Source) *Clock {
	return &Clock{
		src:  src,
		base: src.Now(),
	}
}

// Milliseconds implements the peripherals.Clock interface.
func (c *Clock) Milliseconds() uint16 {
	return uint16((c.src.Now() - c.base) / time.Millisecond)
}

// SetMilliseconds implements the peripherals.Clock interface.
func (c *Clock) SetMilliseconds(ms uint16) {
	c.base = c.src.Now() - time.Duration(ms)*time.Millisecond
}
