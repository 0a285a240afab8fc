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

// Package interrupts implements the priority interrupt controller. The
// controller does not know anything about the devices that raise interrupts
// or about the CPU that services them. Devices (or the register layer polling
// them) call Raise(). The CPU calls Select() between instructions and Clear()
// when it services a source.
package interrupts

import (
	"strings"
	"sync/atomic"
)

// Controller holds the pending and enable masks for every Source.
type Controller struct {
	// pending can be set from any goroutine. repeated raises of the same
	// source coalesce into one pending bit
	pending atomic.Uint32

	// enable mask is only touched by the emulation goroutine
	enabled uint32
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) String() string {
	s := strings.Builder{}
	p := c.pending.Load()
	for i := Source(0); i < NumSources; i++ {
		if p&(1<<i) == 0 {
			continue
		}
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(i.String())
		if c.enabled&(1<<i) == 0 {
			s.WriteString("(masked)")
		}
	}
	if s.Len() == 0 {
		return "no pending interrupts"
	}
	return s.String()
}

// Reset clears both masks.
func (c *Controller) Reset() {
	c.pending.Store(0)
	c.enabled = 0
}

// Raise sets the pending bit for the source. It is safe to call from any
// goroutine.
func (c *Controller) Raise(s Source) {
	bit := uint32(1) << s
	for {
		p := c.pending.Load()
		if p&bit == bit || c.pending.CompareAndSwap(p, p|bit) {
			return
		}
	}
}

// Clear the pending bit for the source.
func (c *Controller) Clear(s Source) {
	bit := uint32(1) << s
	for {
		p := c.pending.Load()
		if p&bit == 0 || c.pending.CompareAndSwap(p, p&^bit) {
			return
		}
	}
}

// Pending returns true if the source has a pending interrupt.
func (c *Controller) Pending(s Source) bool {
	return c.pending.Load()&(1<<s) != 0
}

// SetEnabled sets or clears the enable bit for the source.
func (c *Controller) SetEnabled(s Source, enabled bool) {
	if enabled {
		c.enabled |= 1 << s
	} else {
		c.enabled &^= 1 << s
	}
}

// Enabled returns true if interrupts from the source are enabled.
func (c *Controller) Enabled(s Source) bool {
	return c.enabled&(1<<s) != 0
}

// Select returns the source that should be serviced given the current
// processor priority. A source qualifies if it is pending, enabled and its
// priority is strictly greater than the processor priority. Of the qualifying
// sources, the one with the highest priority is returned, ties going to the
// lower source index.
func (c *Controller) Select(priority uint8) (Source, bool) {
	ready := c.pending.Load() & c.enabled
	if ready == 0 {
		return 0, false
	}

	best := NumSources
	for s := Source(0); s < NumSources; s++ {
		if ready&(1<<s) == 0 {
			continue
		}
		p := Definitions[s].Priority
		if p <= priority {
			continue
		}
		if best == NumSources || p > Definitions[best].Priority {
			best = s
		}
	}

	return best, best != NumSources
}
