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
	"github.com/jetsetilly/lc3sim/hardware/peripherals/ring"
)

// Input implements the peripherals.Input interface. Bytes are committed to
// the ring buffer by the host (the producer) and consumed by the machine.
type Input struct {
	ring *ring.Buffer

	ie bool

	// ring counters at the most recent acknowledgement. an interrupt is
	// outstanding if a byte has arrived or a new byte has become current
	// since then
	acknowledged bool
	ackCommitted uint64
	ackReleased  uint64
}

// NewInput is the preferred method of initialisation for the Input type.
func NewInput(capacity int, maxMessage int) (*Input, error) {
	r, err := ring.NewBuffer(capacity, maxMessage)
	if err != nil {
		return nil, err
	}
	return &Input{ring: r}, nil
}

// Ring returns the ring buffer. The host is the producer.
func (in *Input) Ring() *ring.Buffer {
	return in.ring
}

// Push is a convenience function for the producer side. It returns the
// number of bytes that fit in the ring.
func (in *Input) Push(p []byte) int {
	return in.ring.Push(p)
}

// ReadData implements the peripherals.Input interface.
func (in *Input) ReadData() (byte, error) {
	v, _ := in.ring.Pop()
	return v, nil
}

// CurrentDataUnread implements the peripherals.Input interface.
func (in *Input) CurrentDataUnread() bool {
	return in.ring.Len() > 0
}

// SetInterruptsEnabled implements the peripherals.Input interface.
func (in *Input) SetInterruptsEnabled(enabled bool) {
	in.ie = enabled
}

// InterruptOccurred implements the peripherals.Input interface.
func (in *Input) InterruptOccurred() bool {
	if in.ring.Len() == 0 {
		return false
	}
	if !in.acknowledged {
		return true
	}
	return in.ring.Committed() != in.ackCommitted || in.ring.Released() != in.ackReleased
}

// ResetInterruptFlag implements the peripherals.Input interface.
func (in *Input) ResetInterruptFlag() {
	in.acknowledged = true
	in.ackCommitted = in.ring.Committed()
	in.ackReleased = in.ring.Released()
}

// InterruptsEnabled implements the peripherals.Input interface.
func (in *Input) InterruptsEnabled() bool {
	return in.ie
}
