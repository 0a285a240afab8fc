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
	"errors"
	"io"

	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/ring"
)

const outputLabel = "output"

var errOutputFull = errors.New("output buffer full")

// Output implements the peripherals.Output interface. Bytes written by the
// machine are committed to the ring buffer and consumed by the host with
// Drain().
type Output struct {
	ring *ring.Buffer

	ie   bool
	flag bool

	// readiness at the previous call to InterruptOccurred()
	ready bool
}

// NewOutput is the preferred method of initialisation for the Output type.
func NewOutput(capacity int, maxMessage int) (*Output, error) {
	r, err := ring.NewBuffer(capacity, maxMessage)
	if err != nil {
		return nil, err
	}
	return &Output{ring: r, ready: true}, nil
}

// Ring returns the ring buffer. The host is the consumer.
func (out *Output) Ring() *ring.Buffer {
	return out.ring
}

// Drain writes every committed byte to w. Consumer side only.
func (out *Output) Drain(w io.Writer) (int, error) {
	var n int
	for {
		r := out.ring.Read()
		if len(r) == 0 {
			return n, nil
		}
		c, err := w.Write(r)
		n += c
		if err := out.ring.Release(c); err != nil {
			return n, err
		}
		if err != nil {
			return n, err
		}
	}
}

// WriteData implements the peripherals.Output interface.
func (out *Output) WriteData(b byte) error {
	if out.ring.Push([]byte{b}) == 0 {
		return peripherals.NewBackingError(outputLabel, errOutputFull)
	}

	// the shim completes the transmission immediately
	out.flag = true
	return nil
}

// CurrentDataWritten implements the peripherals.Output interface.
func (out *Output) CurrentDataWritten() bool {
	return out.ring.Free() > 0
}

// SetInterruptsEnabled implements the peripherals.Output interface.
func (out *Output) SetInterruptsEnabled(enabled bool) {
	out.ie = enabled
}

// InterruptOccurred implements the peripherals.Output interface.
func (out *Output) InterruptOccurred() bool {
	ready := out.CurrentDataWritten()
	if ready && !out.ready {
		out.flag = true
	}
	out.ready = ready
	return out.flag && ready
}

// ResetInterruptFlag implements the peripherals.Output interface.
func (out *Output) ResetInterruptFlag() {
	out.flag = false
}

// InterruptsEnabled implements the peripherals.Output interface.
func (out *Output) InterruptsEnabled() bool {
	return out.ie
}
