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

package test

import (
	"fmt"
	"sync"
)

// RingWriter is an io.Writer that keeps only the most recent bytes written to
// it. Useful for checking the tail of program output that may be arbitrarily
// long.
type RingWriter struct {
	crit    sync.Mutex
	buffer  []byte
	cursor  int
	wrapped bool
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, size),
	}, nil
}

func (r *RingWriter) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()
	if r.wrapped {
		return string(r.buffer[r.cursor:]) + string(r.buffer[:r.cursor])
	}
	return string(r.buffer[:r.cursor])
}

// Reset empties the ring.
func (r *RingWriter) Reset() {
	r.crit.Lock()
	defer r.crit.Unlock()
	r.cursor = 0
	r.wrapped = false
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (int, error) {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := len(p)

	// only the tail of an oversized write can survive
	if len(p) >= len(r.buffer) {
		copy(r.buffer, p[len(p)-len(r.buffer):])
		r.cursor = 0
		r.wrapped = true
		return n, nil
	}

	for len(p) > 0 {
		c := copy(r.buffer[r.cursor:], p)
		p = p[c:]
		r.cursor += c
		if r.cursor == len(r.buffer) {
			r.cursor = 0
			r.wrapped = true
		}
	}

	return n, nil
}
