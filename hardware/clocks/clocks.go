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

// Package clocks provides the time sources for the timer and clock
// peripherals. The Realtime source follows the host's monotonic clock. The
// Manual source only moves when told to and is used by tests and by the
// debugger when stepping.
package clocks

import (
	"sync/atomic"
	"time"
)

// Source is a monotonic source of time.
type Source interface {
	// the time elapsed since the source was created
	Now() time.Duration
}

// Realtime is a Source that follows the host clock.
type Realtime struct {
	start time.Time
}

// NewRealtime is the preferred method of initialisation for the Realtime type.
func NewRealtime() *Realtime {
	return &Realtime{start: time.Now()}
}

// Now implements the Source interface.
func (r *Realtime) Now() time.Duration {
	return time.Since(r.start)
}

// Manual is a Source that is advanced explicitly. It is safe to advance from
// a different goroutine to the one reading it.
type Manual struct {
	now atomic.Int64
}

// NewManual is the preferred method of initialisation for the Manual type.
func NewManual() *Manual {
	return &Manual{}
}

// Now implements the Source interface.
func (m *Manual) Now() time.Duration {
	return time.Duration(m.now.Load())
}

// Advance moves the clock forward. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d > 0 {
		m.now.Add(int64(d))
	}
}
