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

package memory

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Access records a single data access.
type Access struct {
	Addr  isa.Addr
	Value isa.Word
	Write bool
}

func (a Access) String() string {
	if a.Write {
		return fmt.Sprintf("write %s <- %04x", a.Addr, uint16(a.Value))
	}
	return fmt.Sprintf("read %s -> %04x", a.Addr, uint16(a.Value))
}

// MaxAccesses is the number of accesses that can be recorded during a single
// step. The longest sequence is exception entry from an LDI (two reads, two
// pushes and the vector read).
const MaxAccesses = 8

// AccessLog records the data accesses of the current step. Instruction fetches
// are not recorded.
type AccessLog struct {
	entries [MaxAccesses]Access
	count   int
}

// Reset the log. Called by the CPU at the start of every step.
func (l *AccessLog) Reset() {
	l.count = 0
}

func (l *AccessLog) record(addr isa.Addr, value isa.Word, write bool) {
	if l.count >= MaxAccesses {
		return
	}
	l.entries[l.count] = Access{Addr: addr, Value: value, Write: write}
	l.count++
}

// Accesses returns the accesses of the most recent step. The returned slice
// is only valid until the next step.
func (l *AccessLog) Accesses() []Access {
	return l.entries[:l.count]
}
