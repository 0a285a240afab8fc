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

package debugger

import (
	"fmt"
	"slices"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
)

// WatchKind specifies which accesses trigger a watchpoint.
type WatchKind int

// List of valid WatchKind values.
const (
	WatchAny WatchKind = iota
	WatchRead
	WatchWrite
)

func (k WatchKind) String() string {
	switch k {
	case WatchRead:
		return "read"
	case WatchWrite:
		return "write"
	}
	return "any"
}

func (k WatchKind) matches(write bool) bool {
	switch k {
	case WatchRead:
		return !write
	case WatchWrite:
		return write
	}
	return true
}

// Watchpoint is a data address being watched.
type Watchpoint struct {
	Addr isa.Addr
	Kind WatchKind
}

func (w Watchpoint) String() string {
	return fmt.Sprintf("%s (%s)", w.Addr, w.Kind)
}

// watchpoints sorted by address
type watches struct {
	list []Watchpoint
}

func (wt *watches) find(a isa.Addr) (int, bool) {
	return slices.BinarySearchFunc(wt.list, a, func(w Watchpoint, a isa.Addr) int {
		return int(w.Addr) - int(a)
	})
}

// check the accesses of the most recent step. the first matching access is
// copied to hit
func (wt *watches) check(accesses []memory.Access, hit *memory.Access) bool {
	if len(wt.list) == 0 {
		return false
	}
	for _, acc := range accesses {
		if i, ok := wt.find(acc.Addr); ok && wt.list[i].Kind.matches(acc.Write) {
			*hit = acc
			return true
		}
	}
	return false
}

// SetWatchpoint adds a watchpoint to the address. Instruction fetches do not
// trigger a watchpoint.
func (dbg *Debugger) SetWatchpoint(addr int, kind WatchKind) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	a := isa.Addr(addr)

	wt := &dbg.watches
	i, ok := wt.find(a)
	if ok {
		return curated.Errorf(BreakpointExistsError, a)
	}
	if len(wt.list) >= MaxBreakpoints {
		return curated.Errorf(BreakpointCapacityError, MaxBreakpoints)
	}
	wt.list = slices.Insert(wt.list, i, Watchpoint{Addr: a, Kind: kind})
	return nil
}

// ClearWatchpoint removes the watchpoint from the address.
func (dbg *Debugger) ClearWatchpoint(addr int) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	a := isa.Addr(addr)

	wt := &dbg.watches
	i, ok := wt.find(a)
	if !ok {
		return curated.Errorf(BreakpointMissingError, a)
	}
	wt.list = slices.Delete(wt.list, i, i+1)
	return nil
}

// Watchpoints returns every watchpoint in address order.
func (dbg *Debugger) Watchpoints() []Watchpoint {
	return slices.Clone(dbg.watches.list)
}
