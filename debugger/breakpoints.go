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
	"slices"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// MaxBreakpoints is the number of breakpoints that can be set at once. The
// same limit applies separately to watchpoints.
const MaxBreakpoints = 16

// sorted list of PC addresses
type breakpoints struct {
	addrs []isa.Addr
}

func (bp *breakpoints) contains(addr isa.Addr) bool {
	_, ok := slices.BinarySearch(bp.addrs, addr)
	return ok
}

// SetBreakpoint adds a breakpoint at the address.
func (dbg *Debugger) SetBreakpoint(addr int) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	a := isa.Addr(addr)

	bp := &dbg.breakpoints
	i, ok := slices.BinarySearch(bp.addrs, a)
	if ok {
		return curated.Errorf(BreakpointExistsError, a)
	}
	if len(bp.addrs) >= MaxBreakpoints {
		return curated.Errorf(BreakpointCapacityError, MaxBreakpoints)
	}
	bp.addrs = slices.Insert(bp.addrs, i, a)
	return nil
}

// ClearBreakpoint removes the breakpoint at the address.
func (dbg *Debugger) ClearBreakpoint(addr int) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	a := isa.Addr(addr)

	bp := &dbg.breakpoints
	i, ok := slices.BinarySearch(bp.addrs, a)
	if !ok {
		return curated.Errorf(BreakpointMissingError, a)
	}
	bp.addrs = slices.Delete(bp.addrs, i, i+1)
	return nil
}

// Breakpoints returns the addresses of every breakpoint in ascending order.
func (dbg *Debugger) Breakpoints() []isa.Addr {
	return slices.Clone(dbg.breakpoints.addrs)
}
