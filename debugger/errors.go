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

// Sentinel error patterns. Test for them with curated.Is().
const (
	RegisterIndexError      = "debugger: no register with index %d"
	AddressRangeError       = "debugger: address %#x out of range"
	BreakpointExistsError   = "debugger: breakpoint already set at %s"
	BreakpointMissingError  = "debugger: no breakpoint at %s"
	BreakpointCapacityError = "debugger: no more than %d breakpoints"
)
