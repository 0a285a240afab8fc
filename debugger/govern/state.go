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

package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// Initialising is the state of the machine before Boot() has completed.
// Halted is entered when the MCR run bit is cleared. A halted machine can be
// resumed by resetting the run bit, either by the debugger or by a reset.
const (
	Initialising State = iota
	Paused
	Stepping
	Running
	Halted
	Ending
)

func (s State) String() string {
	switch s {
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Ending:
		return "Ending"
	}

	return ""
}

// Event is the reason a run of the emulation came to an end.
type Event int

// List of possible events.
const (
	EventNone Event = iota
	EventHalt
	EventBreakpoint
	EventWatchpoint
	EventCancelled
)

func (e Event) String() string {
	switch e {
	case EventHalt:
		return "halt"
	case EventBreakpoint:
		return "breakpoint"
	case EventWatchpoint:
		return "watchpoint"
	case EventCancelled:
		return "cancelled"
	}

	return ""
}
