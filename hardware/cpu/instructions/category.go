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

package instructions

// Category of an instruction describes its effect.
type Category int

// List of valid Category values.
const (
	Operate Category = iota
	Read
	Write
	Flow
	Subroutine
	Interrupt
	Illegal
)

func (e Category) String() string {
	switch e {
	case Operate:
		return "Operate"
	case Read:
		return "Read"
	case Write:
		return "Write"
	case Flow:
		return "Flow"
	case Subroutine:
		return "Subroutine"
	case Interrupt:
		return "Interrupt"
	case Illegal:
		return "Illegal"
	}
	return "unknown effect"
}
