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

package govern_test

import (
	"testing"

	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/test"
)

func TestStrings(t *testing.T) {
	test.ExpectEquality(t, govern.Running.String(), "Running")
	test.ExpectEquality(t, govern.Halted.String(), "Halted")
	test.ExpectEquality(t, govern.EventBreakpoint.String(), "breakpoint")
	test.ExpectEquality(t, govern.EventNone.String(), "")
}
