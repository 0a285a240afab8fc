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

package hardware

import (
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware/cpu/execution"
)

// It can be expensive to do a full continue check after every instruction.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. Run returns when the
// machine halts or when continueCheck() returns the Ending state.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			if m.Step().Outcome == execution.Halted {
				return nil
			}
		case govern.Paused:
		default:
			return curated.Errorf("machine: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForSteps runs the machine for at most n steps. It returns the number of
// steps taken, which is fewer than n if the machine halts.
func (m *Machine) RunForSteps(n int) int {
	for i := 0; i < n; i++ {
		res := m.Step()
		if res.Outcome == execution.Halted {
			if res.Fetched {
				return i + 1
			}
			return i
		}
	}
	return n
}
