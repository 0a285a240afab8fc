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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware"
)

// sentinel error returned by the Run() loop
var timedOut = errors.New("performance timed out")

// Check the performance of the machine by running it for the duration, or
// until it halts. The machine should already have been booted and have a
// program loaded.
//
// The result is written to output as millions of instructions per second.
func Check(output io.Writer, m *hardware.Machine, profile Profile, duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("performance: duration must be positive (%s)", duration)
	}

	var elapsed time.Duration
	startSteps := m.Steps()

	runner := func() error {
		// only check for the end of the measurement period every
		// PerformanceBrake instructions
		var brake int

		start := time.Now()
		timer := time.NewTimer(duration)
		defer timer.Stop()

		err := m.Run(func() (govern.State, error) {
			brake++
			if brake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			brake = 0

			select {
			case <-timer.C:
				return govern.Ending, timedOut
			default:
			}
			return govern.Running, nil
		})

		elapsed = time.Since(start)
		return err
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	steps := m.Steps() - startSteps
	mips := float64(steps) / elapsed.Seconds() / 1e6
	fmt.Fprintf(output, "%.2f MIPS (%d instructions in %.2f seconds)\n", mips, steps, elapsed.Seconds())
	if m.Halted() {
		fmt.Fprintln(output, "machine halted before the end of the measurement period")
	}

	return nil
}
