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

package main

import (
	"testing"

	"github.com/jetsetilly/lc3sim/test"
)

func TestParseChannels(t *testing.T) {
	chans, err := parseChannels("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(chans), 0)

	chans, err = parseChannels("0=a.wav, 3=b.mp3")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(chans), 2)
	test.ExpectEquality(t, chans[0], "a.wav")
	test.ExpectEquality(t, chans[3], "b.mp3")

	for _, s := range []string{"a.wav", "x=a.wav", "1=", "1=a.wav,1=b.wav"} {
		_, err = parseChannels(s)
		test.ExpectFailure(t, err, s)
	}
}

func TestSimulationClosers(t *testing.T) {
	var order []int
	sim := &simulation{}
	sim.closers = append(sim.closers,
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
	)
	test.ExpectSuccess(t, sim.end())
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 2)
	test.ExpectEquality(t, order[1], 1)
}
