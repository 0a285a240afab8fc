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

package terminal_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/terminal"
	"github.com/jetsetilly/lc3sim/logger"
	"github.com/jetsetilly/lc3sim/remote"
	"github.com/jetsetilly/lc3sim/test"
)

func TestPipes(t *testing.T) {
	inR, inW, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer inR.Close()
	defer inW.Close()

	outR, outW, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer outR.Close()

	in, err := shims.NewInput(remote.FrameCapacity, remote.MaxMessageSize)
	test.DemandSuccess(t, err)
	out, err := shims.NewOutput(remote.FrameCapacity, remote.MaxMessageSize)
	test.DemandSuccess(t, err)

	trm, err := terminal.NewTerminal(logger.Allow, inR, outW, in, out)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, trm.IsTerminal(), false)
	test.DemandSuccess(t, trm.Start())

	_, err = inW.Write([]byte("hello"))
	test.DemandSuccess(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for in.Ring().Len() < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.DemandEquality(t, in.Ring().Len(), 5)

	var s []byte
	for in.CurrentDataUnread() {
		b, err := in.ReadData()
		test.ExpectSuccess(t, err)
		s = append(s, b)
	}
	test.ExpectEquality(t, string(s), "hello")

	for _, b := range []byte("world") {
		test.ExpectSuccess(t, out.WriteData(b))
	}

	trm.CleanUp()
	test.ExpectSuccess(t, trm.Err())
	test.DemandSuccess(t, outW.Close())

	o, err := io.ReadAll(outR)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(o), "world")
}

func TestMissingFiles(t *testing.T) {
	in, err := shims.NewInput(remote.FrameCapacity, remote.MaxMessageSize)
	test.DemandSuccess(t, err)
	out, err := shims.NewOutput(remote.FrameCapacity, remote.MaxMessageSize)
	test.DemandSuccess(t, err)

	_, err = terminal.NewTerminal(logger.Allow, nil, os.Stdout, in, out)
	test.ExpectFailure(t, err)
	_, err = terminal.NewTerminal(logger.Allow, os.Stdin, nil, in, out)
	test.ExpectFailure(t, err)
}
