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

package remote_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/remote"
	"github.com/jetsetilly/lc3sim/test"
)

func TestFrameCapacity(t *testing.T) {
	test.ExpectSuccess(t, remote.FrameCapacity > 3*remote.MaxMessageSize)
}

func TestPipe(t *testing.T) {
	a, b, err := remote.NewPipe()
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// more messages than fit in the ring at once
	go func() {
		for i := 0; i < 20; i++ {
			_ = a.Send(ctx, bytes.Repeat([]byte{byte(i)}, remote.MaxMessageSize))
		}
		_ = a.Send(ctx, []byte{})
	}()

	for i := 0; i < 20; i++ {
		msg, err := b.Receive(ctx)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, len(msg), remote.MaxMessageSize)
		test.ExpectEquality(t, msg[0], byte(i))
		test.ExpectEquality(t, msg[len(msg)-1], byte(i))
	}

	msg, err := b.Receive(ctx)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(msg), 0)

	err = a.Send(ctx, make([]byte, remote.MaxMessageSize+1))
	test.ExpectSuccess(t, curated.Is(err, remote.MessageTooLarge))
}

func TestCancelledReceive(t *testing.T) {
	_, b, err := remote.NewPipe()
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Receive(ctx)
	test.ExpectSuccess(t, curated.Is(err, remote.Closed))
}
