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

// Package remote defines how a host talks to the simulator over a byte stream.
// Messages are framed with a two byte big-endian length prefix. The
// RingTransport type implements the framing over a pair of ring buffers so
// that the simulator side never blocks on the host.
package remote

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/ring"
)

// MaxMessageSize is the largest message payload that can be sent.
const MaxMessageSize = 256

// header size of each frame
const headerSize = 2

// FrameCapacity is the capacity of the ring buffers carrying frames. It is
// more than three times the size of the largest frame.
const FrameCapacity = 4 * (MaxMessageSize + headerSize)

// Sentinel error patterns.
const (
	MessageTooLarge = "remote: message too large (%d bytes)"
	Closed          = "remote: %v"
)

// Transport is a framed request/response channel.
type Transport interface {
	Send(ctx context.Context, msg []byte) error
	Receive(ctx context.Context) ([]byte, error)
}

// how long to wait before checking the ring again
const pollInterval = time.Millisecond

// RingTransport implements Transport over two ring buffers. The sending side
// is the producer of tx and the receiving side is the consumer of rx.
type RingTransport struct {
	tx *ring.Buffer
	rx *ring.Buffer
}

// NewPipe creates two connected transports.
func NewPipe() (*RingTransport, *RingTransport, error) {
	a, err := ring.NewBuffer(FrameCapacity, MaxMessageSize+headerSize)
	if err != nil {
		return nil, nil, err
	}
	b, err := ring.NewBuffer(FrameCapacity, MaxMessageSize+headerSize)
	if err != nil {
		return nil, nil, err
	}
	return &RingTransport{tx: a, rx: b}, &RingTransport{tx: b, rx: a}, nil
}

func wait(ctx context.Context, cond func() bool) error {
	for !cond() {
		select {
		case <-ctx.Done():
			return curated.Errorf(Closed, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
	return nil
}

// Send implements the Transport interface.
func (r *RingTransport) Send(ctx context.Context, msg []byte) error {
	if len(msg) > MaxMessageSize {
		return curated.Errorf(MessageTooLarge, len(msg))
	}

	sz := headerSize + len(msg)
	if err := wait(ctx, func() bool { return r.tx.Free() >= sz }); err != nil {
		return err
	}

	var hdr [headerSize]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(len(msg)))
	r.tx.Push(hdr[:])
	r.tx.Push(msg)

	return nil
}

// Receive implements the Transport interface.
func (r *RingTransport) Receive(ctx context.Context) ([]byte, error) {
	var hdr [headerSize]byte
	if err := wait(ctx, func() bool { return r.rx.Copy(hdr[:]) == headerSize }); err != nil {
		return nil, err
	}

	sz := headerSize + int(binary.BigEndian.Uint16(hdr[:]))
	if err := wait(ctx, func() bool { return r.rx.Len() >= sz }); err != nil {
		return nil, err
	}

	frame := make([]byte, sz)
	r.rx.Copy(frame)
	if err := r.rx.Release(sz); err != nil {
		return nil, err
	}

	return frame[headerSize:], nil
}
