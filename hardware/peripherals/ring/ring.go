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

// Package ring implements a lock-free single-producer single-consumer ring
// buffer of bytes. It is the only channel between peripheral backings running
// on their own goroutines and the emulation.
//
// The producer side reserves space with Reserve(), writes into the returned
// slice and then makes the data visible with Commit(). The consumer side looks
// at the available data with Read() and frees it with Release(). Neither side
// ever blocks.
//
// Exactly one goroutine may act as the producer and exactly one as the
// consumer. They may be the same goroutine.
package ring

import (
	"sync/atomic"

	"github.com/jetsetilly/lc3sim/curated"
)

// Sentinel error patterns.
const (
	CapacityError = "ring: capacity (%d) must be at least three times the largest message (%d)"
	CommitError   = "ring: commit of %d bytes exceeds reservation of %d"
	ReleaseError  = "ring: release of %d bytes exceeds available %d"
)

// Buffer is the ring buffer. The zero value is not usable. Use NewBuffer().
type Buffer struct {
	data []byte

	// head and tail are free running counters. head is only written by the
	// producer and tail is only written by the consumer
	head atomic.Uint64
	tail atomic.Uint64

	// size of the most recent reservation. only touched by the producer
	reserved int

	maxMessage int
}

// NewBuffer creates a ring buffer of fixed capacity. The capacity must be at
// least three times maxMessage, the size of the largest message that will be
// sent through the ring.
func NewBuffer(capacity int, maxMessage int) (*Buffer, error) {
	if maxMessage <= 0 || capacity < 3*maxMessage {
		return nil, curated.Errorf(CapacityError, capacity, maxMessage)
	}
	return &Buffer{
		data:       make([]byte, capacity),
		maxMessage: maxMessage,
	}, nil
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// MaxMessage returns the size of the largest message the buffer was created
// for.
func (b *Buffer) MaxMessage() int {
	return b.maxMessage
}

// Len returns the number of committed bytes that have not been released.
func (b *Buffer) Len() int {
	return int(b.head.Load() - b.tail.Load())
}

// Committed returns the total number of bytes committed since the buffer was
// created. Safe to call from either side.
func (b *Buffer) Committed() uint64 {
	return b.head.Load()
}

// Released returns the total number of bytes released since the buffer was
// created. Safe to call from either side.
func (b *Buffer) Released() uint64 {
	return b.tail.Load()
}

// Free returns the number of bytes that can be reserved, not accounting for
// wrapping at the end of the underlying array.
func (b *Buffer) Free() int {
	return len(b.data) - b.Len()
}

// Reserve returns a slice of up to n bytes that the producer can write into.
// The slice may be shorter than n if the buffer is nearly full or if the free
// space wraps around the end of the buffer. A zero length slice means the
// buffer is full.
//
// The reservation is not visible to the consumer until Commit() is called. A
// second call to Reserve() replaces the first reservation.
func (b *Buffer) Reserve(n int) []byte {
	head := b.head.Load()
	free := len(b.data) - int(head-b.tail.Load())
	idx := int(head % uint64(len(b.data)))
	contiguous := len(b.data) - idx

	n = min(n, free, contiguous)
	if n < 0 {
		n = 0
	}
	b.reserved = n
	return b.data[idx : idx+n]
}

// Commit makes n bytes of the most recent reservation visible to the
// consumer.
func (b *Buffer) Commit(n int) error {
	if n > b.reserved || n < 0 {
		return curated.Errorf(CommitError, n, b.reserved)
	}
	b.reserved = 0
	b.head.Add(uint64(n))
	return nil
}

// Read returns the committed bytes that have not yet been released. The slice
// may be shorter than Len() if the data wraps around the end of the buffer. It
// remains valid until Release() is called.
func (b *Buffer) Read() []byte {
	tail := b.tail.Load()
	avail := int(b.head.Load() - tail)
	idx := int(tail % uint64(len(b.data)))
	contiguous := len(b.data) - idx
	return b.data[idx : idx+min(avail, contiguous)]
}

// Release frees n bytes at the front of the buffer.
func (b *Buffer) Release(n int) error {
	avail := b.Len()
	if n > avail || n < 0 {
		return curated.Errorf(ReleaseError, n, avail)
	}
	b.tail.Add(uint64(n))
	return nil
}

// Push copies p into the buffer, wrapping as required. It returns the number
// of bytes written, which is less than len(p) if the buffer fills. Producer
// side only.
func (b *Buffer) Push(p []byte) int {
	var n int
	for n < len(p) {
		r := b.Reserve(len(p) - n)
		if len(r) == 0 {
			break
		}
		c := copy(r, p[n:])
		_ = b.Commit(c)
		n += c
	}
	return n
}

// Pop consumes one byte. The second return value is false if the buffer
// is empty. Consumer side only.
func (b *Buffer) Pop() (byte, bool) {
	r := b.Read()
	if len(r) == 0 {
		return 0, false
	}
	v := r[0]
	_ = b.Release(1)
	return v, true
}

// Copy copies up to len(p) committed bytes into p without releasing them. It
// returns the number of bytes copied. Consumer side only.
func (b *Buffer) Copy(p []byte) int {
	tail := b.tail.Load()
	avail := int(b.head.Load() - tail)
	n := min(len(p), avail)
	for i := 0; i < n; i++ {
		p[i] = b.data[(tail+uint64(i))%uint64(len(b.data))]
	}
	return n
}

// Peek returns the next byte without consuming it. Consumer side only.
func (b *Buffer) Peek() (byte, bool) {
	r := b.Read()
	if len(r) == 0 {
		return 0, false
	}
	return r[0], true
}
