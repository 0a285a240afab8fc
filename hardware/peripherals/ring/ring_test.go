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

package ring_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/ring"
	"github.com/jetsetilly/lc3sim/test"
)

func TestCapacity(t *testing.T) {
	_, err := ring.NewBuffer(8, 3)
	test.ExpectSuccess(t, curated.Is(err, ring.CapacityError))

	b, err := ring.NewBuffer(9, 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Cap(), 9)
	test.ExpectEquality(t, b.Free(), 9)
}

func TestReserveCommit(t *testing.T) {
	b, err := ring.NewBuffer(8, 2)
	test.DemandSuccess(t, err)

	r := b.Reserve(3)
	test.DemandEquality(t, len(r), 3)
	copy(r, "abc")

	// nothing visible until commit
	test.ExpectEquality(t, len(b.Read()), 0)

	test.ExpectSuccess(t, b.Commit(2))
	test.ExpectEquality(t, string(b.Read()), "ab")
	test.ExpectSuccess(t, curated.Is(b.Commit(1), ring.CommitError))

	test.ExpectSuccess(t, b.Release(1))
	test.ExpectEquality(t, string(b.Read()), "b")
	test.ExpectSuccess(t, curated.Is(b.Release(2), ring.ReleaseError))

	// running totals are unaffected by the failed calls
	test.ExpectEquality(t, b.Committed(), uint64(2))
	test.ExpectEquality(t, b.Released(), uint64(1))
}

func TestWrap(t *testing.T) {
	b, err := ring.NewBuffer(6, 2)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, b.Push([]byte("abcd")), 4)
	test.ExpectSuccess(t, b.Release(3))

	// write wraps around the end of the buffer
	test.ExpectEquality(t, b.Push([]byte("efgh")), 4)
	test.ExpectEquality(t, b.Len(), 5)

	// buffer has one free byte
	test.ExpectEquality(t, b.Push([]byte("ij")), 1)
	test.ExpectEquality(t, b.Free(), 0)
	test.ExpectEquality(t, len(b.Reserve(1)), 0)

	var s []byte
	for {
		v, ok := b.Pop()
		if !ok {
			break
		}
		s = append(s, v)
	}
	test.ExpectEquality(t, string(s), "defghi")
}

func TestConcurrent(t *testing.T) {
	b, err := ring.NewBuffer(64, 16)
	test.DemandSuccess(t, err)

	const total = 10000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var i int
		for i < total {
			r := b.Reserve(16)
			n := 0
			for n < len(r) && i < total {
				r[n] = byte(i)
				n++
				i++
			}
			_ = b.Commit(n)
		}
	}()

	var received int
	var ok = true
	for received < total {
		r := b.Read()
		for _, v := range r {
			if v != byte(received) {
				ok = false
			}
			received++
		}
		_ = b.Release(len(r))
	}
	wg.Wait()

	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b.Len(), 0)
}

func TestCopy(t *testing.T) {
	b, err := ring.NewBuffer(6, 2)
	test.DemandSuccess(t, err)

	b.Push([]byte("abcde"))
	_ = b.Release(4)
	b.Push([]byte("fgh"))

	p := make([]byte, 8)
	n := b.Copy(p)
	test.ExpectEquality(t, string(p[:n]), "efgh")

	// copy does not consume
	test.ExpectEquality(t, b.Len(), 4)
	v, _ := b.Peek()
	test.ExpectEquality(t, v, byte('e'))
}
