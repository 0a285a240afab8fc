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

// Package terminal attaches the host terminal to the input and output
// peripherals. Bytes read from the input file are committed to the ring
// buffer of the Input shim and bytes written by the machine are drained from
// the ring buffer of the Output shim to the output file.
//
// If the input file is a terminal it is put into cbreak mode, so that the
// machine sees each key as it is pressed. The original mode is restored by
// CleanUp().
package terminal

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const logTag = "terminal"

// how often the goroutines look for work when there is none
const pollInterval = 5 * time.Millisecond

// Terminal connects a pair of files to the Input and Output shims.
type Terminal struct {
	perm logger.Permission

	input  *os.File
	output *os.File

	in  *shims.Input
	out *shims.Output

	// attributes of the input terminal. only used if isTerminal is true
	isTerminal bool
	canAttr    unix.Termios
	cbreakAttr unix.Termios

	nonblocking bool

	stop    chan struct{}
	stopped sync.Once
	done    sync.WaitGroup

	// the first error from either goroutine
	crit sync.Mutex
	err  error
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input and output are normally os.Stdin and os.Stdout.
func NewTerminal(perm logger.Permission, input, output *os.File, in *shims.Input, out *shims.Output) (*Terminal, error) {
	if input == nil {
		return nil, peripherals.NewBackingError(logTag, errors.New("no input file"))
	}
	if output == nil {
		return nil, peripherals.NewBackingError(logTag, errors.New("no output file"))
	}

	t := &Terminal{
		perm:   perm,
		input:  input,
		output: output,
		in:     in,
		out:    out,
		stop:   make(chan struct{}),
	}

	t.isTerminal = term.IsTerminal(int(input.Fd()))
	if t.isTerminal {
		if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
			return nil, peripherals.NewBackingError(logTag, err)
		}
		t.cbreakAttr = t.canAttr
		termios.Cfmakecbreak(&t.cbreakAttr)
	}

	return t, nil
}

// IsTerminal returns true if the input file is a terminal.
func (t *Terminal) IsTerminal() bool {
	return t.isTerminal
}

// Start the reader and drain goroutines.
func (t *Terminal) Start() error {
	if t.isTerminal {
		if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.cbreakAttr); err != nil {
			return peripherals.NewBackingError(logTag, err)
		}
	}

	fd := int(t.input.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return peripherals.NewBackingError(logTag, err)
	}
	t.nonblocking = true

	t.done.Add(2)
	go t.reader(fd)
	go t.drainer()

	logger.Logf(t.perm, logTag, "started (terminal: %v)", t.isTerminal)

	return nil
}

func (t *Terminal) fail(err error) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if t.err == nil {
		t.err = peripherals.NewBackingError(logTag, err)
		logger.Log(t.perm, logTag, t.err)
	}
}

// Err returns the first error encountered by the goroutines.
func (t *Terminal) Err() error {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.err
}

func (t *Terminal) reader(fd int) {
	defer t.done.Done()

	var pending []byte
	buf := make([]byte, 64)

	for {
		select {
		case <-t.stop:
			return
		default:
		}

		// bytes that did not fit in the ring buffer are offered again before
		// reading any more
		if len(pending) > 0 {
			n := t.in.Push(pending)
			pending = pending[n:]
			if len(pending) > 0 {
				time.Sleep(pollInterval)
				continue
			}
		}

		n, err := unix.Read(fd, buf)
		if n > 0 {
			c := t.in.Push(buf[:n])
			pending = append(pending, buf[c:n]...)
			continue
		}
		if err == unix.EAGAIN || err == unix.EINTR {
			time.Sleep(pollInterval)
			continue
		}
		if err != nil {
			t.fail(err)
			return
		}

		// end of file
		return
	}
}

func (t *Terminal) drainer() {
	defer t.done.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if _, err := t.out.Drain(t.output); err != nil {
				t.fail(err)
				return
			}
		}
	}
}

// CleanUp stops the goroutines, writes any remaining output and restores the
// terminal.
func (t *Terminal) CleanUp() {
	t.stopped.Do(func() {
		close(t.stop)
	})
	t.done.Wait()

	if _, err := t.out.Drain(t.output); err != nil {
		t.fail(err)
	}

	if t.nonblocking {
		_ = unix.SetNonblock(int(t.input.Fd()), false)
		t.nonblocking = false
	}

	if t.isTerminal {
		_ = termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
	}
}
