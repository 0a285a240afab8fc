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

package debugger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Prompt shown by the Terminal before every command.
const Prompt = "lc3> "

// Terminal reads commands line by line and executes them with the Debugger.
type Terminal struct {
	dbg  *Debugger
	term *term.Terminal

	// file descriptor of the input. only used if the input is a real
	// terminal
	fd     int
	isTerm bool
}

type readWriter struct {
	io.Reader
	io.Writer
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. If the input is a terminal it is put into raw mode while a line is
// being edited and is returned to its original mode while the command runs.
func NewTerminal(dbg *Debugger, input io.Reader, output io.Writer) *Terminal {
	t := &Terminal{
		dbg:  dbg,
		term: term.NewTerminal(readWriter{Reader: input, Writer: output}, Prompt),
	}
	if f, ok := input.(*os.File); ok {
		t.fd = int(f.Fd())
		t.isTerm = term.IsTerminal(t.fd)
	}
	return t
}

func (t *Terminal) readLine() (string, error) {
	if t.isTerm {
		st, err := term.MakeRaw(t.fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(t.fd, st)
	}
	return t.term.ReadLine()
}

// Loop reads and executes commands until QUIT, the end of the input or the
// cancellation of the context. Errors from commands are printed and do not
// end the loop.
func (t *Terminal) Loop(ctx context.Context) error {
	for ctx.Err() == nil {
		line, err := t.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		quit, err := t.dbg.Execute(ctx, line, t.term)
		if err != nil {
			fmt.Fprintf(t.term, "* %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}
