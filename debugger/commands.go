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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware/cpu/instructions"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
)

// CommandError is the pattern for errors caused by a malformed command.
const CommandError = "debugger: %v"

// List of commands understood by Execute().
const (
	cmdStep  = "STEP"
	cmdRun   = "RUN"
	cmdBreak = "BREAK"
	cmdClear = "CLEAR"
	cmdWatch = "WATCH"
	cmdRegs  = "REGS"
	cmdMem   = "MEM"
	cmdPoke  = "POKE"
	cmdType  = "TYPE"
	cmdDump  = "DUMP"
	cmdHelp  = "HELP"
	cmdQuit  = "QUIT"
)

var help = map[string]string{
	cmdStep:  "STEP [n]                      execute n instructions (default 1)",
	cmdRun:   "RUN                           run until halt, breakpoint or watchpoint",
	cmdBreak: "BREAK [addr]                  set a breakpoint or list breakpoints",
	cmdClear: "CLEAR [WATCH] addr            clear a breakpoint or watchpoint",
	cmdWatch: "WATCH [addr [READ|WRITE]]     set a watchpoint or list watchpoints",
	cmdRegs:  "REGS [idx value]              show or set registers (8=PC 9=PSR 10=MCR)",
	cmdMem:   "MEM addr [n]                  show n words of memory (default 8)",
	cmdPoke:  "POKE addr value               set a word of memory",
	cmdType:  "TYPE text                     send text to the keyboard",
	cmdDump:  "DUMP [file]                   write a graph of the machine state",
	cmdHelp:  "HELP                          list commands",
	cmdQuit:  "QUIT                          leave the debugger",
}

var helpOrder = []string{cmdStep, cmdRun, cmdBreak, cmdClear, cmdWatch, cmdRegs, cmdMem, cmdPoke, cmdType, cmdDump, cmdHelp, cmdQuit}

// Keyboard receives bytes typed with the TYPE command.
type Keyboard interface {
	Push(p []byte) int
}

// Display is drained to the command output after every command.
type Display interface {
	Drain(w io.Writer) (int, error)
}

// parseNumber accepts LC-3 style hex (x3000), Go style hex (0x3000) and
// decimal, optionally prefixed with a #.
func parseNumber(s string) (int, error) {
	s = strings.TrimPrefix(s, "#")
	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "x") || strings.HasPrefix(s, "X"):
		v, err = strconv.ParseInt(s[1:], 16, 32)
	default:
		v, err = strconv.ParseInt(s, 0, 32)
	}
	if err != nil {
		return 0, curated.Errorf(CommandError, fmt.Sprintf("not a number (%s)", s))
	}
	return int(v), nil
}

func parseWord(s string) (isa.Word, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v < -0x8000 || v > 0xffff {
		return 0, curated.Errorf(CommandError, fmt.Sprintf("value does not fit in a word (%s)", s))
	}
	return isa.Word(v), nil
}

func (dbg *Debugger) printRegisters(w io.Writer) {
	r := dbg.m.Regs
	for i := range r.R {
		fmt.Fprintf(w, "R%d %04x  ", i, uint16(r.R[i]))
		if i == 3 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "\nPC %04x  PSR %04x (%s)  MCR %04x  BSP %04x\n",
		uint16(r.PC), uint16(r.PSR.Value()), r.PSR, uint16(r.MCR), uint16(r.BSP))
}

func (dbg *Debugger) printMemory(w io.Writer, addr int, n int) {
	for i := 0; i < n && addr+i <= 0xffff; i++ {
		a := isa.Addr(addr + i)
		v := dbg.m.Mem.Peek(a)
		var marker string
		if dbg.breakpoints.contains(a) {
			marker = "*"
		}
		if sym := addresses.Symbol(a); sym != "" {
			fmt.Fprintf(w, "%1s%s %04x  %s\n", marker, a, uint16(v), sym)
			continue
		}
		fmt.Fprintf(w, "%1s%s %04x  %s\n", marker, a, uint16(v), instructions.Disassemble(a, v))
	}
}

// Execute a single command line. The return value is true if the command
// was QUIT. Output is written to w.
func (dbg *Debugger) Execute(ctx context.Context, line string, w io.Writer) (bool, error) {
	quit, err := dbg.execute(ctx, line, w)
	if dbg.Display != nil {
		if _, derr := dbg.Display.Drain(w); derr != nil && err == nil {
			err = derr
		}
	}
	return quit, err
}

func (dbg *Debugger) execute(ctx context.Context, line string, w io.Writer) (bool, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false, nil
	}
	cmd := strings.ToUpper(tokens[0])
	args := tokens[1:]

	arg := func(i int) (int, error) {
		if i >= len(args) {
			return 0, curated.Errorf(CommandError, fmt.Sprintf("%s: missing argument", cmd))
		}
		return parseNumber(args[i])
	}

	switch cmd {
	case cmdStep:
		n := 1
		if len(args) > 0 {
			var err error
			if n, err = arg(0); err != nil {
				return false, err
			}
		}
		for i := 0; i < n; i++ {
			fmt.Fprintln(w, dbg.StepOnce())
			if dbg.m.Halted() {
				break
			}
		}

	case cmdRun:
		ev := dbg.RunUntilEvent(ctx)
		if ev == govern.EventWatchpoint {
			fmt.Fprintf(w, "%s: %s\n", ev, dbg.hit)
		} else {
			fmt.Fprintf(w, "%s: %s\n", ev, dbg.m.Regs.PC)
		}

	case cmdBreak:
		if len(args) == 0 {
			for _, a := range dbg.Breakpoints() {
				fmt.Fprintln(w, a)
			}
			return false, nil
		}
		a, err := arg(0)
		if err != nil {
			return false, err
		}
		return false, dbg.SetBreakpoint(a)

	case cmdClear:
		if len(args) > 0 && strings.ToUpper(args[0]) == cmdWatch {
			a, err := arg(1)
			if err != nil {
				return false, err
			}
			return false, dbg.ClearWatchpoint(a)
		}
		a, err := arg(0)
		if err != nil {
			return false, err
		}
		return false, dbg.ClearBreakpoint(a)

	case cmdWatch:
		if len(args) == 0 {
			for _, wt := range dbg.Watchpoints() {
				fmt.Fprintln(w, wt)
			}
			return false, nil
		}
		a, err := arg(0)
		if err != nil {
			return false, err
		}
		kind := WatchAny
		if len(args) > 1 {
			switch strings.ToUpper(args[1]) {
			case "READ":
				kind = WatchRead
			case "WRITE":
				kind = WatchWrite
			case "ANY":
			default:
				return false, curated.Errorf(CommandError, fmt.Sprintf("unknown watch kind (%s)", args[1]))
			}
		}
		return false, dbg.SetWatchpoint(a, kind)

	case cmdRegs:
		if len(args) == 0 {
			dbg.printRegisters(w)
			return false, nil
		}
		idx, err := arg(0)
		if err != nil {
			return false, err
		}
		if len(args) < 2 {
			v, err := dbg.ReadRegister(idx)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(w, "%04x\n", uint16(v))
			return false, nil
		}
		v, err := parseWord(args[1])
		if err != nil {
			return false, err
		}
		return false, dbg.WriteRegister(idx, v)

	case cmdMem:
		a, err := arg(0)
		if err != nil {
			return false, err
		}
		if err := checkAddr(a); err != nil {
			return false, err
		}
		n := 8
		if len(args) > 1 {
			if n, err = arg(1); err != nil {
				return false, err
			}
		}
		dbg.printMemory(w, a, n)

	case cmdPoke:
		a, err := arg(0)
		if err != nil {
			return false, err
		}
		if len(args) < 2 {
			return false, curated.Errorf(CommandError, fmt.Sprintf("%s: missing argument", cmd))
		}
		v, err := parseWord(args[1])
		if err != nil {
			return false, err
		}
		return false, dbg.WriteMemory(a, v)

	case cmdType:
		if dbg.Keyboard == nil {
			return false, curated.Errorf(CommandError, "no keyboard attached")
		}
		text := strings.TrimSpace(strings.TrimSpace(line)[len(tokens[0]):]) + "\n"
		if n := dbg.Keyboard.Push([]byte(text)); n < len(text) {
			return false, curated.Errorf(CommandError, fmt.Sprintf("keyboard full after %d bytes", n))
		}

	case cmdDump:
		if len(args) == 0 {
			dbg.Visualise(w)
			return false, nil
		}
		f, err := os.Create(args[0])
		if err != nil {
			return false, curated.Errorf(CommandError, err)
		}
		defer f.Close()
		dbg.Visualise(f)
		fmt.Fprintf(w, "state written to %s\n", args[0])

	case cmdHelp:
		for _, c := range helpOrder {
			fmt.Fprintln(w, help[c])
		}

	case cmdQuit:
		return true, nil

	default:
		return false, curated.Errorf(CommandError, fmt.Sprintf("unrecognised command (%s)", tokens[0]))
	}

	return false, nil
}

// ExecuteString is a convenience wrapper for Execute() that returns the
// output as a string.
func (dbg *Debugger) ExecuteString(ctx context.Context, line string) (string, bool, error) {
	var b bytes.Buffer
	quit, err := dbg.Execute(ctx, line, &b)
	return b.String(), quit, err
}
