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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/lc3sim/debugger"
	"github.com/jetsetilly/lc3sim/debugger/govern"
	"github.com/jetsetilly/lc3sim/hardware"
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/instance"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/luagpio"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/terminal"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/wavadc"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/wavpwm"
	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/imageloader"
	"github.com/jetsetilly/lc3sim/logger"
	"github.com/jetsetilly/lc3sim/modalflag"
	"github.com/jetsetilly/lc3sim/performance"
	"github.com/jetsetilly/lc3sim/prefs"
	"github.com/jetsetilly/lc3sim/remote"
	"github.com/jetsetilly/lc3sim/statsview"
	"github.com/jetsetilly/lc3sim/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// flags shared by the RUN and DEBUG modes
type options struct {
	prefs     *string
	format    *string
	log       *bool
	statsview *bool
	adc       *string
	pwm       *string
	lua       *string
}

func addOptions(md *modalflag.Modes) options {
	opts := options{
		prefs:  md.AddString("prefs", "", "preference overrides (key::value; key::value)"),
		format: md.AddString("format", "AUTO", "program image format: AUTO, OBJ, PAIRS, TEXT"),
		log:    md.AddBool("log", false, "echo log to stderr"),
		adc:    md.AddString("adc", "", "attach WAV or MP3 files to ADC channels (0=file.wav,1=file.mp3)"),
		pwm:    md.AddString("pwm", "", "record PWM output to WAV file"),
		lua:    md.AddString("lua", "", "Lua script supplying GPIO inputs and ADC samples"),
	}
	if statsview.Available() {
		opts.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return opts
}

// parseChannels parses the argument to the -adc flag.
func parseChannels(s string) (map[int]string, error) {
	chans := make(map[int]string)
	if strings.TrimSpace(s) == "" {
		return chans, nil
	}
	for _, f := range strings.Split(s, ",") {
		ch, filename, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok || filename == "" {
			return nil, fmt.Errorf("ADC channel should be in the form channel=filename (%s)", f)
		}
		n, err := strconv.Atoi(ch)
		if err != nil {
			return nil, fmt.Errorf("ADC channel is not a number (%s)", ch)
		}
		if _, ok := chans[n]; ok {
			return nil, fmt.Errorf("ADC channel %d specified more than once", n)
		}
		chans[n] = filename
	}
	return chans, nil
}

type simulation struct {
	m   *hardware.Machine
	set *shims.Set

	// called in reverse order by end()
	closers []func() error
}

func (sim *simulation) end() error {
	var err error
	for i := len(sim.closers) - 1; i >= 0; i-- {
		if cerr := sim.closers[i](); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// create and boot the machine, then load the program
func newSimulation(md *modalflag.Modes, opts options) (*simulation, error) {
	if *opts.log {
		logger.SetEcho(os.Stderr)
	}
	if opts.statsview != nil && *opts.statsview {
		statsview.Launch(os.Stdout)
	}

	if *opts.prefs != "" {
		prefs.PushCommandLineStack(*opts.prefs)
	}

	if len(md.RemainingArgs()) > 1 {
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	clk := clocks.NewRealtime()
	sim := &simulation{}

	sim.set, err = shims.NewSet(clk, p.RingCapacity.Get().(int), remote.MaxMessageSize)
	if err != nil {
		return nil, err
	}
	bundle := sim.set.Bundle()

	if *opts.lua != "" {
		script := luagpio.NewScript(logger.Allow, clk)
		sim.closers = append(sim.closers, func() error {
			script.Close()
			return nil
		})
		if err := script.LoadFile(*opts.lua); err != nil {
			_ = sim.end()
			return nil, err
		}
		bundle.GPIO = script.GPIO()
		bundle.ADC = script.ADC()
	}

	chans, err := parseChannels(*opts.adc)
	if err != nil {
		_ = sim.end()
		return nil, err
	}
	if len(chans) > 0 {
		adc := wavadc.NewADC(logger.Allow, clk)
		for ch, filename := range chans {
			if err := adc.Attach(ch, filename); err != nil {
				_ = sim.end()
				return nil, err
			}
		}
		bundle.ADC = adc
	}

	if *opts.pwm != "" {
		pwm := wavpwm.NewPWM(logger.Allow, clk, p.Audio, *opts.pwm)
		sim.closers = append(sim.closers, pwm.Close)
		bundle.PWM = pwm
	}

	sim.m, err = hardware.NewMachine(instance.Main, p, bundle)
	if err != nil {
		_ = sim.end()
		return nil, err
	}

	if err := sim.m.Boot(); err != nil {
		_ = sim.end()
		return nil, err
	}

	if len(md.RemainingArgs()) == 1 {
		ld := imageloader.NewLoader(md.GetArg(0), *opts.format)
		img, err := ld.Decode()
		if err != nil {
			_ = sim.end()
			return nil, err
		}
		sim.m.LoadImage(img)
	}

	return sim, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	opts := addOptions(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sim, err := newSimulation(md, opts)
	if err != nil {
		return err
	}

	term, err := terminal.NewTerminal(sim.m.Instance, os.Stdin, os.Stdout, sim.set.Input, sim.set.Output)
	if err != nil {
		_ = sim.end()
		return err
	}
	if err := term.Start(); err != nil {
		_ = sim.end()
		return err
	}

	// ctrl-c ends the run
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	var brake int
	err = sim.m.Run(func() (govern.State, error) {
		brake++
		if brake < hardware.PerformanceBrake {
			return govern.Running, nil
		}
		brake = 0

		select {
		case <-intChan:
			return govern.Ending, nil
		default:
		}
		return govern.Running, term.Err()
	})

	term.CleanUp()

	if eerr := sim.end(); err == nil {
		err = eerr
	}
	return err
}

func debug(md *modalflag.Modes) error {
	md.NewMode()
	opts := addOptions(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sim, err := newSimulation(md, opts)
	if err != nil {
		return err
	}

	dbg := debugger.NewDebugger(sim.m)
	dbg.Keyboard = sim.set.Input
	dbg.Display = sim.set.Output

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ctrl-c stops a RUN command
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-intChan:
				dbg.Cancel()
			}
		}
	}()

	fmt.Printf("%s debugger. type HELP for a list of commands\n", version.ApplicationName)
	err = debugger.NewTerminal(dbg, os.Stdin, os.Stdout).Loop(ctx)

	if eerr := sim.end(); err == nil {
		err = eerr
	}
	return err
}

func perform(md *modalflag.Modes) error {
	md.NewMode()
	opts := addOptions(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "NONE", "create profiles: CPU, MEM, TRACE (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	sim, err := newSimulation(md, opts)
	if err != nil {
		return err
	}

	err = performance.Check(os.Stdout, sim.m, prof, *duration)

	// output is not attached to a terminal in this mode
	_, _ = sim.set.Output.Drain(io.Discard)

	if eerr := sim.end(); err == nil {
		err = eerr
	}
	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control system")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Println(r)
	}

	return nil
}
