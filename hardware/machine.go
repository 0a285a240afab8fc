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

package hardware

import (
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/cpu"
	"github.com/jetsetilly/lc3sim/hardware/cpu/execution"
	"github.com/jetsetilly/lc3sim/hardware/cpu/registers"
	"github.com/jetsetilly/lc3sim/hardware/devices"
	"github.com/jetsetilly/lc3sim/hardware/instance"
	"github.com/jetsetilly/lc3sim/hardware/interrupts"
	"github.com/jetsetilly/lc3sim/hardware/isa"
	"github.com/jetsetilly/lc3sim/hardware/memory"
	"github.com/jetsetilly/lc3sim/hardware/memory/addresses"
	"github.com/jetsetilly/lc3sim/hardware/memory/memorymap"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/imageloader"
	"github.com/jetsetilly/lc3sim/logger"
	"github.com/jetsetilly/lc3sim/osimage"
)

// ConfigurationError is returned by Boot() when the machine cannot be started
// with the current preferences.
const ConfigurationError = "machine: configuration: %v"

// Machine is the root of the emulation.
type Machine struct {
	Instance *instance.Instance

	Regs       *registers.File
	Mem        *memory.Memory
	Devices    *devices.Devices
	Interrupts *interrupts.Controller
	CPU        *cpu.CPU

	Bundle *peripherals.Bundle

	// number of calls to Step() since the machine was created. used as the
	// counter for the instance's random number generator
	steps uint64
}

// NewMachine creates a new machine and everything associated with the
// hardware. The prefs argument can be nil, in which case a new preferences
// instance is created.
func NewMachine(label instance.Label, prefs *preferences.Preferences, bundle *peripherals.Bundle) (*Machine, error) {
	m := &Machine{
		Bundle: bundle,
	}

	var err error

	m.Instance, err = instance.NewInstance(m, prefs)
	if err != nil {
		return nil, err
	}
	m.Instance.Label = label

	m.Regs = &registers.File{}
	m.Mem = memory.NewMemory()
	m.Interrupts = interrupts.NewController()

	m.Devices, err = devices.NewDevices(m.Instance, m.Regs, bundle, m.Interrupts)
	if err != nil {
		return nil, err
	}
	m.Mem.Plumb(m.Devices)

	m.CPU = cpu.NewCPU(m.Instance, m.Regs, m.Mem, m.Interrupts, m.Devices)

	m.Reset()

	return m, nil
}

func (m *Machine) String() string {
	return m.Regs.String()
}

// Steps implements the random.Counter interface.
func (m *Machine) Steps() uint64 {
	return m.steps
}

// Reset clears memory, puts the peripherals into their disabled state and
// resets the CPU to the entry point. The OS image is not installed. Use Boot()
// for that.
func (m *Machine) Reset() {
	m.Mem.Reset()
	m.Interrupts.Reset()
	m.Devices.Reset()
	m.CPU.Reset(isa.Addr(m.Instance.Prefs.EntryPoint.Get().(int)))
}

// the configuration words as they will be written to memory
type configuration struct {
	userStart  isa.Word
	errorOnACV isa.Word
	startSP    isa.Word
}

func (m *Machine) configuration() (configuration, error) {
	p := m.Instance.Prefs.OS

	var cfg configuration

	us := p.UserStart.Get().(int)
	if us < 0 || us > 0xffff || !memorymap.UserAccessible(isa.Addr(us)) {
		return cfg, curated.Errorf(ConfigurationError,
			curated.Errorf("user start (%#04x) is not in the user region", us))
	}
	cfg.userStart = isa.Word(us)

	sp := p.StartSP.Get().(int)
	if sp < int(osimage.MinStartSP) || sp > int(osimage.MaxStartSP) {
		return cfg, curated.Errorf(ConfigurationError,
			curated.Errorf("starting stack pointer (%#04x) must be between %#04x and %#04x",
				sp, uint16(osimage.MinStartSP), uint16(osimage.MaxStartSP)))
	}
	cfg.startSP = isa.Word(sp)

	if p.ErrorOnACV.Get().(bool) {
		cfg.errorOnACV = 1
	}

	return cfg, nil
}

// Boot resets the machine and prepares it to run the OS boot code. The OS
// configuration is validated first and the machine is not changed if it is
// invalid.
func (m *Machine) Boot() error {
	cfg, err := m.configuration()
	if err != nil {
		return err
	}

	m.Reset()

	if m.Instance.Prefs.RandomState.Get().(bool) {
		user := make([]uint16, int(memorymap.MemtopUser-memorymap.OriginUser)+1)
		m.Instance.Random.Fill(user)
		for i, v := range user {
			m.Mem.Poke(memorymap.OriginUser+isa.Addr(i), isa.Word(v))
		}
	}

	if m.Instance.Prefs.OS.LoadImage.Get().(bool) {
		img, err := osimage.Build()
		if err != nil {
			return curated.Errorf(ConfigurationError, err)
		}
		img.Install(m.Mem)
		logger.Logf(m.Instance, "machine", "installed OS image (%d words)", len(img.Pairs))
	}

	m.Mem.Poke(addresses.OSUserStart, cfg.userStart)
	m.Mem.Poke(addresses.OSErrorOnACV, cfg.errorOnACV)
	m.Mem.Poke(addresses.OSStartSP, cfg.startSP)

	return nil
}

// LoadImage installs the image into memory. Every word is written with
// supervisor privilege.
func (m *Machine) LoadImage(img *imageloader.Image) {
	img.Install(m.Mem)
	logger.Logf(m.Instance, "machine", "loaded %s", img)
}

// Halted returns true if the run bit of the MCR is clear.
func (m *Machine) Halted() bool {
	return !m.Regs.Running()
}

// Step the machine by one instruction or one interrupt dispatch. The
// peripherals are polled for interrupts before the CPU steps.
func (m *Machine) Step() execution.Result {
	m.Mem.Log.Reset()
	m.Devices.Poll()
	res := m.CPU.Step()
	m.steps++
	return res
}
