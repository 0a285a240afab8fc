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

// Package preferences collates the preference values used by the machine.
// Values are stored in the preferences file found with the resources package
// and can be overridden from the command line with the -prefs flag.
package preferences

import (
	"github.com/jetsetilly/lc3sim/prefs"
	"github.com/jetsetilly/lc3sim/remote"
	"github.com/jetsetilly/lc3sim/resources"
)

// DefaultRingCapacity is the default size of the input and output ring
// buffers.
const DefaultRingCapacity = remote.FrameCapacity

// Preferences defines and collates all the preference values used by the
// machine.
type Preferences struct {
	dsk *prefs.Disk

	// address of the first instruction after reset. normally the start of
	// the OS boot code
	EntryPoint prefs.Int

	// whether LEA sets the condition codes. the classic LC-3 does, later
	// revisions of the architecture do not
	LEASetsCC prefs.Bool

	// initialise registers and user memory to a random state after reset
	RandomState prefs.Bool

	// capacity in bytes of the ring buffers between the host and the input
	// and output devices
	RingCapacity prefs.Int

	OS    *OSPreferences
	Audio *AudioPreferences
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.entryPoint", &p.EntryPoint)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.leaSetsCC", &p.LEASetsCC)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.randomState", &p.RandomState)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("peripherals.ringCapacity", &p.RingCapacity)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	p.OS, err = newOSPreferences()
	if err != nil {
		return nil, err
	}

	p.Audio, err = newAudioPreferences()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.EntryPoint.Set(0x0200)
	p.LEASetsCC.Set(true)
	p.RandomState.Set(false)
	p.RingCapacity.Set(DefaultRingCapacity)
	if p.OS != nil {
		p.OS.SetDefaults()
	}
	if p.Audio != nil {
		p.Audio.SetDefaults()
	}
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if err := p.dsk.Load(); err != nil {
		return err
	}
	if err := p.OS.Load(); err != nil {
		return err
	}
	return p.Audio.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if err := p.dsk.Save(); err != nil {
		return err
	}
	if err := p.OS.Save(); err != nil {
		return err
	}
	return p.Audio.Save()
}
