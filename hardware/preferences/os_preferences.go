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

package preferences

import (
	"github.com/jetsetilly/lc3sim/prefs"
	"github.com/jetsetilly/lc3sim/resources"
)

// OSPreferences are the values written to the OS configuration words before
// boot.
type OSPreferences struct {
	dsk *prefs.Disk

	// load the built-in OS image on reset. if false the OS must be supplied
	// as part of a program image
	LoadImage prefs.Bool

	// address the OS jumps to in user mode after booting
	UserStart prefs.Int

	// if true an access violation halts the machine with a message. if false
	// the faulting instruction is skipped
	ErrorOnACV prefs.Bool

	// initial value of the supervisor stack pointer
	StartSP prefs.Int
}

func (p *OSPreferences) String() string {
	return p.dsk.String()
}

func newOSPreferences() (*OSPreferences, error) {
	p := &OSPreferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("os.load", &p.LoadImage)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("os.userStart", &p.UserStart)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("os.errorOnACV", &p.ErrorOnACV)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("os.startSP", &p.StartSP)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *OSPreferences) SetDefaults() {
	p.LoadImage.Set(true)
	p.UserStart.Set(0x3000)
	p.ErrorOnACV.Set(true)
	p.StartSP.Set(0x0700)
}

// Load OS preferences from disk.
func (p *OSPreferences) Load() error {
	return p.dsk.Load()
}

// Save OS preferences to disk.
func (p *OSPreferences) Save() error {
	return p.dsk.Save()
}
