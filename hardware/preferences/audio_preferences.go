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

// AudioPreferences are used by the audio file backings of the ADC and PWM
// peripherals.
type AudioPreferences struct {
	dsk *prefs.Disk

	// sample rate of the rendering of the PWM channels
	SampleRate prefs.Int

	// amplitude of the rendering, between 0.0 and 1.0
	Volume prefs.Float
}

func (p *AudioPreferences) String() string {
	return p.dsk.String()
}

func newAudioPreferences() (*AudioPreferences, error) {
	p := &AudioPreferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.sampleRate", &p.SampleRate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("audio.volume", &p.Volume)
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
func (p *AudioPreferences) SetDefaults() {
	p.SampleRate.Set(44100)
	p.Volume.Set(0.5)
}

// Load audio preferences from disk.
func (p *AudioPreferences) Load() error {
	return p.dsk.Load()
}

// Save audio preferences to disk.
func (p *AudioPreferences) Save() error {
	return p.dsk.Save()
}
