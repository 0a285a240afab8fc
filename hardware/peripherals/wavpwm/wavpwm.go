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

// Package wavpwm implements a PWM that renders its output to a WAV file.
// Every change to the period or duty of a channel is recorded against the
// clock. When the PWM is closed the changes are rendered as square waves, the
// channels mixed and the result written as a mono 16-bit WAV file.
//
// The period and duty of a channel are measured in ticks of 100
// microseconds. A channel with a period of 10 therefore produces a 1kHz tone.
package wavpwm

import (
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/logger"
)

// Tick is the unit of the period and duty values.
const Tick = 100 * time.Microsecond

const logTag = "wavpwm"

type change struct {
	at     time.Duration
	ch     int
	period uint8
	duty   uint8
}

// PWM implements the peripherals.PWM interface.
type PWM struct {
	*shims.PWM

	perm  logger.Permission
	src   clocks.Source
	prefs *preferences.AudioPreferences

	filename string

	start   time.Duration
	changes []change
}

// NewPWM is the preferred method of initialisation for the PWM type. The
// rendering is written to filename when Close() is called.
func NewPWM(perm logger.Permission, src clocks.Source, prefs *preferences.AudioPreferences, filename string) *PWM {
	p := &PWM{
		PWM:      shims.NewPWM(),
		perm:     perm,
		src:      src,
		prefs:    prefs,
		filename: filename,
		start:    src.Now(),
	}
	p.PWM.OnChange = p.record
	return p
}

func (p *PWM) record(ch int, period uint8, duty uint8) {
	p.changes = append(p.changes, change{
		at:     p.src.Now() - p.start,
		ch:     ch,
		period: period,
		duty:   duty,
	})
}

// Render the channels from the creation of the PWM to the current time.
func (p *PWM) Render() *audio.IntBuffer {
	rate := p.prefs.SampleRate.Get().(int)
	amp := p.prefs.Volume.Get().(float64) * 32767

	end := p.src.Now() - p.start
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  rate,
		},
		Data:           make([]int, int(end*time.Duration(rate)/time.Second)),
		SourceBitDepth: 16,
	}

	var state [shims.NumPWM]change
	var next int

	for i := range buf.Data {
		t := time.Duration(i) * time.Second / time.Duration(rate)
		for next < len(p.changes) && p.changes[next].at <= t {
			c := p.changes[next]
			state[c.ch] = c
			next++
		}

		var mix float64
		var active int
		for _, s := range state {
			if s.period == 0 {
				continue
			}
			active++

			// the phase of the wave starts when the channel is changed
			phase := (t - s.at) % (time.Duration(s.period) * Tick)
			if phase < time.Duration(s.duty)*Tick {
				mix++
			} else {
				mix--
			}
		}

		if active > 0 {
			buf.Data[i] = int(mix / float64(active) * amp)
		}
	}

	return buf
}

// Close renders the channels and writes the WAV file.
func (p *PWM) Close() (rerr error) {
	buf := p.Render()

	f, err := os.Create(p.filename)
	if err != nil {
		return curated.Errorf("wavpwm: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavpwm: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavpwm: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavpwm: %v", err)
	}

	logger.Logf(p.perm, logTag, "wrote %d samples to %s", len(buf.Data), p.filename)

	return nil
}
