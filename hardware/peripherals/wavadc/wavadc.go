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

// Package wavadc implements an ADC whose channels are driven by audio files.
// WAV and MP3 files are supported. The sample returned by a channel is the
// sample of the file at the current clock time, scaled to 12 bits. Playback
// loops when the end of the file is reached.
//
// Channels without an attached file behave like the shims.ADC that the ADC
// wraps.
package wavadc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/logger"
)

const logTag = "wavadc"

// pcm is the mono data of an audio file. samples are normalised to the range
// -1.0 to 1.0
type pcm struct {
	sampleRate float64
	data       []float32
}

// ADC implements the peripherals.ADC interface.
type ADC struct {
	*shims.ADC

	perm logger.Permission
	src  clocks.Source

	channels [shims.NumADC]*pcm
	start    [shims.NumADC]time.Duration
}

// NewADC is the preferred method of initialisation for the ADC type.
func NewADC(perm logger.Permission, src clocks.Source) *ADC {
	return &ADC{
		ADC:  shims.NewADC(),
		perm: perm,
		src:  src,
	}
}

// Attach the audio file to the channel. The type of file is decided by the
// file extension. Playback begins immediately.
func (a *ADC) Attach(ch int, filename string) error {
	if ch < 0 || ch >= shims.NumADC {
		return curated.Errorf(peripherals.InvalidIndex, logTag, ch)
	}

	f, err := os.Open(filename)
	if err != nil {
		return peripherals.NewBackingError(logTag, err)
	}
	defer f.Close()

	var p *pcm

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		p, err = decodeWAV(f)
	case ".mp3":
		p, err = decodeMP3(f)
	default:
		err = fmt.Errorf("unsupported file type (%s)", filepath.Ext(filename))
	}
	if err != nil {
		return peripherals.NewBackingError(logTag, err)
	}
	if len(p.data) == 0 || p.sampleRate <= 0 {
		return peripherals.NewBackingError(logTag, fmt.Errorf("%s: no audio data", filename))
	}

	a.channels[ch] = p
	a.start[ch] = a.src.Now()

	logger.Logf(a.perm, logTag, "channel %d: %s (%.02fs at %.0fHz)", ch, filepath.Base(filename),
		float64(len(p.data))/p.sampleRate, p.sampleRate)

	return nil
}

// Detach the audio file from the channel. The last sample remains.
func (a *ADC) Detach(ch int) {
	if ch >= 0 && ch < shims.NumADC {
		a.channels[ch] = nil
	}
}

// Read implements the peripherals.ADC interface.
func (a *ADC) Read(ch int) (uint16, error) {
	if ch >= 0 && ch < shims.NumADC && a.channels[ch] != nil {
		_ = a.SetSample(ch, a.sample(ch))
	}
	return a.ADC.Read(ch)
}

func (a *ADC) sample(ch int) uint16 {
	p := a.channels[ch]
	elapsed := a.src.Now() - a.start[ch]
	idx := int(elapsed.Seconds()*p.sampleRate) % len(p.data)
	return scale(p.data[idx])
}

// scale a normalised sample to the 12-bit range of the ADC. silence is the
// middle of the range
func scale(f float32) uint16 {
	f = min(max(f, -1.0), 1.0)
	return uint16((f + 1.0) / 2.0 * peripherals.ADCMax)
}

func decodeWAV(r io.ReadSeeker) (*pcm, error) {
	dec := wav.NewDecoder(r)
	if dec == nil {
		return nil, fmt.Errorf("wav: error decoding")
	}
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}
	depth := int(dec.BitDepth)
	if depth == 0 {
		depth = 16
	}
	norm := float32(int(1) << (depth - 1))

	// first channel only
	p := &pcm{
		sampleRate: float64(dec.SampleRate),
		data:       make([]float32, 0, len(buf.Data)/chans),
	}
	for i := 0; i < len(buf.Data); i += chans {
		p.data = append(p.data, float32(buf.Data[i])/norm)
	}

	return p, nil
}

func decodeMP3(r io.Reader) (*pcm, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	p := &pcm{
		sampleRate: float64(dec.SampleRate()),
	}

	// the decoded stream is always 16bit little endian with two channels. a
	// sample is four bytes and only the left channel is used
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			p.data = append(p.data, float32(v)/32768.0)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: %w", err)
		}
	}

	return p, nil
}
