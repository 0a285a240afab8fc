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

package shims

import (
	"sync/atomic"

	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

const adcLabel = "adc"

// NumADC is the number of ADC channels.
const NumADC = 6

// ADC implements the peripherals.ADC interface.
type ADC struct {
	states  [NumADC]peripherals.ADCState
	samples [NumADC]atomic.Uint32
}

// NewADC is the preferred method of initialisation for the ADC type.
func NewADC() *ADC {
	return &ADC{}
}

// NumChannels implements the peripherals.ADC interface.
func (a *ADC) NumChannels() int {
	return NumADC
}

func (a *ADC) valid(ch int) error {
	if ch < 0 || ch >= NumADC {
		return curated.Errorf(peripherals.InvalidIndex, adcLabel, ch)
	}
	return nil
}

// SetState implements the peripherals.ADC interface.
func (a *ADC) SetState(ch int, state peripherals.ADCState) error {
	if err := a.valid(ch); err != nil {
		return err
	}
	a.states[ch] = state
	return nil
}

// State implements the peripherals.ADC interface.
func (a *ADC) State(ch int) peripherals.ADCState {
	if a.valid(ch) != nil {
		return peripherals.ADCDisabled
	}
	return a.states[ch]
}

// Read implements the peripherals.ADC interface.
func (a *ADC) Read(ch int) (uint16, error) {
	if err := a.valid(ch); err != nil {
		return 0, err
	}
	if a.states[ch] != peripherals.ADCEnabled {
		return 0, curated.Errorf(peripherals.InvalidState, adcLabel, ch, a.states[ch])
	}
	return uint16(a.samples[ch].Load()) & peripherals.ADCMax, nil
}

// SetSample sets the value that will be returned by the channel. Safe to call
// from any goroutine.
func (a *ADC) SetSample(ch int, v uint16) error {
	if err := a.valid(ch); err != nil {
		return err
	}
	a.samples[ch].Store(uint32(v & peripherals.ADCMax))
	return nil
}
