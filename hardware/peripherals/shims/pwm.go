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
	"github.com/jetsetilly/lc3sim/curated"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
)

const pwmLabel = "pwm"

// NumPWM is the number of PWM channels.
const NumPWM = 2

// PWM implements the peripherals.PWM interface.
type PWM struct {
	period [NumPWM]uint8
	duty   [NumPWM]uint8

	// called after the period or duty of a channel changes
	OnChange func(ch int, period uint8, duty uint8)
}

// NewPWM is the preferred method of initialisation for the PWM type.
func NewPWM() *PWM {
	return &PWM{}
}

// NumChannels implements the peripherals.PWM interface.
func (p *PWM) NumChannels() int {
	return NumPWM
}

func (p *PWM) valid(ch int) error {
	if ch < 0 || ch >= NumPWM {
		return curated.Errorf(peripherals.InvalidIndex, pwmLabel, ch)
	}
	return nil
}

func (p *PWM) changed(ch int) {
	if p.OnChange != nil {
		p.OnChange(ch, p.period[ch], p.duty[ch])
	}
}

// SetPeriod implements the peripherals.PWM interface.
func (p *PWM) SetPeriod(ch int, period uint8) error {
	if err := p.valid(ch); err != nil {
		return err
	}
	p.period[ch] = period
	p.changed(ch)
	return nil
}

// Period implements the peripherals.PWM interface.
func (p *PWM) Period(ch int) uint8 {
	if p.valid(ch) != nil {
		return 0
	}
	return p.period[ch]
}

// SetDuty implements the peripherals.PWM interface.
func (p *PWM) SetDuty(ch int, duty uint8) error {
	if err := p.valid(ch); err != nil {
		return err
	}
	p.duty[ch] = duty
	p.changed(ch)
	return nil
}

// Duty implements the peripherals.PWM interface.
func (p *PWM) Duty(ch int) uint8 {
	if p.valid(ch) != nil {
		return 0
	}
	return p.duty[ch]
}
