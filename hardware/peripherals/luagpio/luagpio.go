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

// Package luagpio implements GPIO and ADC peripherals whose inputs are
// supplied by a Lua script. The script can define any of the following
// functions:
//
//	gpio_read(pin)          returns the level of an input pin as a boolean
//	gpio_write(pin, level)  called when an output pin is written
//	adc_read(channel)       returns the sample of an enabled ADC channel
//
// The function millis() is available to the script and returns the current
// clock time in milliseconds.
//
// The Lua state is not safe for concurrent use. All peripheral calls must be
// made from the emulation goroutine.
package luagpio

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/clocks"
	"github.com/jetsetilly/lc3sim/hardware/peripherals"
	"github.com/jetsetilly/lc3sim/hardware/peripherals/shims"
	"github.com/jetsetilly/lc3sim/logger"
	lua "github.com/yuin/gopher-lua"
)

const logTag = "luagpio"

// Script is a Lua state shared by the GPIO and ADC.
type Script struct {
	perm logger.Permission
	L    *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(perm logger.Permission, src clocks.Source) *Script {
	s := &Script{
		perm: perm,
		L:    lua.NewState(),
	}

	s.L.SetGlobal("millis", s.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(src.Now().Milliseconds()))
		return 1
	}))

	return s
}

// LoadString runs the Lua code. Functions defined by the code replace any
// earlier definitions.
func (s *Script) LoadString(code string) error {
	if err := s.L.DoString(code); err != nil {
		return peripherals.NewBackingError(logTag, err)
	}
	return nil
}

// LoadFile runs the Lua file.
func (s *Script) LoadFile(filename string) error {
	if err := s.L.DoFile(filename); err != nil {
		return peripherals.NewBackingError(logTag, err)
	}
	logger.Logf(s.perm, logTag, "loaded %s", filename)
	return nil
}

// Close the Lua state.
func (s *Script) Close() {
	s.L.Close()
}

// Global returns the value of a global variable in the Lua state.
func (s *Script) Global(name string) lua.LValue {
	return s.L.GetGlobal(name)
}

func (s *Script) defined(name string) bool {
	return s.L.GetGlobal(name).Type() == lua.LTFunction
}

// call the named function with one return value. the function must be
// defined
func (s *Script) call(name string, args ...lua.LValue) (lua.LValue, error) {
	err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(name),
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return lua.LNil, peripherals.NewBackingError(logTag, fmt.Errorf("%s: %w", name, err))
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return ret, nil
}

// GPIO implements the peripherals.GPIO interface.
type GPIO struct {
	*shims.GPIO
	script *Script
}

// GPIO returns a GPIO backed by the script.
func (s *Script) GPIO() *GPIO {
	g := &GPIO{
		GPIO:   shims.NewGPIO(),
		script: s,
	}
	g.GPIO.OnWrite = g.write
	return g
}

func (g *GPIO) write(pin int, level bool) {
	if !g.script.defined("gpio_write") {
		return
	}
	if _, err := g.script.call("gpio_write", lua.LNumber(pin), lua.LBool(level)); err != nil {
		logger.Log(g.script.perm, logTag, err)
	}
}

// update the level of the input pin from the script
func (g *GPIO) refresh(pin int) error {
	if !g.script.defined("gpio_read") {
		return nil
	}
	v, err := g.script.call("gpio_read", lua.LNumber(pin))
	if err != nil {
		return err
	}
	return g.SetInput(pin, lua.LVAsBool(v))
}

// Read implements the peripherals.GPIO interface.
func (g *GPIO) Read(pin int) (bool, error) {
	switch g.State(pin) {
	case peripherals.GPIOInput, peripherals.GPIOInterrupt:
		if err := g.refresh(pin); err != nil {
			return false, err
		}
	}
	return g.GPIO.Read(pin)
}

// InterruptOccurred implements the peripherals.GPIO interface. The level of
// a pin in the interrupt state is updated from the script first.
func (g *GPIO) InterruptOccurred(pin int) bool {
	if g.State(pin) == peripherals.GPIOInterrupt {
		if err := g.refresh(pin); err != nil {
			logger.Log(g.script.perm, logTag, err)
		}
	}
	return g.GPIO.InterruptOccurred(pin)
}

// ADC implements the peripherals.ADC interface.
type ADC struct {
	*shims.ADC
	script *Script
}

// ADC returns an ADC backed by the script.
func (s *Script) ADC() *ADC {
	return &ADC{
		ADC:    shims.NewADC(),
		script: s,
	}
}

// Read implements the peripherals.ADC interface.
func (a *ADC) Read(ch int) (uint16, error) {
	if a.State(ch) == peripherals.ADCEnabled && a.script.defined("adc_read") {
		v, err := a.script.call("adc_read", lua.LNumber(ch))
		if err != nil {
			return 0, err
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			return 0, peripherals.NewBackingError(logTag, fmt.Errorf("adc_read: returned %s", v.Type()))
		}
		_ = a.SetSample(ch, uint16(min(max(int(n), 0), peripherals.ADCMax)))
	}
	return a.ADC.Read(ch)
}
