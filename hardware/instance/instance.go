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

// Package instance defines those parts of the emulation that might change from
// instance to instance of the Machine type, but is not actually the machine
// itself.
//
// Particularly useful when running more than one instance of the emulation in
// parallel, for example when a test runs a second machine alongside the
// first.
package instance

import (
	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/random"
)

// Label indicates the context of the instance.
type Label string

// List of value Label values.
const (
	Main       Label = ""
	Comparison Label = "comparison"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the Machine type, but is not actually the
// machine itself.
type Instance struct {
	Label Label

	Random *random.Random

	// the prefrences of the running instance. this instance can be shared
	// with other running instances of the emulation.
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance type.
//
// The prefs argument can be nil and a new prefs instance will be created.
// Providing a non-nil value allows the preferences of more than one instance
// to be synchronised.
func NewInstance(counter random.Counter, prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(counter),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	ins.Prefs = prefs

	return ins, nil
}

// Normalise ensures the instance is in an known default state. Useful for
// testing where the initial state must be the same for every run.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface. Only the main
// instance is allowed to create log entries.
func (ins *Instance) AllowLogging() bool {
	return ins.Label == Main
}
