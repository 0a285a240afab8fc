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

package preferences_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/lc3sim/hardware/preferences"
	"github.com/jetsetilly/lc3sim/prefs"
	"github.com/jetsetilly/lc3sim/test"
)

// preferences are stored in the .lc3sim directory of the working directory
// for the duration of the test
func localResources(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	t.Cleanup(func() { os.Chdir(wd) })
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".lc3sim", 0700))
}

func TestDefaults(t *testing.T) {
	localResources(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.EntryPoint.Get().(int), 0x0200)
	test.ExpectSuccess(t, p.LEASetsCC.Get().(bool))
	test.ExpectFailure(t, p.RandomState.Get().(bool))
	test.ExpectEquality(t, p.RingCapacity.Get().(int), preferences.DefaultRingCapacity)
	test.ExpectSuccess(t, p.OS.LoadImage.Get().(bool))
	test.ExpectEquality(t, p.OS.UserStart.Get().(int), 0x3000)
	test.ExpectSuccess(t, p.OS.ErrorOnACV.Get().(bool))
	test.ExpectEquality(t, p.OS.StartSP.Get().(int), 0x0700)
	test.ExpectEquality(t, p.Audio.SampleRate.Get().(int), 44100)
}

func TestSaveLoad(t *testing.T) {
	localResources(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.LEASetsCC.Set(false))
	test.ExpectSuccess(t, p.OS.UserStart.Set(0x4000))
	test.ExpectSuccess(t, p.Save())

	q, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, q.LEASetsCC.Get().(bool))
	test.ExpectEquality(t, q.OS.UserStart.Get().(int), 0x4000)

	q.SetDefaults()
	test.ExpectSuccess(t, q.LEASetsCC.Get().(bool))
	test.ExpectEquality(t, q.OS.UserStart.Get().(int), 0x3000)
}

func TestCommandLine(t *testing.T) {
	localResources(t)

	prefs.PushCommandLineStack("os.startSP::0x0800; hardware.randomState::true")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.OS.StartSP.Get().(int), 0x0800)
	test.ExpectSuccess(t, p.RandomState.Get().(bool))
}
