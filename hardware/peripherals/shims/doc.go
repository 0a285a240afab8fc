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

// Package shims contains in-memory implementations of every peripheral
// interface. They are the default backing for the machine and are used
// directly by tests.
//
// Timers and the clock are driven by a clocks.Source. The input and output
// devices are connected to the host through ring buffers. Levels of GPIO
// input pins and ADC samples are set with SetInput() and SetSample(), which
// are safe to call from any goroutine.
package shims
