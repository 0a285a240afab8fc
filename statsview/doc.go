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

// Package statsview runs a local HTTP server showing runtime statistics of
// the simulator process (goroutines, heap, GC pauses). Useful when checking
// that the interpreter loop does not allocate.
//
// The server is only available when the program is built with the statsview
// build tag. Without the tag Launch() does nothing and Available() returns
// false. Graphs are viewable at:
//
//	localhost:12600/debug/statsview
//
// and the standard Go pprof pages at:
//
//	localhost:12600/debug/pprof/
package statsview

// Address of the statistics server.
const Address = "localhost:12600"
