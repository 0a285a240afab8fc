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

// Package debugger drives a Machine one step at a time or until something
// interesting happens. Interesting things are: the machine halting, the PC
// arriving at a breakpoint, a data access to a watched address and a request
// to cancel.
//
// All the methods of the Debugger type, except Cancel(), must be called from
// the same goroutine. Cancel() can be called from any goroutine and is the
// only way of stopping a call to RunUntilEvent() other than the context.
//
// The Terminal type is a simple line oriented command interface to the
// Debugger. The same commands can be sent over a remote.Transport with the
// Serve() function.
package debugger
