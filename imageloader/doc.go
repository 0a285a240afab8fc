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

// Package imageloader is used to specify and decode the memory images that
// are loaded into the machine. The OS ROM is an Image built with the
// assembler package. User programs are usually loaded from a file.
//
// Three formats are understood:
//
//	pairs   a sequence of big-endian (address, word) pairs
//	obj     the classic origin-then-words blob. big-endian words, the first
//	        word is the origin
//	text    one "xADDR xWORD" pair per line. ';' starts a comment
//
// The simplest use of the Loader type:
//
//	ld := imageloader.NewLoader("prog.obj", "AUTO")
//	img, err := ld.Decode()
//
// NewLoader() sets the format from the filename extension. With an unknown
// extension the data is inspected: printable data is treated as text,
// anything else as an obj file.
package imageloader
