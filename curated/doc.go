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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a pattern and placeholder values in the same
// way as fmt.Errorf().
//
// The pattern is what identifies the error. Packages that return errors which
// callers need to distinguish export the pattern as a const string. For
// example, the memory package:
//
//	const AccessViolation = "memory: access violation: %04x"
//
//	err := curated.Errorf(AccessViolation, address)
//
//	if curated.Is(err, memory.AccessViolation) {
//		...
//	}
//
// The Has() function checks if the pattern occurs anywhere in the error
// chain. In the following, Is() fails but Has() succeeds:
//
//	f := curated.Errorf("debugger: %v", err)
//	curated.Is(f, memory.AccessViolation)
//	curated.Has(f, memory.AccessViolation)
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. A chain is a message made of parts separated by
// the sub-string ": ". This removes the problem of wrapping errors more than
// once in the same subsystem:
//
//	hardware: hardware: configuration error
//
// becomes
//
//	hardware: configuration error
package curated
