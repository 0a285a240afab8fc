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

package isa

import "strings"

// ConditionCode is a set of N, Z and P bits. In the PSR exactly one of the
// bits is set. In a BR instruction any combination can be used as a mask.
type ConditionCode uint8

// The three condition code bits, in their PSR (and BR instruction) positions.
const (
	P ConditionCode = 1 << iota
	Z
	N

	// NZP is the mask of all three bits. used as a BR mask it is an
	// unconditional branch.
	NZP = N | Z | P
)

// ConditionOf returns the condition code reflecting the sign of the value.
func ConditionOf(v Word) ConditionCode {
	switch {
	case v == 0:
		return Z
	case v&0x8000 == 0x8000:
		return N
	}
	return P
}

// Valid returns true if exactly one of N, Z, P is set.
func (cc ConditionCode) Valid() bool {
	return cc == N || cc == Z || cc == P
}

func (cc ConditionCode) String() string {
	s := strings.Builder{}
	if cc&N == N {
		s.WriteRune('n')
	}
	if cc&Z == Z {
		s.WriteRune('z')
	}
	if cc&P == P {
		s.WriteRune('p')
	}
	return s.String()
}

// Privilege is the processor mode. Supervisor mode is required to access
// memory outside of the user region.
type Privilege bool

// List of valid Privilege values.
const (
	Supervisor Privilege = false
	User       Privilege = true
)

func (p Privilege) String() string {
	if p == User {
		return "user"
	}
	return "supervisor"
}
