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

package registers

import (
	"fmt"

	"github.com/jetsetilly/lc3sim/hardware/isa"
)

// Bit positions and masks of the PSR fields.
const (
	PrivilegeBit  = isa.Word(0x8000)
	PriorityMask  = isa.Word(0x0700)
	PriorityShift = 8
	CCMask        = isa.Word(0x0007)
)

// MaxPriority is the highest priority level.
const MaxPriority = 7

// StatusRegister is the processor status register (PSR). It holds the
// privilege mode, the priority level and the condition codes.
type StatusRegister struct {
	Privilege isa.Privilege
	Priority  uint8
	CC        isa.ConditionCode
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "PSR"
}

func (sr StatusRegister) String() string {
	m := 'S'
	if sr.Privilege == isa.User {
		m = 'U'
	}
	return fmt.Sprintf("%c%d %s", m, sr.Priority, sr.CC)
}

// Value returns the status register in its Word form, suitable for pushing
// onto the stack or for reading through the memory-mapped register.
func (sr StatusRegister) Value() isa.Word {
	var v isa.Word
	if sr.Privilege == isa.User {
		v |= PrivilegeBit
	}
	v |= isa.Word(sr.Priority&MaxPriority) << PriorityShift
	v |= isa.Word(sr.CC) & CCMask
	return v
}

// FromValue sets the status register from its Word form. If the condition
// code field of the value does not contain exactly one bit then the existing
// condition codes are kept.
func (sr *StatusRegister) FromValue(v isa.Word) {
	if v&PrivilegeBit == PrivilegeBit {
		sr.Privilege = isa.User
	} else {
		sr.Privilege = isa.Supervisor
	}
	sr.Priority = uint8((v & PriorityMask) >> PriorityShift)
	if cc := isa.ConditionCode(v & CCMask); cc.Valid() {
		sr.CC = cc
	}
}

// SetCC sets the condition codes from the sign of the value.
func (sr *StatusRegister) SetCC(v isa.Word) {
	sr.CC = isa.ConditionOf(v)
}
