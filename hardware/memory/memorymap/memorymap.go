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

// Package memorymap describes the regions of the LC-3 address space.
package memorymap

import "github.com/jetsetilly/lc3sim/hardware/isa"

// Area represents the different areas of memory.
type Area int

// List of memory areas.
const (
	TrapTable Area = iota
	InterruptTable
	OS
	User
	Devices
)

func (a Area) String() string {
	switch a {
	case TrapTable:
		return "trap table"
	case InterruptTable:
		return "interrupt table"
	case OS:
		return "OS"
	case User:
		return "user"
	case Devices:
		return "devices"
	}
	return "undefined"
}

// The origin and memory top for each area of memory.
const (
	OriginTrapTable      = isa.Addr(0x0000)
	MemtopTrapTable      = isa.Addr(0x00ff)
	OriginInterruptTable = isa.Addr(0x0100)
	MemtopInterruptTable = isa.Addr(0x01ff)
	OriginOS             = isa.Addr(0x0200)
	MemtopOS             = isa.Addr(0x2fff)
	OriginUser           = isa.Addr(0x3000)
	MemtopUser           = isa.Addr(0xfdff)
	OriginDevices        = isa.Addr(0xfe00)
	MemtopDevices        = isa.Addr(0xffff)
)

// Memtop is the top most address of memory.
const Memtop = MemtopDevices

// Size of the address space in words.
const Size = int(Memtop) + 1

// MapAddress returns the area the address is in.
func MapAddress(addr isa.Addr) Area {
	switch {
	case addr >= OriginDevices:
		return Devices
	case addr >= OriginUser:
		return User
	case addr >= OriginOS:
		return OS
	case addr >= OriginInterruptTable:
		return InterruptTable
	}
	return TrapTable
}

// UserAccessible returns true if the address can be accessed by a program
// running in user mode.
func UserAccessible(addr isa.Addr) bool {
	return addr >= OriginUser && addr <= MemtopUser
}

// IsMapped returns true if the address is in the device page. Addresses in
// the device page are handled by the memory-mapped register layer.
func IsMapped(addr isa.Addr) bool {
	return addr >= OriginDevices
}

// Vector returns the address of the interrupt vector table entry for the
// vector.
func Vector(v isa.Word) isa.Addr {
	return OriginInterruptTable + isa.Addr(v&0xff)
}
