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

// Package hardware is the base package for the LC-3 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Machine type is the root of the emulation and contains references to
// every sub-system: the register file, memory, the memory-mapped register
// layer, the interrupt controller and the CPU. The peripherals are supplied
// by the caller as a peripherals.Bundle.
//
// A machine must be booted before it is used. Boot() validates the OS
// configuration, installs the OS image (if the os.load preference is set) and
// leaves the PC at the boot code. A user program is then added with
// LoadImage().
//
//	m, _ := hardware.NewMachine(instance.Main, nil, bundle)
//	_ = m.Boot()
//	m.LoadImage(img)
//	_ = m.Run(nil)
//
// From here, the emulation can either be started to run continuously (with
// optional callback to check for continuation) or it can be stepped one
// instruction at a time.
package hardware
