// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

package memory

import (
	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware/memory/cartridge"
	"github.com/dmgopher/dmgopher/hardware/memory/cpubus"
	"github.com/dmgopher/dmgopher/hardware/memory/memorymap"
)

// the registers handled by the memory subsystem itself rather than by an
// attached peripheral.
const (
	AddrInterruptFlag = uint16(0xff0f)
	AddrBootDisable   = uint16(0xff50)
)

// Memory is the monolithic address space of the DMG. Almost all of memory is
// serviced directly but the IO page is a crossbar: peripherals attach
// themselves to the registers they implement and the remaining registers
// fall through to a plain byte array.
type Memory struct {
	Cart *cartridge.Cartridge

	VRAM *RAM
	WRAM *RAM
	OAM  *RAM
	HRAM *RAM

	// the boot program is overlaid on the bottom of the cartridge area until
	// a write to the boot disable register removes it
	boot        []uint8
	bootEnabled bool

	// peripherals attached to the IO page, indexed by the low byte of the
	// register address. a nil entry means the io array below services the
	// register
	periph [0x80]cpubus.Memory
	io     [0x80]uint8

	// the interrupt enable register sits on its own at the top of memory
	ie uint8
}

// NewMemory is the preferred method of initialisation for the DMG memory
// subsystem.
func NewMemory() *Memory {
	mem := &Memory{
		VRAM: NewRAM("VRAM", memorymap.OriginVRAM, memorymap.MemtopVRAM),
		WRAM: NewRAM("WRAM", memorymap.OriginWRAM, memorymap.MemtopWRAM),
		OAM:  NewRAM("OAM", memorymap.OriginOAM, memorymap.MemtopOAM),
		HRAM: NewRAM("HRAM", memorymap.OriginHRAM, memorymap.MemtopHRAM),
	}
	return mem
}

// Reset contents of memory. Attached peripherals are not reset.
func (mem *Memory) Reset() {
	mem.VRAM.Reset()
	mem.WRAM.Reset()
	mem.OAM.Reset()
	mem.HRAM.Reset()
	for i := range mem.io {
		mem.io[i] = 0x00
	}
	mem.ie = 0x00
	mem.bootEnabled = len(mem.boot) > 0
}

// AttachCartridge to the memory subsystem.
func (mem *Memory) AttachCartridge(cart *cartridge.Cartridge) {
	mem.Cart = cart
}

// AttachBoot overlays a boot program on the bottom of the cartridge area.
// The overlay remains in place until the running program writes to the boot
// disable register.
func (mem *Memory) AttachBoot(boot []uint8) {
	mem.boot = boot
	mem.bootEnabled = len(boot) > 0
}

// AttachPeripheral connects a peripheral to one or more registers in the IO
// page. Reads and writes to those registers will be serviced by the
// peripheral rather than by the memory subsystem.
func (mem *Memory) AttachPeripheral(periph cpubus.Memory, addresses ...uint16) {
	for _, a := range addresses {
		mem.periph[a-memorymap.OriginIO] = periph
	}
}

// RaiseInterrupt sets the request bits in the interrupt flag register. The
// peripherals use this to signal the CPU.
func (mem *Memory) RaiseInterrupt(mask uint8) {
	mem.io[AddrInterruptFlag-memorymap.OriginIO] |= mask
}

// BootEnabled returns true if the boot overlay is still in place.
func (mem *Memory) BootEnabled() bool {
	return mem.bootEnabled
}

// Read is an implementation of cpubus.Memory.
func (mem *Memory) Read(address uint16) (uint8, error) {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.Cartridge:
		if mem.bootEnabled && ma <= memorymap.MemtopBoot {
			return mem.boot[ma], nil
		}
		if mem.Cart == nil {
			return 0, curated.Errorf(cpubus.AddressError, "read", address)
		}
		return mem.Cart.Read(ma)

	case memorymap.VRAM:
		return mem.VRAM.Read(ma)

	case memorymap.CartridgeRAM:
		if mem.Cart == nil {
			return 0, curated.Errorf(cpubus.AddressError, "read", address)
		}
		return mem.Cart.Read(ma)

	case memorymap.WRAM:
		return mem.WRAM.Read(ma)

	case memorymap.OAM:
		return mem.OAM.Read(ma)

	case memorymap.Unusable:
		return 0, curated.Errorf(cpubus.AddressError, "read", address)

	case memorymap.IO:
		if p := mem.periph[ma-memorymap.OriginIO]; p != nil {
			return p.Read(ma)
		}
		return mem.io[ma-memorymap.OriginIO], nil

	case memorymap.HRAM:
		return mem.HRAM.Read(ma)

	case memorymap.InterruptEnable:
		return mem.ie, nil
	}

	return 0, curated.Errorf(cpubus.AddressError, "read", address)
}

// Write is an implementation of cpubus.Memory.
func (mem *Memory) Write(address uint16, data uint8) error {
	ma, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.Cartridge:
		if mem.Cart == nil {
			return curated.Errorf(cpubus.AddressError, "write", address)
		}
		return mem.Cart.Write(ma, data)

	case memorymap.VRAM:
		return mem.VRAM.Write(ma, data)

	case memorymap.CartridgeRAM:
		if mem.Cart == nil {
			return curated.Errorf(cpubus.AddressError, "write", address)
		}
		return mem.Cart.Write(ma, data)

	case memorymap.WRAM:
		return mem.WRAM.Write(ma, data)

	case memorymap.OAM:
		return mem.OAM.Write(ma, data)

	case memorymap.Unusable:
		return curated.Errorf(cpubus.AddressError, "write", address)

	case memorymap.IO:
		// a non-zero write to the boot disable register removes the boot
		// overlay. the register cannot be written back
		if ma == AddrBootDisable && data != 0x00 {
			mem.bootEnabled = false
		}

		if p := mem.periph[ma-memorymap.OriginIO]; p != nil {
			return p.Write(ma, data)
		}
		mem.io[ma-memorymap.OriginIO] = data
		return nil

	case memorymap.HRAM:
		return mem.HRAM.Write(ma, data)

	case memorymap.InterruptEnable:
		mem.ie = data
		return nil
	}

	return curated.Errorf(cpubus.AddressError, "write", address)
}
