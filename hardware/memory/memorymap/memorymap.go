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

package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case Cartridge:
		return "Cartridge"
	case VRAM:
		return "VRAM"
	case CartridgeRAM:
		return "CartridgeRAM"
	case WRAM:
		return "WRAM"
	case OAM:
		return "OAM"
	case Unusable:
		return "Unusable"
	case IO:
		return "IO"
	case HRAM:
		return "HRAM"
	case InterruptEnable:
		return "InterruptEnable"
	}

	return "undefined"
}

// The different memory areas in the DMG.
const (
	Undefined Area = iota
	Cartridge
	VRAM
	CartridgeRAM
	WRAM
	OAM
	Unusable
	IO
	HRAM
	InterruptEnable
)

// The origin and memory top for each area of memory. Checking which area an
// address falls within and folding mirror addresses onto the primary address
// is all handled by the MapAddress() function.
//
// Implementations of the different memory areas may need to drag the address
// down into the range of an array. This can be done elegantly with
// (address^origin) rather than subtraction.
const (
	OriginCart          = uint16(0x0000)
	MemtopCart          = uint16(0x7fff)
	OriginVRAM          = uint16(0x8000)
	MemtopVRAM          = uint16(0x9fff)
	OriginCartRAM       = uint16(0xa000)
	MemtopCartRAM       = uint16(0xbfff)
	OriginWRAM          = uint16(0xc000)
	MemtopWRAM          = uint16(0xdfff)
	OriginEchoRAM       = uint16(0xe000)
	MemtopEchoRAM       = uint16(0xfdff)
	OriginOAM           = uint16(0xfe00)
	MemtopOAM           = uint16(0xfe9f)
	OriginUnusable      = uint16(0xfea0)
	MemtopUnusable      = uint16(0xfeff)
	OriginIO            = uint16(0xff00)
	MemtopIO            = uint16(0xff7f)
	OriginHRAM          = uint16(0xff80)
	MemtopHRAM          = uint16(0xfffe)
	AddrInterruptEnable = uint16(0xffff)
)

// The boot ROM is overlaid on the bottom of the cartridge area until the CPU
// leaves it for the cartridge entry point.
const (
	OriginBoot = uint16(0x0000)
	MemtopBoot = uint16(0x00ff)
)

// Memtop is the top most address of memory in the DMG.
const Memtop = uint16(0xffff)

// MapAddress folds a mirror address onto the primary address it reflects.
// The only mirror in the DMG address space is echo RAM, which reflects the
// bulk of working RAM. Generally, an address should be passed through this
// function before accessing memory.
func MapAddress(address uint16) (uint16, Area) {
	// note that the order of these filters matters. the most frequently hit
	// areas are checked first

	if address <= MemtopCart {
		return address, Cartridge
	}
	if address <= MemtopVRAM {
		return address, VRAM
	}
	if address <= MemtopCartRAM {
		return address, CartridgeRAM
	}
	if address <= MemtopWRAM {
		return address, WRAM
	}
	if address <= MemtopEchoRAM {
		// fold echo RAM onto working RAM
		return address - (OriginEchoRAM - OriginWRAM), WRAM
	}
	if address <= MemtopOAM {
		return address, OAM
	}
	if address <= MemtopUnusable {
		return address, Unusable
	}
	if address <= MemtopIO {
		return address, IO
	}
	if address <= MemtopHRAM {
		return address, HRAM
	}

	return address, InterruptEnable
}
