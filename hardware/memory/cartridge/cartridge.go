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

package cartridge

import (
	"fmt"

	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware/memory/memorymap"
	"github.com/dmgopher/dmgopher/logger"
)

// sentinal errors returned by the cartridge package.
const (
	AttachError = "cartridge: %v"
)

// the minimum size of a cartridge. a ROM smaller than this cannot contain a
// complete header.
const minCartridgeSize = 0x0150

// mapper is the table the Cartridge delegates bus access to. Different
// cartridge types carry different banking circuitry; the mapper hides the
// difference from the memory subsystem.
type mapper interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// Cartridge is the DMG's view of the ROM and RAM carried on the attached
// cartridge. Plain (unbanked) ROMs and MBC1 cartridges are supported; a ROM
// that names any other mapper in its header is attached as though it were
// unbanked, with a log entry noting the discrepancy.
type Cartridge struct {
	Filename  string
	ShortName string
	Hash      string

	Header Header

	mapper mapper
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. The loader will be Load()ed if it hasn't been already.
func NewCartridge(loader cartridgeloader.Loader) (*Cartridge, error) {
	if !loader.HasLoaded() {
		if err := loader.Load(); err != nil {
			return nil, curated.Errorf(AttachError, err)
		}
	}

	if len(loader.Data) < minCartridgeSize {
		return nil, curated.Errorf(AttachError,
			fmt.Errorf("%s: file too small to be a cartridge", loader.Filename))
	}

	cart := &Cartridge{
		Filename:  loader.Filename,
		ShortName: loader.ShortName(),
		Hash:      loader.Hash,
	}

	cart.Header = decodeHeader(loader.Data)

	if !cart.Header.ChecksumOK {
		logger.Logf("cartridge", "%s: header checksum mismatch", cart.ShortName)
	}

	switch cart.Header.Mapper {
	case "ROM":
		cart.mapper = newPlainROM(loader.Data, cart.Header.RAMSize)
	case "MBC1":
		cart.mapper = newMbc1(loader.Data, cart.Header.RAMSize)
	default:
		logger.Logf("cartridge", "%s: unsupported mapper (%s), attaching as plain ROM", cart.ShortName, cart.Header.Mapper)
		cart.mapper = newPlainROM(loader.Data, cart.Header.RAMSize)
	}

	return cart, nil
}

func (cart Cartridge) String() string {
	return fmt.Sprintf("%s [%s] %dk", cart.ShortName, cart.Header.Mapper, cart.Header.ROMSize/1024)
}

// Read is an implementation of cpubus.Memory. The address must already have
// been mapped: ROM addresses run from the bottom of memory and RAM
// addresses from the cartridge RAM origin.
func (cart Cartridge) Read(address uint16) (uint8, error) {
	return cart.mapper.Read(address)
}

// Write is an implementation of cpubus.Memory. What a ROM area write does
// depends on the mapper: a plain cartridge quietly drops it, a banked
// cartridge treats it as a register access.
func (cart *Cartridge) Write(address uint16, data uint8) error {
	return cart.mapper.Write(address, data)
}

// plainROM is the mapper for cartridges with no banking circuitry at all.
type plainROM struct {
	rom []uint8
	ram []uint8
}

func newPlainROM(data []uint8, ramSize int) *plainROM {
	return &plainROM{
		rom: data,
		ram: make([]uint8, ramSize),
	}
}

func (pr *plainROM) Read(address uint16) (uint8, error) {
	if address <= memorymap.MemtopCart {
		if int(address) >= len(pr.rom) {
			return 0xff, nil
		}
		return pr.rom[address], nil
	}

	idx := int(address - memorymap.OriginCartRAM)
	if idx >= len(pr.ram) {
		return 0xff, nil
	}
	return pr.ram[idx], nil
}

func (pr *plainROM) Write(address uint16, data uint8) error {
	if address <= memorymap.MemtopCart {
		return nil
	}

	idx := int(address - memorymap.OriginCartRAM)
	if idx < len(pr.ram) {
		pr.ram[idx] = data
	}
	return nil
}
