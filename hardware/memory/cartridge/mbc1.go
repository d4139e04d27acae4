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

import "github.com/dmgopher/dmgopher/hardware/memory/memorymap"

// size of a switchable ROM bank and of a cartridge RAM bank.
const (
	mbc1ROMBankSize = 0x4000
	mbc1RAMBankSize = 0x2000
)

// mbc1 is the mapper for cartridges carrying the MBC1 chip. Writes to the
// ROM area drive the banking registers:
//
//	0x0000 to 0x1fff    RAM enable (low nibble 0x0a enables)
//	0x2000 to 0x3fff    ROM bank number (5 bits, zero reads as one)
//	0x4000 to 0x5fff    RAM bank number (2 bits)
//	0x6000 to 0x7fff    banking mode select
type mbc1 struct {
	rom []uint8
	ram []uint8

	romBank    uint8
	ramBank    uint8
	ramEnabled bool

	// in mode 1 the RAM bank register takes effect. mode 0 always accesses
	// RAM bank zero
	mode uint8
}

func newMbc1(data []uint8, ramSize int) *mbc1 {
	return &mbc1{
		rom:     data,
		ram:     make([]uint8, ramSize),
		romBank: 1,
	}
}

func (mb *mbc1) currentRAMBank() int {
	if mb.mode == 0 {
		return 0
	}
	return int(mb.ramBank)
}

func (mb *mbc1) Read(address uint16) (uint8, error) {
	switch {
	case address < mbc1ROMBankSize:
		if int(address) >= len(mb.rom) {
			return 0xff, nil
		}
		return mb.rom[address], nil

	case address <= memorymap.MemtopCart:
		idx := int(mb.romBank)*mbc1ROMBankSize + int(address-mbc1ROMBankSize)
		if idx >= len(mb.rom) {
			return 0xff, nil
		}
		return mb.rom[idx], nil
	}

	if !mb.ramEnabled {
		return 0xff, nil
	}

	idx := mb.currentRAMBank()*mbc1RAMBankSize + int(address-memorymap.OriginCartRAM)
	if idx >= len(mb.ram) {
		return 0xff, nil
	}
	return mb.ram[idx], nil
}

func (mb *mbc1) Write(address uint16, data uint8) error {
	switch {
	case address < 0x2000:
		mb.ramEnabled = data&0x0f == 0x0a

	case address < 0x4000:
		bank := data & 0x1f
		if bank == 0 {
			bank = 1
		}
		mb.romBank = bank

	case address < 0x6000:
		mb.ramBank = data & 0x03

	case address <= memorymap.MemtopCart:
		mb.mode = data & 0x01

	default:
		if !mb.ramEnabled {
			return nil
		}
		idx := mb.currentRAMBank()*mbc1RAMBankSize + int(address-memorymap.OriginCartRAM)
		if idx < len(mb.ram) {
			mb.ram[idx] = data
		}
	}

	return nil
}
