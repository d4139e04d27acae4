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

import "strings"

// header field addresses.
const (
	addrTitle          = 0x0134
	addrTitleEnd       = 0x0143
	addrCartridgeType  = 0x0147
	addrROMSize        = 0x0148
	addrRAMSize        = 0x0149
	addrHeaderChecksum = 0x014d
)

// Header is the decoded form of the information block every cartridge
// carries at the top of its first ROM page.
type Header struct {
	Title  string
	Mapper string

	// sizes in bytes as declared by the header. the declared ROM size may
	// disagree with the size of the file
	ROMSize int
	RAMSize int

	// whether the checksum field agrees with the checksum of the header data
	ChecksumOK bool
}

// the mapper names for the cartridge type field. only the types that appear
// in licensed DMG software are listed.
var mapperNames = map[uint8]string{
	0x00: "ROM",
	0x01: "MBC1",
	0x02: "MBC1",
	0x03: "MBC1",
	0x05: "MBC2",
	0x06: "MBC2",
	0x08: "ROM",
	0x09: "ROM",
	0x0f: "MBC3",
	0x10: "MBC3",
	0x11: "MBC3",
	0x12: "MBC3",
	0x13: "MBC3",
	0x19: "MBC5",
	0x1a: "MBC5",
	0x1b: "MBC5",
	0x1c: "MBC5",
	0x1d: "MBC5",
	0x1e: "MBC5",
}

// the RAM size field is an enumeration, not a byte count.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 0x800,
	0x02: 0x2000,
	0x03: 0x8000,
}

func decodeHeader(data []uint8) Header {
	hdr := Header{}

	// title is padded with zero bytes
	title := data[addrTitle : addrTitleEnd+1]
	hdr.Title = strings.TrimRight(string(title), "\x00")

	if m, ok := mapperNames[data[addrCartridgeType]]; ok {
		hdr.Mapper = m
	} else {
		hdr.Mapper = "unknown"
	}

	// ROM size field is a power of two multiplier of 32k
	hdr.ROMSize = 0x8000 << data[addrROMSize]

	if sz, ok := ramSizes[data[addrRAMSize]]; ok {
		hdr.RAMSize = sz
	}

	// the checksum covers the header bytes from the title to the ROM
	// version field
	chk := uint8(0)
	for _, b := range data[addrTitle:addrHeaderChecksum] {
		chk = chk - b - 1
	}
	hdr.ChecksumOK = chk == data[addrHeaderChecksum]

	return hdr
}
