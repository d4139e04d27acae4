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
	"fmt"
	"strings"
)

// RAM represents an unadorned area of random access memory. It is used for
// working RAM, video RAM, object attribute memory and the high RAM page.
type RAM struct {
	label  string
	origin uint16
	memtop uint16
	memory []uint8
}

// NewRAM is the preferred method of initialisation for the RAM memory areas.
func NewRAM(label string, origin uint16, memtop uint16) *RAM {
	ram := &RAM{
		label:  label,
		origin: origin,
		memtop: memtop,
	}

	// allocate the minimal amount of memory
	ram.memory = make([]uint8, memtop-origin+1)

	return ram
}

func (ram RAM) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s (%#04x to %#04x)", ram.label, ram.origin, ram.memtop))
	return s.String()
}

// Reset clears the contents of the RAM area.
func (ram *RAM) Reset() {
	for i := range ram.memory {
		ram.memory[i] = 0x00
	}
}

// Read is an implementation of cpubus.Memory.
func (ram RAM) Read(address uint16) (uint8, error) {
	return ram.memory[address-ram.origin], nil
}

// Write is an implementation of cpubus.Memory.
func (ram *RAM) Write(address uint16, data uint8) error {
	ram.memory[address-ram.origin] = data
	return nil
}
