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

// Package cpubus defines the memory bus as seen from the CPU. The CPU knows
// nothing about how the address space is carved up; it can only ask for a
// byte at an address or put a byte to an address.
package cpubus

// Memory defines the operations for the memory system as required by the CPU.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// AddressError is the curated error pattern returned on access to an address
// that maps to nothing.
const AddressError = "cpubus: %s: unmapped address (%#04x)"
