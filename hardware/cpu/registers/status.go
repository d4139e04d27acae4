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

package registers

import (
	"strings"
)

// StatusRegister is the special purpose register that stores the flags of the
// LR35902. Only the upper four bits of the register exist in silicon; the
// lower four bits always read as zero.
type StatusRegister struct {
	// set if the last operation produced a result of zero
	Zero bool

	// set if the last operation was a subtraction
	Subtract bool

	// set if the lower half of the byte overflowed in the last operation
	HalfCarry bool

	// set if the last operation produced over 0xff (additions) or under 0x00
	// (subtractions)
	Carry bool
}

// NewStatusRegister is the preferred method of initialisation for the status
// register.
func NewStatusRegister() StatusRegister {
	return StatusRegister{}
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "F"
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}

	if sr.Zero {
		s.WriteRune('Z')
	} else {
		s.WriteRune('z')
	}
	if sr.Subtract {
		s.WriteRune('N')
	} else {
		s.WriteRune('n')
	}
	if sr.HalfCarry {
		s.WriteRune('H')
	} else {
		s.WriteRune('h')
	}
	if sr.Carry {
		s.WriteRune('C')
	} else {
		s.WriteRune('c')
	}

	return s.String()
}

// Reset status flags to initial state.
func (sr *StatusRegister) Reset() {
	sr.FromValue(0)
}

// Value converts the StatusRegister struct into the register's bit pattern.
// Used when the AF pair is pushed onto the stack.
func (sr StatusRegister) Value() uint8 {
	var v uint8

	if sr.Zero {
		v |= 0x80
	}
	if sr.Subtract {
		v |= 0x40
	}
	if sr.HalfCarry {
		v |= 0x20
	}
	if sr.Carry {
		v |= 0x10
	}

	return v
}

// FromValue converts an 8 bit value into the flags of the StatusRegister.
// The lower four bits of the value are discarded, as the silicon does.
func (sr *StatusRegister) FromValue(v uint8) {
	sr.Zero = v&0x80 == 0x80
	sr.Subtract = v&0x40 == 0x40
	sr.HalfCarry = v&0x20 == 0x20
	sr.Carry = v&0x10 == 0x10
}
