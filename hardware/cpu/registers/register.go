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
	"fmt"
)

// Register is an 8 bit register in the LR35902.
type Register struct {
	label string
	value uint8
}

// NewRegister creates a new 8 bit register with the given value and name.
func NewRegister(val uint8, label string) Register {
	return Register{
		value: val,
		label: label,
	}
}

func (r Register) String() string {
	return fmt.Sprintf("%s=%#02x", r.label, r.value)
}

// Label returns the name of the register.
func (r Register) Label() string {
	return r.label
}

// Value returns the current value of the register.
func (r Register) Value() uint8 {
	return r.value
}

// IsZero checks if register is zero.
func (r Register) IsZero() bool {
	return r.value == 0
}

// IsBitSet returns the state of the numbered bit (0 to 7, LSB first).
func (r Register) IsBitSet(bit int) bool {
	return r.value&(0x01<<bit) != 0
}

// Load value into register.
func (r *Register) Load(val uint8) {
	r.value = val
}

// Increment the register by one. The LR35902 INC instruction wraps silently;
// flag effects are dealt with by the cpu package.
func (r *Register) Increment() {
	r.value++
}

// Decrement the register by one.
func (r *Register) Decrement() {
	r.value--
}

// SetBit sets the numbered bit in the register.
func (r *Register) SetBit(bit int) {
	r.value |= 0x01 << bit
}

// ClearBit resets the numbered bit in the register.
func (r *Register) ClearBit(bit int) {
	r.value &= ^(0x01 << bit)
}

// SwapNibbles exchanges the upper and lower four bits of the register.
func (r *Register) SwapNibbles() {
	r.value = (r.value << 4) | (r.value >> 4)
}
