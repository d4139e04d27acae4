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

import "fmt"

// StackPointer represents the SP register in the LR35902. Unlike the stack
// pointer in some other 8 bit CPUs it is a full 16 bit register and the stack
// can live anywhere in the address space (in practice, in zero-page RAM or
// work RAM).
type StackPointer struct {
	value uint16
}

// NewStackPointer is the preferred method of initialisation for StackPointer.
func NewStackPointer(val uint16) StackPointer {
	return StackPointer{value: val}
}

// Label returns an identifying string for the SP.
func (sp StackPointer) Label() string {
	return "SP"
}

func (sp StackPointer) String() string {
	return fmt.Sprintf("%#04x", sp.value)
}

// Address returns the current value of the SP as a value of type uint16.
func (sp StackPointer) Address() uint16 {
	return sp.value
}

// Load a value into the SP.
func (sp *StackPointer) Load(val uint16) {
	sp.value = val
}

// Increment the SP by one. Used by the pop operations.
func (sp *StackPointer) Increment() {
	sp.value++
}

// Decrement the SP by one. Used by the push operations.
func (sp *StackPointer) Decrement() {
	sp.value--
}
