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

// Package execution tracks the result of instruction execution on the CPU.
// The Result type is the primary way the rest of the emulation learns what
// the CPU has just done.
package execution

import (
	"fmt"

	"github.com/dmgopher/dmgopher/hardware/cpu/instructions"
)

// Result records the state of an instruction execution.
type Result struct {
	// the address the opcode was fetched from
	Address uint16

	// a reference to the instruction definition. note that for CB-prefixed
	// instructions this is the definition from the CB table
	Defn *instructions.Definition

	// whether the instruction was fetched through the 0xcb prefix
	PrefixCB bool

	// the instruction operand, if any. of type uint8 or uint16 (or nil)
	InstructionData interface{}

	// the actual number of cycles taken by the instruction. differs from
	// Defn.Cycles when the condition of a conditional instruction fails
	ActualCycles int

	// whether a conditional instruction took its branch/call/return
	BranchTaken bool

	// whether this data has been finalised. the other fields in the struct
	// may be undefined unless Final is true
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	r.Address = 0
	r.Defn = nil
	r.PrefixCB = false
	r.InstructionData = nil
	r.ActualCycles = 0
	r.BranchTaken = false
	r.Final = false
}

// String returns a disassembly of the executed instruction. The mnemonic
// templates in the instructions package expect the operand value.
func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%04x ???", r.Address)
	}

	var operator string
	switch data := r.InstructionData.(type) {
	case uint8:
		operator = fmt.Sprintf(r.Defn.Mnemonic, data)
	case uint16:
		operator = fmt.Sprintf(r.Defn.Mnemonic, data)
	default:
		operator = r.Defn.Mnemonic
	}

	return fmt.Sprintf("%04x %s", r.Address, operator)
}
