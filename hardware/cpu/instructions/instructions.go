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

// Package instructions defines the instruction set of the LR35902: one
// Definition for each of the 256 primary opcodes and each of the 256
// opcodes behind the 0xcb prefix.
//
// The mnemonic strings double as disassembly templates: a %02X placeholder
// stands for the 8 bit operand, a %04X placeholder for the 16 bit operand
// (the LR35902 is little endian).
//
// The canonical tabulation of the instruction set can be found at:
//
//	http://www.pastraiser.com/cpu/gameboy/gameboy_opcodes.html
package instructions

import "fmt"

// Definition defines each instruction in the instruction set; one per opcode.
type Definition struct {
	OpCode   uint8
	Mnemonic string

	// length of instruction in bytes, including the opcode itself. for
	// CB-prefixed instructions the prefix byte is not counted
	Bytes int

	// machine cycles consumed by the instruction. for conditional
	// instructions this is the count when the condition is met
	Cycles int

	// machine cycles consumed when the condition of a conditional
	// instruction is not met. zero for unconditional instructions
	CyclesNotTaken int
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	if defn.IsConditional() {
		return fmt.Sprintf("%02x %s +%dbytes (%d/%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.CyclesNotTaken)
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// IsConditional returns true if the cycle count of the instruction depends on
// a flag condition (the conditional jumps, calls and returns).
func (defn Definition) IsConditional() bool {
	return defn.CyclesNotTaken != 0
}

// Undefined returns true if the opcode does not correspond to any instruction
// in the LR35902. Eleven of the 256 primary opcodes are undefined; executing
// one on real hardware locks the CPU.
func (defn Definition) Undefined() bool {
	return defn.Mnemonic == ""
}

// GetDefinitions returns the table of primary instruction definitions,
// indexed by opcode.
func GetDefinitions() []*Definition {
	return definitions[:]
}

// GetDefinitionsCB returns the table of instruction definitions behind the
// 0xcb prefix opcode, indexed by the byte following the prefix.
func GetDefinitionsCB() []*Definition {
	return definitionsCB[:]
}
