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

package instructions

import "fmt"

var definitions [256]*Definition
var definitionsCB [256]*Definition

// the operand ordering the LR35902 opcode layout itself uses. the middle and
// low octal digits of an opcode select from this list
var operands = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// the two regular quadrants of the primary table (0x40 to 0xbf) and the
// entire CB table follow the operand ordering exactly. only the outer
// quadrants need tabulating by hand.
var irregular = []Definition{
	{0x00, "NOP", 1, 4, 0},
	{0x01, "LD BC, 0x%04X", 3, 12, 0},
	{0x02, "LD (BC), A", 1, 8, 0},
	{0x03, "INC BC", 1, 8, 0},
	{0x04, "INC B", 1, 4, 0},
	{0x05, "DEC B", 1, 4, 0},
	{0x06, "LD B, 0x%02X", 2, 8, 0},
	{0x07, "RLCA", 1, 4, 0},
	{0x08, "LD (0x%04X), SP", 3, 20, 0},
	{0x09, "ADD HL, BC", 1, 8, 0},
	{0x0a, "LD A, (BC)", 1, 8, 0},
	{0x0b, "DEC BC", 1, 8, 0},
	{0x0c, "INC C", 1, 4, 0},
	{0x0d, "DEC C", 1, 4, 0},
	{0x0e, "LD C, 0x%02X", 2, 8, 0},
	{0x0f, "RRCA", 1, 4, 0},

	{0x10, "STOP", 1, 4, 0},
	{0x11, "LD DE, 0x%04X", 3, 12, 0},
	{0x12, "LD (DE), A", 1, 8, 0},
	{0x13, "INC DE", 1, 8, 0},
	{0x14, "INC D", 1, 4, 0},
	{0x15, "DEC D", 1, 4, 0},
	{0x16, "LD D, 0x%02X", 2, 8, 0},
	{0x17, "RLA", 1, 4, 0},
	{0x18, "JR 0x%02X", 2, 12, 0},
	{0x19, "ADD HL, DE", 1, 8, 0},
	{0x1a, "LD A, (DE)", 1, 8, 0},
	{0x1b, "DEC DE", 1, 8, 0},
	{0x1c, "INC E", 1, 4, 0},
	{0x1d, "DEC E", 1, 4, 0},
	{0x1e, "LD E, 0x%02X", 2, 8, 0},
	{0x1f, "RRA", 1, 4, 0},

	{0x20, "JR NZ, 0x%02X", 2, 12, 8},
	{0x21, "LD HL, 0x%04X", 3, 12, 0},
	{0x22, "LD (HL+), A", 1, 8, 0},
	{0x23, "INC HL", 1, 8, 0},
	{0x24, "INC H", 1, 4, 0},
	{0x25, "DEC H", 1, 4, 0},
	{0x26, "LD H, 0x%02X", 2, 8, 0},
	{0x27, "DAA", 1, 4, 0},
	{0x28, "JR Z, 0x%02X", 2, 12, 8},
	{0x29, "ADD HL, HL", 1, 8, 0},
	{0x2a, "LD A, (HL+)", 1, 8, 0},
	{0x2b, "DEC HL", 1, 8, 0},
	{0x2c, "INC L", 1, 4, 0},
	{0x2d, "DEC L", 1, 4, 0},
	{0x2e, "LD L, 0x%02X", 2, 8, 0},
	{0x2f, "CPL", 1, 4, 0},

	{0x30, "JR NC, 0x%02X", 2, 12, 8},
	{0x31, "LD SP, 0x%04X", 3, 12, 0},
	{0x32, "LD (HL-), A", 1, 8, 0},
	{0x33, "INC SP", 1, 8, 0},
	{0x34, "INC (HL)", 1, 12, 0},
	{0x35, "DEC (HL)", 1, 12, 0},
	{0x36, "LD (HL), 0x%02X", 2, 12, 0},
	{0x37, "SCF", 1, 4, 0},
	{0x38, "JR C, 0x%02X", 2, 12, 8},
	{0x39, "ADD HL, SP", 1, 8, 0},
	{0x3a, "LD A, (HL-)", 1, 8, 0},
	{0x3b, "DEC SP", 1, 8, 0},
	{0x3c, "INC A", 1, 4, 0},
	{0x3d, "DEC A", 1, 4, 0},
	{0x3e, "LD A, 0x%02X", 2, 8, 0},
	{0x3f, "CCF", 1, 4, 0},

	{0xc0, "RET NZ", 1, 20, 8},
	{0xc1, "POP BC", 1, 12, 0},
	{0xc2, "JP NZ, 0x%04X", 3, 16, 12},
	{0xc3, "JP 0x%04X", 3, 16, 0},
	{0xc4, "CALL NZ, 0x%04X", 3, 24, 12},
	{0xc5, "PUSH BC", 1, 16, 0},
	{0xc6, "ADD A, 0x%02X", 2, 8, 0},
	{0xc7, "RST 00H", 1, 16, 0},
	{0xc8, "RET Z", 1, 20, 8},
	{0xc9, "RET", 1, 16, 0},
	{0xca, "JP Z, 0x%04X", 3, 16, 12},
	{0xcb, "PREFIX CB", 1, 4, 0},
	{0xcc, "CALL Z, 0x%04X", 3, 24, 12},
	{0xcd, "CALL 0x%04X", 3, 24, 0},
	{0xce, "ADC A, 0x%02X", 2, 8, 0},
	{0xcf, "RST 08H", 1, 16, 0},

	{0xd0, "RET NC", 1, 20, 8},
	{0xd1, "POP DE", 1, 12, 0},
	{0xd2, "JP NC, 0x%04X", 3, 16, 12},
	{0xd4, "CALL NC, 0x%04X", 3, 24, 12},
	{0xd5, "PUSH DE", 1, 16, 0},
	{0xd6, "SUB 0x%02X", 2, 8, 0},
	{0xd7, "RST 10H", 1, 16, 0},
	{0xd8, "RET C", 1, 20, 8},
	{0xd9, "RETI", 1, 16, 0},
	{0xda, "JP C, 0x%04X", 3, 16, 12},
	{0xdc, "CALL C, 0x%04X", 3, 24, 12},
	{0xde, "SBC A, 0x%02X", 2, 8, 0},
	{0xdf, "RST 18H", 1, 16, 0},

	{0xe0, "LDH (0x%02X), A", 2, 12, 0},
	{0xe1, "POP HL", 1, 12, 0},
	{0xe2, "LD (C), A", 1, 8, 0},
	{0xe5, "PUSH HL", 1, 16, 0},
	{0xe6, "AND 0x%02X", 2, 8, 0},
	{0xe7, "RST 20H", 1, 16, 0},
	{0xe8, "ADD SP, 0x%02X", 2, 16, 0},
	{0xe9, "JP (HL)", 1, 4, 0},
	{0xea, "LD (0x%04X), A", 3, 16, 0},
	{0xee, "XOR 0x%02X", 2, 8, 0},
	{0xef, "RST 28H", 1, 16, 0},

	{0xf0, "LDH A, (0x%02X)", 2, 12, 0},
	{0xf1, "POP AF", 1, 12, 0},
	{0xf2, "LD A, (C)", 1, 8, 0},
	{0xf3, "DI", 1, 4, 0},
	{0xf5, "PUSH AF", 1, 16, 0},
	{0xf6, "OR 0x%02X", 2, 8, 0},
	{0xf7, "RST 30H", 1, 16, 0},
	{0xf8, "LD HL, SP + 0x%02X", 2, 12, 0},
	{0xf9, "LD SP, HL", 1, 8, 0},
	{0xfa, "LD A, (0x%04X)", 3, 16, 0},
	{0xfb, "EI", 1, 4, 0},
	{0xfe, "CP 0x%02X", 2, 8, 0},
	{0xff, "RST 38H", 1, 16, 0},
}

func init() {
	for i := range irregular {
		d := irregular[i]
		definitions[d.OpCode] = &irregular[i]
	}

	// quadrant 0x40 to 0x7f: the 8 bit register to register loads. 0x76
	// breaks the pattern - the slot where "LD (HL), (HL)" would be is HALT
	for i := 0; i < 64; i++ {
		op := uint8(0x40 + i)
		if op == 0x76 {
			definitions[op] = &Definition{op, "HALT", 1, 4, 0}
			continue
		}

		dst := operands[i>>3]
		src := operands[i&0x07]

		cycles := 4
		if dst == "(HL)" || src == "(HL)" {
			cycles = 8
		}

		definitions[op] = &Definition{op, fmt.Sprintf("LD %s, %s", dst, src), 1, cycles, 0}
	}

	// quadrant 0x80 to 0xbf: the 8 bit arithmetic/logic group
	alu := [8]string{"ADD A, %s", "ADC A, %s", "SUB %s", "SBC A, %s", "AND %s", "XOR %s", "OR %s", "CP %s"}
	for i := 0; i < 64; i++ {
		op := uint8(0x80 + i)
		src := operands[i&0x07]

		cycles := 4
		if src == "(HL)" {
			cycles = 8
		}

		definitions[op] = &Definition{op, fmt.Sprintf(alu[i>>3], src), 1, cycles, 0}
	}

	// the eleven undefined opcodes get a placeholder definition
	for i := range definitions {
		if definitions[i] == nil {
			definitions[i] = &Definition{OpCode: uint8(i)}
		}
	}

	// the CB table is entirely regular. first the rotate/shift group, then
	// BIT, RES and SET for each bit number
	rot := [8]string{"RLC %s", "RRC %s", "RL %s", "RR %s", "SLA %s", "SRA %s", "SWAP %s", "SRL %s"}
	for i := 0; i < 256; i++ {
		op := uint8(i)
		src := operands[i&0x07]

		var mnemonic string
		cycles := 8
		switch i >> 6 {
		case 0:
			mnemonic = fmt.Sprintf(rot[(i>>3)&0x07], src)
			if src == "(HL)" {
				cycles = 16
			}
		case 1:
			mnemonic = fmt.Sprintf("BIT %d, %s", (i>>3)&0x07, src)
			if src == "(HL)" {
				cycles = 12
			}
		case 2:
			mnemonic = fmt.Sprintf("RES %d, %s", (i>>3)&0x07, src)
			if src == "(HL)" {
				cycles = 16
			}
		case 3:
			mnemonic = fmt.Sprintf("SET %d, %s", (i>>3)&0x07, src)
			if src == "(HL)" {
				cycles = 16
			}
		}

		definitionsCB[op] = &Definition{op, mnemonic, 1, cycles, 0}
	}
}
