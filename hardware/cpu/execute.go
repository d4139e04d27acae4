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

package cpu

import "github.com/dmgopher/dmgopher/curated"

// UnimplementedInstruction is the error returned when the decoder reaches an
// opcode the implementation does not handle. It indicates a bug in the
// decoder rather than a fault in the running program.
const UnimplementedInstruction = "cpu: unimplemented instruction (%#02x)"

// the registers as they are encoded in the lower three bits of the regular
// opcode quadrants. index six is the (HL) pseudo register.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	regIndHL
	regA
)

// srcReg8 reads the 8 bit register (or memory through the HL pair) encoded
// by idx.
func (mc *CPU) srcReg8(idx uint8) (uint8, error) {
	switch idx {
	case regB:
		return mc.B.Value(), nil
	case regC:
		return mc.C.Value(), nil
	case regD:
		return mc.D.Value(), nil
	case regE:
		return mc.E.Value(), nil
	case regH:
		return mc.H.Value(), nil
	case regL:
		return mc.L.Value(), nil
	case regIndHL:
		return mc.read8Bit(mc.HL())
	}
	return mc.A.Value(), nil
}

// dstReg8 writes the 8 bit register (or memory through the HL pair) encoded
// by idx.
func (mc *CPU) dstReg8(idx uint8, v uint8) error {
	switch idx {
	case regB:
		mc.B.Load(v)
	case regC:
		mc.C.Load(v)
	case regD:
		mc.D.Load(v)
	case regE:
		mc.E.Load(v)
	case regH:
		mc.H.Load(v)
	case regL:
		mc.L.Load(v)
	case regIndHL:
		return mc.write8Bit(mc.HL(), v)
	case regA:
		mc.A.Load(v)
	}
	return nil
}

// conditionMet evaluates the condition code encoded in bits 3 and 4 of the
// conditional jump/call/return opcodes.
func (mc *CPU) conditionMet(opcode uint8) bool {
	switch (opcode >> 3) & 0x03 {
	case 0: // NZ
		return !mc.Status.Zero
	case 1: // Z
		return mc.Status.Zero
	case 2: // NC
		return !mc.Status.Carry
	}
	// C
	return mc.Status.Carry
}

// notTaken adjusts the result for a conditional branch that was not taken.
func (mc *CPU) notTaken() {
	mc.LastResult.ActualCycles = mc.LastResult.Defn.CyclesNotTaken
	mc.LastResult.BranchTaken = false
}

// 8 bit arithmetic. the half carry flag records a carry out of bit 3.

func (mc *CPU) add8(v uint8, carry bool) {
	a := mc.A.Value()
	c := uint8(0)
	if carry && mc.Status.Carry {
		c = 1
	}
	r := uint16(a) + uint16(v) + uint16(c)
	mc.Status.Zero = uint8(r) == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (a&0x0f)+(v&0x0f)+c > 0x0f
	mc.Status.Carry = r > 0xff
	mc.A.Load(uint8(r))
}

func (mc *CPU) sub8(v uint8, carry bool, store bool) {
	a := mc.A.Value()
	c := uint8(0)
	if carry && mc.Status.Carry {
		c = 1
	}
	r := uint16(a) - uint16(v) - uint16(c)
	mc.Status.Zero = uint8(r) == 0
	mc.Status.Subtract = true
	mc.Status.HalfCarry = (a & 0x0f) < (v&0x0f)+c
	mc.Status.Carry = r > 0xff
	if store {
		mc.A.Load(uint8(r))
	}
}

func (mc *CPU) and8(v uint8) {
	r := mc.A.Value() & v
	mc.A.Load(r)
	mc.Status.Zero = r == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = true
	mc.Status.Carry = false
}

func (mc *CPU) xor8(v uint8) {
	r := mc.A.Value() ^ v
	mc.A.Load(r)
	mc.Status.Zero = r == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = false
	mc.Status.Carry = false
}

func (mc *CPU) or8(v uint8) {
	r := mc.A.Value() | v
	mc.A.Load(r)
	mc.Status.Zero = r == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = false
	mc.Status.Carry = false
}

// inc8 and dec8 leave the carry flag untouched.

func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	mc.Status.Zero = r == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = v&0x0f == 0x0f
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	mc.Status.Zero = r == 0
	mc.Status.Subtract = true
	mc.Status.HalfCarry = v&0x0f == 0x00
	return r
}

// addHL adds a 16 bit value to the HL pair. the zero flag is not affected
// and the half carry flag records a carry out of bit 11.
func (mc *CPU) addHL(v uint16) {
	hl := mc.HL()
	r := uint32(hl) + uint32(v)
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (hl&0x0fff)+(v&0x0fff) > 0x0fff
	mc.Status.Carry = r > 0xffff
	mc.SetHL(uint16(r))
}

// addSP adds a signed 8 bit offset to the stack pointer value. the flags are
// derived from unsigned arithmetic on the low byte only.
func (mc *CPU) addSP(offset uint8) uint16 {
	sp := mc.SP.Address()
	r := sp + uint16(int8(offset))
	mc.Status.Zero = false
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (sp&0x0f)+(uint16(offset)&0x0f) > 0x0f
	mc.Status.Carry = (sp&0xff)+(uint16(offset)&0xff) > 0xff
	return r
}

// daa adjusts the accumulator after a BCD addition or subtraction.
func (mc *CPU) daa() {
	a := mc.A.Value()
	if mc.Status.Subtract {
		if mc.Status.Carry {
			a -= 0x60
		}
		if mc.Status.HalfCarry {
			a -= 0x06
		}
	} else {
		if mc.Status.Carry || a > 0x99 {
			a += 0x60
			mc.Status.Carry = true
		}
		if mc.Status.HalfCarry || a&0x0f > 0x09 {
			a += 0x06
		}
	}
	mc.A.Load(a)
	mc.Status.Zero = a == 0
	mc.Status.HalfCarry = false
}

// execute the non-prefixed opcode fetched by ExecuteInstruction(). the
// operand, if any, has already been fetched and is available through the
// operand8() and operand16() functions.
func (mc *CPU) execute(opcode uint8) error {
	// the two regular quadrants are decoded by bit pattern rather than by
	// individual opcode

	// LD r, r' quadrant. 0x76 is HALT, the hole where LD (HL), (HL) would be
	if opcode >= 0x40 && opcode <= 0x7f && opcode != 0x76 {
		v, err := mc.srcReg8(opcode & 0x07)
		if err != nil {
			return err
		}
		return mc.dstReg8((opcode>>3)&0x07, v)
	}

	// arithmetic quadrant
	if opcode >= 0x80 && opcode <= 0xbf {
		v, err := mc.srcReg8(opcode & 0x07)
		if err != nil {
			return err
		}
		switch (opcode >> 3) & 0x07 {
		case 0:
			mc.add8(v, false)
		case 1:
			mc.add8(v, true)
		case 2:
			mc.sub8(v, false, true)
		case 3:
			mc.sub8(v, true, true)
		case 4:
			mc.and8(v)
		case 5:
			mc.xor8(v)
		case 6:
			mc.or8(v)
		case 7:
			mc.sub8(v, false, false)
		}
		return nil
	}

	switch opcode {
	case 0x00: // NOP

	case 0x01: // LD BC, d16
		mc.SetBC(mc.operand16())
	case 0x11: // LD DE, d16
		mc.SetDE(mc.operand16())
	case 0x21: // LD HL, d16
		mc.SetHL(mc.operand16())
	case 0x31: // LD SP, d16
		mc.SP.Load(mc.operand16())

	case 0x02: // LD (BC), A
		return mc.write8Bit(mc.BC(), mc.A.Value())
	case 0x12: // LD (DE), A
		return mc.write8Bit(mc.DE(), mc.A.Value())
	case 0x22: // LD (HL+), A
		err := mc.write8Bit(mc.HL(), mc.A.Value())
		mc.SetHL(mc.HL() + 1)
		return err
	case 0x32: // LD (HL-), A
		err := mc.write8Bit(mc.HL(), mc.A.Value())
		mc.SetHL(mc.HL() - 1)
		return err

	case 0x0a: // LD A, (BC)
		v, err := mc.read8Bit(mc.BC())
		if err != nil {
			return err
		}
		mc.A.Load(v)
	case 0x1a: // LD A, (DE)
		v, err := mc.read8Bit(mc.DE())
		if err != nil {
			return err
		}
		mc.A.Load(v)
	case 0x2a: // LD A, (HL+)
		v, err := mc.read8Bit(mc.HL())
		if err != nil {
			return err
		}
		mc.A.Load(v)
		mc.SetHL(mc.HL() + 1)
	case 0x3a: // LD A, (HL-)
		v, err := mc.read8Bit(mc.HL())
		if err != nil {
			return err
		}
		mc.A.Load(v)
		mc.SetHL(mc.HL() - 1)

	case 0x03: // INC BC
		mc.SetBC(mc.BC() + 1)
	case 0x13: // INC DE
		mc.SetDE(mc.DE() + 1)
	case 0x23: // INC HL
		mc.SetHL(mc.HL() + 1)
	case 0x33: // INC SP
		mc.SP.Increment()

	case 0x0b: // DEC BC
		mc.SetBC(mc.BC() - 1)
	case 0x1b: // DEC DE
		mc.SetDE(mc.DE() - 1)
	case 0x2b: // DEC HL
		mc.SetHL(mc.HL() - 1)
	case 0x3b: // DEC SP
		mc.SP.Decrement()

	case 0x04, 0x0c, 0x14, 0x1c, 0x24, 0x2c, 0x34, 0x3c: // INC r
		idx := (opcode >> 3) & 0x07
		v, err := mc.srcReg8(idx)
		if err != nil {
			return err
		}
		return mc.dstReg8(idx, mc.inc8(v))
	case 0x05, 0x0d, 0x15, 0x1d, 0x25, 0x2d, 0x35, 0x3d: // DEC r
		idx := (opcode >> 3) & 0x07
		v, err := mc.srcReg8(idx)
		if err != nil {
			return err
		}
		return mc.dstReg8(idx, mc.dec8(v))

	case 0x06, 0x0e, 0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e: // LD r, d8
		return mc.dstReg8((opcode>>3)&0x07, mc.operand8())

	case 0x07: // RLCA
		a := mc.A.Value()
		mc.Status.Carry = a&0x80 == 0x80
		mc.A.Load(a<<1 | a>>7)
		mc.Status.Zero = false
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
	case 0x0f: // RRCA
		a := mc.A.Value()
		mc.Status.Carry = a&0x01 == 0x01
		mc.A.Load(a>>1 | a<<7)
		mc.Status.Zero = false
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
	case 0x17: // RLA
		a := mc.A.Value()
		c := uint8(0)
		if mc.Status.Carry {
			c = 1
		}
		mc.Status.Carry = a&0x80 == 0x80
		mc.A.Load(a<<1 | c)
		mc.Status.Zero = false
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
	case 0x1f: // RRA
		a := mc.A.Value()
		c := uint8(0)
		if mc.Status.Carry {
			c = 0x80
		}
		mc.Status.Carry = a&0x01 == 0x01
		mc.A.Load(a>>1 | c)
		mc.Status.Zero = false
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false

	case 0x08: // LD (a16), SP
		return mc.write16Bit(mc.operand16(), mc.SP.Address())

	case 0x09: // ADD HL, BC
		mc.addHL(mc.BC())
	case 0x19: // ADD HL, DE
		mc.addHL(mc.DE())
	case 0x29: // ADD HL, HL
		mc.addHL(mc.HL())
	case 0x39: // ADD HL, SP
		mc.addHL(mc.SP.Address())

	case 0x10: // STOP
		// STOP behaves like HALT for our purposes
		mc.Halted = true

	case 0x18: // JR r8
		mc.PC.AddOffset(int8(mc.operand8()))
		mc.LastResult.BranchTaken = true
	case 0x20, 0x28, 0x30, 0x38: // JR cc, r8
		if mc.conditionMet(opcode) {
			mc.PC.AddOffset(int8(mc.operand8()))
			mc.LastResult.BranchTaken = true
		} else {
			mc.notTaken()
		}

	case 0x27: // DAA
		mc.daa()
	case 0x2f: // CPL
		mc.A.Load(^mc.A.Value())
		mc.Status.Subtract = true
		mc.Status.HalfCarry = true
	case 0x37: // SCF
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
		mc.Status.Carry = true
	case 0x3f: // CCF
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
		mc.Status.Carry = !mc.Status.Carry

	case 0x76: // HALT
		mc.Halted = true

	case 0xc0, 0xc8, 0xd0, 0xd8: // RET cc
		if mc.conditionMet(opcode) {
			v, err := mc.pop16Bit()
			if err != nil {
				return err
			}
			mc.PC.Load(v)
			mc.LastResult.BranchTaken = true
		} else {
			mc.notTaken()
		}
	case 0xc9: // RET
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.PC.Load(v)
		mc.LastResult.BranchTaken = true
	case 0xd9: // RETI
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.PC.Load(v)
		mc.LastResult.BranchTaken = true
		mc.ime = true

	case 0xc1: // POP BC
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.SetBC(v)
	case 0xd1: // POP DE
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.SetDE(v)
	case 0xe1: // POP HL
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.SetHL(v)
	case 0xf1: // POP AF
		v, err := mc.pop16Bit()
		if err != nil {
			return err
		}
		mc.SetAF(v)

	case 0xc5: // PUSH BC
		return mc.push16Bit(mc.BC())
	case 0xd5: // PUSH DE
		return mc.push16Bit(mc.DE())
	case 0xe5: // PUSH HL
		return mc.push16Bit(mc.HL())
	case 0xf5: // PUSH AF
		return mc.push16Bit(mc.AF())

	case 0xc2, 0xca, 0xd2, 0xda: // JP cc, a16
		if mc.conditionMet(opcode) {
			mc.PC.Load(mc.operand16())
			mc.LastResult.BranchTaken = true
		} else {
			mc.notTaken()
		}
	case 0xc3: // JP a16
		mc.PC.Load(mc.operand16())
		mc.LastResult.BranchTaken = true
	case 0xe9: // JP (HL)
		mc.PC.Load(mc.HL())
		mc.LastResult.BranchTaken = true

	case 0xc4, 0xcc, 0xd4, 0xdc: // CALL cc, a16
		if mc.conditionMet(opcode) {
			err := mc.push16Bit(mc.PC.Address())
			if err != nil {
				return err
			}
			mc.PC.Load(mc.operand16())
			mc.LastResult.BranchTaken = true
		} else {
			mc.notTaken()
		}
	case 0xcd: // CALL a16
		err := mc.push16Bit(mc.PC.Address())
		if err != nil {
			return err
		}
		mc.PC.Load(mc.operand16())
		mc.LastResult.BranchTaken = true

	case 0xc6: // ADD A, d8
		mc.add8(mc.operand8(), false)
	case 0xce: // ADC A, d8
		mc.add8(mc.operand8(), true)
	case 0xd6: // SUB d8
		mc.sub8(mc.operand8(), false, true)
	case 0xde: // SBC A, d8
		mc.sub8(mc.operand8(), true, true)
	case 0xe6: // AND d8
		mc.and8(mc.operand8())
	case 0xee: // XOR d8
		mc.xor8(mc.operand8())
	case 0xf6: // OR d8
		mc.or8(mc.operand8())
	case 0xfe: // CP d8
		mc.sub8(mc.operand8(), false, false)

	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff: // RST
		err := mc.push16Bit(mc.PC.Address())
		if err != nil {
			return err
		}
		mc.PC.Load(uint16(opcode & 0x38))
		mc.LastResult.BranchTaken = true

	case 0xe0: // LDH (a8), A
		return mc.write8Bit(0xff00+uint16(mc.operand8()), mc.A.Value())
	case 0xf0: // LDH A, (a8)
		v, err := mc.read8Bit(0xff00 + uint16(mc.operand8()))
		if err != nil {
			return err
		}
		mc.A.Load(v)
	case 0xe2: // LD (C), A
		return mc.write8Bit(0xff00+uint16(mc.C.Value()), mc.A.Value())
	case 0xf2: // LD A, (C)
		v, err := mc.read8Bit(0xff00 + uint16(mc.C.Value()))
		if err != nil {
			return err
		}
		mc.A.Load(v)

	case 0xea: // LD (a16), A
		return mc.write8Bit(mc.operand16(), mc.A.Value())
	case 0xfa: // LD A, (a16)
		v, err := mc.read8Bit(mc.operand16())
		if err != nil {
			return err
		}
		mc.A.Load(v)

	case 0xe8: // ADD SP, r8
		mc.SP.Load(mc.addSP(mc.operand8()))
	case 0xf8: // LD HL, SP+r8
		mc.SetHL(mc.addSP(mc.operand8()))
	case 0xf9: // LD SP, HL
		mc.SP.Load(mc.HL())

	case 0xf3: // DI
		mc.ime = false
		mc.imePending = false
	case 0xfb: // EI
		mc.imePending = true

	default:
		return curated.Errorf(UnimplementedInstruction, opcode)
	}

	return nil
}

// execute the CB-prefixed opcode fetched by ExecuteInstruction().
func (mc *CPU) executeCB(opcode uint8) error {
	idx := opcode & 0x07

	// BIT does not write back so it is handled before the read/modify/write
	// path below
	if opcode >= 0x40 && opcode <= 0x7f {
		v, err := mc.srcReg8(idx)
		if err != nil {
			return err
		}
		bit := (opcode >> 3) & 0x07
		mc.Status.Zero = v&(0x01<<bit) == 0
		mc.Status.Subtract = false
		mc.Status.HalfCarry = true
		return nil
	}

	v, err := mc.srcReg8(idx)
	if err != nil {
		return err
	}

	switch {
	case opcode <= 0x3f:
		var r uint8
		switch (opcode >> 3) & 0x07 {
		case 0: // RLC
			mc.Status.Carry = v&0x80 == 0x80
			r = v<<1 | v>>7
		case 1: // RRC
			mc.Status.Carry = v&0x01 == 0x01
			r = v>>1 | v<<7
		case 2: // RL
			c := uint8(0)
			if mc.Status.Carry {
				c = 1
			}
			mc.Status.Carry = v&0x80 == 0x80
			r = v<<1 | c
		case 3: // RR
			c := uint8(0)
			if mc.Status.Carry {
				c = 0x80
			}
			mc.Status.Carry = v&0x01 == 0x01
			r = v>>1 | c
		case 4: // SLA
			mc.Status.Carry = v&0x80 == 0x80
			r = v << 1
		case 5: // SRA
			mc.Status.Carry = v&0x01 == 0x01
			r = uint8(int8(v) >> 1)
		case 6: // SWAP
			mc.Status.Carry = false
			r = v<<4 | v>>4
		case 7: // SRL
			mc.Status.Carry = v&0x01 == 0x01
			r = v >> 1
		}
		mc.Status.Zero = r == 0
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
		v = r

	case opcode <= 0xbf: // RES
		v &^= 0x01 << ((opcode >> 3) & 0x07)

	default: // SET
		v |= 0x01 << ((opcode >> 3) & 0x07)
	}

	return mc.dstReg8(idx, v)
}
