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

package cpu_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/hardware/cpu"
	"github.com/dmgopher/dmgopher/test"
)

// mockMem is a flat 64k address space with no mirroring or read/write
// restrictions. enough to exercise every instruction.
type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	return &mockMem{
		internal: make([]uint8, 0x10000),
	}
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		_ = mem.Write(origin+uint16(i), b)
	}
	return origin + uint16(len(bytes))
}

func (mem mockMem) Read(address uint16) (uint8, error) {
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.internal[address] = data
	return nil
}

// step the CPU and fail the test on any error.
func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	err := mc.ExecuteInstruction(nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReset(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	test.Equate(t, mc.PC.Address(), 0x0100)
	test.Equate(t, mc.SP.Address(), 0xfffe)
	test.Equate(t, mc.AF(), 0x01b0)
	test.Equate(t, mc.BC(), 0x0013)
	test.Equate(t, mc.DE(), 0x00d8)
	test.Equate(t, mc.HL(), 0x014d)
	test.Equate(t, mc.HasReset(), true)
}

func TestRegisterPairs(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mc.SetBC(0xbeef)
	test.Equate(t, mc.B.Value(), 0xbe)
	test.Equate(t, mc.C.Value(), 0xef)

	// the lower nibble of the flags register always reads zero
	mc.SetAF(0x12ff)
	test.Equate(t, mc.AF(), 0x12f0)
}

func TestImmediateLoads(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	origin := mem.putInstructions(0x0100,
		0x3e, 0xaa, // LD A, 0xaa
		0x21, 0x34, 0x12, // LD HL, 0x1234
		0x36, 0x55, // LD (HL), 0x55
	)

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0xaa)
	test.Equate(t, mc.LastResult.ActualCycles, 8)

	step(t, mc)
	test.Equate(t, mc.HL(), 0x1234)

	step(t, mc)
	v, _ := mem.Read(0x1234)
	test.Equate(t, v, 0x55)
	test.Equate(t, mc.PC.Address(), origin)
}

func TestRegisterToRegisterLoads(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x06, 0x42, // LD B, 0x42
		0x78, // LD A, B
		0x4f, // LD C, A
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x42)
	step(t, mc)
	test.Equate(t, mc.C.Value(), 0x42)
	test.Equate(t, mc.LastResult.ActualCycles, 4)
}

func TestArithmetic(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x3e, 0x0f, // LD A, 0x0f
		0xc6, 0x01, // ADD A, 0x01 (half carry)
		0xc6, 0xf0, // ADD A, 0xf0 (carry, zero)
		0xce, 0x00, // ADC A, 0x00 (consumes carry)
		0xd6, 0x02, // SUB 0x02 (borrow from bit 4)
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x10)
	test.Equate(t, mc.Status.HalfCarry, true)
	test.Equate(t, mc.Status.Carry, false)

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x00)
	test.Equate(t, mc.Status.Zero, true)
	test.Equate(t, mc.Status.Carry, true)

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x01)
	test.Equate(t, mc.Status.Carry, false)

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0xff)
	test.Equate(t, mc.Status.Subtract, true)
	test.Equate(t, mc.Status.HalfCarry, true)
	test.Equate(t, mc.Status.Carry, true)
}

func TestCompare(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x3e, 0x10, // LD A, 0x10
		0xfe, 0x10, // CP 0x10
	)

	step(t, mc)
	step(t, mc)

	// CP discards the result but sets the flags
	test.Equate(t, mc.A.Value(), 0x10)
	test.Equate(t, mc.Status.Zero, true)
	test.Equate(t, mc.Status.Subtract, true)
}

func TestIncDec(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x06, 0xff, // LD B, 0xff
		0x04, // INC B (to zero)
		0x05, // DEC B (borrow from bit 4)
		0x03, // INC BC
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.B.Value(), 0x00)
	test.Equate(t, mc.Status.Zero, true)
	test.Equate(t, mc.Status.HalfCarry, true)

	// INC and DEC leave the carry flag alone
	mc.Status.Carry = true
	step(t, mc)
	test.Equate(t, mc.B.Value(), 0xff)
	test.Equate(t, mc.Status.Carry, true)

	step(t, mc)
	test.Equate(t, mc.BC(), 0x0013+0xff00+1)
}

func TestConditionalJumps(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x3e, 0x01, // LD A, 0x01
		0x3d,       // DEC A (zero flag set)
		0x28, 0x02, // JR Z, +2 (taken)
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	test.Equate(t, mc.PC.Address(), 0x0107)
	test.Equate(t, mc.LastResult.BranchTaken, true)
	test.Equate(t, mc.LastResult.ActualCycles, 12)

	// not taken this time. the offset is relative to the address after the
	// instruction
	mem.putInstructions(0x0107,
		0x20, 0x10, // JR NZ, +16 (not taken)
	)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0109)
	test.Equate(t, mc.LastResult.BranchTaken, false)
	test.Equate(t, mc.LastResult.ActualCycles, 8)
}

func TestBackwardJump(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x00,       // NOP
		0x18, 0xfd, // JR -3
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0100)
}

func TestCallAndReturn(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0xcd, 0x00, 0x20, // CALL 0x2000
	)
	mem.putInstructions(0x2000,
		0xc9, // RET
	)

	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x2000)
	test.Equate(t, mc.SP.Address(), 0xfffc)

	// the return address on the stack points past the CALL
	lo, _ := mem.Read(0xfffc)
	hi, _ := mem.Read(0xfffd)
	test.Equate(t, uint16(lo)|uint16(hi)<<8, 0x0103)

	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0103)
	test.Equate(t, mc.SP.Address(), 0xfffe)
}

func TestPushPop(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x01, 0xcd, 0xab, // LD BC, 0xabcd
		0xc5, // PUSH BC
		0xd1, // POP DE
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.DE(), 0xabcd)
	test.Equate(t, mc.SP.Address(), 0xfffe)
}

func TestHighRAMAddressing(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x3e, 0x99, // LD A, 0x99
		0xe0, 0x80, // LDH (0x80), A
		0x0e, 0x80, // LD C, 0x80
		0xf2, // LD A, (C)
	)

	step(t, mc)
	step(t, mc)
	v, _ := mem.Read(0xff80)
	test.Equate(t, v, 0x99)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x99)
	test.Equate(t, mc.PC.Address(), 0x0107)
}

func TestRotates(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x3e, 0x85, // LD A, 0x85
		0x07, // RLCA
		0x17, // RLA
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x0b)
	test.Equate(t, mc.Status.Carry, true)
	test.Equate(t, mc.Status.Zero, false)

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x17)
	test.Equate(t, mc.Status.Carry, false)
}

func TestCBPrefix(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x06, 0xf0, // LD B, 0xf0
		0xcb, 0x30, // SWAP B
		0xcb, 0x40, // BIT 0, B
		0xcb, 0xf8, // SET 7, B
		0xcb, 0x80, // RES 0, B
	)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.B.Value(), 0x0f)
	test.Equate(t, mc.LastResult.PrefixCB, true)
	test.Equate(t, mc.LastResult.ActualCycles, 8)

	step(t, mc)
	test.Equate(t, mc.Status.Zero, false)
	test.Equate(t, mc.Status.HalfCarry, true)

	step(t, mc)
	test.Equate(t, mc.B.Value(), 0x8f)

	step(t, mc)
	test.Equate(t, mc.B.Value(), 0x8e)
	test.Equate(t, mc.PC.Address(), 0x010a)
}

func TestDAA(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// BCD 19 + 28 = 47
	mem.putInstructions(0x0100,
		0x3e, 0x19, // LD A, 0x19
		0xc6, 0x28, // ADD A, 0x28
		0x27, // DAA
	)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x47)
}

func TestHalt(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x76, // HALT
	)

	step(t, mc)
	test.Equate(t, mc.Halted, true)

	// a halted CPU does not advance the program counter
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0101)
}

func TestInterruptDispatch(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x76, // HALT
	)
	_ = mem.Write(cpu.AddrInterruptEnable, cpu.InterruptVBlank)

	step(t, mc)
	test.Equate(t, mc.Halted, true)

	// no request pending yet
	cycles, err := mc.ServiceInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, cycles, 0)

	// raise vblank
	_ = mem.Write(cpu.AddrInterruptFlag, cpu.InterruptVBlank)

	cycles, err = mc.ServiceInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, cycles, 20)
	test.Equate(t, mc.Halted, false)
	test.Equate(t, mc.PC.Address(), 0x0040)
	test.Equate(t, mc.IME(), false)

	// the request has been acknowledged
	v, _ := mem.Read(cpu.AddrInterruptFlag)
	test.Equate(t, v, 0x00)

	// the interrupted program counter is on the stack
	lo, _ := mem.Read(0xfffc)
	hi, _ := mem.Read(0xfffd)
	test.Equate(t, uint16(lo)|uint16(hi)<<8, 0x0101)
}

func TestInterruptPriority(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	_ = mem.Write(cpu.AddrInterruptEnable, 0x1f)
	_ = mem.Write(cpu.AddrInterruptFlag, cpu.InterruptTimer|cpu.InterruptJoypad)

	cycles, err := mc.ServiceInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, cycles, 20)
	test.Equate(t, mc.PC.Address(), 0x0050)

	// the joypad request is still pending
	v, _ := mem.Read(cpu.AddrInterruptFlag)
	test.Equate(t, v, cpu.InterruptJoypad)
}

func TestInterruptMasterEnable(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0xf3, // DI
		0xfb, // EI
		0x00, // NOP
	)
	_ = mem.Write(cpu.AddrInterruptEnable, cpu.InterruptVBlank)
	_ = mem.Write(cpu.AddrInterruptFlag, cpu.InterruptVBlank)

	step(t, mc)
	test.Equate(t, mc.IME(), false)

	// with the master enable off, a pending request is not dispatched
	cycles, err := mc.ServiceInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	test.Equate(t, cycles, 0)
	test.Equate(t, mc.PC.Address(), 0x0101)

	// EI takes effect after the following instruction
	step(t, mc)
	test.Equate(t, mc.IME(), false)
	step(t, mc)
	test.Equate(t, mc.IME(), true)
}

func TestUnknownOpcode(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0xdd, // undefined
		0x00, // NOP
	)

	// an undefined opcode is logged and skipped
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0101)
	test.Equate(t, mc.LastResult.Defn.Undefined(), true)

	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0102)
}

func TestCycleCallback(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0100,
		0x00,             // NOP
		0xc3, 0x00, 0x01, // JP 0x0100
	)

	total := 0
	cb := func(cycles int) error {
		total += cycles
		return nil
	}

	if err := mc.ExecuteInstruction(cb); err != nil {
		t.Fatal(err)
	}
	if err := mc.ExecuteInstruction(cb); err != nil {
		t.Fatal(err)
	}

	test.Equate(t, total, 20)
}
