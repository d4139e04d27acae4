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

import (
	"fmt"

	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware/cpu/execution"
	"github.com/dmgopher/dmgopher/hardware/cpu/instructions"
	"github.com/dmgopher/dmgopher/hardware/cpu/registers"
	"github.com/dmgopher/dmgopher/hardware/memory/cpubus"
	"github.com/dmgopher/dmgopher/logger"
)

// the interrupt registers and vectors serviced by ServiceInterrupts().
const (
	AddrInterruptFlag   = uint16(0xff0f)
	AddrInterruptEnable = uint16(0xffff)
)

// interrupt bits in order of priority. the vector for bit n is 0x40 + n*8.
const (
	InterruptVBlank = 0x01
	InterruptStat   = 0x02
	InterruptTimer  = 0x04
	InterruptSerial = 0x08
	InterruptJoypad = 0x10
)

// CPU implements the LR35902 found in the original GameBoy. Register logic
// is implemented by the types in the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	SP     registers.StackPointer
	A      registers.Register
	B      registers.Register
	C      registers.Register
	D      registers.Register
	E      registers.Register
	H      registers.Register
	L      registers.Register
	Status registers.StatusRegister

	mem cpubus.Memory

	defns   []*instructions.Definition
	defnsCB []*instructions.Definition

	// interrupt master enable. the EI instruction enables interrupts with a
	// one instruction delay, hence the pending field
	ime        bool
	imePending bool

	// the CPU has executed a HALT and is waiting for an interrupt
	Halted bool

	// last result. the Defn field is nil if the CPU has just been reset
	LastResult execution.Result
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(mem cpubus.Memory) *CPU {
	return &CPU{
		mem:     mem,
		PC:      registers.NewProgramCounter(0),
		SP:      registers.NewStackPointer(0),
		A:       registers.NewRegister(0, "A"),
		B:       registers.NewRegister(0, "B"),
		C:       registers.NewRegister(0, "C"),
		D:       registers.NewRegister(0, "D"),
		E:       registers.NewRegister(0, "E"),
		H:       registers.NewRegister(0, "H"),
		L:       registers.NewRegister(0, "L"),
		Status:  registers.NewStatusRegister(),
		defns:   instructions.GetDefinitions(),
		defnsCB: instructions.GetDefinitionsCB(),
	}
}

// Plumb a new cpubus into the CPU.
func (mc *CPU) Plumb(mem cpubus.Memory) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s %s=%#02x %s=%#02x %s=%#02x %s=%#02x %s=%#02x %s=%#02x %s=%#02x",
		mc.PC.Label(), mc.PC, mc.SP.Label(), mc.SP, mc.Status,
		mc.A.Label(), mc.A.Value(), mc.B.Label(), mc.B.Value(), mc.C.Label(), mc.C.Value(),
		mc.D.Label(), mc.D.Value(), mc.E.Label(), mc.E.Value(),
		mc.H.Label(), mc.H.Value(), mc.L.Label(), mc.L.Value())
}

// Reset reinitialises all registers to the values they hold at the moment
// the DMG boot ROM hands over to the cartridge.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()

	mc.A.Load(0x01)
	mc.Status.FromValue(0xb0)
	mc.B.Load(0x00)
	mc.C.Load(0x13)
	mc.D.Load(0x00)
	mc.E.Load(0xd8)
	mc.H.Load(0x01)
	mc.L.Load(0x4d)
	mc.SP.Load(0xfffe)
	mc.PC.Load(0x0100)

	mc.ime = true
	mc.imePending = false
	mc.Halted = false
}

// HasReset checks whether the CPU has recently been reset.
func (mc *CPU) HasReset() bool {
	return mc.LastResult.Defn == nil
}

// IME returns the state of the interrupt master enable flag.
func (mc *CPU) IME() bool {
	return mc.ime
}

// register pair composition. the flags register forms the low byte of the AF
// pair; the silicon discards its lower nibble and so do we.

// AF returns the combined a,flags registers as a 16 bit value.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A.Value())<<8 | uint16(mc.Status.Value())
}

// BC returns the combined b,c registers as a 16 bit value.
func (mc *CPU) BC() uint16 {
	return uint16(mc.B.Value())<<8 | uint16(mc.C.Value())
}

// DE returns the combined d,e registers as a 16 bit value.
func (mc *CPU) DE() uint16 {
	return uint16(mc.D.Value())<<8 | uint16(mc.E.Value())
}

// HL returns the combined h,l registers as a 16 bit value.
func (mc *CPU) HL() uint16 {
	return uint16(mc.H.Value())<<8 | uint16(mc.L.Value())
}

// SetAF loads a 16 bit value into the a,flags pair.
func (mc *CPU) SetAF(v uint16) {
	mc.A.Load(uint8(v >> 8))
	mc.Status.FromValue(uint8(v))
}

// SetBC loads a 16 bit value into the b,c pair.
func (mc *CPU) SetBC(v uint16) {
	mc.B.Load(uint8(v >> 8))
	mc.C.Load(uint8(v))
}

// SetDE loads a 16 bit value into the d,e pair.
func (mc *CPU) SetDE(v uint16) {
	mc.D.Load(uint8(v >> 8))
	mc.E.Load(uint8(v))
}

// SetHL loads a 16 bit value into the h,l pair.
func (mc *CPU) SetHL(v uint16) {
	mc.H.Load(uint8(v >> 8))
	mc.L.Load(uint8(v))
}

// memory access. an unmapped address is not fatal to the emulation: the
// event is logged and the read value is 0xff, which is what the data bus
// floats to on the real machine.

func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	v, err := mc.mem.Read(address)
	if err != nil {
		if !curated.Has(err, cpubus.AddressError) {
			return 0, err
		}
		logger.Log("cpu", err.Error())
		v = 0xff
	}
	return v, nil
}

func (mc *CPU) write8Bit(address uint16, data uint8) error {
	err := mc.mem.Write(address, data)
	if err != nil {
		if !curated.Has(err, cpubus.AddressError) {
			return err
		}
		logger.Log("cpu", err.Error())
	}
	return nil
}

func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (mc *CPU) write16Bit(address uint16, data uint16) error {
	err := mc.write8Bit(address, uint8(data))
	if err != nil {
		return err
	}
	return mc.write8Bit(address+1, uint8(data>>8))
}

// fetch next byte at the program counter, incrementing the program counter.
func (mc *CPU) fetch8Bit() (uint8, error) {
	v, err := mc.read8Bit(mc.PC.Address())
	mc.PC.Increment()
	return v, err
}

func (mc *CPU) fetch16Bit() (uint16, error) {
	lo, err := mc.fetch8Bit()
	if err != nil {
		return 0, err
	}
	hi, err := mc.fetch8Bit()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// stack operations. the stack grows downwards.

func (mc *CPU) push16Bit(data uint16) error {
	mc.SP.Decrement()
	err := mc.write8Bit(mc.SP.Address(), uint8(data>>8))
	if err != nil {
		return err
	}
	mc.SP.Decrement()
	return mc.write8Bit(mc.SP.Address(), uint8(data))
}

func (mc *CPU) pop16Bit() (uint16, error) {
	lo, err := mc.read8Bit(mc.SP.Address())
	if err != nil {
		return 0, err
	}
	mc.SP.Increment()
	hi, err := mc.read8Bit(mc.SP.Address())
	if err != nil {
		return 0, err
	}
	mc.SP.Increment()
	return uint16(lo) | uint16(hi)<<8, nil
}

// ServiceInterrupts checks the pending interrupts against the interrupt
// master enable and the IE register, dispatching the highest priority
// request. Returns the number of clock cycles consumed (zero when no
// interrupt is dispatched).
//
// A pending interrupt always releases a HALTed CPU, even when the master
// enable is off.
func (mc *CPU) ServiceInterrupts() (int, error) {
	flg, err := mc.read8Bit(AddrInterruptFlag)
	if err != nil {
		return 0, err
	}
	enb, err := mc.read8Bit(AddrInterruptEnable)
	if err != nil {
		return 0, err
	}

	pending := flg & enb & 0x1f
	if pending == 0 {
		return 0, nil
	}

	mc.Halted = false

	if !mc.ime {
		return 0, nil
	}

	// find the highest priority pending interrupt. priority runs from bit 0
	// (vblank) to bit 4 (joypad)
	for b := 0; b < 5; b++ {
		m := uint8(0x01 << b)
		if pending&m != m {
			continue
		}

		// acknowledge and dispatch
		mc.ime = false
		mc.imePending = false
		err = mc.write8Bit(AddrInterruptFlag, flg&^m)
		if err != nil {
			return 0, err
		}
		err = mc.push16Bit(mc.PC.Address())
		if err != nil {
			return 0, err
		}
		mc.PC.Load(uint16(0x0040 + b*8))

		// interrupt dispatch takes five machine cycles
		return 20, nil
	}

	return 0, nil
}

// ExecuteInstruction steps the CPU by one instruction. The cycleCallback is
// called once with the number of clock cycles the instruction consumed; nil
// is a valid value if no callback is required.
//
// An undefined opcode is not fatal: the emulation logs the event and carries
// on with the next instruction, as though the opcode had been a NOP.
func (mc *CPU) ExecuteInstruction(cycleCallback func(cycles int) error) error {
	if cycleCallback == nil {
		cycleCallback = func(_ int) error { return nil }
	}

	// a halted CPU burns cycles waiting for an interrupt
	if mc.Halted {
		return cycleCallback(4)
	}

	// EI takes effect after the instruction that follows it
	enableIME := mc.imePending

	opcodeAddress := mc.PC.Address()

	opcode, err := mc.fetch8Bit()
	if err != nil {
		return err
	}

	defn := mc.defns[opcode]
	prefixCB := false

	// handle the 0xcb two-byte opcodes
	if opcode == 0xcb {
		opcode, err = mc.fetch8Bit()
		if err != nil {
			return err
		}
		defn = mc.defnsCB[opcode]
		prefixCB = true
	}

	mc.LastResult.Reset()
	mc.LastResult.Address = opcodeAddress
	mc.LastResult.Defn = defn
	mc.LastResult.PrefixCB = prefixCB

	// handle undefined opcode without crashing
	if defn.Undefined() {
		logger.Logf("cpu", "unknown opcode %02x at: %04x", opcode, opcodeAddress)
		mc.LastResult.ActualCycles = 4
		mc.LastResult.Final = true
		return cycleCallback(4)
	}

	// fetch operand
	switch defn.Bytes {
	case 2:
		var v uint8
		v, err = mc.fetch8Bit()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = v
	case 3:
		var v uint16
		v, err = mc.fetch16Bit()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = v
	}

	mc.LastResult.ActualCycles = defn.Cycles

	if prefixCB {
		err = mc.executeCB(opcode)
	} else {
		err = mc.execute(opcode)
	}
	if err != nil {
		return err
	}

	// the cycle count of a CB instruction includes the prefix fetch

	if enableIME {
		mc.ime = true
		mc.imePending = false
	}

	mc.LastResult.Final = true

	return cycleCallback(mc.LastResult.ActualCycles)
}

// operand8 returns the 8 bit operand fetched during ExecuteInstruction().
func (mc *CPU) operand8() uint8 {
	if v, ok := mc.LastResult.InstructionData.(uint8); ok {
		return v
	}
	return 0
}

// operand16 returns the 16 bit operand fetched during ExecuteInstruction().
func (mc *CPU) operand16() uint16 {
	if v, ok := mc.LastResult.InstructionData.(uint16); ok {
		return v
	}
	return 0
}
