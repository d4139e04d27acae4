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

package hardware

import (
	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/hardware/cpu"
	"github.com/dmgopher/dmgopher/hardware/joypad"
	"github.com/dmgopher/dmgopher/hardware/lcd"
	"github.com/dmgopher/dmgopher/hardware/memory"
	"github.com/dmgopher/dmgopher/hardware/memory/cartridge"
	"github.com/dmgopher/dmgopher/hardware/timer"
)

// DMG is the complete console: the CPU, the memory subsystem and the
// peripherals wired onto the IO page.
type DMG struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	LCD    *lcd.LCD
	Timer  *timer.Timer
	Joypad *joypad.Joypad
}

// NewDMG creates a new DMG and everything associated with the hardware. It
// is used for all aspects of emulation: headless runs and regular play.
func NewDMG() *DMG {
	dmg := &DMG{}

	dmg.Mem = memory.NewMemory()
	dmg.CPU = cpu.NewCPU(dmg.Mem)

	dmg.LCD = lcd.NewLCD(dmg.Mem, dmg.Mem.VRAM)
	dmg.Mem.AttachPeripheral(dmg.LCD,
		lcd.AddrControl, lcd.AddrStatus,
		lcd.AddrScrollY, lcd.AddrScrollX,
		lcd.AddrScanline, lcd.AddrCompare,
		lcd.AddrPalette,
	)

	dmg.Timer = timer.NewTimer(dmg.Mem)
	dmg.Mem.AttachPeripheral(dmg.Timer,
		timer.AddrDivider, timer.AddrCounter,
		timer.AddrModulo, timer.AddrControl,
	)

	dmg.Joypad = joypad.NewJoypad(dmg.Mem)
	dmg.Mem.AttachPeripheral(dmg.Joypad, joypad.AddrJoypad)

	return dmg
}

// AttachCartridge loads the cartridge named by the loader into the DMG and
// resets the console.
func (dmg *DMG) AttachCartridge(loader cartridgeloader.Loader) error {
	cart, err := cartridge.NewCartridge(loader)
	if err != nil {
		return err
	}
	dmg.Mem.AttachCartridge(cart)

	dmg.Reset()
	return nil
}

// Reset emulates the power cycle of the console. The CPU registers take the
// values the boot program leaves behind and execution starts at the
// cartridge entry point.
func (dmg *DMG) Reset() {
	dmg.Mem.Reset()
	dmg.CPU.Reset()
	dmg.LCD.Reset()
	dmg.Timer.Reset()
}

// Step the console forward by one CPU instruction. The peripherals advance
// by the number of clock cycles the instruction consumed and any interrupt
// requests are serviced before the next instruction.
func (dmg *DMG) Step() error {
	err := dmg.CPU.ExecuteInstruction(func(cycles int) error {
		dmg.Timer.Step(cycles)
		return dmg.LCD.Step(cycles)
	})
	if err != nil {
		return err
	}

	cycles, err := dmg.CPU.ServiceInterrupts()
	if err != nil {
		return err
	}
	if cycles > 0 {
		dmg.Timer.Step(cycles)
		return dmg.LCD.Step(cycles)
	}

	return nil
}
