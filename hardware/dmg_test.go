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

package hardware_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/hardware"
	"github.com/dmgopher/dmgopher/hardware/joypad"
	"github.com/dmgopher/dmgopher/screendigest"
	"github.com/dmgopher/dmgopher/test"
)

// makeROM builds a 32k image with a valid header and the supplied program
// at the entry point.
func makeROM(program ...uint8) []uint8 {
	rom := make([]uint8, 0x8000)
	copy(rom[0x0134:], "TEST")
	copy(rom[0x0100:], program)

	chk := uint8(0)
	for _, b := range rom[0x0134:0x014d] {
		chk = chk - b - 1
	}
	rom[0x014d] = chk

	return rom
}

func makeDMG(t *testing.T, program ...uint8) *hardware.DMG {
	t.Helper()

	cl := cartridgeloader.NewLoader("test.gb")
	cl.Data = makeROM(program...)

	dmg := hardware.NewDMG()
	if err := dmg.AttachCartridge(cl); err != nil {
		t.Fatal(err)
	}

	return dmg
}

// a program that sets the palette, fills in one background tile, drops a
// sentinel value into working RAM and settles into a busy loop.
var testProgram = []uint8{
	0x3e, 0xe4, // LD A, 0xe4
	0xe0, 0x47, // LDH (0x47), A
	0x3e, 0xff, // LD A, 0xff
	0x21, 0x10, 0x80, // LD HL, 0x8010
	0x06, 0x10, // LD B, 0x10
	0x22,       // LD (HL+), A      <- loop
	0x05,       // DEC B
	0x20, 0xfc, // JR NZ, -4
	0x3e, 0x01, // LD A, 0x01
	0xea, 0x00, 0x98, // LD (0x9800), A
	0x3e, 0x5a, // LD A, 0x5a
	0xea, 0x00, 0xc0, // LD (0xc000), A
	0x18, 0xfe, // JR -2            <- busy loop
}

func TestRunCartridge(t *testing.T) {
	dmg := makeDMG(t, testProgram...)

	if err := dmg.RunForFrameCount(3); err != nil {
		t.Fatal(err)
	}

	test.Equate(t, dmg.LCD.Frame(), 3)

	// the sentinel value reached working RAM, visible through the echo area
	// as well as directly
	v, err := dmg.Mem.Read(0xc000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x5a)
	v, _ = dmg.Mem.Read(0xe000)
	test.Equate(t, v, 0x5a)

	// the tile made it to video RAM
	v, _ = dmg.Mem.Read(0x8010)
	test.Equate(t, v, 0xff)
	v, _ = dmg.Mem.Read(0x9800)
	test.Equate(t, v, 0x01)
}

func TestDeterministicVideo(t *testing.T) {
	runDigest := func() string {
		dmg := makeDMG(t, testProgram...)

		dig := screendigest.NewSHA1()
		dmg.LCD.AddPixelRenderer(dig)

		if err := dmg.RunForFrameCount(5); err != nil {
			t.Fatal(err)
		}
		return dig.Hash()
	}

	a := runDigest()
	b := runDigest()

	test.Equate(t, a, b)
	test.Equate(t, a == screendigest.NewSHA1().Hash(), false)
}

func TestRunWithContinueCheck(t *testing.T) {
	dmg := makeDMG(t, testProgram...)

	instructions := 0
	err := dmg.Run(func() (bool, error) {
		instructions++
		return instructions < 1000, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	test.Equate(t, instructions, 1000)

	// by now the program is in its busy loop
	test.Equate(t, dmg.CPU.LastResult.Defn.Mnemonic, "JR 0x%02X")
}

func TestJoypadThroughMemory(t *testing.T) {
	dmg := makeDMG(t, testProgram...)

	// select the action group through the joypad register
	test.ExpectedSuccess(t, dmg.Mem.Write(0xff00, 0x10))

	dmg.Joypad.Set(joypad.Start, true)

	// the press shows in the register, active low
	v, err := dmg.Mem.Read(0xff00)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v&0x0f, 0x07)

	// the press raised the joypad interrupt
	v, _ = dmg.Mem.Read(0xff0f)
	test.Equate(t, v&0x10, 0x10)
}
