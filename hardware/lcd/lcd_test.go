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

package lcd_test

import (
	"testing"

	"github.com/dmgopher/dmgopher/hardware/lcd"
	"github.com/dmgopher/dmgopher/hardware/screen"
	"github.com/dmgopher/dmgopher/test"
)

type mockBus struct {
	raised uint8
}

func (b *mockBus) RaiseInterrupt(mask uint8) {
	b.raised |= mask
}

// mockVRAM is the full 8k video RAM area.
type mockVRAM struct {
	memory [0x2000]uint8
}

func (v *mockVRAM) Read(address uint16) (uint8, error) {
	return v.memory[address-0x8000], nil
}

func (v *mockVRAM) write(address uint16, data uint8) {
	v.memory[address-0x8000] = data
}

// mockRenderer records the pixels of the most recent frame.
type mockRenderer struct {
	frames    int
	scanlines int
	pixels    [screen.Height][screen.Width]screen.Shade
}

func (r *mockRenderer) NewFrame(_ int) error {
	r.frames++
	return nil
}

func (r *mockRenderer) NewScanline(_ int) error {
	r.scanlines++
	return nil
}

func (r *mockRenderer) SetPixel(x, y int, shade screen.Shade) error {
	r.pixels[y][x] = shade
	return nil
}

func (r *mockRenderer) EndRendering() error {
	return nil
}

func stepFrame(t *testing.T, l *lcd.LCD) {
	t.Helper()
	for i := 0; i < 154*456/4; i++ {
		if err := l.Step(4); err != nil {
			t.Fatal(err)
		}
	}
}

func TestVerticalBlank(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	// step to just before the vertical blank period
	for i := 0; i < 144*456/4; i++ {
		if err := l.Step(4); err != nil {
			t.Fatal(err)
		}
	}

	test.Equate(t, bus.raised&lcd.InterruptVBlank, lcd.InterruptVBlank)

	v, _ := l.Read(lcd.AddrScanline)
	test.Equate(t, v, 144)
}

func TestFrameAndScanlineCount(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	r := &mockRenderer{}
	l.AddPixelRenderer(r)

	stepFrame(t, l)
	test.Equate(t, r.frames, 1)
	test.Equate(t, r.scanlines, 144)
	test.Equate(t, l.Frame(), 1)
}

func TestBackgroundRendering(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	r := &mockRenderer{}
	l.AddPixelRenderer(r)

	// tile 1 is solid colour 3. the top-left tile map entry points to it
	for i := uint16(0); i < 16; i++ {
		vram.write(0x8010+i, 0xff)
	}
	vram.write(0x9800, 0x01)

	// identity palette
	test.ExpectedSuccess(t, l.Write(lcd.AddrPalette, 0xe4))

	stepFrame(t, l)

	// the top-left tile renders black, its neighbour white
	test.Equate(t, r.pixels[0][0] == screen.Black, true)
	test.Equate(t, r.pixels[7][7] == screen.Black, true)
	test.Equate(t, r.pixels[0][8] == screen.White, true)
	test.Equate(t, r.pixels[8][0] == screen.White, true)
}

func TestPaletteTranslation(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	r := &mockRenderer{}
	l.AddPixelRenderer(r)

	for i := uint16(0); i < 16; i++ {
		vram.write(0x8010+i, 0xff)
	}
	vram.write(0x9800, 0x01)

	// a palette that maps colour 3 to the lightest shade
	test.ExpectedSuccess(t, l.Write(lcd.AddrPalette, 0x27))

	stepFrame(t, l)
	test.Equate(t, r.pixels[0][0] == screen.White, true)
}

func TestScanlineCompare(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	// request the stat interrupt on scanline 10
	test.ExpectedSuccess(t, l.Write(lcd.AddrCompare, 10))
	test.ExpectedSuccess(t, l.Write(lcd.AddrStatus, 0x40))

	for i := 0; i < 10*456/4; i++ {
		if err := l.Step(4); err != nil {
			t.Fatal(err)
		}
	}

	test.Equate(t, bus.raised&lcd.InterruptStat, lcd.InterruptStat)

	v, _ := l.Read(lcd.AddrStatus)
	test.Equate(t, v&0x04, 0x04)
}

func TestDisplayDisable(t *testing.T) {
	bus := &mockBus{}
	vram := &mockVRAM{}
	l := lcd.NewLCD(bus, vram)
	l.Reset()

	r := &mockRenderer{}
	l.AddPixelRenderer(r)

	test.ExpectedSuccess(t, l.Write(lcd.AddrControl, 0x00))
	stepFrame(t, l)

	test.Equate(t, r.frames, 0)
	test.Equate(t, r.scanlines, 0)
	test.Equate(t, bus.raised, 0x00)
}
