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

// Package lcd implements the background layer of the DMG video hardware.
// Sprites and the window layer are not implemented.
package lcd

import (
	"github.com/dmgopher/dmgopher/hardware/screen"
)

// the video registers.
const (
	AddrControl  = uint16(0xff40)
	AddrStatus   = uint16(0xff41)
	AddrScrollY  = uint16(0xff42)
	AddrScrollX  = uint16(0xff43)
	AddrScanline = uint16(0xff44)
	AddrCompare  = uint16(0xff45)
	AddrPalette  = uint16(0xff47)
)

// the request bits raised by the video hardware.
const (
	InterruptVBlank = 0x01
	InterruptStat   = 0x02
)

// control register bits.
const (
	ctrlBackgroundEnable = 0x01
	ctrlTileMapSelect    = 0x08
	ctrlTileDataSelect   = 0x10
	ctrlDisplayEnable    = 0x80
)

// scanline timing in clock cycles. a frame is 154 scanlines, the last ten
// of which are the vertical blank period.
const (
	cyclesOAM      = 80
	cyclesTransfer = 252
	cyclesScanline = 456

	scanlinesVisible = screen.Height
	scanlinesTotal   = 154
)

// the tile map and tile data areas in video RAM.
const (
	tileMap0  = uint16(0x9800)
	tileMap1  = uint16(0x9c00)
	tileData0 = uint16(0x9000) // signed indexing
	tileData1 = uint16(0x8000)
)

// InterruptBus is the video hardware's connection back to the interrupt
// flag register.
type InterruptBus interface {
	RaiseInterrupt(mask uint8)
}

// VideoBus is the video hardware's connection to video RAM.
type VideoBus interface {
	Read(address uint16) (uint8, error)
}

// LCD implements the DMG video hardware. It attaches to the memory
// subsystem as a peripheral on the video registers, reads tile data over
// the VideoBus, and forwards rendered scanlines to the attached
// PixelRenderer implementations.
type LCD struct {
	bus  InterruptBus
	vram VideoBus

	renderers []screen.PixelRenderer

	control uint8
	status  uint8
	scrollY uint8
	scrollX uint8
	line    uint8
	compare uint8
	palette uint8

	// cycles into the current scanline
	clk int

	// whether the current scanline has been rendered yet
	rendered bool

	frameNum int
}

// NewLCD is the preferred method of initialisation for the LCD type.
func NewLCD(bus InterruptBus, vram VideoBus) *LCD {
	return &LCD{
		bus:  bus,
		vram: vram,
	}
}

// Reset the video hardware to its power-on state.
func (l *LCD) Reset() {
	l.control = 0x91
	l.status = 0x00
	l.scrollY = 0x00
	l.scrollX = 0x00
	l.line = 0x00
	l.compare = 0x00
	l.palette = 0xfc
	l.clk = 0
	l.rendered = false
	l.frameNum = 0
}

// AddPixelRenderer attaches a renderer to the video output.
func (l *LCD) AddPixelRenderer(r screen.PixelRenderer) {
	l.renderers = append(l.renderers, r)
}

// Frame returns the number of frames rendered since the last reset.
func (l *LCD) Frame() int {
	return l.frameNum
}

// Step the video hardware forward by the given number of clock cycles.
func (l *LCD) Step(cycles int) error {
	if l.control&ctrlDisplayEnable == 0 {
		l.line = 0
		l.clk = 0
		return nil
	}

	l.clk += cycles

	// render the scanline once the pixel transfer period has passed
	if !l.rendered && l.clk >= cyclesTransfer && l.line < scanlinesVisible {
		if err := l.renderScanline(); err != nil {
			return err
		}
		l.rendered = true
	}

	for l.clk >= cyclesScanline {
		l.clk -= cyclesScanline
		l.rendered = false
		l.line++

		switch {
		case l.line == scanlinesVisible:
			l.bus.RaiseInterrupt(InterruptVBlank)
			if l.status&0x10 == 0x10 {
				l.bus.RaiseInterrupt(InterruptStat)
			}

		case l.line == scanlinesTotal:
			l.line = 0
			l.frameNum++
			for _, r := range l.renderers {
				if err := r.NewFrame(l.frameNum); err != nil {
					return err
				}
			}
		}

		l.compareScanline()
	}

	return nil
}

// compareScanline updates the coincidence bit in the status register,
// raising the stat interrupt when requested.
func (l *LCD) compareScanline() {
	if l.line == l.compare {
		l.status |= 0x04
		if l.status&0x40 == 0x40 {
			l.bus.RaiseInterrupt(InterruptStat)
		}
	} else {
		l.status &^= 0x04
	}
}

// the display mode as presented in the low two bits of the status register.
func (l *LCD) mode() uint8 {
	if l.control&ctrlDisplayEnable == 0 {
		return 0
	}
	if l.line >= scanlinesVisible {
		return 1
	}
	if l.clk < cyclesOAM {
		return 2
	}
	if l.clk < cyclesTransfer {
		return 3
	}
	return 0
}

// renderScanline reads the background tiles the current scanline crosses
// and forwards the palette-translated pixels to the attached renderers.
func (l *LCD) renderScanline() error {
	for _, r := range l.renderers {
		if err := r.NewScanline(int(l.line)); err != nil {
			return err
		}
	}

	y := l.line + l.scrollY

	tileMap := tileMap0
	if l.control&ctrlTileMapSelect == ctrlTileMapSelect {
		tileMap = tileMap1
	}

	for x := 0; x < screen.Width; x++ {
		shade := screen.White

		if l.control&ctrlBackgroundEnable == ctrlBackgroundEnable {
			px := uint8(x) + l.scrollX

			idx, err := l.vram.Read(tileMap + uint16(y/8)*32 + uint16(px/8))
			if err != nil {
				return err
			}

			// tile data addressing is unsigned from one base address and
			// signed from the other
			var addr uint16
			if l.control&ctrlTileDataSelect == ctrlTileDataSelect {
				addr = tileData1 + uint16(idx)*16
			} else {
				addr = tileData0 + uint16(int(int8(idx))*16)
			}
			addr += uint16(y%8) * 2

			lo, err := l.vram.Read(addr)
			if err != nil {
				return err
			}
			hi, err := l.vram.Read(addr + 1)
			if err != nil {
				return err
			}

			bit := 7 - px%8
			col := (lo>>bit)&0x01 | ((hi>>bit)&0x01)<<1

			// translate through the background palette
			shade = screen.Shade((l.palette >> (col * 2)) & 0x03)
		}

		for _, r := range l.renderers {
			if err := r.SetPixel(x, int(l.line), shade); err != nil {
				return err
			}
		}
	}

	return nil
}

// Read is an implementation of cpubus.Memory.
func (l *LCD) Read(address uint16) (uint8, error) {
	switch address {
	case AddrControl:
		return l.control, nil
	case AddrStatus:
		return 0x80 | l.status&0x7c | l.mode(), nil
	case AddrScrollY:
		return l.scrollY, nil
	case AddrScrollX:
		return l.scrollX, nil
	case AddrScanline:
		return l.line, nil
	case AddrCompare:
		return l.compare, nil
	}
	return l.palette, nil
}

// Write is an implementation of cpubus.Memory.
func (l *LCD) Write(address uint16, data uint8) error {
	switch address {
	case AddrControl:
		l.control = data
	case AddrStatus:
		// the mode and coincidence bits are read only
		l.status = data & 0x78
	case AddrScrollY:
		l.scrollY = data
	case AddrScrollX:
		l.scrollX = data
	case AddrScanline:
		// read only
	case AddrCompare:
		l.compare = data
		l.compareScanline()
	case AddrPalette:
		l.palette = data
	}
	return nil
}
