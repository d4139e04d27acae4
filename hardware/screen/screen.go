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

// Package screen defines the interface between the video hardware and
// whatever is displaying its output. The video hardware drives attached
// PixelRenderer implementations a scanline at a time; how the pixels reach
// the user is no concern of the emulation core.
package screen

// The dimensions of the visible screen.
const (
	Width  = 160
	Height = 144
)

// The four shades the DMG screen can produce, after palette translation.
// Zero is the lightest shade.
type Shade uint8

// The shades in order of increasing darkness.
const (
	White Shade = iota
	LightGrey
	DarkGrey
	Black
)

// PixelRenderer implementations display, or otherwise work with, the visual
// output of the video hardware.
type PixelRenderer interface {
	// NewFrame and NewScanline are called at the start of the frame/scanline
	NewFrame(frameNum int) error
	NewScanline(scanline int) error

	// SetPixel is called for every pixel of every visible scanline. The
	// shade has already been translated through the running program's
	// palette
	SetPixel(x, y int, shade Shade) error

	// EndRendering is called when the emulation is shutting down. The
	// PixelRenderer should be considered unusable after EndRendering() has
	// been called
	EndRendering() error
}
