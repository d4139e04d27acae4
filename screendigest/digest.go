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

// Package screendigest fingerprints the video output of the emulation. It
// is a headless implementation of the screen.PixelRenderer interface,
// useful for regression testing: two runs that produce the same digest
// produced the same pictures.
package screendigest

import (
	"crypto/sha1"
	"fmt"

	"github.com/dmgopher/dmgopher/hardware/screen"
)

// SHA1 is an implementation of the screen.PixelRenderer interface that
// maintains a running fingerprint of every frame rendered.
type SHA1 struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewSHA1 is the preferred method of initialisation for the SHA1 type.
func NewSHA1() *SHA1 {
	dig := &SHA1{}

	// the head of the pixel array carries the previous frame's digest so
	// that fingerprints chain from frame to frame
	dig.pixels = make([]byte, sha1.Size+screen.Width*screen.Height)

	return dig
}

// Hash returns the current digest value.
func (dig SHA1) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest resets the current digest value to zero.
func (dig *SHA1) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// Frame returns the frame number of the most recent digest.
func (dig SHA1) Frame() int {
	return dig.frameNum
}

// NewFrame implements the screen.PixelRenderer interface.
func (dig *SHA1) NewFrame(frameNum int) error {
	// chain fingerprints by copying the value of the last fingerprint to
	// the head of the pixel data
	copy(dig.pixels, dig.digest[:])
	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frameNum
	return nil
}

// NewScanline implements the screen.PixelRenderer interface.
func (dig *SHA1) NewScanline(_ int) error {
	return nil
}

// SetPixel implements the screen.PixelRenderer interface.
func (dig *SHA1) SetPixel(x, y int, shade screen.Shade) error {
	// preserve the first few bytes for the chained fingerprint
	i := sha1.Size + y*screen.Width + x

	if i < len(dig.pixels) {
		dig.pixels[i] = byte(shade)
	}

	return nil
}

// EndRendering implements the screen.PixelRenderer interface.
func (dig *SHA1) EndRendering() error {
	return nil
}
