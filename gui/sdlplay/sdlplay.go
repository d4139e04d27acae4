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

// Package sdlplay is an SDL implementation of the screen.PixelRenderer
// interface, for playing games in a desktop window.
package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware/screen"
	"github.com/dmgopher/dmgopher/performance/limiter"
)

// SDLError is the error returned for any failure inside the SDL library.
const SDLError = "sdlplay: %v"

const pixelDepth = 4

// the frame rate of the real console.
const framesPerSecond = 59.73

// the classic green-tinged shades of the original console screen, indexed
// by screen.Shade.
var shades = [4][3]byte{
	{0x9b, 0xbc, 0x0f},
	{0x8b, 0xac, 0x0f},
	{0x30, 0x62, 0x30},
	{0x0f, 0x38, 0x0f},
}

// SdlPlay is a simple SDL implementation of the screen.PixelRenderer
// interface.
type SdlPlay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// limit screen updates to the console's frame rate
	lmtr   *limiter.FpsLimiter
	fpsCap bool

	// pixels is the byte array we copy to the texture on every NewFrame().
	// it is equal to screen.Width * screen.Height * pixelDepth
	pixels []byte
}

// NewSdlPlay is the preferred method of initialisation for SdlPlay.
func NewSdlPlay(scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{
		fpsCap: true,
	}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.window, err = sdl.CreateWindow("DMGopher",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(screen.Width)*scale), int32(float32(screen.Height)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	err = scr.renderer.SetScale(scale, scale)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// texture is the same size as the pixel array. scaling is applied when
	// it is copied to the renderer
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		screen.Width, screen.Height)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.pixels = make([]byte, screen.Width*screen.Height*pixelDepth)

	// preset alpha channel - we never change the value of this channel
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	scr.lmtr = limiter.NewFPSLimiter(framesPerSecond)

	return scr, nil
}

// SetFpsCap turns frame rate limiting on or off. FPS measurement runs with
// the cap off.
func (scr *SdlPlay) SetFpsCap(cap bool) {
	scr.fpsCap = cap
}

// NewFrame implements the screen.PixelRenderer interface.
func (scr *SdlPlay) NewFrame(_ int) error {
	if scr.fpsCap {
		scr.lmtr.Wait()
	}

	err := scr.texture.Update(nil, scr.pixels, screen.Width*pixelDepth)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	scr.renderer.Present()

	return nil
}

// NewScanline implements the screen.PixelRenderer interface.
func (scr *SdlPlay) NewScanline(_ int) error {
	return nil
}

// SetPixel implements the screen.PixelRenderer interface.
func (scr *SdlPlay) SetPixel(x, y int, shade screen.Shade) error {
	i := (y*screen.Width + x) * pixelDepth
	if i <= len(scr.pixels)-pixelDepth {
		scr.pixels[i] = shades[shade][0]
		scr.pixels[i+1] = shades[shade][1]
		scr.pixels[i+2] = shades[shade][2]
	}
	return nil
}

// EndRendering implements the screen.PixelRenderer interface.
func (scr *SdlPlay) EndRendering() error {
	scr.window.Hide()
	sdl.Quit()
	return nil
}
