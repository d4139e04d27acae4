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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dmgopher/dmgopher/gui"
)

// Service polls the SDL event queue and translates anything interesting
// into gui events. It must be called often enough for the window to remain
// responsive, and from the same goroutine that created the SdlPlay.
func (scr *SdlPlay) Service(handle func(gui.Event) error) error {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			if err := handle(gui.EventQuit{}); err != nil {
				return err
			}

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			e := gui.EventKeyboard{
				Key:  sdl.GetKeyName(ev.Keysym.Sym),
				Down: ev.Type == sdl.KEYDOWN,
			}
			if err := handle(e); err != nil {
				return err
			}
		}
	}

	return nil
}
