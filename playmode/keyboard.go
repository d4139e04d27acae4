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

package playmode

import (
	"github.com/dmgopher/dmgopher/gui"
	"github.com/dmgopher/dmgopher/hardware"
	"github.com/dmgopher/dmgopher/hardware/joypad"
)

// the keyboard to console button mapping.
var keys = map[string]joypad.Button{
	"Up":        joypad.Up,
	"Down":      joypad.Down,
	"Left":      joypad.Left,
	"Right":     joypad.Right,
	"Z":         joypad.B,
	"X":         joypad.A,
	"Return":    joypad.Start,
	"Backspace": joypad.Select,
}

// keyboardEvent forwards a key press or release to the console buttons.
func keyboardEvent(dmg *hardware.DMG, ev gui.EventKeyboard) {
	if b, ok := keys[ev.Key]; ok {
		dmg.Joypad.Set(b, ev.Down)
	}
}
