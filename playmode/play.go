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

// Package playmode is the regular playable emulation: a desktop window
// showing the LCD output with the keyboard standing in for the console
// buttons.
package playmode

import (
	"os"
	"os/signal"

	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/gui"
	"github.com/dmgopher/dmgopher/gui/sdlplay"
	"github.com/dmgopher/dmgopher/hardware"
)

// PlayError is the error returned by the Play() function.
const PlayError = "playmode: %v"

// Play sets the emulation running.
func Play(cartload cartridgeloader.Loader, scale float32, fpsCap bool) error {
	scr, err := sdlplay.NewSdlPlay(scale)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer func() {
		_ = scr.EndRendering()
	}()

	scr.SetFpsCap(fpsCap)

	dmg := hardware.NewDMG()
	dmg.LCD.AddPixelRenderer(scr)

	if err := dmg.AttachCartridge(cartload); err != nil {
		return curated.Errorf(PlayError, err)
	}

	// redirect interrupt signal so that ctrl-c ends the emulation cleanly
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// servicing the SDL event queue every instruction is far too slow
	performanceBrake := 0
	quit := false

	err = dmg.Run(func() (bool, error) {
		performanceBrake++
		if performanceBrake < hardware.PerformanceBrake {
			return true, nil
		}
		performanceBrake = 0

		select {
		case <-intChan:
			return false, nil
		default:
		}

		err := scr.Service(func(ev gui.Event) error {
			switch ev := ev.(type) {
			case gui.EventQuit:
				quit = true
			case gui.EventKeyboard:
				if ev.Key == "Escape" && ev.Down {
					quit = true
				} else {
					keyboardEvent(dmg, ev)
				}
			}
			return nil
		})
		if err != nil {
			return false, err
		}

		return !quit, nil
	})
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	return nil
}
