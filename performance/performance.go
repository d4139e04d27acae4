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

// Package performance measures the frame rate the emulation can sustain
// with a given cartridge, optionally producing CPU and memory profiles of
// the run.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/curated"
	"github.com/dmgopher/dmgopher/hardware"
)

// CheckError is the error returned by the Check() function.
const CheckError = "performance: %v"

// the frame rate of the real console, for the accuracy figure.
const consoleFramesPerSecond = 59.73

// Check the performance of the emulator using the supplied cartridge.
//
// The emulation runs flat out for the specified duration. A CPU and memory
// profile is created when the profile argument is true.
func Check(output io.Writer, profile bool, cartload cartridgeloader.Loader, duration time.Duration) error {
	dmg := hardware.NewDMG()

	err := dmg.AttachCartridge(cartload)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	startFrame := 0

	err = cpuProfile(profile, "cpu.profile", func() error {
		// setup trigger that expires when duration has elapsed
		timesUp := make(chan bool)

		// force a two second leadtime to allow the emulation to settle down
		// and then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				startFrame = dmg.LCD.Frame()
				time.AfterFunc(duration, func() {
					timesUp <- true
				})
			})
		}()

		// checking the timer channel is relatively expensive so only do it
		// every PerformanceBrake CPU instructions
		performanceBrake := 0

		return dmg.Run(func() (bool, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return true, nil
			}
			performanceBrake = 0

			select {
			case <-timesUp:
				return false, nil
			default:
				return true, nil
			}
		})
	})
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	numFrames := dmg.LCD.Frame() - startFrame
	fps, accuracy := CalcFPS(numFrames, duration.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)

	return memProfile(profile, "mem.profile")
}

// CalcFPS returns the frames per second and the accuracy of that value as a
// percentage of the frame rate of the real console.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / consoleFramesPerSecond
	return fps, accuracy
}
