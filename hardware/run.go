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

package hardware

// The continueCheck() function runs at the end of every CPU instruction and
// a full check every time can be expensive. It depends on context whether it
// matters but the PerformanceBrake is a standard value that can be used to
// filter out expensive code paths within a continueCheck() implementation.
// For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if endCondition {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every instruction; the emulation ends when it
// returns false.
func (dmg *DMG) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	cont := true
	var err error

	for cont {
		if err = dmg.Step(); err != nil {
			return err
		}

		cont, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. Useful for FPS measurement and testing.
func (dmg *DMG) RunForFrameCount(numFrames int) error {
	targetFrame := dmg.LCD.Frame() + numFrames

	for dmg.LCD.Frame() < targetFrame {
		if err := dmg.Step(); err != nil {
			return err
		}
	}

	return nil
}
