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

// Package gui defines the events a windowed user interface sends back to
// the emulation loop. Implementations live in the sub-packages.
package gui

// Event represents all the different kinds of event that can be sent from
// the user interface.
type Event interface{}

// EventQuit is sent when the user closes the window or otherwise asks for
// the emulation to end.
type EventQuit struct{}

// EventKeyboard is sent when the user presses or releases a key.
type EventKeyboard struct {
	Key  string
	Down bool
}
