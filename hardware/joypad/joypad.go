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

// Package joypad implements the DMG's button matrix and its single register.
// The register presents one of two button groups, selected by the running
// program, with a low bit meaning a pressed button.
package joypad

// AddrJoypad is the address of the joypad register.
const AddrJoypad = uint16(0xff00)

// InterruptJoypad is the request bit raised when a button is pressed.
const InterruptJoypad = 0x10

// Button represents a single button on the console.
type Button int

// The buttons of the DMG. The order mirrors the layout of the two button
// groups in the register: bit 0 to bit 3 of the direction group followed
// by bit 0 to bit 3 of the action group.
const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

func (b Button) String() string {
	switch b {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	case A:
		return "a"
	case B:
		return "b"
	case Select:
		return "select"
	case Start:
		return "start"
	}
	return "unknown"
}

// group select bits in the register. zero means selected.
const (
	selectDirections = 0x10
	selectActions    = 0x20
)

// InterruptBus is the joypad's connection back to the interrupt flag
// register.
type InterruptBus interface {
	RaiseInterrupt(mask uint8)
}

// Joypad implements the button matrix. It attaches to the memory subsystem
// as a peripheral on the joypad register.
type Joypad struct {
	bus InterruptBus

	// one bit per Button, set while the button is held
	held uint8

	// the group select bits last written by the running program
	sel uint8
}

// NewJoypad is the preferred method of initialisation for the Joypad type.
func NewJoypad(bus InterruptBus) *Joypad {
	return &Joypad{
		bus: bus,
		sel: selectDirections | selectActions,
	}
}

// Set the pressed state of a button. A press raises the joypad interrupt if
// the button's group is currently selected.
func (pad *Joypad) Set(b Button, pressed bool) {
	m := uint8(0x01) << b

	if !pressed {
		pad.held &^= m
		return
	}

	if pad.held&m == m {
		return
	}
	pad.held |= m

	if b >= A {
		if pad.sel&selectActions == 0 {
			pad.bus.RaiseInterrupt(InterruptJoypad)
		}
	} else {
		if pad.sel&selectDirections == 0 {
			pad.bus.RaiseInterrupt(InterruptJoypad)
		}
	}
}

// Held returns true if the button is currently pressed.
func (pad *Joypad) Held(b Button) bool {
	return pad.held&(0x01<<b) != 0
}

// Read is an implementation of cpubus.Memory. Button state is active low.
func (pad *Joypad) Read(_ uint16) (uint8, error) {
	v := 0xc0 | pad.sel | 0x0f

	if pad.sel&selectDirections == 0 {
		v &= 0xf0 | ^pad.held&0x0f
	}
	if pad.sel&selectActions == 0 {
		v &= 0xf0 | ^(pad.held>>4)&0x0f
	}

	return v, nil
}

// Write is an implementation of cpubus.Memory. Only the group select bits
// can be written.
func (pad *Joypad) Write(_ uint16, data uint8) error {
	pad.sel = data & (selectDirections | selectActions)
	return nil
}
