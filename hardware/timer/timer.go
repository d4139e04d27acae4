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

// Package timer implements the DMG's divider and programmable timer.
package timer

// the timer registers.
const (
	AddrDivider = uint16(0xff04)
	AddrCounter = uint16(0xff05)
	AddrModulo  = uint16(0xff06)
	AddrControl = uint16(0xff07)
)

// InterruptTimer is the request bit raised when the counter overflows.
const InterruptTimer = 0x04

// the number of clock cycles per counter increment, indexed by the low two
// bits of the control register.
var period = [4]int{1024, 16, 64, 256}

// the divider increments every 256 clock cycles regardless of the control
// register.
const dividerPeriod = 256

// InterruptBus is the timer's connection back to the interrupt flag
// register.
type InterruptBus interface {
	RaiseInterrupt(mask uint8)
}

// Timer implements the divider and the programmable timer. It attaches to
// the memory subsystem as a peripheral on the four timer registers.
type Timer struct {
	bus InterruptBus

	divider uint8
	counter uint8
	modulo  uint8
	control uint8

	// cycles accumulated towards the next divider/counter increment
	dividerClk int
	counterClk int
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(bus InterruptBus) *Timer {
	return &Timer{bus: bus}
}

// Reset the timer to its power-on state.
func (tmr *Timer) Reset() {
	tmr.divider = 0x00
	tmr.counter = 0x00
	tmr.modulo = 0x00
	tmr.control = 0x00
	tmr.dividerClk = 0
	tmr.counterClk = 0
}

// Step the timer forward by the given number of clock cycles.
func (tmr *Timer) Step(cycles int) {
	tmr.dividerClk += cycles
	for tmr.dividerClk >= dividerPeriod {
		tmr.dividerClk -= dividerPeriod
		tmr.divider++
	}

	// counter only runs while the enable bit is set
	if tmr.control&0x04 == 0 {
		return
	}

	p := period[tmr.control&0x03]
	tmr.counterClk += cycles
	for tmr.counterClk >= p {
		tmr.counterClk -= p
		tmr.counter++
		if tmr.counter == 0x00 {
			tmr.counter = tmr.modulo
			tmr.bus.RaiseInterrupt(InterruptTimer)
		}
	}
}

// Read is an implementation of cpubus.Memory.
func (tmr *Timer) Read(address uint16) (uint8, error) {
	switch address {
	case AddrDivider:
		return tmr.divider, nil
	case AddrCounter:
		return tmr.counter, nil
	case AddrModulo:
		return tmr.modulo, nil
	}
	return tmr.control | 0xf8, nil
}

// Write is an implementation of cpubus.Memory.
func (tmr *Timer) Write(address uint16, data uint8) error {
	switch address {
	case AddrDivider:
		// any write clears the divider
		tmr.divider = 0x00
		tmr.dividerClk = 0
	case AddrCounter:
		tmr.counter = data
	case AddrModulo:
		tmr.modulo = data
	case AddrControl:
		tmr.control = data & 0x07
	}
	return nil
}
