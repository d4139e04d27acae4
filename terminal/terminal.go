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

// Package terminal adapts a posix terminal for use as the demo program's
// input surface. The terminal is placed in cbreak mode so that keys arrive
// without waiting for a line of input; the Return key serves as the start
// control.
package terminal

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/dmgopher/dmgopher/curated"
)

// sentinal errors returned by the terminal package.
const (
	SetupError     = "terminal: %v"
	InterruptError = "terminal: interrupted"
)

// the keys the input surface reacts to.
const (
	keyCarriageReturn = 0x0d
	keyLineFeed       = 0x0a
	keyCtrlC          = 0x03
)

// Terminal is the demo program's view of a posix terminal. It implements
// the demo.Input interface.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal places the input file, usually os.Stdin, into cbreak mode.
// The caller must call CleanUp() to restore the terminal when done.
func NewTerminal(input *os.File) (*Terminal, error) {
	if input == nil {
		return nil, curated.Errorf(SetupError, fmt.Errorf("an input file is required"))
	}

	term := &Terminal{input: input}

	if err := termios.Tcgetattr(input.Fd(), &term.canAttr); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	term.cbreakAttr = term.canAttr
	termios.Cfmakecbreak(&term.cbreakAttr)

	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &term.cbreakAttr); err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	return term, nil
}

// CleanUp restores the terminal to the mode it was in before NewTerminal().
func (term *Terminal) CleanUp() {
	_ = termios.Tcsetattr(term.input.Fd(), termios.TCIFLUSH, &term.canAttr)
}

// StartPressed is an implementation of demo.Input. It blocks until a key
// arrives and reports whether that key was the start control. An interrupt
// key (ctrl-c) returns an error so the user is not trapped in the demo.
func (term *Terminal) StartPressed() (bool, error) {
	buf := make([]byte, 1)

	n, err := term.input.Read(buf)
	if err != nil {
		return false, curated.Errorf(SetupError, err)
	}
	if n == 0 {
		return false, nil
	}

	switch buf[0] {
	case keyCarriageReturn, keyLineFeed:
		return true, nil
	case keyCtrlC:
		return false, curated.Errorf(InterruptError)
	}

	return false, nil
}
