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

// Package demo implements the canonical press-start program. The program
// announces itself, waits for the start control and declares victory. It is
// the behaviour of the GBDK hello-world cartridge, lifted out of the
// emulation so it can run against any input and output surface.
package demo

import (
	"io"

	"github.com/dmgopher/dmgopher/curated"
)

// the messages written to the output surface.
const (
	PromptMessage = "Press 'start'..."
	WinMessage    = "You win!"
)

// RunError is the error returned by Run(). The wrapped error comes from
// the input or output surface, never from the program itself.
const RunError = "demo: %v"

// Input is the single-button surface the program watches. Implementations
// are free to block inside StartPressed() or to return immediately with the
// current state of the control; Run() calls it repeatedly until it reports
// the control pressed.
type Input interface {
	StartPressed() (bool, error)
}

// Run the press-start program against the given surfaces.
//
// The prompt and a blank line are written to the output, then Run blocks
// until the input reports the start control pressed. There is no timeout:
// an input that never reports a press holds Run forever. Once the press is
// observed the winning message is written and Run returns. The program does
// not re-enter the wait: one press ends it.
func Run(output io.Writer, input Input) error {
	if _, err := io.WriteString(output, PromptMessage+"\n\n"); err != nil {
		return curated.Errorf(RunError, err)
	}

	for {
		pressed, err := input.StartPressed()
		if err != nil {
			return curated.Errorf(RunError, err)
		}
		if pressed {
			break
		}
	}

	if _, err := io.WriteString(output, WinMessage+"\n"); err != nil {
		return curated.Errorf(RunError, err)
	}

	return nil
}
