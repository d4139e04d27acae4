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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dmgopher/dmgopher/cartridgeloader"
	"github.com/dmgopher/dmgopher/demo"
	"github.com/dmgopher/dmgopher/logger"
	"github.com/dmgopher/dmgopher/modalflag"
	"github.com/dmgopher/dmgopher/performance"
	"github.com/dmgopher/dmgopher/playmode"
	"github.com/dmgopher/dmgopher/statsview"
	"github.com/dmgopher/dmgopher/terminal"
	"github.com/dmgopher/dmgopher/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEMO", "PERFORMANCE", "VERSION")
	md.AddDefaultSubMode("RUN")

	log := md.AddBool("log", false, "echo the application log to stderr")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	switch md.Mode() {
	case "RUN":
		err = play(md)
	case "DEMO":
		err = pressStart(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	scale := md.AddFloat64("scale", 4.0, "television scaling")
	fpsCap := md.AddBool("fpscap", true, "cap fps to that of the real console")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("%s mode requires a cartridge file", md.Path())
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))
		return playmode.Play(cartload, float32(*scale), *fpsCap)
	}

	return fmt.Errorf("too many arguments for %s mode", md.Path())
}

// pressStart runs the canonical demo program on the terminal. the Return
// key stands in for the start button.
func pressStart(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	term, err := terminal.NewTerminal(os.Stdin)
	if err != nil {
		return err
	}
	defer term.CleanUp()

	return demo.Run(os.Stdout, term)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	profile := md.AddBool("profile", false, "write cpu and memory profiles")
	duration := md.AddDuration("duration", 5*time.Second, "run duration (note: there is a 2s overhead)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("%s mode requires a cartridge file", md.Path())
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))
		return performance.Check(md.Output, *profile, cartload, *duration)
	}

	return fmt.Errorf("too many arguments for %s mode", md.Path())
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	vers, rev, _ := version.Version()
	fmt.Printf("%s (%s)\n", version.ApplicationName, vers)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
