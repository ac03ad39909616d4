package main

import (
	"log"
	"os"
	"time"

	"github.com/hexaflex/chip8/devices/c8/beeper"
	"github.com/hexaflex/chip8/devices/c8/clock"
	"github.com/hexaflex/chip8/devices/c8/tty"
)

// runTerminal runs the program with the display rendered to stdout and
// keys read from stdin. It returns when the user presses ESC or ^C.
//
// Trace output goes to stderr so it can be redirected away from the display.
func (a *App) runTerminal() error {
	term := tty.New(os.Stdin, os.Stdout)
	a.cpu.Connect(clock.New(), term)

	if !a.config.Mute {
		a.cpu.Connect(beeper.New())
	}

	a.traceOut = os.Stderr

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	defer func() {
		a.cpu.Stop()
		if err := a.cpu.Shutdown(); err != nil {
			log.Println(err)
		}
	}()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	for {
		select {
		case <-term.Quit():
			return nil

		case cmd := <-term.Commands():
			switch cmd {
			case tty.TogglePause:
				a.cpu.ToggleRun()
			case tty.SingleStep:
				if err := a.cpu.Step(); err != nil {
					log.Println(err)
				}
			}

		case <-ticker.C:
			if err := a.cpu.Frame(a.config.Cycles); err != nil {
				log.Println(err)
			}
		}
	}
}
