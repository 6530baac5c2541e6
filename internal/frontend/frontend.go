// Package frontend defines the interface between the emulator run loop and
// the platform layer presenting the display and reading the keyboard.
package frontend

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/palette"
)

// Supported frontend names.
const (
	Headless = "headless"
	SDL      = "sdl"
	Terminal = "terminal"
)

// DefaultRefreshRate is used when the platform does not report a refresh rate.
const DefaultRefreshRate = 60

// Names returns the supported frontend names.
func Names() []string {
	return []string{Headless, SDL, Terminal}
}

// Input receives the user input collected by a frontend.
type Input interface {
	SetKey(key uint8)
	ClearKey(key uint8)
	TogglePause(pause bool)
	Paused() bool
	RequestScreenshot()
}

// Frontend presents the emulator state and collects user input.
type Frontend interface {
	// Init opens the output with the display scaled by the given factor.
	Init(title string, scale int, fullscreen bool, pal palette.Palette) error
	// RefreshRate returns the number of frames presented per second.
	RefreshRate() int
	// Poll processes pending input events and returns whether the user
	// requested to quit.
	Poll(input Input) bool
	// Present outputs the display.
	Present(display chip8.Display) error
	// Beep plays the tone for one frame if on is set.
	Beep(on bool)
	// Close releases all resources.
	Close() error
}

// StatusDisplay is implemented by frontends that can show the frame metrics,
// for example in the window title.
type StatusDisplay interface {
	ShowStatus(msPerFrame, fps float64)
}
