// Package headless implements a frontend without any input or output. It
// keeps the presented frames for inspection by tests and batch runs.
package headless

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/palette"
)

// KeyEvent is a scripted key press, applied when the given poll count is reached.
type KeyEvent struct {
	Poll int   // number of the poll call, starting at 0
	Key  uint8 // CHIP-8 key
	Hold int   // polls until the key is released
}

// Headless is a frontend that does not output anything.
type Headless struct {
	refreshRate int
	pal         palette.Palette
	script      []KeyEvent
	release     map[int][]uint8

	polls     int
	frames    int
	beepTicks int
	last      chip8.Display
	hash      uint64
	closed    bool
	status    string
}

// Option defines an option for the headless frontend.
type Option func(*Headless)

// WithRefreshRate sets the reported refresh rate.
func WithRefreshRate(rate int) Option {
	return func(h *Headless) {
		h.refreshRate = rate
	}
}

// WithKeys scripts key presses that are sent to the input on poll.
func WithKeys(events ...KeyEvent) Option {
	return func(h *Headless) {
		h.script = append(h.script, events...)
	}
}

// New returns a new headless frontend.
func New(options ...Option) *Headless {
	h := &Headless{
		refreshRate: frontend.DefaultRefreshRate,
		release:     map[int][]uint8{},
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// Init stores the palette, no output is opened.
func (h *Headless) Init(_ string, _ int, _ bool, pal palette.Palette) error {
	h.pal = pal
	return nil
}

// RefreshRate returns the configured refresh rate.
func (h *Headless) RefreshRate() int {
	return h.refreshRate
}

// Poll sends the scripted key events of the current poll to the input.
func (h *Headless) Poll(input frontend.Input) bool {
	for _, key := range h.release[h.polls] {
		input.ClearKey(key)
	}
	delete(h.release, h.polls)

	for _, event := range h.script {
		if event.Poll != h.polls {
			continue
		}
		input.SetKey(event.Key)
		at := h.polls + max(event.Hold, 1)
		h.release[at] = append(h.release[at], event.Key)
	}

	h.polls++
	return false
}

// Present records the display.
func (h *Headless) Present(display chip8.Display) error {
	h.frames++
	h.last = display
	h.hash = xxhash.Sum64(display[:])
	return nil
}

// Beep counts the frames with an active tone.
func (h *Headless) Beep(on bool) {
	if on {
		h.beepTicks++
	}
}

// Close marks the frontend as closed.
func (h *Headless) Close() error {
	h.closed = true
	return nil
}

// ShowStatus records the frame metrics.
func (h *Headless) ShowStatus(msPerFrame, fps float64) {
	h.status = fmt.Sprintf("%.02fms/f, %.02f/s", msPerFrame, fps)
}

// Status returns the last recorded frame metrics.
func (h *Headless) Status() string {
	return h.status
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	return h.frames
}

// LastFrame returns the last presented display.
func (h *Headless) LastFrame() chip8.Display {
	return h.last
}

// FrameHash returns the xxhash of the last presented display.
func (h *Headless) FrameHash() uint64 {
	return h.hash
}

// BeepTicks returns the number of frames the tone was played.
func (h *Headless) BeepTicks() int {
	return h.beepTicks
}

// Palette returns the palette passed to Init.
func (h *Headless) Palette() palette.Palette {
	return h.pal
}

// Closed returns whether Close was called.
func (h *Headless) Closed() bool {
	return h.closed
}
