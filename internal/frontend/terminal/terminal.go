// Package terminal implements a frontend drawing the display into a terminal
// using termbox. Two display rows share one character cell by drawing an upper
// half block with the foreground set to the top pixel and the background set
// to the bottom pixel.
package terminal

import (
	"fmt"
	"image/color"
	"os"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/palette"
)

// keyHold is the number of polls a key stays pressed, terminals do not report
// key releases.
const keyHold = 6

const upperHalfBlock = '▀'

// Terminal is a termbox based frontend.
type Terminal struct {
	events chan termbox.Event
	done   chan struct{}

	background termbox.Attribute
	foreground termbox.Attribute
	held       keyHolder
	beeping    bool
}

// New returns a new terminal frontend.
func New() *Terminal {
	return &Terminal{}
}

// Init initializes termbox and starts reading events. Scale and fullscreen
// are not supported by terminals and ignored.
func (t *Terminal) Init(_ string, _ int, _ bool, pal palette.Palette) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing termbox: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)

	t.background = colorAttribute(pal.Background)
	t.foreground = colorAttribute(pal.Foreground)
	t.events = make(chan termbox.Event, 16)
	t.done = make(chan struct{})

	go t.readEvents()
	return nil
}

func (t *Terminal) readEvents() {
	defer close(t.done)
	for {
		event := termbox.PollEvent()
		if event.Type == termbox.EventInterrupt {
			return
		}
		t.events <- event
	}
}

// RefreshRate returns the default refresh rate.
func (t *Terminal) RefreshRate() int {
	return frontend.DefaultRefreshRate
}

// Poll processes all pending terminal events.
func (t *Terminal) Poll(input frontend.Input) bool {
	for _, key := range t.held.tick() {
		input.ClearKey(key)
	}

	for {
		select {
		case event := <-t.events:
			if t.handleEvent(event, input) {
				return true
			}
		default:
			return false
		}
	}
}

func (t *Terminal) handleEvent(event termbox.Event, input frontend.Input) bool {
	switch event.Type {
	case termbox.EventError:
		return true

	case termbox.EventResize:
		_ = termbox.Clear(t.background, t.background)

	case termbox.EventKey:
		switch event.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			return true
		case termbox.KeySpace:
			input.TogglePause(!input.Paused())
		case termbox.KeyF12:
			input.RequestScreenshot()
		default:
			key, ok := keymap.Lookup(event.Ch)
			if !ok {
				break
			}
			// autorepeat of a held key only extends the hold
			if !t.held.pressed(key) {
				input.SetKey(key)
			}
			t.held.press(key, keyHold)
		}
	}
	return false
}

// Present draws the display.
func (t *Terminal) Present(display chip8.Display) error {
	for row := 0; row < chip8.Height/2; row++ {
		for x := range chip8.Width {
			fg, bg := t.background, t.background
			if display.Pixel(x, row*2) {
				fg = t.foreground
			}
			if display.Pixel(x, row*2+1) {
				bg = t.foreground
			}
			termbox.SetCell(x, row, upperHalfBlock, fg, bg)
		}
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Beep rings the terminal bell when the tone starts.
func (t *Terminal) Beep(on bool) {
	if on && !t.beeping {
		_, _ = fmt.Fprint(os.Stdout, "\a")
	}
	t.beeping = on
}

// Close stops reading events and restores the terminal.
func (t *Terminal) Close() error {
	if t.done == nil {
		return nil
	}

	termbox.Interrupt()
	for {
		select {
		case <-t.events: // unblock the reader
		case <-t.done:
			termbox.Close()
			t.done = nil
			return nil
		}
	}
}

// colorAttribute maps the colour to the closest entry of the 6x6x6 colour
// cube of 256 colour terminals.
func colorAttribute(c color.RGBA) termbox.Attribute {
	level := func(v uint8) int {
		return (int(v)*5 + 127) / 255
	}
	index := 16 + 36*level(c.R) + 6*level(c.G) + level(c.B)
	return termbox.Attribute(index + 1) // attribute 0 is the default colour
}

// keyHolder releases pressed keys after a number of polls.
type keyHolder struct {
	remaining [16]int
}

func (k *keyHolder) press(key uint8, polls int) {
	k.remaining[key&0xF] = polls
}

func (k *keyHolder) pressed(key uint8) bool {
	return k.remaining[key&0xF] > 0
}

// tick counts down all held keys and returns the keys to release.
func (k *keyHolder) tick() []uint8 {
	var released []uint8
	for key, polls := range k.remaining {
		if polls == 0 {
			continue
		}
		k.remaining[key]--
		if k.remaining[key] == 0 {
			released = append(released, uint8(key))
		}
	}
	return released
}
