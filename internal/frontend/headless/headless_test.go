package headless

import (
	"testing"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/palette"
	"github.com/retroenv/retrogolib/assert"
)

type recordingInput struct {
	pressed    map[uint8]bool
	paused     bool
	screenshot int
}

func (r *recordingInput) SetKey(key uint8)       { r.pressed[key] = true }
func (r *recordingInput) ClearKey(key uint8)     { r.pressed[key] = false }
func (r *recordingInput) TogglePause(pause bool) { r.paused = pause }
func (r *recordingInput) Paused() bool           { return r.paused }
func (r *recordingInput) RequestScreenshot()     { r.screenshot++ }

func TestHeadlessPresent(t *testing.T) {
	h := New()
	pal, err := palette.ByName("octo")
	assert.NoError(t, err)
	assert.NoError(t, h.Init("test", 1, false, pal))
	assert.Equal(t, "octo", h.Palette().Name)
	assert.Equal(t, 60, h.RefreshRate())

	var display chip8.Display
	display[10] = 0xAA
	assert.NoError(t, h.Present(chip8.Display{}))
	assert.NoError(t, h.Present(display))

	assert.Equal(t, 2, h.Frames())
	assert.Equal(t, display, h.LastFrame())
	assert.Equal(t, xxhash.Sum64(display[:]), h.FrameHash())

	h.Beep(true)
	h.Beep(false)
	h.Beep(true)
	assert.Equal(t, 2, h.BeepTicks())

	h.ShowStatus(1.5, 60)
	assert.Equal(t, "1.50ms/f, 60.00/s", h.Status())

	assert.False(t, h.Closed())
	assert.NoError(t, h.Close())
	assert.True(t, h.Closed())
}

func TestHeadlessScriptedKeys(t *testing.T) {
	h := New(
		WithRefreshRate(50),
		WithKeys(
			KeyEvent{Poll: 1, Key: 0xA, Hold: 2},
			KeyEvent{Poll: 1, Key: 0x3},
		),
	)
	assert.Equal(t, 50, h.RefreshRate())

	input := &recordingInput{pressed: map[uint8]bool{}}

	assert.False(t, h.Poll(input)) // poll 0
	assert.False(t, input.pressed[0xA])

	h.Poll(input) // poll 1
	assert.True(t, input.pressed[0xA])
	assert.True(t, input.pressed[0x3])

	h.Poll(input) // poll 2
	assert.True(t, input.pressed[0xA])
	assert.False(t, input.pressed[0x3])

	h.Poll(input) // poll 3
	assert.False(t, input.pressed[0xA])
}
