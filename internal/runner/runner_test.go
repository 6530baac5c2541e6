package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// writeROM writes the instructions as ROM file and returns its path.
func writeROM(t *testing.T, instructions ...uint16) string {
	t.Helper()

	data := make([]byte, 0, len(instructions)*2)
	for _, ins := range instructions {
		data = append(data, byte(ins>>8), byte(ins))
	}

	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func headlessOptions(rom string, ticks int) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: rom},
		Flags: options.Flags{
			Cycles:   20,
			Palette:  "nokia",
			Scale:    1,
			Frontend: frontend.Headless,
			Ticks:    ticks,
		},
	}
}

func TestRunDrawsAndBeeps(t *testing.T) {
	rom := writeROM(t,
		0x6005, // V0 = 5
		0x6100, // V1 = 0
		0xF029, // I = glyph of V0
		0xD015, // draw at V0, V1
		0x620A, // V2 = 10
		0xF218, // sound timer = V2
		0x120C, // loop
	)
	dir := t.TempDir()
	opts := headlessOptions(rom, 30)
	opts.Screenshot = filepath.Join(dir, "last.png")
	opts.RecordAudio = filepath.Join(dir, "sound.wav")

	fe := headless.New()
	err := Run(context.Background(), log.NewTestLogger(t), opts, fe)
	assert.NoError(t, err)

	assert.Equal(t, 30, fe.Frames())
	assert.Equal(t, 9, fe.BeepTicks())
	assert.True(t, fe.Closed())
	assert.Equal(t, "nokia", fe.Palette().Name)

	frame := fe.LastFrame()
	assert.Equal(t, 14, frame.Lit()) // glyph 5
	assert.True(t, frame.Pixel(5, 0))
	assert.False(t, frame.Pixel(4, 0))

	_, err = os.Stat(opts.Screenshot)
	assert.NoError(t, err)
	info, err := os.Stat(opts.RecordAudio)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 44)
}

func TestRunKeyWait(t *testing.T) {
	rom := writeROM(t,
		0xF10A, // V1 = key
		0xF129, // I = glyph of V1
		0x6000, // V0 = 0
		0xD005, // draw at V0, V0
		0x1208, // loop
	)

	fe := headless.New(headless.WithKeys(headless.KeyEvent{Poll: 5, Key: 0xA, Hold: 2}))
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions(rom, 10), fe)
	assert.NoError(t, err)

	frame := fe.LastFrame()
	assert.Equal(t, byte(0xF0), frame[0]) // top row of glyph A
	assert.Equal(t, byte(0x90), frame[chip8.Width/8])
}

func TestRunHaltsOnStackOverflow(t *testing.T) {
	rom := writeROM(t, 0x2200) // call itself

	fe := headless.New()
	err := Run(context.Background(), log.NewTestLogger(t), headlessOptions(rom, 10), fe)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, chip8.ErrStackOverflow))
	assert.Equal(t, 0, fe.Frames())
	assert.True(t, fe.Closed())
}

func TestRunCanceled(t *testing.T) {
	rom := writeROM(t, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fe := headless.New()
	err := Run(ctx, log.NewTestLogger(t), headlessOptions(rom, 10), fe)
	assert.NoError(t, err)
	assert.Equal(t, 0, fe.Frames())
}

func TestRunErrors(t *testing.T) {
	rom := writeROM(t, 0x1200)

	tests := []struct {
		name     string
		modify   func(opts *options.Program)
		contains string
	}{
		{
			name:     "missing rom",
			modify:   func(opts *options.Program) { opts.Input = filepath.Join(t.TempDir(), "missing.ch8") },
			contains: "loading rom",
		},
		{
			name:     "unknown palette",
			modify:   func(opts *options.Program) { opts.Palette = "sepia" },
			contains: "selecting palette",
		},
		{
			name: "audio file not writable",
			modify: func(opts *options.Program) {
				opts.RecordAudio = filepath.Join(t.TempDir(), "missing", "sound.wav")
			},
			contains: "starting audio recording",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := headlessOptions(rom, 1)
			tt.modify(&opts)

			err := Run(context.Background(), log.NewTestLogger(t), opts, headless.New())
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestDisassemble(t *testing.T) {
	rom := writeROM(t, 0x00E0, 0x1200)

	var buf bytes.Buffer
	assert.NoError(t, Disassemble(log.NewTestLogger(t), rom, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "200: 00E0"))
	assert.True(t, strings.HasPrefix(lines[1], "202: 1200"))
}

func TestPrintBanner(t *testing.T) {
	tests := []struct {
		name     string
		opts     options.Program
		version  string
		commit   string
		date     string
		contains []string
		excludes []string
	}{
		{
			name:     "release build",
			version:  "1.0.0",
			commit:   "0123456789abcdef",
			date:     "2024-01-01",
			contains: []string{title, "1.0.0", "(0123456)", "2024-01-01"},
			excludes: []string{"0123456789"},
		},
		{
			name:     "development build",
			version:  "dev",
			date:     "unknown",
			contains: []string{title, "dev"},
			excludes: []string{"Build", "unknown"},
		},
		{
			name:     "quiet",
			opts:     options.Program{Flags: options.Flags{Quiet: true}},
			version:  "1.0.0",
			excludes: []string{title},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := log.DefaultConfig()
			cfg.Output = &buf
			logger := log.NewWithConfig(cfg)

			PrintBanner(logger, tt.opts, tt.version, tt.commit, tt.date)

			output := buf.String()
			for _, s := range tt.contains {
				assert.True(t, strings.Contains(output, s), "missing "+s+" in "+output)
			}
			for _, s := range tt.excludes {
				assert.False(t, strings.Contains(output, s), "unexpected "+s+" in "+output)
			}
		})
	}
}
