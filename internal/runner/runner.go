// Package runner implements the emulation loop connecting the VM with a
// frontend, the sound recorder and screenshots.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/palette"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const title = "retrochip8"

// runner holds the state of one emulation session. It implements
// frontend.Input.
type runner struct {
	logger *log.Logger
	opts   options.Program
	fe     frontend.Frontend
	vm     *vm.VM
	pal    palette.Palette

	beeper   *sound.Beeper
	recorder *sound.Recorder

	screenshotRequested bool
	metrics             metrics
}

// Run loads the ROM and runs it until the frontend requests to quit, the
// context is canceled or the VM halts. With the headless frontend the
// emulation runs unpaced for the configured number of ticks.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, fe frontend.Frontend) error {
	pal, err := palette.ByName(opts.Palette)
	if err != nil {
		return fmt.Errorf("selecting palette: %w", err)
	}

	if err := fe.Init(fmt.Sprintf("%s - %s", title, filepath.Base(opts.Input)), opts.Scale, opts.Fullscreen, pal); err != nil {
		return fmt.Errorf("initializing frontend: %w", err)
	}
	defer func() {
		if err := fe.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	refreshRate := fe.RefreshRate()
	if refreshRate <= 0 {
		refreshRate = frontend.DefaultRefreshRate
	}

	r := &runner{
		logger: logger,
		opts:   opts,
		fe:     fe,
		pal:    pal,
		vm: vm.New(vm.Config{
			CyclesPerTick: config.CyclesPerTick(opts.Cycles, refreshRate),
			Palette:       pal,
			Trace:         opts.Trace,
			Seed:          opts.Seed,
		}, logger),
	}

	if err := r.vm.LoadROM(opts.Input); err != nil {
		return err
	}

	if opts.RecordAudio != "" {
		r.recorder, err = sound.NewRecorder(opts.RecordAudio, sound.SampleRate)
		if err != nil {
			return fmt.Errorf("starting audio recording: %w", err)
		}
		r.beeper = sound.NewBeeper(sound.SampleRate)
	}

	logger.Info("Starting emulation",
		log.Int("clock_hz", r.vm.CyclesPerTick()*refreshRate),
		log.Int("cycles_per_tick", r.vm.CyclesPerTick()),
		log.Int("ticks_per_second", refreshRate))

	runErr := r.loop(ctx, refreshRate)

	if err := r.finish(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (r *runner) loop(ctx context.Context, refreshRate int) error {
	elapsed := 1 / float64(refreshRate)
	paced := r.opts.Frontend != frontend.Headless

	var ticks <-chan time.Time
	if paced {
		ticker := time.NewTicker(time.Second / time.Duration(refreshRate))
		defer ticker.Stop()
		ticks = ticker.C
	}
	r.metrics.reset(time.Now())

	for tick := 0; ; tick++ {
		if !paced && r.opts.Ticks > 0 && tick >= r.opts.Ticks {
			return nil
		}

		if paced {
			select {
			case <-ctx.Done():
				r.logger.Info("Emulation stopped")
				return nil
			case <-ticks:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		start := time.Now()
		if r.fe.Poll(r) {
			return nil
		}
		if err := r.frame(elapsed); err != nil {
			return err
		}
		if stats, ok := r.metrics.add(start, time.Now()); ok {
			r.reportMetrics(stats)
		}
	}
}

// frame executes one tick and outputs its display and sound.
func (r *runner) frame(elapsed float64) error {
	if err := r.vm.Tick(elapsed); err != nil {
		return fmt.Errorf("running rom: %w", err)
	}

	beep := !r.vm.Paused() && r.vm.SoundTimer() > 0
	r.fe.Beep(beep)
	if r.recorder != nil {
		if err := r.recorder.Write(r.beeper.Samples(beep, elapsed)); err != nil {
			return fmt.Errorf("recording audio: %w", err)
		}
	}

	display := r.vm.Display()
	if err := r.fe.Present(display); err != nil {
		return fmt.Errorf("presenting display: %w", err)
	}

	if r.screenshotRequested {
		r.screenshotRequested = false
		r.saveScreenshot(screenshot.DefaultName(time.Now()), display)
	}
	return nil
}

// reportMetrics logs the frame metrics and shows them in the frontend if it
// supports a status display.
func (r *runner) reportMetrics(stats frameStats) {
	r.logger.Debug("Frame metrics",
		log.String("ms_per_frame", fmt.Sprintf("%.3f", stats.MsPerFrame)),
		log.String("fps", fmt.Sprintf("%.1f", stats.FPS)))

	if status, ok := r.fe.(frontend.StatusDisplay); ok {
		status.ShowStatus(stats.MsPerFrame, stats.FPS)
	}
}

// finish closes the recorder and writes the exit screenshot.
func (r *runner) finish() error {
	var errs []error

	if r.recorder != nil {
		if err := r.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing audio recording: %w", err))
		} else {
			r.logger.Info("Audio recorded",
				log.String("file", r.opts.RecordAudio),
				log.Int("samples", r.recorder.Samples()))
		}
	}

	if r.opts.Screenshot != "" {
		if err := screenshot.Save(r.opts.Screenshot, r.vm.Display(), r.pal, r.opts.Scale); err != nil {
			errs = append(errs, fmt.Errorf("writing screenshot: %w", err))
		} else {
			r.logger.Info("Screenshot saved", log.String("file", r.opts.Screenshot))
		}
	}

	return errors.Join(errs...)
}

func (r *runner) saveScreenshot(path string, display chip8.Display) {
	if err := screenshot.Save(path, display, r.pal, r.opts.Scale); err != nil {
		r.logger.Error("Saving screenshot failed", log.Err(err))
		return
	}
	r.logger.Info("Screenshot saved", log.String("file", path))
}

// SetKey forwards a key press to the VM.
func (r *runner) SetKey(key uint8) {
	r.vm.SetKey(key)
}

// ClearKey forwards a key release to the VM.
func (r *runner) ClearKey(key uint8) {
	r.vm.ClearKey(key)
}

// TogglePause pauses or resumes the VM.
func (r *runner) TogglePause(pause bool) {
	r.vm.TogglePause(pause)
}

// Paused returns whether the VM is paused.
func (r *runner) Paused() bool {
	return r.vm.Paused()
}

// RequestScreenshot saves a screenshot after the next frame.
func (r *runner) RequestScreenshot() {
	r.screenshotRequested = true
}

// Disassemble writes the instruction listing of the ROM file.
func Disassemble(logger *log.Logger, path string, w io.Writer) error {
	rom, err := loader.New(logger).Load(path)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	if err := disasm.Listing(w, rom.Data); err != nil {
		return fmt.Errorf("disassembling rom: %w", err)
	}
	return nil
}
