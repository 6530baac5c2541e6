// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/palette"
	"github.com/retroenv/retrochip8/internal/screenshot"
)

// Limits of the numeric options.
const (
	MinCycles = 1
	MaxCycles = 1000
	MinScale  = 1
	MaxScale  = screenshot.MaxScale
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		msg := ""
		if err != nil && !errors.Is(err, flag.ErrHelp) {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Cycles < MinCycles || opts.Cycles > MaxCycles {
		return fmt.Errorf("invalid cycles value %d, expected %d to %d", opts.Cycles, MinCycles, MaxCycles)
	}

	opts.Palette = strings.ToLower(opts.Palette)
	if _, err := palette.ByName(opts.Palette); err != nil {
		return fmt.Errorf("invalid palette: %w", err)
	}

	opts.Scale = min(max(opts.Scale, MinScale), MaxScale)

	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontend.Names(), opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontend.Names(), ", "))
	}

	if opts.Frontend == frontend.Headless && opts.Ticks < 1 {
		return fmt.Errorf("invalid ticks value %d, the headless frontend needs at least 1 tick", opts.Ticks)
	}

	if opts.Trace {
		opts.Debug = true
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Cycles, "cycles", 20, "number of instructions executed per tick at 60 ticks per second (1-1000)")
	flags.StringVar(&opts.Palette, "palette", palette.Default, "colour palette of the display ("+strings.Join(palette.Names(), "/")+")")
	flags.IntVar(&opts.Scale, "scale", 8, "upscaling factor of the window and screenshots (1-16)")
	flags.BoolVar(&opts.Fullscreen, "fullscreen", false, "start the window in fullscreen mode")
	flags.StringVar(&opts.Frontend, "frontend", frontend.SDL, "frontend used for output and input ("+strings.Join(frontend.Names(), "/")+")")
	flags.IntVar(&opts.Ticks, "ticks", 600, "number of ticks to run with the headless frontend")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of the PNG file to write a screenshot of the last frame to on exit")
	flags.StringVar(&opts.RecordAudio, "record-audio", "", "name of the WAV file to record the sound output to")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print the disassembly of the ROM and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
