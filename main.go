// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/sdl"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			runner.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	runner.PrintBanner(logger, opts, version, commit, date)

	if opts.Disasm {
		if err := runner.Disassemble(logger, opts.Input, os.Stdout); err != nil {
			logger.Fatal("Disassembling failed", log.Err(err))
		}
		return
	}

	if err := runner.Run(ctx, logger, opts, newFrontend(logger, opts)); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func newFrontend(logger *log.Logger, opts options.Program) frontend.Frontend {
	switch opts.Frontend {
	case frontend.Headless:
		return headless.New()
	case frontend.Terminal:
		return terminal.New()
	default:
		return sdl.New(logger)
	}
}
