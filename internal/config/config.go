// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CyclesPerTick converts the number of instructions per 60 Hz tick into the
// number of instructions per frame of a display with the given refresh rate.
// At least one instruction is executed per frame.
func CyclesPerTick(cycles, refreshRate int) int {
	if refreshRate <= 0 {
		return max(cycles, 1)
	}
	return max(cycles*chip8.TimerFrequency/refreshRate, 1)
}
