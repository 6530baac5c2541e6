// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input       string `arg:"positional" usage:"CHIP-8 ROM file to run"`
	Screenshot  string `flag:"screenshot" usage:"write a PNG screenshot of the last frame on exit"`
	RecordAudio string `flag:"record-audio" usage:"record the sound output to a WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	Cycles     int    `flag:"cycles" usage:"instructions per tick at 60 ticks per second" default:"20"`
	Palette    string `flag:"palette" usage:"colour palette of the display" default:"nokia"`
	Scale      int    `flag:"scale" usage:"display upscaling factor" default:"8"`
	Fullscreen bool   `flag:"fullscreen" usage:"start in fullscreen mode"`
	Frontend   string `flag:"frontend" usage:"frontend: headless, sdl, terminal" default:"sdl"`
	Ticks      int    `flag:"ticks" usage:"number of ticks to run with the headless frontend" default:"600"`
	Seed       int64  `flag:"seed" usage:"seed of the random number generator, 0 for a random seed"`
	Trace      bool   `flag:"trace" usage:"log every executed instruction"`
	Disasm     bool   `flag:"disasm" usage:"print the ROM disassembly and exit"`
	Debug      bool   `flag:"debug" usage:"enable debug logging"`
	Quiet      bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}
