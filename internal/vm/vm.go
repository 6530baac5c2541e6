// Package vm provides the embedding API of the CHIP-8 emulator. It drives the
// interpreter with a fixed number of instructions per tick and advances the
// timers by the elapsed tick time.
package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/palette"
	"github.com/retroenv/retrogolib/log"
)

// ErrHalted is returned by Tick after the machine stopped on an execution error.
var ErrHalted = errors.New("vm halted")

// Config defines the VM settings.
type Config struct {
	CyclesPerTick int             // instructions executed per tick
	Palette       palette.Palette // colours used to present the display
	Trace         bool            // log every executed instruction
	Seed          int64           // seed of the random source, 0 for a time based seed
}

// VM wraps a CHIP-8 machine for an embedding application.
type VM struct {
	cfg    Config
	logger *log.Logger
	loader *loader.Loader

	machine *chip8.Machine
	rom     *loader.ROM

	paused  bool
	halted  bool
	waiting bool
}

// New returns a new initialized VM.
func New(cfg Config, logger *log.Logger) *VM {
	if cfg.CyclesPerTick < 1 {
		cfg.CyclesPerTick = 1
	}

	v := &VM{
		cfg:    cfg,
		logger: logger,
		loader: loader.New(logger),
	}
	v.machine = v.newMachine()
	return v
}

// LoadROM loads the ROM file into a fresh machine. The current machine is kept
// if loading fails.
func (v *VM) LoadROM(path string) error {
	v.mustBeInitialized()

	rom, err := v.loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return v.start(rom)
}

// LoadBytes loads the ROM content into a fresh machine.
func (v *VM) LoadBytes(name string, data []byte) error {
	v.mustBeInitialized()

	rom, err := v.loader.LoadFromBytes(name, data)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return v.start(rom)
}

func (v *VM) start(rom *loader.ROM) error {
	machine := v.newMachine()
	if err := machine.LoadProgram(rom.Data); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	v.machine = machine
	v.rom = rom
	v.halted = false
	v.waiting = false

	v.logger.Info("Loaded ROM",
		log.String("name", rom.Name),
		log.Int("size", len(rom.Data)),
		log.String("checksum", fmt.Sprintf("%016x", rom.Checksum)))
	return nil
}

// Tick runs up to CyclesPerTick instructions, fewer if the machine starts
// waiting for a key press, and advances the timers by the elapsed seconds.
// Nothing happens while the VM is paused.
func (v *VM) Tick(elapsedSeconds float64) error {
	v.mustBeInitialized()

	if v.halted {
		return ErrHalted
	}
	if v.paused {
		return nil
	}

	for c := 0; c < v.cfg.CyclesPerTick && !v.machine.Waiting(); c++ {
		address := v.machine.PC()
		if err := v.machine.Step(); err != nil {
			v.halted = true
			return fmt.Errorf("executing instruction at $%03X: %w", address, err)
		}
	}

	if waiting := v.machine.Waiting(); waiting != v.waiting {
		v.waiting = waiting
		if waiting {
			v.logger.Debug("Waiting for key press")
		}
	}

	v.machine.AdvanceTimers(elapsedSeconds)
	return nil
}

// Display returns a copy of the framebuffer.
func (v *VM) Display() chip8.Display {
	v.mustBeInitialized()
	return v.machine.Display()
}

// SoundTimer returns the current sound timer value, sound is played while it is non zero.
func (v *VM) SoundTimer() int {
	v.mustBeInitialized()
	return int(v.machine.SoundTimer())
}

// Palette returns the colour palette to present the display with.
func (v *VM) Palette() palette.Palette {
	v.mustBeInitialized()
	return v.cfg.Palette
}

// SetKey marks the key as pressed and resolves a pending key wait.
func (v *VM) SetKey(key uint8) {
	v.mustBeInitialized()
	v.machine.SetKey(key)
}

// ClearKey marks the key as released.
func (v *VM) ClearKey(key uint8) {
	v.mustBeInitialized()
	v.machine.ClearKey(key)
}

// TogglePause sets the pause state.
func (v *VM) TogglePause(pause bool) {
	v.mustBeInitialized()
	if v.paused == pause {
		return
	}
	v.paused = pause
	if pause {
		v.logger.Debug("VM paused")
	} else {
		v.logger.Debug("VM resumed")
	}
}

// Paused returns whether the VM is paused.
func (v *VM) Paused() bool {
	v.mustBeInitialized()
	return v.paused
}

// Halted returns whether the VM stopped on an execution error.
func (v *VM) Halted() bool {
	v.mustBeInitialized()
	return v.halted
}

// ROM returns the loaded ROM or nil.
func (v *VM) ROM() *loader.ROM {
	v.mustBeInitialized()
	return v.rom
}

// Machine returns the underlying machine.
func (v *VM) Machine() *chip8.Machine {
	v.mustBeInitialized()
	return v.machine
}

// CyclesPerTick returns the number of instructions executed per tick.
func (v *VM) CyclesPerTick() int {
	v.mustBeInitialized()
	return v.cfg.CyclesPerTick
}

func (v *VM) newMachine() *chip8.Machine {
	var options []chip8.Option
	if v.cfg.Seed != 0 {
		options = append(options, chip8.WithSeed(v.cfg.Seed))
	}
	if v.cfg.Trace {
		options = append(options, chip8.WithTracer(v.trace))
	}
	return chip8.New(options...)
}

func (v *VM) trace(address uint16, op chip8.Opcode) {
	v.logger.Debug("Executing",
		log.Hex("address", address),
		log.Stringer("opcode", op),
		log.String("instruction", disasm.Format(op)))
}

func (v *VM) mustBeInitialized() {
	if v == nil || v.machine == nil {
		panic("vm: used before initialization, create the VM with New")
	}
}
