package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

// RandomSource returns a uniformly distributed random byte.
type RandomSource func() uint8

// Tracer is called for every instruction before it gets executed.
type Tracer func(address uint16, op Opcode)

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the random source used by the Cxkk instruction.
func WithRandom(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithSeed seeds the default random source, making Cxkk results reproducible.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.random = newRandomSource(seed)
	}
}

// WithTracer installs an instruction tracer.
func WithTracer(tracer Tracer) Option {
	return func(m *Machine) {
		m.tracer = tracer
	}
}

// keyWait is the state of the Fx0A instruction.
type keyWait struct {
	waiting  bool
	register uint8
}

// Machine is the CHIP-8 interpreter state.
type Machine struct {
	v     [16]uint8
	i     uint16
	pc    uint16
	stack [StackSize]uint16
	sp    uint8 // number of used stack entries

	memory  [MemorySize]byte
	display Display
	timers  Timers
	keys    [16]bool
	wait    keyWait

	unknownOpcodes int

	random RandomSource
	tracer Tracer
}

// New returns a new machine with zeroed memory and the font installed.
func New(options ...Option) *Machine {
	m := &Machine{
		pc: ProgramStart,
	}
	copy(m.memory[FontBase:], Font[:])

	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = newRandomSource(time.Now().UnixNano())
	}
	return m
}

// LoadProgram clears user memory, copies the program to ProgramStart and resets
// the program counter. The machine is not modified if the program does not fit.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	clear(m.memory[ProgramStart:])
	copy(m.memory[ProgramStart:], program)
	m.pc = ProgramStart
	return nil
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// Register returns the value of register Vx.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0xF]
}

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int {
	return int(m.sp)
}

// Memory returns the byte at the given address.
func (m *Machine) Memory(address uint16) byte {
	return m.memory[address&addressMask]
}

// Display returns a copy of the framebuffer.
func (m *Machine) Display() Display {
	return m.display
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.timers.Delay
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.timers.Sound
}

// AdvanceTimers counts the timers down for the elapsed time in seconds.
func (m *Machine) AdvanceTimers(elapsedSeconds float64) {
	m.timers.Advance(elapsedSeconds)
}

// UnknownOpcodes returns the number of executed instructions that did not decode.
func (m *Machine) UnknownOpcodes() int {
	return m.unknownOpcodes
}

// KeyPressed returns whether the key is currently held down.
func (m *Machine) KeyPressed(key uint8) bool {
	return m.keys[key&0xF]
}

// Waiting returns whether execution is suspended until a key press.
func (m *Machine) Waiting() bool {
	return m.wait.waiting
}

// SetKey marks the key as pressed. If the machine waits for a key press and the
// key was released before, the key value is stored in the waiting register and
// execution may resume. Repeated presses of a held key do not resolve a wait.
func (m *Machine) SetKey(key uint8) {
	key &= 0xF
	wasPressed := m.keys[key]
	m.keys[key] = true

	if m.wait.waiting && !wasPressed {
		m.v[m.wait.register] = key
		m.wait = keyWait{}
	}
}

// ClearKey marks the key as released.
func (m *Machine) ClearKey(key uint8) {
	m.keys[key&0xF] = false
}

func newRandomSource(seed int64) RandomSource {
	rng := rand.New(rand.NewSource(seed))
	return func() uint8 {
		return uint8(rng.Intn(256))
	}
}
