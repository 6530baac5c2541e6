// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A Machine owns every piece of CHIP-8 state as a separate buffer:
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as the flag register
//   - the 16-bit index register I and the program counter
//   - a 16 entry return stack
//   - 4KB of memory, the built-in hex font lives at FontBase and programs at ProgramStart
//   - a 64x32 monochrome framebuffer packed 8 pixels per byte
//   - the delay and sound timers, both decremented at 60 Hz
//   - the state of the 16 keys of the hex keypad
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, holds the font at FontBase
//	0x200-0xFFF: User program and data area
//
// # Execution
//
// Step executes a single instruction. The embedding application is expected to call
// Step a fixed number of times per frame and AdvanceTimers once per frame with the
// elapsed frame time. While the machine waits for a key press (instruction Fx0A)
// Step must not be called; a key press delivered through SetKey resumes execution.
package chip8
