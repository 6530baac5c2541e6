package chip8

import "errors"

var (
	// ErrStackOverflow is returned when a subroutine call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrProgramTooLarge is returned when a program does not fit into user memory.
	ErrProgramTooLarge = errors.New("program too large")
)
