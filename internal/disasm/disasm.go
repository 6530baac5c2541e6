// Package disasm converts CHIP-8 instructions to their assembly mnemonics.
// Instructions are identified using the CHIP-8 opcode tables of retrogolib.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the instruction matching the opcode or nil if the opcode is
// not a valid CHIP-8 instruction.
func Lookup(op chip8.Opcode) *chip8cpu.Instruction {
	w := uint16(op)
	for _, candidate := range chip8cpu.Opcodes[int(op.U())] {
		if candidate.Info.Mask&w == candidate.Info.Value {
			return candidate.Instruction
		}
	}
	return nil
}

// Format returns the assembly representation of the opcode. Opcodes that do not
// decode to an instruction are returned as data word.
func Format(op chip8.Opcode) string {
	ins := Lookup(op)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", uint16(op))
	}

	if params := formatParams(ins.Name, op); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Listing writes the disassembly of the program, assuming it is loaded at
// chip8.ProgramStart. Instructions are found by following the control flow from
// the program start, all other bytes are output as data. Data referenced by
// LD I, addr is preceded by a label.
func Listing(w io.Writer, program []byte) error {
	m := traceCode(program)

	for offset := 0; offset < len(program); {
		address := chip8.ProgramStart + offset

		if m.data[offset] {
			if _, err := fmt.Fprintf(w, "data_%03X:\n", address); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
		}

		if !m.code[offset] {
			if _, err := fmt.Fprintf(w, "%03X: %02X    .byte $%02X\n", address, program[offset], program[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			offset++
			continue
		}

		op := chip8.DecodeOpcode(program[offset], program[offset+1])
		if _, err := fmt.Fprintf(w, "%03X: %s  %s\n", address, op, Format(op)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		offset += instructionSize
	}
	return nil
}

// formatParams formats the parameters of an instruction.
func formatParams(name string, op chip8.Opcode) string {
	switch name {
	case chip8cpu.Cls.Name, chip8cpu.Ret.Name:
		return "" // No parameters
	case chip8cpu.Jp.Name:
		return formatJump(op)
	case chip8cpu.Call.Name:
		return fmt.Sprintf("$%03X", op.NNN())
	case chip8cpu.Se.Name, chip8cpu.Sne.Name:
		return formatCompare(op)
	case chip8cpu.Ld.Name:
		return formatLoad(op)
	case chip8cpu.Add.Name:
		return formatAdd(op)
	case chip8cpu.Or.Name, chip8cpu.And.Name, chip8cpu.Xor.Name, chip8cpu.Sub.Name, chip8cpu.Subn.Name:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	case chip8cpu.Shr.Name, chip8cpu.Shl.Name, chip8cpu.Skp.Name, chip8cpu.Sknp.Name:
		return fmt.Sprintf("V%X", op.X())
	case chip8cpu.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
	case chip8cpu.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(op chip8.Opcode) string {
	if op.U() == 0xB {
		return fmt.Sprintf("V0, $%03X", op.NNN())
	}
	return fmt.Sprintf("$%03X", op.NNN())
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(op chip8.Opcode) string {
	switch op.U() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
	default:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	}
}

// formatLoad formats the many forms of the load instruction.
func formatLoad(op chip8.Opcode) string {
	x := op.X()

	switch op.U() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, op.KK())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xA:
		return fmt.Sprintf("I, $%03X", op.NNN())
	}

	switch op.KK() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAdd(op chip8.Opcode) string {
	switch op.U() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	default:
		return fmt.Sprintf("I, V%X", op.X())
	}
}
