package disasm

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const instructionSize = 2

// codeMap marks the program offsets that start an instruction reachable from
// chip8.ProgramStart and the offsets referenced as data by LD I, addr.
type codeMap struct {
	code []bool
	data []bool
}

// traceCode follows the control flow of the program to separate code from
// data. Paths end at returns, unknown opcodes and the end of the program.
func traceCode(program []byte) codeMap {
	m := codeMap{
		code: make([]bool, len(program)),
		data: make([]bool, len(program)),
	}

	queue := []uint16{chip8.ProgramStart}
	for len(queue) > 0 {
		address := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		offset, ok := m.offset(address)
		if !ok || m.code[offset] || offset+1 >= len(program) {
			continue
		}

		op := chip8.DecodeOpcode(program[offset], program[offset+1])
		ins := Lookup(op)
		if ins == nil {
			continue
		}
		m.code[offset] = true

		queue = append(queue, m.successors(address, op, ins)...)
	}
	return m
}

// successors returns the addresses that can execute after the instruction.
func (m codeMap) successors(address uint16, op chip8.Opcode, ins *chip8cpu.Instruction) []uint16 {
	next := address + instructionSize

	switch {
	case ins == chip8cpu.Jp:
		return []uint16{op.NNN()}

	case ins == chip8cpu.Call:
		return []uint16{op.NNN(), next}

	case ins == chip8cpu.Ret:
		return nil

	case chip8cpu.SkipInstructions.Contains(ins.Name):
		return []uint16{next, next + instructionSize}

	case ins == chip8cpu.Ld && op.U() == 0xA:
		if offset, ok := m.offset(op.NNN()); ok {
			m.data[offset] = true
		}
	}
	return []uint16{next}
}

// offset converts the memory address to a program offset.
func (m codeMap) offset(address uint16) (int, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	offset := int(address - chip8.ProgramStart)
	return offset, offset < len(m.code)
}
