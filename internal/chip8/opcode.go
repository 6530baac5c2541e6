package chip8

import "fmt"

// Opcode is a 16-bit CHIP-8 instruction word.
//
// The fields of an instruction are extracted by explicit masking:
//
//	u   - bits 12-15, the instruction class
//	x   - bits 8-11, first register index
//	y   - bits 4-7, second register index
//	n   - bits 0-3, 4-bit immediate
//	kk  - bits 0-7, 8-bit immediate
//	nnn - bits 0-11, 12-bit address
type Opcode uint16

// DecodeOpcode combines the two bytes of a big-endian instruction.
func DecodeOpcode(hi, lo byte) Opcode {
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// U returns the instruction class nibble.
func (o Opcode) U() uint8 {
	return uint8(o >> 12)
}

// X returns the first register index.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0xF
}

// Y returns the second register index.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0xF
}

// N returns the 4-bit immediate value.
func (o Opcode) N() uint8 {
	return uint8(o) & 0xF
}

// KK returns the 8-bit immediate value.
func (o Opcode) KK() uint8 {
	return uint8(o)
}

// NNN returns the 12-bit address.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}
