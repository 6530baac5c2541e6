package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		op       chip8.Opcode
		expected *chip8cpu.Instruction
	}{
		{"clear screen", 0x00E0, chip8cpu.Cls},
		{"return", 0x00EE, chip8cpu.Ret},
		{"jump", 0x1234, chip8cpu.Jp},
		{"call", 0x2345, chip8cpu.Call},
		{"load immediate", 0x6A12, chip8cpu.Ld},
		{"draw", 0xD125, chip8cpu.Drw},
		{"skip key", 0xE19E, chip8cpu.Skp},
		{"skip not key", 0xE1A1, chip8cpu.Sknp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lookup(tt.op))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		op       chip8.Opcode
		name     *chip8cpu.Instruction
		expected string
	}{
		{0x00E0, chip8cpu.Cls, ""},
		{0x1234, chip8cpu.Jp, "$234"},
		{0xB234, chip8cpu.Jp, "V0, $234"},
		{0x2345, chip8cpu.Call, "$345"},
		{0x3A12, chip8cpu.Se, "VA, $12"},
		{0x9AB0, chip8cpu.Sne, "VA, VB"},
		{0x6A12, chip8cpu.Ld, "VA, $12"},
		{0x8AB0, chip8cpu.Ld, "VA, VB"},
		{0xA123, chip8cpu.Ld, "I, $123"},
		{0x7A01, chip8cpu.Add, "VA, $01"},
		{0x8AB4, chip8cpu.Add, "VA, VB"},
		{0x8AB5, chip8cpu.Sub, "VA, VB"},
		{0x8A06, chip8cpu.Shr, "VA"},
		{0xC1FF, chip8cpu.Rnd, "V1, $FF"},
		{0xD125, chip8cpu.Drw, "V1, V2, $5"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			expected := tt.name.Name
			if tt.expected != "" {
				expected += " " + tt.expected
			}
			assert.Equal(t, expected, Format(tt.op))
		})
	}
}

func TestFormatUnknown(t *testing.T) {
	assert.Equal(t, ".word $F1FF", Format(0xF1FF))
	assert.Equal(t, ".word $E1FF", Format(0xE1FF))
}

func TestListing(t *testing.T) {
	var buf bytes.Buffer
	err := Listing(&buf, []byte{0x00, 0xE0, 0x12, 0x00, 0xAB})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "200: 00E0  "+chip8cpu.Cls.Name, lines[0])
	assert.Equal(t, "202: 1200  "+chip8cpu.Jp.Name+" $200", lines[1])
	assert.Equal(t, "204: AB    .byte $AB", lines[2])
}

func TestListingSeparatesData(t *testing.T) {
	tests := []struct {
		name     string
		program  []byte
		expected []string
	}{
		{
			name: "sprite after jump",
			program: []byte{
				0xA2, 0x06, // LD I, $206
				0xD0, 0x02, // DRW V0, V0, 2
				0x12, 0x04, // JP $204
				0xF0, 0x90, // sprite
			},
			expected: []string{
				"200: A206  " + chip8cpu.Ld.Name + " I, $206",
				"202: D002  " + chip8cpu.Drw.Name + " V0, V0, $2",
				"204: 1204  " + chip8cpu.Jp.Name + " $204",
				"data_206:",
				"206: F0    .byte $F0",
				"207: 90    .byte $90",
			},
		},
		{
			name: "call skip and return",
			program: []byte{
				0x22, 0x08, // CALL $208
				0x30, 0x00, // SE V0, $00
				0x00, 0xE0, // CLS
				0x12, 0x06, // JP $206
				0x00, 0xEE, // RET
				0xFF,
			},
			expected: []string{
				"200: 2208  " + chip8cpu.Call.Name + " $208",
				"202: 3000  " + chip8cpu.Se.Name + " V0, $00",
				"204: 00E0  " + chip8cpu.Cls.Name,
				"206: 1206  " + chip8cpu.Jp.Name + " $206",
				"208: 00EE  " + chip8cpu.Ret.Name,
				"20A: FF    .byte $FF",
			},
		},
		{
			name: "unknown opcode ends the path",
			program: []byte{
				0xF1, 0xFF,
				0x00, 0xE0,
			},
			expected: []string{
				"200: F1    .byte $F1",
				"201: FF    .byte $FF",
				"202: 00    .byte $00",
				"203: E0    .byte $E0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Listing(&buf, tt.program))

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, tt.expected, lines)
		})
	}
}
