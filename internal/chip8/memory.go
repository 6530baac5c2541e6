package chip8

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxAddress is the highest valid memory address.
	MaxAddress = 0xFFF

	// MaxProgramSize is the largest program that is accepted by LoadProgram.
	MaxProgramSize = MaxAddress - ProgramStart

	// FontBase is the address of the first glyph of the built-in font.
	FontBase = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16

	addressMask = MaxAddress
)

// Font contains the 16 hex digit glyphs 0-F, each 4 pixels wide and 5 rows high.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the memory address of the font glyph for the given hex digit.
// Only the low nibble of digit is used.
func GlyphAddress(digit uint8) uint16 {
	return FontBase + uint16(digit&0xF)*GlyphSize
}
