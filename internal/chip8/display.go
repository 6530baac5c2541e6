package chip8

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Display is the monochrome framebuffer. Pixels are packed 8 per byte, the most
// significant bit being the leftmost pixel, rows are stored top to bottom.
type Display [Width * Height / 8]byte

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates outside the display are reported as not set.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	index, mask := pixelOffset(x, y)
	return d[index]&mask != 0
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	*d = Display{}
}

// Lit returns the number of pixels that are set.
func (d *Display) Lit() int {
	count := 0
	for _, b := range d {
		for ; b != 0; b &= b - 1 {
			count++
		}
	}
	return count
}

// flip toggles the pixel and returns true if it was set before.
func (d *Display) flip(x, y int) bool {
	index, mask := pixelOffset(x, y)
	wasSet := d[index]&mask != 0
	d[index] ^= mask
	return wasSet
}

func pixelOffset(x, y int) (int, byte) {
	bit := y*Width + x
	return bit / 8, 0x80 >> (bit % 8)
}
