// Package screenshot renders the CHIP-8 framebuffer to PNG images.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/palette"
	"golang.org/x/image/draw"
)

// MaxScale is the largest supported upscaling factor.
const MaxScale = 16

// Image renders the display in the palette colours, upscaled by the given
// factor using nearest neighbour sampling. The scale is clamped into 1..MaxScale.
func Image(display chip8.Display, pal palette.Palette, scale int) *image.RGBA {
	scale = min(max(scale, 1), MaxScale)

	src := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	for y := range chip8.Height {
		for x := range chip8.Width {
			src.SetRGBA(x, y, pal.Color(display.Pixel(x, y)))
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, chip8.Width*scale, chip8.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Save writes the rendered display as PNG file.
func Save(path string, display chip8.Display, pal palette.Palette, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot file %s: %w", path, err)
	}

	if err := png.Encode(file, Image(display, pal, scale)); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing screenshot file: %w", err)
	}
	return nil
}

// DefaultName returns the file name used for interactively requested screenshots.
func DefaultName(now time.Time) string {
	return fmt.Sprintf("chip8-%s.png", now.Format("20060102-150405"))
}
