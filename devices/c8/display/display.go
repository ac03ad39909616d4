// Package display implements the monochrome framebuffer the CPU draws sprites into.
package display

import "fmt"

// Display dimensions and pixel values.
const (
	Width  = 64         // Display width in pixels.
	Height = 32         // Display height in pixels.
	On     = 0xffffffff // Opaque white.
	Off    = 0x00000000 // Transparent black.
)

// Framebuffer holds the pixel grid in row-major order.
type Framebuffer struct {
	pixels [Width * Height]uint32
}

// New creates a new, cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// InBounds returns true if the given coordinate lies on the display.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// SetPixel sets the pixel at the given coordinate.
// It panics if the coordinate lies outside the display.
func (fb *Framebuffer) SetPixel(x, y int, v uint32) {
	fb.pixels[index(x, y)] = v
}

// Pixel returns the pixel at the given coordinate.
// It panics if the coordinate lies outside the display.
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	return fb.pixels[index(x, y)]
}

// Clear turns all pixels off.
func (fb *Framebuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = Off
	}
}

// Raw returns the full pixel grid. The slice refers to the framebuffer's own
// storage and must not be modified by the caller.
func (fb *Framebuffer) Raw() []uint32 {
	return fb.pixels[:]
}

// Pitch returns the size of a single row in bytes.
func (fb *Framebuffer) Pitch() int {
	return Width * 4
}

func index(x, y int) int {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("display: pixel (%d, %d) out of range", x, y))
	}
	return y*Width + x
}
