//go:build !libretro

package standalone

import (
	"image"

	"github.com/bji/libretromame/frame"
)

// Framebuffer holds the latest delivered frame as tightly packed RGBA for
// drawing and screenshots. The session delivers frames while the ebiten
// goroutine is blocked in AdvanceFrame, so no lock is needed.
type Framebuffer struct {
	pixels []byte
	width  int
	height int
	frames uint64
}

// NewFramebuffer creates a framebuffer large enough for any frame the
// session can deliver.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{
		pixels: make([]byte, frame.MaxPixels*4),
	}
}

// Store converts an RGB565 frame. pitch is in bytes. Frames that do not
// fit, or whose source is shorter than width, height and pitch imply,
// are ignored.
func (f *Framebuffer) Store(src []uint16, width, height, pitch int) {
	if width <= 0 || height <= 0 || width*height > frame.MaxPixels {
		return
	}
	rowPixels := pitch / 2
	if rowPixels < width || len(src) < rowPixels*(height-1)+width {
		return
	}
	for y := 0; y < height; y++ {
		row := src[y*rowPixels : y*rowPixels+width]
		dst := f.pixels[y*width*4 : (y+1)*width*4]
		for x, p := range row {
			r, g, b := rgb565ToRGB(p)
			dst[x*4+0] = r
			dst[x*4+1] = g
			dst[x*4+2] = b
			dst[x*4+3] = 0xFF
		}
	}
	f.width = width
	f.height = height
	f.frames++
}

// Pixels returns the RGBA bytes of the last frame, width*4 bytes per row.
func (f *Framebuffer) Pixels() []byte {
	return f.pixels[:f.width*f.height*4]
}

// Size returns the dimensions of the last frame, zero before the first.
func (f *Framebuffer) Size() (width, height int) {
	return f.width, f.height
}

// Frames returns the number of frames stored.
func (f *Framebuffer) Frames() uint64 {
	return f.frames
}

// Image returns a copy of the last frame, or nil before the first.
func (f *Framebuffer) Image() *image.RGBA {
	if f.width == 0 || f.height == 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.Pixels())
	return img
}

// rgb565ToRGB expands a 16-bit pixel, replicating high bits into the low
// ones so full intensity maps to 0xFF.
func rgb565ToRGB(p uint16) (r, g, b uint8) {
	r5 := uint8(p >> 11 & 0x1F)
	g6 := uint8(p >> 5 & 0x3F)
	b5 := uint8(p & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}
