// Package frame converts engine render output into the fixed RGB565 video
// format and interleaved audio the driver expects.
//
// A Buffer is a single slot. The worker writes it while producing a frame
// and the driver's callbacks consume it before the worker is released
// again, so it carries no lock of its own.
package frame

import (
	emucore "github.com/bji/libretromame/api"
)

// Buffer capacity. Screens larger than MaxPixels are dropped.
const (
	MaxWidth  = 1600
	MaxHeight = 1200
	MaxPixels = MaxWidth * MaxHeight
)

// BytesPerPixel is the size of one RGB565 destination pixel.
const BytesPerPixel = 2

// Buffer holds the most recently converted video frame and the last known
// video and audio metadata.
type Buffer struct {
	pixels     []uint16
	width      int
	height     int
	sampleRate int
}

// NewBuffer allocates a buffer with MaxPixels capacity.
func NewBuffer() *Buffer {
	return &Buffer{pixels: make([]uint16, MaxPixels)}
}

// Convert finds the first screen quad in list and converts its texture
// into the buffer. It returns false, leaving the buffer untouched, when no
// quad qualifies, the texture exceeds capacity, or its format is not
// supported.
func (b *Buffer) Convert(list *emucore.RenderPrimitive) bool {
	prim := FirstScreenQuad(list)
	if prim == nil {
		return false
	}
	tex := &prim.Texture
	if tex.Width <= 0 || tex.Height <= 0 {
		return false
	}
	if tex.Width > len(b.pixels) || tex.Height > len(b.pixels)/tex.Width {
		return false
	}
	rowPixels := tex.RowPixels
	if rowPixels < tex.Width {
		rowPixels = tex.Width
	}

	switch tex.Format {
	case emucore.TextureFormatPalette16, emucore.TextureFormatPaletteA16:
		if !sourceCovers(len(tex.Indexed), tex.Width, tex.Height, rowPixels) {
			return false
		}
		convertPalette16(b.pixels, tex.Indexed, tex.Palette, tex.Width, tex.Height, rowPixels)
	case emucore.TextureFormatRGB32, emucore.TextureFormatARGB32:
		if !sourceCovers(len(tex.Packed), tex.Width, tex.Height, rowPixels) {
			return false
		}
		convertRGB32(b.pixels, tex.Packed, tex.Width, tex.Height, rowPixels)
	default:
		// YUY16 and anything unrecognized.
		return false
	}

	b.width = tex.Width
	b.height = tex.Height
	return true
}

// sourceCovers reports whether a source of n pixels holds height rows of
// width pixels spaced rowPixels apart, without overflowing.
func sourceCovers(n, width, height, rowPixels int) bool {
	if n < width {
		return false
	}
	return height == 1 || rowPixels <= (n-width)/(height-1)
}

// FirstScreenQuad returns the first quad flagged as a screen texture, or
// nil. Vector primitives and additional screens are ignored.
func FirstScreenQuad(list *emucore.RenderPrimitive) *emucore.RenderPrimitive {
	for p := list; p != nil; p = p.Next {
		if p.IsScreenQuad() {
			return p
		}
	}
	return nil
}

// Pixels returns the visible pixels of the last converted frame. The slice
// aliases the buffer and is only valid until the next Convert.
func (b *Buffer) Pixels() []uint16 {
	return b.pixels[:b.width*b.height]
}

// Width returns the width of the last converted frame.
func (b *Buffer) Width() int { return b.width }

// Height returns the height of the last converted frame.
func (b *Buffer) Height() int { return b.height }

// Pitch returns the destination row size in bytes.
func (b *Buffer) Pitch() int { return b.width * BytesPerPixel }

// SampleRate returns the sample rate of the last audio batch.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// SetSampleRate records the sample rate of an audio batch. A change is
// informational only; nothing is resampled.
func (b *Buffer) SetSampleRate(rate int) { b.sampleRate = rate }

// Reset zeros the cached video and audio metadata. Pixel contents are
// left as they are.
func (b *Buffer) Reset() {
	b.width = 0
	b.height = 0
	b.sampleRate = 0
}
