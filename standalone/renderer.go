//go:build !libretro

package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// FramebufferRenderer owns the ebiten offscreen image and draws frames
// scaled to the window.
type FramebufferRenderer struct {
	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions
}

// NewFramebufferRenderer creates a renderer.
func NewFramebufferRenderer() *FramebufferRenderer {
	return &FramebufferRenderer{}
}

// DrawFramebuffer renders tightly packed RGBA pixels to the screen with
// aspect-ratio-preserving scaling.
func (r *FramebufferRenderer) DrawFramebuffer(screen *ebiten.Image, pixels []byte, width, height int) {
	if width == 0 || height == 0 {
		return
	}
	if len(pixels) < width*height*4 {
		return
	}

	if r.offscreen == nil || r.offscreen.Bounds().Dx() != width || r.offscreen.Bounds().Dy() != height {
		if r.offscreen != nil {
			r.offscreen.Deallocate()
		}
		r.offscreen = ebiten.NewImage(width, height)
	}
	r.offscreen.WritePixels(pixels[:width*height*4])

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := fitScale(screenW, screenH, width, height)

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(scale, scale)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(r.offscreen, &r.drawOpts)
}

// fitScale returns the largest uniform scale that fits a native frame in
// the screen, and the offsets that center it.
func fitScale(screenW, screenH, nativeW, nativeH int) (scale, offsetX, offsetY float64) {
	scaleX := float64(screenW) / float64(nativeW)
	scaleY := float64(screenH) / float64(nativeH)
	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX = (float64(screenW) - float64(nativeW)*scale) / 2
	offsetY = (float64(screenH) - float64(nativeH)*scale) / 2
	return scale, offsetX, offsetY
}
