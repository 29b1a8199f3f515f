//go:build !libretro

package standalone

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 0xFF, A: 0xFF})
	return img
}

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveScreenshot(dir, "pacman", testImage(), 1, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("SaveScreenshot failed: %v", err)
	}
	if want := filepath.Join(dir, "pacman", "1700000000.png"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	r, _, _, _ := decoded.At(1, 2).RGBA()
	if r != 0xFFFF {
		t.Errorf("red channel = %#x", r)
	}
}

func TestSaveScreenshot_NoFrame(t *testing.T) {
	_, err := SaveScreenshot(t.TempDir(), "pacman", nil, 1, time.Now())
	if !errors.Is(err, errNoFrame) {
		t.Fatalf("error = %v, want errNoFrame", err)
	}
}

func TestEncodePNG_Scaled(t *testing.T) {
	data, err := encodePNG(testImage(), 3)
	if err != nil {
		t.Fatalf("encodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 12 || decoded.Bounds().Dy() != 9 {
		t.Fatalf("bounds = %v, want 12x9", decoded.Bounds())
	}
	// Source pixel (1,2) covers (3..5, 6..8) after scaling.
	for _, p := range []image.Point{{3, 6}, {5, 8}} {
		if r, _, _, _ := decoded.At(p.X, p.Y).RGBA(); r != 0xFFFF {
			t.Errorf("pixel %v red = %#x", p, r)
		}
	}
	if r, _, _, _ := decoded.At(2, 6).RGBA(); r != 0 {
		t.Errorf("pixel (2,6) red = %#x, want 0", r)
	}
}

func TestScaleImage_Identity(t *testing.T) {
	img := testImage()
	for _, f := range []int{-1, 0, 1} {
		if scaleImage(img, f) != image.Image(img) {
			t.Errorf("factor %d should return the source image", f)
		}
	}
}
