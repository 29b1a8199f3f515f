//go:build !libretro

package standalone

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.design/x/clipboard"
	xdraw "golang.org/x/image/draw"
)

var errNoFrame = errors.New("no frame to capture")

// scaleImage enlarges img by an integer factor with nearest-neighbour
// sampling so pixels stay sharp. Factors below 2 return img unchanged.
func scaleImage(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	bounds := img.Bounds()
	dstRect := image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor)
	scaled := image.NewRGBA(dstRect)
	xdraw.NearestNeighbor.Scale(scaled, dstRect, img, bounds, draw.Src, nil)
	return scaled
}

// encodePNG scales img and encodes it as PNG.
func encodePNG(img image.Image, factor int) ([]byte, error) {
	if img == nil {
		return nil, errNoFrame
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaleImage(img, factor)); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveScreenshot writes img, scaled by factor, as a PNG under dir/game
// named by the Unix time. It returns the file path.
func SaveScreenshot(dir, game string, img image.Image, factor int, now time.Time) (string, error) {
	data, err := encodePNG(img, factor)
	if err != nil {
		return "", err
	}

	screenshotDir := filepath.Join(dir, game)
	if err := os.MkdirAll(screenshotDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	fullPath := filepath.Join(screenshotDir, fmt.Sprintf("%d.png", now.Unix()))
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return fullPath, nil
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// CopyScreenshot places img, scaled by factor, on the system clipboard
// as a PNG.
func CopyScreenshot(img image.Image, factor int) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	data, err := encodePNG(img, factor)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
