package frame

// packRGB565 reduces a 0x??RRGGBB value to 16-bit RGB565, dropping the top
// byte.
func packRGB565(rgb uint32) uint16 {
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF
	return uint16((r>>3)<<11 | (g>>2)<<5 | b>>3)
}

// convertPalette16 writes width*height destination pixels by looking each
// source index up in palette. Indices outside the palette become black.
func convertPalette16(dst []uint16, src []uint16, palette []uint32, width, height, rowPixels int) {
	skip := rowPixels - width
	si, di := 0, 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := int(src[si])
			if idx < len(palette) {
				dst[di] = packRGB565(palette[idx])
			} else {
				dst[di] = 0
			}
			si++
			di++
		}
		si += skip
	}
}

// convertRGB32 writes width*height destination pixels from packed
// 0xAARRGGBB source values. Alpha is discarded.
func convertRGB32(dst []uint16, src []uint32, width, height, rowPixels int) {
	skip := rowPixels - width
	si, di := 0, 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst[di] = packRGB565(src[si])
			si++
			di++
		}
		si += skip
	}
}
