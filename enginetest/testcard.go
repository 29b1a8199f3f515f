package enginetest

import emucore "github.com/bji/libretromame/api"

// barColors are the classic eight-bar colour test pattern.
var barColors = [8]uint32{
	0xFFFFFFFF, 0xFFFFFF00, 0xFF00FFFF, 0xFF00FF00,
	0xFFFF00FF, 0xFFFF0000, 0xFF0000FF, 0xFF000000,
}

// TestCard returns a single screen quad of RGB32 colour bars. A marker
// column moves one pixel per frame so consecutive frames differ.
func TestCard(width, height, frame int) *emucore.RenderPrimitive {
	packed := make([]uint32, width*height)
	marker := frame % width
	for y := 0; y < height; y++ {
		row := packed[y*width : (y+1)*width]
		for x := range row {
			row[x] = barColors[x*len(barColors)/width]
		}
		row[marker] = 0xFF808080
	}
	return &emucore.RenderPrimitive{
		Type:  emucore.PrimitiveQuad,
		Flags: emucore.FlagScreenTexture,
		Texture: emucore.Texture{
			Format:    emucore.TextureFormatRGB32,
			Width:     width,
			Height:    height,
			RowPixels: width,
			Packed:    packed,
		},
	}
}

// PaletteCard returns a screen quad in PALETTE16 format whose every pixel
// is index frame%len(palette).
func PaletteCard(width, height, frame int, palette []uint32) *emucore.RenderPrimitive {
	indexed := make([]uint16, width*height)
	idx := uint16(frame % len(palette))
	for i := range indexed {
		indexed[i] = idx
	}
	return &emucore.RenderPrimitive{
		Type:  emucore.PrimitiveQuad,
		Flags: emucore.FlagScreenTexture,
		Texture: emucore.Texture{
			Format:    emucore.TextureFormatPalette16,
			Width:     width,
			Height:    height,
			RowPixels: width,
			Indexed:   indexed,
			Palette:   palette,
		},
	}
}

// demoPalette is an 8-colour 0xAARRGGBB palette for the palette demo.
var demoPalette = []uint32{
	0xFF000000, 0xFFFF0000, 0xFF00FF00, 0xFF0000FF,
	0xFFFFFF00, 0xFFFF00FF, 0xFF00FFFF, 0xFFFFFFFF,
}

// DemoGames returns a small set of games for running a host without a
// real engine: a landscape RGB32 test card, a portrait one, and a
// palette-indexed screen that cycles colours.
func DemoGames() []Game {
	return []Game{
		{Name: "testcard", FullName: "Test Card", Width: 320, Height: 240},
		{Name: "testcardv", FullName: "Test Card (Vertical)", Width: 224, Height: 288, RefreshRateHz: 60.606060},
		{
			Name:     "palette",
			FullName: "Palette Cycle",
			Width:    256,
			Height:   224,
			Video: func(frame int) *emucore.RenderPrimitive {
				return PaletteCard(256, 224, frame/30, demoPalette)
			},
		},
	}
}
