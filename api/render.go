package emucore

// PrimitiveType discriminates render primitives.
type PrimitiveType int

const (
	PrimitiveLine PrimitiveType = iota
	PrimitiveQuad
)

// Render primitive flags.
const (
	// FlagScreenTexture marks a quad whose texture is an emulated screen.
	FlagScreenTexture uint32 = 1 << iota
)

// TextureFormat identifies the pixel layout of a Texture.
type TextureFormat int

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatPalette16
	TextureFormatPaletteA16
	TextureFormatRGB32
	TextureFormatARGB32
	TextureFormatYUY16
)

// String returns the name of the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatPalette16:
		return "PALETTE16"
	case TextureFormatPaletteA16:
		return "PALETTEA16"
	case TextureFormatRGB32:
		return "RGB32"
	case TextureFormatARGB32:
		return "ARGB32"
	case TextureFormatYUY16:
		return "YUY16"
	default:
		return "UNDEFINED"
	}
}

// Texture is a raster surface. Only the slice matching Format is set:
// Indexed for the palette and YUY16 formats, Packed for RGB32 and ARGB32.
// RowPixels is the source row stride in pixels and may exceed Width.
type Texture struct {
	Format    TextureFormat
	Width     int
	Height    int
	RowPixels int
	Indexed   []uint16
	Packed    []uint32
	Palette   []uint32 // 0xAARRGGBB entries
}

// RenderPrimitive is one node of the ordered list an engine produces for a
// frame.
type RenderPrimitive struct {
	Type    PrimitiveType
	Flags   uint32
	Texture Texture
	Next    *RenderPrimitive
}

// IsScreenQuad reports whether p is a quad carrying a screen texture.
func (p *RenderPrimitive) IsScreenQuad() bool {
	return p.Type == PrimitiveQuad && p.Flags&FlagScreenTexture != 0
}
