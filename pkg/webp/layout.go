package webp

// PixelLayout describes how raw pixel bytes are laid out in memory.
// Both layouts are row-major without padding; RGBA uses straight (not premultiplied) alpha.
type PixelLayout uint8

const (
	RGB PixelLayout = iota
	RGBA
)

// BytesPerPixel returns 3 for RGB and 4 for RGBA.
func (l PixelLayout) BytesPerPixel() int {
	if l == RGBA {
		return 4
	}
	return 3
}

// HasAlpha reports whether the layout carries an alpha channel.
func (l PixelLayout) HasAlpha() bool {
	return l == RGBA
}

func (l PixelLayout) String() string {
	switch l {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return "Unknown"
	}
}

func layoutFor(hasAlpha bool) PixelLayout {
	if hasAlpha {
		return RGBA
	}
	return RGB
}
