package webp

// #include "safewebp.h"
import "C"

import "fmt"

// BitstreamFormat is the compression used by a WebP bitstream.
type BitstreamFormat int

const (
	FormatUndefined BitstreamFormat = iota
	FormatLossy
	FormatLossless
	// FormatUnknown marks a native value outside the known range.
	FormatUnknown
)

func (f BitstreamFormat) String() string {
	switch f {
	case FormatUndefined:
		return "Undefined"
	case FormatLossy:
		return "Lossy"
	case FormatLossless:
		return "Lossless"
	default:
		return "Error"
	}
}

// BitstreamFeatures is the header information of a WebP bitstream.
type BitstreamFeatures struct {
	width        uint32
	height       uint32
	hasAlpha     bool
	hasAnimation bool
	format       BitstreamFormat
}

// GetFeatures parses the bitstream header without decoding pixels. It returns
// false when data is not a valid WebP header.
func GetFeatures(data []byte) (BitstreamFeatures, bool) {
	if len(data) == 0 {
		return BitstreamFeatures{}, false
	}
	var f C.WebPBitstreamFeatures
	if C.WebPGetFeatures(cBytes(data), C.size_t(len(data)), &f) != C.VP8_STATUS_OK {
		return BitstreamFeatures{}, false
	}
	if f.width <= 0 || f.height <= 0 {
		return BitstreamFeatures{}, false
	}

	format := BitstreamFormat(f.format)
	if format < FormatUndefined || format > FormatLossless {
		format = FormatUnknown
	}
	return BitstreamFeatures{
		width:        uint32(f.width),
		height:       uint32(f.height),
		hasAlpha:     f.has_alpha != 0,
		hasAnimation: f.has_animation != 0,
		format:       format,
	}, true
}

func (f BitstreamFeatures) Width() uint32           { return f.width }
func (f BitstreamFeatures) Height() uint32          { return f.height }
func (f BitstreamFeatures) HasAlpha() bool          { return f.hasAlpha }
func (f BitstreamFeatures) HasAnimation() bool      { return f.hasAnimation }
func (f BitstreamFeatures) Format() BitstreamFormat { return f.format }

func (f BitstreamFeatures) String() string {
	return fmt.Sprintf("BitstreamFeatures{width: %d, height: %d, has_alpha: %t, has_animation: %t, format: %s}",
		f.width, f.height, f.hasAlpha, f.hasAnimation, f.format)
}
