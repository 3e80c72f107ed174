package webp

// #include "safewebp.h"
import "C"

import (
	"unsafe"

	"github.com/rs/zerolog/log"
)

// Decoder decodes a single, non-animated WebP image.
type Decoder struct {
	data []byte
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Decode decodes the image into a native buffer. It returns false when the
// header does not parse, when the input is animated (use AnimDecoder), or when
// the payload is corrupt.
func (d *Decoder) Decode() (*Image, bool) {
	features, ok := GetFeatures(d.data)
	if !ok {
		return nil, false
	}
	if features.HasAnimation() {
		log.Debug().Msg("Animated input given to single image decoder")
		return nil, false
	}

	layout := layoutFor(features.HasAlpha())
	var width, height C.int
	var ptr *C.uint8_t
	if layout == RGBA {
		ptr = C.WebPDecodeRGBA(cBytes(d.data), C.size_t(len(d.data)), &width, &height)
	} else {
		ptr = C.WebPDecodeRGB(cBytes(d.data), C.size_t(len(d.data)), &width, &height)
	}
	if ptr == nil {
		return nil, false
	}

	// The length handed to Memory comes from the sniffed header; refuse to wrap
	// the buffer if the decoder disagrees about the geometry.
	if uint32(width) != features.Width() || uint32(height) != features.Height() {
		C.WebPFree(unsafe.Pointer(ptr))
		return nil, false
	}
	size := expectedLen(layout, features.Width(), features.Height())
	mem := newMemory(unsafe.Pointer(ptr), int(size))
	return &Image{data: mem, layout: layout, width: features.Width(), height: features.Height()}, true
}
