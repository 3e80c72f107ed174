package webp

// #include "safewebp.h"
import "C"

import "github.com/rs/zerolog/log"

// picture owns a C-allocated WebPPicture together with the ARGB planes libwebp
// allocates while importing pixels into it.
type picture struct {
	c *C.WebPPicture
}

// newPicture imports buf as a width x height image. The geometry may differ from
// the buffer's own (animation frames are imported at canvas size), so the buffer
// is re-checked against it before the native import reads stride*height bytes.
func newPicture(buf pixelBuffer, width, height uint32) (*picture, error) {
	if err := buf.covers(width, height); err != nil {
		return nil, err
	}

	pic := &picture{c: C.safewebp_picture_new()}
	if pic.c == nil {
		return nil, &EncodingError{Code: EncodingOutOfMemory}
	}
	if C.WebPPictureInit(pic.c) == 0 {
		pic.close()
		return nil, &EncodingError{Code: EncodingNullParameter}
	}
	pic.c.use_argb = 1
	pic.c.width = C.int(width)
	pic.c.height = C.int(height)

	var ok C.int
	stride := C.int(buf.stride(width))
	if buf.layout == RGBA {
		ok = C.WebPPictureImportRGBA(pic.c, cBytes(buf.data), stride)
	} else {
		ok = C.WebPPictureImportRGB(pic.c, cBytes(buf.data), stride)
	}
	if ok == 0 {
		err := pic.err()
		log.Debug().Uint32("width", width).Uint32("height", height).Err(err).Msg("Picture import failed")
		pic.close()
		return nil, err
	}
	return pic, nil
}

// err returns the picture's native error code as an EncodingError.
func (p *picture) err() error {
	code := EncodingErrorCode(p.c.error_code)
	if code == EncodingOK {
		code = EncodingLast
	}
	return &EncodingError{Code: code}
}

// close releases the native picture. It is safe to call more than once.
func (p *picture) close() {
	if p == nil || p.c == nil {
		return
	}
	C.safewebp_picture_delete(p.c)
	p.c = nil
}
