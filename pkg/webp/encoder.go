package webp

// #include "safewebp.h"
import "C"

import (
	"unsafe"

	"github.com/rs/zerolog/log"
)

// Encoder encodes a single length-checked pixel buffer. The pixel slice is
// borrowed: it must not be modified while an encode call is running.
type Encoder struct {
	buf pixelBuffer
}

// NewEncoder validates image against width, height and layout.
func NewEncoder(image []byte, layout PixelLayout, width, height uint32) (*Encoder, error) {
	buf, err := checkBuffer(image, layout, width, height)
	if err != nil {
		return nil, err
	}
	return &Encoder{buf: buf}, nil
}

// FromRGB creates an encoder for RGB pixel data.
func FromRGB(image []byte, width, height uint32) (*Encoder, error) {
	return NewEncoder(image, RGB, width, height)
}

// FromRGBA creates an encoder for straight-alpha RGBA pixel data.
func FromRGBA(image []byte, width, height uint32) (*Encoder, error) {
	return NewEncoder(image, RGBA, width, height)
}

func (e *Encoder) Width() uint32       { return e.buf.width }
func (e *Encoder) Height() uint32      { return e.buf.height }
func (e *Encoder) Layout() PixelLayout { return e.buf.layout }

// Encode encodes lossily. quality must be between 0 and 100 inclusive.
func (e *Encoder) Encode(quality float32) (*Memory, error) {
	if !(quality >= 0 && quality <= 100) {
		return nil, ErrInvalidQuality
	}
	var out *C.uint8_t
	w, h, stride := C.int(e.buf.width), C.int(e.buf.height), C.int(e.buf.stride(e.buf.width))

	var size C.size_t
	if e.buf.layout == RGBA {
		size = C.WebPEncodeRGBA(cBytes(e.buf.data), w, h, stride, C.float(quality), &out)
	} else {
		size = C.WebPEncodeRGB(cBytes(e.buf.data), w, h, stride, C.float(quality), &out)
	}
	return simpleResult(out, size)
}

// EncodeLossless encodes losslessly with libwebp's default effort.
func (e *Encoder) EncodeLossless() (*Memory, error) {
	var out *C.uint8_t
	w, h, stride := C.int(e.buf.width), C.int(e.buf.height), C.int(e.buf.stride(e.buf.width))

	var size C.size_t
	if e.buf.layout == RGBA {
		size = C.WebPEncodeLosslessRGBA(cBytes(e.buf.data), w, h, stride, &out)
	} else {
		size = C.WebPEncodeLosslessRGB(cBytes(e.buf.data), w, h, stride, &out)
	}
	return simpleResult(out, size)
}

// The simple API reports failure as a zero size and gives no reason.
func simpleResult(out *C.uint8_t, size C.size_t) (*Memory, error) {
	if size == 0 {
		if out != nil {
			C.WebPFree(unsafe.Pointer(out))
		}
		return nil, &EncodingError{Code: EncodingLast}
	}
	return newMemory(unsafe.Pointer(out), int(size)), nil
}

// EncodeSimple builds a default configuration from lossless and quality and
// encodes with it.
func (e *Encoder) EncodeSimple(lossless bool, quality float32) (*Memory, error) {
	return e.EncodeAdvanced(NewEncodeConfig(lossless, quality))
}

// EncodeAdvanced encodes with a full configuration. The configuration is
// validated before any native picture is allocated.
func (e *Encoder) EncodeAdvanced(config *EncodeConfig) (*Memory, error) {
	native, err := config.native()
	if err != nil {
		return nil, err
	}

	pic, err := newPicture(e.buf, e.buf.width, e.buf.height)
	if err != nil {
		return nil, err
	}
	defer pic.close()

	writer := C.safewebp_writer_new()
	if writer == nil {
		return nil, &EncodingError{Code: EncodingOutOfMemory}
	}

	// WebPEncode returns 0 on failure; the reason is in pic.error_code.
	if C.safewebp_encode(&native, pic.c, writer) == 0 {
		C.safewebp_writer_delete(writer, 0)
		err := pic.err()
		log.Debug().Err(err).Bool("lossless", config.Lossless).Float32("quality", config.Quality).Msg("Native encode failed")
		return nil, err
	}

	mem := newMemory(unsafe.Pointer(writer.mem), int(writer.size))
	C.safewebp_writer_delete(writer, 1)
	return mem, nil
}
