package webp

import (
	"math"
	"math/bits"
)

// pixelBuffer is a caller-owned pixel slice whose length has been checked
// against its geometry. It can only be obtained from checkBuffer.
type pixelBuffer struct {
	data   []byte
	layout PixelLayout
	width  uint32
	height uint32
}

// satMul multiplies without wrapping, clamping to math.MaxUint64.
func satMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func expectedLen(layout PixelLayout, width, height uint32) uint64 {
	return satMul(satMul(uint64(width), uint64(height)), uint64(layout.BytesPerPixel()))
}

// checkBuffer is the only way to build a pixelBuffer. The length check runs
// first so that a short buffer is always reported as ErrBufferTooSmall.
func checkBuffer(data []byte, layout PixelLayout, width, height uint32) (pixelBuffer, error) {
	if layout != RGB && layout != RGBA {
		return pixelBuffer{}, ErrUnsupportedLayout
	}
	if need := expectedLen(layout, width, height); uint64(len(data)) < need {
		return pixelBuffer{}, &BufferTooSmallError{Expected: need, Actual: len(data)}
	}
	if err := checkDimensions(width, height); err != nil {
		return pixelBuffer{}, err
	}
	return pixelBuffer{data: data, layout: layout, width: width, height: height}, nil
}

func checkDimensions(width, height uint32) error {
	if width == 0 || height == 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		return ErrInvalidDimensions
	}
	return nil
}

// covers reports whether the buffer can be read as a width x height image in
// its own layout. Used when a frame is imported at canvas size.
func (b pixelBuffer) covers(width, height uint32) error {
	_, err := checkBuffer(b.data, b.layout, width, height)
	return err
}

func (b pixelBuffer) stride(width uint32) int {
	return int(width) * b.layout.BytesPerPixel()
}
