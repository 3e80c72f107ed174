package webp

// #include "safewebp.h"
import "C"

import (
	"bytes"
	"cmp"
	"iter"
	"runtime"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// AnimDecoder decodes every frame of an animated (or still) WebP.
type AnimDecoder struct {
	data []byte
}

// NewAnimDecoder borrows data for the duration of Decode.
func NewAnimDecoder(data []byte) *AnimDecoder {
	return &AnimDecoder{data: data}
}

// layoutForColorMode maps a native WEBP_CSP_MODE to a pixel layout.
func layoutForColorMode(mode int) (PixelLayout, bool) {
	switch mode {
	case int(C.MODE_RGBA):
		return RGBA, true
	case int(C.MODE_RGB):
		return RGB, true
	default:
		return 0, false
	}
}

// Decode reads all frames in native order. Each frame is a full canvas
// reconstruction copied out of decoder-owned memory.
func (d *AnimDecoder) Decode() (*DecodedAnimation, error) {
	var opts C.WebPAnimDecoderOptions
	if C.WebPAnimDecoderOptionsInit(&opts) == 0 {
		return nil, &DecodeError{Kind: DecodeOptionInit}
	}
	// Init picks the output mode; frames are only copied out in a layout we
	// can describe.
	layout, ok := layoutForColorMode(int(opts.color_mode))
	if !ok {
		return nil, &DecodeError{Kind: DecodeUnsupportedColorMode}
	}
	opts.use_threads = 0

	if len(d.data) == 0 {
		return nil, &DecodeError{Kind: DecodeNullDecoder}
	}

	var pinner runtime.Pinner
	pinner.Pin(&d.data[0])
	defer pinner.Unpin()

	input := C.WebPData{bytes: cBytes(d.data), size: C.size_t(len(d.data))}
	dec := C.WebPAnimDecoderNew(&input, &opts)
	if dec == nil {
		return nil, &DecodeError{Kind: DecodeNullDecoder}
	}
	defer func() {
		C.WebPAnimDecoderReset(dec)
		C.WebPAnimDecoderDelete(dec)
	}()

	var info C.WebPAnimInfo
	if C.WebPAnimDecoderGetInfo(dec, &info) == 0 {
		return nil, &DecodeError{Kind: DecodeNullInfo}
	}

	anim := &DecodedAnimation{
		LoopCount:       uint32(info.loop_count),
		BackgroundColor: uint32(info.bgcolor),
		CanvasWidth:     uint32(info.canvas_width),
		CanvasHeight:    uint32(info.canvas_height),
		layout:          layout,
		frames:          make([]decodedFrame, 0, int(info.frame_count)),
	}
	frameLen := expectedLen(layout, anim.CanvasWidth, anim.CanvasHeight)

	for C.WebPAnimDecoderHasMoreFrames(dec) != 0 {
		var buf *C.uint8_t
		var timestamp C.int
		if C.WebPAnimDecoderGetNext(dec, &buf, &timestamp) == 0 || buf == nil {
			log.Debug().Int("frame", len(anim.frames)).Msg("Animation frame decode failed")
			return nil, &DecodeError{Kind: DecodeFrame}
		}
		pixels := bytes.Clone(unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(frameLen)))
		anim.frames = append(anim.frames, decodedFrame{data: pixels, timestamp: int32(timestamp)})
	}

	log.Debug().Int("frames", len(anim.frames)).Uint32("width", anim.CanvasWidth).Uint32("height", anim.CanvasHeight).Msg("Animation decoded")
	return anim, nil
}

type decodedFrame struct {
	data      []byte
	timestamp int32
}

// DecodedAnimation holds Go-owned copies of every decoded frame. Timestamps
// are those reported by libwebp: the absolute time at which each frame ends.
type DecodedAnimation struct {
	LoopCount       uint32
	BackgroundColor uint32
	CanvasWidth     uint32
	CanvasHeight    uint32

	layout PixelLayout
	frames []decodedFrame
}

func (a *DecodedAnimation) Len() int            { return len(a.frames) }
func (a *DecodedAnimation) IsEmpty() bool       { return len(a.frames) == 0 }
func (a *DecodedAnimation) Layout() PixelLayout { return a.layout }

// HasAnimation reports whether more than one frame was decoded.
func (a *DecodedAnimation) HasAnimation() bool { return len(a.frames) > 1 }

func (a *DecodedAnimation) frame(i int) *AnimFrame {
	f := a.frames[i]
	return &AnimFrame{
		buf:       pixelBuffer{data: f.data, layout: a.layout, width: a.CanvasWidth, height: a.CanvasHeight},
		timestamp: f.timestamp,
	}
}

// Frame returns frame i as a view over the animation's pixels.
func (a *DecodedAnimation) Frame(i int) (*AnimFrame, bool) {
	if i < 0 || i >= len(a.frames) {
		return nil, false
	}
	return a.frame(i), true
}

// Frames returns frames in [from, to).
func (a *DecodedAnimation) Frames(from, to int) ([]*AnimFrame, bool) {
	if from < 0 || to > len(a.frames) || from > to {
		return nil, false
	}
	out := make([]*AnimFrame, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, a.frame(i))
	}
	return out, true
}

// All iterates over every frame with its index.
func (a *DecodedAnimation) All() iter.Seq2[int, *AnimFrame] {
	return func(yield func(int, *AnimFrame) bool) {
		for i := range a.frames {
			if !yield(i, a.frame(i)) {
				return
			}
		}
	}
}

// SortByTimestamp orders frames by ascending timestamp, keeping the relative
// order of equal timestamps.
func (a *DecodedAnimation) SortByTimestamp() {
	slices.SortStableFunc(a.frames, func(x, y decodedFrame) int {
		return cmp.Compare(x.timestamp, y.timestamp)
	})
}

// Durations derives how long each frame is shown from consecutive timestamps.
func (a *DecodedAnimation) Durations() []int32 {
	out := make([]int32, len(a.frames))
	var prev int32
	for i, f := range a.frames {
		out[i] = f.timestamp - prev
		prev = f.timestamp
	}
	return out
}
