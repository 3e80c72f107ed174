package webp

// #include "safewebp.h"
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/rs/zerolog/log"
)

// defaultFrameDuration closes the last frame when no interval between frames is known.
const defaultFrameDuration int32 = 100

type animState int

const (
	animAccumulating animState = iota
	animAssembled
	animFailed
	animClosed
)

// AnimEncoderOptions tunes the native animation encoder. Zero values keep
// libwebp's defaults.
type AnimEncoderOptions struct {
	// MinimizeSize makes the encoder try harder to shrink the output (slower).
	MinimizeSize bool
	// AllowMixed lets the encoder pick lossy or lossless per frame.
	AllowMixed bool
	// KMin and KMax bound the distance between key frames.
	KMin int
	KMax int
}

// AnimEncoder accumulates frames on a fixed canvas and assembles them into
// one animated WebP. Frames are submitted to the native encoder as they are
// added; loop count and background colour are attached when Encode runs.
//
// The native context is released exactly once: by Encode, whatever its outcome,
// or by Close for an encoder that is abandoned.
type AnimEncoder struct {
	noCopy noCopy

	enc     *C.WebPAnimEncoder
	cleanup runtime.Cleanup
	state   animState

	width  uint32
	height uint32
	config *EncodeConfig

	bgcolor   uint32
	loopCount int32

	frames        int
	lastTimestamp int32
	lastInterval  int32
}

// NewAnimEncoder creates an encoder for a width x height canvas. config is the
// default used for frames that carry none; it is validated immediately.
func NewAnimEncoder(width, height uint32, config *EncodeConfig) (*AnimEncoder, error) {
	return NewAnimEncoderWithOptions(width, height, config, AnimEncoderOptions{})
}

// NewAnimEncoderWithOptions is NewAnimEncoder with native encoder options.
func NewAnimEncoderWithOptions(width, height uint32, config *EncodeConfig, options AnimEncoderOptions) (*AnimEncoder, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var opts C.WebPAnimEncoderOptions
	if C.WebPAnimEncoderOptionsInit(&opts) == 0 {
		return nil, fmt.Errorf("%w: options init failed", ErrEncoderInit)
	}
	opts.minimize_size = cBool(options.MinimizeSize)
	opts.allow_mixed = cBool(options.AllowMixed)
	if options.KMin > 0 || options.KMax > 0 {
		opts.kmin = C.int(options.KMin)
		opts.kmax = C.int(options.KMax)
	}

	enc := C.WebPAnimEncoderNew(C.int(width), C.int(height), &opts)
	if enc == nil {
		return nil, ErrEncoderInit
	}

	e := &AnimEncoder{enc: enc, width: width, height: height, config: config}
	e.cleanup = runtime.AddCleanup(e, func(p *C.WebPAnimEncoder) {
		C.WebPAnimEncoderDelete(p)
	}, enc)

	log.Debug().Uint32("width", width).Uint32("height", height).Bool("lossless", config.Lossless).Msg("Animation encoder created")
	return e, nil
}

// SetBackgroundColor sets the canvas background from [R, G, B, A]. The value
// is packed as (A<<24)|(B<<16)|(G<<8)|R.
func (e *AnimEncoder) SetBackgroundColor(rgba [4]uint8) {
	e.bgcolor = PackBackgroundColor(rgba)
}

// PackBackgroundColor packs [R, G, B, A] as (A<<24)|(B<<16)|(G<<8)|R.
func PackBackgroundColor(rgba [4]uint8) uint32 {
	return uint32(rgba[3])<<24 | uint32(rgba[2])<<16 | uint32(rgba[1])<<8 | uint32(rgba[0])
}

// SetLoopCount sets how many times the animation plays; 0 loops forever.
func (e *AnimEncoder) SetLoopCount(loopCount int32) {
	e.loopCount = loopCount
}

func (e *AnimEncoder) BackgroundColor() uint32 { return e.bgcolor }
func (e *AnimEncoder) LoopCount() int32        { return e.loopCount }
func (e *AnimEncoder) FrameCount() int         { return e.frames }
func (e *AnimEncoder) Width() uint32           { return e.width }
func (e *AnimEncoder) Height() uint32          { return e.height }

// AddFrame imports frame at canvas size and submits it with its timestamp.
// Frames must be added in non-decreasing timestamp order.
func (e *AnimEncoder) AddFrame(frame *AnimFrame) error {
	if e.state != animAccumulating {
		return ErrEncoderFinished
	}

	config := frame.config
	if config == nil {
		config = e.config
	}
	native, err := config.native()
	if err != nil {
		return fmt.Errorf("frame %d: %w", e.frames, err)
	}

	pic, err := newPicture(frame.buf, e.width, e.height)
	if err != nil {
		return fmt.Errorf("frame %d: %w", e.frames, err)
	}
	defer pic.close()

	if C.WebPAnimEncoderAdd(e.enc, pic.c, C.int(frame.timestamp), &native) == 0 {
		if EncodingErrorCode(pic.c.error_code) != EncodingOK {
			return fmt.Errorf("frame %d: %w", e.frames, pic.err())
		}
		return fmt.Errorf("frame %d: %w", e.frames, &AnimEncoderError{Message: e.nativeError()})
	}

	if e.frames > 0 {
		e.lastInterval = frame.timestamp - e.lastTimestamp
	}
	e.lastTimestamp = frame.timestamp
	e.frames++

	log.Trace().Int("frame", e.frames).Int32("timestamp_ms", frame.timestamp).Msg("Frame added to animation")
	return nil
}

// Encode assembles the frames and attaches the loop count and background
// colour. It is terminal: the native encoder is released whatever the outcome.
func (e *AnimEncoder) Encode() (*Memory, error) {
	if e.state != animAccumulating {
		return nil, ErrEncoderFinished
	}
	defer e.release()

	if e.frames == 0 {
		e.state = animFailed
		return nil, ErrNoFrames
	}

	raw, err := e.assemble()
	if err != nil {
		e.state = animFailed
		return nil, err
	}
	defer raw.close()

	mem, err := raw.mux(e.bgcolor, e.loopCount)
	if err != nil {
		e.state = animFailed
		return nil, err
	}

	e.state = animAssembled
	log.Debug().Int("frames", e.frames).Int("size", mem.Len()).Int32("loop_count", e.loopCount).Msg("Animation encoded")
	return mem, nil
}

// Close releases an encoder that will not be encoded.
func (e *AnimEncoder) Close() error {
	if e.state == animAccumulating {
		e.state = animClosed
	}
	e.release()
	return nil
}

func (e *AnimEncoder) release() {
	if e.enc == nil {
		return
	}
	e.cleanup.Stop()
	C.WebPAnimEncoderDelete(e.enc)
	e.enc = nil
}

func (e *AnimEncoder) nativeError() string {
	msg := C.WebPAnimEncoderGetError(e.enc)
	if msg == nil {
		return "unknown error"
	}
	if s := C.GoString(msg); s != "" {
		return s
	}
	return "unknown error"
}

// assemble is the first stage: close the last frame and let the native
// encoder produce a container without animation parameters.
func (e *AnimEncoder) assemble() (*rawAnimation, error) {
	closing := e.lastInterval
	if closing <= 0 {
		closing = defaultFrameDuration
	}
	if e.lastTimestamp > math.MaxInt32-closing {
		return nil, fmt.Errorf("%w: last frame at %d ms held for %d ms", ErrTimestampOverflow, e.lastTimestamp, closing)
	}
	if C.WebPAnimEncoderAdd(e.enc, nil, C.int(e.lastTimestamp+closing), nil) == 0 {
		return nil, &AnimEncoderError{Message: e.nativeError()}
	}

	raw := &rawAnimation{}
	C.WebPDataInit(&raw.data)
	if C.WebPAnimEncoderAssemble(e.enc, &raw.data) == 0 {
		raw.close()
		return nil, &AnimEncoderError{Message: e.nativeError()}
	}
	return raw, nil
}

// rawAnimation is an assembled container that has not been given its
// animation parameters yet.
type rawAnimation struct {
	data C.WebPData
}

// mux is the second stage: remux the container with bgcolor and loopCount.
func (r *rawAnimation) mux(bgcolor uint32, loopCount int32) (*Memory, error) {
	mux := C.WebPMuxCreate(&r.data, 1)
	if mux == nil {
		return nil, &MuxError{Code: muxCreateFailure}
	}
	defer C.WebPMuxDelete(mux)

	params := C.WebPMuxAnimParams{bgcolor: C.uint32_t(bgcolor), loop_count: C.int(loopCount)}
	if code := C.WebPMuxSetAnimationParams(mux, &params); code != C.WEBP_MUX_OK {
		return nil, &MuxError{Code: MuxErrorCode(code)}
	}

	var out C.WebPData
	C.WebPDataInit(&out)
	if code := C.WebPMuxAssemble(mux, &out); code != C.WEBP_MUX_OK {
		C.WebPDataClear(&out)
		return nil, &MuxError{Code: MuxErrorCode(code)}
	}
	return newMemory(unsafe.Pointer(out.bytes), int(out.size)), nil
}

// close frees the assembled bytes. Safe to call more than once.
func (r *rawAnimation) close() {
	if r.data.bytes == nil {
		return
	}
	C.WebPDataClear(&r.data)
}
