package webp

import (
	"errors"
	"fmt"
)

var (
	ErrBufferTooSmall       = errors.New("webp: pixel buffer too small")
	ErrInvalidDimensions    = errors.New("webp: invalid dimensions")
	ErrUnsupportedLayout    = errors.New("webp: unsupported pixel layout")
	ErrInvalidConfiguration = errors.New("webp: invalid encoder configuration")
	ErrInvalidQuality       = fmt.Errorf("%w: quality must be between 0 and 100", ErrInvalidConfiguration)
	ErrNoFrames             = errors.New("webp: animation has no frames")
	ErrEncoderInit          = errors.New("webp: failed to create animation encoder")
	ErrEncoderFinished      = errors.New("webp: animation encoder already finished")
	ErrTimestampOverflow    = errors.New("webp: animation timestamp overflows int32")
)

// BufferTooSmallError is returned when a pixel buffer is shorter than
// width * height * bytes-per-pixel.
type BufferTooSmallError struct {
	Expected uint64
	Actual   int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("webp: pixel buffer too small: need %d bytes, got %d", e.Expected, e.Actual)
}

func (e *BufferTooSmallError) Is(target error) bool {
	return target == ErrBufferTooSmall
}

// EncodingErrorCode mirrors libwebp's WebPEncodingError.
type EncodingErrorCode int

const (
	EncodingOK EncodingErrorCode = iota
	EncodingOutOfMemory
	EncodingBitstreamOutOfMemory
	EncodingNullParameter
	EncodingInvalidConfiguration
	EncodingBadDimension
	EncodingPartition0Overflow
	EncodingPartitionOverflow
	EncodingBadWrite
	EncodingFileTooBig
	EncodingUserAbort
	EncodingLast
)

var encodingErrorNames = map[EncodingErrorCode]string{
	EncodingOK:                   "ok",
	EncodingOutOfMemory:          "out of memory",
	EncodingBitstreamOutOfMemory: "bitstream out of memory",
	EncodingNullParameter:        "null parameter",
	EncodingInvalidConfiguration: "invalid configuration",
	EncodingBadDimension:         "bad dimension",
	EncodingPartition0Overflow:   "partition0 overflow",
	EncodingPartitionOverflow:    "partition overflow",
	EncodingBadWrite:             "bad write",
	EncodingFileTooBig:           "file too big",
	EncodingUserAbort:            "user abort",
	EncodingLast:                 "unknown",
}

func (c EncodingErrorCode) String() string {
	if name, ok := encodingErrorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code %d", int(c))
}

// EncodingError carries the structured error code reported by a native picture.
type EncodingError struct {
	Code EncodingErrorCode
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("webp: encoding failed: %s", e.Code)
}

// Is lets errors.Is(err, ErrInvalidConfiguration) match configuration failures
// that were only detected by the native encoder.
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidConfiguration && e.Code == EncodingInvalidConfiguration
}

// MuxErrorCode mirrors libwebp's WebPMuxError.
type MuxErrorCode int

const (
	MuxOK            MuxErrorCode = 1
	MuxNotFound      MuxErrorCode = 0
	MuxInvalidArg    MuxErrorCode = -1
	MuxBadData       MuxErrorCode = -2
	MuxMemoryError   MuxErrorCode = -3
	MuxNotEnoughData MuxErrorCode = -4
	muxCreateFailure MuxErrorCode = -100
)

func (c MuxErrorCode) String() string {
	switch c {
	case MuxOK:
		return "ok"
	case MuxNotFound:
		return "not found"
	case MuxInvalidArg:
		return "invalid argument"
	case MuxBadData:
		return "bad data"
	case MuxMemoryError:
		return "memory error"
	case MuxNotEnoughData:
		return "not enough data"
	case muxCreateFailure:
		return "mux creation failed"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// MuxError is returned when attaching animation parameters to an assembled
// container fails.
type MuxError struct {
	Code MuxErrorCode
}

func (e *MuxError) Error() string {
	return fmt.Sprintf("webp: mux failed: %s", e.Code)
}

// AnimEncoderError carries the message reported by the native animation encoder,
// which exposes no structured error code.
type AnimEncoderError struct {
	Message string
}

func (e *AnimEncoderError) Error() string {
	return "webp: animation encoder: " + e.Message
}

// DecodeErrorKind distinguishes the failure points of the animation decoder.
type DecodeErrorKind int

const (
	DecodeOptionInit DecodeErrorKind = iota
	DecodeUnsupportedColorMode
	DecodeNullDecoder
	DecodeNullInfo
	DecodeFrame
)

func (k DecodeErrorKind) String() string {
	switch k {
	case DecodeOptionInit:
		return "option init error"
	case DecodeUnsupportedColorMode:
		return "unsupported color mode"
	case DecodeNullDecoder:
		return "null decoder"
	case DecodeNullInfo:
		return "null info"
	case DecodeFrame:
		return "frame decode error"
	default:
		return "unknown"
	}
}

// DecodeError is returned by AnimDecoder.Decode.
type DecodeError struct {
	Kind DecodeErrorKind
}

func (e *DecodeError) Error() string {
	return "webp: animation decode failed: " + e.Kind.String()
}
