package webp

// AnimFrame is one frame of an animation: a borrowed, length-checked pixel
// buffer with an absolute timestamp in milliseconds from the start of the
// animation and an optional per-frame encoder configuration.
type AnimFrame struct {
	buf       pixelBuffer
	timestamp int32
	config    *EncodeConfig
}

// NewAnimFrame validates image against width, height and layout. A nil config
// makes the frame use the animation encoder's default.
func NewAnimFrame(image []byte, layout PixelLayout, width, height uint32, timestampMs int32, config *EncodeConfig) (*AnimFrame, error) {
	buf, err := checkBuffer(image, layout, width, height)
	if err != nil {
		return nil, err
	}
	return &AnimFrame{buf: buf, timestamp: timestampMs, config: config}, nil
}

// AnimFrameFromRGB creates a frame from RGB pixel data.
func AnimFrameFromRGB(image []byte, width, height uint32, timestampMs int32) (*AnimFrame, error) {
	return NewAnimFrame(image, RGB, width, height, timestampMs, nil)
}

// AnimFrameFromRGBA creates a frame from straight-alpha RGBA pixel data.
func AnimFrameFromRGBA(image []byte, width, height uint32, timestampMs int32) (*AnimFrame, error) {
	return NewAnimFrame(image, RGBA, width, height, timestampMs, nil)
}

func (f *AnimFrame) Bytes() []byte         { return f.buf.data }
func (f *AnimFrame) Layout() PixelLayout   { return f.buf.layout }
func (f *AnimFrame) Width() uint32         { return f.buf.width }
func (f *AnimFrame) Height() uint32        { return f.buf.height }
func (f *AnimFrame) TimestampMs() int32    { return f.timestamp }
func (f *AnimFrame) Config() *EncodeConfig { return f.config }

// Encoder returns a single-image encoder over the frame's pixels.
func (f *AnimFrame) Encoder() *Encoder {
	return &Encoder{buf: f.buf}
}
