package webp

import (
	"image"

	"github.com/belphemur/safewebp/internal/imageconv"
)

// FromImage packs img into an encoder. Opaque images use RGB, anything with
// transparency uses RGBA.
func FromImage(img image.Image) (*Encoder, error) {
	p := imageconv.FromImage(img)
	return NewEncoder(p.Data, layoutFor(p.HasAlpha), uint32(p.Width), uint32(p.Height))
}

// AnimFrameFromImage packs img into an animation frame shown from timestampMs.
func AnimFrameFromImage(img image.Image, timestampMs int32) (*AnimFrame, error) {
	p := imageconv.FromImage(img)
	return NewAnimFrame(p.Data, layoutFor(p.HasAlpha), uint32(p.Width), uint32(p.Height), timestampMs, nil)
}

// AsImage copies the decoded pixels into an *image.NRGBA that outlives Close.
func (i *Image) AsImage() image.Image {
	return toImage(i.Bytes(), i.layout, i.width, i.height)
}

// AsImage copies the frame's pixels into an *image.NRGBA.
func (f *AnimFrame) AsImage() image.Image {
	return toImage(f.buf.data, f.buf.layout, f.buf.width, f.buf.height)
}

func toImage(data []byte, layout PixelLayout, width, height uint32) *image.NRGBA {
	return imageconv.ToImage(imageconv.Pixels{
		Data:     data,
		Width:    int(width),
		Height:   int(height),
		HasAlpha: layout.HasAlpha(),
	})
}
