package imageconv

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(width, height int, alpha uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 100, A: alpha})
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	tests := []struct {
		name      string
		img       image.Image
		wantAlpha bool
		wantLen   int
	}{
		{name: "Opaque image packs as RGB", img: gradient(8, 4, 255), wantAlpha: false, wantLen: 8 * 4 * 3},
		{name: "Translucent image packs as RGBA", img: gradient(8, 4, 128), wantAlpha: true, wantLen: 8 * 4 * 4},
		{name: "Gray image packs as RGB", img: image.NewGray(image.Rect(0, 0, 5, 5)), wantAlpha: false, wantLen: 5 * 5 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromImage(tt.img)
			assert.Equal(t, tt.wantAlpha, p.HasAlpha)
			assert.Len(t, p.Data, tt.wantLen)
			assert.Equal(t, tt.img.Bounds().Dx(), p.Width)
			assert.Equal(t, tt.img.Bounds().Dy(), p.Height)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, alpha := range []uint8{255, 200} {
		src := gradient(16, 9, alpha)
		p := FromImage(src)
		back := ToImage(p)
		require.Equal(t, src.Bounds().Size(), back.Bounds().Size())
		assert.True(t, Equal(src, back), "alpha %d", alpha)
	}
}

func TestToNRGBA_OffsetBounds(t *testing.T) {
	src := gradient(10, 10, 255)
	sub := src.SubImage(image.Rect(2, 3, 6, 8))

	dst := ToNRGBA(sub)
	require.Equal(t, image.Rect(0, 0, 4, 5), dst.Bounds())
	assert.Equal(t, color.NRGBAModel.Convert(src.At(2, 3)), dst.At(0, 0))
	assert.Equal(t, color.NRGBAModel.Convert(src.At(5, 7)), dst.At(3, 4))
}

func TestEqual_TransparentPixels(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	a.Pix = []byte{10, 20, 30, 0}
	b.Pix = []byte{99, 98, 97, 0}
	assert.True(t, Equal(a, b))

	b.Pix[3] = 1
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(a, image.NewNRGBA(image.Rect(0, 0, 2, 1))))
}
