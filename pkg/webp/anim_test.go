package webp

import (
	"bytes"
	"testing"

	gen2brain "github.com/gen2brain/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeTestAnimation encodes frames colour wheels rotated by frame index,
// 100 ms apart, losslessly.
func encodeTestAnimation(t *testing.T, width, height, frames int) []byte {
	t.Helper()
	enc, err := NewAnimEncoder(uint32(width), uint32(height), NewEncodeConfig(true, 75))
	require.NoError(t, err)
	defer enc.Close()

	for i := 0; i < frames; i++ {
		frame, err := AnimFrameFromRGBA(rotatedWheel(width, height, i), uint32(width), uint32(height), int32(i*100))
		require.NoError(t, err)
		require.NoError(t, enc.AddFrame(frame))
	}

	out, err := enc.Encode()
	require.NoError(t, err)
	defer out.Close()
	return out.Clone()
}

// rotatedWheel shifts the channels of an opaque colour wheel so every frame differs.
func rotatedWheel(width, height, shift int) []byte {
	pix := colourWheel(width, height, RGBA)
	for i := 0; i < len(pix); i += 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		switch shift % 3 {
		case 1:
			pix[i], pix[i+1], pix[i+2] = b, r, g
		case 2:
			pix[i], pix[i+1], pix[i+2] = g, b, r
		}
		pix[i+3] = 0xff
	}
	return pix
}

func TestAnimation_HasAnimation(t *testing.T) {
	single, err := NewAnimDecoder(encodeTestAnimation(t, 16, 16, 1)).Decode()
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
	assert.False(t, single.HasAnimation())

	data := encodeTestAnimation(t, 16, 16, 4)
	features, ok := GetFeatures(data)
	require.True(t, ok)
	assert.True(t, features.HasAnimation())

	multi, err := NewAnimDecoder(data).Decode()
	require.NoError(t, err)
	assert.Equal(t, 4, multi.Len())
	assert.True(t, multi.HasAnimation())
}

func TestAnimation_RoundTrip(t *testing.T) {
	const w, h, n = 24, 20, 3
	anim, err := NewAnimDecoder(encodeTestAnimation(t, w, h, n)).Decode()
	require.NoError(t, err)
	require.Equal(t, n, anim.Len())

	for i, frame := range anim.All() {
		assert.Equal(t, rotatedWheel(w, h, i), frame.Bytes(), "frame %d pixels", i)
		assert.Equal(t, int32((i+1)*100), frame.TimestampMs(), "frame %d end timestamp", i)

		out, err := frame.Encoder().EncodeLossless()
		require.NoError(t, err)
		img, ok := NewDecoder(out.Bytes()).Decode()
		require.True(t, ok)

		assert.Equal(t, uint32(w), img.Width())
		assert.Equal(t, uint32(h), img.Height())
		reencoded := img.AsImage()
		assert.Equal(t, frame.AsImage(), reencoded, "frame %d", i)

		require.NoError(t, img.Close())
		require.NoError(t, out.Close())
	}
}

func TestAnimation_CrossCheckWithIndependentDecoder(t *testing.T) {
	const w, h, n = 12, 12, 3
	data := encodeTestAnimation(t, w, h, n)

	decoded, err := gen2brain.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, decoded.Image, n)
	assert.Equal(t, []int{100, 100, 100}, decoded.Delay)
	// Later frames may be stored as sub-rectangles; only the key frame covers the canvas.
	assert.Equal(t, rotatedWheel(w, h, 0), decoded.Image[0].Pix)
}

func TestAnimFrameFromImage(t *testing.T) {
	enc, err := FromRGBA(rotatedWheel(8, 8, 1), 8, 8)
	require.NoError(t, err)
	src := (&AnimFrame{buf: enc.buf}).AsImage()

	frame, err := AnimFrameFromImage(src, 40)
	require.NoError(t, err)
	assert.Equal(t, RGB, frame.Layout())
	assert.Equal(t, int32(40), frame.TimestampMs())
	assert.Nil(t, frame.Config())
}
