package webp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/belphemur/safewebp/internal/imageconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func decodeSingle(t *testing.T, data []byte) *Image {
	t.Helper()
	img, ok := NewDecoder(data).Decode()
	require.True(t, ok, "decoding encoder output should succeed")
	t.Cleanup(func() { _ = img.Close() })
	return img
}

func TestEncodeLossless_RGBRoundTrip(t *testing.T) {
	const w, h = 64, 48
	pix := colourWheel(w, h, RGB)

	enc, err := FromRGB(pix, w, h)
	require.NoError(t, err)
	out, err := enc.EncodeLossless()
	require.NoError(t, err)
	defer out.Close()

	features, ok := GetFeatures(out.Bytes())
	require.True(t, ok)
	assert.Equal(t, FormatLossless, features.Format())
	assert.False(t, features.HasAlpha())

	img := decodeSingle(t, out.Bytes())
	assert.Equal(t, RGB, img.Layout())
	assert.Equal(t, uint32(w), img.Width())
	assert.Equal(t, uint32(h), img.Height())
	assert.Equal(t, pix, img.Bytes())
}

func TestEncodeLossless_RGBAOpaqueRoundTrip(t *testing.T) {
	const w, h = 40, 40
	pix := solid(w, h, RGBA, [4]uint8{12, 200, 99, 255})
	copy(pix, colourWheel(w, h/2, RGB))
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}

	enc, err := FromRGBA(pix, w, h)
	require.NoError(t, err)
	out, err := enc.EncodeLossless()
	require.NoError(t, err)
	defer out.Close()

	img := decodeSingle(t, out.Bytes())
	expected := imageconv.ToImage(imageconv.Pixels{Data: pix, Width: w, Height: h, HasAlpha: true})
	assert.True(t, imageconv.Equal(expected, img.AsImage()))
}

func TestEncodeLossless_TransparentPixelsKeepZeroAlpha(t *testing.T) {
	const w, h = 32, 32
	pix := colourWheel(w, h, RGBA)

	enc, err := FromRGBA(pix, w, h)
	require.NoError(t, err)
	out, err := enc.EncodeLossless()
	require.NoError(t, err)
	defer out.Close()

	img := decodeSingle(t, out.Bytes())
	require.Equal(t, RGBA, img.Layout())
	got := img.Bytes()
	require.Len(t, got, len(pix))
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] == 0 {
			assert.Zero(t, got[i+3], "alpha at pixel %d", i/4)
			continue
		}
		assert.Equal(t, pix[i:i+4], got[i:i+4], "pixel %d", i/4)
	}
}

func TestEncodeAdvanced_ExactKeepsHiddenRGB(t *testing.T) {
	const w, h = 24, 24
	pix := colourWheel(w, h, RGBA)

	cfg := NewEncodeConfig(true, 100)
	cfg.Exact = true
	enc, err := FromRGBA(pix, w, h)
	require.NoError(t, err)
	out, err := enc.EncodeAdvanced(cfg)
	require.NoError(t, err)
	defer out.Close()

	img := decodeSingle(t, out.Bytes())
	assert.Equal(t, pix, img.Bytes())
}

func TestEncodeLossless_CrossCheckWithPureGoDecoder(t *testing.T) {
	const w, h = 50, 30
	pix := colourWheel(w, h, RGBA)

	enc, err := FromRGBA(pix, w, h)
	require.NoError(t, err)
	out, err := enc.EncodeLossless()
	require.NoError(t, err)
	defer out.Close()

	decoded, err := xwebp.Decode(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	expected := imageconv.ToImage(imageconv.Pixels{Data: pix, Width: w, Height: h, HasAlpha: true})
	assert.True(t, imageconv.Equal(expected, decoded))
}

func TestEncode_Lossy(t *testing.T) {
	const w, h = 64, 64
	enc, err := FromRGB(colourWheel(w, h, RGB), w, h)
	require.NoError(t, err)

	out, err := enc.Encode(75)
	require.NoError(t, err)
	defer out.Close()

	features, ok := GetFeatures(out.Bytes())
	require.True(t, ok)
	assert.Equal(t, FormatLossy, features.Format())
	assert.Equal(t, uint32(w), features.Width())
	assert.Equal(t, uint32(h), features.Height())

	_, err = xwebp.Decode(bytes.NewReader(out.Bytes()))
	assert.NoError(t, err)
}

func TestEncode_InvalidQuality(t *testing.T) {
	enc, err := FromRGB(solid(4, 4, RGB, [4]uint8{1, 2, 3, 0}), 4, 4)
	require.NoError(t, err)

	for _, q := range []float32{-1, 100.5, 1000, float32(math.NaN())} {
		out, err := enc.Encode(q)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrInvalidQuality, "quality %v", q)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "quality %v", q)
	}
}

func TestEncodeAdvanced_InvalidConfiguration(t *testing.T) {
	enc, err := FromRGBA(solid(8, 8, RGBA, [4]uint8{10, 20, 30, 255}), 8, 8)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*EncodeConfig)
	}{
		{name: "method out of range", mutate: func(c *EncodeConfig) { c.Method = 7 }},
		{name: "quality out of range", mutate: func(c *EncodeConfig) { c.Quality = 150 }},
		{name: "alpha filtering out of range", mutate: func(c *EncodeConfig) { c.AlphaFiltering = 3 }},
		{name: "too many segments", mutate: func(c *EncodeConfig) { c.Segments = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewEncodeConfig(false, 75)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

			out, err := enc.EncodeAdvanced(cfg)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}

	_, err = enc.EncodeAdvanced(nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

// Wider than WEBP_MAX_DIMENSION: the buffer and config are valid, but the
// native encoder refuses the picture.
func TestEncodeAdvanced_NativeRejection(t *testing.T) {
	const w, h = 16384, 1
	enc, err := FromRGB(solid(w, h, RGB, [4]uint8{9, 9, 9, 0}), w, h)
	require.NoError(t, err)

	for _, lossless := range []bool{false, true} {
		cfg := NewEncodeConfig(lossless, 75)
		require.NoError(t, cfg.Validate())

		out, err := enc.EncodeAdvanced(cfg)
		assert.Nil(t, out)
		var encErr *EncodingError
		require.True(t, errors.As(err, &encErr), "lossless=%v: expected an encoding error, got %v", lossless, err)
		assert.Equal(t, EncodingBadDimension, encErr.Code, "lossless=%v", lossless)
	}

	out, err := enc.Encode(75)
	assert.Nil(t, out)
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr), "expected an encoding error, got %v", err)
	assert.NotEqual(t, EncodingOK, encErr.Code)
}

func TestEncodeSimple(t *testing.T) {
	const w, h = 16, 16
	enc, err := FromRGBA(colourWheel(w, h, RGBA), w, h)
	require.NoError(t, err)

	lossless, err := enc.EncodeSimple(true, 75)
	require.NoError(t, err)
	defer lossless.Close()
	features, ok := GetFeatures(lossless.Bytes())
	require.True(t, ok)
	assert.Equal(t, FormatLossless, features.Format())
	assert.True(t, features.HasAlpha())

	lossy, err := enc.EncodeSimple(false, 60)
	require.NoError(t, err)
	defer lossy.Close()
	features, ok = GetFeatures(lossy.Bytes())
	require.True(t, ok)
	assert.NotEqual(t, FormatLossless, features.Format())
}

func TestPresetConfigs(t *testing.T) {
	for _, preset := range []Preset{PresetDefault, PresetPicture, PresetPhoto, PresetDrawing, PresetIcon, PresetText} {
		cfg, err := NewPresetConfig(preset, 80)
		require.NoError(t, err, "preset %d", preset)
		assert.Equal(t, float32(80), cfg.Quality)
		assert.NoError(t, cfg.Validate())
	}

	cfg, err := NewLosslessConfig(9)
	require.NoError(t, err)
	assert.True(t, cfg.Lossless)
	assert.NoError(t, cfg.Validate())

	_, err = NewLosslessConfig(10)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestMemory(t *testing.T) {
	enc, err := FromRGB(solid(8, 8, RGB, [4]uint8{200, 100, 50, 0}), 8, 8)
	require.NoError(t, err)
	out, err := enc.EncodeLossless()
	require.NoError(t, err)

	require.Greater(t, out.Len(), 0)
	assert.Equal(t, fmt.Sprintf("webp.Memory(%d bytes)", out.Len()), out.String())
	clone := out.Clone()
	assert.Equal(t, out.Bytes(), clone)

	var buf bytes.Buffer
	n, err := out.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)
	assert.Equal(t, clone, buf.Bytes())

	require.NoError(t, out.Close())
	assert.Nil(t, out.Bytes())
	assert.Zero(t, out.Len())
	assert.Equal(t, "webp.Memory(0 bytes)", out.String())
	assert.NoError(t, out.Close())

	_, ok := GetFeatures(clone)
	assert.True(t, ok, "a clone outlives the native buffer")
}

func TestFromImage(t *testing.T) {
	const w, h = 20, 10
	img := imageconv.ToImage(imageconv.Pixels{Data: colourWheel(w, h, RGB), Width: w, Height: h})

	enc, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, RGB, enc.Layout())

	out, err := enc.EncodeLossless()
	require.NoError(t, err)
	defer out.Close()

	decoded := decodeSingle(t, out.Bytes())
	assert.True(t, imageconv.Equal(img, decoded.AsImage()))
}
