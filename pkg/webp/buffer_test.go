package webp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBuffer(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		layout   PixelLayout
		width    uint32
		height   uint32
		wantErr  error
		expected uint64
	}{
		{name: "exact RGB", size: 4 * 3 * 3, layout: RGB, width: 4, height: 3},
		{name: "exact RGBA", size: 4 * 3 * 4, layout: RGBA, width: 4, height: 3},
		{name: "larger than needed", size: 100, layout: RGB, width: 2, height: 2},
		{name: "one byte short", size: 4*3*4 - 1, layout: RGBA, width: 4, height: 3, wantErr: ErrBufferTooSmall, expected: 48},
		{name: "empty buffer", size: 0, layout: RGB, width: 1, height: 1, wantErr: ErrBufferTooSmall, expected: 3},
		{name: "zero width", size: 0, layout: RGB, width: 0, height: 10, wantErr: ErrInvalidDimensions},
		{name: "zero height with data", size: 12, layout: RGBA, width: 3, height: 0, wantErr: ErrInvalidDimensions},
		{name: "product wraps 32 bits", size: 0, layout: RGBA, width: 65536, height: 65536, wantErr: ErrBufferTooSmall, expected: 1 << 34},
		{name: "product saturates 64 bits", size: 16, layout: RGBA, width: math.MaxUint32, height: math.MaxUint32, wantErr: ErrBufferTooSmall, expected: math.MaxUint64},
		{name: "unknown layout", size: 16, layout: PixelLayout(7), width: 1, height: 1, wantErr: ErrUnsupportedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := checkBuffer(make([]byte, tt.size), tt.layout, tt.width, tt.height)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.width, buf.width)
				assert.Equal(t, tt.height, buf.height)
				assert.Len(t, buf.data, tt.size)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var tooSmall *BufferTooSmallError
			if errors.As(err, &tooSmall) {
				assert.Equal(t, tt.expected, tooSmall.Expected)
				assert.Equal(t, tt.size, tooSmall.Actual)
			}
		})
	}
}

func TestSatMul(t *testing.T) {
	assert.Equal(t, uint64(12), satMul(3, 4))
	assert.Equal(t, uint64(0), satMul(0, math.MaxUint64))
	assert.Equal(t, uint64(math.MaxUint64), satMul(math.MaxUint64, 2))
	assert.Equal(t, uint64(math.MaxUint64), satMul(1<<32, 1<<32))
}

func TestPublicConstructorsValidate(t *testing.T) {
	_, err := FromRGB(make([]byte, 11), 2, 2)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	_, err = FromRGBA(make([]byte, 15), 2, 2)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	_, err = AnimFrameFromRGBA(make([]byte, 15), 2, 2, 0)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	_, err = AnimFrameFromRGB(nil, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	enc, err := FromRGBA(make([]byte, 16), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, RGBA, enc.Layout())
	assert.Equal(t, uint32(2), enc.Width())
	assert.Equal(t, uint32(2), enc.Height())
}

func TestCovers(t *testing.T) {
	buf, err := checkBuffer(make([]byte, 4*4*4), RGBA, 4, 4)
	require.NoError(t, err)

	assert.NoError(t, buf.covers(4, 4))
	assert.NoError(t, buf.covers(2, 8))
	assert.ErrorIs(t, buf.covers(8, 8), ErrBufferTooSmall)
	assert.ErrorIs(t, buf.covers(0, 4), ErrInvalidDimensions)
}
