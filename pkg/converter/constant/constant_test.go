package constant

import (
	"testing"

	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/stretchr/testify/assert"
)

func TestFindConversionFormat(t *testing.T) {
	assert.Equal(t, WebP, FindConversionFormat("webp"))
	assert.Equal(t, WebP, FindConversionFormat("native"))
	assert.Equal(t, CWebP, FindConversionFormat("cwebp"))
	assert.Equal(t, DefaultConversion, FindConversionFormat("avif"))
	assert.Equal(t, []string{"cwebp", "webp"}, ListAll())
	assert.Equal(t, "cwebp", CWebP.String())
}

func TestPreset(t *testing.T) {
	assert.Equal(t, PresetPhoto, FindPreset("photo"))
	assert.Equal(t, PresetDefault, FindPreset("unknown"))
	assert.Equal(t, webp.PresetText, PresetText.Native())
	assert.Equal(t, "drawing", PresetDrawing.String())
}
