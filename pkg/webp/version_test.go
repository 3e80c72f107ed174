package webp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersions(t *testing.T) {
	for name, v := range map[string]Version{
		"encoder": EncoderVersion(),
		"decoder": DecoderVersion(),
		"mux":     MuxVersion(),
		"demux":   DemuxVersion(),
	} {
		assert.NotEqual(t, Version{}, v, name)
		assert.Regexp(t, `^\d+\.\d+\.\d+$`, v.String(), name)
	}
}

func TestUnpackVersion(t *testing.T) {
	assert.Equal(t, Version{Major: 1, Minor: 4, Revision: 0}, unpackVersion(0x010400))
	assert.Equal(t, "1.6.2", unpackVersion(0x010602).String())
}
