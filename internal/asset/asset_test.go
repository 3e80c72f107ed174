package asset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsset_OutputName(t *testing.T) {
	tests := []struct {
		name     string
		asset    Asset
		expected string
	}{
		{name: "plain", asset: Asset{Name: "dir/cat.png", Extension: ".webp"}, expected: "cat.webp"},
		{name: "split part", asset: Asset{Name: "tall.jpg", Extension: ".webp", IsSplitted: true, SplitPartIndex: 2}, expected: "tall_part2.webp"},
		{name: "no name", asset: Asset{Extension: ".webp"}, expected: "image.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.asset.OutputName())
		})
	}
}

func TestContainer_SetConverted(t *testing.T) {
	a := &Asset{Name: "x.png", Extension: ".png", Size: 10}
	c := NewContainer(a, nil, "png", true)

	c.SetConverted(bytes.NewBufferString("webpdata"), ".webp")
	assert.True(t, c.HasBeenConverted)
	assert.Equal(t, ".webp", a.Extension)
	assert.Equal(t, uint64(8), a.Size)

	col := &Collection{Assets: []*Asset{a, {Size: 2}}}
	assert.Equal(t, uint64(10), col.TotalSize())
}
