package asset

import (
	"bytes"
	"image"
)

// Container holds an asset together with its decoded image while it moves
// through a converter.
type Container struct {
	// Asset is the asset being converted.
	Asset *Asset
	// Image is the decoded image of the asset.
	Image image.Image
	// Format is the decoder name reported by image.Decode (e.g. "png", "jpeg", "webp").
	Format string
	// IsToBeConverted is false for assets that are passed through untouched.
	IsToBeConverted bool
	// HasBeenConverted is set once the contents hold the converted bytes.
	HasBeenConverted bool
}

func NewContainer(asset *Asset, img image.Image, format string, isToBeConverted bool) *Container {
	return &Container{Asset: asset, Image: img, Format: format, IsToBeConverted: isToBeConverted}
}

// SetConverted replaces the asset contents with the converted bytes.
func (c *Container) SetConverted(converted *bytes.Buffer, extension string) {
	c.Asset.Contents = converted
	c.Asset.Extension = extension
	c.Asset.Size = uint64(converted.Len())
	c.HasBeenConverted = true
}
