package commands

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/belphemur/safewebp/internal/bundle"
	"github.com/belphemur/safewebp/internal/utils/errs"
	_ "golang.org/x/image/webp"
)

// loadImages decodes every image found in paths, in order. A path may be a
// single image, a folder or an archive.
func loadImages(ctx context.Context, paths []string) ([]image.Image, error) {
	var images []image.Image
	for _, path := range paths {
		collection, err := bundle.LoadCollection(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, a := range collection.Assets {
			img, _, err := image.Decode(bytes.NewReader(a.Contents.Bytes()))
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", a.Name, err)
			}
			images = append(images, img)
		}
	}
	return images, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer errs.Capture(&err, f.Close, "failed to close "+path)
	return png.Encode(f, img)
}
