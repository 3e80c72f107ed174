package utils

import (
	"fmt"
	"image"

	"github.com/oliamb/cutter"
)

// SplitSheet cuts a sprite sheet of cols x rows equally sized cells into
// frames, left to right then top to bottom. Pixels beyond the last full cell
// are dropped.
func SplitSheet(img image.Image, cols, rows int) ([]image.Image, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid sheet layout %dx%d", cols, rows)
	}
	bounds := img.Bounds()
	cellWidth, cellHeight := bounds.Dx()/cols, bounds.Dy()/rows
	if cellWidth == 0 || cellHeight == 0 {
		return nil, fmt.Errorf("sheet of %dx%d px is too small for %dx%d cells", bounds.Dx(), bounds.Dy(), cols, rows)
	}

	frames := make([]image.Image, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frame, err := cutter.Crop(img, cutter.Config{
				Width:  cellWidth,
				Height: cellHeight,
				Anchor: image.Point{X: col * cellWidth, Y: row * cellHeight},
				Mode:   cutter.TopLeft,
			})
			if err != nil {
				return nil, fmt.Errorf("error cropping cell %d,%d: %v", col, row, err)
			}
			frames = append(frames, frame)
		}
	}
	return frames, nil
}
