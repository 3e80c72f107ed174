// Package imageconv converts between image.Image values and the packed
// RGB/RGBA byte layouts accepted by the webp package.
package imageconv

import (
	"bytes"
	"image"

	"golang.org/x/image/draw"
)

// Pixels is a packed, row-major pixel buffer without padding.
type Pixels struct {
	Data     []byte
	Width    int
	Height   int
	HasAlpha bool
}

// ToNRGBA draws img onto a straight-alpha canvas anchored at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) &&
		nrgba.Stride == 4*nrgba.Rect.Dx() && len(nrgba.Pix) == nrgba.Stride*nrgba.Rect.Dy() {
		return nrgba
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// FromImage packs img as RGB when every pixel is opaque and as RGBA otherwise.
func FromImage(img image.Image) Pixels {
	nrgba := ToNRGBA(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	if !isOpaque(nrgba) {
		return Pixels{Data: nrgba.Pix, Width: w, Height: h, HasAlpha: true}
	}

	rgb := make([]byte, 0, w*h*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		rgb = append(rgb, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return Pixels{Data: rgb, Width: w, Height: h, HasAlpha: false}
}

func isOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// ToImage copies packed pixels into a new *image.NRGBA. RGB input gets an
// opaque alpha channel.
func ToImage(p Pixels) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	if p.HasAlpha {
		copy(dst.Pix, p.Data)
		return dst
	}
	for i, j := 0, 0; i+2 < len(p.Data) && j+3 < len(dst.Pix); i, j = i+3, j+4 {
		dst.Pix[j] = p.Data[i]
		dst.Pix[j+1] = p.Data[i+1]
		dst.Pix[j+2] = p.Data[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

// Equal reports whether two images have the same size and the same straight
// RGBA values, treating any two fully transparent pixels as equal.
func Equal(a, b image.Image) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	na, nb := ToNRGBA(a), ToNRGBA(b)
	for i := 0; i < len(na.Pix); i += 4 {
		if na.Pix[i+3] == 0 && nb.Pix[i+3] == 0 {
			continue
		}
		if !bytes.Equal(na.Pix[i:i+4], nb.Pix[i:i+4]) {
			return false
		}
	}
	return true
}
