package webp

import (
	"math"
)

// colourWheel renders a hue wheel with a radial saturation falloff. With alpha
// set, the corners outside the wheel are fully transparent.
func colourWheel(width, height int, layout PixelLayout) []byte {
	bpp := layout.BytesPerPixel()
	out := make([]byte, width*height*bpp)
	cx, cy := float64(width)/2, float64(height)/2
	radius := math.Min(cx, cy)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := math.Hypot(dx, dy) / radius
			hue := (math.Atan2(dy, dx) + math.Pi) / (2 * math.Pi)
			r, g, b := hsvToRGB(hue, math.Min(dist, 1), 1)

			i := (y*width + x) * bpp
			out[i], out[i+1], out[i+2] = r, g, b
			if bpp == 4 {
				out[i+3] = 0xff
				if dist > 1 {
					out[i+3] = 0
				}
			}
		}
	}
	return out
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p, q, t := v*(1-s), v*(1-f*s), v*(1-(1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}

func solid(width, height int, layout PixelLayout, rgba [4]uint8) []byte {
	bpp := layout.BytesPerPixel()
	out := make([]byte, width*height*bpp)
	for i := 0; i < len(out); i += bpp {
		copy(out[i:i+bpp], rgba[:bpp])
	}
	return out
}
