package webp

import (
	"image"
	"io"

	"github.com/belphemur/go-webpbin/v2"
	"github.com/belphemur/safewebp/internal/utils/errs"
	libwebp "github.com/belphemur/safewebp/pkg/webp"
	"github.com/rs/zerolog/log"
)

const libwebpVersion = "1.6.0"

// encodeFunc writes m to w as WebP.
type encodeFunc func(w io.Writer, m image.Image, quality uint, lossless bool) error

// PrepareEncoder downloads (if needed) and checks the cwebp binary.
func PrepareEncoder() error {
	webpbin.SetLibVersion(libwebpVersion)
	container := webpbin.NewCWebP()
	return container.BinWrapper.Run()
}

// PrepareNative logs the linked libwebp versions; there is nothing to install.
func PrepareNative() error {
	log.Debug().
		Str("encoder", libwebp.EncoderVersion().String()).
		Str("decoder", libwebp.DecoderVersion().String()).
		Str("mux", libwebp.MuxVersion().String()).
		Msg("Using linked libwebp")
	return nil
}

// Encode runs cwebp on m.
func Encode(w io.Writer, m image.Image, quality uint, lossless bool) error {
	var webp = webpbin.NewCWebP()

	if lossless {
		webp.Lossless()
	} else {
		webp.Quality(quality)
	}
	return webp.
		InputImage(m).
		Output(w).
		Run()
}

// EncodeNative encodes m in-process through libwebp.
func EncodeNative(w io.Writer, m image.Image, quality uint, lossless bool) (err error) {
	enc, err := libwebp.FromImage(m)
	if err != nil {
		return err
	}
	out, err := enc.EncodeSimple(lossless, float32(quality))
	if err != nil {
		return err
	}
	defer errs.CaptureClose(&err, out, "failed to release encoded image")

	_, err = out.WriteTo(w)
	return err
}
