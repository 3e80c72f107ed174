package commands

import (
	"fmt"
	"os"

	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	AddCommand(newDecodeCommand())
}

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <input.webp> <output.png>",
		Short: "Decode a still WebP image to PNG",
		Long:  "Decode a still WebP image to PNG.\nAnimated files are rejected; use extract to dump their frames.",
		RunE:  DecodeCommand,
		Args:  cobra.ExactArgs(2),
	}
}

func DecodeCommand(_ *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	features, ok := webp.GetFeatures(data)
	if !ok {
		return fmt.Errorf("%s is not a WebP image", input)
	}
	if features.HasAnimation() {
		return fmt.Errorf("%s is animated, use extract instead", input)
	}

	img, ok := webp.NewDecoder(data).Decode()
	if !ok {
		return fmt.Errorf("failed to decode %s", input)
	}
	defer img.Close()

	if err := writePNG(output, img.AsImage()); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Info().Str("input", input).Str("output", output).Uint32("width", img.Width()).Uint32("height", img.Height()).Str("layout", img.Layout().String()).Msg("Image decoded")
	return nil
}
