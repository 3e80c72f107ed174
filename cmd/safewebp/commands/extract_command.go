package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/belphemur/safewebp/internal/utils/errs"
	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	AddCommand(newExtractCommand())
}

func newExtractCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "extract <input.webp> <output-folder>",
		Short: "Extract the frames of an animated WebP",
		Long:  "Extract the fully composited frames of an animated WebP as frame_NNN.png files.\nStill images produce a single frame.",
		RunE:  ExtractCommand,
		Args:  cobra.ExactArgs(2),
	}
	command.Flags().Bool("webp", false, "Write each frame as a lossless WebP instead of PNG")
	return command
}

func ExtractCommand(cmd *cobra.Command, args []string) error {
	input, outputDir := args[0], args[1]
	asWebP, _ := cmd.Flags().GetBool("webp")

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	animation, err := webp.NewAnimDecoder(data).Decode()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", input, err)
	}
	animation.SortByTimestamp()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outputDir, err)
	}

	for i, frame := range animation.All() {
		var path string
		if asWebP {
			path = filepath.Join(outputDir, fmt.Sprintf("frame_%03d.webp", i))
			err = writeFrameWebP(path, frame)
		} else {
			path = filepath.Join(outputDir, fmt.Sprintf("frame_%03d.png", i))
			err = writePNG(path, frame.AsImage())
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug().Str("file", path).Int32("timestamp", frame.TimestampMs()).Msg("Frame written")
	}

	log.Info().
		Str("input", input).
		Int("frames", animation.Len()).
		Interface("durations", animation.Durations()).
		Uint32("loop", animation.LoopCount).
		Msg("Frames extracted")
	return nil
}

func writeFrameWebP(path string, frame *webp.AnimFrame) (err error) {
	mem, err := frame.Encoder().EncodeSimple(true, 100)
	if err != nil {
		return err
	}
	defer errs.CaptureClose(&err, mem, "failed to release encoded frame")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer errs.Capture(&err, f.Close, "failed to close "+path)
	_, err = mem.WriteTo(f)
	return err
}
