package commands

import (
	"fmt"
	"image"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/belphemur/safewebp/internal/utils"
	"github.com/belphemur/safewebp/pkg/converter/constant"
	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"
)

var presetType constant.Preset

func init() {
	AddCommand(newAnimateCommand())
}

func newAnimateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "animate <output.webp> <frame...>",
		Short: "Assemble images into an animated WebP",
		Long:  "Assemble images into an animated WebP.\nFrames are taken in order from every image, folder or archive given. With --sheet the single input is cut into --cols x --rows frames.",
		RunE:  AnimateCommand,
		Args:  cobra.MinimumNArgs(2),
	}
	presetFlag := enumflag.New(&presetType, "preset", constant.PresetValue, enumflag.EnumCaseInsensitive)
	_ = presetFlag.RegisterCompletion(command, "preset", constant.PresetHelp)

	command.Flags().IntP("delay", "d", 100, "Delay between frames in milliseconds")
	command.Flags().Int32("loop", 0, "Number of loops, 0 loops forever")
	command.Flags().String("bgcolor", "255,255,255,255", "Background colour as R,G,B,A")
	command.Flags().Bool("lossless", false, "Encode frames losslessly")
	command.Flags().Float32P("quality", "q", 75, "Quality (0-100); effort when lossless")
	command.Flags().Bool("minimize-size", false, "Spend more time to produce a smaller file")
	command.Flags().Bool("sheet", false, "Treat the single input as a sprite sheet")
	command.Flags().Int("cols", 1, "Sprite sheet columns")
	command.Flags().Int("rows", 1, "Sprite sheet rows")
	command.Flags().VarP(presetFlag, "preset", "p", "Encoder preset: default, picture, photo, drawing, icon, text")

	return command
}

func parseColor(value string) ([4]uint8, error) {
	var rgba [4]uint8
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return rgba, fmt.Errorf("background colour %q must be R,G,B,A", value)
	}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return rgba, fmt.Errorf("background colour %q: %w", value, err)
		}
		rgba[i] = uint8(v)
	}
	return rgba, nil
}

func AnimateCommand(cmd *cobra.Command, args []string) error {
	output, inputs := args[0], args[1:]
	flags := cmd.Flags()

	delay, err := flags.GetInt("delay")
	if err != nil || delay <= 0 {
		return fmt.Errorf("invalid delay value")
	}
	loop, err := flags.GetInt32("loop")
	if err != nil || loop < 0 {
		return fmt.Errorf("invalid loop value")
	}
	bgValue, _ := flags.GetString("bgcolor")
	bgcolor, err := parseColor(bgValue)
	if err != nil {
		return err
	}
	lossless, _ := flags.GetBool("lossless")
	quality, err := flags.GetFloat32("quality")
	if err != nil || quality < 0 || quality > 100 {
		return fmt.Errorf("invalid quality value")
	}
	minimize, _ := flags.GetBool("minimize-size")
	sheet, _ := flags.GetBool("sheet")

	frames, err := loadImages(cmd.Context(), inputs)
	if err != nil {
		return err
	}
	if sheet {
		if len(frames) != 1 {
			return fmt.Errorf("--sheet expects exactly one image, got %d", len(frames))
		}
		cols, _ := flags.GetInt("cols")
		rows, _ := flags.GetInt("rows")
		if frames, err = utils.SplitSheet(frames[0], cols, rows); err != nil {
			return err
		}
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames found")
	}

	config, err := webp.NewPresetConfig(presetType.Native(), quality)
	if err != nil {
		return err
	}
	config.Lossless = lossless

	data, err := encodeAnimation(frames, config, webp.AnimEncoderOptions{MinimizeSize: minimize}, delay, loop, bgcolor)
	if err != nil {
		return err
	}
	defer data.Close()

	if err := os.WriteFile(output, data.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Info().Str("output", output).Int("frames", len(frames)).Int("size", data.Len()).Msg("Animation written")
	return nil
}

func encodeAnimation(frames []image.Image, config *webp.EncodeConfig, options webp.AnimEncoderOptions, delay int, loop int32, bgcolor [4]uint8) (*webp.Memory, error) {
	canvas := frames[0].Bounds().Size()
	sizes := lo.Map(frames, func(img image.Image, _ int) image.Point { return img.Bounds().Size() })
	if size, i, found := lo.FindIndexOf(sizes, func(s image.Point) bool { return s != canvas }); found {
		return nil, fmt.Errorf("frame %d is %dx%d, expected %dx%d", i, size.X, size.Y, canvas.X, canvas.Y)
	}
	if last := int64(len(frames)-1) * int64(delay); last > math.MaxInt32 {
		return nil, fmt.Errorf("%d frames %d ms apart: %w", len(frames), delay, webp.ErrTimestampOverflow)
	}

	encoder, err := webp.NewAnimEncoderWithOptions(uint32(canvas.X), uint32(canvas.Y), config, options)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	encoder.SetLoopCount(loop)
	encoder.SetBackgroundColor(bgcolor)

	for i, img := range frames {
		frame, err := webp.AnimFrameFromImage(img, int32(i*delay))
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if err := encoder.AddFrame(frame); err != nil {
			return nil, err
		}
		log.Trace().Int("frame", i).Msg("Frame queued")
	}
	return encoder.Encode()
}
