package commands

import (
	"fmt"
	"os"

	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	AddCommand(newInfoCommand())
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.webp>",
		Short: "Print the header and animation details of a WebP file",
		RunE:  InfoCommand,
		Args:  cobra.ExactArgs(1),
	}
}

type animationInfo struct {
	Frames          int     `yaml:"frames"`
	LoopCount       uint32  `yaml:"loop_count"`
	BackgroundColor string  `yaml:"background_color"`
	CanvasWidth     uint32  `yaml:"canvas_width"`
	CanvasHeight    uint32  `yaml:"canvas_height"`
	Durations       []int32 `yaml:"durations_ms,flow"`
}

type fileInfo struct {
	File         string         `yaml:"file"`
	Size         int            `yaml:"size"`
	Width        uint32         `yaml:"width"`
	Height       uint32         `yaml:"height"`
	HasAlpha     bool           `yaml:"has_alpha"`
	HasAnimation bool           `yaml:"has_animation"`
	Format       string         `yaml:"format"`
	Animation    *animationInfo `yaml:"animation,omitempty"`
}

func inspect(path string, data []byte) (*fileInfo, error) {
	features, ok := webp.GetFeatures(data)
	if !ok {
		return nil, fmt.Errorf("%s is not a WebP image", path)
	}
	info := &fileInfo{
		File:         path,
		Size:         len(data),
		Width:        features.Width(),
		Height:       features.Height(),
		HasAlpha:     features.HasAlpha(),
		HasAnimation: features.HasAnimation(),
		Format:       features.Format().String(),
	}
	if !features.HasAnimation() {
		return info, nil
	}

	animation, err := webp.NewAnimDecoder(data).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	animation.SortByTimestamp()
	// Packed as R, G, B, A from the low byte.
	bg := animation.BackgroundColor
	info.Animation = &animationInfo{
		Frames:          animation.Len(),
		LoopCount:       animation.LoopCount,
		BackgroundColor: fmt.Sprintf("#%02x%02x%02x%02x", bg&0xff, bg>>8&0xff, bg>>16&0xff, bg>>24),
		CanvasWidth:     animation.CanvasWidth,
		CanvasHeight:    animation.CanvasHeight,
		Durations:       animation.Durations(),
	}
	return info, nil
}

func InfoCommand(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	info, err := inspect(args[0], data)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(info); err != nil {
		return err
	}
	return encoder.Close()
}
