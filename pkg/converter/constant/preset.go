package constant

import (
	"fmt"

	"github.com/belphemur/safewebp/pkg/webp"
	"github.com/thediveo/enumflag/v2"
)

// Preset is the command line form of webp.Preset.
type Preset enumflag.Flag

const (
	PresetDefault Preset = iota
	PresetPicture
	PresetPhoto
	PresetDrawing
	PresetIcon
	PresetText
)

var PresetValue = map[Preset][]string{
	PresetDefault: {"default"},
	PresetPicture: {"picture"},
	PresetPhoto:   {"photo"},
	PresetDrawing: {"drawing"},
	PresetIcon:    {"icon"},
	PresetText:    {"text"},
}

var PresetHelp = enumflag.Help[Preset]{
	PresetDefault: "Balanced default settings",
	PresetPicture: "Digital picture, like portrait or inner shot",
	PresetPhoto:   "Outdoor photograph with natural lighting",
	PresetDrawing: "Hand or line drawing with high-contrast details",
	PresetIcon:    "Small-sized colorful images",
	PresetText:    "Text-like content",
}

func (p Preset) String() string {
	if names, ok := PresetValue[p]; ok {
		return names[0]
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// Native maps the flag value onto the encoder preset.
func (p Preset) Native() webp.Preset {
	return map[Preset]webp.Preset{
		PresetDefault: webp.PresetDefault,
		PresetPicture: webp.PresetPicture,
		PresetPhoto:   webp.PresetPhoto,
		PresetDrawing: webp.PresetDrawing,
		PresetIcon:    webp.PresetIcon,
		PresetText:    webp.PresetText,
	}[p]
}

func FindPreset(name string) Preset {
	for preset, names := range PresetValue {
		for _, n := range names {
			if n == name {
				return preset
			}
		}
	}
	return PresetDefault
}
