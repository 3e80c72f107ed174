package webp

// #include "safewebp.h"
import "C"

import "fmt"

// Preset selects one of libwebp's tuned starting configurations.
type Preset int

const (
	PresetDefault Preset = iota
	PresetPicture
	PresetPhoto
	PresetDrawing
	PresetIcon
	PresetText
)

// DefaultLosslessQuality is the effort used by EncodeLossless and by
// NewEncodeConfig when lossless is requested without an explicit quality.
const DefaultLosslessQuality float32 = 75

// EncodeConfig holds the encoder knobs exposed by this package. Values are
// checked by libwebp's own validator before any encode is attempted; build
// one with NewEncodeConfig or NewPresetConfig to start from libwebp defaults.
type EncodeConfig struct {
	// Lossless selects the VP8L encoder. Quality then controls effort.
	Lossless bool
	// Quality in [0, 100].
	Quality float32
	// Method trades speed for size, 0 (fast) to 6 (slow).
	Method int

	AlphaCompression bool
	// AlphaFiltering is 0 (none), 1 (fast) or 2 (best).
	AlphaFiltering int
	AlphaQuality   int

	// Exact preserves RGB values under fully transparent pixels.
	Exact bool
	// NearLossless in [0, 100], 100 disables preprocessing.
	NearLossless int
	UseSharpYUV  bool
	ThreadLevel  bool

	SNSStrength    int
	FilterStrength int
	Segments       int
	// TargetSize in bytes, 0 disables size targeting.
	TargetSize int
}

// NewEncodeConfig returns libwebp's default configuration with the given mode and quality.
func NewEncodeConfig(lossless bool, quality float32) *EncodeConfig {
	cfg, err := NewPresetConfig(PresetDefault, quality)
	if err != nil {
		// WebPConfigPreset only fails on an ABI mismatch or a bad preset; keep
		// going with the documented defaults and let validation report it.
		cfg = &EncodeConfig{Quality: quality, Method: 4, AlphaCompression: true, AlphaFiltering: 1,
			AlphaQuality: 100, NearLossless: 100, SNSStrength: 50, FilterStrength: 60, Segments: 4}
	}
	cfg.Lossless = lossless
	return cfg
}

// NewPresetConfig reads back the configuration libwebp builds for preset.
func NewPresetConfig(preset Preset, quality float32) (*EncodeConfig, error) {
	var c C.WebPConfig
	if C.WebPConfigPreset(&c, C.WebPPreset(preset), C.float(quality)) == 0 {
		return nil, fmt.Errorf("%w: preset %d", ErrInvalidConfiguration, preset)
	}
	return configFromNative(&c), nil
}

// NewLosslessConfig returns the lossless configuration for a compression level
// between 0 (fastest) and 9 (smallest).
func NewLosslessConfig(level int) (*EncodeConfig, error) {
	var c C.WebPConfig
	if C.WebPConfigInit(&c) == 0 || C.WebPConfigLosslessPreset(&c, C.int(level)) == 0 {
		return nil, fmt.Errorf("%w: lossless level %d", ErrInvalidConfiguration, level)
	}
	return configFromNative(&c), nil
}

func configFromNative(c *C.WebPConfig) *EncodeConfig {
	return &EncodeConfig{
		Lossless:         c.lossless != 0,
		Quality:          float32(c.quality),
		Method:           int(c.method),
		AlphaCompression: c.alpha_compression != 0,
		AlphaFiltering:   int(c.alpha_filtering),
		AlphaQuality:     int(c.alpha_quality),
		Exact:            c.exact != 0,
		NearLossless:     int(c.near_lossless),
		UseSharpYUV:      c.use_sharp_yuv != 0,
		ThreadLevel:      c.thread_level != 0,
		SNSStrength:      int(c.sns_strength),
		FilterStrength:   int(c.filter_strength),
		Segments:         int(c.segments),
		TargetSize:       int(c.target_size),
	}
}

// native initialises a WebPConfig, copies the knobs over it and runs
// WebPValidateConfig. The returned value must not be used if err != nil.
func (cfg *EncodeConfig) native() (C.WebPConfig, error) {
	var c C.WebPConfig
	if cfg == nil {
		return c, fmt.Errorf("%w: nil config", ErrInvalidConfiguration)
	}
	if C.WebPConfigInit(&c) == 0 {
		return c, fmt.Errorf("%w: config init failed", ErrInvalidConfiguration)
	}
	c.lossless = cBool(cfg.Lossless)
	c.quality = C.float(cfg.Quality)
	c.method = C.int(cfg.Method)
	c.alpha_compression = cBool(cfg.AlphaCompression)
	c.alpha_filtering = C.int(cfg.AlphaFiltering)
	c.alpha_quality = C.int(cfg.AlphaQuality)
	c.exact = cBool(cfg.Exact)
	c.near_lossless = C.int(cfg.NearLossless)
	c.use_sharp_yuv = cBool(cfg.UseSharpYUV)
	c.thread_level = cBool(cfg.ThreadLevel)
	c.sns_strength = C.int(cfg.SNSStrength)
	c.filter_strength = C.int(cfg.FilterStrength)
	c.segments = C.int(cfg.Segments)
	c.target_size = C.int(cfg.TargetSize)

	if C.WebPValidateConfig(&c) == 0 {
		return c, fmt.Errorf("%w: rejected by libwebp", ErrInvalidConfiguration)
	}
	return c, nil
}

// Validate runs libwebp's configuration validator.
func (cfg *EncodeConfig) Validate() error {
	_, err := cfg.native()
	return err
}
