package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/belphemur/safewebp/internal/bundle"
	"github.com/belphemur/safewebp/pkg/converter"
	converterrors "github.com/belphemur/safewebp/pkg/converter/errors"
	"github.com/rs/zerolog/log"
)

type ConvertOptions struct {
	Converter converter.Converter
	// Path is a folder, an archive or a single image.
	Path string
	// OutputPath is a folder or a .zip file; empty selects DefaultOutputPath.
	OutputPath string
	Quality    uint8
	Lossless   bool
	Split      bool
	// Timeout bounds the whole conversion; 0 disables it.
	Timeout time.Duration
}

// Convert loads every image under options.Path, converts it with the given
// converter and writes the result. It returns the paths (or archive entries) written.
func Convert(options *ConvertOptions) ([]string, error) {
	log.Info().Str("path", options.Path).Msg("Processing")

	ctx := context.Background()
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	collection, err := bundle.LoadCollection(ctx, options.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	if len(collection.Assets) == 0 {
		return nil, fmt.Errorf("no images found in %s", options.Path)
	}

	converted, err := options.Converter.ConvertCollection(ctx, collection, options.Quality, options.Lossless, options.Split, func(msg string, current uint32, total uint32) {
		if current%10 == 0 || current == total {
			log.Info().Str("path", collection.Path).Uint32("current", current).Uint32("total", total).Msg("Converting")
		}
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("conversion timed out after %s: %w", options.Timeout, err)
		}
		if !onlyIgnored(err) {
			return nil, fmt.Errorf("failed to convert images: %w", err)
		}
		log.Warn().Err(err).Str("path", options.Path).Msg("Some images were kept unconverted")
	}
	if converted == nil {
		return nil, fmt.Errorf("failed to convert images")
	}

	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(options.Path)
	}
	written, err := bundle.WriteCollection(converted, outputPath)
	if err != nil {
		return written, fmt.Errorf("failed to write converted images: %w", err)
	}

	log.Info().Str("output", outputPath).Int("files", len(written)).Uint64("bytes", converted.TotalSize()).Msg("Converted images written")
	return written, nil
}

// onlyIgnored reports whether err consists solely of ignored-asset errors.
func onlyIgnored(err error) bool {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !onlyIgnored(e) {
				return false
			}
		}
		return true
	}
	var ignored *converterrors.AssetIgnoredError
	return errors.As(err, &ignored)
}
