package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/belphemur/safewebp/internal/asset"
	"github.com/belphemur/safewebp/pkg/converter/constant"
	"github.com/belphemur/safewebp/pkg/converter/webp"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

type Converter interface {
	// Format of the converter
	Format() (format constant.ConversionFormat)
	// ConvertCollection converts every image of the collection to WebP.
	//
	// Returns partial success where some assets are converted and some are not.
	ConvertCollection(ctx context.Context, collection *asset.Collection, quality uint8, lossless bool, split bool, progress func(message string, current uint32, total uint32)) (*asset.Collection, error)
	PrepareConverter() error
}

var converters = map[constant.ConversionFormat]Converter{
	constant.WebP:  webp.New(),
	constant.CWebP: webp.NewCWebP(),
}

// Available returns a list of available converters.
func Available() []constant.ConversionFormat {
	formats := lo.Keys(converters)
	slices.Sort(formats)
	return formats
}

// Get returns a converter by format.
// If the converter is not available, an error is returned.
var Get = getConverter

func getConverter(name constant.ConversionFormat) (Converter, error) {
	if converter, ok := converters[name]; ok {
		return converter, nil
	}

	return nil, fmt.Errorf("unknown converter \"%s\", available options are %s", name, strings.Join(lo.Map(Available(), func(item constant.ConversionFormat, index int) string {
		return item.String()
	}), ", "))
}
