package constant

import (
	"fmt"
	"sort"

	"github.com/thediveo/enumflag/v2"
)

type ConversionFormat enumflag.Flag

const (
	// WebP encodes in-process through libwebp.
	WebP ConversionFormat = iota
	// CWebP shells out to a downloaded cwebp binary.
	CWebP
)

var CommandValue = map[ConversionFormat][]string{
	WebP:  {"webp", "native"},
	CWebP: {"cwebp"},
}

var HelpText = enumflag.Help[ConversionFormat]{
	WebP:  "WebP through the linked libwebp",
	CWebP: "WebP through the cwebp command line encoder",
}

var DefaultConversion = WebP

func (c ConversionFormat) String() string {
	if names, ok := CommandValue[c]; ok {
		return names[0]
	}
	return fmt.Sprintf("format(%d)", int(c))
}

func ListAll() []string {
	var formats []string
	for _, names := range CommandValue {
		formats = append(formats, names[0])
	}
	sort.Strings(formats)
	return formats
}

func FindConversionFormat(format string) ConversionFormat {
	for convFormat, names := range CommandValue {
		for _, name := range names {
			if name == format {
				return convFormat
			}
		}
	}
	return DefaultConversion
}
