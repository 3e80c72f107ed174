package asset

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

type Asset struct {
	// Index of the asset in its collection.
	Index uint16 `json:"index" yaml:"index"`
	// Name of the source file, relative to the collection root.
	Name string `json:"name" yaml:"name"`
	// Extension of the asset contents, with the leading dot.
	Extension string `json:"extension" yaml:"extension"`
	// Size of the contents in bytes
	Size uint64 `json:"size" yaml:"size"`
	// Contents of the asset
	Contents *bytes.Buffer `json:"-" yaml:"-"`
	// IsSplitted tells if the asset is one part of a taller source image
	IsSplitted bool `json:"is_split" yaml:"is_split"`
	// SplitPartIndex is the index of the part when the source was split
	SplitPartIndex uint16 `json:"split_part_index" yaml:"split_part_index"`
}

// OutputName is the file name the converted asset is written under.
func (a *Asset) OutputName() string {
	base := filepath.Base(a.Name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "image"
	}
	if a.IsSplitted {
		return fmt.Sprintf("%s_part%d%s", base, a.SplitPartIndex, a.Extension)
	}
	return base + a.Extension
}
