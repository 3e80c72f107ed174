package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/belphemur/safewebp/internal/bundle"
)

// IsValidFolder checks if the provided path is a valid directory
func IsValidFolder(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DefaultOutputPath picks where converted images of path are written: next to
// a single image, in a sibling "_webp" folder for a folder, and in a sibling
// "_webp.zip" archive for an archive.
func DefaultOutputPath(path string) string {
	clean := filepath.Clean(path)
	if IsValidFolder(clean) {
		return clean + "_webp"
	}
	if bundle.IsImageFile(clean) {
		return filepath.Dir(clean)
	}
	return strings.TrimSuffix(clean, filepath.Ext(clean)) + "_webp.zip"
}
