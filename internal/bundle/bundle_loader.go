package bundle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/belphemur/safewebp/internal/asset"
	"github.com/belphemur/safewebp/internal/utils/errs"
	"github.com/mholt/archives"
	"github.com/rs/zerolog/log"
)

// imageExtensions lists the inputs the converters know how to decode.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImageFile reports whether name has an extension the converters can decode.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadCollection reads every image below filePath. filePath may be a folder,
// any archive format understood by mholt/archives, or a single image file.
func LoadCollection(ctx context.Context, filePath string) (*asset.Collection, error) {
	log.Debug().Str("file_path", filePath).Msg("Starting collection loading")

	collection := &asset.Collection{
		Path: filePath,
	}

	log.Debug().Str("file_path", filePath).Msg("Opening file system")
	fsys, err := archives.FileSystem(ctx, filePath, nil)
	if err != nil {
		log.Error().Str("file_path", filePath).Err(err).Msg("Failed to open file system")
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}

	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		name := path
		if name == "." {
			name = filepath.Base(filePath)
		}
		if !IsImageFile(name) {
			log.Debug().Str("file_path", filePath).Str("entry", path).Msg("Skipping non-image entry")
			return nil
		}

		return func() (err error) {
			file, err := fsys.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", path, err)
			}
			defer errs.Capture(&err, file.Close, fmt.Sprintf("failed to close file %s", path))

			buf := new(bytes.Buffer)
			bytesCopied, err := io.Copy(buf, file)
			if err != nil {
				log.Error().Str("file_path", filePath).Str("entry", path).Err(err).Msg("Failed to read image contents")
				return fmt.Errorf("failed to read file contents: %w", err)
			}

			a := &asset.Asset{
				Index:     uint16(len(collection.Assets)),
				Name:      name,
				Extension: strings.ToLower(filepath.Ext(name)),
				Size:      uint64(buf.Len()),
				Contents:  buf,
			}
			collection.Assets = append(collection.Assets, a)
			log.Debug().
				Str("file_path", filePath).
				Str("entry", path).
				Uint16("asset_index", a.Index).
				Int64("bytes_read", bytesCopied).
				Msg("Asset loaded successfully")
			return nil
		}()
	})
	if err != nil {
		log.Error().Str("file_path", filePath).Err(err).Msg("Failed during filesystem walk")
		return nil, err
	}

	log.Debug().
		Str("file_path", filePath).
		Int("assets_loaded", len(collection.Assets)).
		Msg("Collection loading completed successfully")

	return collection, nil
}
