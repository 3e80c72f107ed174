package bundle

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/belphemur/safewebp/internal/asset"
	"github.com/belphemur/safewebp/internal/utils/errs"
	"github.com/rs/zerolog/log"
)

// WriteCollection writes every asset with contents to outputPath. A path
// ending in .zip produces an archive, anything else a folder.
func WriteCollection(collection *asset.Collection, outputPath string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(outputPath), ".zip") {
		return WriteCollectionToZip(collection, outputPath)
	}
	return WriteCollectionToDir(collection, outputPath)
}

// WriteCollectionToDir writes each asset as its own file and returns the paths written.
func WriteCollectionToDir(collection *asset.Collection, outputDir string) ([]string, error) {
	log.Debug().Str("collection", collection.Path).Str("output_dir", outputDir).Int("asset_count", len(collection.Assets)).Msg("Writing collection to folder")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	written := make([]string, 0, len(collection.Assets))
	for _, a := range collection.Assets {
		if a.Contents == nil {
			log.Warn().Str("asset", a.Name).Msg("Asset has no contents, skipping")
			continue
		}
		path := filepath.Join(outputDir, a.OutputName())
		if err := os.WriteFile(path, a.Contents.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Debug().Str("path", path).Int("size", a.Contents.Len()).Msg("Asset written")
		written = append(written, path)
	}
	return written, nil
}

// WriteCollectionToZip stores every asset in a new zip archive. The returned
// slice holds the archive entry names.
func WriteCollectionToZip(collection *asset.Collection, outputFilePath string) (written []string, err error) {
	log.Debug().Str("collection", collection.Path).Str("output_path", outputFilePath).Int("asset_count", len(collection.Assets)).Msg("Starting zip creation")

	zipFile, err := os.Create(outputFilePath)
	if err != nil {
		log.Error().Str("output_path", outputFilePath).Err(err).Msg("Failed to create zip file")
		return nil, fmt.Errorf("failed to create zip file: %w", err)
	}
	defer errs.Capture(&err, zipFile.Close, "failed to close zip file")

	zipWriter := zip.NewWriter(zipFile)
	defer errs.Capture(&err, zipWriter.Close, "failed to close zip writer")

	for _, a := range collection.Assets {
		if a.Contents == nil {
			log.Warn().Str("asset", a.Name).Msg("Asset has no contents, skipping")
			continue
		}
		fileName := a.OutputName()

		// WebP is already compressed.
		fileWriter, err := zipWriter.CreateHeader(&zip.FileHeader{
			Name:     fileName,
			Method:   zip.Store,
			Modified: time.Now(),
		})
		if err != nil {
			log.Error().Str("output_path", outputFilePath).Str("filename", fileName).Err(err).Msg("Failed to create file in zip archive")
			return written, fmt.Errorf("failed to create file in zip: %w", err)
		}

		bytesWritten, err := fileWriter.Write(a.Contents.Bytes())
		if err != nil {
			log.Error().Str("output_path", outputFilePath).Str("filename", fileName).Err(err).Msg("Failed to write asset contents")
			return written, fmt.Errorf("failed to write asset contents: %w", err)
		}
		log.Debug().Str("output_path", outputFilePath).Str("filename", fileName).Int("bytes_written", bytesWritten).Msg("Asset written successfully")
		written = append(written, fileName)
	}

	log.Debug().Str("output_path", outputFilePath).Msg("Zip creation completed successfully")
	return written, nil
}
