package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/belphemur/safewebp/internal/bundle"
	"github.com/belphemur/safewebp/internal/utils"
	"github.com/belphemur/safewebp/pkg/converter"
	"github.com/belphemur/safewebp/pkg/converter/constant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

var converterType constant.ConversionFormat

func init() {
	AddCommand(newEncodeCommand())
}

func newEncodeCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "encode [path...]",
		Short: "Convert images to WebP",
		Long:  "Convert images to WebP.\nEach path may be a single image, a folder (walked recursively) or an archive (zip, cbz, tar, 7z, ...).\nThe sources are kept intact; converted files go next to them or into --output.",
		RunE:  EncodeCommand,
		Args:  cobra.MinimumNArgs(1),
	}
	formatFlag := enumflag.New(&converterType, "format", constant.CommandValue, enumflag.EnumCaseInsensitive)
	_ = formatFlag.RegisterCompletion(command, "format", constant.HelpText)

	command.Flags().Uint8P("quality", "q", 85, "Quality for conversion (0-100)")
	_ = viper.BindPFlag("quality", command.Flags().Lookup("quality"))
	command.Flags().Bool("lossless", false, "Encode losslessly")
	_ = viper.BindPFlag("lossless", command.Flags().Lookup("lossless"))
	command.Flags().IntP("parallelism", "n", 2, "Number of paths to convert in parallel")
	command.Flags().StringP("output", "o", "", "Output folder (or .zip file for a single path)")
	command.Flags().BoolP("split", "s", false, "Split images taller than the WebP limit into parts")
	command.Flags().DurationP("timeout", "t", 0, "Maximum time allowed for converting a single path (e.g., 30s, 5m, 1h). 0 means no timeout")
	_ = viper.BindPFlag("timeout", command.Flags().Lookup("timeout"))
	command.PersistentFlags().VarP(
		formatFlag,
		"format", "f",
		fmt.Sprintf("Encoder backend: %s", constant.ListAll()))
	command.PersistentFlags().Lookup("format").NoOptDefVal = constant.DefaultConversion.String()

	return command
}

// outputFor maps one input path to its destination under outputDir.
func outputFor(input, outputDir string, single bool) string {
	if outputDir == "" {
		return ""
	}
	if single || bundle.IsImageFile(input) {
		return outputDir
	}
	return filepath.Join(outputDir, filepath.Base(utils.DefaultOutputPath(input)))
}

func EncodeCommand(cmd *cobra.Command, args []string) error {
	quality, err := cmd.Flags().GetUint8("quality")
	if err != nil || quality > 100 {
		return fmt.Errorf("invalid quality value")
	}

	lossless, err := cmd.Flags().GetBool("lossless")
	if err != nil {
		return fmt.Errorf("invalid lossless value")
	}

	split, err := cmd.Flags().GetBool("split")
	if err != nil {
		return fmt.Errorf("invalid split value")
	}

	parallelism, err := cmd.Flags().GetInt("parallelism")
	if err != nil || parallelism < 1 {
		return fmt.Errorf("invalid parallelism value")
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("invalid output value")
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("invalid timeout value")
	}

	imageConverter, err := converter.Get(converterType)
	if err != nil {
		return fmt.Errorf("failed to get converter: %w", err)
	}

	err = imageConverter.PrepareConverter()
	if err != nil {
		return fmt.Errorf("failed to prepare converter: %w", err)
	}

	// Channel to manage the paths to process
	pathChan := make(chan string)
	// Channel to collect errors
	errorChan := make(chan error, len(args))

	var wg sync.WaitGroup
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathChan {
				written, err := utils.Convert(&utils.ConvertOptions{
					Converter:  imageConverter,
					Path:       path,
					OutputPath: outputFor(path, output, len(args) == 1),
					Quality:    quality,
					Lossless:   lossless,
					Split:      split,
					Timeout:    timeout,
				})
				if err != nil {
					errorChan <- fmt.Errorf("error processing %s: %w", path, err)
					continue
				}
				log.Debug().Str("path", path).Int("files", len(written)).Msg("Path converted")
			}
		}()
	}

	for _, path := range args {
		pathChan <- path
	}
	close(pathChan)
	wg.Wait()
	close(errorChan)

	var errs []error
	for err := range errorChan {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
