package commands

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/belphemur/safewebp/internal/bundle"
	"github.com/belphemur/safewebp/internal/utils"
	"github.com/belphemur/safewebp/pkg/converter"
	"github.com/belphemur/safewebp/pkg/converter/constant"
	"github.com/pablodz/inotifywaitgo/inotifywaitgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

var watchedArchives = []string{".zip", ".cbz", ".cbr", ".tar", ".7z"}

func init() {
	if runtime.GOOS != "linux" {
		return
	}
	command := &cobra.Command{
		Use:   "watch [folder]",
		Short: "Watch a folder for new images and archives",
		Long:  "Watch a folder for new images and archives.\nEvery new PNG, JPEG or GIF is converted to WebP next to the original; archives are converted into a sibling _webp.zip.",
		RunE:  WatchCommand,
		Args:  cobra.ExactArgs(1),
	}
	formatFlag := enumflag.New(&converterType, "format", constant.CommandValue, enumflag.EnumCaseInsensitive)
	_ = formatFlag.RegisterCompletion(command, "format", constant.HelpText)

	command.Flags().Uint8P("quality", "q", 85, "Quality for conversion (0-100)")
	_ = viper.BindPFlag("quality", command.Flags().Lookup("quality"))

	command.Flags().Bool("lossless", false, "Encode losslessly")
	_ = viper.BindPFlag("lossless", command.Flags().Lookup("lossless"))

	command.Flags().BoolP("split", "s", false, "Split images taller than the WebP limit into parts")
	_ = viper.BindPFlag("split", command.Flags().Lookup("split"))

	command.Flags().DurationP("timeout", "t", 0, "Maximum time allowed for converting a single file (e.g., 30s, 5m, 1h). 0 means no timeout")
	_ = viper.BindPFlag("timeout", command.Flags().Lookup("timeout"))

	command.PersistentFlags().VarP(
		formatFlag,
		"format", "f",
		fmt.Sprintf("Encoder backend: %s", constant.ListAll()))
	command.PersistentFlags().Lookup("format").NoOptDefVal = constant.DefaultConversion.String()
	_ = viper.BindPFlag("format", command.PersistentFlags().Lookup("format"))

	AddCommand(command)
}

// shouldConvert reports whether a file event should trigger a conversion.
// WebP files and our own archive outputs are skipped so results do not loop.
func shouldConvert(filename string) bool {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".webp") || strings.HasSuffix(name, "_webp.zip") {
		return false
	}
	if bundle.IsImageFile(name) {
		return true
	}
	ext := filepath.Ext(name)
	for _, archive := range watchedArchives {
		if ext == archive {
			return true
		}
	}
	return false
}

func WatchCommand(_ *cobra.Command, args []string) error {
	path := args[0]
	if path == "" {
		return fmt.Errorf("path is required")
	}

	if !utils.IsValidFolder(path) {
		return fmt.Errorf("the path needs to be a folder")
	}

	quality := uint8(viper.GetUint16("quality"))
	if quality > 100 {
		return fmt.Errorf("invalid quality value")
	}

	lossless := viper.GetBool("lossless")

	split := viper.GetBool("split")

	timeout := viper.GetDuration("timeout")

	converterType := constant.FindConversionFormat(viper.GetString("format"))
	imageConverter, err := converter.Get(converterType)
	if err != nil {
		return fmt.Errorf("failed to get converter: %w", err)
	}

	err = imageConverter.PrepareConverter()
	if err != nil {
		return fmt.Errorf("failed to prepare converter: %w", err)
	}
	log.Info().Str("path", path).Bool("lossless", lossless).Uint8("quality", quality).Str("format", converterType.String()).Bool("split", split).Msg("Watching directory")

	events := make(chan inotifywaitgo.FileEvent)
	errors := make(chan error)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		inotifywaitgo.WatchPath(&inotifywaitgo.Settings{
			Dir:        path,
			FileEvents: events,
			ErrorChan:  errors,
			Options: &inotifywaitgo.Options{
				Recursive: true,
				Events: []inotifywaitgo.EVENT{
					inotifywaitgo.MOVE,
					inotifywaitgo.CLOSE_WRITE,
				},
				Monitor: true,
			},
			Verbose: true,
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for event := range events {
			log.Debug().Str("file", event.Filename).Interface("events", event.Events).Msg("File event")

			if !shouldConvert(event.Filename) {
				continue
			}

			for _, e := range event.Events {
				switch e {
				case inotifywaitgo.CLOSE_WRITE, inotifywaitgo.MOVE:
					written, err := utils.Convert(&utils.ConvertOptions{
						Converter: imageConverter,
						Path:      event.Filename,
						Quality:   quality,
						Lossless:  lossless,
						Split:     split,
						Timeout:   timeout,
					})
					if err != nil {
						errors <- fmt.Errorf("error processing file %s: %w", event.Filename, err)
						continue
					}
					log.Info().Str("file", event.Filename).Strs("written", written).Msg("File converted")
				default:
					// ignored
				}
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range errors {
			log.Error().Err(err).Msg("Watch error")
		}
	}()

	wg.Wait()
	return nil
}
