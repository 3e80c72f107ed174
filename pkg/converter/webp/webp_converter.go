package webp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/belphemur/safewebp/internal/asset"
	"github.com/belphemur/safewebp/pkg/converter/constant"
	converterrors "github.com/belphemur/safewebp/pkg/converter/errors"
	"github.com/oliamb/cutter"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	_ "golang.org/x/image/webp"
)

// webpMaxDimension is the largest width or height a WebP bitstream can carry.
const webpMaxDimension = 16383

type Converter struct {
	format     constant.ConversionFormat
	encode     encodeFunc
	prepare    func() error
	maxHeight  int
	cropHeight int

	prepareOnce sync.Once
	prepareErr  error
}

func (converter *Converter) Format() (format constant.ConversionFormat) {
	return converter.format
}

// New returns a converter that encodes through the linked libwebp.
func New() *Converter {
	return newConverter(constant.WebP, EncodeNative, PrepareNative)
}

// NewCWebP returns a converter that encodes with the cwebp binary.
func NewCWebP() *Converter {
	return newConverter(constant.CWebP, Encode, PrepareEncoder)
}

func newConverter(format constant.ConversionFormat, encode encodeFunc, prepare func() error) *Converter {
	return &Converter{
		format:     format,
		encode:     encode,
		prepare:    prepare,
		maxHeight:  4000,
		cropHeight: 2000,
	}
}

func (converter *Converter) PrepareConverter() error {
	converter.prepareOnce.Do(func() {
		converter.prepareErr = converter.prepare()
	})
	return converter.prepareErr
}

func (converter *Converter) ConvertCollection(ctx context.Context, collection *asset.Collection, quality uint8, lossless bool, split bool, progress func(message string, current uint32, total uint32)) (*asset.Collection, error) {
	err := converter.PrepareConverter()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var wgConverted sync.WaitGroup
	maxGoroutines := runtime.NumCPU()

	containerChan := make(chan *asset.Container, maxGoroutines)
	errChan := make(chan error, maxGoroutines)
	doneChan := make(chan struct{})

	var errList []error
	errDone := make(chan struct{})
	go func() {
		for err := range errChan {
			errList = append(errList, err)
		}
		close(errDone)
	}()

	var wgAssets sync.WaitGroup
	wgAssets.Add(len(collection.Assets))

	guard := make(chan struct{}, maxGoroutines)
	assetsMutex := sync.Mutex{}
	var assets []*asset.Asset
	var totalAssets = uint32(len(collection.Assets))

	// Start the worker pool
	go func() {
		for container := range containerChan {
			guard <- struct{}{} // would block if guard channel is already filled
			go func(toConvert *asset.Container) {
				defer func() {
					wgConverted.Done()
					<-guard
				}()

				converted, err := converter.convertAsset(ctx, toConvert, quality, lossless)
				if err != nil {
					errChan <- fmt.Errorf("%s: %w", toConvert.Asset.Name, err)
					converted = toConvert
				}
				assetsMutex.Lock()
				assets = append(assets, converted.Asset)
				if progress != nil {
					progress(fmt.Sprintf("Converted %d/%d images to %s", len(assets), atomic.LoadUint32(&totalAssets), converter.Format()), uint32(len(assets)), atomic.LoadUint32(&totalAssets))
				}
				assetsMutex.Unlock()
			}(container)
		}
		close(doneChan)
	}()

	for _, a := range collection.Assets {
		go func(a *asset.Asset) {
			defer wgAssets.Done()

			splitNeeded, img, format, err := converter.checkAssetNeedsSplit(a, split)
			if err != nil {
				errChan <- err
				wgConverted.Add(1)
				containerChan <- asset.NewContainer(a, img, format, false)
				return
			}

			if !splitNeeded {
				wgConverted.Add(1)
				containerChan <- asset.NewContainer(a, img, format, true)
				return
			}

			images, err := converter.cropImage(img)
			if err != nil {
				errChan <- err
				wgConverted.Add(1)
				containerChan <- asset.NewContainer(a, img, format, false)
				return
			}

			atomic.AddUint32(&totalAssets, uint32(len(images)-1))
			for i, img := range images {
				part := &asset.Asset{
					Index:          a.Index,
					Name:           a.Name,
					Extension:      a.Extension,
					IsSplitted:     true,
					SplitPartIndex: uint16(i),
				}
				wgConverted.Add(1)
				containerChan <- asset.NewContainer(part, img, "N/A", true)
			}
		}(a)
	}

	wgAssets.Wait()
	close(containerChan)

	// Wait for all conversions to complete
	<-doneChan
	wgConverted.Wait()
	close(errChan)
	close(guard)
	<-errDone

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var aggregatedError error = nil
	if len(errList) > 0 {
		aggregatedError = errors.Join(errList...)
	}

	slices.SortFunc(assets, func(a, b *asset.Asset) int {
		if a.Index == b.Index {
			return int(a.SplitPartIndex) - int(b.SplitPartIndex)
		}
		return int(a.Index) - int(b.Index)
	})
	collection.Assets = assets

	log.Debug().Str("path", collection.Path).Int("assets", len(assets)).Int("errors", len(errList)).Msg("Collection converted")
	return collection, aggregatedError
}

func (converter *Converter) cropImage(img image.Image) ([]image.Image, error) {
	bounds := img.Bounds()
	height := bounds.Dy()

	numParts := height / converter.cropHeight
	if height%converter.cropHeight != 0 {
		numParts++
	}

	parts := make([]image.Image, numParts)

	for i := 0; i < numParts; i++ {
		partHeight := converter.cropHeight
		if i == numParts-1 {
			partHeight = height - i*converter.cropHeight
		}

		part, err := cutter.Crop(img, cutter.Config{
			Width:  bounds.Dx(),
			Height: partHeight,
			Anchor: image.Point{Y: i * converter.cropHeight},
			Mode:   cutter.TopLeft,
		})
		if err != nil {
			return nil, fmt.Errorf("error cropping part %d: %v", i+1, err)
		}

		parts[i] = part
	}

	return parts, nil
}

func (converter *Converter) checkAssetNeedsSplit(a *asset.Asset, splitRequested bool) (bool, image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(a.Contents.Bytes()))
	if err != nil {
		return false, nil, format, fmt.Errorf("%s: %w", a.Name, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > webpMaxDimension {
		return false, img, format, converterrors.NewAssetIgnored(fmt.Sprintf("%s is too wide [max: %dpx] to be converted to webp format", a.Name, webpMaxDimension))
	}
	height := bounds.Dy()
	if height > webpMaxDimension && !splitRequested {
		return false, img, format, converterrors.NewAssetIgnored(fmt.Sprintf("%s is too tall [max: %dpx] to be converted to webp format", a.Name, webpMaxDimension))
	}
	return height >= converter.maxHeight && splitRequested, img, format, nil
}

func (converter *Converter) convertAsset(ctx context.Context, container *asset.Container, quality uint8, lossless bool) (*asset.Container, error) {
	if container.Format == "webp" {
		container.Asset.Extension = ".webp"
		return container, nil
	}
	if !container.IsToBeConverted {
		return container, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := converter.encode(&buf, container.Image, uint(quality), lossless); err != nil {
		return nil, err
	}
	container.SetConverted(&buf, ".webp")
	return container, nil
}
