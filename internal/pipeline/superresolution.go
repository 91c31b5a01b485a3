package pipeline

import (
	"context"
	"image"

	"github.com/rs/zerolog"

	"pixeld/internal/raster"
)

// SuperResolution sharpens and boosts contrast without changing the image
// size. The output is always opaque RGB.
type SuperResolution struct{}

func (SuperResolution) Process(ctx context.Context, img, _ image.Image) (image.Image, error) {
	b := img.Bounds()
	mode := raster.ModeOf(img)
	log := zerolog.Ctx(ctx)
	log.Debug().Str("mode", string(mode)).Int("width", b.Dx()).Int("height", b.Dy()).Msg("superresolution input")
	if mode != raster.ModeRGB {
		log.Debug().Str("from", string(mode)).Msg("converting to RGB")
	}
	rgb := raster.ToRGB(img)
	out, err := run(ctx, KindSuperResolution, rgb,
		stage{"sharpness", func(m *image.NRGBA) *image.NRGBA { return raster.Sharpness(m, 2.0) }},
		stage{"contrast", func(m *image.NRGBA) *image.NRGBA { return raster.Contrast(m, 1.2) }},
		stage{"unsharp_mask", func(m *image.NRGBA) *image.NRGBA { return raster.UnsharpMask(m, 2, 150, 3) }},
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
