package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"pixeld/internal/raster"
)

// Inpainting erases the masked part of an image and enhances the rest.
// Without a mask only the enhancement runs. Mask value 255 removes a pixel
// entirely, 0 keeps it.
type Inpainting struct{}

func (Inpainting) Process(ctx context.Context, img, mask image.Image) (image.Image, error) {
	rgba := raster.ToNRGBA(raster.NormalizeMode(img))
	stages := []stage{
		{"contrast", func(m *image.NRGBA) *image.NRGBA { return raster.Contrast(m, 1.2) }},
		{"sharpness", func(m *image.NRGBA) *image.NRGBA { return raster.Sharpness(m, 1.1) }},
	}
	if mask != nil {
		b := rgba.Bounds()
		gm := raster.ResizeMask(mask, b.Dx(), b.Dy())
		erased, err := raster.ApplyEraseMask(rgba, gm)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("inpainting: apply mask")
			return nil, fmt.Errorf("inpainting: %w", err)
		}
		rgba = erased
	}
	return run(ctx, KindInpainting, rgba, stages...)
}
