package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ResizeMask converts mask to grayscale and scales it to width x height.
// A mask that already has the requested size is only converted.
func ResizeMask(mask image.Image, width, height int) *image.Gray {
	b := mask.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return ToGray(mask)
	}
	return ToGray(imaging.Resize(mask, width, height, imaging.CatmullRom))
}

// ApplyEraseMask multiplies every channel of img, alpha included, by
// (255-m)/255 where m is the mask value at the same pixel. A mask value of
// 255 erases the pixel to transparent black, 0 leaves it untouched. The mask
// must have the same dimensions as img.
func ApplyEraseMask(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	src := ToNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	mb := mask.Bounds()
	if mb.Dx() != w || mb.Dy() != h {
		return nil, fmt.Errorf("mask size %dx%d does not match image size %dx%d", mb.Dx(), mb.Dy(), w, h)
	}
	dst := image.NewNRGBA(src.Rect)
	for y := 0; y < h; y++ {
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			keep := float64(255-mrow[x]) / 255.0
			i := y*src.Stride + x*4
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8(float64(src.Pix[i+c]) * keep)
			}
		}
	}
	return dst, nil
}
