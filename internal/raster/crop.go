package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultDivisor is the crop divisor used when none is configured.
const DefaultDivisor = 32

var (
	// ErrInvalidDivisor is returned for divisors smaller than 1.
	ErrInvalidDivisor = errors.New("divisor must be a positive integer")
	// ErrTooSmall is returned when a dimension is smaller than the divisor.
	ErrTooSmall = errors.New("image is smaller than the crop divisor")
)

// CropToMultiple center-crops img so that its width and height are both
// multiples of divisor. Leftover pixels are split evenly, with the extra
// pixel of an odd remainder going to the right and bottom edges.
func CropToMultiple(img image.Image, divisor int) (image.Image, error) {
	if divisor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDivisor, divisor)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nw, nh := w-w%divisor, h-h%divisor
	if nw == 0 || nh == 0 {
		return nil, fmt.Errorf("%w: %dx%d, divisor %d", ErrTooSmall, w, h, divisor)
	}
	if nw == w && nh == h {
		return img, nil
	}
	left := b.Min.X + (w-nw)/2
	top := b.Min.Y + (h-nh)/2
	return imaging.Crop(img, image.Rect(left, top, left+nw, top+nh)), nil
}
