package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// GaussianBlur blurs img with a Gaussian kernel whose standard deviation is
// radius.
func GaussianBlur(img image.Image, radius float64) *image.NRGBA {
	return imaging.Blur(img, radius)
}

// MedianFilter replaces every sample with the median of the size x size
// window around it, channel by channel. Edges are extended by replicating
// the border pixels. size must be odd; even sizes are rounded down. The
// work is done by medianBlur, which is OpenCV's when built with -tags=opencv.
func MedianFilter(img image.Image, size int) *image.NRGBA {
	src := ToNRGBA(img)
	if size%2 == 0 {
		size--
	}
	if size < 3 || len(src.Pix) == 0 {
		return src
	}
	return medianBlur(src, size)
}

// MedianBackend names the median filter implementation compiled in.
func MedianBackend() string { return medianBackend }

// UnsharpMask sharpens img by adding percent/100 of the difference between
// each sample and its Gaussian-blurred counterpart. Differences smaller than
// threshold are left alone so flat regions do not pick up noise. Alpha is
// preserved.
func UnsharpMask(img image.Image, radius float64, percent, threshold int) *image.NRGBA {
	src := ToNRGBA(img)
	blurred := imaging.Blur(src, radius)
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			in := int(src.Pix[i+c])
			diff := in - int(blurred.Pix[i+c])
			if absInt(diff) < threshold {
				dst.Pix[i+c] = uint8(in)
				continue
			}
			dst.Pix[i+c] = clip8(in + diff*percent/100)
		}
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clip8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
