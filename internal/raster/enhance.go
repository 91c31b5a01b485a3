package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Enhancements interpolate between the image and a "degenerate" version of
// it: out = degenerate + factor*(in - degenerate). A factor of 1 returns the
// original, 0 returns the degenerate image and values above 1 push away from
// it. Alpha is never altered.

// smoothKernel is the 3x3 smoothing kernel used as the degenerate image for
// Sharpness.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// Contrast scales the distance of every color sample from the mean luma of
// the image by factor. Factor 1.2 raises contrast by 20%.
func Contrast(img image.Image, factor float64) *image.NRGBA {
	src := ToNRGBA(img)
	mean := meanLuma(src)
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i+0] = blend(mean, src.Pix[i+0], factor)
		dst.Pix[i+1] = blend(mean, src.Pix[i+1], factor)
		dst.Pix[i+2] = blend(mean, src.Pix[i+2], factor)
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

// Sharpness blends img against a smoothed copy of itself. Factor above 1
// sharpens, below 1 softens.
func Sharpness(img image.Image, factor float64) *image.NRGBA {
	src := ToNRGBA(img)
	smooth := imaging.Convolve3x3(src, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
	keepBorder(smooth, src)
	dst := image.NewNRGBA(src.Rect)
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i+0] = blend(smooth.Pix[i+0], src.Pix[i+0], factor)
		dst.Pix[i+1] = blend(smooth.Pix[i+1], src.Pix[i+1], factor)
		dst.Pix[i+2] = blend(smooth.Pix[i+2], src.Pix[i+2], factor)
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

// meanLuma returns the rounded mean ITU-R 601 luma of img.
func meanLuma(img *image.NRGBA) uint8 {
	n := len(img.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum uint64
	for i := 0; i < len(img.Pix); i += 4 {
		sum += uint64(luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
	}
	return uint8(float64(sum)/float64(n) + 0.5)
}

func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// blend interpolates from deg towards v by factor, truncating the result.
func blend(deg, v uint8, factor float64) uint8 {
	x := float64(deg) + factor*(float64(v)-float64(deg))
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// keepBorder copies the outermost ring of pixels from src into dst. The 3x3
// smoothing pass only defines interior pixels.
func keepBorder(dst, src *image.NRGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		row := y * src.Stride
		if y == 0 || y == h-1 {
			copy(dst.Pix[row:row+w*4], src.Pix[row:row+w*4])
			continue
		}
		copy(dst.Pix[row:row+4], src.Pix[row:row+4])
		if w > 1 {
			last := row + (w-1)*4
			copy(dst.Pix[last:last+4], src.Pix[last:last+4])
		}
	}
}
