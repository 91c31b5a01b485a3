//go:build !opencv

package raster

import (
	"image"
	"slices"
)

const medianBackend = "go"

// medianBlur is the pure Go median used when OpenCV is not linked in. src
// must be a zero-origin image and size odd and at least 3.
func medianBlur(src *image.NRGBA, size int) *image.NRGBA {
	half := size / 2
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(src.Rect)
	window := make([]uint8, 0, size*size)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*dst.Stride + x*4
			for c := 0; c < 4; c++ {
				window = window[:0]
				for dy := -half; dy <= half; dy++ {
					sy := clampInt(y+dy, 0, h-1)
					for dx := -half; dx <= half; dx++ {
						sx := clampInt(x+dx, 0, w-1)
						window = append(window, src.Pix[sy*src.Stride+sx*4+c])
					}
				}
				slices.Sort(window)
				dst.Pix[o+c] = window[len(window)/2]
			}
		}
	}
	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
