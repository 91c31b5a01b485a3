//go:build opencv

package raster

import (
	"image"

	"gocv.io/x/gocv"
)

const medianBackend = "opencv"

// medianBlur runs cv::medianBlur over the four NRGBA channels. OpenCV
// replicates the border for median filtering, same as the Go fallback. src
// must be a zero-origin image with a tight stride. A Mat that cannot be
// built leaves src unfiltered.
func medianBlur(src *image.NRGBA, size int) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	in, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, append([]byte(nil), src.Pix...))
	if err != nil {
		return src
	}
	defer in.Close()
	out := gocv.NewMat()
	defer out.Close()
	gocv.MedianBlur(in, &out, size)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(dst.Pix, out.ToBytes())
	return dst
}
