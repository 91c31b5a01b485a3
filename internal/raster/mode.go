// Package raster holds the pixel-level building blocks shared by the
// processing pipelines: mode conversion, cropping, filters, enhancements,
// masking and the upload codec.
package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Mode is the color layout of a raster image.
type Mode string

const (
	ModeGray Mode = "L"
	ModeRGB  Mode = "RGB"
	ModeRGBA Mode = "RGBA"
)

type opaquer interface {
	Opaque() bool
}

// ModeOf reports the color mode of img. Gray image types map to ModeGray,
// fully opaque images to ModeRGB and everything else to ModeRGBA.
func ModeOf(img image.Image) Mode {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return ModeGray
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// NormalizeMode converts RGBA images to RGB by dropping the alpha channel.
// Images in any other mode are returned unchanged.
func NormalizeMode(img image.Image) image.Image {
	if ModeOf(img) != ModeRGBA {
		return img
	}
	return ToRGB(img)
}

// ToNRGBA returns a copy of img as a zero-origin *image.NRGBA.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ToRGB returns a copy of img with every alpha value forced to 255. Color
// channels are kept as stored; nothing is composited against a background.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// ToGray converts img to 8-bit luma using the ITU-R 601 weights. Alpha is
// ignored.
func ToGray(img image.Image) *image.Gray {
	src := imaging.Grayscale(img)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range d {
			d[x] = s[x*4]
		}
	}
	return dst
}
