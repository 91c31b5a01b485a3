package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// Format is the encoded container of an uploaded image, as reported by the
// registered image decoders.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
)

// Supported reports whether f is accepted for processing.
func (f Format) Supported() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatBMP:
		return true
	}
	return false
}

var (
	// ErrUnsupportedFormat is returned for decodable images outside JPEG/PNG/BMP.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrEmptyImage is returned for images with a zero dimension.
	ErrEmptyImage = errors.New("image has no pixels")
)

// Decode reads an encoded image from r. The container format is sniffed from
// the header before the pixel data is decoded so unsupported uploads are
// rejected cheaply.
func Decode(r io.Reader) (image.Image, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	f := Format(name)
	if !f.Supported() {
		return nil, f, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, f, ErrEmptyImage
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, f, err
	}
	return img, f, nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}
