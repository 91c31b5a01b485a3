package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"pixeld/internal/raster"
)

// gradient builds a w x h test image with a diagonal color ramp.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func fillImageWithColor(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func grayMask(w, h int, v uint8) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

// roundTrip encodes img in the given format and decodes it the way uploads are.
func roundTrip(t *testing.T, img image.Image, format raster.Format) image.Image {
	t.Helper()
	var buf bytes.Buffer
	switch format {
	case raster.FormatJPEG:
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	case raster.FormatPNG:
		require.NoError(t, png.Encode(&buf, img))
	case raster.FormatBMP:
		require.NoError(t, bmp.Encode(&buf, img))
	}
	out, got, err := raster.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, format, got)
	return out
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(string(k))
		assert.True(t, ok, k)
		assert.Equal(t, k, got)
	}
	for _, bad := range []string{"", "Denoising", "upscale", "inpainting "} {
		_, ok := ParseKind(bad)
		assert.False(t, ok, bad)
	}
}

func TestKindMetadata(t *testing.T) {
	assert.True(t, KindInpainting.AcceptsMask())
	assert.False(t, KindDenoising.AcceptsMask())
	assert.False(t, KindSuperResolution.AcceptsMask())
	for _, k := range Kinds() {
		assert.NotEmpty(t, k.Name())
		assert.NotEmpty(t, k.Description())
	}
}

func TestDefault_HasNoMRIProcessor(t *testing.T) {
	procs := Default()
	assert.Len(t, procs, 3)
	assert.NotContains(t, procs, KindMRI)
}

func TestProcessorsPreserveDimensions(t *testing.T) {
	formats := []raster.Format{raster.FormatJPEG, raster.FormatPNG, raster.FormatBMP}
	sizes := []image.Point{{X: 1, Y: 1}, {X: 17, Y: 9}, {X: 64, Y: 48}}
	for kind, proc := range Default() {
		for _, format := range formats {
			for _, size := range sizes {
				name := fmt.Sprintf("%s/%s/%dx%d", kind, format, size.X, size.Y)
				t.Run(name, func(t *testing.T) {
					in := roundTrip(t, gradient(size.X, size.Y), format)
					out, err := proc.Process(context.Background(), in, nil)
					require.NoError(t, err)
					require.NotNil(t, out)
					assert.Equal(t, size.X, out.Bounds().Dx())
					assert.Equal(t, size.Y, out.Bounds().Dy())
				})
			}
		}
	}
}

func TestDenoising_OutputsGray(t *testing.T) {
	out, err := Denoising{}.Process(context.Background(), gradient(20, 20), nil)
	require.NoError(t, err)
	assert.IsType(t, &image.Gray{}, out)
}

func TestDenoising_UniformStaysUniform(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	fillImageWithColor(img, color.NRGBA{R: 90, G: 160, B: 40, A: 255})
	out, err := Denoising{}.Process(context.Background(), img, nil)
	require.NoError(t, err)
	g := out.(*image.Gray)
	first := g.Pix[0]
	for i, v := range g.Pix {
		require.Equal(t, first, v, "pixel %d", i)
	}
	assert.Equal(t, raster.ToGray(img).Pix[0], first)
}

func TestInpainting_FullMaskErasesEverything(t *testing.T) {
	img := gradient(16, 12)
	out, err := Inpainting{}.Process(context.Background(), img, grayMask(16, 12, 255))
	require.NoError(t, err)
	for i, v := range out.(*image.NRGBA).Pix {
		require.Zero(t, v, "byte %d", i)
	}
}

func TestInpainting_EmptyMaskMatchesNoMask(t *testing.T) {
	img := gradient(16, 12)
	withMask, err := Inpainting{}.Process(context.Background(), img, grayMask(16, 12, 0))
	require.NoError(t, err)
	without, err := Inpainting{}.Process(context.Background(), img, nil)
	require.NoError(t, err)
	assert.Equal(t, without.(*image.NRGBA).Pix, withMask.(*image.NRGBA).Pix)
}

func TestInpainting_ResizesMask(t *testing.T) {
	img := gradient(40, 30)
	out, err := Inpainting{}.Process(context.Background(), img, grayMask(10, 5, 255))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())
	assert.Zero(t, out.(*image.NRGBA).NRGBAAt(20, 15).A)
}

func TestInpainting_DropsInputAlpha(t *testing.T) {
	img := gradient(8, 8)
	img.SetNRGBA(3, 3, color.NRGBA{R: 10, G: 10, B: 10, A: 0})
	out, err := Inpainting{}.Process(context.Background(), img, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.(*image.NRGBA).NRGBAAt(3, 3).A)
}

func TestSuperResolution_OutputIsOpaqueRGB(t *testing.T) {
	img := gradient(24, 16)
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 3})
	out, err := SuperResolution{}.Process(context.Background(), img, nil)
	require.NoError(t, err)
	assert.Equal(t, raster.ModeRGB, raster.ModeOf(out))
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestSuperResolution_AcceptsGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 9, 9))
	out, err := SuperResolution{}.Process(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, raster.ModeRGB, raster.ModeOf(out))
}

func TestProcess_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for kind, proc := range Default() {
		_, err := proc.Process(ctx, gradient(4, 4), nil)
		assert.ErrorIs(t, err, context.Canceled, kind)
	}
}
