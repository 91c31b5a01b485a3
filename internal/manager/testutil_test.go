package manager

import (
	"context"
	"errors"
	"image"
	"image/color"

	"pixeld/internal/pipeline"
)

// fakeProcessor is a lightweight in-memory processor used for tests.
type fakeProcessor struct {
	err      error
	panicVal any
	nilOut   bool
	gotMask  image.Image
	calls    int
}

func (f *fakeProcessor) Process(_ context.Context, img, mask image.Image) (image.Image, error) {
	f.calls++
	f.gotMask = mask
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.nilOut {
		return nil, nil
	}
	return img, nil
}

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}
	return img
}

var errBoom = errors.New("boom")

func newFakeManager(procs map[pipeline.Kind]pipeline.Processor) (*Manager, *MemoryPublisher) {
	pub := NewMemoryPublisher()
	m := NewWithConfig(ManagerConfig{Processors: procs, Publisher: pub})
	return m, pub
}
