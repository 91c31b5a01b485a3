// Package pipeline implements the image "models" served by pixeld. Each
// model is a fixed, deterministic sequence of classical filters; nothing is
// learned or inferred.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
)

// Kind identifies a processing model by its public tag.
type Kind string

const (
	KindInpainting      Kind = "inpainting"
	KindDenoising       Kind = "denoising"
	KindSuperResolution Kind = "superresolution"
	// KindMRI is accepted by the API but has no processor.
	KindMRI Kind = "mri"
)

var kinds = []Kind{KindInpainting, KindDenoising, KindSuperResolution, KindMRI}

// Kinds returns every known model tag in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind maps a tag to its Kind. Tags are matched exactly.
func ParseKind(s string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// AcceptsMask reports whether the model consumes an optional mask upload.
func (k Kind) AcceptsMask() bool { return k == KindInpainting }

// Name is the human-friendly model name.
func (k Kind) Name() string {
	switch k {
	case KindInpainting:
		return "Inpainting"
	case KindDenoising:
		return "Denoising"
	case KindSuperResolution:
		return "Super Resolution"
	case KindMRI:
		return "MRI"
	}
	return string(k)
}

// Description summarizes what the model does to an image.
func (k Kind) Description() string {
	switch k {
	case KindInpainting:
		return "Erases masked regions, then boosts contrast and sharpness"
	case KindDenoising:
		return "Grayscale conversion with blur and median filtering"
	case KindSuperResolution:
		return "Sharpness, contrast and unsharp-mask enhancement at the original size"
	case KindMRI:
		return "Reserved for MRI reconstruction; not available"
	}
	return ""
}

// Processor runs one model over an image. mask is nil when none was
// uploaded; processors that do not use masks ignore it. Implementations must
// not modify their inputs.
type Processor interface {
	Process(ctx context.Context, img, mask image.Image) (image.Image, error)
}

// Default returns a fresh processor for every implemented model.
func Default() map[Kind]Processor {
	return map[Kind]Processor{
		KindInpainting:      Inpainting{},
		KindDenoising:       Denoising{},
		KindSuperResolution: SuperResolution{},
	}
}

// stage is one named step of a pipeline.
type stage struct {
	name string
	fn   func(*image.NRGBA) *image.NRGBA
}

// run applies stages in order. The context is checked between stages so a
// shutdown stops work at the next boundary.
func run(ctx context.Context, model Kind, img *image.NRGBA, stages ...stage) (*image.NRGBA, error) {
	log := zerolog.Ctx(ctx)
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		img = st.fn(img)
		if img == nil {
			return nil, fmt.Errorf("%s: stage %s produced no image", model, st.name)
		}
		log.Debug().Str("model", string(model)).Str("stage", st.name).Dur("dur", time.Since(start)).Msg("stage done")
	}
	return img, nil
}
