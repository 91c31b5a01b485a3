package manager

import (
	"context"
	"fmt"
	"image"
	"runtime/debug"
	"time"

	"pixeld/internal/pipeline"
)

// Process runs the model named by modelType over img. mask is dropped for
// models that do not accept one. Unknown tags return ErrInvalidModelType;
// known tags without a processor return a processing error wrapping
// ErrModelUnavailable. Pipeline failures, panics included, come back as a
// processing error carrying the stack.
func (m *Manager) Process(ctx context.Context, modelType string, img, mask image.Image) (image.Image, error) {
	kind, ok := pipeline.ParseKind(modelType)
	if !ok {
		return nil, ErrInvalidModelType(modelType)
	}
	proc, ok := m.processor(kind)
	if !ok {
		return nil, &processingError{model: string(kind), err: ErrModelUnavailable(string(kind)), stack: debug.Stack()}
	}
	if !kind.AcceptsMask() {
		mask = nil
	}
	log := m.log.With().Str("model", string(kind)).Logger()
	ctx = log.WithContext(ctx)
	pub := m.events()

	b := img.Bounds()
	pub.Publish(Event{Name: EventProcessStart, ModelID: string(kind), Fields: map[string]any{
		"width":    b.Dx(),
		"height":   b.Dy(),
		"has_mask": mask != nil,
	}})
	log.Debug().Int("width", b.Dx()).Int("height", b.Dy()).Bool("has_mask", mask != nil).Msg("process start")

	start := time.Now()
	out, err := runProcessor(ctx, kind, proc, img, mask)
	dur := time.Since(start)
	m.record(kind, dur, err)
	pipelineDuration.WithLabelValues(string(kind)).Observe(dur.Seconds())

	if err != nil {
		pipelineRunsTotal.WithLabelValues(string(kind), "error").Inc()
		pub.Publish(Event{Name: EventProcessError, ModelID: string(kind), Fields: map[string]any{
			"error":       err.Error(),
			"duration_ms": dur.Milliseconds(),
		}})
		log.Error().Err(err).Str("stack", Traceback(err)).Dur("dur", dur).Msg("process failed")
		return nil, err
	}
	pipelineRunsTotal.WithLabelValues(string(kind), "ok").Inc()
	ob := out.Bounds()
	pub.Publish(Event{Name: EventProcessEnd, ModelID: string(kind), Fields: map[string]any{
		"width":       ob.Dx(),
		"height":      ob.Dy(),
		"duration_ms": dur.Milliseconds(),
	}})
	log.Debug().Dur("dur", dur).Msg("process end")
	return out, nil
}

// runProcessor calls proc and converts both returned errors and panics into
// processing errors.
func runProcessor(ctx context.Context, kind pipeline.Kind, proc pipeline.Processor, img, mask image.Image) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &processingError{model: string(kind), err: fmt.Errorf("panic: %v", r), stack: debug.Stack()}
		}
	}()
	out, err = proc.Process(ctx, img, mask)
	if err != nil {
		return nil, &processingError{model: string(kind), err: err, stack: debug.Stack()}
	}
	if out == nil {
		return nil, &processingError{model: string(kind), err: fmt.Errorf("%s produced no image", kind), stack: debug.Stack()}
	}
	return out, nil
}
