package manager

import (
	"context"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	if !IsInvalidModelType(ErrInvalidModelType("x")) {
		t.Fatalf("expected IsInvalidModelType true")
	}
	if !IsModelUnavailable(fmt.Errorf("wrap: %w", ErrModelUnavailable("mri"))) {
		t.Fatalf("expected IsModelUnavailable through wrapping")
	}
	if IsProcessingError(ErrInvalidModelType("x")) {
		t.Fatalf("invalid model type is not a processing error")
	}
	if Traceback(errBoom) != "" {
		t.Fatalf("plain errors carry no traceback")
	}
	pe := &processingError{model: "denoising", err: errBoom, stack: []byte("trace")}
	if pe.Error() != "boom" || pe.Model() != "denoising" || pe.Stack() != "trace" {
		t.Fatalf("unexpected processingError accessors: %q %q %q", pe.Error(), pe.Model(), pe.Stack())
	}
}

func TestSetEventPublisher(t *testing.T) {
	m := New()
	pub := NewMemoryPublisher()
	m.SetEventPublisher(pub)
	if _, err := m.Process(context.Background(), "denoising", solid(3, 3), nil); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.Events()) != 2 {
		t.Fatalf("expected events on the new publisher, got %v", pub.Names())
	}
	m.SetEventPublisher(nil)
	if _, err := m.Process(context.Background(), "denoising", solid(3, 3), nil); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.Events()) != 2 {
		t.Fatalf("old publisher should not receive events after reset")
	}
}
