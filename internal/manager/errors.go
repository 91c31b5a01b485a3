package manager

import "errors"

// invalidModelTypeError signals an unknown model tag (400).
type invalidModelTypeError struct{ tag string }

func (e invalidModelTypeError) Error() string { return "invalid model type: " + e.tag }

// ErrInvalidModelType returns an error for a tag that names no model.
func ErrInvalidModelType(tag string) error { return invalidModelTypeError{tag: tag} }

// IsInvalidModelType reports whether err indicates an unknown model tag.
func IsInvalidModelType(err error) bool {
	var e invalidModelTypeError
	return errors.As(err, &e)
}

// modelUnavailableError signals a known model with no processor installed.
// It reads as a load failure since the model exists but cannot be loaded.
type modelUnavailableError struct{ model string }

func (e modelUnavailableError) Error() string {
	return "Failed to load " + e.model + " model: not implemented"
}

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable(model string) error { return modelUnavailableError{model: model} }

// IsModelUnavailable reports whether err indicates a model without a processor.
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// processingError wraps a pipeline failure together with the stack at the
// point of failure.
type processingError struct {
	model string
	err   error
	stack []byte
}

func (e *processingError) Error() string { return e.err.Error() }

func (e *processingError) Unwrap() error { return e.err }

// Model returns the tag of the model that failed.
func (e *processingError) Model() string { return e.model }

// Stack returns the captured stack trace.
func (e *processingError) Stack() string { return string(e.stack) }

// IsProcessingError reports whether err is a pipeline failure.
func IsProcessingError(err error) bool {
	var e *processingError
	return errors.As(err, &e)
}

// Traceback returns the stack captured for a processing error, or "" when
// err carries none.
func Traceback(err error) string {
	var e *processingError
	if errors.As(err, &e) {
		return e.Stack()
	}
	return ""
}
