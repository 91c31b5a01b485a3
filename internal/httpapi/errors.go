package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pixeld/internal/manager"
	"pixeld/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// Client-facing validation messages.
const (
	msgInvalidModelType = "Invalid model type"
	msgNoImage          = "No image file provided"
	msgUnsupported      = "Unsupported image format. Please use JPEG, PNG, or BMP"
	msgUploadTooLarge   = "Upload too large"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeProcessingError writes the plain-text 500 body carrying the failure
// message and its stack trace.
func writeProcessingError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, "Error during processing: %s\nTraceback: %s", err.Error(), manager.Traceback(err))
}

// writeServiceError maps errors returned by Service.Process to a response and
// returns the status written.
func writeServiceError(w http.ResponseWriter, err error) int {
	var he HTTPError
	switch {
	case manager.IsInvalidModelType(err):
		writeJSONError(w, http.StatusBadRequest, msgInvalidModelType)
		return http.StatusBadRequest
	case errors.As(err, &he):
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	default:
		writeProcessingError(w, err)
		return http.StatusInternalServerError
	}
}
