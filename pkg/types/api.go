package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of known models.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Invalid model type
	Error string `json:"error" example:"Invalid model type"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Per-model counters, in model display order.
	Models []ModelStats `json:"models"`
	// Overall state (ready or error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last error observed by any model.
	LastError string `json:"last_error,omitempty"`
	// Total successful runs across all models.
	// example: 40
	ProcessedTotal uint64 `json:"processed_total" example:"40"`
	// Total failed runs across all models.
	// example: 1
	FailedTotal uint64 `json:"failed_total" example:"1"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
