package types

// ModelStats holds per-model processing counters for /status.
type ModelStats struct {
	// Model tag.
	// example: inpainting
	Model string `json:"model" example:"inpainting"`
	// Whether a processor is installed.
	// example: true
	Available bool `json:"available" example:"true"`
	// Successful runs since start.
	// example: 12
	Processed uint64 `json:"processed" example:"12"`
	// Failed runs since start.
	// example: 0
	Failed uint64 `json:"failed" example:"0"`
	// Duration of the most recent run in milliseconds.
	// example: 35
	LastDurationMs int64 `json:"last_duration_ms" example:"35"`
	// Last run time (unix seconds); 0 if never run.
	// example: 1700000000
	LastRunUnix int64 `json:"last_run_unix" example:"1700000000"`
	// Most recent failure message, if any.
	LastError string `json:"last_error,omitempty"`
}
