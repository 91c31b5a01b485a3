package manager

import "time"

// State represents the lifecycle state of the manager.
type State string

const (
	StateReady State = "ready"
	StateError State = "error"
)

// modelStats tracks per-model counters. Guarded by Manager.mu.
type modelStats struct {
	processed    uint64
	failed       uint64
	lastDuration time.Duration
	lastRun      time.Time
	lastErr      string
}
