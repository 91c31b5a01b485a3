// Package manager coordinates image processing requests between the HTTP
// layer and the pipelines. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and defaults; NewWithConfig applies them.
//   - types.go: internal state types (State, modelStats).
//   - errors.go: error types and helpers (IsInvalidModelType, IsModelUnavailable).
//   - process.go: Process entry point with panic recovery and accounting.
//   - status_report.go: Status reporting for /status.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - metrics.go: Prometheus pipeline metrics.
//
// External packages should use public methods only (New/NewWithConfig,
// Ready, ListModels, Status, Process).
package manager
