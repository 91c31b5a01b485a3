package manager

import (
	"time"

	"github.com/rs/zerolog"

	"pixeld/internal/pipeline"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Processors maps each runnable model to its implementation. Nil uses
	// pipeline.Default(). Kinds without an entry fail with ErrModelUnavailable.
	Processors map[pipeline.Kind]pipeline.Processor
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
	// Logger is attached to every Process context. Nil disables logging.
	Logger *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		processors: cfg.Processors,
		publisher:  cfg.Publisher,
		stats:      make(map[pipeline.Kind]*modelStats),
		startTime:  time.Now(),
	}
	if m.processors == nil {
		m.processors = pipeline.Default()
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	} else {
		m.log = zerolog.Nop()
	}
	for _, k := range pipeline.Kinds() {
		m.stats[k] = &modelStats{}
	}
	return m
}
