package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pixeld/internal/pipeline"
	"pixeld/pkg/types"
)

type Manager struct {
	mu         sync.RWMutex
	err        string
	processors map[pipeline.Kind]pipeline.Processor
	stats      map[pipeline.Kind]*modelStats
	publisher  EventPublisher
	log        zerolog.Logger
	startTime  time.Time
}

// New returns a Manager serving the default pipelines.
func New() *Manager {
	return NewWithConfig(ManagerConfig{})
}

// SetEventPublisher replaces the event sink. Nil restores the no-op default.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

// Ready reports whether at least one model can run.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.processors) > 0
}

// ListModels returns every known model in display order.
func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	kinds := pipeline.Kinds()
	out := make([]types.Model, 0, len(kinds))
	for _, k := range kinds {
		_, ok := m.processors[k]
		out = append(out, types.Model{
			ID:          string(k),
			Name:        k.Name(),
			Description: k.Description(),
			AcceptsMask: k.AcceptsMask(),
			Available:   ok,
		})
	}
	return out
}

func (m *Manager) processor(k pipeline.Kind) (pipeline.Processor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.processors[k]
	return p, ok
}

func (m *Manager) events() EventPublisher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.publisher
}
