package manager

import (
	"time"

	"pixeld/internal/pipeline"
	"pixeld/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	state := StateReady
	if len(m.processors) == 0 {
		state = StateError
	}
	resp := types.StatusResponse{
		State:          string(state),
		LastError:      m.err,
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
	kinds := pipeline.Kinds()
	resp.Models = make([]types.ModelStats, 0, len(kinds))
	for _, k := range kinds {
		st := m.stats[k]
		_, ok := m.processors[k]
		ms := types.ModelStats{
			Model:          string(k),
			Available:      ok,
			Processed:      st.processed,
			Failed:         st.failed,
			LastDurationMs: st.lastDuration.Milliseconds(),
			LastError:      st.lastErr,
		}
		if !st.lastRun.IsZero() {
			ms.LastRunUnix = st.lastRun.Unix()
		}
		resp.ProcessedTotal += st.processed
		resp.FailedTotal += st.failed
		resp.Models = append(resp.Models, ms)
	}
	return resp
}

// record updates counters for one finished run.
func (m *Manager) record(k pipeline.Kind, dur time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stats[k]
	st.lastDuration = dur
	st.lastRun = time.Now()
	if err != nil {
		st.failed++
		st.lastErr = err.Error()
		m.err = err.Error()
		return
	}
	st.processed++
}
