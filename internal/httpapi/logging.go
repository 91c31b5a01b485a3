package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the structured logger for the HTTP layer. Nop until SetLogger.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = func() LogLevel {
	if v, ok := os.LookupEnv("PIXELD_LOG_LEVEL"); ok {
		return parseLevel(v)
	}
	return LevelInfo
}()

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// requestLogger carries the per-request fields shared by the start and end
// lines of one process call.
type requestLogger struct {
	lvl   LogLevel
	log   zerolog.Logger
	start time.Time
}

func newRequestLogger(r *http.Request, model string) *requestLogger {
	c := zlog.With().Str("path", r.URL.Path).Str("model", model)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		c = c.Str("request_id", rid)
	}
	return &requestLogger{lvl: requestLogLevel(r), log: c.Logger(), start: time.Now()}
}

func (l *requestLogger) started() {
	if l.lvl >= LevelInfo {
		l.log.Info().Msg("process start")
	}
}

// finished logs the end line. Failures are logged from LevelError up,
// successes from LevelInfo.
func (l *requestLogger) finished(status int, err error) {
	if l.lvl < LevelError || (err == nil && l.lvl < LevelInfo) {
		return
	}
	ev := l.log.Info()
	if err != nil {
		ev = l.log.Error().Err(err)
	}
	ev.Int("status", status).Dur("dur", time.Since(l.start)).Msg("process end")
}

// debug exposes the logger when the request asked for debug output.
func (l *requestLogger) debug() *zerolog.Event {
	if l.lvl < LevelDebug {
		return nil
	}
	return l.log.Debug()
}
