package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is the HTTP layer's logger. Silent until SetLogger is called.
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

// parseLevel also accepts the process logger's level names, so one
// configured level drives both. warn keeps failures and drops successes.
func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "disabled", "":
		return LevelOff
	case "error", "warn", "warning", "fatal", "panic":
		return LevelError
	case "info":
		return LevelInfo
	case "debug", "trace":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies to requests without an override.
var defaultLogLevel = func() LogLevel {
	if v, ok := os.LookupEnv("CUSTINTEL_LOG_LEVEL"); ok {
		return parseLevel(v)
	}
	return LevelError
}()

// SetDefaultLogLevel sets the request log level used when a request has no override.
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
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

// logRequestEnd records the outcome of a prediction request. Failures are
// logged at LevelError and above, successes from LevelInfo.
func logRequestEnd(r *http.Request, event string, status int, start time.Time, err error) {
	lvl := requestLogLevel(r)
	if lvl == LevelOff || (err == nil && lvl < LevelInfo) {
		return
	}
	var z *zerolog.Event
	if err != nil && status >= http.StatusInternalServerError {
		z = zlog.Error().Err(err)
	} else if err != nil {
		z = zlog.Warn().Err(err)
	} else {
		z = zlog.Info()
	}
	z = z.Str("path", r.URL.Path).Int("status", status).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg(event)
}

// logRequestDebug logs request details only when the request asked for debug.
func logRequestDebug(r *http.Request, event string, fields map[string]any) {
	if requestLogLevel(r) < LevelDebug {
		return
	}
	z := zlog.Debug().Str("path", r.URL.Path).Fields(fields)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg(event)
}
