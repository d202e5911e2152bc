package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
)

// ParseLevel maps the config vocabulary (DEBUG, INFO, WARN/WARNING, ERROR)
// onto slog levels. Unknown values fall back to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w with the configured level and format.
func New(w io.Writer, conf config.LoggingConf) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(conf.Level)}
	var h slog.Handler
	if strings.EqualFold(conf.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
