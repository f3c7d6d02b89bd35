package mlfqsim

import (
	"io"
	"log/slog"
	"strings"
)

// BuildLogger returns a text logger for the given level name ("debug",
// "info", "warn", "error"), writing to w.
func BuildLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}

func IntAttr(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func StringAttr(key, value string) slog.Attr {
	return slog.String(key, value)
}

func TimeAttr(key string, t Time) slog.Attr {
	return slog.Int64(key, int64(t))
}

func PidAttr(id Tid) slog.Attr {
	return slog.Int("pid", int(id))
}
