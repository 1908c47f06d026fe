// Package logger builds slog loggers from a level and a format, and adapts
// them to the field-map bigstock.Logger interface.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/fivetwenty-io/bigstock/pkg/bigstock"
)

// New creates a *slog.Logger writing to stderr.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a *slog.Logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a level string to slog.Level. Unknown values are LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FieldLogger adapts a *slog.Logger to bigstock.Logger.
type FieldLogger struct {
	logger *slog.Logger
}

var _ bigstock.Logger = (*FieldLogger)(nil)

// NewFieldLogger wraps l. A nil l uses slog.Default().
func NewFieldLogger(l *slog.Logger) *FieldLogger {
	if l == nil {
		l = slog.Default()
	}

	return &FieldLogger{logger: l}
}

// Debug logs at debug level.
func (f *FieldLogger) Debug(msg string, fields map[string]interface{}) {
	f.log(slog.LevelDebug, msg, fields)
}

// Info logs at info level.
func (f *FieldLogger) Info(msg string, fields map[string]interface{}) {
	f.log(slog.LevelInfo, msg, fields)
}

// Warn logs at warn level.
func (f *FieldLogger) Warn(msg string, fields map[string]interface{}) {
	f.log(slog.LevelWarn, msg, fields)
}

// Error logs at error level.
func (f *FieldLogger) Error(msg string, fields map[string]interface{}) {
	f.log(slog.LevelError, msg, fields)
}

// log emits fields as attributes sorted by key so output is stable.
func (f *FieldLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	ctx := context.Background()
	if !f.logger.Enabled(ctx, level) {
		return
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	f.logger.LogAttrs(ctx, level, msg, attrs...)
}
