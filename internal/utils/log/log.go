// Package log builds the slog loggers used by tidyup on top of
// charmbracelet/log.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/babarot/tidyup/internal/config"
	charmlog "github.com/charmbracelet/log"
)

// New creates a logger with the given options.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(newStyles())
	logger := slog.New(handler)

	if o.Default {
		slog.SetDefault(logger)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(UseOutput(io.Discard), UseLevel(FatalLevel))
}

// Important logs msg on l at ImportantLevel.
func Important(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), slog.Level(ImportantLevel), msg, args...)
}

// Setup builds the process logger from the logging section of the config
// and installs it as the slog default. When logging is disabled only
// warnings and above are written, to stderr. The returned func closes the
// log file.
func Setup(cfg config.LoggingConfig, path string) (*slog.Logger, func() error, error) {
	if !cfg.Enabled {
		logger := New(
			UseOutput(os.Stderr),
			UseLevel(WarnLevel),
			UseTimeFormat(time.Kitchen),
			AsDefault(),
		)
		return logger, func() error { return nil }, nil
	}

	w, err := NewRotateWriter(path, cfg.Rotation)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := ParseLevel(cfg.Level)
	logger := New(
		UseOutput(w),
		UseLevel(level),
		UseReportCaller(level == DebugLevel),
		UseTimeFormat(time.DateTime),
		AsDefault(),
	)
	return logger, w.Close, nil
}
