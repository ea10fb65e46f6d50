package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Options configures a logger built by New.
type Options struct {
	charmlog.Options
	Writer  io.Writer
	Default bool
}

func defaultOptions() *Options {
	return &Options{
		Options: charmlog.Options{
			Level:           InfoLevel,
			ReportTimestamp: true,
		},
		Writer: os.Stderr,
	}
}

type Option func(*Options)

func UseLevel(l Level) Option {
	return func(o *Options) {
		o.Level = l
	}
}

func UseOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

func UseReportCaller(report bool) Option {
	return func(o *Options) {
		o.ReportCaller = report
	}
}

func UseTimeFormat(format string) Option {
	return func(o *Options) {
		o.TimeFormat = format
	}
}

// AsDefault installs the logger as the slog default.
func AsDefault() Option {
	return func(o *Options) {
		o.Default = true
	}
}
