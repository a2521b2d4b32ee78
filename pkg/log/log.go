// Package log builds the loggers used by tau binaries and the discarding
// default used by library code.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/lmittmann/tint"
	"github.com/rs/zerolog"
)

// Output formats understood by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewZerolog returns a zerolog logger writing to w. Inside Kubernetes the
// output is plain JSON, otherwise a console writer is used.
func NewZerolog(w io.Writer, level slog.Level) *zerolog.Logger {
	output := w
	if os.Getenv("KUBERNETES_SERVICE_HOST") == "" && w == os.Stdout {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02T15:04:05.999Z07:00"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	logger := zerolog.New(output).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &logger
}

// zerologLevel maps a slog level onto the level zerologr emits for the
// equivalent logr verbosity.
func zerologLevel(level slog.Level) zerolog.Level {
	if level > 0 {
		return zerolog.InfoLevel
	}
	return zerolog.Level(1 + int(level))
}

// New returns a slog logger in the requested format.
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	switch format {
	case FormatConsole, "":
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})), nil
	case FormatJSON:
		return FromLogr(zerologr.New(NewZerolog(w, level))), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// FromLogr adapts a logr.Logger to slog.
func FromLogr(l logr.Logger) *slog.Logger {
	return slog.New(logr.ToSlogHandler(l))
}

// NullLogger creates a logger that discards all output.
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
