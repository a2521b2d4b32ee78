package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/go-logr/logr/funcr"
	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, FormatConsole, slog.LevelInfo)
		assert.NoError(t, err)

		l.Info("walk finished", "activated", 3)
		assert.Contains(t, buf.String(), "walk finished")
		assert.Contains(t, buf.String(), "activated")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, FormatJSON, slog.LevelInfo)
		assert.NoError(t, err)

		l.Info("job done", "job", "abc")
		assert.Contains(t, buf.String(), "job done")
		assert.Contains(t, buf.String(), `"job":"abc"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "xml", slog.LevelInfo)
		assert.Error(t, err)
	})
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(slog.LevelInfo))
	assert.Equal(t, zerolog.InfoLevel, zerologLevel(slog.LevelWarn))
	assert.Equal(t, zerolog.Level(-3), zerologLevel(slog.LevelDebug))
}

func TestFromLogr(t *testing.T) {
	var lines []string
	l := FromLogr(funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{}))

	l.Info("hello", "k", "v")
	assert.Equal(t, 1, len(lines))
	assert.Contains(t, lines[0], `"k"="v"`)
}

func TestNullLogger(t *testing.T) {
	l := NullLogger()
	l.Error("dropped")
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
}
