package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(zerolog.New(&buf))
	assert.Equal(t, "zerolog", p.Name())

	l := p.NewLogger("transport")
	l.Log(SeverityInfo, "hello")
	l.LogCause(SeverityError, "failed", errors.New("boom"))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"logger":"transport"`)
	assert.Contains(t, lines[0], `"message":"hello"`)
	assert.Contains(t, lines[1], `"error":"boom"`)
}

func TestZerologEnabledRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(zerolog.New(&buf).Level(zerolog.WarnLevel))
	l := p.NewLogger("transport")

	assert.False(t, l.Enabled(SeverityDebug))
	assert.True(t, l.Enabled(SeverityWarn))
	assert.True(t, l.Enabled(SeverityError))

	l.Log(SeverityDebug, "dropped")
	assert.Empty(t, buf.String())
}

func TestSlogProvider(t *testing.T) {
	var buf bytes.Buffer
	root := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewSlogProvider(root)
	assert.Equal(t, "slog", p.Name())

	l := p.NewLogger("transport")
	l.Log(SeverityInfo, "hello")
	l.LogCause(SeverityWarn, "failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "logger=transport")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "cause=boom")
}

func TestSlogEnabledRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	root := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewSlogProvider(root).NewLogger("transport")

	// Trace sits below debug and is dropped by a debug-level handler.
	assert.False(t, l.Enabled(SeverityTrace))
	assert.True(t, l.Enabled(SeverityDebug))
}

func TestSlogProviderNilRoot(t *testing.T) {
	p := NewSlogProvider(nil)
	require.NotNil(t, p.NewLogger("transport"))
}

func TestWriterProviderFormat(t *testing.T) {
	var buf bytes.Buffer
	p := NewWriterProvider(&buf)
	assert.Equal(t, "writer", p.Name())

	l := p.NewLogger("transport")
	l.Log(SeverityWarn, "slow peer")
	l.LogCause(SeverityError, "closed", errors.New("reset"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN  transport slow peer")
	assert.Contains(t, lines[1], "ERROR transport closed: reset")
}

func TestNopLogger(t *testing.T) {
	var l NopLogger
	for s := SeverityTrace; s <= SeverityError; s++ {
		assert.False(t, l.Enabled(s))
	}
	// Discards without panicking.
	l.Log(SeverityInfo, "ignored")
	l.LogCause(SeverityError, "ignored", errors.New("boom"))
}
