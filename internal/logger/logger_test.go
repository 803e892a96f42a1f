package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/linehub/line-adapter-go/internal/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestJSONOutputKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)
	log.WithField("event_kind", "text").Info("Event processed")

	entry := parseLine(t, &buf)
	assert.Equal(t, "Event processed", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "text", entry["event_kind"])
	assert.Contains(t, entry, "timestamp")
}

func TestWarnLevelRenamed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)
	log.Warn("careful")

	entry := parseLine(t, &buf)
	assert.Equal(t, "warning", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)
	log.Info("should be dropped")
	assert.Zero(t, buf.Len())
}

func TestContextHandlerAddsTracingValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	ctx := ctxutil.WithSourceID(context.Background(), "U1")
	ctx = ctxutil.WithRequestID(ctx, "req-9")
	log.InfoContext(ctx, "hello")

	entry := parseLine(t, &buf)
	assert.Equal(t, "U1", entry["source_id"])
	assert.Equal(t, "req-9", entry["request_id"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	handler := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
		nil,
	)
	log := slog.New(handler)
	log.Info("both")

	assert.Contains(t, a.String(), "both")
	assert.Contains(t, b.String(), "both")
}
