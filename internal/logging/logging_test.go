package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("point_created", "id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "point_created", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "text")

	l.Debug("starting", "component", "database")

	assert.Contains(t, buf.String(), "msg=starting")
	assert.Contains(t, buf.String(), "component=database")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	scoped := New(&buf, "info", "json").With("request_id", "req-1")
	fallback := New(&bytes.Buffer{}, "info", "json")

	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContext(context.Background(), nil))

	ctx := WithContext(context.Background(), scoped)
	FromContext(ctx, fallback).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}
