package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Encoding: "json", Output: &buf})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", zap.Int("tasks", 2))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, float64(2), entry["tasks"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "loud", Encoding: "console", Output: &buf})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithRequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
	assert.Nil(t, WithRequestID(ctx, nil))
	assert.NotNil(t, WithRequestID(ctx, zap.NewNop()))
}
