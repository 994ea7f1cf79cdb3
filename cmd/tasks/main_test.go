package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunFlushesLogsOnFailure(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("STORAGE_KEY", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SEED_PATH", filepath.Join(t.TempDir(), "missing.json"))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"rm", "42"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "ignoring seed")
	assert.Contains(t, stderr.String(), "error: task not found")
}

func TestRunSuccess(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("STORAGE_KEY", "")
	t.Setenv("SEED_PATH", "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"add", "Buy milk", "-p", "high"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Buy milk")
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "localstorage")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"list"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "STORAGE_BACKEND")
}
