package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/internal/config"
)

func TestOpenLocalBackends(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{
				Storage: config.StorageConfig{Backend: backend, FileDir: filepath.Join(dir, "slots")},
				Bolt:    config.BoltConfig{Path: filepath.Join(dir, "tasks.db"), Bucket: config.DefaultBoltBucket},
			}
			slots, closeFn, err := Open(ctx, cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, closeFn(ctx)) })

			require.NoError(t, slots.Ping(ctx))
			require.NoError(t, slots.Put(ctx, "taskManager", []byte("[]")))
			got, err := slots.Get(ctx, "taskManager")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Backend: "tape"}}, nil)
	assert.ErrorContains(t, err, "tape")
}
