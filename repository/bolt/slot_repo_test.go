package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/config"
	boltInfra "github.com/fastygo/tasklist/internal/infrastructure/bolt"
)

func openTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := boltInfra.Open(config.BoltConfig{
		Path:   filepath.Join(t.TempDir(), "data", "tasks.db"),
		Bucket: "slots",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSlotRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSlotRepository(openTestDB(t), "slots")
	require.NoError(t, repo.Ping(ctx))

	_, err := repo.Get(ctx, "taskManager")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	require.NoError(t, repo.Put(ctx, "taskManager", []byte(`[]`)))
	got, err := repo.Get(ctx, "taskManager")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, repo.Put(ctx, "taskManager", []byte(`[{"id":1}]`)))
	got, err = repo.Get(ctx, "taskManager")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestSlotRepository_MissingBucket(t *testing.T) {
	repo := NewSlotRepository(openTestDB(t), "other")
	assert.ErrorIs(t, repo.Ping(context.Background()), bbolt.ErrBucketNotFound)
	_, err := repo.Get(context.Background(), "k")
	assert.ErrorIs(t, err, bbolt.ErrBucketNotFound)
}

func TestSlotRepository_ClosedDB(t *testing.T) {
	repo := NewSlotRepository(nil, "slots")
	assert.ErrorIs(t, repo.Put(context.Background(), "k", []byte("v")), bbolt.ErrDatabaseNotOpen)
}
