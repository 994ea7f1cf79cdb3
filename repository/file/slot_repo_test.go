package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
)

func TestSlotRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "slots")

	repo, err := NewSlotRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Ping(ctx))

	_, err = repo.Get(ctx, "taskManager")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	require.NoError(t, repo.Put(ctx, "taskManager", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "taskManager", []byte(`[2]`)))

	got, err := repo.Get(ctx, "taskManager")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSlotRepository_KeysAreEscaped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewSlotRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Put(ctx, "../escape", []byte("x")))
	got, err := repo.Get(ctx, "../escape")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewSlotRepository_RequiresDir(t *testing.T) {
	_, err := NewSlotRepository("")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
