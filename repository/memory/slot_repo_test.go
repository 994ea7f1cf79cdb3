package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
)

func TestSlotRepository_GetMissing(t *testing.T) {
	repo := NewSlotRepository()
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestSlotRepository_PutOverwritesAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSlotRepository()

	value := []byte("first")
	require.NoError(t, repo.Put(ctx, "k", value))
	value[0] = 'X'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.NoError(t, repo.Put(ctx, "k", []byte("second")))
	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	assert.ElementsMatch(t, []string{"k"}, repo.Keys())
}

func TestSlotRepository_FailPut(t *testing.T) {
	repo := NewSlotRepository()
	repo.FailPut = errors.New("quota exceeded")
	err := repo.Put(context.Background(), "k", []byte("v"))
	assert.EqualError(t, err, "quota exceeded")
	_, err = repo.Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}
