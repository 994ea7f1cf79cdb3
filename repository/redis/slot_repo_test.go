package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/fastygo/tasklist/domain"
)

func TestSlotRepository_UnreachableServer(t *testing.T) {
	client := redislib.NewClient(&redislib.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	repo := NewSlotRepository(client, "test:")
	ctx := context.Background()

	assert.Error(t, repo.Ping(ctx))

	_, err := repo.Get(ctx, "taskManager")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSlotNotFound, "an unreachable server is not an empty slot")

	assert.Error(t, repo.Put(ctx, "taskManager", []byte("[]")))
}

func TestSlotRepository_PrefixesKeys(t *testing.T) {
	repo := NewSlotRepository(nil, "tasklist:").(*slotRepository)
	assert.Equal(t, "tasklist:taskManager", repo.key("taskManager"))
}
