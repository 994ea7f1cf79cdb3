package redis

import (
	"context"
	"errors"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	client redislib.UniversalClient
	prefix string
}

// NewSlotRepository creates a Redis-backed slot store. Slots never expire.
func NewSlotRepository(client redislib.UniversalClient, prefix string) repository.SlotRepository {
	return &slotRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *slotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *slotRepository) key(key string) string {
	return r.prefix + key
}
