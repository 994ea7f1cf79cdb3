package repository

import "context"

// SlotKey is the storage slot holding the serialized task collection.
const SlotKey = "taskManager"

// SlotRepository is a string-keyed storage medium holding opaque values.
// Get returns domain.ErrSlotNotFound when the key has never been written.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
