package memory

import (
	"context"
	"sync"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// SlotRepository keeps slots in process memory. Values are copied on the way
// in and out so callers cannot alias stored bytes.
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailPut, when set, is returned by every Put. Used to simulate an
	// unavailable medium.
	FailPut error
}

var _ repository.SlotRepository = (*SlotRepository)(nil)

// NewSlotRepository returns an empty in-memory slot store.
func NewSlotRepository() *SlotRepository {
	return &SlotRepository{slots: make(map[string][]byte)}
}

func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.slots[key]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailPut != nil {
		return r.FailPut
	}
	r.slots[key] = append([]byte(nil), value...)
	return nil
}

func (r *SlotRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Keys lists the populated slots.
func (r *SlotRepository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	return keys
}
