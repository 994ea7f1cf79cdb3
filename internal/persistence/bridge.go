// Package persistence moves task snapshots between the store and a single
// storage slot.
package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// Bridge reads and writes the full task collection under one fixed key.
type Bridge struct {
	slots  repository.SlotRepository
	key    string
	logger *zap.Logger
}

type Option func(*Bridge)

// WithKey overrides the slot key. The quarantine slot follows it.
func WithKey(key string) Option {
	return func(b *Bridge) {
		if key != "" {
			b.key = key
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBridge(slots repository.SlotRepository, opts ...Option) *Bridge {
	b := &Bridge{
		slots:  slots,
		key:    repository.SlotKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the slot key the bridge writes to.
func (b *Bridge) Key() string {
	return b.key
}

// QuarantineKey returns where undecodable slot content is preserved.
func (b *Bridge) QuarantineKey() string {
	return b.key + ".corrupt"
}

// Load reads the slot. found is false when the slot is absent, unreadable or
// corrupt; the caller starts from an empty (or seeded) collection in all
// three cases. Corrupt content is copied to QuarantineKey first so the next
// Save does not destroy the only copy of it.
func (b *Bridge) Load(ctx context.Context) (tasks []domain.Task, found bool) {
	raw, err := b.slots.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			b.logger.Debug("no stored snapshot", zap.String("key", b.key))
			return nil, false
		}
		b.logger.Warn("snapshot unreadable, starting empty", zap.String("key", b.key), zap.Error(err))
		return nil, false
	}

	tasks, err = Decode(raw)
	if err != nil {
		b.logger.Error("snapshot corrupt, starting empty",
			zap.String("key", b.key),
			zap.String("quarantine_key", b.QuarantineKey()),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		if qErr := b.slots.Put(ctx, b.QuarantineKey(), raw); qErr != nil {
			b.logger.Error("failed to quarantine corrupt snapshot", zap.Error(qErr))
		}
		return nil, false
	}

	b.logger.Debug("snapshot loaded", zap.String("key", b.key), zap.Int("tasks", len(tasks)))
	return tasks, true
}

// Save overwrites the slot with the full collection.
func (b *Bridge) Save(ctx context.Context, tasks []domain.Task) error {
	payload, err := Encode(tasks)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "encode snapshot", err)
	}
	if err := b.slots.Put(ctx, b.key, payload); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "write snapshot", err)
	}
	return nil
}

// Ping checks the underlying storage medium.
func (b *Bridge) Ping(ctx context.Context) error {
	return b.slots.Ping(ctx)
}
