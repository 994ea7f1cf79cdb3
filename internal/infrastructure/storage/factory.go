// Package storage builds the slot repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
	boltInfra "github.com/fastygo/tasklist/internal/infrastructure/bolt"
	pgInfra "github.com/fastygo/tasklist/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/tasklist/internal/infrastructure/redis"
	"github.com/fastygo/tasklist/repository"
	boltRepo "github.com/fastygo/tasklist/repository/bolt"
	fileRepo "github.com/fastygo/tasklist/repository/file"
	"github.com/fastygo/tasklist/repository/memory"
	pgRepo "github.com/fastygo/tasklist/repository/postgres"
	redisRepo "github.com/fastygo/tasklist/repository/redis"
)

// CloseFunc releases the resources behind a slot repository.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open connects to the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SlotRepository, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("memory storage selected, tasks will not outlive the process")
		return memory.NewSlotRepository(), noopClose, nil

	case config.BackendFile:
		slots, err := fileRepo.NewSlotRepository(cfg.Storage.FileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("file storage: %w", err)
		}
		return slots, noopClose, nil

	case config.BackendBolt:
		db, err := boltInfra.Open(cfg.Bolt, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("bolt storage: %w", err)
		}
		return boltRepo.NewSlotRepository(db, cfg.Bolt.Bucket), func(context.Context) error {
			return db.Close()
		}, nil

	case config.BackendRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis storage: %w", err)
		}
		return redisRepo.NewSlotRepository(client, cfg.Redis.Prefix), func(context.Context) error {
			return client.Close()
		}, nil

	case config.BackendPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres storage: %w", err)
		}
		return pgRepo.NewSlotRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
