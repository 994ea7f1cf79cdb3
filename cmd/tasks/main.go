package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/cli"
	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/infrastructure/storage"
	"github.com/fastygo/tasklist/internal/persistence"
	"github.com/fastygo/tasklist/pkg/logger"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code. Logs
// are flushed before it returns on every path.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := "warn"
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = v
	}
	zapLogger, err := logger.New(logger.Config{Level: level, Encoding: "console", Output: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer zapLogger.Sync()

	open := func(ctx context.Context) (*taskUC.Store, func(context.Context) error, error) {
		slots, closeSlots, err := storage.Open(ctx, cfg, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		seed, err := persistence.LoadSeed(cfg.Storage.SeedPath)
		if err != nil {
			zapLogger.Warn("ignoring seed", zap.Error(err))
		}
		bridge := persistence.NewBridge(slots,
			persistence.WithKey(cfg.Storage.Key),
			persistence.WithLogger(zapLogger),
		)
		store := taskUC.New(bridge, taskUC.WithSeed(seed), taskUC.WithLogger(zapLogger))
		store.Open(ctx)
		return store, closeSlots, nil
	}

	if err := cli.Run(ctx, open, args, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
