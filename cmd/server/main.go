package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tasklist/api/handler"
	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/infrastructure/monitor"
	"github.com/fastygo/tasklist/internal/infrastructure/storage"
	"github.com/fastygo/tasklist/internal/persistence"
	"github.com/fastygo/tasklist/internal/router"
	"github.com/fastygo/tasklist/internal/services/lifecycle"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	"github.com/fastygo/tasklist/pkg/logger"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopListening := manager.Listen(cancel)
	defer stopListening()

	slots, closeSlots, err := storage.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage unavailable", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	manager.Register("storage", lifecycle.ShutdownFunc(closeSlots))

	seed, err := persistence.LoadSeed(cfg.Storage.SeedPath)
	if err != nil {
		zapLogger.Fatal("seed unreadable", zap.Error(err))
	}

	bridge := persistence.NewBridge(slots,
		persistence.WithKey(cfg.Storage.Key),
		persistence.WithLogger(zapLogger),
	)
	store := taskUC.New(bridge,
		taskUC.WithSeed(seed),
		taskUC.WithLogger(zapLogger),
	)
	store.Open(appCtx)

	mon := monitor.New(cfg.Storage.Backend, bridge, store, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	// In-flight requests keep their context during shutdown so their saves land.
	adapter := httpcontext.NewAdapter(context.Background(), cfg.Context.RequestTimeout)
	r := router.New(router.Handlers{
		Task:   apiHandler.NewTaskHandler(store, adapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, adapter, zapLogger),
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Backend),
			zap.Int("tasks", store.Len()),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
