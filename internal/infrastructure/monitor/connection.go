package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is a storage medium that can be health-checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreState exposes what the monitor reports about the task store.
type StoreState interface {
	LastSaveError() error
	Len() int
}

var errNoStorage = errors.New("no storage configured")

type Monitor struct {
	backend string
	storage Pinger
	store   StoreState

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	cron     *cron.Cron
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(backend string, storage Pinger, store StoreState, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend:  backend,
		storage:  storage,
		store:    store,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// Start runs one check and schedules the rest every interval. Intervals
// under a second are rounded up to one.
func (m *Monitor) Start() {
	m.Refresh()
	schedule := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(schedule, func() { m.Refresh() }); err != nil {
		m.logger.Error("monitor schedule rejected", zap.String("schedule", schedule), zap.Error(err))
		return
	}
	m.cron.Start()
}

// Stop halts the schedule and waits for a running check or ctx, whichever
// ends first.
func (m *Monitor) Stop(ctx context.Context) {
	m.stopOnce.Do(func() {
		done := m.cron.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
		}
	})
}

func (m *Monitor) IsHealthy() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh runs the checks once and stores the result.
func (m *Monitor) Refresh() Status {
	status := Status{
		Backend:   m.backend,
		Saved:     true,
		LastCheck: time.Now(),
	}
	if err := m.checkStorage(); err != nil {
		status.StorageError = err.Error()
	} else {
		status.Storage = true
	}
	if m.store != nil {
		status.Tasks = m.store.Len()
		if err := m.store.LastSaveError(); err != nil {
			status.Saved = false
			status.LastSaveError = err.Error()
		}
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if prev.Storage && !status.Storage {
		m.logger.Warn("storage went offline", zap.String("backend", m.backend), zap.String("error", status.StorageError))
	}
	return status
}

func (m *Monitor) checkStorage() error {
	if m.storage == nil {
		return errNoStorage
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.storage.Ping(ctx)
}
