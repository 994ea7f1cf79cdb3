package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type storeState struct {
	err error
	n   int
}

func (s storeState) LastSaveError() error { return s.err }
func (s storeState) Len() int             { return s.n }

func TestRefreshHealthy(t *testing.T) {
	m := New("memory", pingFunc(func(context.Context) error { return nil }), storeState{n: 3}, time.Hour, nil)
	status := m.Refresh()
	assert.True(t, status.Healthy())
	assert.Equal(t, "memory", status.Backend)
	assert.Equal(t, 3, status.Tasks)
	assert.Equal(t, status, m.GetStatus())
}

func TestRefreshDegraded(t *testing.T) {
	m := New("redis",
		pingFunc(func(context.Context) error { return errors.New("connection refused") }),
		storeState{err: errors.New("write snapshot: connection refused")},
		time.Hour, nil)

	status := m.Refresh()
	assert.False(t, status.Storage)
	assert.False(t, status.Saved)
	assert.Equal(t, "connection refused", status.StorageError)
	assert.Contains(t, status.LastSaveError, "write snapshot")
	assert.False(t, m.IsHealthy())
}

func TestRefreshWithoutStorage(t *testing.T) {
	m := New("none", nil, nil, 0, nil)
	status := m.Refresh()
	assert.False(t, status.Storage)
	assert.True(t, status.Saved)
}

func TestStartStop(t *testing.T) {
	m := New("memory", pingFunc(func(context.Context) error { return nil }), storeState{}, 10*time.Millisecond, nil)
	m.Start()
	assert.True(t, m.IsHealthy())
	m.Stop(context.Background())
	m.Stop(context.Background())
}
