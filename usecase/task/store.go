// Package task owns the canonical task collection and the rules for changing it.
package task

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/query"
)

// Persister stores full snapshots of the collection.
type Persister interface {
	Load(ctx context.Context) ([]domain.Task, bool)
	Save(ctx context.Context, tasks []domain.Task) error
}

// Store holds the ordered task collection. Mutations are serialized and each
// successful one is followed by a synchronous save of the whole collection.
// Failed saves are logged and remembered, never returned: memory stays
// authoritative until the next save succeeds.
type Store struct {
	persister Persister
	clock     func() time.Time
	seed      []domain.Task
	logger    *zap.Logger

	mu          sync.RWMutex
	tasks       []domain.Task
	nextID      int64
	exhausted   bool
	lastSaveErr error
}

type Option func(*Store)

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSeed sets the collection used when the persister has no snapshot.
func WithSeed(tasks []domain.Task) Option {
	return func(s *Store) {
		s.seed = slices.Clone(tasks)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds an empty store. Call Open to load the persisted snapshot.
func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		clock:     time.Now,
		logger:    zap.NewNop(),
		nextID:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open replaces the collection with the persisted snapshot, or with the seed
// when there is none. It reports whether a snapshot was found. Open does not
// write; the first mutation does.
func (s *Store) Open(ctx context.Context) bool {
	var (
		loaded []domain.Task
		found  bool
	)
	if s.persister != nil {
		loaded, found = s.persister.Load(ctx)
	}
	if !found {
		loaded = slices.Clone(s.seed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = dedupe(loaded)
	s.nextID = 1
	s.exhausted = false
	for _, t := range s.tasks {
		if t.ID == math.MaxInt64 {
			s.exhausted = true
			continue
		}
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	s.logger.Info("task store opened",
		zap.Bool("from_snapshot", found),
		zap.Int("tasks", len(s.tasks)),
	)
	return found
}

// Create promotes a draft to a task and appends it. A draft with no priority
// set gets medium. It returns false and changes nothing when the draft's
// trimmed title is empty, or once the id space is used up.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (domain.Task, bool) {
	if draft.Priority == 0 {
		draft = draft.WithPriority(domain.PriorityMedium)
	}
	if !draft.Valid() {
		return domain.Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exhausted {
		s.logger.Warn("task ids exhausted, create refused")
		return domain.Task{}, false
	}

	// Millisecond UTC stamps survive the snapshot round-trip unchanged.
	createdAt := s.clock().UTC().Truncate(time.Millisecond)
	t := domain.Task{
		ID:          s.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Completed:   false,
		CreatedAt:   createdAt,
	}
	if s.nextID == math.MaxInt64 {
		s.exhausted = true
	} else {
		s.nextID++
	}
	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx, "create", t.ID)
	return t, true
}

// Update replaces the task with the edited copy, keeping its ID and
// CreatedAt. It returns false when id is unknown or the edit carries an
// invalid priority.
func (s *Store) Update(ctx context.Context, id int64, edit domain.Edit) bool {
	if !edit.Priority.Valid() {
		return false
	}
	return s.mutate(ctx, "update", id, func(t domain.Task) domain.Task {
		return edit.Apply(t)
	})
}

// ToggleComplete flips the completed flag.
func (s *Store) ToggleComplete(ctx context.Context, id int64) bool {
	return s.mutate(ctx, "toggle", id, func(t domain.Task) domain.Task {
		t.Completed = !t.Completed
		return t
	})
}

// Delete removes the task.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persistLocked(ctx, "delete", id)
	return true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with id.
func (s *Store) Get(id int64) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// View returns the display list for q, recomputed from the current snapshot.
func (s *Store) View(q string) []domain.Task {
	return query.View(s.All(), q)
}

// LastSaveError returns the error of the most recent save, or nil if it
// succeeded.
func (s *Store) LastSaveError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSaveErr
}

func (s *Store) mutate(ctx context.Context, op string, id int64, fn func(domain.Task) domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	current := s.tasks[i]
	next := fn(current)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	s.tasks[i] = next
	s.persistLocked(ctx, op, id)
	return true
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

func (s *Store) persistLocked(ctx context.Context, op string, id int64) {
	if s.persister == nil {
		return
	}
	err := s.persister.Save(ctx, slices.Clone(s.tasks))
	s.lastSaveErr = err
	if err != nil {
		s.logger.Warn("task snapshot not saved",
			zap.String("operation", op),
			zap.Int64("task_id", id),
			zap.Int("tasks", len(s.tasks)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("task snapshot saved", zap.String("operation", op), zap.Int64("task_id", id))
}

// dedupe drops later records that reuse an id already seen.
func dedupe(tasks []domain.Task) []domain.Task {
	seen := make(map[int64]struct{}, len(tasks))
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
