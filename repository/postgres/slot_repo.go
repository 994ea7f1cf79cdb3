package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

// DB is the subset of pgxpool.Pool used by the slot repository.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type slotRepository struct {
	db DB
}

// NewSlotRepository returns a Postgres-backed implementation of SlotRepository.
func NewSlotRepository(db DB) repository.SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM task_slots WHERE key = $1`

	var value string
	if err := r.db.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	const query = `
	INSERT INTO task_slots (key, value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, key, string(value))
	return err
}

func (r *slotRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
