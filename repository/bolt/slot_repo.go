package bolt

import (
	"context"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	db     *bbolt.DB
	bucket []byte
}

// NewSlotRepository returns a BoltDB-backed slot store. The bucket must
// already exist; see infrastructure/bolt.Open.
func NewSlotRepository(db *bbolt.DB, bucket string) repository.SlotRepository {
	return &slotRepository{db: db, bucket: []byte(bucket)}
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}
	var value []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return bbolt.ErrBucketNotFound
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction.
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, domain.ErrSlotNotFound
	}
	return value, nil
}

func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	if value == nil {
		value = []byte{}
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return bbolt.ErrBucketNotFound
		}
		return b.Put([]byte(key), value)
	})
}

func (r *slotRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return r.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return bbolt.ErrBucketNotFound
		}
		return nil
	})
}
