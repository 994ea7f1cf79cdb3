package bolt

import (
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
)

// Open initializes the BoltDB file and ensures the slot bucket exists.
func Open(cfg config.BoltConfig, logger *zap.Logger) (*bbolt.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = config.DefaultBoltBucket
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("opened bolt storage", zap.String("path", cfg.Path), zap.String("bucket", bucket))
	return db, nil
}
