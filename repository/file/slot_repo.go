package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
)

type slotRepository struct {
	dir string
}

// NewSlotRepository stores each slot as a file under dir. The directory is
// created on first use.
func NewSlotRepository(dir string) (repository.SlotRepository, error) {
	if dir == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "file storage directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &slotRepository{dir: dir}, nil
}

func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put replaces the slot atomically: readers see either the old file or the
// new one, never a partial write.
func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, ".slot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path(key))
}

func (r *slotRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}

func (r *slotRepository) path(key string) string {
	return filepath.Join(r.dir, url.PathEscape(key))
}
