package persistence

import (
	"fmt"
	"os"

	"github.com/fastygo/tasklist/domain"
)

// LoadSeed reads an initial task collection from a JSON file in snapshot
// format. An empty path yields no seed.
func LoadSeed(path string) ([]domain.Task, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	tasks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return tasks, nil
}
