package persistence

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/fastygo/tasklist/domain"
)

// Encode serializes a snapshot as a JSON array. A nil snapshot encodes as [].
func Encode(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a snapshot written by Encode. Unknown priorities, missing
// priorities, duplicate ids and the id math.MaxInt64 (which leaves no id to
// assign next) are reported as domain.ErrCorruptSnapshot.
func Decode(data []byte) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrCorruptSnapshot.Message, err)
	}

	seen := make(map[int64]struct{}, len(tasks))
	for i, t := range tasks {
		if !t.Priority.Valid() {
			return nil, corrupt("record %d: missing priority", i)
		}
		if t.ID == math.MaxInt64 {
			return nil, corrupt("record %d: id %d leaves no next id", i, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, corrupt("record %d: duplicate id %d", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func corrupt(format string, args ...any) error {
	return domain.WrapError(domain.ErrCodeInvalid, domain.ErrCorruptSnapshot.Message, fmt.Errorf(format, args...))
}
