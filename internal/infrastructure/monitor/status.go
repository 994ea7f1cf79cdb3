package monitor

import "time"

type Status struct {
	Backend       string    `json:"backend"`
	Storage       bool      `json:"storage"`
	StorageError  string    `json:"storage_error,omitempty"`
	Saved         bool      `json:"saved"`
	LastSaveError string    `json:"last_save_error,omitempty"`
	Tasks         int       `json:"tasks"`
	LastCheck     time.Time `json:"last_check"`
}

// Healthy reports whether the medium answers and the latest save landed.
func (s Status) Healthy() bool {
	return s.Storage && s.Saved
}
