package transport

import (
	"encoding/json"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/query"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// ListMeta accompanies a task list.
type ListMeta struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Summary query.Summary `json:"summary"`
}

// TaskList is the view returned by the list endpoint.
func TaskList(view []domain.Task, all []domain.Task, q string) Envelope {
	if view == nil {
		view = []domain.Task{}
	}
	return NewSuccess(view, ListMeta{
		Query:   q,
		Count:   len(view),
		Summary: query.Stats(all),
	})
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
