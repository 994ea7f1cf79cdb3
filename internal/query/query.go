// Package query derives display views from a task snapshot. Every function
// is pure: inputs are never modified and nothing is cached between calls.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fastygo/tasklist/domain"
)

var fold = cases.Fold()

// Filter keeps tasks whose title or description contains q, ignoring case.
// An empty q keeps every task.
func Filter(tasks []domain.Task, q string) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	if q == "" {
		return append(out, tasks...)
	}

	needle := fold.String(q)
	for _, t := range tasks {
		if strings.Contains(fold.String(t.Title), needle) ||
			strings.Contains(fold.String(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a stably ordered copy of tasks: open tasks first, ordered
// high, medium, low; completed tasks keep their relative order at the end.
func Sort(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, Compare)
	return out
}

// Compare is the display ordering used by Sort.
func Compare(a, b domain.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if a.Completed {
		return 0
	}
	return a.Priority.Rank() - b.Priority.Rank()
}

// View is Sort(Filter(tasks, q)).
func View(tasks []domain.Task, q string) []domain.Task {
	return Sort(Filter(tasks, q))
}

// Summary counts tasks for list headers.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Open      int `json:"open"`
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
}

// Stats summarizes tasks. Per-priority counts cover open tasks only.
func Stats(tasks []domain.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Open++
		switch t.Priority {
		case domain.PriorityHigh:
			s.High++
		case domain.PriorityMedium:
			s.Medium++
		case domain.PriorityLow:
			s.Low++
		}
	}
	return s
}
