package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority tags a task for grouping and ordering. Only the three declared
// values are valid; the zero value is not.
type Priority uint8

const (
	PriorityHigh Priority = iota + 1
	PriorityMedium
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityHigh:   "high",
	PriorityMedium: "medium",
	PriorityLow:    "low",
}

// ParsePriority maps a wire name onto a Priority.
func ParsePriority(name string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return 0, WrapError(ErrCodeInvalid, ErrInvalidPriority.Message, fmt.Errorf("unknown priority %q", name))
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Rank orders priorities for sorting: high(0) < medium(1) < low(2).
func (p Priority) Rank() int {
	return int(p) - 1
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "invalid"
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrInvalidPriority
	}
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParsePriority(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task is a single to-do item.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Completed
}

// Draft holds the fields of a task that has not been created yet.
// Drafts are values: every With* call returns a new Draft.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
}

// NewDraft returns the blank creation form.
func NewDraft() Draft {
	return Draft{Priority: PriorityMedium}
}

func (d Draft) WithTitle(title string) Draft {
	d.Title = title
	return d
}

func (d Draft) WithDescription(description string) Draft {
	d.Description = description
	return d
}

func (d Draft) WithPriority(p Priority) Draft {
	d.Priority = p
	return d
}

// Valid reports whether the draft may be promoted to a Task. An unset
// priority is allowed; the store creates such drafts as medium.
func (d Draft) Valid() bool {
	return strings.TrimSpace(d.Title) != "" && (d.Priority == 0 || d.Priority.Valid())
}

// Edit is the edited copy of an existing task. Applying it keeps the
// task's ID and CreatedAt.
type Edit struct {
	Title       string
	Description string
	Priority    Priority
	Completed   bool
}

// EditOf starts an edit session from the current state of a task.
func EditOf(t Task) Edit {
	return Edit{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
	}
}

func (e Edit) WithTitle(title string) Edit {
	e.Title = title
	return e
}

func (e Edit) WithDescription(description string) Edit {
	e.Description = description
	return e
}

func (e Edit) WithPriority(p Priority) Edit {
	e.Priority = p
	return e
}

func (e Edit) WithCompleted(completed bool) Edit {
	e.Completed = completed
	return e
}

// Apply returns t with the edited fields replaced.
func (e Edit) Apply(t Task) Task {
	t.Title = e.Title
	t.Description = e.Description
	t.Priority = e.Priority
	t.Completed = e.Completed
	return t
}
