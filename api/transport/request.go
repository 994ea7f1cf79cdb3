package transport

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/tasklist/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateTaskRequest is the draft submitted by the creation form. Priority
// defaults to medium when omitted.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// UpdateTaskRequest is the full edited copy of a task.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required,oneof=high medium low"`
	Completed   bool   `json:"completed"`
}

// Draft validates the request and converts it to a domain draft.
func (r CreateTaskRequest) Draft() (domain.Draft, error) {
	if err := check(r); err != nil {
		return domain.Draft{}, err
	}
	if strings.TrimSpace(r.Title) == "" {
		return domain.Draft{}, domain.ErrEmptyTitle
	}
	draft := domain.NewDraft().
		WithTitle(r.Title).
		WithDescription(r.Description)
	if r.Priority != "" {
		p, err := domain.ParsePriority(r.Priority)
		if err != nil {
			return domain.Draft{}, err
		}
		draft = draft.WithPriority(p)
	}
	return draft, nil
}

// Edit validates the request and converts it to a domain edit.
func (r UpdateTaskRequest) Edit() (domain.Edit, error) {
	if err := check(r); err != nil {
		return domain.Edit{}, err
	}
	p, err := domain.ParsePriority(r.Priority)
	if err != nil {
		return domain.Edit{}, err
	}
	return domain.Edit{
		Title:       r.Title,
		Description: r.Description,
		Priority:    p,
		Completed:   r.Completed,
	}, nil
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries every failed rule of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" failed "+f.Rule)
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidPayload
}

func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
	}
	return out
}
