package transport

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
)

func TestCreateTaskRequestDraft(t *testing.T) {
	draft, err := CreateTaskRequest{Title: "Buy milk"}.Draft()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, draft.Priority)

	draft, err = CreateTaskRequest{Title: "Buy milk", Description: "2l", Priority: "high"}.Draft()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDraft().WithTitle("Buy milk").WithDescription("2l").WithPriority(domain.PriorityHigh), draft)
}

func TestCreateTaskRequestRejects(t *testing.T) {
	_, err := CreateTaskRequest{}.Draft()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{{Field: "title", Rule: "required"}}, verr.Fields)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = CreateTaskRequest{Title: "   "}.Draft()
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = CreateTaskRequest{Title: "x", Priority: "urgent"}.Draft()
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "oneof", verr.Fields[0].Rule)

}

func TestRequestsAcceptLongText(t *testing.T) {
	long := strings.Repeat("x", 10000)

	draft, err := CreateTaskRequest{Title: long, Description: long}.Draft()
	require.NoError(t, err)
	assert.Equal(t, long, draft.Title)

	edit, err := UpdateTaskRequest{Title: long, Description: long, Priority: "low"}.Edit()
	require.NoError(t, err)
	assert.Equal(t, long, edit.Description)
}

func TestUpdateTaskRequestEdit(t *testing.T) {
	edit, err := UpdateTaskRequest{Title: "", Priority: "low", Completed: true}.Edit()
	require.NoError(t, err, "an edit may clear the title")
	assert.Equal(t, domain.Edit{Priority: domain.PriorityLow, Completed: true}, edit)

	_, err = UpdateTaskRequest{Title: "x"}.Edit()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
