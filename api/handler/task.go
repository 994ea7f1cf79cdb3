package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/api/transport"
	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/query"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

type TaskHandler struct {
	baseHandler
	store *taskUC.Store
}

func NewTaskHandler(store *taskUC.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary List tasks, filtered by ?q= and sorted for display
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	_, cancel := h.requestContext(ctx)
	defer cancel()

	q := string(ctx.QueryArgs().Peek("q"))
	all := h.store.All()
	h.respondJSON(ctx, http.StatusOK, transport.TaskList(query.View(all, q), all, q))
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	_, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	task, found := h.store.Get(id)
	if !found {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task from a draft
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req transport.CreateTaskRequest
	if !h.decode(ctx, &req) {
		return
	}
	draft, err := req.Draft()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	created, ok := h.store.Create(stdCtx, draft)
	if !ok {
		h.respondError(ctx, domain.ErrEmptyTitle)
		return
	}
	h.log(stdCtx).Info("task created", zap.Int64("task_id", created.ID), zap.Stringer("priority", created.Priority))
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Replace task with an edited copy
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	var req transport.UpdateTaskRequest
	if !h.decode(ctx, &req) {
		return
	}
	edit, err := req.Edit()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if !h.store.Update(stdCtx, id, edit) {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	updated, _ := h.store.Get(id)
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	if !h.store.ToggleComplete(stdCtx, id) {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	toggled, _ := h.store.Get(id)
	h.respondSuccess(ctx, http.StatusOK, toggled)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	if !h.store.Delete(stdCtx, id) {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	h.log(stdCtx).Info("task deleted", zap.Int64("task_id", id))
	ctx.SetStatusCode(http.StatusNoContent)
}

func (h *TaskHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidPayload.Message, err))
		return false
	}
	return true
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "task id must be an integer", nil))
		return 0, false
	}
	return id, true
}
