package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/fastygo/tasklist/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/tasks", handlers.Task.ListTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.GET("/api/v1/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.POST("/api/v1/tasks/{id}/toggle", handlers.Task.ToggleTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)

	return r
}
