package task

import (
	"context"

	domain "github.com/example/task-service/domain/task"
)

// Service names registered in the task module's service container.
const (
	ServiceCreateTask = "create-task"
	ServiceListTasks  = "list-tasks"
	ServiceGetTask    = "get-task"
	ServiceUpdateTask = "update-task"
	ServiceDeleteTask = "delete-task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Task domain.Task `json:"task"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	Error string        `json:"error,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID int64 `json:"id"`
}

// UpdateTaskRequest carries the full replacement field set for task ID.
type UpdateTaskRequest struct {
	ID   int64       `json:"id"`
	Task domain.Task `json:"task"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// DeleteTaskResponse reports whether a row was removed.
type DeleteTaskResponse struct {
	ID      int64  `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// TaskResponse is the reply for single-task services.
// Found is false when the requested task does not exist.
type TaskResponse struct {
	Found bool        `json:"found"`
	Task  domain.Task `json:"task"`
	Error string      `json:"error,omitempty"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the task module.
type TaskPort interface {
	CreateTask(ctx context.Context, t domain.Task) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (domain.Task, bool, error)
	// UpdateTask returns *domain.NotFoundError when id does not exist.
	UpdateTask(ctx context.Context, id int64, t domain.Task) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}
