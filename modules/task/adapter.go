package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-service/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// It implements TaskPort on top of the task module's request-reply services.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	req := CreateTaskRequest{Task: t}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("create-task service call failed: %w", err)
	}
	if resp.Error != "" {
		return domain.Task{}, fmt.Errorf("create-task failed: %s", resp.Error)
	}
	return resp.Task, nil
}

// ListTasks lists all tasks via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]domain.Task, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("list-tasks failed: %s", resp.Error)
	}
	if resp.Tasks == nil {
		return []domain.Task{}, nil
	}
	return resp.Tasks, nil
}

// GetTask retrieves a task by id via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, id int64) (domain.Task, bool, error) {
	req := GetTaskRequest{ID: id}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, false, fmt.Errorf("get-task service call failed: %w", err)
	}
	if resp.Error != "" {
		return domain.Task{}, false, fmt.Errorf("get-task failed: %s", resp.Error)
	}
	return resp.Task, resp.Found, nil
}

// UpdateTask updates a task via the update-task service.
// A reply with Found unset and no Error becomes *domain.NotFoundError.
func (a *taskAdapter) UpdateTask(ctx context.Context, id int64, t domain.Task) (domain.Task, error) {
	req := UpdateTaskRequest{ID: id, Task: t}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("update-task service call failed: %w", err)
	}
	if resp.Error != "" {
		return domain.Task{}, fmt.Errorf("update-task failed: %s", resp.Error)
	}
	if !resp.Found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	return resp.Task, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, id int64) (bool, error) {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDeleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("delete-task service call failed: %w", err)
	}
	if resp.Error != "" {
		return false, fmt.Errorf("delete-task failed: %s", resp.Error)
	}
	return resp.Deleted, nil
}
