package task

import (
	"context"
	"errors"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/events"
	"github.com/go-monolith/mono"
)

// Failures are reported in the reply's Error field. A handler error would
// leave the caller without a reply until its request times out.

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.service.CreateTask(ctx, req.Task)
	if err != nil {
		m.logger.Error("Failed to create task", "error", err)
		return TaskResponse{Error: err.Error()}, nil
	}

	m.publishCreated(created)
	return TaskResponse{Found: true, Task: created}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.GetAllTasks(ctx)
	if err != nil {
		m.logger.Error("Failed to list tasks", "error", err)
		return ListTasksResponse{Error: err.Error()}, nil
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, found, err := m.service.GetTaskByID(ctx, req.ID)
	if err != nil {
		m.logger.Error("Failed to get task", "id", req.ID, "error", err)
		return TaskResponse{Error: err.Error()}, nil
	}
	return TaskResponse{Found: found, Task: t}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.service.UpdateTask(ctx, req.ID, req.Task)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TaskResponse{Found: false}, nil
		}
		m.logger.Error("Failed to update task", "id", req.ID, "error", err)
		return TaskResponse{Error: err.Error()}, nil
	}

	m.publishUpdated(updated)
	return TaskResponse{Found: true, Task: updated}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	deleted, err := m.service.DeleteTask(ctx, req.ID)
	if err != nil {
		m.logger.Error("Failed to delete task", "id", req.ID, "error", err)
		return DeleteTaskResponse{ID: req.ID, Error: err.Error()}, nil
	}

	if deleted {
		m.publishDeleted(req.ID)
	}
	return DeleteTaskResponse{ID: req.ID, Deleted: deleted}, nil
}

// Event publishing is best-effort: failures are logged and never fail the request.

func (m *TaskModule) publishCreated(t domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		EventID:   events.NewEventID(),
		TaskID:    t.ID,
		Title:     t.Title,
		Priority:  string(t.Priority),
		CreatedAt: time.Now(),
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskCreated event", "id", t.ID, "error", err)
	}
}

func (m *TaskModule) publishUpdated(t domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskUpdatedEvent{
		EventID:   events.NewEventID(),
		TaskID:    t.ID,
		Title:     t.Title,
		Priority:  string(t.Priority),
		UpdatedAt: time.Now(),
	}
	if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskUpdated event", "id", t.ID, "error", err)
	}
}

func (m *TaskModule) publishDeleted(id int64) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		EventID:   events.NewEventID(),
		TaskID:    id,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskDeleted event", "id", id, "error", err)
	}
}
