package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-service/domain/task"
)

// Service implements the task use cases on top of a domain.Store.
type Service struct {
	store domain.Store
}

// NewService creates a Service backed by store.
func NewService(store domain.Store) *Service {
	if store == nil {
		panic("task service requires non-nil store")
	}
	return &Service{store: store}
}

// CreateTask persists t as a new task. Any id supplied by the caller is
// discarded so the store always assigns a fresh one.
func (s *Service) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	t.ID = 0
	saved, err := s.store.Save(ctx, t)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return saved, nil
}

// GetAllTasks returns every stored task. The result is never nil.
func (s *Service) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetTaskByID looks up a task. A missing task is reported through the bool.
func (s *Service) GetTaskByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	t, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, false, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return t, found, nil
}

// UpdateTask overwrites every field of task id with the values in fields.
// It returns *domain.NotFoundError when no such task exists.
func (s *Service) UpdateTask(ctx context.Context, id int64, fields domain.Task) (domain.Task, error) {
	existing, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	if !found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}

	existing.Title = fields.Title
	existing.Description = fields.Description
	existing.DueDate = fields.DueDate
	existing.Priority = fields.Priority

	saved, err := s.store.Save(ctx, existing)
	if errors.Is(err, domain.ErrUnknownID) {
		// deleted after FindByID
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return saved, nil
}

// DeleteTask removes task id and reports whether it existed.
// Deleting a missing task is not an error.
func (s *Service) DeleteTask(ctx context.Context, id int64) (bool, error) {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check task %d: %w", id, err)
	}
	if !exists {
		return false, nil
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return true, nil
}
