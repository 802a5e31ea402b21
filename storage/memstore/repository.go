// Package memstore keeps tasks in process memory. Contents are lost on exit.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	domain "github.com/example/task-service/domain/task"
)

// Repository provides in-memory task storage.
type Repository struct {
	tasks  map[int64]domain.Task
	lastID int64
	mu     sync.RWMutex
}

var _ domain.Store = (*Repository)(nil)

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		tasks: make(map[int64]domain.Task),
	}
}

// Save stores a copy of the task, assigning the next id to unsaved tasks.
func (r *Repository) Save(_ context.Context, task domain.Task) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !task.Saved() {
		r.lastID++
		task.ID = r.lastID
	} else if _, found := r.tasks[task.ID]; !found {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", task.ID, domain.ErrUnknownID)
	}
	task.DueDate = cloneDate(task.DueDate)
	r.tasks[task.ID] = task
	return withOwnDate(task), nil
}

// FindAll returns all tasks ordered by id.
func (r *Repository) FindAll(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		result = append(result, withOwnDate(task))
	}
	slices.SortFunc(result, func(a, b domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// FindByID finds a task by id.
func (r *Repository) FindByID(_ context.Context, id int64) (domain.Task, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, false, nil
	}
	return withOwnDate(task), true, nil
}

// ExistsByID reports whether a task with the id is stored.
func (r *Repository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, found := r.tasks[id]
	return found, nil
}

// DeleteByID deletes a task by id.
func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	return nil
}

// Ping always succeeds.
func (r *Repository) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (r *Repository) Close() error {
	return nil
}

// withOwnDate keeps callers from aliasing the stored due date.
func withOwnDate(task domain.Task) domain.Task {
	task.DueDate = cloneDate(task.DueDate)
	return task
}

func cloneDate(d *domain.Date) *domain.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
