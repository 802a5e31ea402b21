package task

import "context"

// Store is the persistence port for tasks. Implementations own the canonical
// copy of every task and must be safe for concurrent use.
type Store interface {
	// Save inserts t when it has no id and overwrites the stored task otherwise.
	// The returned task carries the assigned id. Overwriting an id that is not
	// stored, including one deleted since it was read, fails with ErrUnknownID.
	Save(ctx context.Context, t Task) (Task, error)
	// FindAll returns every task in ascending id order.
	FindAll(ctx context.Context) ([]Task, error)
	// FindByID returns the task and true, or false when no such task exists.
	FindByID(ctx context.Context, id int64) (Task, bool, error)
	// ExistsByID reports whether a task with the id is stored.
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID removes the task. Deleting an unknown id is a no-op.
	DeleteByID(ctx context.Context, id int64) error
}
