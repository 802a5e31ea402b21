// Package pgstore stores tasks in PostgreSQL through a pgx connection pool.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	due_date    DATE,
	priority    TEXT NOT NULL DEFAULT ''
)`

const (
	insertTask = `INSERT INTO tasks (title, description, due_date, priority)
VALUES ($1, $2, $3, $4)
RETURNING id, title, description, due_date, priority`

	updateTask = `UPDATE tasks SET title = $2, description = $3, due_date = $4, priority = $5
WHERE id = $1
RETURNING id, title, description, due_date, priority`

	selectTasks = `SELECT id, title, description, due_date, priority FROM tasks ORDER BY id`

	selectTask = `SELECT id, title, description, due_date, priority FROM tasks WHERE id = $1`

	existsTask = `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`

	deleteTask = `DELETE FROM tasks WHERE id = $1`
)

// Repository provides access to task storage in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

var _ domain.Store = (*Repository)(nil)

// Open creates a pool for databaseURL, verifies the connection and ensures
// the tasks table exists.
func Open(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := NewRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// NewRepository creates a repository on an existing pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Migrate creates the tasks table if it is missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Save inserts the task when it has no id and updates the row otherwise.
func (r *Repository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	due := dueTime(task.DueDate)

	if !task.Saved() {
		row := r.pool.QueryRow(ctx, insertTask, task.Title, task.Description, due, string(task.Priority))
		saved, err := scanTask(row)
		if err != nil {
			return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
		}
		return saved, nil
	}

	row := r.pool.QueryRow(ctx, updateTask, task.ID, task.Title, task.Description, due, string(task.Priority))
	saved, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, fmt.Errorf("failed to update task %d: %w", task.ID, domain.ErrUnknownID)
		}
		return domain.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return saved, nil
}

// FindAll retrieves all tasks ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, selectTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, selectTask, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, fmt.Errorf("failed to find task: %w", err)
	}
	return t, true, nil
}

// ExistsByID reports whether a row with the id exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, existsTask, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return exists, nil
}

// DeleteByID removes the row. Missing rows are not an error.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, deleteTask, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Ping checks the pool can reach the database.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes every connection in the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t        domain.Task
		due      *time.Time
		priority string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &priority); err != nil {
		return domain.Task{}, err
	}
	t.Priority = domain.Priority(priority)
	if due != nil {
		d := domain.DateOf(*due)
		t.DueDate = &d
	}
	return t, nil
}

func dueTime(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
