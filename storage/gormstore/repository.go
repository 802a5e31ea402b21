// Package gormstore stores tasks in SQLite through GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-service/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

var _ domain.Store = (*Repository)(nil)

// Open connects to the SQLite database at path and migrates the schema.
// SQL statements are logged when debug is set.
func Open(path string, debug bool) (*Repository, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repo, nil
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&taskRecord{})
}

// Save creates the task when it has no id and updates the existing row otherwise.
func (r *Repository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	rec := toRecord(task)

	if rec.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
		}
		return rec.toDomain(), nil
	}

	result := r.db.WithContext(ctx).Model(&taskRecord{}).
		Where("id = ?", rec.ID).
		Select("title", "description", "due_date", "priority").
		Updates(&rec)
	if result.Error != nil {
		return domain.Task{}, fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", rec.ID, domain.ErrUnknownID)
	}
	return rec.toDomain(), nil
}

// FindAll retrieves all tasks ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	var recs []taskRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, rec.toDomain())
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	var rec taskRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, fmt.Errorf("failed to find task: %w", err)
	}
	return rec.toDomain(), true, nil
}

// ExistsByID reports whether a task row with the id exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return count > 0, nil
}

// DeleteByID removes a task row. Missing rows are not an error.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
