package gormstore

import (
	"time"

	domain "github.com/example/task-service/domain/task"
)

// taskRecord is the GORM model backing the tasks table.
type taskRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"size:2000"`
	DueDate     *time.Time `gorm:"type:date"`
	Priority    string     `gorm:"size:10"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(t domain.Task) taskRecord {
	rec := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
	}
	if t.DueDate != nil {
		due := t.DueDate.Time()
		rec.DueDate = &due
	}
	return rec
}

func (r taskRecord) toDomain() domain.Task {
	t := domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
	}
	if r.DueDate != nil {
		due := domain.DateOf(*r.DueDate)
		t.DueDate = &due
	}
	return t
}
