package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskUpdatedEvent is emitted after a task's fields are overwritten.
type TaskUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskUpdatedV1 is the typed event definition for task updates.
// Subject: events.task.v1.task-updated
var TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
	"task", "TaskUpdated", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	EventID   string    `json:"event_id"`
	TaskID    int64     `json:"task_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)

// NewEventID returns a fresh identifier for an outgoing event.
func NewEventID() string {
	return uuid.NewString()
}
