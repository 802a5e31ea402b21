// Package notification reacts to task lifecycle events by logging them.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/task-service/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Notification is a single task event as seen by this module.
type Notification struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	TaskID     int64     `json:"task_id"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

// recentLimit bounds how many notifications are kept for Recent.
const recentLimit = 100

// NotificationModule subscribes to task events using the EventConsumerModule interface.
type NotificationModule struct {
	logger types.Logger

	mu     sync.RWMutex
	recent []Notification
	counts map[string]int
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.HealthCheckableModule = (*NotificationModule)(nil)

func NewModule(logger types.Logger) *NotificationModule {
	return &NotificationModule{
		logger: logger.WithModule("notification"),
		recent: make([]Notification, 0, recentLimit),
		counts: make(map[string]int),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TaskCreated", "TaskUpdated", "TaskDeleted"})
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.logger.Info("Task created", "id", event.TaskID, "title", event.Title, "priority", event.Priority)
	m.record(Notification{
		EventID: event.EventID,
		Type:    "task_created",
		TaskID:  event.TaskID,
		Message: fmt.Sprintf("New task '%s' created", event.Title),
	})
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.logger.Info("Task updated", "id", event.TaskID, "title", event.Title, "priority", event.Priority)
	m.record(Notification{
		EventID: event.EventID,
		Type:    "task_updated",
		TaskID:  event.TaskID,
		Message: fmt.Sprintf("Task %d updated", event.TaskID),
	})
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.logger.Info("Task deleted", "id", event.TaskID)
	m.record(Notification{
		EventID: event.EventID,
		Type:    "task_deleted",
		TaskID:  event.TaskID,
		Message: fmt.Sprintf("Task %d deleted", event.TaskID),
	})
	return nil
}

// record keeps the newest recentLimit notifications.
func (m *NotificationModule) record(n Notification) {
	n.ReceivedAt = time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.recent) == recentLimit {
		copy(m.recent, m.recent[1:])
		m.recent = m.recent[:recentLimit-1]
	}
	m.recent = append(m.recent, n)
	m.counts[n.Type]++
}

// Recent returns the most recent notifications, oldest first.
func (m *NotificationModule) Recent() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Notification, len(m.recent))
	copy(result, m.recent)
	return result
}

func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]any, len(m.counts))
	for k, v := range m.counts {
		counts[k] = v
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: counts,
	}
}

func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Notification module started, listening for task events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped")
	return nil
}
