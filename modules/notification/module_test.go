package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/example/task-service/events"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

func TestNotificationModule_HandlesEvents(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	require.NoError(t, m.handleTaskCreated(ctx, events.TaskCreatedEvent{EventID: "e1", TaskID: 1, Title: "Test Task"}, nil))
	require.NoError(t, m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{EventID: "e2", TaskID: 1, Title: "Updated Task"}, nil))
	require.NoError(t, m.handleTaskDeleted(ctx, events.TaskDeletedEvent{EventID: "e3", TaskID: 1}, nil))

	got := m.Recent()
	require.Len(t, got, 3)
	assert.Equal(t, "task_created", got[0].Type)
	assert.Equal(t, "New task 'Test Task' created", got[0].Message)
	assert.Equal(t, "task_updated", got[1].Type)
	assert.Equal(t, "task_deleted", got[2].Type)
	assert.Equal(t, "e3", got[2].EventID)
	assert.False(t, got[2].ReceivedAt.IsZero())

	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Details["task_created"])
}

func TestNotificationModule_RecentIsBounded(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	for i := 1; i <= recentLimit+5; i++ {
		event := events.TaskDeletedEvent{EventID: fmt.Sprint(i), TaskID: int64(i)}
		require.NoError(t, m.handleTaskDeleted(ctx, event, nil))
	}

	got := m.Recent()
	require.Len(t, got, recentLimit)
	assert.Equal(t, int64(6), got[0].TaskID)
	assert.Equal(t, int64(recentLimit+5), got[len(got)-1].TaskID)
	assert.Equal(t, recentLimit+5, m.Health(ctx).Details["task_deleted"])
}
