package task

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// startedModule returns a task module running on the in-memory store.
func startedModule(t *testing.T) *TaskModule {
	t.Helper()

	m := NewModule(StoreConfig{Driver: DriverMemory}, &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() {
		_ = m.Stop(context.Background())
	})
	return m
}

func TestTaskModule_Name(t *testing.T) {
	m := NewModule(DefaultStoreConfig(), &mockLogger{})
	assert.Equal(t, "task", m.Name())
	assert.Len(t, m.EmitEvents(), 3)
}

func TestTaskModule_Health(t *testing.T) {
	m := NewModule(StoreConfig{Driver: DriverMemory}, &mockLogger{})

	status := m.Health(context.Background())
	assert.False(t, status.Healthy)

	require.NoError(t, m.Start(context.Background()))
	status = m.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, DriverMemory, status.Details["driver"])

	require.NoError(t, m.Stop(context.Background()))
}

func TestTaskModule_StartUnknownDriver(t *testing.T) {
	m := NewModule(StoreConfig{Driver: "mongo"}, &mockLogger{})

	err := m.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := openStore(ctx, StoreConfig{Driver: DriverMemory})
		require.NoError(t, err)
		assert.NoError(t, store.Ping(ctx))
		assert.NoError(t, store.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tasks.db")
		store, err := openStore(ctx, StoreConfig{Driver: DriverSQLite, SQLitePath: path})
		require.NoError(t, err)
		defer store.Close()

		saved, err := store.Save(ctx, domain.Task{Title: "persisted"})
		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
	})

	t.Run("postgres without url", func(t *testing.T) {
		_, err := openStore(ctx, StoreConfig{Driver: DriverPostgres})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := openStore(ctx, StoreConfig{Driver: "mongo"})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestHandlers_CreateAndGet(t *testing.T) {
	m := startedModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Task: sampleTask()}, nil)
	require.NoError(t, err)
	assert.True(t, created.Found)
	assert.NotZero(t, created.Task.ID)

	got, err := m.getTask(ctx, GetTaskRequest{ID: created.Task.ID}, nil)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, created.Task, got.Task)

	missing, err := m.getTask(ctx, GetTaskRequest{ID: 999}, nil)
	require.NoError(t, err)
	assert.False(t, missing.Found)
}

func TestHandlers_List(t *testing.T) {
	m := startedModule(t)
	ctx := context.Background()

	empty, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Tasks)
	assert.Zero(t, empty.Total)

	for _, title := range []string{"Task 1", "Task 2"} {
		_, err := m.createTask(ctx, CreateTaskRequest{Task: domain.Task{Title: title}}, nil)
		require.NoError(t, err)
	}

	resp, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "Task 1", resp.Tasks[0].Title)
	assert.Equal(t, "Task 2", resp.Tasks[1].Title)
}

func TestHandlers_Update(t *testing.T) {
	m := startedModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Task: sampleTask()}, nil)
	require.NoError(t, err)

	due := domain.NewDate(2024, time.July, 26)
	resp, err := m.updateTask(ctx, UpdateTaskRequest{
		ID: created.Task.ID,
		Task: domain.Task{
			Title:       "Updated Task",
			Description: "Updated Description",
			DueDate:     &due,
			Priority:    domain.PriorityMedium,
		},
	}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, created.Task.ID, resp.Task.ID)
	assert.Equal(t, "Updated Task", resp.Task.Title)

	missing, err := m.updateTask(ctx, UpdateTaskRequest{ID: 999, Task: domain.Task{Title: "x"}}, nil)
	require.NoError(t, err)
	assert.False(t, missing.Found)
}

func TestHandlers_Delete(t *testing.T) {
	m := startedModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Task: sampleTask()}, nil)
	require.NoError(t, err)

	resp, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.Task.ID}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Equal(t, created.Task.ID, resp.ID)

	again, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.Task.ID}, nil)
	require.NoError(t, err)
	assert.False(t, again.Deleted)

	got, err := m.getTask(ctx, GetTaskRequest{ID: created.Task.ID}, nil)
	require.NoError(t, err)
	assert.False(t, got.Found)
}

var errStoreDown = errors.New("connection refused")

// failingStore returns a store whose every call fails with errStoreDown.
func failingStore() *recordingStore {
	return &recordingStore{
		saveFunc:     func(domain.Task) (domain.Task, error) { return domain.Task{}, errStoreDown },
		findAllFunc:  func() ([]domain.Task, error) { return nil, errStoreDown },
		findByIDFunc: func(int64) (domain.Task, bool, error) { return domain.Task{}, false, errStoreDown },
		existsFunc:   func(int64) (bool, error) { return false, errStoreDown },
		deleteFunc:   func(int64) error { return errStoreDown },
	}
}

// moduleWithStore returns a task module that runs on store instead of
// opening one from its config.
func moduleWithStore(store backend) *TaskModule {
	m := NewModule(StoreConfig{Driver: DriverMemory}, &mockLogger{})
	m.open = func(context.Context, StoreConfig) (backend, error) {
		return store, nil
	}
	return m
}

func TestHandlers_StoreFailureIsReplied(t *testing.T) {
	m := moduleWithStore(failingStore())
	ctx := context.Background()
	require.NoError(t, m.Start(ctx))

	created, err := m.createTask(ctx, CreateTaskRequest{Task: sampleTask()}, nil)
	require.NoError(t, err)
	assert.False(t, created.Found)
	assert.Contains(t, created.Error, "connection refused")

	list, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	require.NoError(t, err)
	assert.Contains(t, list.Error, "connection refused")

	got, err := m.getTask(ctx, GetTaskRequest{ID: 1}, nil)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Contains(t, got.Error, "connection refused")

	updated, err := m.updateTask(ctx, UpdateTaskRequest{ID: 1, Task: domain.Task{Title: "x"}}, nil)
	require.NoError(t, err)
	assert.False(t, updated.Found)
	assert.Contains(t, updated.Error, "connection refused")

	deleted, err := m.deleteTask(ctx, DeleteTaskRequest{ID: 1}, nil)
	require.NoError(t, err)
	assert.False(t, deleted.Deleted)
	assert.Contains(t, deleted.Error, "connection refused")
}

func TestHandlers_NotFoundHasNoError(t *testing.T) {
	m := startedModule(t)
	ctx := context.Background()

	resp, err := m.updateTask(ctx, UpdateTaskRequest{ID: 42, Task: domain.Task{Title: "x"}}, nil)
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Error)
}
