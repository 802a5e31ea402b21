// Package storetest holds the behaviour every task.Store backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) domain.Store

// Run executes the store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, store domain.Store)
	}{
		{"save assigns id", testSaveAssignsID},
		{"round trip", testRoundTrip},
		{"save overwrites existing", testSaveOverwrites},
		{"find all empty", testFindAllEmpty},
		{"find all ordered by id", testFindAllOrdered},
		{"find missing", testFindMissing},
		{"exists", testExists},
		{"delete", testDelete},
		{"delete missing is a no-op", testDeleteMissing},
		{"ids are not reused", testIDsNotReused},
		{"save unknown id fails", testSaveUnknownID},
		{"save after delete fails", testSaveAfterDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

// SampleTask returns the task used throughout the suite.
func SampleTask() domain.Task {
	due := domain.NewDate(2024, time.July, 25)
	return domain.Task{
		Title:       "Test Task",
		Description: "Test Description",
		DueDate:     &due,
		Priority:    domain.PriorityHigh,
	}
}

func testSaveAssignsID(t *testing.T, store domain.Store) {
	ctx := context.Background()

	saved, err := store.Save(ctx, SampleTask())
	require.NoError(t, err)

	assert.NotZero(t, saved.ID)
	assert.Equal(t, "Test Task", saved.Title)
	assert.Equal(t, "Test Description", saved.Description)
	require.NotNil(t, saved.DueDate)
	assert.Equal(t, domain.NewDate(2024, time.July, 25), *saved.DueDate)
	assert.Equal(t, domain.PriorityHigh, saved.Priority)
}

func testRoundTrip(t *testing.T, store domain.Store) {
	ctx := context.Background()

	cases := []domain.Task{
		SampleTask(),
		{Title: "no date", Priority: domain.PriorityLow},
		{Title: "", Description: "empty title and priority"},
	}

	for _, in := range cases {
		saved, err := store.Save(ctx, in)
		require.NoError(t, err)

		found, ok, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok, "task %d should be found", saved.ID)
		assert.Equal(t, saved, found)
	}
}

func testSaveOverwrites(t *testing.T, store domain.Store) {
	ctx := context.Background()

	saved, err := store.Save(ctx, SampleTask())
	require.NoError(t, err)

	saved.Title = "Updated Task"
	saved.Description = "Updated Description"
	saved.DueDate = nil
	saved.Priority = domain.PriorityMedium

	updated, err := store.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved, updated)

	found, ok, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, found)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testFindAllEmpty(t *testing.T, store domain.Store) {
	all, err := store.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func testFindAllOrdered(t *testing.T, store domain.Store) {
	ctx := context.Background()

	first, err := store.Save(ctx, domain.Task{Title: "Task 1"})
	require.NoError(t, err)
	second, err := store.Save(ctx, domain.Task{Title: "Task 2"})
	require.NoError(t, err)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "Task 1", all[0].Title)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, "Task 2", all[1].Title)
}

func testFindMissing(t *testing.T, store domain.Store) {
	found, ok, err := store.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.Task{}, found)
}

func testExists(t *testing.T, store domain.Store) {
	ctx := context.Background()

	saved, err := store.Save(ctx, SampleTask())
	require.NoError(t, err)

	exists, err := store.ExistsByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.ExistsByID(ctx, saved.ID+1000)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testDelete(t *testing.T, store domain.Store) {
	ctx := context.Background()

	keep, err := store.Save(ctx, domain.Task{Title: "keep"})
	require.NoError(t, err)
	drop, err := store.Save(ctx, domain.Task{Title: "drop"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, drop.ID))

	_, ok, err := store.FindByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := store.ExistsByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func testDeleteMissing(t *testing.T, store domain.Store) {
	assert.NoError(t, store.DeleteByID(context.Background(), 12345))
}

func testIDsNotReused(t *testing.T, store domain.Store) {
	ctx := context.Background()

	_, err := store.Save(ctx, domain.Task{Title: "first"})
	require.NoError(t, err)
	last, err := store.Save(ctx, domain.Task{Title: "second"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, last.ID))

	next, err := store.Save(ctx, domain.Task{Title: "third"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, last.ID)
}

func testSaveUnknownID(t *testing.T, store domain.Store) {
	ctx := context.Background()

	_, err := store.Save(ctx, domain.Task{ID: 987654, Title: "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownID)

	_, found, err := store.FindByID(ctx, 987654)
	require.NoError(t, err)
	assert.False(t, found)
}

func testSaveAfterDelete(t *testing.T, store domain.Store) {
	ctx := context.Background()

	saved, err := store.Save(ctx, SampleTask())
	require.NoError(t, err)
	require.NoError(t, store.DeleteByID(ctx, saved.ID))

	saved.Title = "resurrected"
	_, err = store.Save(ctx, saved)
	assert.ErrorIs(t, err, domain.ErrUnknownID)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
