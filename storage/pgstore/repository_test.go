package pgstore

import (
	"context"
	"os"
	"testing"

	domain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/storage/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepository connects to TEST_DATABASE_URL and empties the tasks
// table. The test is skipped when no database is configured or reachable.
func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := Open(ctx, dbURL)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}

	_, err = repo.pool.Exec(ctx, "TRUNCATE tasks")
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestRepository_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store {
		return setupTestRepository(t)
	})
}

func TestRepository_Ping(t *testing.T) {
	repo := setupTestRepository(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
