package redisstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/storage/storetest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requires Redis running on localhost:6379
const testRedisAddr = "localhost:6379"

var prefixSeq atomic.Int64

// setupTestRepository returns a repository with a prefix no other test uses.
// Keys under the prefix are removed when the test ends.
func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := fmt.Sprintf("tasktest:%d:%d:", time.Now().UnixNano(), prefixSeq.Add(1))
	cleanupKeys(ctx, client, prefix+"*")

	t.Cleanup(func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	})
	return New(client, prefix)
}

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestRepository_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store {
		return setupTestRepository(t)
	})
}

func TestRepository_StoresJSON(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, storetest.SampleTask())
	require.NoError(t, err)

	raw, err := repo.client.Get(ctx, repo.taskKey(saved.ID)).Result()
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(
		`{"id":%d,"title":"Test Task","description":"Test Description","dueDate":"2024-07-25","priority":"HIGH"}`,
		saved.ID), raw)
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Open(ctx, Config{Addr: "127.0.0.1:1", Prefix: "task:"})
	assert.Error(t, err)
}
