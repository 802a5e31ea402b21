// Package redisstore stores tasks in Redis.
//
// Each task is a JSON value under <prefix><id>. Ids come from INCR on
// <prefix>seq and a sorted set <prefix>ids keeps them in order.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	domain "github.com/example/task-service/domain/task"
	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	Prefix   string
}

// DefaultConfig returns the default Redis configuration.
func DefaultConfig() Config {
	return Config{
		Addr:   "localhost:6379",
		Prefix: "task:",
	}
}

// Repository provides task storage in Redis.
type Repository struct {
	client *redis.Client
	prefix string
}

var _ domain.Store = (*Repository)(nil)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return New(client, cfg.Prefix), nil
}

// New creates a repository on an existing client.
func New(client *redis.Client, prefix string) *Repository {
	return &Repository{client: client, prefix: prefix}
}

func (r *Repository) seqKey() string   { return r.prefix + "seq" }
func (r *Repository) indexKey() string { return r.prefix + "ids" }

func (r *Repository) taskKey(id int64) string {
	return r.prefix + strconv.FormatInt(id, 10)
}

// Save stores the task, taking a new id from the sequence when it has none.
// Updates use SET XX so a task deleted in the meantime is not recreated.
func (r *Repository) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.Saved() {
		return r.update(ctx, task)
	}

	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to allocate task id: %w", err)
	}
	task.ID = id

	data, err := json.Marshal(task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to marshal task: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.taskKey(task.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: float64(task.ID), Member: task.ID})
		return nil
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

func (r *Repository) update(ctx context.Context, task domain.Task) (domain.Task, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to marshal task: %w", err)
	}

	ok, err := r.client.SetXX(ctx, r.taskKey(task.ID), data, 0).Result()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	if !ok {
		return domain.Task{}, fmt.Errorf("failed to update task %d: %w", task.ID, domain.ErrUnknownID)
	}
	return task, nil
}

// FindAll retrieves all tasks ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list task ids: %w", err)
	}

	tasks := make([]domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// deleted between ZRANGE and MGET
			continue
		}
		var t domain.Task
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	data, err := r.client.Get(ctx, r.taskKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, fmt.Errorf("failed to find task: %w", err)
	}

	var t domain.Task
	if err := json.Unmarshal(data, &t); err != nil {
		return domain.Task{}, false, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return t, true, nil
}

// ExistsByID reports whether the task key exists.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.client.Exists(ctx, r.taskKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return n > 0, nil
}

// DeleteByID removes the task and its index entry.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.taskKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Ping checks if the Redis connection is healthy.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (r *Repository) Close() error {
	return r.client.Close()
}
