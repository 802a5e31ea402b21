package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/storage/gormstore"
	"github.com/example/task-service/storage/memstore"
	"github.com/example/task-service/storage/pgstore"
	"github.com/example/task-service/storage/redisstore"
)

// Supported values for StoreConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// ErrUnknownDriver is returned for a StoreConfig.Driver that is not supported.
var ErrUnknownDriver = errors.New("unknown store driver")

// StoreConfig selects and configures the task store backend.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	SQLiteDebug bool
	DatabaseURL string
	Redis       redisstore.Config
}

// DefaultStoreConfig returns a SQLite configuration writing to tasks.db.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Driver:     DriverSQLite,
		SQLitePath: "tasks.db",
		Redis:      redisstore.DefaultConfig(),
	}
}

// backend is a store the module owns for its whole lifetime.
type backend interface {
	domain.Store
	Ping(ctx context.Context) error
	Close() error
}

func openStore(ctx context.Context, cfg StoreConfig) (backend, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return gormstore.Open(cfg.SQLitePath, cfg.SQLiteDebug)
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%s driver requires a database URL", DriverPostgres)
		}
		return pgstore.Open(ctx, cfg.DatabaseURL)
	case DriverRedis:
		return redisstore.Open(ctx, cfg.Redis)
	case DriverMemory:
		return memstore.NewRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
