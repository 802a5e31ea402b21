package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/task-service/modules/api"
	"github.com/example/task-service/modules/task"
	"github.com/example/task-service/storage/redisstore"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTP            api.Config
	Store           task.StoreConfig
	LogLevel        string
	ShutdownTimeout time.Duration
}

// loadConfig reads the optional .env file and then the environment.
// Variables already set in the environment win over .env entries.
func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	redisDefaults := redisstore.DefaultConfig()

	return Config{
		HTTP: api.Config{
			Addr:               getEnv("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Store: task.StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", task.DriverSQLite)),
			SQLitePath:  getEnv("DB_PATH", "tasks.db"),
			SQLiteDebug: getEnvBool("DB_DEBUG", false),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			Redis: redisstore.Config{
				Addr:     getEnv("REDIS_ADDR", redisDefaults.Addr),
				Password: getEnv("REDIS_PASSWORD", ""),
				Prefix:   getEnv("REDIS_PREFIX", redisDefaults.Prefix),
			},
		},
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// errorLogsOnly reports whether LOG_LEVEL asks for errors only.
// Anything other than "info" or "error" falls back to info.
func (c Config) errorLogsOnly() bool {
	switch c.LogLevel {
	case "error":
		return true
	case "info", "":
		return false
	default:
		log.Printf("Warning: unsupported LOG_LEVEL %q, using info", c.LogLevel)
		return false
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
