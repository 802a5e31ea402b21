package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-service/modules/api"
	"github.com/example/task-service/modules/notification"
	"github.com/example/task-service/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Service ===")

	cfg := loadConfig()

	logLevel := mono.LogLevelInfo
	if cfg.errorLogsOnly() {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: event consumer first, then the core domain, then the driving adapter.
	app.Register(notification.NewModule(logger))
	app.Register(task.NewModule(cfg.Store, logger))
	app.Register(api.NewModule(cfg.HTTP, logger))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  Store driver: %s", cfg.Store.Driver)
	log.Println("")
	log.Printf("REST API Endpoints (%s):", cfg.HTTP.Addr)
	log.Println("  POST   /tasks       - Create a task")
	log.Println("  GET    /tasks       - List all tasks")
	log.Println("  GET    /tasks/:id   - Get a task by ID")
	log.Println("  PUT    /tasks/:id   - Replace a task's fields")
	log.Println("  DELETE /tasks/:id   - Delete a task")
	log.Println("  GET    /health      - Health check")
	log.Println("  (task routes are also served under /api/tasks)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
