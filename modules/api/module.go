package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-service/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds HTTP server settings.
type Config struct {
	Addr               string
	CORSAllowedOrigins string
}

// DefaultConfig returns the default HTTP server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:               ":8080",
		CORSAllowedOrigins: "*",
	}
}

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the task module via the TaskPort interface.
type APIModule struct {
	cfg      Config
	app      *fiber.App
	taskPort task.TaskPort
	logger   types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config, logger types.Logger) *APIModule {
	return &APIModule{
		cfg:    cfg,
		logger: logger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// Start builds the Fiber app and starts listening.
// Returns an error if the task dependency is missing or the listener fails.
func (m *APIModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}

	m.app = newApp(m.cfg, NewHandlers(m.taskPort, m.logger, m.cfg.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			errCh <- err
		}
	}()

	// catch immediate startup errors such as the port being in use
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.cfg.Addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app != nil {
		if err := m.app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.cfg.Addr,
		},
	}
}

// newApp creates the Fiber app with middleware and routes.
func newApp(cfg Config, h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Service",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	registerRoutes(app, h)
	return app
}

// registerRoutes mounts the task routes at /tasks and at the legacy /api/tasks.
func registerRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.HealthCheck)

	for _, prefix := range []string{"/tasks", "/api/tasks"} {
		tasks := app.Group(prefix)
		tasks.Post("/", h.CreateTask)
		tasks.Get("/", h.ListTasks)
		tasks.Get("/:id", h.GetTask)
		tasks.Put("/:id", h.UpdateTask)
		tasks.Delete("/:id", h.DeleteTask)
	}
}

// errorHandler renders errors that escape the handlers, including
// unmatched routes and recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	errCode := codeServerError
	if code == fiber.StatusNotFound {
		errCode = codeNotFound
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
