package api

import (
	"errors"
	"fmt"

	domain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for task operations.
type Handlers struct {
	tasks  task.TaskPort
	logger types.Logger
	addr   string
}

// NewHandlers creates handlers that reach the task module through tasks.
func NewHandlers(tasks task.TaskPort, logger types.Logger, addr string) *Handlers {
	return &Handlers{
		tasks:  tasks,
		logger: logger,
		addr:   addr,
	}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"addr":   h.addr,
		},
	})
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req domain.Task
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, codeInvalidRequest, err)
	}

	created, err := h.tasks.CreateTask(c.UserContext(), req)
	if err != nil {
		return h.serverError(c, "create task", err)
	}
	return c.JSON(created)
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.UserContext())
	if err != nil {
		return h.serverError(c, "list tasks", err)
	}
	return c.JSON(tasks)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, codeInvalidID, err)
	}

	t, found, err := h.tasks.GetTask(c.UserContext(), id)
	if err != nil {
		return h.serverError(c, "get task", err)
	}
	if !found {
		return notFound(c, &domain.NotFoundError{ID: id})
	}
	return c.JSON(t)
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, codeInvalidID, err)
	}

	var req domain.Task
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, codeInvalidRequest, err)
	}

	updated, err := h.tasks.UpdateTask(c.UserContext(), id, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, err)
		}
		return h.serverError(c, "update task", err)
	}
	return c.JSON(updated)
}

// DeleteTask handles DELETE /tasks/:id. It answers 204 whether or not the
// task existed.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, codeInvalidID, err)
	}

	if _, err := h.tasks.DeleteTask(c.UserContext(), id); err != nil {
		return h.serverError(c, "delete task", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// taskID reads the :id path parameter, which must be a positive integer.
func taskID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("task id must be a positive integer, got %q", c.Params("id"))
	}
	return int64(id), nil
}

func badRequest(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func notFound(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   codeNotFound,
		Message: err.Error(),
	})
}

func (h *Handlers) serverError(c *fiber.Ctx, op string, err error) error {
	h.logger.Error("Request failed", "op", op, "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   codeServerError,
		Message: fmt.Sprintf("failed to %s", op),
	})
}
