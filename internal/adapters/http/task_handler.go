package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// enumErrorMessage maps the domain enum sentinels to their documented
// client-facing messages.
func enumErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, entities.ErrInvalidStatus):
		return "Status must be To Do, In Progress, or Completed", true
	case errors.Is(err, entities.ErrInvalidPriority):
		return "Priority must be Low, Medium, or High", true
	default:
		return "", false
	}
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskListNotOwned) {
			return echo.NewHTTPError(http.StatusBadRequest, "Task list not found or does not belong to the user")
		}
		if msg, ok := enumErrorMessage(err); ok {
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		h.logger.Errorw("Create task failed", "error", err, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks?taskListId=
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	taskListID, err := uuid.Parse(c.QueryParam("taskListId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Task list ID must be provided and valid")
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), ownerID, taskListID)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err, "task_list_id", taskListID, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		h.logger.Errorw("Get task failed", "error", err, "task_id", id, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id, replacing every mutable field
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, ownerID, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		if msg, ok := enumErrorMessage(err); ok {
			return echo.NewHTTPError(http.StatusBadRequest, msg)
		}
		h.logger.Errorw("Update task failed", "error", err, "task_id", id, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id, "user_id", ownerID)
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
