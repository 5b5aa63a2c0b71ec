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

// TaskListHandler handles task list requests
type TaskListHandler struct {
	listService ports.TaskListService
	logger      *logger.Logger
}

// NewTaskListHandler creates a new task list handler
func NewTaskListHandler(listService ports.TaskListService, logger *logger.Logger) *TaskListHandler {
	return &TaskListHandler{
		listService: listService,
		logger:      logger,
	}
}

// CreateTaskList handles POST /api/task-lists
func (h *TaskListHandler) CreateTaskList(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	var req ports.CreateTaskListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	list, err := h.listService.CreateTaskList(c.Request().Context(), ownerID, req)
	if err != nil {
		h.logger.Errorw("Create task list failed", "error", err, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusCreated, list)
}

// ListTaskLists handles GET /api/task-lists
func (h *TaskListHandler) ListTaskLists(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	lists, err := h.listService.ListTaskLists(c.Request().Context(), ownerID)
	if err != nil {
		h.logger.Errorw("List task lists failed", "error", err, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusOK, lists)
}

// GetTaskList handles GET /api/task-lists/:id, tasks populated
func (h *TaskListHandler) GetTaskList(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	list, err := h.listService.GetTaskList(c.Request().Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskListNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		h.logger.Errorw("Get task list failed", "error", err, "task_list_id", id, "user_id", ownerID)
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// DeleteTaskList handles DELETE /api/task-lists/:id
func (h *TaskListHandler) DeleteTaskList(c echo.Context) error {
	ownerID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	if err := h.listService.DeleteTaskList(c.Request().Context(), id, ownerID); err != nil {
		if errors.Is(err, entities.ErrTaskListNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		h.logger.Errorw("Delete task list failed", "error", err, "task_list_id", id, "user_id", ownerID)
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
