package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// TaskService handles task operations
type TaskService struct {
	taskRepo ports.TaskRepository
	listRepo ports.TaskListRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, listRepo ports.TaskListRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		listRepo: listRepo,
		logger:   logger,
	}
}

// validateEnums guards service callers that bypass the HTTP layer's
// declarative validation.
func validateEnums(status entities.TaskStatus, priority entities.Priority) error {
	if !status.IsValid() {
		return entities.ErrInvalidStatus
	}
	if !priority.IsValid() {
		return entities.ErrInvalidPriority
	}
	return nil
}

// CreateTask creates a new task after verifying the referenced list belongs
// to the caller. Nothing is persisted when the list is absent or unowned.
func (s *TaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := validateEnums(entities.TaskStatus(req.Status), entities.Priority(req.Priority)); err != nil {
		return nil, err
	}

	listID, err := uuid.Parse(req.TaskListID)
	if err != nil {
		return nil, entities.ErrTaskListNotOwned
	}

	if _, err := s.listRepo.GetOwned(ctx, listID, ownerID); err != nil {
		if errors.Is(err, entities.ErrTaskListNotFound) {
			return nil, entities.ErrTaskListNotOwned
		}
		return nil, fmt.Errorf("failed to verify task list: %w", err)
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      entities.TaskStatus(req.Status),
		Priority:    entities.Priority(req.Priority),
		DueDate:     req.DueDate,
		UserID:      ownerID,
		TaskListID:  listID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "task_list_id", listID, "user_id", ownerID)

	return task, nil
}

// ListTasks returns the caller's tasks in a given task list
func (s *TaskService) ListTasks(ctx context.Context, ownerID, taskListID uuid.UUID) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByList(ctx, ownerID, taskListID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a single owned task
func (s *TaskService) GetTask(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	return s.taskRepo.GetOwned(ctx, id, ownerID)
}

// UpdateTask replaces every mutable field of an owned task. Applying the
// same update twice yields the same document.
func (s *TaskService) UpdateTask(ctx context.Context, id, ownerID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if err := validateEnums(entities.TaskStatus(req.Status), entities.Priority(req.Priority)); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = entities.TaskStatus(req.Status)
	task.Priority = entities.Priority(req.Priority)
	task.DueDate = req.DueDate

	if err := s.taskRepo.UpdateOwned(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "user_id", ownerID)

	return task, nil
}

// DeleteTask deletes an owned task
func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.taskRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id, "user_id", ownerID)

	return nil
}
