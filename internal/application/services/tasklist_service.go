package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// TaskListService handles task list operations
type TaskListService struct {
	listRepo ports.TaskListRepository
	taskRepo ports.TaskRepository
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewTaskListService creates a new task list service. cache may be nil, in
// which case every read goes to the database.
func NewTaskListService(listRepo ports.TaskListRepository, taskRepo ports.TaskRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *logger.Logger) *TaskListService {
	return &TaskListService{
		listRepo: listRepo,
		taskRepo: taskRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func ownerListsCacheKey(ownerID uuid.UUID) string {
	return "task_lists:" + ownerID.String()
}

// CreateTaskList creates a new task list owned by ownerID
func (s *TaskListService) CreateTaskList(ctx context.Context, ownerID uuid.UUID, req ports.CreateTaskListRequest) (*entities.TaskList, error) {
	list := &entities.TaskList{
		ID:     uuid.New(),
		Name:   req.Name,
		UserID: ownerID,
		Tasks:  []*entities.Task{},
	}

	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}

	s.logger.Infow("Task list created", "task_list_id", list.ID, "user_id", ownerID)
	s.invalidateOwnerLists(ctx, ownerID)

	return list, nil
}

// ListTaskLists returns every task list owned by ownerID
func (s *TaskListService) ListTaskLists(ctx context.Context, ownerID uuid.UUID) ([]*entities.TaskList, error) {
	if s.cache != nil {
		var cached []*entities.TaskList
		if err := s.cache.Get(ctx, ownerListsCacheKey(ownerID), &cached); err == nil {
			return cached, nil
		}
	}

	lists, err := s.listRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerListsCacheKey(ownerID), lists, s.cacheTTL); err != nil {
			s.logger.Warnw("Failed to cache task lists", "error", err, "user_id", ownerID)
		}
	}

	return lists, nil
}

// GetTaskList returns a single owned task list with its tasks populated.
// The task collection is derived by query, never read from a stored array.
func (s *TaskListService) GetTaskList(ctx context.Context, id, ownerID uuid.UUID) (*entities.TaskList, error) {
	list, err := s.listRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByList(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for list: %w", err)
	}
	list.Tasks = tasks

	return list, nil
}

// DeleteTaskList deletes an owned task list. Tasks referencing the list
// are retained and keep their task_list_id.
func (s *TaskListService) DeleteTaskList(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.listRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Infow("Task list deleted", "task_list_id", id, "user_id", ownerID)
	s.invalidateOwnerLists(ctx, ownerID)

	return nil
}

func (s *TaskListService) invalidateOwnerLists(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ownerListsCacheKey(ownerID)); err != nil {
		s.logger.Warnw("Failed to invalidate task list cache", "error", err, "user_id", ownerID)
	}
}
