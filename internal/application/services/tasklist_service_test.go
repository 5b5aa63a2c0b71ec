package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/manageer/core/internal/adapters/repository"
	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

type taskListFixture struct {
	lists *repository.MemoryTaskListRepository
	tasks *repository.MemoryTaskRepository
	svc   *TaskListService
}

func newTaskListFixture(cache ports.CacheRepository) *taskListFixture {
	lists := repository.NewMemoryTaskListRepository()
	tasks := repository.NewMemoryTaskRepository()
	return &taskListFixture{
		lists: lists,
		tasks: tasks,
		svc:   NewTaskListService(lists, tasks, cache, time.Minute, logger.NewNop()),
	}
}

func TestCreateAndGetTaskList(t *testing.T) {
	f := newTaskListFixture(nil)
	ctx := context.Background()
	owner := uuid.New()

	list, err := f.svc.CreateTaskList(ctx, owner, ports.CreateTaskListRequest{Name: "Chores"})
	if err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}
	if list.Name != "Chores" || list.UserID != owner {
		t.Errorf("unexpected list: %+v", list)
	}
	if list.Tasks == nil || len(list.Tasks) != 0 {
		t.Errorf("new list tasks = %v, want empty slice", list.Tasks)
	}

	got, err := f.svc.GetTaskList(ctx, list.ID, owner)
	if err != nil {
		t.Fatalf("GetTaskList failed: %v", err)
	}
	if got.ID != list.ID {
		t.Errorf("got list %s, want %s", got.ID, list.ID)
	}
}

func TestGetTaskListPopulatesTasks(t *testing.T) {
	f := newTaskListFixture(nil)
	ctx := context.Background()
	owner := uuid.New()

	list, err := f.svc.CreateTaskList(ctx, owner, ports.CreateTaskListRequest{Name: "Chores"})
	if err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}

	task := &entities.Task{
		ID:         uuid.New(),
		Title:      "Dishes",
		Status:     entities.TaskStatusTodo,
		Priority:   entities.PriorityLow,
		UserID:     owner,
		TaskListID: list.ID,
	}
	if err := f.tasks.Create(ctx, task); err != nil {
		t.Fatalf("task Create failed: %v", err)
	}

	got, err := f.svc.GetTaskList(ctx, list.ID, owner)
	if err != nil {
		t.Fatalf("GetTaskList failed: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != task.ID {
		t.Errorf("got.Tasks = %+v, want the one created task", got.Tasks)
	}
}

func TestGetTaskListOwnershipScoped(t *testing.T) {
	f := newTaskListFixture(nil)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	list, err := f.svc.CreateTaskList(ctx, owner, ports.CreateTaskListRequest{Name: "Private"})
	if err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}

	if _, err := f.svc.GetTaskList(ctx, list.ID, stranger); !errors.Is(err, entities.ErrTaskListNotFound) {
		t.Errorf("stranger GetTaskList error = %v, want ErrTaskListNotFound", err)
	}
	if err := f.svc.DeleteTaskList(ctx, list.ID, stranger); !errors.Is(err, entities.ErrTaskListNotFound) {
		t.Errorf("stranger DeleteTaskList error = %v, want ErrTaskListNotFound", err)
	}

	// The owner still sees the list untouched.
	if _, err := f.svc.GetTaskList(ctx, list.ID, owner); err != nil {
		t.Errorf("owner GetTaskList after stranger delete attempt: %v", err)
	}
}

func TestListTaskListsOnlyOwned(t *testing.T) {
	f := newTaskListFixture(nil)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	if _, err := f.svc.CreateTaskList(ctx, alice, ports.CreateTaskListRequest{Name: "Alice's"}); err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}
	if _, err := f.svc.CreateTaskList(ctx, bob, ports.CreateTaskListRequest{Name: "Bob's"}); err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}

	lists, err := f.svc.ListTaskLists(ctx, alice)
	if err != nil {
		t.Fatalf("ListTaskLists failed: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Alice's" {
		t.Errorf("alice's lists = %+v, want only her own", lists)
	}
}

func TestDeleteTaskListRetainsTasks(t *testing.T) {
	f := newTaskListFixture(nil)
	ctx := context.Background()
	owner := uuid.New()

	list, err := f.svc.CreateTaskList(ctx, owner, ports.CreateTaskListRequest{Name: "Chores"})
	if err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}
	task := &entities.Task{
		ID:         uuid.New(),
		Title:      "Dishes",
		Status:     entities.TaskStatusTodo,
		Priority:   entities.PriorityLow,
		UserID:     owner,
		TaskListID: list.ID,
	}
	if err := f.tasks.Create(ctx, task); err != nil {
		t.Fatalf("task Create failed: %v", err)
	}

	if err := f.svc.DeleteTaskList(ctx, list.ID, owner); err != nil {
		t.Fatalf("DeleteTaskList failed: %v", err)
	}
	if _, err := f.svc.GetTaskList(ctx, list.ID, owner); !errors.Is(err, entities.ErrTaskListNotFound) {
		t.Errorf("GetTaskList after delete error = %v, want ErrTaskListNotFound", err)
	}

	// Deleting a list does not cascade to its tasks.
	if _, err := f.tasks.GetOwned(ctx, task.ID, owner); err != nil {
		t.Errorf("task gone after list delete: %v", err)
	}
}

func TestListTaskListsCacheInvalidation(t *testing.T) {
	cache := repository.NewMemoryCacheRepository()
	f := newTaskListFixture(cache)
	ctx := context.Background()
	owner := uuid.New()

	first, err := f.svc.ListTaskLists(ctx, owner)
	if err != nil {
		t.Fatalf("ListTaskLists failed: %v", err)
	}
	if len(first) != 0 {
		t.Fatalf("expected no lists, got %d", len(first))
	}

	// The empty result is now cached; creating a list must invalidate it.
	list, err := f.svc.CreateTaskList(ctx, owner, ports.CreateTaskListRequest{Name: "Chores"})
	if err != nil {
		t.Fatalf("CreateTaskList failed: %v", err)
	}

	second, err := f.svc.ListTaskLists(ctx, owner)
	if err != nil {
		t.Fatalf("ListTaskLists failed: %v", err)
	}
	if len(second) != 1 || second[0].ID != list.ID {
		t.Errorf("lists after create = %+v, want the created list", second)
	}

	if err := f.svc.DeleteTaskList(ctx, list.ID, owner); err != nil {
		t.Fatalf("DeleteTaskList failed: %v", err)
	}
	third, err := f.svc.ListTaskLists(ctx, owner)
	if err != nil {
		t.Fatalf("ListTaskLists failed: %v", err)
	}
	if len(third) != 0 {
		t.Errorf("lists after delete = %+v, want none", third)
	}
}
